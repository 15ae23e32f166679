package sidebar

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatefig/gatefig/pkg/models"
)

func TestStoreInitialVisibility(t *testing.T) {
	store := NewStore(models.SidebarOpen)
	assert.Equal(t, models.SidebarOpen, store.Visibility())

	store = NewStore(models.SidebarClosed)
	assert.Equal(t, models.SidebarClosed, store.Visibility())
}

func TestStoreToggleIsInvolution(t *testing.T) {
	for _, initial := range []models.SidebarVisibility{models.SidebarOpen, models.SidebarClosed} {
		store := NewStore(initial)

		store.Toggle()
		assert.Equal(t, initial.Flip(), store.Visibility())

		store.Toggle()
		assert.Equal(t, initial, store.Visibility(), "two toggles must restore the initial visibility")
	}
}

func TestStoreOpenCloseIdempotent(t *testing.T) {
	store := NewStore(models.SidebarClosed)

	store.Open()
	store.Open()
	assert.Equal(t, models.SidebarOpen, store.Visibility())

	store.Close()
	store.Close()
	assert.Equal(t, models.SidebarClosed, store.Visibility())
}

func TestStoreSubscribe(t *testing.T) {
	t.Run("notifies synchronously on change", func(t *testing.T) {
		store := NewStore(models.SidebarOpen)

		var seen []models.SidebarVisibility
		store.Subscribe(func(v models.SidebarVisibility) {
			seen = append(seen, v)
		})

		store.Close()
		store.Toggle()

		assert.Equal(t, []models.SidebarVisibility{models.SidebarClosed, models.SidebarOpen}, seen)
	})

	t.Run("idempotent set does not notify", func(t *testing.T) {
		store := NewStore(models.SidebarOpen)

		calls := 0
		store.Subscribe(func(models.SidebarVisibility) { calls++ })

		store.Open()
		assert.Zero(t, calls)

		store.Close()
		assert.Equal(t, 1, calls)
	})

	t.Run("subscribers run in subscription order", func(t *testing.T) {
		store := NewStore(models.SidebarOpen)

		var order []int
		store.Subscribe(func(models.SidebarVisibility) { order = append(order, 1) })
		store.Subscribe(func(models.SidebarVisibility) { order = append(order, 2) })
		store.Subscribe(func(models.SidebarVisibility) { order = append(order, 3) })

		store.Toggle()
		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("unsubscribe stops callbacks", func(t *testing.T) {
		store := NewStore(models.SidebarOpen)

		calls := 0
		unsubscribe := store.Subscribe(func(models.SidebarVisibility) { calls++ })

		store.Toggle()
		unsubscribe()
		store.Toggle()

		assert.Equal(t, 1, calls)
	})

	t.Run("callback may read the store", func(t *testing.T) {
		store := NewStore(models.SidebarOpen)

		var observed models.SidebarVisibility
		store.Subscribe(func(models.SidebarVisibility) {
			observed = store.Visibility()
		})

		store.Close()
		assert.Equal(t, models.SidebarClosed, observed)
	})
}

func TestStoreConcurrentToggle(t *testing.T) {
	store := NewStore(models.SidebarOpen)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			store.Toggle()
		}()
	}
	wg.Wait()

	// An even number of toggles lands back on the initial value.
	assert.Equal(t, models.SidebarOpen, store.Visibility())
}
