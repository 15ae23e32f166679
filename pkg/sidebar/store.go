package sidebar

import (
	"sync"

	"github.com/gatefig/gatefig/pkg/models"
)

var _ models.SidebarStore = &Store{}

// Store is the in-memory models.SidebarStore implementation. The browser
// mutates it from a single UI at a time, but the server is concurrent,
// so all access is mutex-guarded.
type Store struct {
	mu          sync.Mutex
	visibility  models.SidebarVisibility
	nextID      int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(models.SidebarVisibility)
}

func NewStore(initial models.SidebarVisibility) *Store {
	return &Store{visibility: initial}
}

func (s *Store) Visibility() models.SidebarVisibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility
}

// Open is idempotent: re-opening an open sidebar does not notify.
func (s *Store) Open() {
	s.set(models.SidebarOpen)
}

// Close is idempotent: re-closing a closed sidebar does not notify.
func (s *Store) Close() {
	s.set(models.SidebarClosed)
}

// Toggle flips the visibility. Two toggles restore the prior value.
func (s *Store) Toggle() {
	s.mu.Lock()
	s.visibility = s.visibility.Flip()
	next := s.visibility
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, next)
}

func (s *Store) set(v models.SidebarVisibility) {
	s.mu.Lock()
	if s.visibility == v {
		s.mu.Unlock()
		return
	}
	s.visibility = v
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, v)
}

// Subscribe registers fn and returns its unsubscribe func. Callbacks
// run synchronously, in subscription order, before the mutating call
// returns. They run outside the store lock so a callback may read the
// store again.
func (s *Store) Subscribe(fn func(models.SidebarVisibility)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) snapshotLocked() []subscriber {
	if len(s.subscribers) == 0 {
		return nil
	}
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func notify(subs []subscriber, v models.SidebarVisibility) {
	for _, sub := range subs {
		sub.fn(v)
	}
}
