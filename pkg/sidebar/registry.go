package sidebar

import (
	"sync"
	"time"

	"github.com/gatefig/gatefig/pkg/models"
)

var _ models.SidebarStateRegistry = &Registry{}

// Registry owns one Store per browser session. Nothing is persisted:
// an unseen session gets a fresh store, created open.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

func (r *Registry) Acquire(sessionID string) models.SidebarStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &entry{store: NewStore(models.SidebarOpen)}
		r.entries[sessionID] = e
	}
	e.lastSeen = time.Now()

	return e.store
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// PurgeIdle drops stores for sessions that have not been seen for ttl.
func (r *Registry) PurgeIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			purged++
		}
	}

	return purged
}
