package devwatch

import (
	"sync"

	"github.com/gatefig/gatefig/pkg/models"
)

// Notifier fans reload signals out to subscribed browser connections.
type Notifier struct {
	mu      sync.Mutex
	clients map[chan struct{}]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{clients: make(map[chan struct{}]struct{})}
}

func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.clients[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.clients[ch]; ok {
		delete(n.clients, ch)
		close(ch)
	}
}

// Broadcast signals every subscriber without blocking.
func (n *Notifier) Broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

var _ models.ReloadNotifier = &Notifier{}
