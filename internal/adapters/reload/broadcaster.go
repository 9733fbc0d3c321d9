package reload

import (
	"context"
	"log/slog"
	"sync"

	"github.com/definance/dexgate/internal/usecase"
)

// Listener receives reload requests
type Listener func(ctx context.Context, reason string)

// Broadcaster fans reload requests out to every attached listener, such as the
// websocket event hub of the HTTP server.
type Broadcaster struct {
	log *slog.Logger

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
	sent      int
}

// NewBroadcaster creates a new reload broadcaster
func NewBroadcaster(log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		log:       log.With("component", "Reload"),
		listeners: make(map[int]Listener),
	}
}

// Listen attaches fn and returns a func that detaches it
func (b *Broadcaster) Listen(fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Reload forwards the request to every listener
func (b *Broadcaster) Reload(ctx context.Context, reason string) {
	b.mu.Lock()
	b.sent++
	listeners := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.Unlock()

	b.log.Info("Requesting client reload", "reason", reason, "listeners", len(listeners))
	for _, fn := range listeners {
		fn(ctx, reason)
	}
}

// Sent returns how many reloads were requested
func (b *Broadcaster) Sent() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sent
}

// Ensure Broadcaster implements the interface
var _ usecase.Reloader = (*Broadcaster)(nil)
