package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/retail-kit/backoffice-console/internal/domain"
)

// Listener receives a session snapshot on every effective change.
type Listener func(domain.Session)

// Broadcaster fans session changes out to interested consumers. Listeners
// are keyed by subscription handle so unsubscription is O(1) and removing
// one listener never disturbs another. Delivery is synchronous relative to
// the triggering mutation; no ordering is guaranteed between listeners.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[string]Listener
}

// NewBroadcaster creates a broadcaster instance.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[string]Listener)}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (b *Broadcaster) Subscribe(fn Listener) func() {
	handle := uuid.NewString()

	b.mu.Lock()
	b.listeners[handle] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, handle)
		b.mu.Unlock()
	}
}

// Publish synchronously invokes every listener with its own defensive copy
// of the session.
func (b *Broadcaster) Publish(sess domain.Session) {
	b.mu.RLock()
	listeners := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(sess.Clone())
	}
}

// Len reports the number of active subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
