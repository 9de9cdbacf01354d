package eventbus

import (
	"context"
	"log"
	"sync"
)

// MemoryBus is a synchronous in-process bus used in tests and local wiring.
// Publish delivers to every subscriber before returning, which makes per-key
// ordering trivial and duplicate-delivery scenarios easy to script.
type MemoryBus struct {
	mu        sync.Mutex
	handlers  map[string][]Handler
	published map[string][]UserEvent
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers:  make(map[string][]Handler),
		published: make(map[string][]UserEvent),
	}
}

func (b *MemoryBus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

func (b *MemoryBus) Publish(ctx context.Context, topic string, event UserEvent) error {
	b.mu.Lock()
	b.published[topic] = append(b.published[topic], event)
	handlers := append([]Handler(nil), b.handlers[topic]...)
	b.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			log.Printf("[BUS] Dropping event %s for user %d after handler error: %v",
				event.EventType, event.UserID, err)
		}
	}
	return nil
}

func (b *MemoryBus) Close() error { return nil }

// Published returns every event accepted for a topic, in publish order.
func (b *MemoryBus) Published(topic string) []UserEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]UserEvent(nil), b.published[topic]...)
}
