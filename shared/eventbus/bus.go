package eventbus

import "context"

// Publisher accepts an event for delivery. A nil return means the bus accepted
// the event; it says nothing about consumer-side processing. Delivery is
// at-least-once and ordered only within a partition key, so every consumer
// must be idempotent.
type Publisher interface {
	Publish(ctx context.Context, topic string, event UserEvent) error
	Close() error
}

// Handler processes one delivered event. A non-nil error means the event
// could not be applied; the consumer logs and drops it rather than stalling
// the partition.
type Handler func(ctx context.Context, event UserEvent) error

// Consumer pulls events from a topic until its context is cancelled.
type Consumer interface {
	Start(ctx context.Context) error
	Close() error
}
