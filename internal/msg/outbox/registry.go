package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is what a handler receives: the stored event with its payload decoded.
type Event struct {
	ID        uuid.UUID
	Topic     string
	Payload   Payload
	Attempts  int
	CreatedAt time.Time
}

// Handler must be idempotent. A failed event is retried and every handler of its topic runs again.
type Handler func(ctx context.Context, event Event) error

type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string][]Handler),
	}
}

// Register adds h to the handlers of topic. Handlers of one topic run in registration order.
func (r *Registry) Register(topic string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[topic] = append(r.handlers[topic], h)
}

// Lookup returns a single handler running every handler of topic, stopping at the first error.
func (r *Registry) Lookup(topic string) (Handler, bool) {
	r.mu.RLock()
	handlers := r.handlers[topic]
	r.mu.RUnlock()

	if len(handlers) == 0 {
		return nil, false
	}

	return func(ctx context.Context, event Event) error {
		for _, h := range handlers {
			if err := h(ctx, event); err != nil {
				return err
			}
		}

		return nil
	}, true
}

func (r *Registry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		topics = append(topics, t)
	}

	return topics
}

// Handle adapts a function over a concrete payload type into a Handler.
func Handle[P Payload](fn func(ctx context.Context, event Event, payload P) error) Handler {
	return func(ctx context.Context, event Event) error {
		payload, ok := event.Payload.(P)
		if !ok {
			return fmt.Errorf("unexpected payload %T for topic %s", event.Payload, event.Topic)
		}

		return fn(ctx, event, payload)
	}
}
