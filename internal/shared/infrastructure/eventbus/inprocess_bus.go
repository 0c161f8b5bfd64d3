package eventbus

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// HandlerFunc consumes one published event payload.
type HandlerFunc func(ctx context.Context, routingKey string, payload []byte) error

// InProcessBus is an in-memory event bus for local mode (no RabbitMQ).
// Events are delivered synchronously to registered handlers.
type InProcessBus struct {
	logger   *slog.Logger
	mu       sync.Mutex
	handlers map[string][]HandlerFunc // keyed by routing-key prefix
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		logger:   logger,
		handlers: make(map[string][]HandlerFunc),
	}
}

// Subscribe registers a handler for all routing keys with the given prefix.
// An empty prefix receives every event.
func (b *InProcessBus) Subscribe(prefix string, h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[prefix] = append(b.handlers[prefix], h)
}

// Publish dispatches the payload synchronously to all matching handlers.
// Handler errors are logged, never propagated: local consumers must not
// fail an already-flushed mutation.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for prefix, hs := range b.handlers {
		if !strings.HasPrefix(routingKey, prefix) {
			continue
		}
		for _, h := range hs {
			if err := h(ctx, routingKey, payload); err != nil {
				b.logger.Error("event handler failed",
					"routing_key", routingKey,
					"error", err,
				)
			}
		}
	}

	b.logger.Debug("event dispatched", "routing_key", routingKey, "size", len(payload))
	return nil
}

// Close implements Publisher. The in-process bus holds no connection.
func (b *InProcessBus) Close() error { return nil }
