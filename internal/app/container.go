// Package app assembles the application's dependency container.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mizanapp/mizan/internal/anchor"
	"github.com/mizanapp/mizan/internal/planner/application"
	"github.com/mizanapp/mizan/internal/planner/infrastructure/persistence"
	"github.com/mizanapp/mizan/internal/shared/infrastructure/eventbus"
	"github.com/mizanapp/mizan/pkg/config"
)

// Container holds the wired application services.
type Container struct {
	Store      persistence.Store
	Anchors    *anchor.Source
	Publisher  eventbus.Publisher
	Dispatcher *application.Dispatcher
}

// NewContainer wires store, anchor source, event publisher, and the
// intent dispatcher from configuration.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	store, err := persistence.OpenStore(ctx, cfg.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	anchors, err := anchor.LoadSource(cfg.TimetablePath)
	if err != nil {
		if !os.IsNotExist(errors.Unwrap(err)) {
			_ = store.Close()
			return nil, fmt.Errorf("load timetable: %w", err)
		}
		// No timetable means unconstrained days, not a broken app.
		logger.Warn("timetable not found, running without anchors", "path", cfg.TimetablePath)
		anchors, _ = anchor.ParseSource(nil)
	}

	var publisher eventbus.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
	} else {
		bus := eventbus.NewInProcessBus(logger)
		bus.Subscribe("planner.", logEventConsumer(logger))
		publisher = bus
	}

	dispatcher := application.NewDispatcher(store, anchors,
		application.WithDayWindow(cfg.DayStart, cfg.DayEnd),
		application.WithMinFreeWindow(cfg.MinFreeWindow),
		application.WithPublisher(publisher),
		application.WithLogger(logger),
	)

	return &Container{
		Store:      store,
		Anchors:    anchors,
		Publisher:  publisher,
		Dispatcher: dispatcher,
	}, nil
}

// logEventConsumer is the local-mode event consumer: it unwraps each
// envelope and debug-logs the mutation, standing in for the external
// consumers a broker deployment would have.
func logEventConsumer(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, routingKey string, payload []byte) error {
		var env eventbus.Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			return fmt.Errorf("decode event envelope: %w", err)
		}
		logger.DebugContext(ctx, "domain event",
			"routing_key", routingKey,
			"aggregate_id", env.AggregateID,
			"event_id", env.EventID,
		)
		return nil
	}
}

// Close releases the container's resources.
func (c *Container) Close() error {
	var firstErr error
	if err := c.Publisher.Close(); err != nil {
		firstErr = err
	}
	if err := c.Store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
