// Package alert provides the in-process publish/subscribe channel for
// transient banner messages.
package alert

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// subscriberBuffer bounds each consumer's queue. Alerts beyond the buffer are
// dropped rather than blocking a store mid-operation.
const subscriberBuffer = 16

type channel struct {
	mu     sync.Mutex
	subs   map[string]chan entity.Alert
	closed bool
	logger *slog.Logger
}

// Params holds dependencies for the alert channel, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Logger *slog.Logger
}

// New creates the alert channel and closes it on fx shutdown.
func New(params Params) service.AlertPublisher {
	ch := NewChannel(params.Logger)
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return ch.Close()
		},
	})

	return ch
}

// NewChannel creates an alert channel without lifecycle wiring.
func NewChannel(logger *slog.Logger) service.AlertPublisher {
	return &channel{
		subs:   make(map[string]chan entity.Alert),
		logger: logger,
	}
}

func (c *channel) Success(message string) { c.publish(entity.AlertSuccess, message) }
func (c *channel) Danger(message string)  { c.publish(entity.AlertDanger, message) }
func (c *channel) Warning(message string) { c.publish(entity.AlertWarning, message) }
func (c *channel) Info(message string)    { c.publish(entity.AlertInfo, message) }

func (c *channel) publish(level entity.AlertLevel, message string) {
	a := entity.Alert{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	for _, sub := range c.subs {
		select {
		case sub <- a:
		default:
			// Fire-and-forget: a slow consumer loses alerts, it never
			// stalls the publisher.
			c.logger.Debug("Dropped alert for slow subscriber",
				slog.String("level", string(level)),
				slog.String("message", message),
			)
		}
	}
}

// Subscribe registers a consumer and returns its receive channel plus a
// cancel function.
func (c *channel) Subscribe() (<-chan entity.Alert, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	sub := make(chan entity.Alert, subscriberBuffer)
	if c.closed {
		close(sub)

		return sub, func() {}
	}
	c.subs[id] = sub

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if s, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(s)
		}
	}

	return sub, cancel
}

// Close releases every subscriber channel; further publishes are dropped.
func (c *channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}

	return nil
}
