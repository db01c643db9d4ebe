// Package notify fans roster change events out between service instances
// that share one database, so every instance re-syncs after a write.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/preston-bernstein/equipment-tracker/internal/logging"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "equipment.roster.changed"

// Event announces that the roster changed on one instance.
type Event struct {
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Bus carries change events.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Listen registers fn and returns once the subscription is live. Delivery
	// stops when ctx is done.
	Listen(ctx context.Context, fn func(Event)) error
	Close()
}

// NATSBus publishes events on a core NATS subject.
type NATSBus struct {
	nc      *nats.Conn
	subject string
	logger  *slog.Logger
}

// Connect dials NATS with reconnects enabled.
func Connect(url, subject string, logger *slog.Logger) (*NATSBus, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	opts := []nats.Option{
		nats.Name("equipment-tracker"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logging.Warn(logger, "nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logging.Info(logger, "nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logging.Error(logger, "nats error", err)
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSBus{nc: nc, subject: subject, logger: logger}, nil
}

// Publish sends ev on the configured subject.
func (b *NATSBus) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.nc.Publish(b.subject, data); err != nil {
		return fmt.Errorf("publish to NATS: %w", err)
	}
	return nil
}

// Listen subscribes to the subject until ctx is done. Malformed payloads are
// logged and dropped.
func (b *NATSBus) Listen(ctx context.Context, fn func(Event)) error {
	sub, err := b.nc.Subscribe(b.subject, func(msg *nats.Msg) {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			logging.Warn(b.logger, "dropping malformed roster event", logging.FieldSubject, msg.Subject, "error", err)
			return
		}
		fn(ev)
	})
	if err != nil {
		return fmt.Errorf("subscribe to NATS: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

// Close drains pending messages and closes the connection.
func (b *NATSBus) Close() {
	if b == nil || b.nc == nil {
		return
	}
	if err := b.nc.Drain(); err != nil {
		b.nc.Close()
	}
}
