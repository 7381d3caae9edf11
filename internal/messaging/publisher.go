package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sufi2801/restaurant-billing-system/internal/logger"
	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

// Publisher emits KOT lifecycle events. The engine publishes best
// effort: a failed publish is logged, never fails the operation.
type Publisher interface {
	PublishKOTEvent(ctx context.Context, event *models.KOTEvent) error
	Close() error
}

// AMQPPublisher publishes KOT events to the kot_events exchange.
type AMQPPublisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a publisher over an established connection.
func NewPublisher(conn *Connection, log *logger.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		conn:   conn,
		logger: log,
	}
}

// PublishKOTEvent publishes one event, routed by event name and
// order kind (e.g. kot.closed.dine_in), as a persistent message.
func (p *AMQPPublisher) PublishKOTEvent(ctx context.Context, event *models.KOTEvent) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		ExchangeKOTEvents,  // exchange
		event.RoutingKey(), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("kot_event_publish_failed", err, map[string]any{
			"routing_key": event.RoutingKey(),
			"kot":         event.KOT,
		})
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("kot_event_published", map[string]any{
		"routing_key": event.RoutingKey(),
		"kot":         event.KOT,
	})
	return nil
}

// Close closes the underlying connection.
func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}

// NopPublisher drops every event. Used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishKOTEvent(context.Context, *models.KOTEvent) error { return nil }
func (NopPublisher) Close() error                                           { return nil }
