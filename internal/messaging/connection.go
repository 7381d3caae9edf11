// Package messaging publishes KOT lifecycle events to a RabbitMQ
// exchange so a kitchen display can follow the session. The whole
// package is optional; when the broker is disabled in config the
// engine runs with the no-op publisher instead.
package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sufi2801/restaurant-billing-system/internal/config"
	"github.com/sufi2801/restaurant-billing-system/internal/logger"
)

const (
	// ExchangeKOTEvents is the topic exchange carrying KOT events.
	ExchangeKOTEvents = "kot_events"
	// QueueKitchen receives every KOT event.
	QueueKitchen = "kitchen_queue"
)

// Connection wraps the RabbitMQ connection and channel.
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
}

// Connect dials the broker and declares the KOT topology, retrying
// a few times before giving up.
func Connect(cfg *config.Config, log *logger.Logger) (*Connection, error) {
	c := &Connection{
		logger: log,
		url:    cfg.AMQPURL(),
	}
	if err := c.connect(); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}
	return c, nil
}

func (c *Connection) connect() error {
	const maxRetries = 3
	var err error

	for i := 0; i < maxRetries; i++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if setupErr := c.setupTopology(); setupErr != nil {
					c.Close()
					err = setupErr
				} else {
					return nil
				}
			} else {
				c.conn.Close()
			}
		}

		if i < maxRetries-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed", err, map[string]any{
				"retry_in": wait.String(),
			})
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// setupTopology declares the KOT exchange, the kitchen queue and
// the binding between them.
func (c *Connection) setupTopology() error {
	err := c.channel.ExchangeDeclare(
		ExchangeKOTEvents, // name
		"topic",           // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", ExchangeKOTEvents, err)
	}

	_, err = c.channel.QueueDeclare(
		QueueKitchen, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueueKitchen, err)
	}

	err = c.channel.QueueBind(
		QueueKitchen,      // queue
		"kot.*.*",         // routing key: kot.<event>.<kind>
		ExchangeKOTEvents, // exchange
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", QueueKitchen, err)
	}

	return nil
}

// IsClosed reports whether the underlying connection is gone.
func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect re-establishes the connection and topology.
func (c *Connection) Reconnect() error {
	c.Close()
	return c.connect()
}

// Channel exposes the AMQP channel for publishing.
func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

// Close shuts down the channel and connection.
func (c *Connection) Close() error {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
