package models

import (
	"fmt"
	"time"
)

// Event names for KOT lifecycle messages sent to the kitchen.
const (
	EventKOTCreated = "kot.created"
	EventKOTClosed  = "kot.closed"
)

// KOTEvent represents a message published to the kitchen exchange
// when an order is created or closed.
type KOTEvent struct {
	Event       string      `json:"event"`
	KOT         int         `json:"kot"`
	Kind        OrderKind   `json:"order_kind"`
	TableNumber int         `json:"table_number,omitempty"`
	Lines       []OrderLine `json:"lines"`
	Total       string      `json:"total,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// NewKOTCreatedEvent builds the event announcing a freshly opened order.
func NewKOTCreatedEvent(o *Order, now time.Time) *KOTEvent {
	return &KOTEvent{
		Event:       EventKOTCreated,
		KOT:         o.ID,
		Kind:        o.Kind,
		TableNumber: o.TableNumber,
		Lines:       append([]OrderLine(nil), o.Lines...),
		Timestamp:   now,
	}
}

// NewKOTClosedEvent builds the event announcing a billed order,
// carrying the final total as rendered on the receipt.
func NewKOTClosedEvent(o *Order, b Bill, now time.Time) *KOTEvent {
	return &KOTEvent{
		Event:       EventKOTClosed,
		KOT:         o.ID,
		Kind:        o.Kind,
		TableNumber: o.TableNumber,
		Lines:       append([]OrderLine(nil), o.Lines...),
		Total:       b.Total.StringFixed(2),
		Timestamp:   now,
	}
}

// RoutingKey returns the routing key used on the kitchen topic
// exchange, e.g. "kot.created.dine_in".
func (e *KOTEvent) RoutingKey() string {
	return fmt.Sprintf("%s.%s", e.Event, e.Kind)
}
