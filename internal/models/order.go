package models

import "time"

// OrderKind represents the kind of an order
type OrderKind string

const (
	DineIn   OrderKind = "dine_in"
	Takeaway OrderKind = "takeaway"
)

// Label returns the receipt spelling of the order kind.
func (k OrderKind) Label() string {
	if k == DineIn {
		return "Dine-In"
	}
	return "Takeaway"
}

// OrderState represents the lifecycle state of an order
type OrderState string

const (
	StateActive OrderState = "active"
	StateClosed OrderState = "closed"
)

// OrderLine is one item position on an order. At most one line per
// menu code exists on an order; repeated additions merge by code.
type OrderLine struct {
	Code string `json:"code"`
	Qty  int    `json:"qty"`
}

// Order represents a customer order identified by its KOT number.
// Dine-in orders hold a table number in [1, max tables]; takeaway
// orders carry zero. Lines keep insertion order, which matters for
// display only.
type Order struct {
	ID          int         `json:"kot"`
	Kind        OrderKind   `json:"kind"`
	TableNumber int         `json:"table_number,omitempty"`
	Lines       []OrderLine `json:"lines"`
	OpenedAt    time.Time   `json:"opened_at"`
	State       OrderState  `json:"state"`
}

// LineIndex returns the position of the line with the given code,
// or -1 if the order has no such line.
func (o *Order) LineIndex(code string) int {
	for i, l := range o.Lines {
		if l.Code == code {
			return i
		}
	}
	return -1
}
