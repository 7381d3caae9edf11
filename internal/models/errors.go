// Error taxonomy of the order and billing engine. These sentinel
// values let the interactive driver distinguish failure scenarios
// without parsing messages; callers match them with errors.Is.
package models

import "errors"

// ErrUnknownItem is returned when a menu code is not in the catalog.
var ErrUnknownItem = errors.New("unknown menu item")

// ErrUnavailable is returned when the catalog marks an item
// unavailable at the time it is added to an order.
var ErrUnavailable = errors.New("item not available")

// ErrInvalidQty is returned when a quantity is zero or negative
// where a positive one is required.
var ErrInvalidQty = errors.New("quantity must be positive")

// ErrOrderFull is returned when appending a line would exceed the
// per-order line cap.
var ErrOrderFull = errors.New("order line limit reached")

// ErrOrderClosed is returned for any mutation or second closure of
// an order that has already been billed.
var ErrOrderClosed = errors.New("order already closed")

// ErrOrderNotFound is returned for an unknown KOT number.
var ErrOrderNotFound = errors.New("order not found")

// ErrLineNotFound is returned when a code is not present on the order.
var ErrLineNotFound = errors.New("item not in order")

// ErrInvalidTable is returned for a table number outside the
// configured range.
var ErrInvalidTable = errors.New("invalid table number")

// ErrTableOccupied is returned when a dine-in order targets a table
// that already has an active order.
var ErrTableOccupied = errors.New("table occupied")

// ErrCapacityExceeded is returned when a session-wide cap (orders,
// menu size) is reached.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrEmptyOrder is returned when billing an order with no lines.
var ErrEmptyOrder = errors.New("order has no items")

// ErrReceiptPersistFailed is returned when the receipt file cannot
// be written during closure. The order still closes; the in-memory
// state is the source of truth.
var ErrReceiptPersistFailed = errors.New("failed to persist receipt")
