// Package orders owns every order of the session: creation with
// monotonic KOT ids, lookup, line mutation and closure.
package orders

import (
	"fmt"
	"time"

	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

// FirstKOT is the id assigned to the first order of a session.
const FirstKOT = 9001

// Store holds all orders of the session in creation order. Ids are
// strictly increasing and never reused, even for discarded orders.
type Store struct {
	nextID    int
	orders    []*models.Order
	byID      map[int]*models.Order
	maxOrders int
	maxLines  int
	clock     func() time.Time
}

// NewStore creates a store enforcing the given session caps. A nil
// clock defaults to time.Now.
func NewStore(maxOrders, maxLinesPerOrder int, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		nextID:    FirstKOT,
		byID:      make(map[int]*models.Order),
		maxOrders: maxOrders,
		maxLines:  maxLinesPerOrder,
		clock:     clock,
	}
}

// NextID returns the KOT the next created order will get.
func (s *Store) NextID() int { return s.nextID }

// Create opens a new active order and assigns it the next KOT.
// Table validation and reservation belong to the caller; the store
// only records the number.
func (s *Store) Create(kind models.OrderKind, tableNumber int) (*models.Order, error) {
	if len(s.orders) >= s.maxOrders {
		return nil, fmt.Errorf("orders: %w", models.ErrCapacityExceeded)
	}
	if kind != models.DineIn {
		tableNumber = 0
	}
	o := &models.Order{
		ID:          s.nextID,
		Kind:        kind,
		TableNumber: tableNumber,
		OpenedAt:    s.clock(),
		State:       models.StateActive,
	}
	s.nextID++
	s.orders = append(s.orders, o)
	s.byID[o.ID] = o
	return o, nil
}

// Find returns the order with the given KOT.
func (s *Store) Find(orderID int) (*models.Order, error) {
	o, ok := s.byID[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: KOT %d", models.ErrOrderNotFound, orderID)
	}
	return o, nil
}

// ListActive returns all active orders in creation order.
func (s *Store) ListActive() []*models.Order {
	var out []*models.Order
	for _, o := range s.orders {
		if o.State == models.StateActive {
			out = append(out, o)
		}
	}
	return out
}

// Close transitions an active order to closed. Closing an already
// closed order fails; closed is terminal.
func (s *Store) Close(orderID int) error {
	o, err := s.Find(orderID)
	if err != nil {
		return err
	}
	if o.State == models.StateClosed {
		return fmt.Errorf("%w: KOT %d", models.ErrOrderClosed, orderID)
	}
	o.State = models.StateClosed
	return nil
}
