// Package tables tracks which dine-in table is occupied by which
// active order. A table holds at most one active order at a time.
package tables

import (
	"fmt"

	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

// Registry maps table numbers 1..max to the KOT of the active
// order occupying them.
type Registry struct {
	max     int
	byTable map[int]int
}

// NewRegistry creates a registry for tables 1..max, all free.
func NewRegistry(max int) *Registry {
	return &Registry{
		max:     max,
		byTable: make(map[int]int),
	}
}

// Max returns the highest valid table number.
func (r *Registry) Max() int { return r.max }

// Reserve binds a table to an order. It fails for out-of-range
// table numbers and for tables that already have an active order.
func (r *Registry) Reserve(table, orderID int) error {
	if table < 1 || table > r.max {
		return fmt.Errorf("%w: %d", models.ErrInvalidTable, table)
	}
	if kot, ok := r.byTable[table]; ok {
		return fmt.Errorf("%w: table %d held by KOT %d", models.ErrTableOccupied, table, kot)
	}
	r.byTable[table] = orderID
	return nil
}

// Release frees a table. Releasing a free or out-of-range table is
// a no-op.
func (r *Registry) Release(table int) {
	delete(r.byTable, table)
}

// Occupant returns the KOT holding the table, if any.
func (r *Registry) Occupant(table int) (int, bool) {
	kot, ok := r.byTable[table]
	return kot, ok
}

// Status describes one table's occupancy.
type Status struct {
	Table    int
	Occupied bool
	OrderID  int
}

// StatusAll reports every table in ascending order.
func (r *Registry) StatusAll() []Status {
	out := make([]Status, 0, r.max)
	for t := 1; t <= r.max; t++ {
		s := Status{Table: t}
		if kot, ok := r.byTable[t]; ok {
			s.Occupied = true
			s.OrderID = kot
		}
		out = append(out, s)
	}
	return out
}
