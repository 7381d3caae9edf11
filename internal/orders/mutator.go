package orders

import (
	"fmt"

	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

// Catalog is the menu subset the mutator needs to admit new lines.
type Catalog interface {
	Lookup(code string) (models.MenuItem, error)
}

// active returns the order if it exists and is still open.
func (s *Store) active(orderID int) (*models.Order, error) {
	o, err := s.Find(orderID)
	if err != nil {
		return nil, err
	}
	if o.State != models.StateActive {
		return nil, fmt.Errorf("%w: KOT %d", models.ErrOrderClosed, orderID)
	}
	return o, nil
}

// AddLine adds qty of a menu item to an order. If the order already
// has a line for the code, the quantities merge; otherwise a new
// line is appended, subject to the per-order cap. The item must
// exist and be available at add time. On any error the order is
// left untouched.
func (s *Store) AddLine(catalog Catalog, orderID int, code string, qty int) error {
	o, err := s.active(orderID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return fmt.Errorf("%w: %d", models.ErrInvalidQty, qty)
	}
	item, err := catalog.Lookup(code)
	if err != nil {
		return err
	}
	if !item.Available {
		return fmt.Errorf("%w: %s", models.ErrUnavailable, code)
	}
	if i := o.LineIndex(code); i >= 0 {
		o.Lines[i].Qty += qty
		return nil
	}
	if len(o.Lines) >= s.maxLines {
		return fmt.Errorf("%w: KOT %d", models.ErrOrderFull, orderID)
	}
	o.Lines = append(o.Lines, models.OrderLine{Code: code, Qty: qty})
	return nil
}

// RemoveLine removes the line with the given code, preserving the
// relative order of the remaining lines.
func (s *Store) RemoveLine(orderID int, code string) error {
	o, err := s.active(orderID)
	if err != nil {
		return err
	}
	i := o.LineIndex(code)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrLineNotFound, code)
	}
	o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
	return nil
}

// SetLineQty replaces the quantity of an existing line in place.
// A quantity of zero or less removes the line.
func (s *Store) SetLineQty(orderID int, code string, newQty int) error {
	o, err := s.active(orderID)
	if err != nil {
		return err
	}
	if newQty <= 0 {
		return s.RemoveLine(orderID, code)
	}
	i := o.LineIndex(code)
	if i < 0 {
		return fmt.Errorf("%w: %s", models.ErrLineNotFound, code)
	}
	o.Lines[i].Qty = newQty
	return nil
}
