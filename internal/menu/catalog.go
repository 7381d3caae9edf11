// Package menu holds the fixed menu catalog: lookup by code,
// availability toggling and category listings for display.
package menu

import (
	"fmt"

	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

// Catalog is the in-memory menu, keyed by item code. Codes are
// unique; insertion order is kept for stable listings.
type Catalog struct {
	items map[string]*models.MenuItem
	codes []string
	max   int
}

// NewCatalog creates an empty catalog capped at max items.
func NewCatalog(max int) *Catalog {
	return &Catalog{
		items: make(map[string]*models.MenuItem),
		max:   max,
	}
}

// Add registers a new item. It fails if the code is already taken
// or the catalog cap is reached.
func (c *Catalog) Add(item models.MenuItem) error {
	if _, ok := c.items[item.Code]; ok {
		return fmt.Errorf("duplicate menu code %q", item.Code)
	}
	if len(c.codes) >= c.max {
		return fmt.Errorf("menu: %w", models.ErrCapacityExceeded)
	}
	stored := item
	c.items[item.Code] = &stored
	c.codes = append(c.codes, item.Code)
	return nil
}

// Lookup returns the item with the given code.
func (c *Catalog) Lookup(code string) (models.MenuItem, error) {
	item, ok := c.items[code]
	if !ok {
		return models.MenuItem{}, fmt.Errorf("%w: %s", models.ErrUnknownItem, code)
	}
	return *item, nil
}

// ToggleAvailability flips the availability flag of an item and
// returns the new value. Already-placed order lines are unaffected.
func (c *Catalog) ToggleAvailability(code string) (bool, error) {
	item, ok := c.items[code]
	if !ok {
		return false, fmt.Errorf("%w: %s", models.ErrUnknownItem, code)
	}
	item.Available = !item.Available
	return item.Available, nil
}

// Items returns all items in insertion order.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, *c.items[code])
	}
	return out
}

// ItemsByCategory returns the items of one category in insertion order.
func (c *Catalog) ItemsByCategory(cat models.Category) []models.MenuItem {
	var out []models.MenuItem
	for _, code := range c.codes {
		if c.items[code].Category == cat {
			out = append(out, *c.items[code])
		}
	}
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int { return len(c.codes) }
