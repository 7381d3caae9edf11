// Package engine wires the catalog, order store, table registry,
// bill calculator and receipt renderer into one handle. All session
// state lives here; tests can instantiate independent engines.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sufi2801/restaurant-billing-system/internal/billing"
	"github.com/sufi2801/restaurant-billing-system/internal/config"
	"github.com/sufi2801/restaurant-billing-system/internal/logger"
	"github.com/sufi2801/restaurant-billing-system/internal/menu"
	"github.com/sufi2801/restaurant-billing-system/internal/messaging"
	"github.com/sufi2801/restaurant-billing-system/internal/models"
	"github.com/sufi2801/restaurant-billing-system/internal/orders"
	"github.com/sufi2801/restaurant-billing-system/internal/receipt"
	"github.com/sufi2801/restaurant-billing-system/internal/tables"
)

// Engine owns the in-memory session state. It is driven by a single
// interactive session; operations are synchronous and never overlap.
type Engine struct {
	catalog    *menu.Catalog
	orders     *orders.Store
	tables     *tables.Registry
	rates      billing.Rates
	receiptDir string
	clock      func() time.Time
	logger     *logger.Logger
	events     messaging.Publisher
}

// New builds an engine from configuration with a seeded catalog. A
// nil publisher disables kitchen events; a nil clock means time.Now.
func New(cfg *config.Config, log *logger.Logger, events messaging.Publisher, clock func() time.Time) (*Engine, error) {
	catalog, err := menu.NewDefaultCatalog(cfg.Limits.MaxMenu)
	if err != nil {
		return nil, fmt.Errorf("failed to seed menu: %w", err)
	}
	if events == nil {
		events = messaging.NopPublisher{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		catalog:    catalog,
		orders:     orders.NewStore(cfg.Limits.MaxOrders, cfg.Limits.MaxItemsPerOrder, clock),
		tables:     tables.NewRegistry(cfg.Limits.MaxTables),
		rates:      billing.RatesFromConfig(cfg.Billing),
		receiptDir: cfg.App.ReceiptDir,
		clock:      clock,
		logger:     log,
		events:     events,
	}, nil
}

// Catalog exposes the menu for display and availability toggling.
func (e *Engine) Catalog() *menu.Catalog { return e.catalog }

// MaxTables returns the highest valid table number.
func (e *Engine) MaxTables() int { return e.tables.Max() }

// CreateOrder opens a new order. Dine-in orders reserve their table
// for the lifetime of the order.
func (e *Engine) CreateOrder(kind models.OrderKind, tableNumber int) (*models.Order, error) {
	if kind == models.DineIn {
		if err := e.tables.Reserve(tableNumber, e.orders.NextID()); err != nil {
			return nil, err
		}
	}
	o, err := e.orders.Create(kind, tableNumber)
	if err != nil {
		if kind == models.DineIn {
			e.tables.Release(tableNumber)
		}
		return nil, err
	}

	e.logger.Info("order_created", map[string]any{
		"kot":   o.ID,
		"kind":  string(o.Kind),
		"table": o.TableNumber,
	})
	e.publish(models.NewKOTCreatedEvent(o, e.clock()))
	return o, nil
}

// Order returns the order with the given KOT.
func (e *Engine) Order(orderID int) (*models.Order, error) {
	return e.orders.Find(orderID)
}

// ActiveOrders lists open orders in creation order.
func (e *Engine) ActiveOrders() []*models.Order {
	return e.orders.ListActive()
}

// AddLine adds qty of a menu item to an active order.
func (e *Engine) AddLine(orderID int, code string, qty int) error {
	if err := e.orders.AddLine(e.catalog, orderID, code, qty); err != nil {
		return err
	}
	e.logger.Debug("line_added", map[string]any{"kot": orderID, "code": code, "qty": qty})
	return nil
}

// RemoveLine removes a line from an active order.
func (e *Engine) RemoveLine(orderID int, code string) error {
	if err := e.orders.RemoveLine(orderID, code); err != nil {
		return err
	}
	e.logger.Debug("line_removed", map[string]any{"kot": orderID, "code": code})
	return nil
}

// SetLineQty updates a line's quantity; zero or less removes it.
func (e *Engine) SetLineQty(orderID int, code string, newQty int) error {
	if err := e.orders.SetLineQty(orderID, code, newQty); err != nil {
		return err
	}
	e.logger.Debug("line_updated", map[string]any{"kot": orderID, "code": code, "qty": newQty})
	return nil
}

// PreviewBill computes the running bill of an order without
// closing it.
func (e *Engine) PreviewBill(orderID int) (models.Bill, error) {
	o, err := e.orders.Find(orderID)
	if err != nil {
		return models.Bill{}, err
	}
	return billing.Compute(o, e.catalog, e.rates), nil
}

// ToggleAvailability flips a menu item's availability and returns
// the new value.
func (e *Engine) ToggleAvailability(code string) (bool, error) {
	avail, err := e.catalog.ToggleAvailability(code)
	if err != nil {
		return false, err
	}
	e.logger.Info("availability_toggled", map[string]any{"code": code, "available": avail})
	return avail, nil
}

// CloseOrder bills an active order: it computes the bill, renders
// the receipt to display, persists the receipt file, closes the
// order and frees its table. A receipt-file failure is returned as
// ErrReceiptPersistFailed, but the order still closes; the in-memory
// closure is the source of truth, not the file.
func (e *Engine) CloseOrder(orderID int, display io.Writer) (models.Bill, string, error) {
	o, err := e.orders.Find(orderID)
	if err != nil {
		return models.Bill{}, "", err
	}
	if o.State != models.StateActive {
		return models.Bill{}, "", fmt.Errorf("%w: KOT %d", models.ErrOrderClosed, orderID)
	}
	if len(o.Lines) == 0 {
		return models.Bill{}, "", fmt.Errorf("%w: KOT %d", models.ErrEmptyOrder, orderID)
	}

	bill := billing.Compute(o, e.catalog, e.rates)

	if display != nil {
		if err := receipt.Render(display, o, e.catalog, bill); err != nil {
			e.logger.Error("receipt_display_failed", err, map[string]any{"kot": orderID})
		}
	}

	path, persistErr := receipt.WriteFile(e.receiptDir, o, e.catalog, bill)
	if persistErr != nil {
		e.logger.Error("receipt_persist_failed", persistErr, map[string]any{"kot": orderID})
	} else {
		e.logger.Info("receipt_written", map[string]any{"kot": orderID, "path": path})
	}

	e.publish(models.NewKOTClosedEvent(o, bill, e.clock()))

	if err := e.orders.Close(orderID); err != nil {
		return models.Bill{}, "", err
	}
	if o.Kind == models.DineIn {
		e.tables.Release(o.TableNumber)
	}
	e.logger.Info("order_closed", map[string]any{
		"kot":   orderID,
		"total": bill.Total.StringFixed(2),
	})

	if persistErr != nil {
		return bill, "", persistErr
	}
	return bill, path, nil
}

// TableStatus describes one table for the status view.
type TableStatus struct {
	Table    int
	Occupied bool
	KOT      int
	Lines    int
}

// TableStatuses reports every table, joining occupancy with the
// occupying order's line count.
func (e *Engine) TableStatuses() []TableStatus {
	statuses := e.tables.StatusAll()
	out := make([]TableStatus, 0, len(statuses))
	for _, s := range statuses {
		ts := TableStatus{Table: s.Table, Occupied: s.Occupied, KOT: s.OrderID}
		if s.Occupied {
			if o, err := e.orders.Find(s.OrderID); err == nil {
				ts.Lines = len(o.Lines)
			}
		}
		out = append(out, ts)
	}
	return out
}

// publish sends a kitchen event best effort.
func (e *Engine) publish(event *models.KOTEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.events.PublishKOTEvent(ctx, event); err != nil {
		e.logger.Error("kot_event_dropped", err, map[string]any{"kot": event.KOT})
	}
}
