package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sufi2801/restaurant-billing-system/internal/config"
	"github.com/sufi2801/restaurant-billing-system/internal/logger"
	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 19, 4, 5, 0, time.UTC)
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.App.ReceiptDir = t.TempDir()
	e, err := New(cfg, logger.NewWithWriter("test", io.Discard), nil, fixedClock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestCloseOrder_TakeawayNoDiscount(t *testing.T) {
	e := newEngine(t)

	o, err := e.CreateOrder(models.Takeaway, 0)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.ID != 9001 {
		t.Errorf("first KOT = %d, want 9001", o.ID)
	}
	if err := e.AddLine(o.ID, "B01", 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := e.AddLine(o.ID, "S05", 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	var display bytes.Buffer
	bill, path, err := e.CloseOrder(o.ID, &display)
	if err != nil {
		t.Fatalf("CloseOrder: %v", err)
	}
	if got := bill.Total.StringFixed(2); got != "216.50" {
		t.Errorf("total = %s, want 216.50", got)
	}
	if got := bill.GST.StringFixed(2); got != "6.50" {
		t.Errorf("gst = %s, want 6.50", got)
	}
	if !bill.Service.IsZero() {
		t.Errorf("takeaway service = %s, want 0", bill.Service)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("receipt file: %v", err)
	}
	if !bytes.Equal(data, display.Bytes()) {
		t.Errorf("file and display renderings differ")
	}
	if filepath.Base(path) != "receipt_9001.txt" {
		t.Errorf("receipt file name = %s", filepath.Base(path))
	}
}

func TestAddLine_MergeByCode(t *testing.T) {
	e := newEngine(t)
	o, _ := e.CreateOrder(models.Takeaway, 0)

	if err := e.AddLine(o.ID, "S03", 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := e.AddLine(o.ID, "S03", 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if len(o.Lines) != 1 || o.Lines[0].Qty != 3 {
		t.Fatalf("lines = %+v, want single S03 qty 3", o.Lines)
	}

	bill, err := e.PreviewBill(o.ID)
	if err != nil {
		t.Fatalf("PreviewBill: %v", err)
	}
	if got := bill.Subtotal.StringFixed(2); got != "780.00" {
		t.Errorf("subtotal = %s, want 780.00", got)
	}
}

func TestTableLifecycle(t *testing.T) {
	e := newEngine(t)

	first, err := e.CreateOrder(models.DineIn, 7)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := e.CreateOrder(models.DineIn, 7); !errors.Is(err, models.ErrTableOccupied) {
		t.Errorf("second create error = %v, want ErrTableOccupied", err)
	}
	if _, err := e.CreateOrder(models.DineIn, 0); !errors.Is(err, models.ErrInvalidTable) {
		t.Errorf("table 0 error = %v, want ErrInvalidTable", err)
	}
	if _, err := e.CreateOrder(models.DineIn, 51); !errors.Is(err, models.ErrInvalidTable) {
		t.Errorf("table 51 error = %v, want ErrInvalidTable", err)
	}

	if err := e.AddLine(first.ID, "M01", 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, _, err := e.CloseOrder(first.ID, nil); err != nil {
		t.Fatalf("CloseOrder: %v", err)
	}

	// billing freed table 7
	if _, err := e.CreateOrder(models.DineIn, 7); err != nil {
		t.Errorf("create after close: %v", err)
	}
}

func TestCloseOrder_IsTerminal(t *testing.T) {
	e := newEngine(t)
	o, _ := e.CreateOrder(models.DineIn, 3)
	if err := e.AddLine(o.ID, "D05", 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, _, err := e.CloseOrder(o.ID, nil); err != nil {
		t.Fatalf("CloseOrder: %v", err)
	}

	if err := e.AddLine(o.ID, "D05", 1); !errors.Is(err, models.ErrOrderClosed) {
		t.Errorf("AddLine after close error = %v, want ErrOrderClosed", err)
	}
	if err := e.RemoveLine(o.ID, "D05"); !errors.Is(err, models.ErrOrderClosed) {
		t.Errorf("RemoveLine after close error = %v, want ErrOrderClosed", err)
	}
	if _, _, err := e.CloseOrder(o.ID, nil); !errors.Is(err, models.ErrOrderClosed) {
		t.Errorf("second close error = %v, want ErrOrderClosed", err)
	}
}

func TestCloseOrder_EmptyOrderRejected(t *testing.T) {
	e := newEngine(t)
	o, _ := e.CreateOrder(models.Takeaway, 0)
	if _, _, err := e.CloseOrder(o.ID, nil); !errors.Is(err, models.ErrEmptyOrder) {
		t.Errorf("CloseOrder error = %v, want ErrEmptyOrder", err)
	}
	if o.State != models.StateActive {
		t.Errorf("rejected close must leave the order active")
	}
}

func TestCloseOrder_PersistFailureStillCloses(t *testing.T) {
	cfg := config.Default()
	cfg.App.ReceiptDir = filepath.Join(t.TempDir(), "missing")
	e, err := New(cfg, logger.NewWithWriter("test", io.Discard), nil, fixedClock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	o, _ := e.CreateOrder(models.DineIn, 4)
	if err := e.AddLine(o.ID, "M05", 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	bill, _, err := e.CloseOrder(o.ID, nil)
	if !errors.Is(err, models.ErrReceiptPersistFailed) {
		t.Fatalf("CloseOrder error = %v, want ErrReceiptPersistFailed", err)
	}
	if got := bill.Total.StringFixed(2); got != "402.50" {
		t.Errorf("total = %s, want 402.50", got)
	}
	if o.State != models.StateClosed {
		t.Errorf("order must close despite the file failure")
	}
	// and the table is freed
	if _, err := e.CreateOrder(models.DineIn, 4); err != nil {
		t.Errorf("table should be free after close: %v", err)
	}
}

func TestCreateOrder_CapacityReleasesTable(t *testing.T) {
	cfg := config.Default()
	cfg.App.ReceiptDir = t.TempDir()
	cfg.Limits.MaxOrders = 1
	e, err := New(cfg, logger.NewWithWriter("test", io.Discard), nil, fixedClock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := e.CreateOrder(models.Takeaway, 0); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := e.CreateOrder(models.DineIn, 3); !errors.Is(err, models.ErrCapacityExceeded) {
		t.Fatalf("over-cap create error = %v, want ErrCapacityExceeded", err)
	}
	for _, ts := range e.TableStatuses() {
		if ts.Table == 3 && ts.Occupied {
			t.Errorf("failed create must not leave table 3 reserved")
		}
	}
}

func TestTableStatuses_JoinLineCounts(t *testing.T) {
	e := newEngine(t)
	o, _ := e.CreateOrder(models.DineIn, 2)
	e.AddLine(o.ID, "S01", 1)
	e.AddLine(o.ID, "B03", 2)

	statuses := e.TableStatuses()
	if len(statuses) != 50 {
		t.Fatalf("got %d statuses, want 50", len(statuses))
	}
	got := statuses[1]
	if !got.Occupied || got.KOT != o.ID || got.Lines != 2 {
		t.Errorf("table 2 status = %+v, want occupied by %d with 2 lines", got, o.ID)
	}
}

// capturingPublisher records kitchen events for assertions.
type capturingPublisher struct {
	events []*models.KOTEvent
}

func (p *capturingPublisher) PublishKOTEvent(_ context.Context, e *models.KOTEvent) error {
	p.events = append(p.events, e)
	return nil
}
func (p *capturingPublisher) Close() error { return nil }

func TestKitchenEvents(t *testing.T) {
	cfg := config.Default()
	cfg.App.ReceiptDir = t.TempDir()
	pub := &capturingPublisher{}
	e, err := New(cfg, logger.NewWithWriter("test", io.Discard), pub, fixedClock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	o, _ := e.CreateOrder(models.DineIn, 9)
	e.AddLine(o.ID, "M02", 1)
	if _, _, err := e.CloseOrder(o.ID, nil); err != nil {
		t.Fatalf("CloseOrder: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(pub.events))
	}
	if pub.events[0].RoutingKey() != "kot.created.dine_in" {
		t.Errorf("first routing key = %s", pub.events[0].RoutingKey())
	}
	if pub.events[1].RoutingKey() != "kot.closed.dine_in" {
		t.Errorf("second routing key = %s", pub.events[1].RoutingKey())
	}
	if pub.events[1].Total != "345.00" {
		t.Errorf("closed event total = %s, want 345.00", pub.events[1].Total)
	}
}

func TestActiveOrders_CreationOrder(t *testing.T) {
	e := newEngine(t)
	a, _ := e.CreateOrder(models.Takeaway, 0)
	b, _ := e.CreateOrder(models.DineIn, 1)
	c, _ := e.CreateOrder(models.Takeaway, 0)

	e.AddLine(b.ID, "S01", 1)
	if _, _, err := e.CloseOrder(b.ID, nil); err != nil {
		t.Fatalf("CloseOrder: %v", err)
	}

	active := e.ActiveOrders()
	if len(active) != 2 || active[0].ID != a.ID || active[1].ID != c.ID {
		t.Errorf("active = %v, want [%d %d]", kots(active), a.ID, c.ID)
	}

	if !strings.HasPrefix(active[0].OpenedAt.Format(time.ANSIC), "Fri Mar 14") {
		t.Errorf("OpenedAt should come from the injected clock")
	}
}

func kots(orders []*models.Order) []int {
	out := make([]int, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
