package receipt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sufi2801/restaurant-billing-system/internal/billing"
	"github.com/sufi2801/restaurant-billing-system/internal/menu"
	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

var openedAt = time.Date(2025, 3, 14, 19, 4, 5, 0, time.UTC)

func dineInOrder() *models.Order {
	return &models.Order{
		ID:          9002,
		Kind:        models.DineIn,
		TableNumber: 5,
		Lines: []models.OrderLine{
			{Code: "M01", Qty: 2},
			{Code: "B02", Qty: 1},
			{Code: "D02", Qty: 1},
		},
		OpenedAt: openedAt,
		State:    models.StateActive,
	}
}

func TestRender_DineInWithDiscount(t *testing.T) {
	catalog, _ := menu.NewDefaultCatalog(80)
	o := dineInOrder()
	b := billing.Compute(o, catalog, billing.DefaultRates())

	var buf bytes.Buffer
	if err := Render(&buf, o, catalog, b); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := strings.Join([]string{
		"========================================",
		"               BILL / RECEIPT           ",
		"KOT: 9002",
		"Type: Dine-In",
		"Table: 5",
		"Date/Time: Fri Mar 14 19:04:05 2025",
		"----------------------------------------",
		"Code   Item                      Qty    Amount  ",
		"----------------------------------------",
		"M01    Butter Chicken            2      640.00  ",
		"B02    Cold Coffee               1      120.00  ",
		"D02    Brownie with Ice Cream    1      210.00  ",
		"----------------------------------------",
		"Subtotal:          970.00",
		"GST (5% on food):   42.50",
		"Service:            97.00",
		"Discount (10%):    110.95",
		"TOTAL:             998.55",
		"========================================",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("receipt mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestRender_TakeawayNoDiscountPercent(t *testing.T) {
	catalog, _ := menu.NewDefaultCatalog(80)
	o := &models.Order{
		ID:   9001,
		Kind: models.Takeaway,
		Lines: []models.OrderLine{
			{Code: "B01", Qty: 2},
			{Code: "S05", Qty: 1},
		},
		OpenedAt: openedAt,
		State:    models.StateActive,
	}
	b := billing.Compute(o, catalog, billing.DefaultRates())

	var buf bytes.Buffer
	if err := Render(&buf, o, catalog, b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := buf.String()

	if strings.Contains(got, "Table:") {
		t.Errorf("takeaway receipt must not show a table line:\n%s", got)
	}
	if strings.Contains(got, "Discount (") {
		t.Errorf("zero discount must not show a percentage:\n%s", got)
	}
	for _, line := range []string{
		"Type: Takeaway",
		"B01    Masala Chai               2      80.00   ",
		"S05    French Fries              1      130.00  ",
		"Subtotal:          210.00",
		"GST (5% on food):    6.50",
		"Service:             0.00",
		"Discount:            0.00",
		"TOTAL:             216.50",
	} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("receipt missing line %q:\n%s", line, got)
		}
	}
}

func TestRender_TruncatesLongNames(t *testing.T) {
	catalog, _ := menu.NewDefaultCatalog(80)
	o := &models.Order{
		ID:       9003,
		Kind:     models.Takeaway,
		Lines:    []models.OrderLine{{Code: "M03", Qty: 1}},
		OpenedAt: openedAt,
	}
	b := billing.Compute(o, catalog, billing.DefaultRates())

	var buf bytes.Buffer
	if err := Render(&buf, o, catalog, b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// "Hyderabadi Chicken Biryani" is 26 chars, cut to 25
	want := "M03    Hyderabadi Chicken Biryan 1      280.00  \n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("receipt missing truncated row %q:\n%s", want, buf.String())
	}
}

func TestRender_Deterministic(t *testing.T) {
	catalog, _ := menu.NewDefaultCatalog(80)
	o := dineInOrder()
	b := billing.Compute(o, catalog, billing.DefaultRates())

	var first, second bytes.Buffer
	if err := Render(&first, o, catalog, b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := Render(&second, o, catalog, b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("rendering the same order twice must be byte-identical")
	}
}

func TestWriteFile(t *testing.T) {
	catalog, _ := menu.NewDefaultCatalog(80)
	o := dineInOrder()
	b := billing.Compute(o, catalog, billing.DefaultRates())
	dir := t.TempDir()

	path, err := WriteFile(dir, o, catalog, b)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if path != filepath.Join(dir, "receipt_9002.txt") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, o, catalog, b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Errorf("file content differs from display rendering")
	}

	// a second write overwrites the previous receipt
	if _, err := WriteFile(dir, o, catalog, b); err != nil {
		t.Errorf("overwrite: %v", err)
	}
}

func TestWriteFile_Failure(t *testing.T) {
	catalog, _ := menu.NewDefaultCatalog(80)
	o := dineInOrder()
	b := billing.Compute(o, catalog, billing.DefaultRates())

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	if _, err := WriteFile(dir, o, catalog, b); !errors.Is(err, models.ErrReceiptPersistFailed) {
		t.Errorf("WriteFile error = %v, want ErrReceiptPersistFailed", err)
	}
}
