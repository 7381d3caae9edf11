// Package receipt renders a closed order's bill in the fixed text
// layout of the classic tool, both to the interactive display and
// to a receipt file.
package receipt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

const lineWidth = 40

// Catalog resolves the codes on the order to names and prices.
type Catalog interface {
	Lookup(code string) (models.MenuItem, error)
}

// Filename returns the receipt file name for a KOT.
func Filename(orderID int) string {
	return fmt.Sprintf("receipt_%d.txt", orderID)
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) f(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func rule(ch byte) string {
	b := make([]byte, lineWidth)
	for i := range b {
		b[i] = ch
	}
	return string(b)
}

// Render writes the receipt for an order and its bill. Item rows
// resolve against the current catalog; codes that no longer
// resolve are skipped, matching the bill computation. Names longer
// than 25 characters are truncated. The timestamp is local time in
// ANSIC layout.
func Render(w io.Writer, o *models.Order, catalog Catalog, b models.Bill) error {
	p := &printer{w: w}

	p.f("%s\n", rule('='))
	p.f("               BILL / RECEIPT           \n")
	p.f("KOT: %d\n", o.ID)
	p.f("Type: %s\n", o.Kind.Label())
	if o.Kind == models.DineIn {
		p.f("Table: %d\n", o.TableNumber)
	}
	p.f("Date/Time: %s\n", o.OpenedAt.Format(time.ANSIC))
	p.f("%s\n", rule('-'))
	p.f("%-6s %-25s %-6s %-8s\n", "Code", "Item", "Qty", "Amount")
	p.f("%s\n", rule('-'))

	for _, line := range o.Lines {
		item, err := catalog.Lookup(line.Code)
		if err != nil {
			continue
		}
		name := item.Name
		if len(name) > 25 {
			name = name[:25]
		}
		amount := item.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		p.f("%-6s %-25s %-6d %-8s\n", item.Code, name, line.Qty, amount.StringFixed(2))
	}

	p.f("%s\n", rule('-'))
	p.f("%-17s%8s\n", "Subtotal:", b.Subtotal.StringFixed(2))
	p.f("%-17s%8s\n", "GST (5% on food):", b.GST.StringFixed(2))
	p.f("%-17s%8s\n", "Service:", b.Service.StringFixed(2))
	if b.DiscountPercent > 0 {
		p.f("%-17s%8s\n", fmt.Sprintf("Discount (%d%%):", b.DiscountPercent), b.Discount.StringFixed(2))
	} else {
		p.f("%-17s%8s\n", "Discount:", b.Discount.StringFixed(2))
	}
	p.f("%-17s%8s\n", "TOTAL:", b.Total.StringFixed(2))
	p.f("%s\n", rule('='))

	return p.err
}

// WriteFile persists the receipt as receipt_<KOT>.txt under dir
// (the working directory when dir is empty), overwriting any
// previous file. The file is flushed and closed before returning.
// Failures are reported as ErrReceiptPersistFailed.
func WriteFile(dir string, o *models.Order, catalog Catalog, b models.Bill) (string, error) {
	path := filepath.Join(dir, Filename(o.ID))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrReceiptPersistFailed, err)
	}
	if err := Render(f, o, catalog, b); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %v", models.ErrReceiptPersistFailed, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrReceiptPersistFailed, err)
	}
	return path, nil
}
