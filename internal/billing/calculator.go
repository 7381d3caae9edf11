// Package billing computes the charge breakdown for an order. The
// computation is a pure function of the order, the current catalog
// and the configured rates.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/sufi2801/restaurant-billing-system/internal/config"
	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

// Catalog is the menu subset the calculator resolves prices from.
type Catalog interface {
	Lookup(code string) (models.MenuItem, error)
}

// Rates parameterizes the bill computation.
type Rates struct {
	GST            decimal.Decimal
	Service        decimal.Decimal
	Tier1Threshold decimal.Decimal
	Tier1Rate      decimal.Decimal
	Tier2Threshold decimal.Decimal
	Tier2Rate      decimal.Decimal
}

// DefaultRates returns the classic regime: 5% GST on food, 10%
// dine-in service, 10% discount above 1000 and 15% above 2000.
func DefaultRates() Rates {
	return Rates{
		GST:            decimal.NewFromFloat(0.05),
		Service:        decimal.NewFromFloat(0.10),
		Tier1Threshold: decimal.NewFromInt(1000),
		Tier1Rate:      decimal.NewFromFloat(0.10),
		Tier2Threshold: decimal.NewFromInt(2000),
		Tier2Rate:      decimal.NewFromFloat(0.15),
	}
}

// RatesFromConfig builds Rates from the billing config section.
func RatesFromConfig(bc config.BillingConfig) Rates {
	return Rates{
		GST:            decimal.NewFromFloat(bc.GSTRate),
		Service:        decimal.NewFromFloat(bc.ServiceRate),
		Tier1Threshold: decimal.NewFromFloat(bc.Tier1Threshold),
		Tier1Rate:      decimal.NewFromFloat(bc.Tier1Rate),
		Tier2Threshold: decimal.NewFromFloat(bc.Tier2Threshold),
		Tier2Rate:      decimal.NewFromFloat(bc.Tier2Rate),
	}
}

// Compute derives the bill for an order against the current
// catalog. Prices are resolved at call time, so catalog changes
// made after a line was placed show up in the bill. Lines whose
// code no longer resolves are skipped.
//
// Charge order: subtotal, GST on non-beverage lines, service for
// dine-in, then the tiered discount on the sum of all three. Tier
// thresholds compare strictly greater.
func Compute(o *models.Order, catalog Catalog, r Rates) models.Bill {
	var b models.Bill
	subtotal := decimal.Zero
	foodSubtotal := decimal.Zero

	for _, line := range o.Lines {
		item, err := catalog.Lookup(line.Code)
		if err != nil {
			continue
		}
		amount := item.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		subtotal = subtotal.Add(amount)
		if item.Category != models.Beverage {
			foodSubtotal = foodSubtotal.Add(amount)
		}
	}

	b.Subtotal = subtotal
	b.GST = foodSubtotal.Mul(r.GST)
	if o.Kind == models.DineIn {
		b.Service = subtotal.Mul(r.Service)
	} else {
		b.Service = decimal.Zero
	}

	preDiscount := b.Subtotal.Add(b.GST).Add(b.Service)
	rate := decimal.Zero
	switch {
	case preDiscount.GreaterThan(r.Tier2Threshold):
		rate = r.Tier2Rate
	case preDiscount.GreaterThan(r.Tier1Threshold):
		rate = r.Tier1Rate
	}

	b.Discount = preDiscount.Mul(rate)
	b.Total = preDiscount.Sub(b.Discount)
	b.DiscountPercent = rate.Mul(decimal.NewFromInt(100)).IntPart()
	return b
}
