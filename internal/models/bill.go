package models

import "github.com/shopspring/decimal"

// Bill is the computed charge breakdown for an order. It is derived
// from the order and the current catalog at computation time and is
// never stored.
type Bill struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	GST      decimal.Decimal `json:"gst"`
	Service  decimal.Decimal `json:"service"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`

	// DiscountPercent is the applied tier as a whole percentage
	// (0, 10 or 15). Receipts show it only when non-zero.
	DiscountPercent int64 `json:"discount_percent"`
}
