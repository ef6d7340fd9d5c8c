package domain

import "math"

// Pricing holds the fixed checkout charges. Amounts are minor currency
// units; TaxRate is a fraction of the subtotal.
type Pricing struct {
	ShippingFee int64
	TaxRate     float64
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeTotals prices an order: subtotal plus the flat shipping fee plus
// tax on the subtotal, tax rounded to the nearest minor unit.
func ComputeTotals(subtotal int64, p Pricing) Totals {
	tax := int64(math.Round(float64(subtotal) * p.TaxRate))
	return Totals{
		Subtotal: subtotal,
		Shipping: p.ShippingFee,
		Tax:      tax,
		Total:    subtotal + p.ShippingFee + tax,
	}
}
