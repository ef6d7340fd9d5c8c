package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	t.Run("flat fee plus tax on subtotal", func(t *testing.T) {
		// One line: unit price 100, quantity 2.
		got := ComputeTotals(200, Pricing{ShippingFee: 50, TaxRate: 0.05})
		assert.Equal(t, Totals{Subtotal: 200, Shipping: 50, Tax: 10, Total: 260}, got)
	})

	t.Run("tax rounds to nearest minor unit", func(t *testing.T) {
		got := ComputeTotals(333, Pricing{ShippingFee: 0, TaxRate: 0.05})
		assert.Equal(t, int64(17), got.Tax)
		assert.Equal(t, int64(350), got.Total)
	})

	t.Run("empty cart", func(t *testing.T) {
		got := ComputeTotals(0, Pricing{ShippingFee: 50, TaxRate: 0.05})
		assert.Equal(t, int64(50), got.Total)
	})
}
