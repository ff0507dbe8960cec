package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/xo-club/storefront-api/internal/cart"
	"github.com/xo-club/storefront-api/internal/tax"
)

// ShippingMethod selects the delivery option for an order.
type ShippingMethod string

const (
	// ShippingExpress is always free.
	ShippingExpress ShippingMethod = "express"
	// ShippingStandard is free above FreeShippingThreshold, otherwise StandardShippingFee.
	ShippingStandard ShippingMethod = "standard"
)

// PromoRate is the flat discount applied when a promo code is active.
var PromoRate = decimal.NewFromFloat(0.15)

// FreeShippingThreshold is the subtotal above which standard shipping is free.
var FreeShippingThreshold = decimal.NewFromInt(150)

// StandardShippingFee is charged for standard shipping below the threshold.
var StandardShippingFee = decimal.NewFromInt(10)

// Totals holds the computed pricing components of an order. Values retain full
// precision; rounding to 2 decimal places (4 for the tax rate) happens only at
// presentation and submission boundaries.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	PromoDiscount decimal.Decimal `json:"promoDiscount"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// ComputeTotals derives order totals from cart lines and checkout selections.
// It is pure and idempotent: identical inputs always produce identical
// outputs. Lines with quantity below one or a negative unit price contribute
// nothing rather than failing.
func ComputeTotals(lines []cart.Line, promoApplied bool, method ShippingMethod, region string, rates *tax.Table) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 || line.UnitPrice.IsNegative() {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := decimal.Zero
	if promoApplied {
		discount = subtotal.Mul(PromoRate)
	}

	fee := shippingFee(method, subtotal)

	rate := rates.Lookup(region)
	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	taxAmount := taxable.Mul(rate)

	return Totals{
		Subtotal:      subtotal,
		PromoDiscount: discount,
		ShippingFee:   fee,
		TaxRate:       rate,
		Tax:           taxAmount,
		Total:         subtotal.Sub(discount).Add(fee).Add(taxAmount),
	}
}

func shippingFee(method ShippingMethod, subtotal decimal.Decimal) decimal.Decimal {
	if method == ShippingExpress {
		return decimal.Zero
	}
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return StandardShippingFee
}

// Rounded returns the totals with monetary fields rounded half away from zero
// to 2 decimal places and the tax rate to 4 places, the form used for display
// and for the persisted order record.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:      roundMoney(t.Subtotal),
		PromoDiscount: roundMoney(t.PromoDiscount),
		ShippingFee:   roundMoney(t.ShippingFee),
		TaxRate:       t.TaxRate.Round(4),
		Tax:           roundMoney(t.Tax),
		Total:         roundMoney(t.Total),
	}
}

// decimal.Round rounds half away from zero.
func roundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
