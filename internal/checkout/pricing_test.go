package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xo-club/storefront-api/internal/cart"
	"github.com/xo-club/storefront-api/internal/tax"
)

func line(price string, qty int) cart.Line {
	return cart.Line{
		ProductID: "p1",
		Name:      "Oversized Hoodie",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestComputeTotalsExpressCalifornia(t *testing.T) {
	totals := ComputeTotals([]cart.Line{line("65.00", 1)}, false, ShippingExpress, "CA", tax.USStates()).Rounded()

	if got := totals.Subtotal.String(); got != "65" {
		t.Fatalf("subtotal = %s", got)
	}
	if !totals.PromoDiscount.IsZero() {
		t.Fatalf("expected no discount, got %s", totals.PromoDiscount)
	}
	if !totals.ShippingFee.IsZero() {
		t.Fatalf("express shipping must be free, got %s", totals.ShippingFee)
	}
	if got := totals.TaxRate.String(); got != "0.0725" {
		t.Fatalf("tax rate = %s", got)
	}
	if got := totals.Tax.String(); got != "4.71" {
		t.Fatalf("tax = %s, want 4.71", got)
	}
	if got := totals.Total.String(); got != "69.71" {
		t.Fatalf("total = %s, want 69.71", got)
	}
}

func TestComputeTotalsStandardWithPromo(t *testing.T) {
	totals := ComputeTotals([]cart.Line{line("100.00", 2)}, true, ShippingStandard, "", tax.USStates()).Rounded()

	if got := totals.Subtotal.String(); got != "200" {
		t.Fatalf("subtotal = %s", got)
	}
	if got := totals.PromoDiscount.String(); got != "30" {
		t.Fatalf("discount = %s, want 30", got)
	}
	if !totals.ShippingFee.IsZero() {
		t.Fatalf("standard shipping above threshold must be free, got %s", totals.ShippingFee)
	}
	if got := totals.TaxRate.String(); got != "0.08" {
		t.Fatalf("tax rate = %s, want default 0.08", got)
	}
	if got := totals.Tax.String(); got != "13.6" {
		t.Fatalf("tax = %s, want 13.6", got)
	}
	if got := totals.Total.String(); got != "183.6" {
		t.Fatalf("total = %s, want 183.6", got)
	}
}

func TestStandardShippingBelowThreshold(t *testing.T) {
	totals := ComputeTotals([]cart.Line{line("65.00", 1)}, false, ShippingStandard, "", tax.USStates())
	if got := totals.ShippingFee.String(); got != "10" {
		t.Fatalf("shipping fee = %s, want 10", got)
	}
}

func TestStandardShippingAtThresholdStillCharged(t *testing.T) {
	// Free shipping requires the subtotal to exceed the threshold, not meet it.
	totals := ComputeTotals([]cart.Line{line("150.00", 1)}, false, ShippingStandard, "", tax.USStates())
	if got := totals.ShippingFee.String(); got != "10" {
		t.Fatalf("shipping fee at 150 = %s, want 10", got)
	}
}

func TestExpressShippingFreeBelowThreshold(t *testing.T) {
	totals := ComputeTotals([]cart.Line{line("20.00", 1)}, false, ShippingExpress, "", tax.USStates())
	if !totals.ShippingFee.IsZero() {
		t.Fatalf("express shipping fee = %s, want 0", totals.ShippingFee)
	}
}

func TestTaxAppliedAfterDiscount(t *testing.T) {
	// Tax base is the discounted subtotal, not the shipping-inclusive total.
	totals := ComputeTotals([]cart.Line{line("100.00", 1)}, true, ShippingStandard, "", tax.USStates())
	want := decimal.RequireFromString("85").Mul(decimal.RequireFromString("0.08"))
	if !totals.Tax.Equal(want) {
		t.Fatalf("tax = %s, want %s", totals.Tax, want)
	}
	if got := totals.ShippingFee.String(); got != "10" {
		t.Fatalf("shipping fee = %s, want 10", got)
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	lines := []cart.Line{line("19.99", 3), line("42.50", 1)}
	first := ComputeTotals(lines, true, ShippingStandard, "ny", tax.USStates())
	second := ComputeTotals(lines, true, ShippingStandard, "ny", tax.USStates())
	if !first.Total.Equal(second.Total) || !first.Tax.Equal(second.Tax) {
		t.Fatalf("totals changed across identical calls: %v vs %v", first, second)
	}
}

func TestComputeTotalsSkipsInvalidLines(t *testing.T) {
	lines := []cart.Line{
		line("65.00", 1),
		line("10.00", 0),
		line("-5.00", 2),
	}
	totals := ComputeTotals(lines, false, ShippingExpress, "", tax.USStates())
	if got := totals.Subtotal.String(); got != "65" {
		t.Fatalf("subtotal = %s, invalid lines must contribute nothing", got)
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, true, ShippingStandard, "CA", tax.USStates())
	if !totals.Subtotal.IsZero() || !totals.Tax.IsZero() {
		t.Fatalf("empty cart must price to zero, got %v", totals)
	}
	if got := totals.ShippingFee.String(); got != "10" {
		t.Fatalf("empty standard cart still carries the flat fee, got %s", got)
	}
}

func TestRoundedHalfAwayFromZero(t *testing.T) {
	totals := Totals{
		Subtotal:      decimal.RequireFromString("2.675"),
		PromoDiscount: decimal.Zero,
		ShippingFee:   decimal.Zero,
		TaxRate:       decimal.RequireFromString("0.07250"),
		Tax:           decimal.RequireFromString("0.005"),
		Total:         decimal.RequireFromString("2.675"),
	}.Rounded()

	if got := totals.Subtotal.String(); got != "2.68" {
		t.Fatalf("subtotal = %s, want 2.68", got)
	}
	if got := totals.Tax.String(); got != "0.01" {
		t.Fatalf("tax = %s, want 0.01", got)
	}
	if got := totals.TaxRate.String(); got != "0.0725" {
		t.Fatalf("tax rate = %s, want 0.0725", got)
	}
}
