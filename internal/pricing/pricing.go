// Package pricing holds the order arithmetic: effective unit prices,
// line subtotals, order totals and the upfront payment split. Everything is
// a pure function over whole-rupiah decimal amounts.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/takeariz/storefront/internal/errors"
)

// DepositRate is the portion of the order total collected at checkout,
// before delivery. Fixed at 50% for this store.
var DepositRate = decimal.NewFromFloat(0.5)

var oneHundred = decimal.NewFromInt(100)

// ValidateDiscount rejects discount percentages outside [0,100]. This runs at
// catalog-write time so the read path never has to compute defensively.
func ValidateDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return errors.ValidationError("Discount must be between 0 and 100")
	}

	return nil
}

// EffectiveUnitPrice applies the product discount to its base price, rounded
// down to whole currency units so a nonzero discount always lowers the price.
// A zero discount returns the base price unchanged.
func EffectiveUnitPrice(basePrice, discountPct decimal.Decimal) decimal.Decimal {
	if discountPct.IsZero() {
		return basePrice
	}

	factor := decimal.NewFromInt(1).Sub(discountPct.Div(oneHundred))

	return basePrice.Mul(factor).RoundDown(0)
}

// LineSubtotal is unitPrice × quantity. Zero or negative quantities are a
// validation error, never clamped.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, errors.ValidationError("Quantity must be a positive integer")
	}

	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Line is the minimal shape OrderTotal needs: a price snapshot and a quantity.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// OrderTotal sums line subtotals. It is the single authority for order
// totals: checkout recomputes through here and never trusts a client value.
func OrderTotal(lines []Line) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, line := range lines {
		subtotal, err := LineSubtotal(line.UnitPrice, line.Quantity)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(subtotal)
	}

	return total, nil
}

// Deposit is the upfront payment for a given order total, rounded to whole
// currency units.
func Deposit(total decimal.Decimal) decimal.Decimal {
	return total.Mul(DepositRate).Round(0)
}

// Remaining is total − paid. A paid amount exceeding the total is an
// invariant violation and rejected here rather than clamped.
func Remaining(total, paid decimal.Decimal) (decimal.Decimal, error) {
	if paid.IsNegative() {
		return decimal.Zero, errors.ValidationError("Paid amount cannot be negative")
	}

	if paid.GreaterThan(total) {
		return decimal.Zero, errors.ValidationError("Paid amount cannot exceed the order total")
	}

	return total.Sub(paid), nil
}
