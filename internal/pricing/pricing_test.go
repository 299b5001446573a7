package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appErrors "github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/pricing"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestEffectiveUnitPrice_NoDiscount(t *testing.T) {
	price := pricing.EffectiveUnitPrice(amount(350000), decimal.Zero)
	assert.True(t, price.Equal(amount(350000)))
}

func TestEffectiveUnitPrice_WithDiscount(t *testing.T) {
	// 420,000 at 10% off -> 378,000
	price := pricing.EffectiveUnitPrice(amount(420000), amount(10))
	assert.True(t, price.Equal(amount(378000)), "got %s", price)
}

func TestEffectiveUnitPrice_RoundsDown(t *testing.T) {
	// 1 at 5% off is 0.95; half-up rounding would climb back to the base
	// price, so the fraction must be dropped instead.
	price := pricing.EffectiveUnitPrice(amount(1), amount(5))
	assert.True(t, price.Equal(decimal.Zero), "got %s", price)

	// 99,999 at 10% off is 89,999.1 -> 89,999
	price = pricing.EffectiveUnitPrice(amount(99999), amount(10))
	assert.True(t, price.Equal(amount(89999)), "got %s", price)
}

func TestEffectiveUnitPrice_NeverExceedsBase(t *testing.T) {
	bases := []int64{1, 150000, 275000, 480000}
	discounts := []int64{0, 5, 15, 50, 100}

	for _, b := range bases {
		for _, d := range discounts {
			price := pricing.EffectiveUnitPrice(amount(b), amount(d))
			assert.True(t, price.LessThanOrEqual(amount(b)))

			if d == 0 {
				assert.True(t, price.Equal(amount(b)))
			} else {
				assert.True(t, price.LessThan(amount(b)))
			}
		}
	}
}

func TestValidateDiscount(t *testing.T) {
	assert.NoError(t, pricing.ValidateDiscount(decimal.Zero))
	assert.NoError(t, pricing.ValidateDiscount(amount(100)))

	err := pricing.ValidateDiscount(amount(101))
	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)

	assert.Error(t, pricing.ValidateDiscount(amount(-1)))
}

func TestLineSubtotal(t *testing.T) {
	subtotal, err := pricing.LineSubtotal(amount(350000), 2)
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(amount(700000)))
}

func TestLineSubtotal_RejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1, -10} {
		_, err := pricing.LineSubtotal(amount(100), qty)
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	}
}

func TestOrderTotal(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: amount(350000), Quantity: 2},
		{UnitPrice: amount(378000), Quantity: 1},
	}

	total, err := pricing.OrderTotal(lines)
	require.NoError(t, err)
	assert.True(t, total.Equal(amount(1078000)))
}

func TestOrderTotal_PropagatesInvalidQuantity(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: amount(350000), Quantity: 2},
		{UnitPrice: amount(378000), Quantity: 0},
	}

	_, err := pricing.OrderTotal(lines)
	assert.Error(t, err)
}

func TestDepositAndRemaining(t *testing.T) {
	total := amount(700000)

	deposit := pricing.Deposit(total)
	assert.True(t, deposit.Equal(amount(350000)))

	remaining, err := pricing.Remaining(total, deposit)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(amount(350000)))
}

func TestDepositPlusRemainingEqualsTotal(t *testing.T) {
	// Holds for odd totals too: the deposit rounds, the remainder absorbs it.
	for _, v := range []int64{0, 1, 125, 700000, 1078001} {
		total := amount(v)
		deposit := pricing.Deposit(total)

		remaining, err := pricing.Remaining(total, deposit)
		require.NoError(t, err)
		assert.True(t, deposit.Add(remaining).Equal(total), "total %d", v)
	}
}

func TestRemaining_RejectsOverpayment(t *testing.T) {
	_, err := pricing.Remaining(amount(100), amount(101))
	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)

	_, err = pricing.Remaining(amount(100), amount(-1))
	assert.Error(t, err)
}
