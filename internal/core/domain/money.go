package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places shown for user-visible amounts.
const MoneyPlaces int32 = 2

// Stored precision. Prices, quantities and expense amounts are NUMERIC(20,6),
// tax rates NUMERIC(9,4) and computed totals NUMERIC(20,2).
const (
	AmountScale     int32 = 6
	AmountIntDigits int32 = 14
	RateScale       int32 = 4
	RateIntDigits   int32 = 5
	TotalIntDigits  int32 = 18
)

// Round2 rounds a user-visible amount to MoneyPlaces (half away from zero).
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// FormatAmount renders an amount with exactly two decimals, e.g. "211.50".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPlaces)
}

// ParseAmount parses a user-entered decimal string for the named field.
// Non-numeric and negative inputs fail with apperrors.ErrInvalidAmount.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s is not a number: %q", apperrors.ErrInvalidAmount, field, raw)
	}
	if err := ValidateAmount(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount rejects negative values for the named field, and values the
// amount columns cannot hold exactly.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", apperrors.ErrInvalidAmount, field, amount.String())
	}
	return ValidatePrecision(field, amount, AmountIntDigits, AmountScale)
}

// ValidateRate is ValidateAmount for tax rate percentages.
func ValidateRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", apperrors.ErrInvalidAmount, field, rate.String())
	}
	return ValidatePrecision(field, rate, RateIntDigits, RateScale)
}

// ValidatePrecision rejects values with more than scale decimal places or more
// than intDigits digits before the decimal point. Trailing zeros are ignored.
func ValidatePrecision(field string, amount decimal.Decimal, intDigits, scale int32) error {
	if !amount.Equal(amount.Truncate(scale)) {
		return fmt.Errorf("%w: %s allows at most %d decimal places, got %s", apperrors.ErrInvalidAmount, field, scale, amount.String())
	}
	if amount.Abs().GreaterThanOrEqual(decimal.New(1, intDigits)) {
		return fmt.Errorf("%w: %s must have at most %d integer digits, got %s", apperrors.ErrInvalidAmount, field, intDigits, amount.String())
	}
	return nil
}

// TaxableBase is unitPrice * quantity at full precision.
func TaxableBase(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity)
}

// TaxOn computes base * ratePercent / 100 at full precision.
// Shift keeps the division by 100 exact.
func TaxOn(base, ratePercent decimal.Decimal) decimal.Decimal {
	return base.Mul(ratePercent).Shift(-2)
}

// ComputeLineTotal returns round2(unitPrice * quantity * (1 + taxRatePercent/100)).
// Only the final value is rounded.
func ComputeLineTotal(unitPrice, quantity, taxRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAmount("unitPrice", unitPrice); err != nil {
		return decimal.Zero, err
	}
	if err := ValidateAmount("quantity", quantity); err != nil {
		return decimal.Zero, err
	}
	if err := ValidateRate("taxRatePercent", taxRatePercent); err != nil {
		return decimal.Zero, err
	}
	base := TaxableBase(unitPrice, quantity)
	total := Round2(base.Add(TaxOn(base, taxRatePercent)))
	if err := ValidatePrecision("lineTotal", total, TotalIntDigits, MoneyPlaces); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
