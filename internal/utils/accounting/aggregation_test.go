package accounting_test

import (
	"testing"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func item(t *testing.T, label, unitPrice, quantity, rate string, category domain.LineItemCategory) domain.LineItem {
	t.Helper()
	li, err := domain.NewLineItem(label, "inv-1", domain.LineItemFields{
		Label:          label,
		UnitPrice:      decimal.RequireFromString(unitPrice),
		Quantity:       decimal.RequireFromString(quantity),
		TaxRatePercent: decimal.RequireFromString(rate),
		Category:       category,
	}, 0)
	require.NoError(t, err)
	return li
}

func TestAggregate_TilingAndSand(t *testing.T) {
	items := []domain.LineItem{
		item(t, "Tiling", "500", "1", "20", domain.CategoryLabour),
		item(t, "Sand", "50", "2", "0", domain.CategoryMaterial),
	}

	result := accounting.Aggregate(items)

	assertDecimal(t, "600", result.Subtotal)
	require.Len(t, result.TaxBreakdown, 2)
	assertDecimal(t, "0", result.TaxBreakdown[0].RatePercent)
	assertDecimal(t, "100", result.TaxBreakdown[0].TaxableBase)
	assertDecimal(t, "0", result.TaxBreakdown[0].TaxAmount)
	assertDecimal(t, "20", result.TaxBreakdown[1].RatePercent)
	assertDecimal(t, "500", result.TaxBreakdown[1].TaxableBase)
	assertDecimal(t, "100", result.TaxBreakdown[1].TaxAmount)
	assertDecimal(t, "100", result.TotalTax)
	assertDecimal(t, "700", result.GrandTotal)
}

func TestAggregate_GroupsByRate(t *testing.T) {
	items := []domain.LineItem{
		item(t, "Plastering", "100", "1", "20", domain.CategoryLabour),
		item(t, "Painting", "50", "1", "20", domain.CategoryLabour),
		item(t, "Paint", "30", "1", "5", domain.CategoryMaterial),
	}

	result := accounting.Aggregate(items)

	require.Len(t, result.TaxBreakdown, 2)
	assertDecimal(t, "5", result.TaxBreakdown[0].RatePercent)
	assertDecimal(t, "30", result.TaxBreakdown[0].TaxableBase)
	assertDecimal(t, "1.50", result.TaxBreakdown[0].TaxAmount)
	assertDecimal(t, "20", result.TaxBreakdown[1].RatePercent)
	assertDecimal(t, "150", result.TaxBreakdown[1].TaxableBase)
	assertDecimal(t, "30.00", result.TaxBreakdown[1].TaxAmount)
	assertDecimal(t, "180", result.Subtotal)
	assertDecimal(t, "31.50", result.TotalTax)
	assertDecimal(t, "211.50", result.GrandTotal)
}

func TestAggregate_Idempotent(t *testing.T) {
	items := []domain.LineItem{
		item(t, "A", "19.99", "3", "20", domain.CategoryLabour),
		item(t, "B", "4.35", "2.5", "5", domain.CategoryMaterial),
		item(t, "C", "7", "1", "0", domain.CategoryMaterial),
	}

	first := accounting.Aggregate(items)
	second := accounting.Aggregate(items)

	assertDecimal(t, first.Subtotal.String(), second.Subtotal)
	assertDecimal(t, first.TotalTax.String(), second.TotalTax)
	assertDecimal(t, first.GrandTotal.String(), second.GrandTotal)
	require.Len(t, second.TaxBreakdown, len(first.TaxBreakdown))
	for i := range first.TaxBreakdown {
		assertDecimal(t, first.TaxBreakdown[i].RatePercent.String(), second.TaxBreakdown[i].RatePercent)
		assertDecimal(t, first.TaxBreakdown[i].TaxableBase.String(), second.TaxBreakdown[i].TaxableBase)
		assertDecimal(t, first.TaxBreakdown[i].TaxAmount.String(), second.TaxBreakdown[i].TaxAmount)
	}
}

func TestAggregate_Empty(t *testing.T) {
	result := accounting.Aggregate(nil)

	assertDecimal(t, "0", result.Subtotal)
	assert.NotNil(t, result.TaxBreakdown)
	assert.Empty(t, result.TaxBreakdown)
	assertDecimal(t, "0", result.TotalTax)
	assertDecimal(t, "0", result.GrandTotal)
}

func TestAggregate_EquivalentRateSpellingsShareAGroup(t *testing.T) {
	items := []domain.LineItem{
		item(t, "A", "10", "1", "20", domain.CategoryLabour),
		item(t, "B", "10", "1", "20.0", domain.CategoryLabour),
	}

	result := accounting.Aggregate(items)

	require.Len(t, result.TaxBreakdown, 1)
	assertDecimal(t, "20", result.TaxBreakdown[0].TaxableBase)
}

func TestAggregate_RoundsTaxPerRateBeforeSumming(t *testing.T) {
	// Each rate yields 0.004 of tax, which rounds to 0.00 per line of the
	// breakdown. Rounding only the final sum would have produced 0.01.
	items := []domain.LineItem{
		item(t, "A", "0.08", "1", "5", domain.CategoryMaterial),
		item(t, "B", "0.02", "1", "20", domain.CategoryMaterial),
	}

	result := accounting.Aggregate(items)

	require.Len(t, result.TaxBreakdown, 2)
	assertDecimal(t, "0.00", result.TaxBreakdown[0].TaxAmount)
	assertDecimal(t, "0.00", result.TaxBreakdown[1].TaxAmount)
	assertDecimal(t, "0", result.TotalTax)
	assertDecimal(t, "0.10", result.GrandTotal)
}

func TestAggregate_FullPrecisionSubtotal(t *testing.T) {
	items := []domain.LineItem{
		item(t, "A", "0.333", "1", "0", domain.CategoryMaterial),
		item(t, "B", "0.333", "1", "0", domain.CategoryMaterial),
		item(t, "C", "0.333", "1", "0", domain.CategoryMaterial),
	}

	result := accounting.Aggregate(items)

	// Per-line rounding would give 0.99; summing first gives 0.999 -> 1.00.
	assertDecimal(t, "1.00", result.Subtotal)
	assertDecimal(t, "1.00", result.GrandTotal)
	assertDecimal(t, "0.999", result.TaxBreakdown[0].TaxableBase)
}
