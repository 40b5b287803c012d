package accounting

import (
	"sort"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Aggregate computes the subtotal, per-rate tax breakdown and grand total of
// a set of line items. It is a pure function of its input.
//
// Rounding policy:
//   - taxable bases and the subtotal are summed at full precision
//   - each rate's tax amount is rounded to two decimals before it is summed
//     into the total tax, matching the per-rate lines shown on an invoice
//   - the grand total is rounded once more at the end
func Aggregate(items []domain.LineItem) domain.AggregationResult {
	type group struct {
		rate decimal.Decimal
		base decimal.Decimal
	}

	// Rates are discrete user inputs, so grouping is by exact value.
	// String() drops trailing zeros, which makes 20 and 20.0 the same key.
	groups := make(map[string]*group)
	for _, item := range items {
		key := item.TaxRatePercent.String()
		g, ok := groups[key]
		if !ok {
			g = &group{rate: item.TaxRatePercent, base: decimal.Zero}
			groups[key] = g
		}
		g.base = g.base.Add(domain.TaxableBase(item.UnitPrice, item.Quantity))
	}

	breakdown := make([]domain.TaxBreakdownEntry, 0, len(groups))
	subtotal := decimal.Zero
	totalTax := decimal.Zero
	for _, g := range groups {
		taxAmount := domain.Round2(domain.TaxOn(g.base, g.rate))
		breakdown = append(breakdown, domain.TaxBreakdownEntry{
			RatePercent: g.rate,
			TaxableBase: g.base,
			TaxAmount:   taxAmount,
		})
		subtotal = subtotal.Add(g.base)
		totalTax = totalTax.Add(taxAmount)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].RatePercent.LessThan(breakdown[j].RatePercent)
	})

	return domain.AggregationResult{
		Subtotal:     domain.Round2(subtotal),
		TaxBreakdown: breakdown,
		TotalTax:     totalTax,
		GrandTotal:   domain.Round2(subtotal.Add(totalTax)),
	}
}
