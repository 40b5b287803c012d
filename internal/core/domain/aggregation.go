package domain

import "github.com/shopspring/decimal"

// TaxBreakdownEntry is the taxable base and tax owed for one distinct rate.
// TaxAmount is rounded to two decimals; TaxableBase is kept at full precision.
type TaxBreakdownEntry struct {
	RatePercent decimal.Decimal `json:"ratePercent"`
	TaxableBase decimal.Decimal `json:"taxableBase"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
}

// AggregationResult is the derived totals view of a line item collection.
// It is never stored.
type AggregationResult struct {
	Subtotal     decimal.Decimal     `json:"subtotal"`
	TaxBreakdown []TaxBreakdownEntry `json:"taxBreakdown"`
	TotalTax     decimal.Decimal     `json:"totalTax"`
	GrandTotal   decimal.Decimal     `json:"grandTotal"`
}
