package dto

import "github.com/SscSPs/renovation_backoffice/internal/core/domain"

// TaxBreakdownResponse is one per-rate row of an invoice total.
type TaxBreakdownResponse struct {
	RatePercent string `json:"ratePercent"`
	TaxableBase string `json:"taxableBase"`
	TaxAmount   string `json:"taxAmount"`
}

// TotalsResponse is the aggregated view of an invoice; all amounts use two decimals.
type TotalsResponse struct {
	InvoiceID    string                 `json:"invoiceID"`
	Subtotal     string                 `json:"subtotal"`
	TaxBreakdown []TaxBreakdownResponse `json:"taxBreakdown"`
	TotalTax     string                 `json:"totalTax"`
	GrandTotal   string                 `json:"grandTotal"`
}

// ToTotalsResponse converts an AggregationResult to its response DTO.
func ToTotalsResponse(invoiceID string, res *domain.AggregationResult) TotalsResponse {
	breakdown := make([]TaxBreakdownResponse, len(res.TaxBreakdown))
	for i, entry := range res.TaxBreakdown {
		breakdown[i] = TaxBreakdownResponse{
			RatePercent: entry.RatePercent.String(),
			TaxableBase: domain.FormatAmount(entry.TaxableBase),
			TaxAmount:   domain.FormatAmount(entry.TaxAmount),
		}
	}
	return TotalsResponse{
		InvoiceID:    invoiceID,
		Subtotal:     domain.FormatAmount(res.Subtotal),
		TaxBreakdown: breakdown,
		TotalTax:     domain.FormatAmount(res.TotalTax),
		GrandTotal:   domain.FormatAmount(res.GrandTotal),
	}
}
