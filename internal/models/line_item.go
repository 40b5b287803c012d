package models

import "github.com/shopspring/decimal"

// LineItem is a row of the line_items table.
type LineItem struct {
	LineItemID     string          `db:"line_item_id"`
	InvoiceID      string          `db:"invoice_id"`
	Label          string          `db:"label"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	Quantity       decimal.Decimal `db:"quantity"`
	TaxRatePercent decimal.Decimal `db:"tax_rate_percent"`
	Category       string          `db:"category"`
	SortOrder      int             `db:"sort_order"`
	ComputedTotal  decimal.Decimal `db:"computed_total"`
	TemplateID     *string         `db:"template_id"` // Nullable
	AuditFields
}
