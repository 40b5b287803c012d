package models

import "github.com/shopspring/decimal"

// Template is a row of the templates table. The snapshot is stored inline.
type Template struct {
	TemplateID      string          `db:"template_id"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	Category        string          `db:"category"`
	Label           string          `db:"label"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	TaxRatePercent  decimal.Decimal `db:"tax_rate_percent"`
	ItemCategory    string          `db:"item_category"`
	DefaultQuantity decimal.Decimal `db:"default_quantity"`
	UsageCount      int64           `db:"usage_count"`
	AuditFields
}
