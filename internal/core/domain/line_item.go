package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LineItemCategory discriminates how a priced line is billed.
type LineItemCategory string

const (
	CategoryLabour   LineItemCategory = "LABOUR"
	CategoryMaterial LineItemCategory = "MATERIAL"
)

// IsValid reports whether c is one of the known categories.
func (c LineItemCategory) IsValid() bool {
	switch c {
	case CategoryLabour, CategoryMaterial:
		return true
	}
	return false
}

// LineItem is a single priced line of an invoice collection.
// ComputedTotal is derived from the other fields and is only ever set by
// NewLineItem and Apply.
type LineItem struct {
	LineItemID     string           `json:"lineItemID"`
	CollectionID   string           `json:"collectionID"`
	Label          string           `json:"label"`
	UnitPrice      decimal.Decimal  `json:"unitPrice"`
	Quantity       decimal.Decimal  `json:"quantity"`
	TaxRatePercent decimal.Decimal  `json:"taxRatePercent"`
	Category       LineItemCategory `json:"category"`
	Order          int              `json:"order"`
	ComputedTotal  decimal.Decimal  `json:"computedTotal"`
	TemplateID     *string          `json:"templateID,omitempty"` // Set when instantiated from a template
	AuditFields
}

// LineItemFields are the user-editable values of a line item.
type LineItemFields struct {
	Label          string
	UnitPrice      decimal.Decimal
	Quantity       decimal.Decimal
	TaxRatePercent decimal.Decimal
	Category       LineItemCategory
}

// LineItemPatch carries a partial update; nil fields are left unchanged.
type LineItemPatch struct {
	Label          *string
	UnitPrice      *decimal.Decimal
	Quantity       *decimal.Decimal
	TaxRatePercent *decimal.Decimal
	Category       *LineItemCategory
}

// Validate checks every field of f.
func (f LineItemFields) Validate() error {
	if strings.TrimSpace(f.Label) == "" {
		return fmt.Errorf("%w: label is required", apperrors.ErrValidation)
	}
	if err := ValidateAmount("unitPrice", f.UnitPrice); err != nil {
		return err
	}
	if err := ValidateAmount("quantity", f.Quantity); err != nil {
		return err
	}
	if err := ValidateRate("taxRatePercent", f.TaxRatePercent); err != nil {
		return err
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, f.Category)
	}
	return nil
}

// NewLineItem validates fields and builds an item at the given position.
func NewLineItem(lineItemID, collectionID string, fields LineItemFields, order int) (LineItem, error) {
	if err := fields.Validate(); err != nil {
		return LineItem{}, err
	}
	item := LineItem{
		LineItemID:     lineItemID,
		CollectionID:   collectionID,
		Label:          strings.TrimSpace(fields.Label),
		UnitPrice:      fields.UnitPrice,
		Quantity:       fields.Quantity,
		TaxRatePercent: fields.TaxRatePercent,
		Category:       fields.Category,
		Order:          order,
	}
	if err := item.recompute(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Fields returns the current editable values as a detached copy.
func (i LineItem) Fields() LineItemFields {
	return LineItemFields{
		Label:          i.Label,
		UnitPrice:      i.UnitPrice,
		Quantity:       i.Quantity,
		TaxRatePercent: i.TaxRatePercent,
		Category:       i.Category,
	}
}

// Apply returns a copy of i with the patch applied and the total recomputed.
// i itself is never modified, so a failed validation leaves no trace.
func (i LineItem) Apply(p LineItemPatch) (LineItem, error) {
	fields := i.Fields()
	if p.Label != nil {
		fields.Label = *p.Label
	}
	if p.UnitPrice != nil {
		fields.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil {
		fields.Quantity = *p.Quantity
	}
	if p.TaxRatePercent != nil {
		fields.TaxRatePercent = *p.TaxRatePercent
	}
	if p.Category != nil {
		fields.Category = *p.Category
	}
	if err := fields.Validate(); err != nil {
		return LineItem{}, err
	}

	updated := i
	updated.Label = strings.TrimSpace(fields.Label)
	updated.UnitPrice = fields.UnitPrice
	updated.Quantity = fields.Quantity
	updated.TaxRatePercent = fields.TaxRatePercent
	updated.Category = fields.Category
	if err := updated.recompute(); err != nil {
		return LineItem{}, err
	}
	return updated, nil
}

// IsEmpty reports whether the patch changes nothing.
func (p LineItemPatch) IsEmpty() bool {
	return p.Label == nil && p.UnitPrice == nil && p.Quantity == nil && p.TaxRatePercent == nil && p.Category == nil
}

func (i *LineItem) recompute() error {
	total, err := ComputeLineTotal(i.UnitPrice, i.Quantity, i.TaxRatePercent)
	if err != nil {
		return err
	}
	i.ComputedTotal = total
	return nil
}

func (i LineItem) GetID() string { return i.LineItemID }
func (i LineItem) GetOrder() int { return i.Order }

// WithOrder returns a copy positioned at order; no other field changes.
func (i LineItem) WithOrder(order int) LineItem {
	i.Order = order
	return i
}
