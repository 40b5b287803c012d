package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TemplateSnapshot holds the default line item values captured by a template.
type TemplateSnapshot struct {
	Label           string           `json:"label"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	TaxRatePercent  decimal.Decimal  `json:"taxRatePercent"`
	Category        LineItemCategory `json:"category"`
	DefaultQuantity decimal.Decimal  `json:"defaultQuantity"`
}

// Template is a named, reusable line item preset with usage statistics.
// Category is the catalog grouping and is unrelated to Snapshot.Category.
type Template struct {
	TemplateID  string           `json:"templateID"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Snapshot    TemplateSnapshot `json:"snapshot"`
	UsageCount  int64            `json:"usageCount"`
	AuditFields
}

// TemplatePatch carries an administrative edit; UsageCount is deliberately absent.
type TemplatePatch struct {
	Name        *string
	Description *string
	Category    *string
	Snapshot    *TemplateSnapshot
}

// TemplateFilter narrows LoadTemplates. Zero value matches everything.
type TemplateFilter struct {
	Query    string
	Category string
}

// Validate checks the snapshot values the same way a line item is checked.
func (s TemplateSnapshot) Validate() error {
	return LineItemFields{
		Label:          s.Label,
		UnitPrice:      s.UnitPrice,
		Quantity:       s.DefaultQuantity,
		TaxRatePercent: s.TaxRatePercent,
		Category:       s.Category,
	}.Validate()
}

func validateTemplateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: template name is required", apperrors.ErrInvalidName)
	}
	return nil
}

// NewTemplateFromItem captures the current values of item. The snapshot is a
// copy; later edits of item never reach the template.
func NewTemplateFromItem(templateID string, item LineItem, name, description, category string) (Template, error) {
	if err := validateTemplateName(name); err != nil {
		return Template{}, err
	}
	snapshot := TemplateSnapshot{
		Label:           item.Label,
		UnitPrice:       item.UnitPrice.Copy(),
		TaxRatePercent:  item.TaxRatePercent.Copy(),
		Category:        item.Category,
		DefaultQuantity: item.Quantity.Copy(),
	}
	if err := snapshot.Validate(); err != nil {
		return Template{}, err
	}
	return Template{
		TemplateID:  templateID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Snapshot:    snapshot,
	}, nil
}

// Instantiate builds a new line item from the snapshot at the given position.
// The template is not modified; the usage counter is the store's concern.
func (t Template) Instantiate(lineItemID, collectionID string, order int) (LineItem, error) {
	item, err := NewLineItem(lineItemID, collectionID, LineItemFields{
		Label:          t.Snapshot.Label,
		UnitPrice:      t.Snapshot.UnitPrice,
		Quantity:       t.Snapshot.DefaultQuantity,
		TaxRatePercent: t.Snapshot.TaxRatePercent,
		Category:       t.Snapshot.Category,
	}, order)
	if err != nil {
		return LineItem{}, err
	}
	templateID := t.TemplateID
	item.TemplateID = &templateID
	return item, nil
}

// Apply returns a copy of t with the patch applied. UsageCount is kept.
func (t Template) Apply(p TemplatePatch) (Template, error) {
	updated := t
	if p.Name != nil {
		if err := validateTemplateName(*p.Name); err != nil {
			return Template{}, err
		}
		updated.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		updated.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		updated.Category = strings.TrimSpace(*p.Category)
	}
	if p.Snapshot != nil {
		if err := p.Snapshot.Validate(); err != nil {
			return Template{}, err
		}
		updated.Snapshot = *p.Snapshot
	}
	return updated, nil
}

// Matches reports whether f selects t. Query is a case-insensitive substring
// over name, description, catalog category and the snapshot label.
func (f TemplateFilter) Matches(t Template) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, t.Category) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{t.Name, t.Description, t.Category, t.Snapshot.Label} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
