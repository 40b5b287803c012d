package mapping

import (
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/models"
)

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:     d.LineItemID,
		InvoiceID:      d.CollectionID,
		Label:          d.Label,
		UnitPrice:      d.UnitPrice,
		Quantity:       d.Quantity,
		TaxRatePercent: d.TaxRatePercent,
		Category:       string(d.Category),
		SortOrder:      d.Order,
		ComputedTotal:  d.ComputedTotal,
		TemplateID:     d.TemplateID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem.
// The stored total is trusted; it was computed when the row was written.
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:     m.LineItemID,
		CollectionID:   m.InvoiceID,
		Label:          m.Label,
		UnitPrice:      m.UnitPrice,
		Quantity:       m.Quantity,
		TaxRatePercent: m.TaxRatePercent,
		Category:       domain.LineItemCategory(m.Category),
		Order:          m.SortOrder,
		ComputedTotal:  m.ComputedTotal,
		TemplateID:     m.TemplateID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to domain LineItems
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
