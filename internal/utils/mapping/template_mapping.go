package mapping

import (
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/models"
)

// ToModelTemplate flattens a domain Template and its snapshot into a row.
func ToModelTemplate(d domain.Template) models.Template {
	return models.Template{
		TemplateID:      d.TemplateID,
		Name:            d.Name,
		Description:     d.Description,
		Category:        d.Category,
		Label:           d.Snapshot.Label,
		UnitPrice:       d.Snapshot.UnitPrice,
		TaxRatePercent:  d.Snapshot.TaxRatePercent,
		ItemCategory:    string(d.Snapshot.Category),
		DefaultQuantity: d.Snapshot.DefaultQuantity,
		UsageCount:      d.UsageCount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTemplate converts a model Template to a domain Template
func ToDomainTemplate(m models.Template) domain.Template {
	return domain.Template{
		TemplateID:  m.TemplateID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Snapshot: domain.TemplateSnapshot{
			Label:           m.Label,
			UnitPrice:       m.UnitPrice,
			TaxRatePercent:  m.TaxRatePercent,
			Category:        domain.LineItemCategory(m.ItemCategory),
			DefaultQuantity: m.DefaultQuantity,
		},
		UsageCount:  m.UsageCount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTemplateSlice converts a slice of model Templates to domain Templates
func ToDomainTemplateSlice(ms []models.Template) []domain.Template {
	ds := make([]domain.Template, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTemplate(m)
	}
	return ds
}
