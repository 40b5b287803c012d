package dto

import (
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TemplateSnapshotRequest carries the default values of a template.
type TemplateSnapshotRequest struct {
	Label           string                  `json:"label" yaml:"label" binding:"required"`
	UnitPrice       *decimal.Decimal        `json:"unitPrice" yaml:"unitPrice" binding:"required"`
	TaxRatePercent  *decimal.Decimal        `json:"taxRatePercent" yaml:"taxRatePercent" binding:"required"`
	Category        domain.LineItemCategory `json:"category" yaml:"category" binding:"required,oneof=LABOUR MATERIAL"`
	DefaultQuantity *decimal.Decimal        `json:"defaultQuantity" yaml:"defaultQuantity" binding:"required"`
}

// Snapshot converts the request into domain values.
func (r TemplateSnapshotRequest) Snapshot() domain.TemplateSnapshot {
	s := domain.TemplateSnapshot{Label: r.Label, Category: r.Category}
	if r.UnitPrice != nil {
		s.UnitPrice = *r.UnitPrice
	}
	if r.TaxRatePercent != nil {
		s.TaxRatePercent = *r.TaxRatePercent
	}
	if r.DefaultQuantity != nil {
		s.DefaultQuantity = *r.DefaultQuantity
	}
	return s
}

// CreateTemplateRequest defines the data needed to add a template directly to the catalog.
// Name is checked by the service so that a blank name reports an invalid name.
type CreateTemplateRequest struct {
	Name        string                  `json:"name" yaml:"name"`
	Description string                  `json:"description" yaml:"description"`
	Category    string                  `json:"category" yaml:"category"`
	Snapshot    TemplateSnapshotRequest `json:"snapshot" yaml:"snapshot" binding:"required"`
}

// SaveAsTemplateRequest names a template captured from an existing line item.
type SaveAsTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateTemplateRequest defines the administrative edit of a template.
// The usage count cannot be changed.
type UpdateTemplateRequest struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	Category    *string                  `json:"category"`
	Snapshot    *TemplateSnapshotRequest `json:"snapshot"`
}

// Patch converts the request into a domain patch.
func (r UpdateTemplateRequest) Patch() domain.TemplatePatch {
	p := domain.TemplatePatch{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.Snapshot != nil {
		s := r.Snapshot.Snapshot()
		p.Snapshot = &s
	}
	return p
}

// InstantiateTemplateRequest appends a line item built from a template.
type InstantiateTemplateRequest struct {
	TemplateID string `json:"templateID" binding:"required"`
}

// SearchTemplatesParams defines query parameters for searching the catalog.
type SearchTemplatesParams struct {
	Query    string `form:"q"`
	Category string `form:"category"`
}

// TemplateResponse defines the data returned for a template.
type TemplateResponse struct {
	TemplateID    string                  `json:"templateID"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Category      string                  `json:"category"`
	Snapshot      domain.TemplateSnapshot `json:"snapshot"`
	UsageCount    int64                   `json:"usageCount"`
	CreatedAt     time.Time               `json:"createdAt"`
	CreatedBy     string                  `json:"createdBy"`
	LastUpdatedAt time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy string                  `json:"lastUpdatedBy"`
}

// ToTemplateResponse converts a domain.Template to TemplateResponse DTO
func ToTemplateResponse(t *domain.Template) TemplateResponse {
	return TemplateResponse{
		TemplateID:    t.TemplateID,
		Name:          t.Name,
		Description:   t.Description,
		Category:      t.Category,
		Snapshot:      t.Snapshot,
		UsageCount:    t.UsageCount,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ToListTemplateResponse converts templates to response DTOs.
func ToListTemplateResponse(templates []domain.Template) []TemplateResponse {
	res := make([]TemplateResponse, len(templates))
	for i := range templates {
		res[i] = ToTemplateResponse(&templates[i])
	}
	return res
}
