package services

import (
	"context"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
)

// TemplateReaderSvc defines read operations on the template catalog
type TemplateReaderSvc interface {
	GetTemplate(ctx context.Context, templateID string) (*domain.Template, error)

	// ListTemplates returns the catalog, most used first.
	ListTemplates(ctx context.Context) ([]domain.Template, error)

	// SearchTemplates matches the query case-insensitively against name,
	// description, catalog category and label. No match yields an empty slice.
	SearchTemplates(ctx context.Context, params dto.SearchTemplatesParams) ([]domain.Template, error)
}

// TemplateWriterSvc defines write operations on the template catalog
type TemplateWriterSvc interface {
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, userID string) (*domain.Template, error)

	// UpdateTemplate edits a template; its usage count is preserved.
	UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateTemplateRequest, userID string) (*domain.Template, error)

	// SaveAsTemplate snapshots the values of item into a new template.
	SaveAsTemplate(ctx context.Context, item domain.LineItem, req dto.SaveAsTemplateRequest, userID string) (*domain.Template, error)

	// SaveLineItemAsTemplate looks up a line item and saves it as a template.
	SaveLineItemAsTemplate(ctx context.Context, invoiceID string, lineItemID string, req dto.SaveAsTemplateRequest, userID string) (*domain.Template, error)
}

// TemplateInstantiatorSvc creates line items from templates
type TemplateInstantiatorSvc interface {
	// InstantiateTemplate appends a line item built from the template and
	// counts exactly one use of it.
	InstantiateTemplate(ctx context.Context, invoiceID string, req dto.InstantiateTemplateRequest, userID string) (*domain.LineItem, error)
}

// TemplateSvcFacade combines all template service interfaces
type TemplateSvcFacade interface {
	TemplateReaderSvc
	TemplateWriterSvc
	TemplateInstantiatorSvc
}
