package repositories

import (
	"context"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
)

// TemplateReader defines read operations for the template catalog
type TemplateReader interface {
	// FindTemplateByID retrieves a template by its unique identifier.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.Template, error)

	// LoadTemplates returns the templates selected by filter, most used first
	// and then by name. An empty result is not an error.
	LoadTemplates(ctx context.Context, filter domain.TemplateFilter) ([]domain.Template, error)
}

// TemplateWriter defines write operations for the template catalog
type TemplateWriter interface {
	CreateTemplate(ctx context.Context, template domain.Template) error

	// UpdateTemplate overwrites everything but the usage count.
	UpdateTemplate(ctx context.Context, template domain.Template) error

	// IncrementUsage adds one to the usage count of templateID.
	IncrementUsage(ctx context.Context, templateID string) error
}

// TemplateRepositoryFacade combines all template repository interfaces
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}
