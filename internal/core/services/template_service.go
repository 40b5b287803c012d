package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/telemetry"
	"github.com/google/uuid"
)

// templateService implements the TemplateSvcFacade interface
type templateService struct {
	BaseService
	templateRepo portsrepo.TemplateRepositoryFacade
	lineItemRepo portsrepo.LineItemWriter
	invoices     *CollectionRegistry[domain.LineItem]
	metrics      *telemetry.EngineMetrics
}

// TemplateServiceOption is a functional option for configuring the template service
type TemplateServiceOption func(*templateService)

// WithTemplateMetrics records instantiations and saved templates.
func WithTemplateMetrics(m *telemetry.EngineMetrics) TemplateServiceOption {
	return func(s *templateService) {
		s.metrics = m
	}
}

// NewTemplateService creates the template catalog service. invoices must be
// the registry the line item service uses.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade, lineItemRepo portsrepo.LineItemWriter, invoices *CollectionRegistry[domain.LineItem], options ...TemplateServiceOption) portssvc.TemplateSvcFacade {
	svc := &templateService{
		templateRepo: templateRepo,
		lineItemRepo: lineItemRepo,
		invoices:     invoices,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

func (s *templateService) GetTemplate(ctx context.Context, templateID string) (*domain.Template, error) {
	tpl, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find template", slog.String("template_id", templateID))
		return nil, err
	}
	return tpl, nil
}

func (s *templateService) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	return s.SearchTemplates(ctx, dto.SearchTemplatesParams{})
}

func (s *templateService) SearchTemplates(ctx context.Context, params dto.SearchTemplatesParams) ([]domain.Template, error) {
	templates, err := s.templateRepo.LoadTemplates(ctx, domain.TemplateFilter{
		Query:    strings.TrimSpace(params.Query),
		Category: strings.TrimSpace(params.Category),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load templates", slog.String("query", params.Query))
		return nil, err
	}
	if templates == nil {
		templates = []domain.Template{}
	}
	return templates, nil
}

func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, userID string) (*domain.Template, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: template name is required", apperrors.ErrInvalidName)
	}
	snapshot := req.Snapshot.Snapshot()
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	tpl := domain.Template{
		TemplateID:  uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Snapshot:    snapshot,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	return s.saveNew(ctx, tpl)
}

func (s *templateService) UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateTemplateRequest, userID string) (*domain.Template, error) {
	current, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	updated, err := current.Apply(req.Patch())
	if err != nil {
		return nil, err
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.templateRepo.UpdateTemplate(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update template", slog.String("template_id", templateID))
		return nil, err
	}
	s.LogInfo(ctx, "Template updated", slog.String("template_id", templateID))
	return &updated, nil
}

func (s *templateService) SaveAsTemplate(ctx context.Context, item domain.LineItem, req dto.SaveAsTemplateRequest, userID string) (*domain.Template, error) {
	tpl, err := domain.NewTemplateFromItem(uuid.NewString(), item, req.Name, req.Description, req.Category)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tpl.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	return s.saveNew(ctx, tpl)
}

func (s *templateService) SaveLineItemAsTemplate(ctx context.Context, invoiceID string, lineItemID string, req dto.SaveAsTemplateRequest, userID string) (*domain.Template, error) {
	invoice, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	item, err := invoice.Get(lineItemID)
	if err != nil {
		return nil, err
	}
	return s.SaveAsTemplate(ctx, item, req, userID)
}

func (s *templateService) InstantiateTemplate(ctx context.Context, invoiceID string, req dto.InstantiateTemplateRequest, userID string) (*domain.LineItem, error) {
	tpl, err := s.templateRepo.FindTemplateByID(ctx, req.TemplateID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find template for instantiation",
			slog.String("template_id", req.TemplateID),
			slog.String("invoice_id", invoiceID))
		return nil, err
	}
	invoice, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item, err := invoice.Insert(ctx, func(order int) (domain.LineItem, error) {
		item, err := tpl.Instantiate(uuid.NewString(), invoiceID, order)
		if err != nil {
			return domain.LineItem{}, err
		}
		item.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		return item, nil
	}, func(ctx context.Context, item domain.LineItem) error {
		// The store counts the use in the same transaction as the insert.
		return s.lineItemRepo.CreateItemFromTemplate(ctx, item, tpl.TemplateID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to instantiate template",
			slog.String("template_id", tpl.TemplateID),
			slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.metrics.IncInstantiations()
	s.LogInfo(ctx, "Template instantiated",
		slog.String("template_id", tpl.TemplateID),
		slog.String("invoice_id", invoiceID),
		slog.String("line_item_id", item.LineItemID))
	return &item, nil
}

func (s *templateService) saveNew(ctx context.Context, tpl domain.Template) (*domain.Template, error) {
	if err := s.templateRepo.CreateTemplate(ctx, tpl); err != nil {
		s.LogError(ctx, err, "Failed to save template", slog.String("template_name", tpl.Name))
		return nil, err
	}
	s.metrics.IncTemplatesSaved()
	s.LogInfo(ctx, "Template created",
		slog.String("template_id", tpl.TemplateID),
		slog.String("template_name", tpl.Name))
	return &tpl, nil
}
