package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/renovation_backoffice/internal/models"
	"github.com/SscSPs/renovation_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const templateColumns = `template_id, name, description, category, label, unit_price, tax_rate_percent,
	item_category, default_quantity, usage_count, created_at, created_by, last_updated_at, last_updated_by`

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for the template catalog.
func newPgxTemplateRepository(pool *pgxpool.Pool) *PgxTemplateRepository {
	return &PgxTemplateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

// FindTemplateByID retrieves a template by its unique identifier.
func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE template_id = $1;`
	rows, err := r.Pool.Query(ctx, query, templateID)
	if err != nil {
		return nil, classify(err, "failed to query template "+templateID)
	}
	modelTemplate, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Template])
	if err != nil {
		return nil, classify(err, "template "+templateID)
	}
	t := mapping.ToDomainTemplate(modelTemplate)
	return &t, nil
}

// LoadTemplates returns the templates selected by filter, most used first.
func (r *PgxTemplateRepository) LoadTemplates(ctx context.Context, filter domain.TemplateFilter) ([]domain.Template, error) {
	var (
		conditions []string
		args       []any
	)
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d OR label ILIKE $%d)", n, n, n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("lower(category) = lower($%d)", len(args)))
	}

	query := `SELECT ` + templateColumns + ` FROM templates`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY usage_count DESC, lower(name), template_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "failed to query templates")
	}
	modelTemplates, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Template])
	if err != nil {
		return nil, classify(err, "failed to scan templates")
	}
	return mapping.ToDomainTemplateSlice(modelTemplates), nil
}

// CreateTemplate inserts a new template.
func (r *PgxTemplateRepository) CreateTemplate(ctx context.Context, template domain.Template) error {
	m := mapping.ToModelTemplate(template)
	query := `
		INSERT INTO templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TemplateID,
		m.Name,
		m.Description,
		m.Category,
		m.Label,
		m.UnitPrice,
		m.TaxRatePercent,
		m.ItemCategory,
		m.DefaultQuantity,
		m.UsageCount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classify(err, "failed to insert template "+m.TemplateID)
	}
	return nil
}

// UpdateTemplate overwrites everything but the usage count.
func (r *PgxTemplateRepository) UpdateTemplate(ctx context.Context, template domain.Template) error {
	m := mapping.ToModelTemplate(template)
	query := `
		UPDATE templates SET
			name = $1,
			description = $2,
			category = $3,
			label = $4,
			unit_price = $5,
			tax_rate_percent = $6,
			item_category = $7,
			default_quantity = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE template_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.Category,
		m.Label,
		m.UnitPrice,
		m.TaxRatePercent,
		m.ItemCategory,
		m.DefaultQuantity,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TemplateID,
	)
	if err != nil {
		return classify(err, "failed to update template "+m.TemplateID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s: %w", m.TemplateID, apperrors.ErrNotFound)
	}
	return nil
}

// IncrementUsage adds one to the usage count of templateID.
func (r *PgxTemplateRepository) IncrementUsage(ctx context.Context, templateID string) error {
	return incrementUsage(ctx, r.Pool, templateID)
}

func incrementUsage(ctx context.Context, q querier, templateID string) error {
	tag, err := q.Exec(ctx, `UPDATE templates SET usage_count = usage_count + 1 WHERE template_id = $1;`, templateID)
	if err != nil {
		return classify(err, "failed to increment usage of template "+templateID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
	}
	return nil
}
