package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/renovation_backoffice/internal/models"
	"github.com/SscSPs/renovation_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lineItemColumns = `line_item_id, invoice_id, label, unit_price, quantity, tax_rate_percent, category,
	sort_order, computed_total, template_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxLineItemRepository struct {
	BaseRepository
}

// newPgxLineItemRepository creates a new repository for invoice line items.
func newPgxLineItemRepository(pool *pgxpool.Pool) *PgxLineItemRepository {
	return &PgxLineItemRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LineItemRepositoryFacade = (*PgxLineItemRepository)(nil)

// LoadCollection returns the line items of an invoice ordered by position.
func (r *PgxLineItemRepository) LoadCollection(ctx context.Context, collectionID string) ([]domain.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE invoice_id = $1 ORDER BY sort_order;`
	rows, err := r.Pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, classify(err, "failed to query line items of invoice "+collectionID)
	}
	modelItems, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LineItem])
	if err != nil {
		return nil, classify(err, "failed to scan line items of invoice "+collectionID)
	}
	return mapping.ToDomainLineItemSlice(modelItems), nil
}

// FindLineItemByID retrieves a single line item.
func (r *PgxLineItemRepository) FindLineItemByID(ctx context.Context, lineItemID string) (*domain.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE line_item_id = $1;`
	rows, err := r.Pool.Query(ctx, query, lineItemID)
	if err != nil {
		return nil, classify(err, "failed to query line item "+lineItemID)
	}
	modelItem, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LineItem])
	if err != nil {
		return nil, classify(err, "line item "+lineItemID)
	}
	item := mapping.ToDomainLineItem(modelItem)
	return &item, nil
}

// CreateItem inserts a new line item.
func (r *PgxLineItemRepository) CreateItem(ctx context.Context, item domain.LineItem) error {
	return insertLineItem(ctx, r.Pool, item)
}

// CreateItemFromTemplate inserts item and bumps the template usage count in one transaction.
func (r *PgxLineItemRepository) CreateItemFromTemplate(ctx context.Context, item domain.LineItem, templateID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := incrementUsage(ctx, tx, templateID); err != nil {
		return err
	}
	if err := insertLineItem(ctx, tx, item); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateItem overwrites the editable fields and the computed total.
func (r *PgxLineItemRepository) UpdateItem(ctx context.Context, item domain.LineItem) error {
	m := mapping.ToModelLineItem(item)
	query := `
		UPDATE line_items SET
			label = $1,
			unit_price = $2,
			quantity = $3,
			tax_rate_percent = $4,
			category = $5,
			computed_total = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE line_item_id = $9 AND invoice_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Label,
		m.UnitPrice,
		m.Quantity,
		m.TaxRatePercent,
		m.Category,
		m.ComputedTotal,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.LineItemID,
		m.InvoiceID,
	)
	if err != nil {
		return classify(err, "failed to update line item "+m.LineItemID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("line item %s: %w", m.LineItemID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteItem removes a line item and closes the gap in the order.
func (r *PgxLineItemRepository) DeleteItem(ctx context.Context, collectionID string, lineItemID string) error {
	return r.deleteAndCompact(ctx, lineItemsTable, collectionID, lineItemID)
}

// PersistOrder applies the full order mapping of an invoice atomically.
func (r *PgxLineItemRepository) PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error {
	return r.persistOrder(ctx, lineItemsTable, collectionID, entries)
}

func insertLineItem(ctx context.Context, q querier, item domain.LineItem) error {
	m := mapping.ToModelLineItem(item)
	query := `
		INSERT INTO line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := q.Exec(ctx, query,
		m.LineItemID,
		m.InvoiceID,
		m.Label,
		m.UnitPrice,
		m.Quantity,
		m.TaxRatePercent,
		m.Category,
		m.SortOrder,
		m.ComputedTotal,
		m.TemplateID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classify(err, "failed to insert line item "+m.LineItemID)
	}
	return nil
}
