package repositories

import (
	"context"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
)

// LineItemReader defines read operations for invoice line items
type LineItemReader interface {
	// LoadCollection returns every line item of an invoice ordered by position.
	LoadCollection(ctx context.Context, collectionID string) ([]domain.LineItem, error)

	// FindLineItemByID retrieves a single line item.
	FindLineItemByID(ctx context.Context, lineItemID string) (*domain.LineItem, error)
}

// LineItemWriter defines write operations for invoice line items
type LineItemWriter interface {
	// CreateItem persists a new line item at item.Order.
	CreateItem(ctx context.Context, item domain.LineItem) error

	// CreateItemFromTemplate persists item and increments the usage count of
	// templateID in the same transaction. Returns apperrors.ErrNotFound when the
	// template does not exist, in which case nothing is written.
	CreateItemFromTemplate(ctx context.Context, item domain.LineItem, templateID string) error

	// UpdateItem overwrites the editable fields and the computed total. Order is not touched.
	UpdateItem(ctx context.Context, item domain.LineItem) error

	// DeleteItem removes a line item and closes the gap in the order.
	DeleteItem(ctx context.Context, collectionID string, lineItemID string) error
}

// OrderPersister applies a full {id, order} mapping as one atomic batch.
type OrderPersister interface {
	PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error
}

// LineItemRepositoryFacade combines all line item repository interfaces
type LineItemRepositoryFacade interface {
	LineItemReader
	LineItemWriter
	OrderPersister
}
