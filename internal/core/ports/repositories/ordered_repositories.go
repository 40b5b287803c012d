package repositories

import (
	"context"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
)

// OrderedRepository is the store of a simple ordered record kind.
type OrderedRepository[T domain.Orderable[T]] interface {
	LoadCollection(ctx context.Context, collectionID string) ([]T, error)
	CreateItem(ctx context.Context, item T) error
	UpdateItem(ctx context.Context, item T) error
	// DeleteItem removes a record and closes the gap in the order.
	DeleteItem(ctx context.Context, collectionID string, itemID string) error
	OrderPersister
}

// TaskRepositoryFacade stores tasks grouped by project board.
type TaskRepositoryFacade interface {
	OrderedRepository[domain.Task]
}

// ExpenseRepositoryFacade stores expenses grouped by expense sheet.
type ExpenseRepositoryFacade interface {
	OrderedRepository[domain.Expense]
}
