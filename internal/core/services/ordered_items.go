package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
)

// orderedItems holds the operations every ordered record kind shares. The
// typed services wrap it with their own validation and audit handling.
type orderedItems[T domain.Orderable[T]] struct {
	BaseService
	repo        portsrepo.OrderedRepository[T]
	collections *CollectionRegistry[T]
}

func (o *orderedItems[T]) list(ctx context.Context, collectionID string) ([]T, error) {
	c, err := o.collections.Get(ctx, collectionID)
	if err != nil {
		o.LogError(ctx, err, "Failed to load collection", slog.String("collection_id", collectionID))
		return nil, err
	}
	return c.Items(), nil
}

func (o *orderedItems[T]) get(ctx context.Context, collectionID, itemID string) (T, error) {
	c, err := o.collections.Get(ctx, collectionID)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Get(itemID)
}

func (o *orderedItems[T]) create(ctx context.Context, collectionID string, build func(order int) (T, error)) (T, error) {
	var zero T
	c, err := o.collections.Get(ctx, collectionID)
	if err != nil {
		return zero, err
	}
	item, err := c.Insert(ctx, build, o.repo.CreateItem)
	if err != nil {
		o.LogError(ctx, err, "Failed to create item", slog.String("collection_id", collectionID))
		return zero, err
	}
	o.LogInfo(ctx, "Item created",
		slog.String("collection_id", collectionID),
		slog.String("item_id", item.GetID()),
		slog.Int("order", item.GetOrder()))
	return item, nil
}

func (o *orderedItems[T]) update(ctx context.Context, collectionID, itemID string, mutate func(current T) (T, error)) (T, error) {
	var zero T
	c, err := o.collections.Get(ctx, collectionID)
	if err != nil {
		return zero, err
	}
	item, err := c.Update(ctx, itemID, mutate, o.repo.UpdateItem)
	if err != nil {
		o.LogError(ctx, err, "Failed to update item",
			slog.String("collection_id", collectionID),
			slog.String("item_id", itemID))
		return zero, err
	}
	return item, nil
}

func (o *orderedItems[T]) remove(ctx context.Context, collectionID, itemID string) error {
	c, err := o.collections.Get(ctx, collectionID)
	if err != nil {
		return err
	}
	_, err = c.Remove(ctx, itemID, func(ctx context.Context, item T) error {
		return o.repo.DeleteItem(ctx, collectionID, item.GetID())
	})
	if err != nil {
		o.LogError(ctx, err, "Failed to delete item",
			slog.String("collection_id", collectionID),
			slog.String("item_id", itemID))
		return err
	}
	o.LogInfo(ctx, "Item deleted",
		slog.String("collection_id", collectionID),
		slog.String("item_id", itemID))
	return nil
}

func (o *orderedItems[T]) move(ctx context.Context, collectionID string, req dto.MoveItemRequest) ([]T, error) {
	c, err := o.collections.Get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := o.collections.Move(ctx, c, req); err != nil {
		if errors.Is(err, apperrors.ErrReorderFailed) {
			o.LogWarn(ctx, err, "Reorder not persisted",
				slog.String("collection_id", collectionID))
		}
		return nil, err
	}
	return c.Items(), nil
}

func (o *orderedItems[T]) reload(ctx context.Context, collectionID string) ([]T, error) {
	c, err := o.collections.Get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := c.Reload(ctx); err != nil {
		o.collections.Evict(collectionID)
		o.LogError(ctx, err, "Failed to reload collection", slog.String("collection_id", collectionID))
		return nil, err
	}
	return c.Items(), nil
}
