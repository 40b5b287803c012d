package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/collection"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/telemetry"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultRegistryCapacity is the number of collections a registry keeps
// cached when no capacity is configured.
const DefaultRegistryCapacity = 1024

// CollectionRegistry lazily loads and caches OrderedCollections by
// collection id, keeping the most recently used ones. The cache assumes this
// process is the only writer.
type CollectionRegistry[T domain.Orderable[T]] struct {
	kind    string
	store   collection.Store[T]
	opts    []collection.Option
	metrics *telemetry.EngineMetrics

	loaded *lru.Cache[string, *collection.OrderedCollection[T]]
	loads  singleflight.Group
}

// NewCollectionRegistry creates a registry for one record kind. kind is used
// as the metrics label; capacity <= 0 means DefaultRegistryCapacity.
func NewCollectionRegistry[T domain.Orderable[T]](kind string, store collection.Store[T], metrics *telemetry.EngineMetrics, capacity int, opts ...collection.Option) *CollectionRegistry[T] {
	if capacity <= 0 {
		capacity = DefaultRegistryCapacity
	}
	// New only fails for a non-positive size.
	loaded, _ := lru.New[string, *collection.OrderedCollection[T]](capacity)
	return &CollectionRegistry[T]{
		kind:    kind,
		store:   store,
		opts:    opts,
		metrics: metrics,
		loaded:  loaded,
	}
}

// Get returns the cached collection, loading it from the store on first use.
// Concurrent first uses of one id share a single load; loads of different ids
// do not wait for each other.
func (r *CollectionRegistry[T]) Get(ctx context.Context, collectionID string) (*collection.OrderedCollection[T], error) {
	if strings.TrimSpace(collectionID) == "" {
		return nil, fmt.Errorf("%w: collection id is required", apperrors.ErrValidation)
	}
	if c, ok := r.loaded.Get(collectionID); ok {
		return c, nil
	}

	v, err, _ := r.loads.Do(collectionID, func() (any, error) {
		if c, ok := r.loaded.Get(collectionID); ok {
			return c, nil
		}
		c, err := collection.Load(ctx, collectionID, r.store, r.opts...)
		if err != nil {
			return nil, err
		}
		r.loaded.Add(collectionID, c)
		r.metrics.SetCachedCollections(r.kind, r.loaded.Len())
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*collection.OrderedCollection[T]), nil
}

// Len returns the number of cached collections.
func (r *CollectionRegistry[T]) Len() int {
	return r.loaded.Len()
}

// Evict drops a collection from the cache; the next Get reloads it.
func (r *CollectionRegistry[T]) Evict(collectionID string) {
	r.loaded.Remove(collectionID)
	r.metrics.SetCachedCollections(r.kind, r.loaded.Len())
}

// Move applies a move request to c and records the outcome.
func (r *CollectionRegistry[T]) Move(ctx context.Context, c *collection.OrderedCollection[T], req dto.MoveItemRequest) error {
	if req.ToIndex == nil {
		return fmt.Errorf("%w: toIndex is required", apperrors.ErrValidation)
	}

	start := time.Now()
	var err error
	switch {
	case req.ItemID != "":
		err = c.MoveByID(ctx, req.ItemID, *req.ToIndex)
	case req.FromIndex != nil:
		err = c.Move(ctx, *req.FromIndex, *req.ToIndex)
	default:
		err = fmt.Errorf("%w: itemID or fromIndex is required", apperrors.ErrValidation)
	}
	r.metrics.ObserveReorder(r.kind, time.Since(start), err)
	if errors.Is(err, collection.ErrResyncFailed) {
		r.Evict(c.ID())
	}
	return err
}
