// Package collection implements a manually ordered, persisted sequence of
// records and the optimistic reorder protocol shared by invoice lines, tasks
// and expenses.
//
// Ordering is single-writer: membership changes and reorders on one
// collection are queued behind each other, and concurrent editors of the same
// collection are not reconciled (last write wins at the store).
package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
)

const defaultReloadTimeout = 10 * time.Second

// ErrResyncFailed is wrapped into a failed reorder whose follow-up reload
// failed too. The view keeps its previous order but may lag the store, so
// holders should drop it.
var ErrResyncFailed = errors.New("resync failed")

// Store is the persistence port the protocol needs for one record kind.
type Store[T domain.Orderable[T]] interface {
	// LoadCollection returns the authoritative records, ordered by position.
	LoadCollection(ctx context.Context, collectionID string) ([]T, error)
	// PersistOrder applies the full {id, order} mapping atomically.
	PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error
}

// PersistFunc writes a single record change to the store.
type PersistFunc[T any] func(ctx context.Context, item T) error

type options struct {
	persistTimeout time.Duration
	reloadTimeout  time.Duration
}

// Option configures an OrderedCollection.
type Option func(*options)

// WithPersistTimeout bounds the batch order update. Zero means the caller's
// context is the only limit.
func WithPersistTimeout(d time.Duration) Option {
	return func(o *options) { o.persistTimeout = d }
}

// WithReloadTimeout bounds the resync that follows a failed reorder.
func WithReloadTimeout(d time.Duration) Option {
	return func(o *options) { o.reloadTimeout = d }
}

// OrderedCollection is the in-memory view of one collection. Between a
// reorder being applied and its persistence completing the view is ahead of
// the store; at every other time it mirrors it.
type OrderedCollection[T domain.Orderable[T]] struct {
	id    string
	store Store[T]
	opts  options

	mu    sync.RWMutex
	items []T

	// writeSlot has capacity one. Holding it serializes inserts, removals,
	// reorders and reloads.
	writeSlot chan struct{}
}

type pendingMove[T any] struct {
	previous []T
	entries  []domain.OrderEntry
}

// New builds a collection around already loaded items. Items are sorted by
// their order and renumbered to 0..n-1.
func New[T domain.Orderable[T]](id string, store Store[T], items []T, opts ...Option) *OrderedCollection[T] {
	o := options{reloadTimeout: defaultReloadTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &OrderedCollection[T]{
		id:        id,
		store:     store,
		opts:      o,
		items:     normalize(items),
		writeSlot: make(chan struct{}, 1),
	}
}

// Load reads the collection from the store and wraps it.
func Load[T domain.Orderable[T]](ctx context.Context, id string, store Store[T], opts ...Option) (*OrderedCollection[T], error) {
	items, err := store.LoadCollection(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", id, err)
	}
	return New(id, store, items, opts...), nil
}

// ID returns the collection identifier.
func (c *OrderedCollection[T]) ID() string {
	return c.id
}

// Items returns a copy of the current (possibly optimistic) sequence.
func (c *OrderedCollection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len returns the number of records.
func (c *OrderedCollection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the record with the given id.
func (c *OrderedCollection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := indexOf(c.items, id)
	if idx < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s in collection %s", apperrors.ErrNotFound, id, c.id)
	}
	return c.items[idx], nil
}

// Insert appends a record at the next position. build receives that
// position; persist runs before the record becomes visible, so a failure
// leaves the collection untouched.
func (c *OrderedCollection[T]) Insert(ctx context.Context, build func(order int) (T, error), persist PersistFunc[T]) (T, error) {
	var zero T
	if err := c.acquire(ctx); err != nil {
		return zero, err
	}
	defer c.release()

	c.mu.RLock()
	order := len(c.items)
	c.mu.RUnlock()

	item, err := build(order)
	if err != nil {
		return zero, err
	}
	if item.GetOrder() != order {
		item = item.WithOrder(order)
	}
	if persist != nil {
		if err := persist(ctx, item); err != nil {
			return zero, err
		}
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	return item, nil
}

// Update replaces a record with mutate's result. It does not wait for an
// in-flight reorder: mutate may change any field but the position, which is
// always taken from the current view.
func (c *OrderedCollection[T]) Update(ctx context.Context, id string, mutate func(current T) (T, error), persist PersistFunc[T]) (T, error) {
	var zero T
	current, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	updated, err := mutate(current)
	if err != nil {
		return zero, err
	}
	if updated.GetID() != id {
		return zero, fmt.Errorf("%w: record id cannot change (%s -> %s)", apperrors.ErrValidation, id, updated.GetID())
	}
	if persist != nil {
		if err := persist(ctx, updated); err != nil {
			return zero, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	idx := indexOf(c.items, id)
	if idx < 0 {
		// Removed while we were persisting; the store decides what survives.
		return zero, fmt.Errorf("%w: %s in collection %s", apperrors.ErrNotFound, id, c.id)
	}
	updated = updated.WithOrder(c.items[idx].GetOrder())
	c.items[idx] = updated
	return updated, nil
}

// Remove deletes a record and shifts every later record up by one position.
func (c *OrderedCollection[T]) Remove(ctx context.Context, id string, persist PersistFunc[T]) (T, error) {
	var zero T
	if err := c.acquire(ctx); err != nil {
		return zero, err
	}
	defer c.release()

	removed, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	if persist != nil {
		if err := persist(ctx, removed); err != nil {
			return zero, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	idx := indexOf(c.items, id)
	if idx >= 0 {
		c.items = slices.Delete(c.items, idx, idx+1)
		c.items = renumber(c.items)
	}
	return removed, nil
}

// Move drags the record at index from to index to and persists the new order.
// It blocks until persistence completes. On failure the collection is
// reloaded from the store and an error wrapping apperrors.ErrReorderFailed is
// returned. from == to returns immediately without touching the store.
func (c *OrderedCollection[T]) Move(ctx context.Context, from, to int) error {
	pending, err := c.beginMove(ctx, atIndex[T](from), to)
	if err != nil || pending == nil {
		return err
	}
	return c.finishMove(ctx, pending)
}

// MoveByID moves the record with the given id to index to.
func (c *OrderedCollection[T]) MoveByID(ctx context.Context, id string, to int) error {
	pending, err := c.beginMove(ctx, byID[T](c.id, id), to)
	if err != nil || pending == nil {
		return err
	}
	return c.finishMove(ctx, pending)
}

// Reload discards the view and re-reads the collection from the store.
func (c *OrderedCollection[T]) Reload(ctx context.Context) error {
	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()
	return c.reload(ctx)
}

func (c *OrderedCollection[T]) beginMove(ctx context.Context, locate func(items []T) (int, error), to int) (*pendingMove[T], error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	from, err := locate(c.items)
	if err == nil {
		err = checkIndex("to", to, len(c.items))
	}
	if err != nil || from == to {
		c.mu.Unlock()
		c.release()
		return nil, err
	}

	previous := slices.Clone(c.items)
	moved := slices.Clone(c.items)
	item := moved[from]
	moved = slices.Delete(moved, from, from+1)
	moved = slices.Insert(moved, to, item)
	c.items = renumber(moved)
	entries := domain.OrderEntries(c.items)
	c.mu.Unlock()

	return &pendingMove[T]{previous: previous, entries: entries}, nil
}

func (c *OrderedCollection[T]) finishMove(ctx context.Context, p *pendingMove[T]) error {
	defer c.release()

	persistCtx := ctx
	if c.opts.persistTimeout > 0 {
		var cancel context.CancelFunc
		persistCtx, cancel = context.WithTimeout(ctx, c.opts.persistTimeout)
		defer cancel()
	}

	persistErr := c.store.PersistOrder(persistCtx, c.id, p.entries)
	if persistErr == nil {
		return nil
	}

	// The caller's context may be what failed, so the resync gets its own.
	reloadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.reloadTimeout)
	defer cancel()
	if err := c.reload(reloadCtx); err != nil {
		c.restoreOrder(p.previous)
		return fmt.Errorf("%w: collection %s: %w (%w, previous order restored: %w)", apperrors.ErrReorderFailed, c.id, persistErr, ErrResyncFailed, err)
	}
	return fmt.Errorf("%w: collection %s: %w", apperrors.ErrReorderFailed, c.id, persistErr)
}

// restoreOrder puts the current records back into the order of previous. Field
// values stay as they are now, since updates may have been stored while the
// reorder was in flight. Membership cannot change while the write slot is held.
func (c *OrderedCollection[T]) restoreOrder(previous []T) {
	rank := make(map[string]int, len(previous))
	for i, item := range previous {
		rank[item.GetID()] = i
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	items := slices.Clone(c.items)
	slices.SortStableFunc(items, func(a, b T) int { return rank[a.GetID()] - rank[b.GetID()] })
	c.items = renumber(items)
}

func (c *OrderedCollection[T]) reload(ctx context.Context) error {
	items, err := c.store.LoadCollection(ctx, c.id)
	if err != nil {
		return fmt.Errorf("failed to reload collection %s: %w", c.id, err)
	}
	c.mu.Lock()
	c.items = normalize(items)
	c.mu.Unlock()
	return nil
}

func (c *OrderedCollection[T]) acquire(ctx context.Context) error {
	select {
	case c.writeSlot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for collection %s: %w", c.id, ctx.Err())
	}
}

func (c *OrderedCollection[T]) release() {
	<-c.writeSlot
}

func atIndex[T domain.Orderable[T]](from int) func([]T) (int, error) {
	return func(items []T) (int, error) {
		return from, checkIndex("from", from, len(items))
	}
}

func byID[T domain.Orderable[T]](collectionID, id string) func([]T) (int, error) {
	return func(items []T) (int, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return 0, fmt.Errorf("%w: %s in collection %s", apperrors.ErrNotFound, id, collectionID)
		}
		return idx, nil
	}
}

func checkIndex(name string, idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("%w: %s index %d out of range [0,%d)", apperrors.ErrValidation, name, idx, n)
	}
	return nil
}

func indexOf[T domain.Orderable[T]](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return item.GetID() == id })
}

// renumber assigns every record its index as order. It always rewrites the
// full sequence so the result is contiguous regardless of the input.
func renumber[T domain.Orderable[T]](items []T) []T {
	for i := range items {
		if items[i].GetOrder() != i {
			items[i] = items[i].WithOrder(i)
		}
	}
	return items
}

func normalize[T domain.Orderable[T]](items []T) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int { return a.GetOrder() - b.GetOrder() })
	return renumber(sorted)
}

// IsContiguous reports whether the orders of items are exactly 0..n-1 in sequence.
func IsContiguous[T domain.Orderable[T]](items []T) bool {
	for i, item := range items {
		if item.GetOrder() != i {
			return false
		}
	}
	return true
}
