package memory

import (
	"fmt"
	"slices"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
)

// orderedTable stores the records of one kind grouped by collection. Callers
// hold the Store lock.
type orderedTable[T domain.Orderable[T]] struct {
	collectionOf func(T) string
	rows         map[string]map[string]T
}

func newOrderedTable[T domain.Orderable[T]](collectionOf func(T) string) *orderedTable[T] {
	return &orderedTable[T]{collectionOf: collectionOf, rows: make(map[string]map[string]T)}
}

func (t *orderedTable[T]) load(collectionID string) []T {
	items := make([]T, 0, len(t.rows[collectionID]))
	for _, item := range t.rows[collectionID] {
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b T) int { return a.GetOrder() - b.GetOrder() })
	return items
}

func (t *orderedTable[T]) find(itemID string) (T, bool) {
	for _, rows := range t.rows {
		if item, ok := rows[itemID]; ok {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (t *orderedTable[T]) create(item T) error {
	if _, exists := t.find(item.GetID()); exists {
		return fmt.Errorf("%w: record %s", apperrors.ErrDuplicate, item.GetID())
	}
	collectionID := t.collectionOf(item)
	rows := t.rows[collectionID]
	for _, other := range rows {
		if other.GetOrder() == item.GetOrder() {
			return fmt.Errorf("%w: position %d in collection %s is taken", apperrors.ErrDuplicate, item.GetOrder(), collectionID)
		}
	}
	if rows == nil {
		rows = make(map[string]T)
		t.rows[collectionID] = rows
	}
	rows[item.GetID()] = item
	return nil
}

// update replaces the stored record but keeps its stored position.
func (t *orderedTable[T]) update(item T) error {
	collectionID := t.collectionOf(item)
	current, ok := t.rows[collectionID][item.GetID()]
	if !ok {
		return fmt.Errorf("%w: record %s in collection %s", apperrors.ErrNotFound, item.GetID(), collectionID)
	}
	t.rows[collectionID][item.GetID()] = item.WithOrder(current.GetOrder())
	return nil
}

// remove deletes a record and closes the gap behind it.
func (t *orderedTable[T]) remove(collectionID, itemID string) error {
	rows := t.rows[collectionID]
	removed, ok := rows[itemID]
	if !ok {
		return fmt.Errorf("%w: record %s in collection %s", apperrors.ErrNotFound, itemID, collectionID)
	}
	delete(rows, itemID)
	for id, item := range rows {
		if item.GetOrder() > removed.GetOrder() {
			rows[id] = item.WithOrder(item.GetOrder() - 1)
		}
	}
	return nil
}

// persistOrder applies the mapping only if it names every record exactly
// once and is a permutation of 0..n-1.
func (t *orderedTable[T]) persistOrder(collectionID string, entries []domain.OrderEntry) error {
	rows := t.rows[collectionID]
	if len(entries) != len(rows) {
		return fmt.Errorf("%w: order mapping has %d entries, collection %s has %d records",
			apperrors.ErrValidation, len(entries), collectionID, len(rows))
	}
	seenOrder := make([]bool, len(entries))
	seenID := make(map[string]bool, len(entries))
	for _, e := range entries {
		if _, ok := rows[e.ID]; !ok {
			return fmt.Errorf("%w: record %s in collection %s", apperrors.ErrNotFound, e.ID, collectionID)
		}
		if e.Order < 0 || e.Order >= len(entries) || seenOrder[e.Order] || seenID[e.ID] {
			return fmt.Errorf("%w: order mapping for collection %s is not a permutation", apperrors.ErrValidation, collectionID)
		}
		seenOrder[e.Order] = true
		seenID[e.ID] = true
	}
	for _, e := range entries {
		rows[e.ID] = rows[e.ID].WithOrder(e.Order)
	}
	return nil
}
