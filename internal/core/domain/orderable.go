package domain

// Orderable is a record that has a stable identity and a manual position
// inside a single collection. WithOrder returns a copy with only the
// position changed.
type Orderable[T any] interface {
	GetID() string
	GetOrder() int
	WithOrder(order int) T
}

// OrderEntry is one {id, order} pair of a batch order update.
type OrderEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// OrderEntries builds the full order mapping for items in their current sequence.
func OrderEntries[T Orderable[T]](items []T) []OrderEntry {
	entries := make([]OrderEntry, len(items))
	for i, item := range items {
		entries[i] = OrderEntry{ID: item.GetID(), Order: item.GetOrder()}
	}
	return entries
}
