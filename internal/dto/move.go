package dto

// MoveItemRequest moves one record of a collection to ToIndex. The record is
// named either by ItemID or by its current FromIndex; ItemID wins when both are set.
type MoveItemRequest struct {
	ItemID    string `json:"itemID"`
	FromIndex *int   `json:"fromIndex" binding:"omitempty,min=0"`
	ToIndex   *int   `json:"toIndex" binding:"required,min=0"`
}

// ReorderFailedResponse is returned when a reorder did not persist. Items is
// the collection as reloaded from the store.
type ReorderFailedResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
	Items     any    `json:"items,omitempty"`
}
