package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// orderedTable names the columns the ordering helpers work on. Values are
// compile-time constants, never user input.
type orderedTable struct {
	name          string
	idColumn      string
	collectionCol string
}

var (
	lineItemsTable = orderedTable{name: "line_items", idColumn: "line_item_id", collectionCol: "invoice_id"}
	tasksTable     = orderedTable{name: "tasks", idColumn: "task_id", collectionCol: "project_id"}
	expensesTable  = orderedTable{name: "expenses", idColumn: "expense_id", collectionCol: "sheet_id"}
)

// persistOrder writes the full {id, order} mapping in one transaction. The
// (collection, sort_order) unique constraint is deferred, so intermediate
// duplicates inside the batch are fine. Any mismatch rolls everything back.
func (r *BaseRepository) persistOrder(ctx context.Context, t orderedTable, collectionID string, entries []domain.OrderEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, t.idColumn, t.name, t.collectionCol)
	rows, err := tx.Query(ctx, lockQuery, collectionID)
	if err != nil {
		return classify(err, "failed to lock collection "+collectionID)
	}
	current, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return classify(err, "failed to read collection "+collectionID)
	}
	if len(current) != len(entries) {
		return fmt.Errorf("%w: order mapping has %d entries, collection %s has %d records",
			apperrors.ErrValidation, len(entries), collectionID, len(current))
	}

	known := make(map[string]bool, len(current))
	for _, id := range current {
		known[id] = true
	}
	for _, e := range entries {
		if !known[e.ID] {
			return fmt.Errorf("%w: record %s in collection %s", apperrors.ErrNotFound, e.ID, collectionID)
		}
		delete(known, e.ID)
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET sort_order = $1 WHERE %s = $2 AND %s = $3`, t.name, t.collectionCol, t.idColumn)
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(updateQuery, e.Order, collectionID, e.ID)
	}
	br := tx.SendBatch(ctx, batch)
	for _, e := range entries {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return classify(err, "failed to update order of "+e.ID)
		}
		if tag.RowsAffected() != 1 {
			br.Close()
			return fmt.Errorf("%w: record %s in collection %s", apperrors.ErrNotFound, e.ID, collectionID)
		}
	}
	// Important: Close the batch results before committing
	if err := br.Close(); err != nil {
		return classify(err, "failed to execute order batch for "+collectionID)
	}

	return r.Commit(ctx, tx)
}

// deleteAndCompact removes a record and shifts every later record up by one.
func (r *BaseRepository) deleteAndCompact(ctx context.Context, t orderedTable, collectionID, itemID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING sort_order`, t.name, t.collectionCol, t.idColumn)
	var removedOrder int
	if err := tx.QueryRow(ctx, deleteQuery, collectionID, itemID).Scan(&removedOrder); err != nil {
		return classify(err, "failed to delete "+itemID)
	}

	shiftQuery := fmt.Sprintf(`UPDATE %s SET sort_order = sort_order - 1 WHERE %s = $1 AND sort_order > $2`, t.name, t.collectionCol)
	if _, err := tx.Exec(ctx, shiftQuery, collectionID, removedOrder); err != nil {
		return classify(err, "failed to compact collection "+collectionID)
	}

	return r.Commit(ctx, tx)
}
