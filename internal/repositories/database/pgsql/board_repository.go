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

const (
	taskColumns    = `task_id, project_id, label, assignee_id, done, sort_order, created_at, created_by, last_updated_at, last_updated_by`
	expenseColumns = `expense_id, sheet_id, label, amount, tag, sort_order, created_at, created_by, last_updated_at, last_updated_by`
)

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(pool *pgxpool.Pool) *PgxTaskRepository {
	return &PgxTaskRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

func (r *PgxTaskRepository) LoadCollection(ctx context.Context, collectionID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY sort_order;`
	rows, err := r.Pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, classify(err, "failed to query tasks of project "+collectionID)
	}
	modelTasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Task])
	if err != nil {
		return nil, classify(err, "failed to scan tasks of project "+collectionID)
	}
	tasks := make([]domain.Task, len(modelTasks))
	for i, m := range modelTasks {
		tasks[i] = mapping.ToDomainTask(m)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) CreateItem(ctx context.Context, task domain.Task) error {
	m := mapping.ToModelTask(task)
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.Pool.Exec(ctx, query,
		m.TaskID, m.ProjectID, m.Label, m.AssigneeID, m.Done, m.SortOrder,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return classify(err, "failed to insert task "+m.TaskID)
	}
	return nil
}

func (r *PgxTaskRepository) UpdateItem(ctx context.Context, task domain.Task) error {
	m := mapping.ToModelTask(task)
	query := `
		UPDATE tasks SET label = $1, assignee_id = $2, done = $3, last_updated_at = $4, last_updated_by = $5
		WHERE task_id = $6 AND project_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Label, m.AssigneeID, m.Done, m.LastUpdatedAt, m.LastUpdatedBy, m.TaskID, m.ProjectID)
	if err != nil {
		return classify(err, "failed to update task "+m.TaskID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", m.TaskID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTaskRepository) DeleteItem(ctx context.Context, collectionID string, taskID string) error {
	return r.deleteAndCompact(ctx, tasksTable, collectionID, taskID)
}

func (r *PgxTaskRepository) PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error {
	return r.persistOrder(ctx, tasksTable, collectionID, entries)
}

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) LoadCollection(ctx context.Context, collectionID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE sheet_id = $1 ORDER BY sort_order;`
	rows, err := r.Pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, classify(err, "failed to query expenses of sheet "+collectionID)
	}
	modelExpenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, classify(err, "failed to scan expenses of sheet "+collectionID)
	}
	expenses := make([]domain.Expense, len(modelExpenses))
	for i, m := range modelExpenses {
		expenses[i] = mapping.ToDomainExpense(m)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) CreateItem(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.SheetID, m.Label, m.Amount, m.Tag, m.SortOrder,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return classify(err, "failed to insert expense "+m.ExpenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateItem(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses SET label = $1, amount = $2, tag = $3, last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $6 AND sheet_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Label, m.Amount, m.Tag, m.LastUpdatedAt, m.LastUpdatedBy, m.ExpenseID, m.SheetID)
	if err != nil {
		return classify(err, "failed to update expense "+m.ExpenseID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", m.ExpenseID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteItem(ctx context.Context, collectionID string, expenseID string) error {
	return r.deleteAndCompact(ctx, expensesTable, collectionID, expenseID)
}

func (r *PgxExpenseRepository) PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error {
	return r.persistOrder(ctx, expensesTable, collectionID, entries)
}
