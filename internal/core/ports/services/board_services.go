package services

import (
	"context"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
)

// TaskSvcFacade manages the ordered tasks of a project board.
type TaskSvcFacade interface {
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, projectID string, req dto.CreateTaskRequest, userID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, projectID string, taskID string, req dto.UpdateTaskRequest, userID string) (*domain.Task, error)
	DeleteTask(ctx context.Context, projectID string, taskID string, userID string) error
	MoveTask(ctx context.Context, projectID string, req dto.MoveItemRequest, userID string) ([]domain.Task, error)
}

// ExpenseSvcFacade manages the ordered expenses of an expense sheet.
type ExpenseSvcFacade interface {
	ListExpenses(ctx context.Context, sheetID string) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, sheetID string, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, sheetID string, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, sheetID string, expenseID string, userID string) error
	MoveExpense(ctx context.Context, sheetID string, req dto.MoveItemRequest, userID string) ([]domain.Expense, error)
}
