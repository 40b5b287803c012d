package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/google/uuid"
)

type expenseService struct {
	orderedItems[domain.Expense]
}

// NewExpenseService creates the expense sheet service.
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, sheets *CollectionRegistry[domain.Expense]) portssvc.ExpenseSvcFacade {
	return &expenseService{
		orderedItems: orderedItems[domain.Expense]{repo: repo, collections: sheets},
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) ListExpenses(ctx context.Context, sheetID string) ([]domain.Expense, error) {
	return s.list(ctx, sheetID)
}

func (s *expenseService) CreateExpense(ctx context.Context, sheetID string, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidAmount)
	}
	now := time.Now()
	expense, err := s.create(ctx, sheetID, func(order int) (domain.Expense, error) {
		expense, err := domain.NewExpense(uuid.NewString(), sheetID, req.Label, *req.Amount, req.Tag, order)
		if err != nil {
			return domain.Expense{}, err
		}
		expense.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		return expense, nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, sheetID string, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	if req.Label == nil && req.Amount == nil && req.Tag == nil {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}
	expense, err := s.update(ctx, sheetID, expenseID, func(current domain.Expense) (domain.Expense, error) {
		label, amount, tag := current.Label, current.Amount, current.Tag
		if req.Label != nil {
			label = *req.Label
		}
		if req.Amount != nil {
			amount = *req.Amount
		}
		if req.Tag != nil {
			tag = *req.Tag
		}
		updated, err := domain.NewExpense(current.ExpenseID, current.SheetID, label, amount, tag, current.Order)
		if err != nil {
			return domain.Expense{}, err
		}
		updated.AuditFields = current.AuditFields
		updated.LastUpdatedAt = time.Now()
		updated.LastUpdatedBy = userID
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, sheetID string, expenseID string, userID string) error {
	return s.remove(ctx, sheetID, expenseID)
}

func (s *expenseService) MoveExpense(ctx context.Context, sheetID string, req dto.MoveItemRequest, userID string) ([]domain.Expense, error) {
	return s.move(ctx, sheetID, req)
}
