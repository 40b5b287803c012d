package dto

import (
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to add an expense to a sheet.
type CreateExpenseRequest struct {
	Label  string           `json:"label" binding:"required"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Tag    string           `json:"tag"` // Free-form, e.g. "fuel"
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
type UpdateExpenseRequest struct {
	Label  *string          `json:"label"`
	Amount *decimal.Decimal `json:"amount"`
	Tag    *string          `json:"tag"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID string `json:"expenseID"`
	SheetID   string `json:"sheetID"`
	Label     string `json:"label"`
	Amount    string `json:"amount"`
	Tag       string `json:"tag,omitempty"`
	Order     int    `json:"order"`
}

func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID: e.ExpenseID,
		SheetID:   e.SheetID,
		Label:     e.Label,
		Amount:    domain.FormatAmount(e.Amount),
		Tag:       e.Tag,
		Order:     e.Order,
	}
}

func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
