package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Expense is a cost recorded on an expense sheet. Tag is a free-form label.
type Expense struct {
	ExpenseID string          `json:"expenseID"`
	SheetID   string          `json:"sheetID"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Tag       string          `json:"tag"`
	Order     int             `json:"order"`
	AuditFields
}

// NewExpense validates the inputs and builds an expense at the given position.
func NewExpense(expenseID, sheetID, label string, amount decimal.Decimal, tag string, order int) (Expense, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Expense{}, fmt.Errorf("%w: expense label is required", apperrors.ErrValidation)
	}
	if err := ValidateAmount("amount", amount); err != nil {
		return Expense{}, err
	}
	return Expense{
		ExpenseID: expenseID,
		SheetID:   sheetID,
		Label:     label,
		Amount:    amount,
		Tag:       strings.TrimSpace(tag),
		Order:     order,
	}, nil
}

func (e Expense) GetID() string { return e.ExpenseID }
func (e Expense) GetOrder() int { return e.Order }

func (e Expense) WithOrder(order int) Expense {
	e.Order = order
	return e
}
