package models

import "github.com/shopspring/decimal"

// Task is a row of the tasks table.
type Task struct {
	TaskID     string `db:"task_id"`
	ProjectID  string `db:"project_id"`
	Label      string `db:"label"`
	AssigneeID string `db:"assignee_id"`
	Done       bool   `db:"done"`
	SortOrder  int    `db:"sort_order"`
	AuditFields
}

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID string          `db:"expense_id"`
	SheetID   string          `db:"sheet_id"`
	Label     string          `db:"label"`
	Amount    decimal.Decimal `db:"amount"`
	Tag       string          `db:"tag"`
	SortOrder int             `db:"sort_order"`
	AuditFields
}
