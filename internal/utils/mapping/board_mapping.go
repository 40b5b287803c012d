package mapping

import (
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/models"
)

func ToModelTask(d domain.Task) models.Task {
	return models.Task{
		TaskID:      d.TaskID,
		ProjectID:   d.ProjectID,
		Label:       d.Label,
		AssigneeID:  d.AssigneeID,
		Done:        d.Done,
		SortOrder:   d.Order,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTask(m models.Task) domain.Task {
	return domain.Task{
		TaskID:      m.TaskID,
		ProjectID:   m.ProjectID,
		Label:       m.Label,
		AssigneeID:  m.AssigneeID,
		Done:        m.Done,
		Order:       m.SortOrder,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		SheetID:     d.SheetID,
		Label:       d.Label,
		Amount:      d.Amount,
		Tag:         d.Tag,
		SortOrder:   d.Order,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		SheetID:     m.SheetID,
		Label:       m.Label,
		Amount:      m.Amount,
		Tag:         m.Tag,
		Order:       m.SortOrder,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
