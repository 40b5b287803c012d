package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
)

// Task is an assignable job on a project board, ordered manually.
type Task struct {
	TaskID     string `json:"taskID"`
	ProjectID  string `json:"projectID"`
	Label      string `json:"label"`
	AssigneeID string `json:"assigneeID"` // Nullable
	Done       bool   `json:"done"`
	Order      int    `json:"order"`
	AuditFields
}

// NewTask validates the label and builds a task at the given position.
func NewTask(taskID, projectID, label, assigneeID string, order int) (Task, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Task{}, fmt.Errorf("%w: task label is required", apperrors.ErrValidation)
	}
	return Task{
		TaskID:     taskID,
		ProjectID:  projectID,
		Label:      label,
		AssigneeID: strings.TrimSpace(assigneeID),
		Order:      order,
	}, nil
}

func (t Task) GetID() string { return t.TaskID }
func (t Task) GetOrder() int { return t.Order }

func (t Task) WithOrder(order int) Task {
	t.Order = order
	return t
}
