package dto

import "github.com/SscSPs/renovation_backoffice/internal/core/domain"

// CreateTaskRequest defines the data needed to add a task to a project board.
type CreateTaskRequest struct {
	Label      string `json:"label" binding:"required"`
	AssigneeID string `json:"assigneeID"`
}

// UpdateTaskRequest defines the data allowed for updating a task.
type UpdateTaskRequest struct {
	Label      *string `json:"label"`
	AssigneeID *string `json:"assigneeID"`
	Done       *bool   `json:"done"`
}

// TaskResponse defines the data returned for a task.
type TaskResponse struct {
	TaskID     string `json:"taskID"`
	ProjectID  string `json:"projectID"`
	Label      string `json:"label"`
	AssigneeID string `json:"assigneeID,omitempty"`
	Done       bool   `json:"done"`
	Order      int    `json:"order"`
}

func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:     t.TaskID,
		ProjectID:  t.ProjectID,
		Label:      t.Label,
		AssigneeID: t.AssigneeID,
		Done:       t.Done,
		Order:      t.Order,
	}
}

func ToListTaskResponse(tasks []domain.Task) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i := range tasks {
		res[i] = ToTaskResponse(&tasks[i])
	}
	return res
}
