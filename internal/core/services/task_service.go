package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/google/uuid"
)

type taskService struct {
	orderedItems[domain.Task]
}

// NewTaskService creates the project board service.
func NewTaskService(repo portsrepo.TaskRepositoryFacade, boards *CollectionRegistry[domain.Task]) portssvc.TaskSvcFacade {
	return &taskService{
		orderedItems: orderedItems[domain.Task]{repo: repo, collections: boards},
	}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

func (s *taskService) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	return s.list(ctx, projectID)
}

func (s *taskService) CreateTask(ctx context.Context, projectID string, req dto.CreateTaskRequest, userID string) (*domain.Task, error) {
	now := time.Now()
	task, err := s.create(ctx, projectID, func(order int) (domain.Task, error) {
		task, err := domain.NewTask(uuid.NewString(), projectID, req.Label, req.AssigneeID, order)
		if err != nil {
			return domain.Task{}, err
		}
		task.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		return task, nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, projectID string, taskID string, req dto.UpdateTaskRequest, userID string) (*domain.Task, error) {
	if req.Label == nil && req.AssigneeID == nil && req.Done == nil {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}
	task, err := s.update(ctx, projectID, taskID, func(current domain.Task) (domain.Task, error) {
		if req.Label != nil {
			label := strings.TrimSpace(*req.Label)
			if label == "" {
				return domain.Task{}, fmt.Errorf("%w: task label is required", apperrors.ErrValidation)
			}
			current.Label = label
		}
		if req.AssigneeID != nil {
			current.AssigneeID = strings.TrimSpace(*req.AssigneeID)
		}
		if req.Done != nil {
			current.Done = *req.Done
		}
		current.LastUpdatedAt = time.Now()
		current.LastUpdatedBy = userID
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, projectID string, taskID string, userID string) error {
	return s.remove(ctx, projectID, taskID)
}

func (s *taskService) MoveTask(ctx context.Context, projectID string, req dto.MoveItemRequest, userID string) ([]domain.Task, error) {
	return s.move(ctx, projectID, req)
}
