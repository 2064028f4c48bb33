package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// TaskFields is the accepted input for task creation. There is deliberately
// no owner field here: ownership always comes from the authenticated subject
// and cannot be expressed in client input at all.
type TaskFields struct {
	Title       string
	Description string
}

// TaskUpdate carries the mutable fields for an update. Completed is optional;
// nil keeps the stored value.
type TaskUpdate struct {
	Title       string
	Description string
	Completed   *bool
}

// TaskService is the isolation enforcement layer: every operation on tasks
// goes through it and requires the authenticated subject ID as the leading
// parameter. A task owned by another principal is reported exactly like a
// missing one.
type TaskService struct {
	tasks tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{tasks: repo}
}

// Create stores a new task owned by subjectID.
func (s *TaskService) Create(ctx context.Context, subjectID string, fields TaskFields) (*models.Task, error) {

	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      subjectID,
		Title:       title,
		Description: fields.Description,
	}

	task, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

func (s *TaskService) GetOwned(ctx context.Context, subjectID, taskID string) (*models.Task, error) {
	return s.tasks.Get(ctx, subjectID, taskID)
}

func (s *TaskService) ListOwned(ctx context.Context, subjectID string) ([]*models.Task, error) {
	return s.tasks.List(ctx, subjectID)
}

// UpdateOwned applies upd to an owned task. The final write repeats the
// ownership conjunction in a single statement, so losing a race against a
// delete yields ErrorNotFound rather than a resurrected row.
func (s *TaskService) UpdateOwned(ctx context.Context, subjectID, taskID string, upd TaskUpdate) (*models.Task, error) {

	title := strings.TrimSpace(upd.Title)
	if title == "" {
		return nil, common.ErrorValidation
	}

	current, err := s.tasks.Get(ctx, subjectID, taskID)
	if err != nil {
		return nil, err
	}

	completed := current.Completed
	if upd.Completed != nil {
		completed = *upd.Completed
	}

	task, err := s.tasks.Update(ctx, subjectID, taskID, title, upd.Description, completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ToggleOwned(ctx context.Context, subjectID, taskID string) (*models.Task, error) {
	return s.tasks.Toggle(ctx, subjectID, taskID)
}

func (s *TaskService) DeleteOwned(ctx context.Context, subjectID, taskID string) error {
	return s.tasks.Delete(ctx, subjectID, taskID)
}
