package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AleLoredo/TasksAPI/internal/models"
)

// ErrTaskNotFound indicates the task does not exist or belongs to another
// user. The two cases are deliberately indistinguishable.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the persistence operations needed by the TaskService.
type TaskRepository interface {
	// ListByOwner retrieves all tasks belonging to the given user.
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error)
	// CreateTask inserts an incomplete task and returns its id.
	CreateTask(ctx context.Context, ownerID int64, description string) (int64, error)
	// DeleteTask removes the task if owned by ownerID, reporting whether a row went away.
	DeleteTask(ctx context.Context, ownerID, taskID int64) (bool, error)
	// SetCompleted updates the completed flag if owned by ownerID, reporting whether a row changed.
	SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) (bool, error)
}

// TaskService implements owner-scoped task operations.
type TaskService struct {
	// repo is the underlying persistence repository.
	repo TaskRepository
}

// NewTaskService constructs a TaskService with the provided TaskRepository.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns all tasks owned by ownerID. Never returns a nil slice.
func (s *TaskService) List(ctx context.Context, ownerID int64) ([]models.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Create trims the description and persists a new incomplete task for ownerID.
// An empty description after trimming yields ErrValidation.
func (s *TaskService) Create(ctx context.Context, ownerID int64, description string) (*models.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrValidation
	}

	id, err := s.repo.CreateTask(ctx, ownerID, description)
	if err != nil {
		return nil, err
	}
	return &models.Task{
		ID:          id,
		Description: description,
		Completed:   false,
		OwnerID:     ownerID,
	}, nil
}

// Delete removes the task if it exists and belongs to ownerID,
// otherwise ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID int64) error {
	deleted, err := s.repo.DeleteTask(ctx, ownerID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// SetCompleted updates the completed flag if the task exists and belongs to
// ownerID, otherwise ErrTaskNotFound. Repeating the same update is not an error.
func (s *TaskService) SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) error {
	updated, err := s.repo.SetCompleted(ctx, ownerID, taskID, completed)
	if err != nil {
		return err
	}
	if !updated {
		return ErrTaskNotFound
	}
	return nil
}
