package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskmaster/internal/apperror"
	"taskmaster/internal/models"
	"taskmaster/internal/repository"
	"taskmaster/pkg/logger"
)

const (
	msgTaskNotFound  = "Task not found"
	msgTitleRequired = "Title is required"
	msgInvalidStatus = "Invalid status. Must be one of: pending, in-progress, completed"
)

type CreateTaskInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
}

// TaskService applies per-user ownership to every task operation. A task
// owned by someone else is reported exactly like a missing one.
type TaskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.Validation(msgTitleRequired)
	}
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, apperror.Validation(msgInvalidStatus)
	}

	task := &models.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return nil, apperror.Internal("Failed to create task", err)
	}

	logger.AuditLogger.Info("Task created successfully", zap.String("task_id", task.ID), zap.String("user_id", userID))
	return task, nil
}

// List never returns nil. An unknown status matches nothing.
func (s *TaskService) List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Status != "" && !filter.Status.Valid() {
		return []models.Task{}, nil
	}

	tasks, err := s.tasks.List(ctx, userID, filter)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return nil, apperror.Internal("Failed to fetch tasks", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, apperror.NotFound(msgTaskNotFound)
	}

	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(msgTaskNotFound)
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return nil, apperror.Internal("Failed to fetch task", err)
	}
	return task, nil
}

// Update applies only the fields present in patch. An explicit null
// description clears it; updated_at moves even when nothing else changes.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title.Set {
		if strings.TrimSpace(patch.Title.Value) == "" {
			return nil, apperror.Validation(msgTitleRequired)
		}
	}
	if patch.Status.Set && !patch.Status.Value.Valid() {
		return nil, apperror.Validation(msgInvalidStatus)
	}

	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(msgTaskNotFound)
		}
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return nil, apperror.Internal("Failed to update task", err)
	}

	logger.AuditLogger.Info("Task updated successfully", zap.String("task_id", task.ID), zap.String("user_id", userID))
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return apperror.NotFound(msgTaskNotFound)
	}

	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(msgTaskNotFound)
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return apperror.Internal("Failed to delete task", err)
	}

	logger.AuditLogger.Info("Task deleted successfully", zap.String("task_id", taskID), zap.String("user_id", userID))
	return nil
}
