package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/store"
)

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask validates input, applies defaults and persists a new task.
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)

	// ListTasks returns every task matching filter in insertion order.
	ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// UpdateTask replaces the fields named in patch and returns the stored result.
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task and returns the removed record.
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
}

const serviceComponent = "task_service"

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if taskStore is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", serviceComponent)),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	input domain.TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextWithComponent(ctx, s.logger, serviceComponent)

	task, err := domain.NewTask(input)
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.taskStore.Create(ctx, task)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", created.ID),
		slog.String("priority", string(created.Priority)),
		slog.String("status", string(created.Status)))

	return created, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextWithComponent(ctx, s.logger, serviceComponent)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextWithComponent(ctx, s.logger, serviceComponent)

	if err := validateID(id); err != nil {
		return nil, err
	}

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.String("task_id", id))
			return nil, NewTaskServiceError("get_task", "task not found", err)
		}

		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// Only the fields present in patch change; no defaults are re-applied.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextWithComponent(ctx, s.logger, serviceComponent)

	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		log.Debug("rejected invalid task update",
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	updated, err := s.taskStore.Update(ctx, id, patch)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.String("task_id", id))
			return nil, NewTaskServiceError("update_task", "task not found", err)
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.String("task_id", id))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextWithComponent(ctx, s.logger, serviceComponent)

	if err := validateID(id); err != nil {
		return nil, err
	}

	deleted, err := s.taskStore.Delete(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for deletion", slog.String("task_id", id))
			return nil, NewTaskServiceError("delete_task", "task not found", err)
		}

		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", id))
	return deleted, nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("id", "is required", domain.ErrInvalidID)
	}
	return nil
}
