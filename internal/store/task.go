package store

import (
	"context"

	"github.com/phrazzld/taskify-api/internal/domain"
)

// TaskFilter restricts a task listing by exact field values.
// Empty fields do not constrain the result; set fields are ANDed.
type TaskFilter struct {
	Status   domain.Status
	Priority domain.Priority
}

// IsEmpty reports whether the filter matches every task.
func (f TaskFilter) IsEmpty() bool {
	return f.Status == "" && f.Priority == ""
}

// Validate checks that any set field holds a known enum value.
func (f TaskFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return domain.NewValidationError(
			"status",
			"must be one of pending, in-progress, completed",
			domain.ErrInvalidStatus,
		)
	}
	if f.Priority != "" && !f.Priority.IsValid() {
		return domain.NewValidationError(
			"priority",
			"must be one of low, medium, high",
			domain.ErrInvalidPriority,
		)
	}
	return nil
}

// Matches reports whether task satisfies the filter.
func (f TaskFilter) Matches(task *domain.Task) bool {
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	return true
}

// TaskStore defines the interface for task data persistence.
// Implementations generate task IDs and rely on the backing store's
// per-document atomicity; no operation spans more than one task.
type TaskStore interface {
	// Create inserts a new task and returns it with its generated ID.
	// Any ID already set on task is ignored.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// List returns the tasks matching filter in insertion order.
	// The result is never nil; no matches yields an empty slice.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Update replaces the fields named in patch and returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task and returns the removed record.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) (*domain.Task, error)
}
