package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/store"
	"github.com/stretchr/testify/require"
)

// DefaultDueDate is the due date given to test tasks unless overridden.
var DefaultDueDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TaskOption is a function that configures a test task input.
type TaskOption func(*domain.TaskInput)

// WithTaskTitle sets the title.
func WithTaskTitle(title string) TaskOption {
	return func(in *domain.TaskInput) { in.Title = title }
}

// WithTaskDescription sets the description.
func WithTaskDescription(description string) TaskOption {
	return func(in *domain.TaskInput) { in.Description = description }
}

// WithTaskDueDate sets the due date.
func WithTaskDueDate(due time.Time) TaskOption {
	return func(in *domain.TaskInput) { in.DueDate = due }
}

// WithTaskPriority sets the priority.
func WithTaskPriority(p domain.Priority) TaskOption {
	return func(in *domain.TaskInput) { in.Priority = p }
}

// WithTaskStatus sets the status.
func WithTaskStatus(s domain.Status) TaskOption {
	return func(in *domain.TaskInput) { in.Status = s }
}

// NewTaskInput returns a valid input with a title, description and due date,
// leaving priority and status empty so defaults apply.
func NewTaskInput(opts ...TaskOption) domain.TaskInput {
	in := domain.TaskInput{
		Title:       "Test task",
		Description: "Test description",
		DueDate:     DefaultDueDate,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// MustCreateTaskForTest builds a validated, unsaved task.
func MustCreateTaskForTest(t *testing.T, opts ...TaskOption) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(NewTaskInput(opts...))
	require.NoError(t, err, "Failed to create test task")
	return task
}

// MustInsertTask builds a task and saves it to taskStore.
func MustInsertTask(t *testing.T, taskStore store.TaskStore, opts ...TaskOption) *domain.Task {
	t.Helper()
	created, err := taskStore.Create(context.Background(), MustCreateTaskForTest(t, opts...))
	require.NoError(t, err, "Failed to insert test task")
	return created
}
