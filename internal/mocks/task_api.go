package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskify-api/internal/client"
	"github.com/phrazzld/taskify-api/internal/domain"
)

// MockTaskAPI implements client.TaskAPI for testing the client Store
// without a server. Calls are counted so tests can assert that a request
// was or was not sent.
type MockTaskAPI struct {
	ListTasksFn  func(ctx context.Context, filter client.ListFilter) ([]domain.Task, error)
	CreateTaskFn func(ctx context.Context, payload client.TaskPayload) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id string, payload client.TaskPayload) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id string) (string, error)

	// Default return values
	Tasks        []domain.Task
	DefaultError error

	mu    sync.Mutex
	calls map[string]int
}

var _ client.TaskAPI = (*MockTaskAPI)(nil)

// Calls returns how many times the named method was invoked.
func (m *MockTaskAPI) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockTaskAPI) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// ListTasks implements client.TaskAPI.
func (m *MockTaskAPI) ListTasks(ctx context.Context, filter client.ListFilter) ([]domain.Task, error) {
	m.record("ListTasks")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, filter)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	out := make([]domain.Task, len(m.Tasks))
	copy(out, m.Tasks)
	return out, nil
}

// CreateTask implements client.TaskAPI.
func (m *MockTaskAPI) CreateTask(ctx context.Context, payload client.TaskPayload) (*domain.Task, error) {
	m.record("CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, payload)
	}
	return nil, m.DefaultError
}

// UpdateTask implements client.TaskAPI.
func (m *MockTaskAPI) UpdateTask(
	ctx context.Context,
	id string,
	payload client.TaskPayload,
) (*domain.Task, error) {
	m.record("UpdateTask")
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, payload)
	}
	return nil, m.DefaultError
}

// DeleteTask implements client.TaskAPI.
func (m *MockTaskAPI) DeleteTask(ctx context.Context, id string) (string, error) {
	m.record("DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return "", m.DefaultError
}
