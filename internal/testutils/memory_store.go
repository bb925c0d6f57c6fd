package testutils

import (
	"context"
	"sync"

	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryTaskStore is a store.TaskStore kept in memory. IDs are ObjectID hex
// strings, so it rejects malformed IDs the same way the MongoDB store does.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]domain.Task

	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[string]domain.Task)}
}

var _ store.TaskStore = (*MemoryTaskStore)(nil)

// Create implements store.TaskStore.
func (s *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return nil, s.FailWith
	}

	stored := *task
	stored.ID = primitive.NewObjectID().Hex()
	stored.DueDate = stored.DueDate.UTC()

	s.tasks[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	out := stored
	return &out, nil
}

// List implements store.TaskStore.
func (s *MemoryTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailWith != nil {
		return nil, s.FailWith
	}

	tasks := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		task := s.tasks[id]
		if filter.Matches(&task) {
			tasks = append(tasks, &task)
		}
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.
func (s *MemoryTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get", id); err != nil {
		return nil, err
	}

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// Update implements store.TaskStore.
func (s *MemoryTaskStore) Update(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("update", id); err != nil {
		return nil, err
	}

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	patch.Apply(&task)
	s.tasks[id] = task

	out := task
	return &out, nil
}

// Delete implements store.TaskStore.
func (s *MemoryTaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("delete", id); err != nil {
		return nil, err
	}

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &task, nil
}

// Len returns the number of stored tasks.
func (s *MemoryTaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// check must be called with the lock held.
func (s *MemoryTaskStore) check(operation, id string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	if !primitive.IsValidObjectID(id) {
		return store.NewStoreError("task", operation, "invalid task id", store.ErrInvalidID)
	}
	return nil
}
