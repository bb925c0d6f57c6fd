package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/redact"
)

var (
	// ErrIncompleteDraft blocks a draft submission. Its text is shown to the
	// user as is.
	ErrIncompleteDraft = errors.New("please fill in the priority, status and due date before adding a task")

	// ErrNotEditing is returned by edit operations when no row is being edited.
	ErrNotEditing = errors.New("no task is being edited")

	// ErrTaskNotLoaded is returned when an ID is not in the cached list.
	ErrTaskNotLoaded = errors.New("task is not in the loaded list")
)

// TaskAPI is the subset of Client the Store needs.
type TaskAPI interface {
	ListTasks(ctx context.Context, filter ListFilter) ([]domain.Task, error)
	CreateTask(ctx context.Context, payload TaskPayload) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, payload TaskPayload) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (string, error)
}

// Store holds the client's copy of the task list, a pending draft and at
// most one row in edit mode. The list is always replaced wholesale from
// the server after a mutation; nothing is patched locally.
//
// The mutex guards the cached state only. Network calls are not
// serialised, so the last Load to finish wins.
type Store struct {
	api    TaskAPI
	logger *slog.Logger

	mu        sync.Mutex
	tasks     []domain.Task
	draft     TaskPayload
	editingID string
	snapshot  domain.Task
}

// NewStore creates an empty Store over api.
func NewStore(api TaskAPI, logger *slog.Logger) (*Store, error) {
	if api == nil {
		return nil, errors.New("task api cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:    api,
		logger: logger.With(slog.String("component", "task_store")),
	}, nil
}

// Load fetches the full list and replaces the cache. A row that is being
// edited keeps its local changes if it still exists; otherwise edit mode
// ends.
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx, ListFilter{})
	if err != nil {
		s.logError(ctx, "failed to fetch tasks", err)
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID != "" {
		current, ok := s.find(s.editingID)
		kept := false
		for i := range tasks {
			if tasks[i].ID == s.editingID {
				s.snapshot = tasks[i]
				if ok {
					tasks[i] = s.tasks[current]
				}
				kept = true
				break
			}
		}
		if !kept {
			s.clearEdit()
		}
	}

	s.tasks = tasks
	s.logger.DebugContext(ctx, "task list loaded", slog.Int("count", len(tasks)))
	return nil
}

// Tasks returns a copy of the cached list.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Draft returns the pending new-task fields.
func (s *Store) Draft() TaskPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the pending new-task fields.
func (s *Store) SetDraft(draft TaskPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

// MissingDraftFields lists the draft fields that must be filled before
// SubmitDraft will send anything.
func MissingDraftFields(draft TaskPayload) []string {
	var missing []string
	if strings.TrimSpace(draft.Priority) == "" {
		missing = append(missing, "priority")
	}
	if strings.TrimSpace(draft.Status) == "" {
		missing = append(missing, "status")
	}
	if strings.TrimSpace(draft.DueDate) == "" {
		missing = append(missing, "due_date")
	}
	return missing
}

// SubmitDraft creates a task from the draft, resets the draft and reloads
// the list. An incomplete draft never reaches the server.
func (s *Store) SubmitDraft(ctx context.Context) (*domain.Task, error) {
	draft := s.Draft()

	if missing := MissingDraftFields(draft); len(missing) > 0 {
		return nil, fmt.Errorf("%w (missing: %s)", ErrIncompleteDraft, strings.Join(missing, ", "))
	}

	created, err := s.api.CreateTask(ctx, draft)
	if err != nil {
		s.logError(ctx, "failed to create task", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.SetDraft(TaskPayload{})

	if err := s.Load(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// BeginEdit puts row id into edit mode. A row already being edited is
// restored to its snapshot first.
func (s *Store) BeginEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID != "" {
		s.restore()
	}

	i, ok := s.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotLoaded, id)
	}

	s.editingID = id
	s.snapshot = s.tasks[i]
	return nil
}

// EditingID returns the ID of the row in edit mode, or "".
func (s *Store) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// EditingTask returns the current local copy of the row in edit mode.
func (s *Store) EditingTask() (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID == "" {
		return domain.Task{}, false
	}
	i, ok := s.find(s.editingID)
	if !ok {
		return domain.Task{}, false
	}
	return s.tasks[i], true
}

// UpdateEditing applies fn to the local copy of the row in edit mode.
// The ID cannot be changed.
func (s *Store) UpdateEditing(fn func(*domain.Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID == "" {
		return ErrNotEditing
	}
	i, ok := s.find(s.editingID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotLoaded, s.editingID)
	}

	fn(&s.tasks[i])
	s.tasks[i].ID = s.editingID
	return nil
}

// SaveEdit sends every field of the row in edit mode, including unsaved
// local changes, then leaves edit mode and reloads the list. On failure
// the row stays in edit mode.
func (s *Store) SaveEdit(ctx context.Context) (*domain.Task, error) {
	row, ok := s.EditingTask()
	if !ok {
		return nil, ErrNotEditing
	}

	updated, err := s.api.UpdateTask(ctx, row.ID, PayloadFromTask(row))
	if err != nil {
		s.logError(ctx, "failed to update task", err, slog.String("task_id", row.ID))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.mu.Lock()
	if s.editingID == row.ID {
		s.clearEdit()
	}
	s.mu.Unlock()

	if err := s.Load(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// CancelEdit restores the row in edit mode to its snapshot and leaves edit
// mode. It does nothing when no row is being edited.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID == "" {
		return
	}
	s.restore()
}

// Delete removes task id on the server and reloads the list.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.api.DeleteTask(ctx, id); err != nil {
		s.logError(ctx, "failed to delete task", err, slog.String("task_id", id))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.mu.Lock()
	if s.editingID == id {
		s.clearEdit()
	}
	s.mu.Unlock()

	return s.Load(ctx)
}

// restore puts the snapshot back and clears edit mode. Caller holds mu.
func (s *Store) restore() {
	if i, ok := s.find(s.editingID); ok {
		s.tasks[i] = s.snapshot
	}
	s.clearEdit()
}

// clearEdit leaves edit mode. Caller holds mu.
func (s *Store) clearEdit() {
	s.editingID = ""
	s.snapshot = domain.Task{}
}

// find returns the index of id in the cache. Caller holds mu.
func (s *Store) find(id string) (int, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", redact.Error(err)))

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs,
			slog.Int("status_code", apiErr.StatusCode),
			slog.String("trace_id", apiErr.TraceID))
	}

	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
