package domain

import (
	"strings"
	"time"
)

// Priority ranks how urgent a task is.
type Priority string

// Possible priority values
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when a task is created without a priority.
const DefaultPriority = PriorityMedium

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status tracks the progress of a task.
type Status string

// Possible status values
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// DefaultStatus is assigned when a task is created without a status.
const DefaultStatus = StatusPending

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// DueDateLayout is the calendar-date layout accepted for due dates.
const DueDateLayout = "2006-01-02"

// Task is a single to-do item. ID is assigned by the persistence layer
// on creation and never changes afterwards.
type Task struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
}

// TaskInput carries the caller-supplied fields for a new task.
// Priority and Status may be left empty to get the defaults.
type TaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
	Status      Status
}

// NewTask builds a Task from input, applying the default priority and
// status where they were omitted. The ID is left empty for the store.
// Returns an error if validation fails.
func NewTask(input TaskInput) (*Task, error) {
	task := &Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate.UTC(),
		Priority:    input.Priority,
		Status:      input.Status,
	}

	if task.Priority == "" {
		task.Priority = DefaultPriority
	}
	if task.Status == "" {
		task.Status = DefaultStatus
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns a *ValidationError for the first field that fails.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}

	if strings.TrimSpace(t.Description) == "" {
		return NewValidationError("description", "is required", ErrEmptyDescription)
	}

	if t.DueDate.IsZero() {
		return NewValidationError("due_date", "is required", ErrInvalidDueDate)
	}

	if !t.Priority.IsValid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}

	if !t.Status.IsValid() {
		return NewValidationError(
			"status",
			"must be one of pending, in-progress, completed",
			ErrInvalidStatus,
		)
	}

	return nil
}

// TaskPatch names the fields to replace on an existing task.
// Nil fields are left untouched; no defaults are applied.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *Priority
	Status      *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.DueDate == nil &&
		p.Priority == nil &&
		p.Status == nil
}

// Validate checks the fields present in the patch.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return NewValidationError("description", "cannot be empty", ErrEmptyDescription)
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		return NewValidationError("due_date", "cannot be empty", ErrInvalidDueDate)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return NewValidationError(
			"status",
			"must be one of pending, in-progress, completed",
			ErrInvalidStatus,
		)
	}
	return nil
}

// Apply copies the patch onto t. The ID is never touched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate.UTC()
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// FormatDueDate renders d as a calendar date when it falls on midnight UTC
// and as an RFC 3339 timestamp otherwise, so ParseDueDate returns d unchanged.
func FormatDueDate(d time.Time) string {
	d = d.UTC()
	if d.Equal(d.Truncate(24 * time.Hour)) {
		return d.Format(DueDateLayout)
	}
	return d.Format(time.RFC3339Nano)
}

// ParseDueDate parses a calendar date (2006-01-02) or an RFC 3339
// timestamp and returns it in UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, NewValidationError("due_date", "is required", ErrInvalidDueDate)
	}

	if d, err := time.Parse(DueDateLayout, s); err == nil {
		return d.UTC(), nil
	}

	d, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, NewValidationError(
			"due_date",
			"must be a date (YYYY-MM-DD) or RFC 3339 timestamp",
			ErrInvalidDueDate,
		)
	}
	return d.UTC(), nil
}
