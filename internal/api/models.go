package api

import (
	"time"

	"github.com/phrazzld/taskify-api/internal/domain"
)

// CreateTaskRequest defines the payload for POST /tasks.
// Priority and status are optional and default to medium and pending.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"due_date"    validate:"required,isodate"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
}

// ToInput converts the request into a domain.TaskInput.
func (r CreateTaskRequest) ToInput() (domain.TaskInput, error) {
	due, err := domain.ParseDueDate(r.DueDate)
	if err != nil {
		return domain.TaskInput{}, err
	}

	return domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Priority:    domain.Priority(r.Priority),
		Status:      domain.Status(r.Status),
	}, nil
}

// UpdateTaskRequest defines the payload for PUT /tasks/{id}.
// Only the fields present in the body are changed.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	DueDate     *string `json:"due_date"    validate:"omitnil,isodate"`
	Priority    *string `json:"priority"    validate:"omitnil,oneof=low medium high"`
	Status      *string `json:"status"      validate:"omitnil,oneof=pending in-progress completed"`
}

// ToPatch converts the request into a domain.TaskPatch.
func (r UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
	}

	if r.DueDate != nil {
		due, err := domain.ParseDueDate(*r.DueDate)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.DueDate = &due
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := domain.Status(*r.Status)
		patch.Status = &s
	}

	return patch, nil
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate.UTC(),
		Priority:    string(task.Priority),
		Status:      string(task.Status),
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
