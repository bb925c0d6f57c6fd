package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() TaskInput {
	return TaskInput{
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Priority:    PriorityHigh,
		Status:      StatusInProgress,
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask(validInput())
	require.NoError(t, err)

	assert.Empty(t, task.ID, "ID is assigned by the store")
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "Quarterly numbers", task.Description)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, StatusInProgress, task.Status)
}

func TestNewTaskDefaults(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.Priority = ""
	input.Status = ""

	task, err := NewTask(input)
	require.NoError(t, err)

	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusPending, task.Status)
}

func TestNewTaskNormalisesDueDateToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	input := validInput()
	input.DueDate = time.Date(2024, 3, 10, 2, 0, 0, 0, loc)

	task, err := NewTask(input)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, task.DueDate.Location())
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), task.DueDate)
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*TaskInput)
		field   string
		wantErr error
	}{
		{"blank title", func(in *TaskInput) { in.Title = "  " }, "title", ErrEmptyTitle},
		{"missing description", func(in *TaskInput) { in.Description = "" }, "description", ErrEmptyDescription},
		{"missing due date", func(in *TaskInput) { in.DueDate = time.Time{} }, "due_date", ErrInvalidDueDate},
		{"unknown priority", func(in *TaskInput) { in.Priority = "urgent" }, "priority", ErrInvalidPriority},
		{"unknown status", func(in *TaskInput) { in.Status = "done" }, "status", ErrInvalidStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			task, err := NewTask(input)
			require.Error(t, err)
			assert.Nil(t, task)

			assert.True(t, errors.Is(err, ErrValidation), "should match ErrValidation")
			assert.True(t, errors.Is(err, tc.wantErr), "should match %v", tc.wantErr)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestPriorityAndStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, p.IsValid(), string(p))
	}
	assert.False(t, Priority("").IsValid())
	assert.False(t, Priority("HIGH").IsValid())

	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, Status("in_progress").IsValid())
}

func TestTaskPatch(t *testing.T) {
	t.Parallel()

	task, err := NewTask(validInput())
	require.NoError(t, err)
	task.ID = "65a000000000000000000001"

	title := "Rewritten"
	status := StatusCompleted
	patch := TaskPatch{Title: &title, Status: &status}

	require.False(t, patch.IsEmpty())
	require.NoError(t, patch.Validate())

	patch.Apply(task)

	assert.Equal(t, "65a000000000000000000001", task.ID)
	assert.Equal(t, "Rewritten", task.Title)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, "Quarterly numbers", task.Description, "untouched fields are kept")
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestTaskPatchValidate(t *testing.T) {
	t.Parallel()

	empty := ""
	badPriority := Priority("someday")
	badStatus := Status("archived")
	zero := time.Time{}

	assert.True(t, TaskPatch{}.IsEmpty())
	assert.NoError(t, TaskPatch{}.Validate())
	assert.ErrorIs(t, TaskPatch{Title: &empty}.Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, TaskPatch{Description: &empty}.Validate(), ErrEmptyDescription)
	assert.ErrorIs(t, TaskPatch{DueDate: &zero}.Validate(), ErrInvalidDueDate)
	assert.ErrorIs(t, TaskPatch{Priority: &badPriority}.Validate(), ErrInvalidPriority)
	assert.ErrorIs(t, TaskPatch{Status: &badStatus}.Validate(), ErrInvalidStatus)
}

func TestFormatDueDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-01-01", FormatDueDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01T15:30:00Z", FormatDueDate(time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01T08:00:00Z",
		FormatDueDate(time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))))

	for _, in := range []string{"2024-02-29", "2024-01-01T15:30:00.5Z", "2024-01-01T10:00:00+02:00"} {
		d, err := ParseDueDate(in)
		require.NoError(t, err)
		back, err := ParseDueDate(FormatDueDate(d))
		require.NoError(t, err)
		assert.True(t, d.Equal(back), in)
	}
}

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"calendar date", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"surrounding whitespace", " 2024-02-29 ", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 utc", "2024-01-01T00:00:00.000Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 offset", "2024-01-01T10:00:00+02:00", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"not a date", "next tuesday", time.Time{}, true},
		{"impossible date", "2023-02-30", time.Time{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDueDate(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDueDate)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v want %v", got, tc.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "is required", ErrEmptyTitle)
	assert.Equal(t, "title is required", err.Error())

	bare := NewValidationError("id", "is required", nil)
	assert.ErrorIs(t, bare, ErrValidation)
}
