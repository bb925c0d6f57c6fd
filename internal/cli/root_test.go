package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/taskify-api/internal/client"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/store"
	"github.com/phrazzld/taskify-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes a fresh taskctl against srv with the given arguments.
func run(t *testing.T, srv *httptest.Server, args ...string) runResult {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCommand(WithHTTPClient(srv.Client()), WithOutput(&out, &errOut))
	root.Command().SetArgs(append([]string{"--api-url", srv.URL + "/api"}, args...))

	err := root.Execute(context.Background())
	return runResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func TestListEmpty(t *testing.T) {
	t.Parallel()

	srv, _ := testutils.NewTaskAPIServer(t)
	res := run(t, srv, "list")

	require.NoError(t, res.err)
	assert.Equal(t, "No tasks found\n", res.stdout)
}

func TestListTableAndFilters(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	a := testutils.MustInsertTask(t, taskStore, testutils.WithTaskTitle("Alpha"),
		testutils.WithTaskStatus(domain.StatusPending), testutils.WithTaskPriority(domain.PriorityHigh))
	b := testutils.MustInsertTask(t, taskStore, testutils.WithTaskTitle("Beta"),
		testutils.WithTaskStatus(domain.StatusCompleted), testutils.WithTaskPriority(domain.PriorityLow))

	res := run(t, srv, "list")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "PRIORITY")
	assert.Contains(t, lines[1], a.ID)
	assert.Contains(t, lines[1], "Alpha")
	assert.Contains(t, lines[1], "2024-01-01")
	assert.Contains(t, lines[2], b.ID)

	res = run(t, srv, "list", "--status", "completed")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Beta")
	assert.NotContains(t, res.stdout, "Alpha")

	res = run(t, srv, "list", "--status", "pending", "--priority", "low")
	require.NoError(t, res.err)
	assert.Equal(t, "No tasks found\n", res.stdout)
}

func TestListRejectedFilter(t *testing.T) {
	t.Parallel()

	srv, _ := testutils.NewTaskAPIServer(t)
	res := run(t, srv, "list", "--status", "archived")

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, client.ErrBadRequest)
	assert.True(t, strings.HasPrefix(res.stderr, "Error: "))
}

func TestShow(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	task := testutils.MustInsertTask(t, taskStore, testutils.WithTaskTitle("Alpha"),
		testutils.WithTaskDescription("line one\nline two"))

	res := run(t, srv, "show", task.ID)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, task.ID)
	assert.Contains(t, res.stdout, "Alpha")
	assert.Contains(t, res.stdout, "line one line two")
	assert.Contains(t, res.stdout, "medium")
	assert.Contains(t, res.stdout, "pending")

	res = run(t, srv, "show", "65a0000000000000000000ff")
	assert.ErrorIs(t, res.err, client.ErrNotFound)

	res = run(t, srv, "show")
	assert.Error(t, res.err)
}

func TestAdd(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	res := run(t, srv, "add",
		"--title", "Write report",
		"--description", "Quarterly numbers",
		"--due", "2024-01-01",
		"--priority", "high",
		"--status", "in-progress")

	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Created task ")
	assert.Contains(t, res.stdout, "Write report")
	assert.Equal(t, 1, taskStore.Len())

	tasks, err := taskStore.List(context.Background(), store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, domain.StatusInProgress, tasks[0].Status)
	assert.True(t, tasks[0].DueDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAddIncompleteDraftNeverReachesServer(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	res := run(t, srv, "add", "--title", "Write report", "--description", "Quarterly numbers", "--priority", "high")

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, client.ErrIncompleteDraft)
	assert.Contains(t, res.stderr, client.ErrIncompleteDraft.Error())
	assert.Contains(t, res.stderr, "status, due_date")
	assert.Zero(t, taskStore.Len())
}

func TestAddServerValidation(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	res := run(t, srv, "add", "--due", "2024-01-01", "--priority", "high", "--status", "pending")

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, client.ErrBadRequest)
	assert.Zero(t, taskStore.Len())
}

func TestEdit(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	task := testutils.MustInsertTask(t, taskStore, testutils.WithTaskTitle("Alpha"))

	res := run(t, srv, "edit", task.ID, "--status", "completed", "--due", "2024-02-01")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Updated task "+task.ID)

	got, err := taskStore.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Title, "untouched fields survive the full-row update")
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.True(t, got.DueDate.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestEditErrors(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	task := testutils.MustInsertTask(t, taskStore)

	res := run(t, srv, "edit", task.ID)
	assert.ErrorIs(t, res.err, errNothingToUpdate)

	res = run(t, srv, "edit", task.ID, "--due", "soon")
	assert.ErrorIs(t, res.err, domain.ErrInvalidDueDate)

	res = run(t, srv, "edit", "65a0000000000000000000ff", "--title", "x")
	assert.ErrorIs(t, res.err, client.ErrNotFound)

	res = run(t, srv, "edit", task.ID, "--priority", "urgent")
	assert.ErrorIs(t, res.err, client.ErrBadRequest)

	got, err := taskStore.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	srv, taskStore := testutils.NewTaskAPIServer(t)
	task := testutils.MustInsertTask(t, taskStore)

	res := run(t, srv, "delete", task.ID)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "Deleted task "+task.ID+"\n", res.stdout)
	assert.Zero(t, taskStore.Len())

	res = run(t, srv, "delete", task.ID)
	assert.ErrorIs(t, res.err, client.ErrNotFound)
}

func TestAPIURLFromEnvironment(t *testing.T) {
	srv, _ := testutils.NewTaskAPIServer(t)
	t.Setenv("TASKIFY_API_URL", srv.URL+"/api")

	var out, errOut bytes.Buffer
	root := NewRootCommand(WithHTTPClient(srv.Client()), WithOutput(&out, &errOut))
	root.Command().SetArgs([]string{"list"})

	require.NoError(t, root.Execute(context.Background()), errOut.String())
	assert.Equal(t, "No tasks found\n", out.String())
}

func TestVerboseLogsRequests(t *testing.T) {
	t.Parallel()

	srv, _ := testutils.NewTaskAPIServer(t)
	res := run(t, srv, "--verbose", "list")

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "api request completed")
	assert.Contains(t, res.stderr, "status_code=200")
}

func TestInvalidTimeout(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	root := NewRootCommand(WithOutput(&out, &errOut))
	root.Command().SetArgs([]string{"--timeout", "0s", "list"})

	err := root.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "timeout must be positive")
}
