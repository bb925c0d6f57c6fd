package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskify-api/internal/api"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingID = "65a0f1c2e4b0a1b2c3d4e5f6"

func createTask(t *testing.T, srv *httptest.Server, body interface{}) api.TaskResponse {
	t.Helper()
	var created api.TaskResponse
	testutils.DecodeJSONResponse(t,
		testutils.ExecuteJSONRequest(t, srv, http.MethodPost, "/api/tasks", body),
		http.StatusCreated, &created)
	return created
}

func getTask(t *testing.T, srv *httptest.Server, id string) api.TaskResponse {
	t.Helper()
	var task api.TaskResponse
	testutils.DecodeJSONResponse(t,
		testutils.ExecuteJSONRequest(t, srv, http.MethodGet, "/api/tasks/"+id, nil),
		http.StatusOK, &task)
	return task
}

func listTasks(t *testing.T, srv *httptest.Server, query string) []api.TaskResponse {
	t.Helper()
	var tasks []api.TaskResponse
	testutils.DecodeJSONResponse(t,
		testutils.ExecuteJSONRequest(t, srv, http.MethodGet, "/api/tasks"+query, nil),
		http.StatusOK, &tasks)
	return tasks
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := testutils.ExecuteJSONRequest(t, srv, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthEndpointReflectsDatabase(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"reachable", nil, http.StatusOK, "OK"},
		{"unreachable", errors.New("server selection timeout"), http.StatusServiceUnavailable, "Database unavailable"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			app.health = stubPinger{err: tc.err}
			srv := testutils.CreateTestServer(t, app.setupRouter())

			resp := testutils.ExecuteJSONRequest(t, srv, http.MethodGet, "/health", nil)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBody, string(body))
		})
	}
}

func TestCreateTaskScenario(t *testing.T) {
	srv, _ := newTestServer(t)

	created := createTask(t, srv, map[string]string{
		"title":       "Write report",
		"description": "Quarterly numbers",
		"due_date":    "2024-01-01",
		"priority":    "high",
	})

	assert.Len(t, created.ID, 24)
	assert.Equal(t, "Write report", created.Title)
	assert.Equal(t, "high", created.Priority)
	assert.Equal(t, "pending", created.Status, "status defaults to pending")
	assert.Equal(t, "2024-01-01", created.DueDate.Format("2006-01-02"))
}

func TestRequestLogsKeepComponent(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	app, err := newApplication(testConfig(), log, nil, testutils.NewMemoryTaskStore())
	require.NoError(t, err)
	srv := testutils.CreateTestServer(t, app.setupRouter())

	resp := testutils.ExecuteJSONRequest(t, srv, http.MethodPost, "/api/tasks",
		map[string]string{"title": "A", "description": "d", "due_date": "2024-01-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	traceID := resp.Header.Get("X-Trace-ID")
	require.NotEmpty(t, traceID)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)

	var found bool
	for _, entry := range entries {
		if entry["msg"] != "task created" {
			continue
		}
		found = true
		assert.Equal(t, "task_service", entry["component"])
		assert.Equal(t, traceID, entry["trace_id"])
	}
	assert.True(t, found, "no task created entry in:\n%s", buf.String())
}

func TestCreateTaskDefaults(t *testing.T) {
	srv, _ := newTestServer(t)

	created := createTask(t, srv, map[string]string{
		"title": "A", "description": "d", "due_date": "2024-01-01",
	})

	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "medium", created.Priority)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	created := createTask(t, srv, map[string]string{
		"title": "A", "description": "d", "due_date": "2024-01-01", "status": "in-progress",
	})

	got := getTask(t, srv, created.ID)

	assert.Equal(t, created, got)
}

func TestCreateValidation(t *testing.T) {
	srv, taskStore := newTestServer(t)

	resp := testutils.ExecuteJSONRequest(t, srv, http.MethodPost, "/api/tasks",
		map[string]string{"title": "A", "due_date": "2024-01-01"})
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "description")

	resp = testutils.ExecuteJSONRequest(t, srv, http.MethodPost, "/api/tasks",
		map[string]string{"title": "A", "description": "d", "due_date": "2024-01-01", "priority": "urgent"})
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "priority")

	resp = testutils.ExecuteJSONRequest(t, srv, http.MethodPost, "/api/tasks", `{"title":`)
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid request format")

	resp = testutils.ExecuteJSONRequest(t, srv, http.MethodPost, "/api/tasks",
		`{"title":"A","description":"d","due_date":"2024-01-01"} trailing`)
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid request format")

	assert.Equal(t, 0, taskStore.Len(), "nothing is stored for rejected requests")
}

func TestListFilters(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Empty(t, listTasks(t, srv, ""), "empty collection lists as []")

	a := createTask(t, srv, map[string]string{
		"title": "A", "description": "d", "due_date": "2024-01-01", "status": "pending", "priority": "high",
	})
	b := createTask(t, srv, map[string]string{
		"title": "B", "description": "d", "due_date": "2024-01-02", "status": "completed", "priority": "high",
	})
	c := createTask(t, srv, map[string]string{
		"title": "C", "description": "d", "due_date": "2024-01-03", "status": "pending", "priority": "low",
	})

	all := listTasks(t, srv, "")
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending := listTasks(t, srv, "?status=pending")
	require.Len(t, pending, 2)
	for _, task := range pending {
		assert.Equal(t, "pending", task.Status)
	}

	both := listTasks(t, srv, "?status=pending&priority=high")
	require.Len(t, both, 1)
	assert.Equal(t, a.ID, both[0].ID)

	assert.Empty(t, listTasks(t, srv, "?status=in-progress"))

	resp := testutils.ExecuteJSONRequest(t, srv, http.MethodGet, "/api/tasks?priority=urgent", nil)
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "priority")
}

func TestUpdateThenGet(t *testing.T) {
	srv, _ := newTestServer(t)

	created := createTask(t, srv, map[string]string{
		"title": "A", "description": "d", "due_date": "2024-01-01",
	})

	var updated api.TaskResponse
	testutils.DecodeJSONResponse(t,
		testutils.ExecuteJSONRequest(t, srv, http.MethodPut, "/api/tasks/"+created.ID,
			map[string]string{"title": "A2", "status": "completed"}),
		http.StatusOK, &updated)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, "medium", updated.Priority, "omitted fields keep their values")

	got := getTask(t, srv, created.ID)
	assert.Equal(t, updated, got)
}

func TestUpdateAllFieldsThenGet(t *testing.T) {
	srv, _ := newTestServer(t)

	created := createTask(t, srv, map[string]string{
		"title": "A", "description": "d", "due_date": "2024-01-01", "priority": "high",
	})

	var updated api.TaskResponse
	testutils.DecodeJSONResponse(t,
		testutils.ExecuteJSONRequest(t, srv, http.MethodPut, "/api/tasks/"+created.ID,
			map[string]string{
				"title":       "B",
				"description": "d",
				"due_date":    "2024-01-02",
				"priority":    "low",
				"status":      "completed",
			}),
		http.StatusOK, &updated)

	got := getTask(t, srv, created.ID)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "B", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, "2024-01-02", got.DueDate.UTC().Format("2006-01-02"))
	assert.Equal(t, "low", got.Priority)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, updated, got)
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	srv, _ := newTestServer(t)

	created := createTask(t, srv, map[string]string{
		"title": "A", "description": "d", "due_date": "2024-01-01",
	})

	resp := testutils.ExecuteJSONRequest(t, srv, http.MethodPut, "/api/tasks/"+created.ID,
		map[string]string{"status": "archived"})
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "status")

	assert.Equal(t, "pending", getTask(t, srv, created.ID).Status)
}

func TestDeleteThenGet(t *testing.T) {
	srv, _ := newTestServer(t)

	created := createTask(t, srv, map[string]string{
		"title": "A", "description": "d", "due_date": "2024-01-01",
	})

	var msg struct {
		Message string `json:"message"`
	}
	testutils.DecodeJSONResponse(t,
		testutils.ExecuteJSONRequest(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, nil),
		http.StatusOK, &msg)
	assert.Equal(t, "Task deleted successfully", msg.Message)

	resp := testutils.ExecuteJSONRequest(t, srv, http.MethodGet, "/api/tasks/"+created.ID, nil)
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "Task not found")
}

func TestMissingTaskIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		method string
		body   interface{}
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]string{"title": "x"}},
		{http.MethodDelete, nil},
	}

	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			resp := testutils.ExecuteJSONRequest(t, srv, tc.method, "/api/tasks/"+missingID, tc.body)
			testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "Task not found")
		})
	}
}

func TestMalformedIDIsServerError(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			resp := testutils.ExecuteJSONRequest(t, srv, method, "/api/tasks/not-an-id", nil)
			testutils.AssertErrorResponse(t, resp, http.StatusInternalServerError, "Failed to")
		})
	}
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/tasks", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		testutils.CleanupResponseBody(t, resp)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPut)
	})

	t.Run("simple request", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		testutils.CleanupResponseBody(t, resp)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestDocsRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/docs/openapi.yaml", "/api/docs/openapi.json"} {
		resp := testutils.ExecuteJSONRequest(t, srv, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
