package testutils

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskify-api/internal/api"
	"github.com/phrazzld/taskify-api/internal/api/middleware"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/service"
	"github.com/stretchr/testify/require"
)

// NewTaskAPIServer starts a test server exposing the task API under /api,
// backed by a fresh MemoryTaskStore. The server is closed on test cleanup.
func NewTaskAPIServer(t *testing.T) (*httptest.Server, *MemoryTaskStore) {
	t.Helper()

	taskStore := NewMemoryTaskStore()
	return NewTaskAPIServerWithStore(t, taskStore), taskStore
}

// NewTaskAPIServerWithStore is NewTaskAPIServer over a caller-supplied store.
func NewTaskAPIServerWithStore(t *testing.T, taskStore *MemoryTaskStore) *httptest.Server {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	return CreateTestServer(t, NewTaskRouter(t, taskStore, log))
}

// NewTaskRouter wires the task handler and its service over taskStore.
func NewTaskRouter(t *testing.T, taskStore *MemoryTaskStore, log *slog.Logger) *chi.Mux {
	t.Helper()

	taskService, err := service.NewTaskService(taskStore, log)
	require.NoError(t, err, "Failed to create task service")

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(log))
	r.Route("/api", func(r chi.Router) {
		r.Mount("/tasks", api.NewTaskHandler(taskService, log).Routes())
	})
	return r
}
