package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/store"
)

// getPathID extracts a non-blank path parameter. Its format is left for the
// store to judge.
func getPathID(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	return id, nil
}

// getTaskFilter reads the optional status and priority query parameters.
func getTaskFilter(r *http.Request) store.TaskFilter {
	q := r.URL.Query()
	return store.TaskFilter{
		Status:   domain.Status(strings.TrimSpace(q.Get("status"))),
		Priority: domain.Priority(strings.TrimSpace(q.Get("priority"))),
	}
}
