// Package client talks to the task API over HTTP and keeps the client-side
// view of the task list in a Store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/taskify-api/internal/api/middleware"
	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/domain"
)

// DefaultBaseURL is where the API is mounted when the server runs locally.
const DefaultBaseURL = "http://localhost:5000/api"

// DefaultTimeout bounds a single request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound matches any APIError carrying a 404.
	ErrNotFound = errors.New("task not found")

	// ErrBadRequest matches any APIError carrying a 400.
	ErrBadRequest = errors.New("bad request")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("api error %d: %s (trace_id=%s)", e.StatusCode, e.Message, e.TraceID)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match APIErrors against ErrNotFound and ErrBadRequest.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// ListFilter narrows ListTasks. Empty fields are not sent.
type ListFilter struct {
	Status   string
	Priority string
}

func (f ListFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	return q
}

// TaskPayload is the body sent on create and update. Due dates travel as
// calendar dates (domain.DueDateLayout) or RFC 3339 timestamps.
type TaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
}

// PayloadFromTask returns a payload carrying every editable field of task.
func PayloadFromTask(task domain.Task) TaskPayload {
	due := ""
	if !task.DueDate.IsZero() {
		due = domain.FormatDueDate(task.DueDate)
	}
	return TaskPayload{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     due,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
	}
}

// Client is a typed binding for the /tasks resource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "task_client"))

	return c, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks fetches every task matching filter, in server order.
func (c *Client) ListTasks(ctx context.Context, filter ListFilter) ([]domain.Task, error) {
	tasks := []domain.Task{}
	if err := c.do(ctx, http.MethodGet, "/tasks", filter.query(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask posts a new task and returns it with its assigned ID.
func (c *Client) CreateTask(ctx context.Context, payload TaskPayload) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces the fields of task id with payload.
func (c *Client) UpdateTask(ctx context.Context, id string, payload TaskPayload) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), nil, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes task id and returns the server's confirmation message.
func (c *Client) DeleteTask(ctx context.Context, id string) (string, error) {
	var msg shared.MessageResponse
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// do sends one request and decodes a 2xx body into out. Non-2xx responses
// become *APIError.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body interface{},
	out interface{},
) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.DebugContext(ctx, "api request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status_code", resp.StatusCode),
		slog.String("trace_id", resp.Header.Get(middleware.TraceIDHeader)),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		TraceID:    resp.Header.Get(middleware.TraceIDHeader),
	}

	var body shared.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		if body.TraceID != "" {
			apiErr.TraceID = body.TraceID
		}
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
