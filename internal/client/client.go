// Package client is the remote task API client. Every method performs a
// single request/response round trip against the task collection endpoint;
// there is no retry, caching or deduplication.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskmanager/internal/models"
)

// ErrNotFound is returned when the server has no task with the given id.
var ErrNotFound = errors.New("task not found")

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 4 << 10

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client talks to the task service over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client for the service rooted at baseURL, e.g.
// "http://localhost:8080". A zero timeout disables the client timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/tasks",
		httpClient: httpClient,
	}
}

// List fetches all persisted tasks.
func (c *Client) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, c.endpoint, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Create persists a new task and returns the stored record.
func (c *Client) Create(ctx context.Context, task models.NewTask) (*models.Task, error) {
	var created *models.Task
	if err := c.do(ctx, http.MethodPost, c.endpoint, task, &created); err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%s %s: empty response", http.MethodPost, c.endpoint)
	}
	return created, nil
}

// Update applies a partial update. It returns ErrNotFound when the server
// answers with a null body or 404.
func (c *Client) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var updated *models.Task
	if err := c.do(ctx, http.MethodPut, c.taskURL(id), patch, &updated); err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return updated, nil
}

// Delete removes a task. The server confirms whether or not it existed.
func (c *Client) Delete(ctx context.Context, id string) error {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, &resp)
}

func (c *Client) taskURL(id string) string {
	return c.endpoint + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			URL:    target,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, target, err)
	}

	return nil
}
