package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// Client talks to the task backend over its REST contract. It does not
// retry and does not interpret status codes beyond success or failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a client for the collection at baseURL, e.g.
// http://localhost:8080/api/tasks.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the collection URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var payloads []TaskPayload
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &payloads); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, len(payloads))
	for i, p := range payloads {
		tasks[i] = p.Task()
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	var created TaskPayload
	if err := c.do(ctx, http.MethodPost, c.baseURL, PayloadFromDraft(draft), &created); err != nil {
		return nil, err
	}
	task := created.Task()
	return &task, nil
}

// UpdateTask sends the complete task, not a patch.
func (c *Client) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	var updated TaskPayload
	if err := c.do(ctx, http.MethodPut, c.taskURL(task.ID), PayloadFromTask(task), &updated); err != nil {
		return nil, err
	}
	result := updated.Task()
	return &result, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, nil)
}

func (c *Client) taskURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

// do sends body as JSON and decodes a successful response into out.
// Any non-2xx status is a failure.
func (c *Client) do(ctx context.Context, method, target string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WrapError(err, errors.ErrorTypeInvalidInput, "encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.NewNetworkError(method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debugf("%s %s failed after %v: %v\n", method, target, time.Since(start), err)
		return errors.NewNetworkError(method, target, err)
	}
	defer resp.Body.Close()
	logging.Debugf("%s %s -> %d (%v)\n", method, target, resp.StatusCode, time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := errors.NewRemoteError(method, target, resp.StatusCode)
		var msg ErrorPayload
		if json.Unmarshal(respBody, &msg) == nil && msg.Message != "" {
			remoteErr.WithContext("message", msg.Message)
		}
		return remoteErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.WrapError(err, errors.ErrorTypeRemote, "decode response body")
	}
	return nil
}

var _ API = (*Client)(nil)
