// Package backend is the HTTP client for the externally-owned REST API
// that holds all state: tasks, users, comments, notifications, time logs
// and audit logs. Every call carries the caller's bearer token; a missing
// token fails fast before any network I/O.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Atharva2908/task-manager/internal/entity"
)

// APIError carries a non-2xx backend response so proxy handlers can
// forward the upstream status and detail unchanged.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	if token == "" {
		return entity.ErrUnauthorized
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.asAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

// asAPIError maps an error response to an APIError, preferring the
// backend's own {"detail": ...} message when it parses.
func (c *Client) asAPIError(resp *http.Response) error {
	detail := http.StatusText(resp.StatusCode)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

// Tasks

func (c *Client) ListTasks(ctx context.Context, token string) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := c.do(ctx, token, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, token, id string) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, token, http.MethodGet, "/api/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, req *entity.CreateTaskRequest) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, token, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, id string, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, token, http.MethodPut, "/api/tasks/"+id, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// Time logs

func (c *Client) SubmitTimeLog(ctx context.Context, token, taskID string, req *entity.TimeLogRequest) (*entity.TimeLog, error) {
	var logEntry entity.TimeLog
	if err := c.do(ctx, token, http.MethodPost, "/api/tasks/"+taskID+"/time-logs", req, &logEntry); err != nil {
		return nil, err
	}
	return &logEntry, nil
}

func (c *Client) ListTimeLogs(ctx context.Context, token, taskID string) ([]entity.TimeLog, error) {
	var logs []entity.TimeLog
	if err := c.do(ctx, token, http.MethodGet, "/api/tasks/"+taskID+"/time-logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Users

func (c *Client) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	var users []entity.User
	if err := c.do(ctx, token, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Comments

func (c *Client) ListTaskComments(ctx context.Context, token, taskID string) ([]entity.Comment, error) {
	var comments []entity.Comment
	if err := c.do(ctx, token, http.MethodGet, "/api/comments/task/"+taskID, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, token string, req *entity.CreateCommentRequest) (*entity.Comment, error) {
	var comment entity.Comment
	if err := c.do(ctx, token, http.MethodPost, "/api/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Notifications

func (c *Client) ListNotifications(ctx context.Context, token string) ([]entity.Notification, error) {
	var notifications []entity.Notification
	if err := c.do(ctx, token, http.MethodGet, "/api/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodPut, "/api/notifications/"+id+"/read", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/api/notifications/"+id, nil, nil)
}

// Audit logs

func (c *Client) CreateAuditLog(ctx context.Context, token string, audit *entity.TaskAudit) error {
	return c.do(ctx, token, http.MethodPost, "/api/audit-logs", audit, nil)
}
