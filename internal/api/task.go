package api

import (
	"context"
	"net/http"
	"net/url"
)

// Task statuses.
const (
	TaskStatusWaiting = "waiting"
	TaskStatusRunning = "running"
	TaskStatusSuccess = "success"
	TaskStatusError   = "error"
)

// Task is a background server task (conversion, indexing, mosaic build).
type Task struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Error           string            `json:"error,omitempty"`
	Percentage      *int              `json:"percentage,omitempty"`
	IsIndeterminate bool              `json:"isIndeterminate"`
	UserID          string            `json:"userId"`
	Status          string            `json:"status"`
	Payload         map[string]string `json:"payload,omitempty"`
	CreateTime      string            `json:"createTime"`
	UpdateTime      *string           `json:"updateTime,omitempty"`
}

// EntityID implements store identity.
func (t Task) EntityID() string { return t.ID }

// IsPending reports whether the task is still waiting or running.
func (t Task) IsPending() bool {
	return t.Status == TaskStatusWaiting || t.Status == TaskStatusRunning
}

// ListTasks retrieves one page of the current user's tasks.
func (c *Client) ListTasks(ctx context.Context, opts ListOptions) (List[Task], error) {
	return fetchList[Task](ctx, c, "/v3/tasks", opts.values())
}

// ProbeTasks retrieves refreshed totals for the task listing.
func (c *Client) ProbeTasks(ctx context.Context, size int) (ProbeResult, error) {
	return c.fetchProbe(ctx, "/v3/tasks/probe", url.Values{}, size)
}

// CountTasks returns the number of pending tasks.
func (c *Client) CountTasks(ctx context.Context) (int, error) {
	var payload int
	if err := c.get(ctx, "/v3/tasks/count", nil, &payload); err != nil {
		return 0, err
	}
	return payload, nil
}

// DismissTask dismisses a single finished task.
func (c *Client) DismissTask(ctx context.Context, id string) error {
	if id == "" {
		return validationError("task ID is required")
	}
	return c.send(ctx, http.MethodPost, "/v3/tasks/"+id+"/dismiss", nil, nil)
}

// DismissAllTasks dismisses every finished task; tasks that could not be
// dismissed come back in the result.
func (c *Client) DismissAllTasks(ctx context.Context) (BatchResult, error) {
	var payload BatchResult
	if err := c.send(ctx, http.MethodPost, "/v3/tasks/dismiss", nil, &payload); err != nil {
		return BatchResult{}, err
	}
	return payload, nil
}
