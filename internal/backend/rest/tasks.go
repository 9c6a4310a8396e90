package rest

import (
	"context"
	"net/url"

	"github.com/gorilla/schema"

	"taskmaster/internal/service"
)

var queryEncoder = schema.NewEncoder()

// listQuery is the wire form of service.ListFilter. Zero-valued fields are
// omitted so that empty filters never reach the server.
type listQuery struct {
	Status    []service.Status `schema:"status,omitempty"`
	Search    string           `schema:"search,omitempty"`
	SortBy    string           `schema:"sort_by,omitempty"`
	SortOrder string           `schema:"sort_order,omitempty"`
	Skip      int              `schema:"skip,omitempty"`
	Limit     int              `schema:"limit,omitempty"`
}

// ListTasks returns one page of tasks matching the filter. More than one
// status value requires the multi-status filtering of the v2 revision;
// zero or one status uses v1.
func (c *Client) ListTasks(ctx context.Context, filter service.ListFilter) (service.TaskPage, error) {
	q := listQuery{
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		Skip:      filter.Skip,
		Limit:     filter.Limit,
	}
	if len(filter.Statuses) > 0 {
		q.Status = filter.Statuses
	}

	values := url.Values{}
	if err := queryEncoder.Encode(&q, values); err != nil {
		return service.TaskPage{}, err
	}

	path := "/v1/tasks"
	if len(filter.Statuses) > 1 {
		path = "/v2/tasks"
	}

	var page service.TaskPage
	if err := c.api.Get(ctx, path, values, &page); err != nil {
		return service.TaskPage{}, err
	}
	return page, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	if err := c.api.Get(ctx, "/v1/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a task and returns the server copy.
func (c *Client) CreateTask(ctx context.Context, fields service.TaskFields) (service.Task, error) {
	var task service.Task
	if err := c.api.Post(ctx, "/v1/tasks", fields, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask updates a task, always echoing the last observed version so
// the server can detect a concurrent modification.
func (c *Client) UpdateTask(ctx context.Context, id string, fields service.TaskFields, expectedVersion int) (service.Task, error) {
	body := struct {
		service.TaskFields
		Version int `json:"version"`
	}{fields, expectedVersion}

	var task service.Task
	if err := c.api.Put(ctx, "/v1/tasks/"+url.PathEscape(id), body, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/v1/tasks/"+url.PathEscape(id))
}

// Stats fetches the aggregate count snapshot.
func (c *Client) Stats(ctx context.Context) (service.Stats, error) {
	var stats service.Stats
	if err := c.api.Get(ctx, "/v1/tasks/stats", nil, &stats); err != nil {
		return service.Stats{}, err
	}
	return stats, nil
}
