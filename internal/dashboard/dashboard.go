// Package dashboard maintains the task-list view state: filters, pagination,
// the loaded page of tasks and the stats snapshot, with the refresh policy
// of the TaskMaster dashboard.
package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"taskmaster/internal/api"
	"taskmaster/internal/service"
)

// ErrTitleRequired is returned by Create for an empty title, before any
// network call.
var ErrTitleRequired = errors.New("title required")

// Default sort applied until the caller changes it.
const (
	DefaultSortBy    = "created_at"
	DefaultSortOrder = "desc"
)

// Snapshot is an immutable copy of the dashboard view state.
type Snapshot struct {
	Tasks      []service.Task
	Stats      service.Stats
	Page       int
	TotalPages int
	Search     string
	Statuses   []service.Status
	SortBy     string
	SortOrder  string
}

// Dashboard coordinates list retrieval and mutation. Page and sort changes
// re-fetch immediately; search and status changes re-fetch after a debounce
// delay and reset pagination to page 1. Every mutation re-fetches both the
// list and the stats. Safe for concurrent use; the debounce timer fires on
// its own goroutine.
type Dashboard struct {
	svc      service.Service
	pageSize int
	debounce time.Duration
	onChange func(Snapshot)

	mu         sync.Mutex
	timer      *time.Timer
	seq        uint64
	statuses   []service.Status
	search     string
	sortBy     string
	sortOrder  string
	page       int
	totalPages int
	tasks      []service.Task
	stats      service.Stats
}

// New creates a dashboard over svc. onChange, if non-nil, is invoked with a
// fresh snapshot after every applied fetch. It may be called from the
// debounce goroutine.
func New(svc service.Service, pageSize int, debounce time.Duration, onChange func(Snapshot)) *Dashboard {
	return &Dashboard{
		svc:       svc,
		pageSize:  pageSize,
		debounce:  debounce,
		onChange:  onChange,
		sortBy:    DefaultSortBy,
		sortOrder: DefaultSortOrder,
		page:      1,
	}
}

// Snapshot returns a copy of the current view state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Dashboard) snapshotLocked() Snapshot {
	snap := Snapshot{
		Tasks:      make([]service.Task, len(d.tasks)),
		Stats:      d.stats,
		Page:       d.page,
		TotalPages: d.totalPages,
		Search:     d.search,
		Statuses:   append([]service.Status(nil), d.statuses...),
		SortBy:     d.sortBy,
		SortOrder:  d.sortOrder,
	}
	copy(snap.Tasks, d.tasks)
	return snap
}

// Refresh fetches the current page and the stats snapshot. A refresh that
// was superseded by a newer one before its response arrived is discarded,
// so a slow response can never overwrite fresher state.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	filter := service.ListFilter{
		Statuses:  append([]service.Status(nil), d.statuses...),
		Search:    d.search,
		SortBy:    d.sortBy,
		SortOrder: d.sortOrder,
		Skip:      (d.page - 1) * d.pageSize,
		Limit:     d.pageSize,
	}
	d.mu.Unlock()

	page, listErr := d.svc.ListTasks(ctx, filter)
	stats, statsErr := d.svc.Stats(ctx)

	d.mu.Lock()
	if seq != d.seq {
		// A newer fetch was issued while this one was in flight.
		d.mu.Unlock()
		return nil
	}
	if listErr == nil {
		d.tasks = page.Items
		d.totalPages = page.Pages
	}
	if statsErr == nil {
		d.stats = stats
	}
	snap := d.snapshotLocked()
	onChange := d.onChange
	d.mu.Unlock()

	if onChange != nil && listErr == nil {
		onChange(snap)
	}
	if listErr != nil {
		return listErr
	}
	return statsErr
}

// SetPage moves to the given page (1-based) and re-fetches immediately.
func (d *Dashboard) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	d.mu.Lock()
	d.page = page
	d.mu.Unlock()
	return d.Refresh(ctx)
}

// SetSort changes the sort field and direction and re-fetches immediately.
func (d *Dashboard) SetSort(ctx context.Context, field, order string) error {
	d.mu.Lock()
	d.sortBy = field
	d.sortOrder = strings.ToLower(order)
	d.mu.Unlock()
	return d.Refresh(ctx)
}

// SetSearch changes the free-text search term and schedules a debounced
// re-fetch that resets pagination to page 1.
func (d *Dashboard) SetSearch(ctx context.Context, search string) {
	d.mu.Lock()
	d.search = search
	d.scheduleLocked(ctx)
	d.mu.Unlock()
}

// SetStatuses changes the status filter and schedules a debounced re-fetch
// that resets pagination to page 1.
func (d *Dashboard) SetStatuses(ctx context.Context, statuses ...service.Status) {
	d.mu.Lock()
	d.statuses = append([]service.Status(nil), statuses...)
	d.scheduleLocked(ctx)
	d.mu.Unlock()
}

// scheduleLocked arms the debounce timer, cancelling any previously
// scheduled refresh first.
func (d *Dashboard) scheduleLocked(ctx context.Context) {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, func() {
		d.mu.Lock()
		d.page = 1
		d.mu.Unlock()
		d.Refresh(ctx)
	})
}

// Flush cancels any pending debounced refresh and runs it now.
func (d *Dashboard) Flush(ctx context.Context) error {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	if pending {
		d.page = 1
	}
	d.mu.Unlock()
	if !pending {
		return nil
	}
	return d.Refresh(ctx)
}

// Close cancels any pending debounced refresh.
func (d *Dashboard) Close() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}

// Create creates a task and re-fetches list and stats. An empty title is
// rejected locally without a network call.
func (d *Dashboard) Create(ctx context.Context, fields service.TaskFields) (service.Task, error) {
	if strings.TrimSpace(fields.Title) == "" {
		return service.Task{}, ErrTitleRequired
	}
	task, err := d.svc.CreateTask(ctx, fields)
	if err != nil {
		return service.Task{}, err
	}
	return task, d.Refresh(ctx)
}

// Update updates a task with the version last observed by the caller and
// re-fetches list and stats. A conflict means the task was concurrently
// modified server-side: local state is left untouched, the list is
// silently refreshed to show the current server state, and the conflict
// error is returned for the caller to surface. The write is never retried.
func (d *Dashboard) Update(ctx context.Context, id string, fields service.TaskFields, expectedVersion int) (service.Task, error) {
	task, err := d.svc.UpdateTask(ctx, id, fields, expectedVersion)
	if err != nil {
		if api.IsConflict(err) {
			d.Refresh(ctx)
		}
		return service.Task{}, err
	}
	return task, d.Refresh(ctx)
}

// Delete deletes a task and re-fetches list and stats. Confirmation is the
// caller's responsibility.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if err := d.svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	return d.Refresh(ctx)
}
