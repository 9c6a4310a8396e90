package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskmaster/internal/api"
	"taskmaster/internal/service"
)

// Task reference resolution errors. These are user errors, distinct from
// backend failures during the lookup.
var (
	ErrTaskRefRequired  = errors.New("task reference required")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskRefAmbiguous = errors.New("ambiguous task reference")
)

// isTaskRefErr reports whether err is a reference-resolution rejection
// rather than a backend failure.
func isTaskRefErr(err error) bool {
	return errors.Is(err, ErrTaskRefRequired) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrTaskRefAmbiguous)
}

// lookupPageSize bounds how many tasks a prefix lookup scans per page.
const lookupPageSize = 100

// lookupMaxPages bounds how far a prefix lookup walks the collection.
const lookupMaxPages = 10

// resolveTask finds a task by full id or by a unique id prefix. A prefix
// matching more than one task is ambiguous.
func resolveTask(ctx context.Context, svc service.Service, ref string) (service.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, ErrTaskRefRequired
	}

	task, err := svc.GetTask(ctx, ref)
	if err == nil {
		return task, nil
	}
	if !api.IsNotFound(err) {
		return service.Task{}, err
	}

	// Exact id unknown; scan for a unique prefix match.
	var match service.Task
	found := false
	for page := 1; page <= lookupMaxPages; page++ {
		result, err := svc.ListTasks(ctx, service.ListFilter{
			Skip:  (page - 1) * lookupPageSize,
			Limit: lookupPageSize,
		})
		if err != nil {
			return service.Task{}, err
		}
		for _, t := range result.Items {
			if strings.HasPrefix(t.ID, ref) {
				if found {
					return service.Task{}, fmt.Errorf("%w: %s", ErrTaskRefAmbiguous, ref)
				}
				match = t
				found = true
			}
		}
		if page >= result.Pages {
			break
		}
	}

	if !found {
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	}
	return match, nil
}
