package store

import (
	"context"
	"sync"

	"github.com/kouprlabs/voltaview/internal/api"
)

type taskSource struct {
	client *api.Client
}

func (s taskSource) FetchPage(ctx context.Context, _ struct{}, page, size int) (Page[api.Task], error) {
	list, err := s.client.ListTasks(ctx, api.ListOptions{
		Page:      page,
		Size:      size,
		SortBy:    api.SortByStatus,
		SortOrder: api.SortOrderDesc,
	})
	if err != nil {
		return Page[api.Task]{}, err
	}
	return pageOf(list), nil
}

func (s taskSource) FetchProbe(ctx context.Context, _ struct{}, size int) (Probe, error) {
	probe, err := s.client.ProbeTasks(ctx, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// TaskStore lists the user's background tasks. Tasks have no query; the
// listing is always status-sorted. Alongside the listing it keeps the
// server's pending-task count, since only page 1 is guaranteed loaded.
type TaskStore struct {
	*List[api.Task, struct{}]
	client *api.Client

	mu    sync.Mutex
	count int
}

// NewTaskStore builds the task list store.
func NewTaskStore(client *api.Client, opts Options) *TaskStore {
	s := &TaskStore{
		List:   NewList[api.Task, struct{}](taskSource{client: client}, opts),
		client: client,
	}
	s.List.syncHook = func(ctx context.Context) {
		if err := s.RefreshCount(ctx); err != nil {
			s.List.log.Debug().Err(err).Msg("task count failed")
		}
	}
	return s
}

// RefreshCount re-fetches the pending-task count from the server. The sync
// loop calls it every tick; callers may also invoke it directly for an
// immediate badge.
func (s *TaskStore) RefreshCount(ctx context.Context) error {
	n, err := s.client.CountTasks(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.count = n
	s.mu.Unlock()
	return nil
}

// PendingCount returns the last pending-task count the server reported.
func (s *TaskStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Dismiss dismisses one finished task and removes it from the listing.
func (s *TaskStore) Dismiss(ctx context.Context, id string) error {
	if err := s.client.DismissTask(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

// DismissAll dismisses every finished task. Confirmed dismissals leave the
// listing immediately; a partially failed batch is reported as such.
func (s *TaskStore) DismissAll(ctx context.Context) error {
	result, err := s.client.DismissAllTasks(ctx)
	if err != nil {
		return err
	}
	s.ApplyDeleted(result.Succeeded...)
	return batchError("dismiss", result)
}
