package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kouprlabs/voltaview/internal/api"
)

// taskServer backs a TaskStore with mutable in-memory state and a
// separately controlled pending count.
type taskServer struct {
	mu      sync.Mutex
	tasks   []api.Task
	pending int
}

func (s *taskServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/v3/tasks" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(api.List[api.Task]{
				Data:          s.tasks,
				TotalPages:    1,
				TotalElements: len(s.tasks),
				Page:          1,
				Size:          len(s.tasks),
			})

		case r.URL.Path == "/v3/tasks/probe":
			_ = json.NewEncoder(w).Encode(api.ProbeResult{
				TotalPages:    1,
				TotalElements: len(s.tasks),
			})

		case r.URL.Path == "/v3/tasks/count":
			_ = json.NewEncoder(w).Encode(s.pending)

		case r.URL.Path == "/v3/tasks/dismiss" && r.Method == http.MethodPost:
			result := api.BatchResult{}
			kept := s.tasks[:0]
			for _, task := range s.tasks {
				if task.Status == api.TaskStatusSuccess {
					result.Succeeded = append(result.Succeeded, task.ID)
					continue
				}
				if task.Status == api.TaskStatusError {
					result.Failed = append(result.Failed, task.ID)
				}
				kept = append(kept, task)
			}
			s.tasks = kept
			_ = json.NewEncoder(w).Encode(result)

		case strings.HasSuffix(r.URL.Path, "/dismiss") && r.Method == http.MethodPost:
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v3/tasks/"), "/dismiss")
			kept := s.tasks[:0]
			for _, task := range s.tasks {
				if task.ID != id {
					kept = append(kept, task)
				}
			}
			s.tasks = kept
			w.WriteHeader(http.StatusNoContent)

		default:
			http.NotFound(w, r)
		}
	})
}

func newTaskFixture(t *testing.T, server *taskServer, opts Options) *TaskStore {
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	client, err := api.NewClient(api.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	if opts.PageSize == 0 {
		opts.PageSize = 10
	}
	return NewTaskStore(client, opts)
}

func TestTaskStore_PendingCountTracksServer(t *testing.T) {
	server := &taskServer{pending: 2}
	s := newTaskFixture(t, server, Options{SyncInterval: 5 * time.Millisecond})

	ctx := context.Background()
	require.Equal(t, 0, s.PendingCount())
	require.NoError(t, s.RefreshCount(ctx))
	require.Equal(t, 2, s.PendingCount())

	// The sync loop keeps the badge fresh without further explicit calls.
	server.mu.Lock()
	server.pending = 5
	server.mu.Unlock()

	s.StartSync(ctx)
	defer s.StopSync()
	require.Eventually(t, func() bool {
		return s.PendingCount() == 5
	}, time.Second, 5*time.Millisecond)
}

func TestTaskStore_DismissRemovesRow(t *testing.T) {
	server := &taskServer{tasks: []api.Task{
		{ID: "t1", Name: "convert", Status: api.TaskStatusSuccess},
		{ID: "t2", Name: "index", Status: api.TaskStatusRunning},
	}}
	s := newTaskFixture(t, server, Options{})

	ctx := context.Background()
	require.NoError(t, s.FetchNextPage(ctx, false))
	require.NoError(t, s.Dismiss(ctx, "t1"))

	snap := s.Snapshot()
	require.Len(t, snap.Entities, 1)
	require.Equal(t, "t2", snap.Entities[0].ID)
}

func TestTaskStore_DismissAllReportsPartialFailure(t *testing.T) {
	server := &taskServer{tasks: []api.Task{
		{ID: "t1", Status: api.TaskStatusSuccess},
		{ID: "t2", Status: api.TaskStatusError},
		{ID: "t3", Status: api.TaskStatusRunning},
	}}
	s := newTaskFixture(t, server, Options{})

	ctx := context.Background()
	require.NoError(t, s.FetchNextPage(ctx, false))

	err := s.DismissAll(ctx)
	var batch *api.BatchError
	require.ErrorAs(t, err, &batch)
	require.True(t, batch.Partial())

	// Only the confirmed dismissal left the listing.
	snap := s.Snapshot()
	require.Len(t, snap.Entities, 2)
	require.Equal(t, "t2", snap.Entities[0].ID)
}
