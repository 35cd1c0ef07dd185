package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kouprlabs/voltaview/internal/api"
)

// fakeSource is a scriptable Source with call accounting. pageGate, when
// set, blocks FetchPage until the channel is closed; started is signaled on
// entry so tests can order overlapping calls deterministically.
type fakeSource struct {
	mu         sync.Mutex
	pageFn     func(query string, page, size int) (Page[testEntity], error)
	probeFn    func(query string, size int) (Probe, error)
	pageCalls  int
	probeCalls int
	lastQuery  string
	lastPage   int
	lastSize   int

	pageGate chan struct{}
	started  chan struct{}
}

func (s *fakeSource) FetchPage(_ context.Context, query string, page, size int) (Page[testEntity], error) {
	s.mu.Lock()
	s.pageCalls++
	s.lastQuery = query
	s.lastPage = page
	s.lastSize = size
	gate := s.pageGate
	started := s.started
	fn := s.pageFn
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if fn == nil {
		return Page[testEntity]{Page: page, Size: size, TotalPages: 1}, nil
	}
	return fn(query, page, size)
}

func (s *fakeSource) FetchProbe(_ context.Context, query string, size int) (Probe, error) {
	s.mu.Lock()
	s.probeCalls++
	fn := s.probeFn
	s.mu.Unlock()

	if fn == nil {
		return Probe{}, nil
	}
	return fn(query, size)
}

func (s *fakeSource) counts() (pages, probes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageCalls, s.probeCalls
}

// fakeServer serves pages over a mutable entity slice the way the console
// API does, so tests can mutate server state between fetches.
type fakeServer struct {
	mu    sync.Mutex
	items []testEntity
}

func (s *fakeServer) set(items []testEntity) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func (s *fakeServer) page(_ string, page, size int) (Page[testEntity], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.items)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	var data []testEntity
	if start < total {
		data = append(data, s.items[start:end]...)
	}
	return Page[testEntity]{
		Data:          data,
		Page:          page,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: total,
	}, nil
}

func (s *fakeServer) probe(_ string, size int) (Probe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.items)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	return Probe{TotalPages: totalPages, TotalElements: total}, nil
}

func newTestList(src *fakeSource, opts Options) *List[testEntity, string] {
	if opts.PageSize == 0 {
		opts.PageSize = 2
	}
	if opts.QueryDebounce == 0 {
		opts.QueryDebounce = 5 * time.Millisecond
	}
	return NewList[testEntity, string](src, opts)
}

func TestList_BootstrapFetchesPageOne(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("e1", "e2", "e3", "e4", "e5"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{})

	require.NoError(t, l.FetchNextPage(context.Background(), false))

	snap := l.Snapshot()
	require.Equal(t, []string{"e1", "e2"}, ids(snap.Entities))
	require.True(t, snap.Loaded)
	require.True(t, snap.HasNextPage)
	require.Equal(t, 5, snap.TotalElements)
	require.NoError(t, snap.Err)

	pages, probes := src.counts()
	require.Equal(t, 1, pages)
	// No cursor yet, so the bootstrap load skips the probe.
	require.Equal(t, 0, probes)
}

func TestList_SecondPageProbesThenAppends(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("e1", "e2", "e3", "e4", "e5"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{})

	ctx := context.Background()
	require.NoError(t, l.FetchNextPage(ctx, false))
	require.NoError(t, l.FetchNextPage(ctx, false))

	snap := l.Snapshot()
	require.Equal(t, []string{"e1", "e2", "e3", "e4"}, ids(snap.Entities))
	require.True(t, snap.HasNextPage)

	pages, probes := src.counts()
	require.Equal(t, 2, pages)
	require.Equal(t, 1, probes)
	require.Equal(t, 2, src.lastPage)
}

func TestList_ExhaustedListStopsFetching(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("e1", "e2", "e3"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{})

	ctx := context.Background()
	require.NoError(t, l.FetchNextPage(ctx, false))
	require.NoError(t, l.FetchNextPage(ctx, false))
	require.Len(t, l.Snapshot().Entities, 3)
	require.False(t, l.Snapshot().HasNextPage)

	// Exhausted: the probe still runs (it may discover new pages) but no
	// page fetch is issued and no error appears.
	require.NoError(t, l.FetchNextPage(ctx, false))
	pages, probes := src.counts()
	require.Equal(t, 2, pages)
	require.Equal(t, 2, probes)
	require.NoError(t, l.Snapshot().Err)
}

func TestList_ExhaustedListClearsStaleError(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("e1", "e2"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{})

	ctx := context.Background()
	require.NoError(t, l.FetchNextPage(ctx, false))

	src.mu.Lock()
	src.probeFn = func(string, int) (Probe, error) { return Probe{}, errors.New("boom") }
	src.mu.Unlock()
	require.Error(t, l.FetchNextPage(ctx, false))
	require.Error(t, l.Snapshot().Err)

	// The probe recovers but the list stays exhausted: the successful
	// no-op call still clears the earlier error.
	src.mu.Lock()
	src.probeFn = server.probe
	src.mu.Unlock()
	require.NoError(t, l.FetchNextPage(ctx, false))
	require.NoError(t, l.Snapshot().Err)
}

func TestList_ProbeDiscoversNewPages(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("e1", "e2"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{})

	ctx := context.Background()
	require.NoError(t, l.FetchNextPage(ctx, false))
	require.False(t, l.Snapshot().HasNextPage)

	// Rows appear server-side after the last fetch.
	server.set(entities("e1", "e2", "e3"))
	require.NoError(t, l.FetchNextPage(ctx, false))

	require.Equal(t, []string{"e1", "e2", "e3"}, ids(l.Snapshot().Entities))
}

func TestList_ReplaceOnPageOne(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("a", "b"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{})

	ctx := context.Background()
	require.NoError(t, l.FetchNextPage(ctx, false))
	require.Equal(t, []string{"a", "b"}, ids(l.Snapshot().Entities))

	server.set(entities("x", "y"))
	l.Clear()
	require.False(t, l.Snapshot().Loaded)

	require.NoError(t, l.FetchNextPage(ctx, true))
	require.Equal(t, []string{"x", "y"}, ids(l.Snapshot().Entities))
}

func TestList_ErrorSurfacedThenCleared(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	server := &fakeServer{}
	server.set(entities("a", "b"))
	src := &fakeSource{probeFn: server.probe}
	src.pageFn = func(query string, page, size int) (Page[testEntity], error) {
		if fail {
			return Page[testEntity]{}, boom
		}
		return server.page(query, page, size)
	}
	l := newTestList(src, Options{})

	ctx := context.Background()
	err := l.FetchNextPage(ctx, false)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, l.Snapshot().Err, boom)
	require.False(t, l.Snapshot().Loaded)

	fail = false
	require.NoError(t, l.FetchNextPage(ctx, false))
	snap := l.Snapshot()
	require.NoError(t, snap.Err)
	require.Equal(t, []string{"a", "b"}, ids(snap.Entities))
}

func TestList_AuthErrorNotifiesHandler(t *testing.T) {
	src := &fakeSource{}
	src.pageFn = func(string, int, int) (Page[testEntity], error) {
		return Page[testEntity]{}, &api.Error{Kind: api.KindAuth, Status: 401}
	}

	var handled error
	l := newTestList(src, Options{OnAuthError: func(err error) { handled = err }})

	err := l.FetchNextPage(context.Background(), false)
	require.Error(t, err)
	require.True(t, api.IsAuth(err))
	require.True(t, api.IsAuth(handled))
}

func TestList_ReentrantFetchIsNoOp(t *testing.T) {
	src := &fakeSource{
		pageGate: make(chan struct{}),
		started:  make(chan struct{}, 1),
	}
	l := newTestList(src, Options{})

	done := make(chan error, 1)
	go func() { done <- l.FetchNextPage(context.Background(), false) }()
	<-src.started

	// Second trigger while the first is in flight: no-op, no second fetch.
	require.NoError(t, l.FetchNextPage(context.Background(), false))
	pages, _ := src.counts()
	require.Equal(t, 1, pages)

	close(src.pageGate)
	require.NoError(t, <-done)
}

func TestList_StaleQueryResultDiscarded(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("old1", "old2"))
	src := &fakeSource{
		probeFn:  server.probe,
		pageGate: make(chan struct{}),
		started:  make(chan struct{}, 2),
	}
	src.pageFn = func(query string, page, size int) (Page[testEntity], error) {
		if query == "fresh" {
			return Page[testEntity]{
				Data: entities("new1"), Page: page, Size: size, TotalPages: 1, TotalElements: 1,
			}, nil
		}
		return server.page(query, page, size)
	}
	l := newTestList(src, Options{QueryDebounce: time.Millisecond})

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- l.FetchNextPage(ctx, false) }()
	<-src.started

	// The query changes while the old fetch is stuck in flight.
	l.SetQuery(ctx, "fresh")
	require.Eventually(t, func() bool { return l.Query() == "fresh" },
		time.Second, time.Millisecond)

	close(src.pageGate)
	require.NoError(t, <-done)

	// The stale result under the old query never lands.
	snap := l.Snapshot()
	require.False(t, snap.Loaded)
	require.Nil(t, snap.Entities)

	require.NoError(t, l.FetchNextPage(ctx, true))
	require.Equal(t, []string{"new1"}, ids(l.Snapshot().Entities))
}

func TestList_SetQueryCoalescesToLatest(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("a"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{QueryDebounce: 20 * time.Millisecond})

	ctx := context.Background()
	l.SetQuery(ctx, "a")
	l.SetQuery(ctx, "ab")
	l.SetQuery(ctx, "abc")

	require.Eventually(t, func() bool {
		pages, _ := src.counts()
		return pages == 1
	}, time.Second, time.Millisecond)

	require.Equal(t, "abc", l.Query())
	src.mu.Lock()
	require.Equal(t, "abc", src.lastQuery)
	src.mu.Unlock()

	// Quiet period over; no further loads sneak in.
	time.Sleep(50 * time.Millisecond)
	pages, _ := src.counts()
	require.Equal(t, 1, pages)
}

func TestList_SetQueryDuplicateDropped(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("a"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{QueryDebounce: time.Millisecond})

	ctx := context.Background()
	require.NoError(t, l.FetchNextPage(ctx, false))
	pages, _ := src.counts()
	require.Equal(t, 1, pages)

	// Re-setting the already-applied query must not clear or reload.
	l.SetQuery(ctx, "")
	time.Sleep(20 * time.Millisecond)

	snap := l.Snapshot()
	require.True(t, snap.Loaded)
	pages, _ = src.counts()
	require.Equal(t, 1, pages)
}

func TestList_ApplyUpdatedAndDeleted(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("a", "b", "c"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{PageSize: 10})

	require.NoError(t, l.FetchNextPage(context.Background(), false))

	l.ApplyUpdated(testEntity{ID: "b", Name: "renamed"})
	require.Equal(t, "renamed", l.Snapshot().Entities[1].Name)

	l.ApplyDeleted("a", "c")
	require.Equal(t, []string{"b"}, ids(l.Snapshot().Entities))
}

// TestList_FullScenario walks the documented end-to-end flow: page size 2,
// five entities server-side, incremental loads, then a sync after a
// server-side deletion.
func TestList_FullScenario(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("e1", "e2", "e3", "e4", "e5"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	l := newTestList(src, Options{})

	ctx := context.Background()

	require.NoError(t, l.FetchNextPage(ctx, false))
	require.Equal(t, []string{"e1", "e2"}, ids(l.Snapshot().Entities))
	require.Equal(t, 5, l.Snapshot().TotalElements)

	require.NoError(t, l.FetchNextPage(ctx, false))
	require.Equal(t, []string{"e1", "e2", "e3", "e4"}, ids(l.Snapshot().Entities))

	// e2 disappears server-side; a sync tick re-fetches the visible window
	// (four loaded rows) and replaces wholesale.
	server.set(entities("e1", "e3", "e4", "e5"))
	l.Sync(ctx)

	snap := l.Snapshot()
	require.Equal(t, []string{"e1", "e3", "e4", "e5"}, ids(snap.Entities))
	require.Equal(t, 4, snap.TotalElements)
	require.Equal(t, 4, src.lastSize)
	require.False(t, snap.IsLoading)
}

func TestList_IsNearEndUsesConfiguredPageSize(t *testing.T) {
	server := &fakeServer{}
	server.set(entities("a", "b", "c", "d"))
	src := &fakeSource{pageFn: server.page, probeFn: server.probe}
	// Page size 10 but only four rows exist: the threshold (5) exceeds the
	// collection, so only the last element triggers prefetch.
	l := newTestList(src, Options{PageSize: 10})

	require.NoError(t, l.FetchNextPage(context.Background(), false))

	require.False(t, l.IsNearEnd("a"))
	require.False(t, l.IsNearEnd("b"))
	require.False(t, l.IsNearEnd("c"))
	require.True(t, l.IsNearEnd("d"))
}
