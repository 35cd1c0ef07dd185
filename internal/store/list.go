package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kouprlabs/voltaview/internal/api"
)

// Defaults mirror the server console's pagination conventions.
const (
	DefaultPageSize      = 50
	DefaultSyncInterval  = 5 * time.Second
	DefaultQueryDebounce = time.Second
)

// Options configure a List. The zero value is usable; unset fields fall
// back to the defaults above.
type Options struct {
	// PageSize is the page size requested from the server and the basis for
	// the near-end prefetch threshold.
	PageSize int

	// SyncInterval is the cadence of background re-synchronization.
	SyncInterval time.Duration

	// QueryDebounce is the quiet period after SetQuery before the latest
	// query is dispatched. Rapid successive calls coalesce to the newest.
	QueryDebounce time.Duration

	// Logger receives swallowed sync-tick failures. Nil means no logging.
	Logger *zerolog.Logger

	// OnAuthError is notified when a user-initiated load fails with an
	// authentication error, so the owning application can invalidate the
	// stored credential. Best-effort sync failures never trigger it.
	OnAuthError func(error)
}

// List is the shared view-model core behind every entity list: it merges
// server-paginated results into a deduplicated local collection, reconciles
// pagination metadata against background refreshes, and periodically
// re-synchronizes without disturbing scroll position or in-flight loads.
//
// All exported methods are safe for concurrent use. User-initiated loads
// and sync ticks are deliberately not serialized against each other; the
// last write wins, and staleness is bounded by the sync interval.
type List[T Entity, Q comparable] struct {
	source Source[T, Q]

	pageSize      int
	syncInterval  time.Duration
	queryDebounce time.Duration
	log           zerolog.Logger
	onAuthError   func(error)

	mu         sync.Mutex
	collection Collection[T]
	cursor     *Cursor
	query      Q
	generation uint64
	loading    bool
	err        error

	pending  Q
	debounce *time.Timer

	syncStop chan struct{}
	// syncHook, when set, runs after every background sync tick. Stores use
	// it for per-store refreshes beyond the listing, like the folder entity
	// itself or the pending task count. Failures are the hook's to swallow.
	syncHook func(context.Context)
}

// Snapshot is an immutable view of a List at one point in time.
type Snapshot[T Entity] struct {
	// Entities is nil while nothing has loaded yet, an empty slice when the
	// server reported zero results, and populated otherwise.
	Entities      []T
	Loaded        bool
	IsLoading     bool
	Err           error
	TotalElements int
	HasNextPage   bool
}

// FirstLoad reports whether a load is in flight with nothing to show yet.
func (s Snapshot[T]) FirstLoad() bool {
	return s.IsLoading && !s.Loaded
}

// NewList builds a list store over the given source.
func NewList[T Entity, Q comparable](source Source[T, Q], opts Options) *List[T, Q] {
	l := &List[T, Q]{
		source:        source,
		pageSize:      opts.PageSize,
		syncInterval:  opts.SyncInterval,
		queryDebounce: opts.QueryDebounce,
		log:           zerolog.Nop(),
		onAuthError:   opts.OnAuthError,
	}
	if l.pageSize <= 0 {
		l.pageSize = DefaultPageSize
	}
	if l.syncInterval <= 0 {
		l.syncInterval = DefaultSyncInterval
	}
	if l.queryDebounce <= 0 {
		l.queryDebounce = DefaultQueryDebounce
	}
	if opts.Logger != nil {
		l.log = *opts.Logger
	}
	return l
}

// Snapshot returns a copy of the current state. The returned slice is
// independent of the store's internal collection.
func (l *List[T, Q]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot[T]{
		Entities:    l.collection.Items(),
		Loaded:      l.collection.Loaded(),
		IsLoading:   l.loading,
		Err:         l.err,
		HasNextPage: l.cursor.HasNextPage(),
	}
	if l.cursor != nil {
		snap.TotalElements = l.cursor.TotalElements
	}
	return snap
}

// Query returns the query currently applied to the list.
func (l *List[T, Q]) Query() Q {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// FetchNextPage advances the list by one page. A call while a load is
// already in flight is a no-op, so double-triggered near-end signals cannot
// advance the page twice.
//
// When a cursor exists the totals are refreshed by a probe first; loaded
// entities stay in place so the scroll position survives. When replace is
// true and the fetched page is page 1, the collection is replaced wholesale
// instead of appended to.
func (l *List[T, Q]) FetchNextPage(ctx context.Context, replace bool) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	gen := l.generation
	query := l.query
	cursor := l.cursor
	l.mu.Unlock()

	err := l.loadNext(ctx, gen, query, cursor, replace)

	l.mu.Lock()
	l.loading = false
	if gen != l.generation {
		// The query changed or the list was cleared while we were in
		// flight; the result has already been discarded.
		err = nil
	} else if err != nil {
		l.err = err
	}
	l.mu.Unlock()

	if err != nil && api.IsAuth(err) && l.onAuthError != nil {
		l.onAuthError(err)
	}
	return err
}

func (l *List[T, Q]) loadNext(ctx context.Context, gen uint64, query Q, cursor *Cursor, replace bool) error {
	if cursor != nil {
		probe, err := l.source.FetchProbe(ctx, query, l.pageSize)
		if err != nil {
			return err
		}
		cursor = cursor.ApplyProbe(probe)
		l.mu.Lock()
		if gen == l.generation {
			l.cursor = cursor
		}
		l.mu.Unlock()
	}

	next := cursor.NextPage()
	if next == NoMorePages {
		l.mu.Lock()
		if gen == l.generation {
			l.err = nil
		}
		l.mu.Unlock()
		return nil
	}

	page, err := l.source.FetchPage(ctx, query, next, l.pageSize)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		return nil
	}
	l.cursor = &Cursor{
		Page:          page.Page,
		Size:          page.Size,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
	}
	if replace && next == 1 {
		l.collection.Replace(page.Data)
	} else {
		l.collection.Append(page.Data)
	}
	l.err = nil
	return nil
}

// SetQuery schedules a query change. Calls within the debounce window
// coalesce to the latest query; setting the query that is already applied
// is dropped. When the debounce fires the list is cleared and reloaded from
// page 1 under the new query, and any in-flight fetch under the old query
// is discarded on completion.
func (l *List[T, Q]) SetQuery(ctx context.Context, query Q) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = query
	if l.debounce != nil {
		l.debounce.Stop()
	}
	l.debounce = time.AfterFunc(l.queryDebounce, func() {
		l.applyPendingQuery(ctx)
	})
}

func (l *List[T, Q]) applyPendingQuery(ctx context.Context) {
	l.mu.Lock()
	query := l.pending
	if query == l.query {
		l.mu.Unlock()
		return
	}
	l.query = query
	l.generation++
	l.collection.Clear()
	l.cursor = nil
	l.err = nil
	l.mu.Unlock()

	if err := l.FetchNextPage(ctx, true); err != nil {
		l.log.Debug().Err(err).Msg("query reload failed")
	}
}

// Clear resets the list to the never-loaded state. A running sync keeps
// ticking and simply no-ops against the absent collection until the list is
// reloaded.
func (l *List[T, Q]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.collection.Clear()
	l.cursor = nil
	l.err = nil
}

// IsNearEnd reports whether the given entity sits close enough to the end
// of the loaded list that the next page should be prefetched. The threshold
// is half the configured page size, independent of how many pages are
// already loaded.
func (l *List[T, Q]) IsNearEnd(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.collection.NearEnd(id, l.pageSize/2)
}

// ApplyUpdated substitutes a locally mutated entity in place, so views
// reflect a successful server mutation without waiting for the next sync.
func (l *List[T, Q]) ApplyUpdated(entity T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.collection.Update(entity)
}

// ApplyDeleted removes locally deleted entities. The totals stay as last
// reported; the next probe or sync tick corrects them.
func (l *List[T, Q]) ApplyDeleted(ids ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.collection.Remove(ids...)
}
