package store

import (
	"context"
	"time"
)

// StartSync launches the background synchronization loop. Starting an
// already-running sync is a no-op. The loop stops when ctx is cancelled or
// StopSync is called; requests already in flight complete and either apply
// their result or fail silently.
func (l *List[T, Q]) StartSync(ctx context.Context) {
	l.mu.Lock()
	if l.syncStop != nil {
		l.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	l.syncStop = stop
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			if l.syncStop == stop {
				l.syncStop = nil
			}
			l.mu.Unlock()
		}()

		ticker := time.NewTicker(l.syncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				l.Sync(ctx)
				l.mu.Lock()
				hook := l.syncHook
				l.mu.Unlock()
				if hook != nil {
					hook(ctx)
				}
			}
		}
	}()
}

// StopSync cancels the background loop. It is safe to call repeatedly and
// when no sync is running.
func (l *List[T, Q]) StopSync() {
	l.mu.Lock()
	stop := l.syncStop
	l.syncStop = nil
	l.mu.Unlock()
	if stop != nil {
		close(stop)
	}
}

// Sync performs one best-effort refresh of the currently visible window: it
// probes for fresh totals, re-fetches page 1 sized to cover everything the
// user has loaded so far, and replaces the collection wholesale so
// server-side inserts, removals, and reorders come through without
// duplicates. Failures are logged and swallowed; sync must never flip the
// store into a visible error state or disrupt a user-initiated load.
//
// The window grows with the loaded list (max of page size and current
// length), so rows the user has already scrolled into view stay covered.
func (l *List[T, Q]) Sync(ctx context.Context) {
	l.mu.Lock()
	if !l.collection.Loaded() {
		l.mu.Unlock()
		return
	}
	gen := l.generation
	query := l.query
	size := l.pageSize
	if n := l.collection.Len(); n > size {
		size = n
	}
	l.mu.Unlock()

	probe, err := l.source.FetchProbe(ctx, query, l.pageSize)
	if err != nil {
		l.log.Debug().Err(err).Msg("sync probe failed")
		return
	}
	page, err := l.source.FetchPage(ctx, query, 1, size)
	if err != nil {
		l.log.Debug().Err(err).Msg("sync fetch failed")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation || !l.collection.Loaded() {
		return
	}
	l.collection.Replace(page.Data)
	l.cursor = l.cursor.ApplyProbe(probe)
	l.err = nil
}
