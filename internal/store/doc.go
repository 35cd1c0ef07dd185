// Package store implements the list synchronization core shared by every
// entity listing in Voltaview.
//
// # Overview
//
// Every screen in the client is backed by the same pattern: a server-side
// paginated listing that the user scrolls through incrementally while a
// background loop keeps the visible rows fresh. Instead of repeating that
// logic once per entity type, this package provides a single generic
// List[T, Q] parameterized over the entity and its query type; the
// per-entity stores (FileStore, WorkspaceStore, ...) are thin configuration
// around it plus that entity's mutations.
//
// # Components
//
//   - Collection: ordered, identity-deduplicated entity storage with a
//     three-state lifecycle (absent / empty / populated)
//   - Cursor: last fetched page/size plus the server-reported totals;
//     computes the next page and the no-more-pages condition
//   - Source: the fetch contract (one page, or a metadata-only probe)
//     implemented per entity over the API client
//   - List: the orchestrator views talk to; owns loading/error state,
//     the debounced query, and the background sync loop
//
// # Data Flow
//
//	View signals near-end of list
//	  └─> List.FetchNextPage()
//	        ├─> Source.FetchProbe()   refresh totals, keep loaded rows
//	        ├─> Cursor.NextPage()     1 on bootstrap, -1 when exhausted
//	        ├─> Source.FetchPage()
//	        └─> Collection.Append()   dedup, order-preserving
//
//	Sync loop (every 5s)
//	  └─> List.Sync()
//	        ├─> skip when nothing loaded
//	        ├─> Source.FetchProbe()   fresh totals
//	        ├─> Source.FetchPage(1, max(pageSize, loaded))
//	        └─> Collection.Replace()  wholesale, reflects server-side
//	                                  inserts/removals/reorders
//
// # Consistency Model
//
// A mutex per store makes every published state complete: readers never see
// entities updated with a stale cursor or vice versa. User loads and sync
// ticks are intentionally not serialized against each other; both may be in
// flight and the last write wins. Staleness is bounded by the sync interval
// and self-corrects on the next tick. FetchNextPage is re-entrancy guarded:
// a second call while one is in flight is a no-op, so double near-end
// signals cannot skip a page.
//
// Query changes bump an internal generation. A fetch dispatched under an
// old generation discards its result on completion, so a slow response
// under a previous search term can never repopulate a cleared list.
//
// # Error Policy
//
// User-initiated loads surface exactly one error on the store (latest
// wins); any successful load clears it. Auth failures additionally notify
// the configured handler so the application can invalidate its credential.
// Sync failures are logged and swallowed: background freshness must never
// put a visible error on screen or stop the loop.
package store
