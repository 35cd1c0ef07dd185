package store

import "context"

// Entity is any domain record with a server-assigned identifier. Identifiers
// are opaque strings, unique within one entity type.
type Entity interface {
	EntityID() string
}

// Page is one server-paginated response slice plus its pagination metadata.
type Page[T Entity] struct {
	Data          []T
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
}

// Probe carries refreshed totals for the current query without entity
// payloads. It lets a store learn how many pages now exist independently of
// what has already been loaded.
type Probe struct {
	TotalPages    int
	TotalElements int
}

// Source fetches pages and probes for one entity type. Implementations are
// stateless and read-only; errors propagate untouched, there is no local
// retry. The query type Q is comparable so the store can detect query
// changes and drop duplicates.
type Source[T Entity, Q comparable] interface {
	FetchPage(ctx context.Context, query Q, page, size int) (Page[T], error)
	FetchProbe(ctx context.Context, query Q, size int) (Probe, error)
}
