package store

// NoMorePages is the sentinel returned by Cursor.NextPage when the last
// known page has been fetched. Page numbers are 1-based, so -1 can never
// collide with a real page.
const NoMorePages = -1

// Cursor records which page/size was last fetched and the totals the server
// reported for the query that produced them. A nil *Cursor means nothing has
// been fetched yet.
type Cursor struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
}

// NextPage computes the page to fetch next.
//
// With no cursor the first load targets page 1. Past the last known page the
// result is NoMorePages. When the cursor's page exceeds the total (the
// server shrank the result set under us) the store starts over from page 1.
func (c *Cursor) NextPage() int {
	if c == nil {
		return 1
	}
	switch {
	case c.Page < c.TotalPages:
		return c.Page + 1
	case c.Page == c.TotalPages:
		return NoMorePages
	default:
		return 1
	}
}

// HasNextPage reports whether another page can be fetched.
func (c *Cursor) HasNextPage() bool {
	return c.NextPage() != NoMorePages
}

// ApplyProbe rebuilds the cursor with fresh totals while preserving the
// already-fetched page and size. HasNextPage then reflects server-side
// insertions and deletions without re-fetching entity data, so the user's
// scroll position is undisturbed.
func (c *Cursor) ApplyProbe(probe Probe) *Cursor {
	if c == nil {
		return nil
	}
	return &Cursor{
		Page:          c.Page,
		Size:          c.Size,
		TotalPages:    probe.TotalPages,
		TotalElements: probe.TotalElements,
	}
}
