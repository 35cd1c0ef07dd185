package store

// Collection is an ordered, deduplicated set of entities keyed by identity.
// It distinguishes "absent" (never loaded) from "empty" (loaded, zero
// results); the UI needs that distinction to decide between a first-load
// spinner and a "no items" placeholder.
//
// Collection is not safe for concurrent use; List guards it with its own
// mutex.
type Collection[T Entity] struct {
	items  []T
	loaded bool
}

// Append inserts each entity at the end unless one with the same identifier
// is already present. Existing entities are never reordered or overwritten,
// which makes Append idempotent under retried or overlapping page fetches.
func (c *Collection[T]) Append(entities []T) {
	if !c.loaded {
		c.items = []T{}
		c.loaded = true
	}
	for _, entity := range entities {
		if c.indexOf(entity.EntityID()) < 0 {
			c.items = append(c.items, entity)
		}
	}
}

// Replace discards prior contents and installs the given sequence verbatim.
// Sync ticks and replace-loads (query change, first page reload) use this so
// server-side inserts, removals, and reorders come through without stale or
// duplicate rows.
func (c *Collection[T]) Replace(entities []T) {
	c.items = make([]T, len(entities))
	copy(c.items, entities)
	c.loaded = true
}

// Clear resets the collection to absent, not empty.
func (c *Collection[T]) Clear() {
	c.items = nil
	c.loaded = false
}

// Loaded reports whether the collection has ever been populated. A loaded
// collection may still be empty.
func (c *Collection[T]) Loaded() bool {
	return c.loaded
}

// Len returns the number of entities currently held.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the current contents, or nil when absent.
func (c *Collection[T]) Items() []T {
	if !c.loaded {
		return nil
	}
	dup := make([]T, len(c.items))
	copy(dup, c.items)
	return dup
}

// Update substitutes the entity with a matching identifier in place. It
// reports whether a substitution happened. Entities are immutable snapshots,
// so local reflection of a successful mutation is whole-entity replacement.
func (c *Collection[T]) Update(entity T) bool {
	i := c.indexOf(entity.EntityID())
	if i < 0 {
		return false
	}
	c.items[i] = entity
	return true
}

// Remove drops the entities with the given identifiers, preserving order of
// the rest.
func (c *Collection[T]) Remove(ids ...string) {
	if !c.loaded || len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := c.items[:0]
	for _, entity := range c.items {
		if _, ok := drop[entity.EntityID()]; !ok {
			kept = append(kept, entity)
		}
	}
	c.items = kept
}

// NearEnd reports whether the entity with the given identifier sits within
// the last threshold elements. When the collection holds fewer than
// threshold elements only the last one qualifies, so look-ahead prefetching
// still fires exactly once on short lists. The threshold is derived from the
// configured page size, never from the current length.
func (c *Collection[T]) NearEnd(id string, threshold int) bool {
	if !c.loaded || len(c.items) == 0 {
		return false
	}
	if threshold > 0 && len(c.items) >= threshold {
		i := c.indexOf(id)
		return i >= 0 && i >= len(c.items)-threshold
	}
	return id == c.items[len(c.items)-1].EntityID()
}

func (c *Collection[T]) indexOf(id string) int {
	for i, entity := range c.items {
		if entity.EntityID() == id {
			return i
		}
	}
	return -1
}
