// internal/catalog/catalog.go
package catalog

import (
	"sort"

	"github.com/juju/errors"

	"github.com/tamzrod/statusbank/internal/status"
)

// Entry names one condition.
type Entry struct {
	Name  string
	Class status.Class
	ID    status.ID
}

// Catalog is an immutable, validated table of named conditions.
type Catalog struct {
	byName  map[string]Entry
	entries []Entry
}

// New validates entries and builds a catalog.
// Every ID must fit the registry, names must be unique, and no two names
// may share a (class, id) pair.
func New(entries []Entry) (*Catalog, error) {
	type slot struct {
		class status.Class
		id    status.ID
	}

	c := &Catalog{
		byName:  make(map[string]Entry, len(entries)),
		entries: make([]Entry, 0, len(entries)),
	}
	owner := make(map[slot]string, len(entries))

	for _, e := range entries {
		if e.Name == "" {
			return nil, errors.NotValidf("empty condition name (class=%s id=%s)", e.Class, e.ID)
		}
		if !e.Class.Valid() {
			return nil, errors.NotValidf("condition %q class %s", e.Name, e.Class)
		}
		if !e.ID.Valid() {
			return nil, errors.NotValidf(
				"condition %q id %s (bank must be < %d)",
				e.Name, e.ID, status.NumBanks,
			)
		}
		if _, exists := c.byName[e.Name]; exists {
			return nil, errors.NotValidf("duplicate condition name %q", e.Name)
		}

		k := slot{class: e.Class, id: e.ID}
		if prev, exists := owner[k]; exists {
			return nil, errors.NotValidf(
				"condition collision: class=%s id=%s used by %q and %q",
				e.Class, e.ID, prev, e.Name,
			)
		}

		owner[k] = e.Name
		c.byName[e.Name] = e
		c.entries = append(c.entries, e)
	}

	sort.Slice(c.entries, func(i, j int) bool {
		if c.entries[i].Class != c.entries[j].Class {
			return c.entries[i].Class < c.entries[j].Class
		}
		return c.entries[i].ID < c.entries[j].ID
	})

	return c, nil
}

// Lookup returns the entry registered under name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// MustLookup is Lookup for names known at build time. It panics on a miss.
func (c *Catalog) MustLookup(name string) Entry {
	e, ok := c.byName[name]
	if !ok {
		panic("catalog: unknown condition " + name)
	}
	return e
}

// Entries returns a copy of all entries ordered by class, then ID.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Set raises the named condition in r. It reports whether name is known.
func (c *Catalog) Set(r *status.Registry, name string) bool {
	e, ok := c.byName[name]
	if ok {
		r.Set(e.Class, e.ID)
	}
	return ok
}

// Clear lowers the named condition in r. It reports whether name is known.
func (c *Catalog) Clear(r *status.Registry, name string) bool {
	e, ok := c.byName[name]
	if ok {
		r.Clear(e.Class, e.ID)
	}
	return ok
}

// Active lists the names currently raised in snapshot s.
func (c *Catalog) Active(s status.Snapshot) []string {
	var out []string
	for _, e := range c.entries {
		if s.IsSet(e.Class, e.ID) {
			out = append(out, e.Name)
		}
	}
	return out
}
