package nstable

import (
	"iter"
	"strconv"
	"sync"
)

// Table is a bidirectional mapping between namespace URIs and synthetic
// prefixes, scoped to a single query engine. Prefixes are allocated in
// first-seen order as "prefix_0", "prefix_1", ... and are never reused
// for a different URI for the lifetime of the table.
type Table struct {
	mu       sync.RWMutex
	uris     []string // registration order
	byURI    map[string]string
	byPrefix map[string]string
}

func New() *Table {
	return &Table{
		byURI:    make(map[string]string),
		byPrefix: make(map[string]string),
	}
}

// Register returns the synthetic prefix for uri, allocating the next
// one if uri has not been seen before. Registration is idempotent and
// monotonic: entries are never removed or remapped.
func (t *Table) Register(uri string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.byURI[uri]; ok {
		return p
	}
	p := "prefix_" + strconv.Itoa(len(t.uris))
	t.uris = append(t.uris, uri)
	t.byURI[uri] = p
	t.byPrefix[p] = uri
	return p
}

// LookupURI resolves a previously allocated prefix back to its URI.
func (t *Table) LookupURI(prefix string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	uri, ok := t.byPrefix[prefix]
	return uri, ok
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.uris)
}

// Mapping returns a prefix-to-URI snapshot suitable for handing to an
// XPath compiler. The snapshot is a copy; later registrations do not
// show up in it.
func (t *Table) Mapping() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m := make(map[string]string, len(t.byPrefix))
	for p, uri := range t.byPrefix {
		m[p] = uri
	}
	return m
}

// Range iterates over (prefix, uri) pairs in registration order.
func (t *Table) Range() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		t.mu.RLock()
		uris := make([]string, len(t.uris))
		copy(uris, t.uris)
		t.mu.RUnlock()

		for _, uri := range uris {
			t.mu.RLock()
			p := t.byURI[uri]
			t.mu.RUnlock()
			if !yield(p, uri) {
				break
			}
		}
	}
}
