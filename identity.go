package xmlwrap

import (
	"runtime"
	"sync"
	"weak"

	"github.com/antchfx/xmlquery"
)

// wrapperCache maps an underlying DOM node to the single Element that
// represents it. Values are held through weak pointers so the cache
// never keeps a wrapper (or, through it, a subtree) alive on its own;
// once a wrapper becomes unreachable its entry is purged by a runtime
// cleanup and a later lookup simply mints a fresh wrapper.
type wrapperCache struct {
	mu      sync.RWMutex
	entries map[*xmlquery.Node]weak.Pointer[Element]
}

func (c *wrapperCache) init() {
	c.entries = make(map[*xmlquery.Node]weak.Pointer[Element])
}

func (c *wrapperCache) getOrCreate(n *xmlquery.Node, create func() *Element) *Element {
	c.mu.RLock()
	if wp, ok := c.entries[n]; ok {
		if e := wp.Value(); e != nil {
			c.mu.RUnlock()
			return e
		}
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// somebody may have won the race between the two locks
	if wp, ok := c.entries[n]; ok {
		if e := wp.Value(); e != nil {
			return e
		}
	}

	e := create()
	c.entries[n] = weak.Make(e)
	runtime.AddCleanup(e, c.evict, n)
	return e
}

// evict runs once the wrapper registered for n has been collected.
// The liveness check guards against evicting a replacement wrapper
// that was registered after the dead one was already superseded.
func (c *wrapperCache) evict(n *xmlquery.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wp, ok := c.entries[n]; ok && wp.Value() == nil {
		delete(c.entries, n)
	}
}
