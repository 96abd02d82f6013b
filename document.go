package xmlwrap

import (
	"sync"

	"github.com/antchfx/xmlquery"
)

// Document wraps one xmlquery document tree. It owns the query engine
// for that tree (created lazily, reused across queries so namespace
// registrations amortize) and the wrapper identity cache. A Document
// may be shared by multiple goroutines; both the engine and the cache
// guard their state internally.
type Document struct {
	node *xmlquery.Node

	mu       sync.Mutex
	engine   *engine
	wrappers wrapperCache
}

// Node returns the underlying document node.
func (d *Document) Node() *xmlquery.Node {
	return d.node
}

// Root returns the document element, or nil for an empty document.
func (d *Document) Root() *Element {
	for n := d.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return d.wrap(n)
		}
	}
	return nil
}

// CreateElement creates a new element with the given local name.
// Please note that elements created this way are orphan nodes: they
// belong to this document but hang off no parent until attached via
// Element.AddChild.
func (d *Document) CreateElement(name string) *Element {
	return d.wrap(&xmlquery.Node{
		Type: xmlquery.ElementNode,
		Data: name,
	})
}

// CreateElementNS creates a new orphan element with the given
// namespace URI and local name.
func (d *Document) CreateElementNS(uri, name string) *Element {
	return d.wrap(&xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         name,
		NamespaceURI: uri,
	})
}

// Identify returns the stable wrapper for n. Calling Identify twice
// with the same live node returns the same *Element, so the results
// can be compared with == or used as map keys.
func (d *Document) Identify(n *xmlquery.Node) (*Element, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	if n.Type != xmlquery.ElementNode {
		return nil, ErrNotElement
	}
	return d.wrap(n), nil
}

// XML serializes the whole document back to XML text via the
// underlying DOM.
func (d *Document) XML() string {
	return d.node.OutputXML(true)
}

func (d *Document) wrap(n *xmlquery.Node) *Element {
	return d.wrappers.getOrCreate(n, func() *Element {
		return &Element{doc: d, node: n}
	})
}

func (d *Document) getEngine() *engine {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.engine == nil {
		d.engine = newEngine(d.node)
	}
	return d.engine
}
