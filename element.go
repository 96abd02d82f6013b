package xmlwrap

import (
	"iter"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Element is a stable handle to one element node. Elements are only
// ever created through their Document, which guarantees that the same
// underlying node always maps to the same *Element.
type Element struct {
	doc  *Document
	node *xmlquery.Node
}

// Node returns the underlying DOM node.
func (e *Element) Node() *xmlquery.Node {
	return e.node
}

// Document returns the document this element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

func (e *Element) LocalName() string {
	return e.node.Data
}

func (e *Element) Prefix() string {
	return e.node.Prefix
}

// URI returns the namespace URI of the element, or an empty string
// when the element is in no namespace.
func (e *Element) URI() string {
	return e.node.NamespaceURI
}

// Name returns the qualified name of the element.
func (e *Element) Name() string {
	if e.node.Prefix == "" {
		return e.node.Data
	}
	return e.node.Prefix + ":" + e.node.Data
}

// Parent returns the parent element, or nil if the element is the
// document element or is not attached to a parent element.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != xmlquery.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Elements iterates over the direct element children in document
// order. Non-element children (text, comments, ...) are skipped.
func (e *Element) Elements() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for c := e.node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if !yield(e.doc.wrap(c)) {
				return
			}
		}
	}
}

// Content returns the concatenated text content of the element and
// its descendants.
func (e *Element) Content() string {
	return e.node.InnerText()
}

// AddChild appends child as the last child of e. The child must be a
// wrapper from the same document.
func (e *Element) AddChild(child *Element) error {
	if child == nil {
		return ErrNilNode
	}
	if child.doc != e.doc {
		return ErrInvalidOperation
	}
	xmlquery.AddChild(e.node, child.node)
	return nil
}

// Remove detaches the element from its parent. Removing an element
// that has no parent is an error.
func (e *Element) Remove() error {
	if e.node.Parent == nil {
		return ErrInvalidOperation
	}
	xmlquery.RemoveFromTree(e.node)
	return nil
}

func (e *Element) SetAttribute(name, value string) {
	e.node.SetAttr(name, value)
}

// Attribute returns the value of the named attribute. The name may be
// qualified with a prefix, which is matched literally.
func (e *Element) Attribute(name string) (string, bool) {
	px, local, qualified := strings.Cut(name, ":")
	if !qualified {
		local = name
		px = ""
	}
	for _, a := range e.node.Attr {
		if a.Name.Local == local && a.Name.Space == px {
			return a.Value, true
		}
	}
	return "", false
}

// XML serializes the element (including itself) back to XML text via
// the underlying DOM.
func (e *Element) XML() string {
	return e.node.OutputXML(true)
}
