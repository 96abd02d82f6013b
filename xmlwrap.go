// Package xmlwrap is a thin, namespace-aware façade over the xmlquery
// document object model. It does not parse XML or evaluate XPath by
// itself; parsing, tree storage and full XPath evaluation are delegated
// to github.com/antchfx/xmlquery and github.com/antchfx/xpath. What it
// adds on top is a compact {uri}localName notation for namespaced
// queries, a manual child-traversal shortcut for simple relative paths,
// and stable wrapper identity: asking for the same underlying node twice
// yields the same *Element, so wrappers can be compared with == and used
// as map keys.
package xmlwrap

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/antchfx/xmlquery"
)

const Version = "0.1.0"

// Parse reads an XML document from src and returns a Document bound to
// the resulting tree.
func Parse(ctx context.Context, src io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(src)
	if err != nil {
		getTraceLogFromContext(ctx).Debug("parse failed", slog.String("error", err.Error()))
		return nil, err
	}
	return New(root)
}

// ParseString is a convenience wrapper around Parse.
func ParseString(ctx context.Context, s string) (*Document, error) {
	return Parse(ctx, strings.NewReader(s))
}

// New binds a Document to an existing xmlquery tree. The node must be
// a document node: elements with no owning document cannot be queried,
// so this is checked up front rather than on first query.
func New(root *xmlquery.Node) (*Document, error) {
	if root == nil {
		return nil, ErrNilNode
	}
	if root.Type != xmlquery.DocumentNode {
		return nil, ErrNotDocument
	}
	d := &Document{node: root}
	d.wrappers.init()
	return d, nil
}
