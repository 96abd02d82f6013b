package xmlwrap

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/lestrrat-go/xmlwrap/internal/clark"
	"github.com/lestrrat-go/xmlwrap/internal/nstable"
)

// engine evaluates queries against one document. It owns the
// namespace table that backs the {uri}localName notation, and a cache
// of compiled XPath expressions keyed by the rewritten query string.
// The cache stays valid because the table is append-only: a prefix,
// once allocated, never changes meaning.
type engine struct {
	doc *xmlquery.Node
	ns  *nstable.Table

	mu    sync.Mutex
	exprs map[string]*xpath.Expr
}

func newEngine(doc *xmlquery.Node) *engine {
	return &engine{
		doc:   doc,
		ns:    nstable.New(),
		exprs: make(map[string]*xpath.Expr),
	}
}

// query rewrites q, picks an evaluation strategy and returns a lazy
// sequence of matching element nodes. The sequence is single-pass and
// reflects the live tree at iteration time. Any error is reported
// here, before the first element is produced.
func (ng *engine) query(ctx context.Context, q string, ctxNode *xmlquery.Node, forceFull bool) (iter.Seq[*xmlquery.Node], error) {
	if ctxNode == nil {
		return nil, ErrNilNode
	}
	if !attached(ctxNode, ng.doc) {
		return nil, ErrDetachedNode
	}

	rewritten := clark.Rewrite(q, ng.ns.Register)

	tlog := getTraceLogFromContext(ctx)
	if !forceFull && fastEligible(rewritten) {
		tlog.Debug("manual traversal", slog.String("query", rewritten))
		return ng.fastQuery(rewritten, ctxNode), nil
	}

	tlog.Debug("full evaluation", slog.String("query", rewritten))
	expr, err := ng.compile(rewritten, ctxNode)
	if err != nil {
		return nil, SyntaxError{Query: q, Err: err}
	}
	return fullQuery(expr, ctxNode), nil
}

// fastEligible reports whether the rewritten query is a simple
// relative child path that manual traversal can resolve. Anything
// hinting at absolute paths, descendant steps, axes, predicates,
// unions, wildcards, self/parent steps or attributes goes through the
// real evaluator instead.
func fastEligible(q string) bool {
	if strings.HasPrefix(q, "/") {
		return false
	}
	if strings.Contains(q, "//") || strings.Contains(q, "::") {
		return false
	}
	return !strings.ContainsAny(q, "[|*.@")
}

// compile builds the namespace binding for q and hands it to the
// XPath compiler. Prefixes the engine's table does not know (ones
// declared natively in the source document rather than through
// bracket notation) are resolved from the xmlns declarations in scope
// at the context node; the compiler rejects any prefix left unbound.
// Only expressions whose prefixes all came from the table are cached,
// because document-scope resolution depends on the context node.
func (ng *engine) compile(q string, ctxNode *xmlquery.Node) (*xpath.Expr, error) {
	ng.mu.Lock()
	if expr, ok := ng.exprs[q]; ok {
		ng.mu.Unlock()
		return expr, nil
	}
	ng.mu.Unlock()

	binding := ng.ns.Mapping()
	cacheable := true
	for _, px := range queryPrefixes(q) {
		if _, ok := binding[px]; ok {
			continue
		}
		cacheable = false
		if uri, ok := lookupNamespaceURI(ctxNode, px); ok {
			binding[px] = uri
		}
	}

	expr, err := xpath.CompileWithNS(q, binding)
	if err != nil {
		return nil, err
	}
	if cacheable {
		ng.mu.Lock()
		ng.exprs[q] = expr
		ng.mu.Unlock()
	}
	return expr, nil
}

// queryPrefixes extracts the namespace prefixes referenced by q: name
// characters immediately before a single colon. Double colons are
// axis syntax, not prefixes.
func queryPrefixes(q string) []string {
	var prefixes []string
	for i := 0; i < len(q); i++ {
		if q[i] != ':' {
			continue
		}
		if i+1 < len(q) && q[i+1] == ':' {
			i++
			continue
		}
		if i > 0 && q[i-1] == ':' {
			continue
		}
		start := i
		for start > 0 && isNameChar(q[start-1]) {
			start--
		}
		if start < i {
			prefixes = append(prefixes, q[start:i])
		}
	}
	return prefixes
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '-' || c == '.'
}

// fastQuery walks the tree one path segment at a time. The frontier
// starts as the context node alone; each segment replaces it with the
// matching direct children of every frontier node, keeping parent
// order. An empty frontier short-circuits. The final segment is not
// materialized: its matches are yielded one by one so a bounded
// consumer stops the walk early.
//
// Note the resulting order is frontier order (all matches under the
// first parent, then all under the second, ...), not a strict
// document-order interleave. Full evaluation of the same path happens
// to agree, because a plain child path visits parents in document
// order too.
func (ng *engine) fastQuery(q string, ctxNode *xmlquery.Node) iter.Seq[*xmlquery.Node] {
	return func(yield func(*xmlquery.Node) bool) {
		segments := strings.Split(q, "/")

		frontier := []*xmlquery.Node{ctxNode}
		for _, seg := range segments[:len(segments)-1] {
			local, uri, ok := ng.resolveSegment(seg, ctxNode)
			if !ok {
				return
			}
			var next []*xmlquery.Node
			for _, n := range frontier {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if matches(c, local, uri) {
						next = append(next, c)
					}
				}
			}
			if len(next) == 0 {
				return
			}
			frontier = next
		}

		local, uri, ok := ng.resolveSegment(segments[len(segments)-1], ctxNode)
		if !ok {
			return
		}
		for _, n := range frontier {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if matches(c, local, uri) {
					if !yield(c) {
						return
					}
				}
			}
		}
	}
}

func matches(n *xmlquery.Node, local, uri string) bool {
	return n.Type == xmlquery.ElementNode && n.Data == local && n.NamespaceURI == uri
}

// resolveSegment splits a path segment into local name and namespace
// URI. Unprefixed segments match the null namespace. Prefixes are
// resolved against the engine's table first, then against xmlns
// declarations in scope at the context node, so prefixes declared
// natively in the source document work without bracket notation.
// An unresolvable prefix means the segment cannot match anything.
func (ng *engine) resolveSegment(seg string, ctxNode *xmlquery.Node) (local, uri string, ok bool) {
	px, rest, qualified := strings.Cut(seg, ":")
	if !qualified {
		return seg, "", true
	}
	if uri, found := ng.ns.LookupURI(px); found {
		return rest, uri, true
	}
	if uri, found := lookupNamespaceURI(ctxNode, px); found {
		return rest, uri, true
	}
	return "", "", false
}

// lookupNamespaceURI resolves a prefix using the xmlns declarations
// in scope at n, nearest declaration first.
func lookupNamespaceURI(n *xmlquery.Node, prefix string) (string, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		for _, a := range cur.Attr {
			if a.Name.Space == "xmlns" && a.Name.Local == prefix {
				return a.Value, true
			}
		}
	}
	return "", false
}

// fullQuery hands the query to the XPath engine and filters the raw
// result down to element nodes. Text, comment and attribute results
// from more exotic queries are silently excluded.
func fullQuery(expr *xpath.Expr, ctxNode *xmlquery.Node) iter.Seq[*xmlquery.Node] {
	return func(yield func(*xmlquery.Node) bool) {
		t := expr.Select(xmlquery.CreateXPathNavigator(ctxNode))
		for t.MoveNext() {
			nav, ok := t.Current().(*xmlquery.NodeNavigator)
			if !ok || nav.NodeType() != xpath.ElementNode {
				continue
			}
			if !yield(nav.Current()) {
				return
			}
		}
	}
}

func attached(n, doc *xmlquery.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == doc {
			return true
		}
	}
	return false
}
