package xmlwrap

import (
	"context"
	"iter"
)

// Query evaluates q relative to the element and returns a lazy
// sequence of matching elements. The sequence is finite, single-pass,
// and evaluated against the live tree as it is consumed; mutating the
// tree mid-iteration has undefined results. A query matching nothing
// yields an empty sequence, not an error. Mismatched queries aside,
// an error is only returned when the full evaluator rejects the query
// string, and always before the first element.
//
// Namespaces may be written inline as {uri}localName; each distinct
// URI is registered once per document under a synthetic prefix and
// the registration is reused by later queries.
func (e *Element) Query(ctx context.Context, q string, options ...QueryOption) (iter.Seq[*Element], error) {
	limit := -1
	var forceFull bool
	for _, option := range options {
		switch option.Ident() {
		case identLimit{}:
			limit = option.Value().(int)
		case identFullEvaluation{}:
			forceFull = true
		}
	}

	seq, err := e.doc.getEngine().query(ctx, q, e.node, forceFull)
	if err != nil {
		return nil, err
	}
	if limit >= 0 {
		seq = capped(seq, limit)
	}

	return func(yield func(*Element) bool) {
		for n := range seq {
			if !yield(e.doc.wrap(n)) {
				return
			}
		}
	}, nil
}

// Find evaluates q and returns the matches as a slice. Combined with
// WithLimit it stops the underlying traversal as soon as the cap is
// reached; it never computes the full result set first.
func (e *Element) Find(ctx context.Context, q string, options ...QueryOption) ([]*Element, error) {
	seq, err := e.Query(ctx, q, options...)
	if err != nil {
		return nil, err
	}
	var results []*Element
	for el := range seq {
		results = append(results, el)
	}
	return results, nil
}

// First returns the first match for q, or nil (with no error) when
// nothing matches.
func (e *Element) First(ctx context.Context, q string, options ...QueryOption) (*Element, error) {
	seq, err := e.Query(ctx, q, options...)
	if err != nil {
		return nil, err
	}
	for el := range seq {
		return el, nil
	}
	return nil, nil
}

// capped truncates seq after limit elements. The source sequence is
// not pulled beyond the cap.
func capped[T any](seq iter.Seq[T], limit int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if limit <= 0 {
			return
		}
		seen := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			seen++
			if seen >= limit {
				return
			}
		}
	}
}
