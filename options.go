package xmlwrap

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identLimit struct{}
type identFullEvaluation struct{}

type QueryOption interface {
	Option
	queryOption()
}

type queryOption struct{ Option }

func (*queryOption) queryOption() {}

// WithLimit caps the number of elements a query produces. Traversal
// and evaluation stop as soon as the cap is reached. A negative value
// means unbounded (the default); zero means no results at all.
func WithLimit(n int) QueryOption {
	return &queryOption{option.New(identLimit{}, n)}
}

// WithFullEvaluation forces the query through the underlying XPath
// engine even when it qualifies for the manual traversal shortcut.
func WithFullEvaluation() QueryOption {
	return &queryOption{option.New(identFullEvaluation{}, true)}
}
