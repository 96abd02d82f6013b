package xmlwrap

import (
	"errors"
	"fmt"
)

var (
	ErrNilNode          = errors.New("nil node")
	ErrNotDocument      = errors.New("node is not a document node")
	ErrNotElement       = errors.New("node is not an element node")
	ErrDetachedNode     = errors.New("node is not attached to the document")
	ErrInvalidOperation = errors.New("operation cannot be performed")
)

// SyntaxError is returned when the underlying XPath engine rejects a
// query string. Query carries the original string as given by the
// caller, before namespace rewriting.
type SyntaxError struct {
	Query string
	Err   error
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Err)
}

func (e SyntaxError) Unwrap() error {
	return e.Err
}
