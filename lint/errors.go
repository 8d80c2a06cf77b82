package lint

import (
	"errors"
	"fmt"
)

// Startup errors. They are returned by New before any file is visited.
var (
	ErrUnknownRule     = errors.New("unknown rule")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrInvalidOptions  = errors.New("invalid rule options")
	ErrMissingTypeInfo = errors.New("rule requires type information")
)

// CheckFailure records a rule that panicked while handling a node. The
// rule's remaining handlers are skipped for that file; other rules run on.
type CheckFailure struct {
	Rule string
	Path string
	Node string
	Err  error
}

func (f CheckFailure) Error() string {
	return fmt.Sprintf("rule %s failed on %s at %s: %v", f.Rule, f.Path, f.Node, f.Err)
}

func (f CheckFailure) Unwrap() error {
	return f.Err
}
