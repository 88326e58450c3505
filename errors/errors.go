// Package errors holds error values shared across the gbnf packages.
package errors

import (
	stderrors "errors"

	goerrors "github.com/go-errors/errors"
)

// Inconceivable is raised (via panic) on code paths that only a bug can reach,
// such as a type switch over grammar nodes meeting an unknown variant.
var Inconceivable = goerrors.Errorf("inconceivable")

// WithStack attaches the caller's stack to err. Nil stays nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, 1)
}

// Stack returns the stack recorded by WithStack, or "" if err has none.
func Stack(err error) string {
	var e *goerrors.Error
	if stderrors.As(err, &e) {
		return string(e.Stack())
	}
	return ""
}
