package gbnf

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arr-ai/gbnf/gotree"
)

type ErrorKind int

const (
	NoError ErrorKind = iota
	InvalidRange
	InvalidQuantifier
	EmptyGroup
	DuplicateSymbol
	UnresolvedReference
	TooDeep
	AllocationFailure
	InvalidSymbol
	InvalidArgument
)

var errorKindNames = map[ErrorKind]string{
	NoError:             "no error",
	InvalidRange:        "invalid range",
	InvalidQuantifier:   "invalid quantifier",
	EmptyGroup:          "empty group",
	DuplicateSymbol:     "duplicate symbol",
	UnresolvedReference: "unresolved reference",
	TooDeep:             "too deep",
	AllocationFailure:   "allocation failure",
	InvalidSymbol:       "invalid symbol",
	InvalidArgument:     "invalid argument",
}

func (k ErrorKind) String() string {
	if s, has := errorKindNames[k]; has {
		return s
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrInvalidRange        = &Error{kind: InvalidRange}
	ErrInvalidQuantifier   = &Error{kind: InvalidQuantifier}
	ErrEmptyGroup          = &Error{kind: EmptyGroup}
	ErrDuplicateSymbol     = &Error{kind: DuplicateSymbol}
	ErrUnresolvedReference = &Error{kind: UnresolvedReference}
	ErrTooDeep             = &Error{kind: TooDeep}
	ErrAllocationFailure   = &Error{kind: AllocationFailure}
	ErrInvalidSymbol       = &Error{kind: InvalidSymbol}
	ErrInvalidArgument     = &Error{kind: InvalidArgument}
)

// Error is the only error type returned by this package. Besides its kind it
// records the innermost rule symbol and the child-index path from that rule's
// value down to the offending node.
type Error struct {
	kind   ErrorKind
	msg    string
	symbol string
	path   []int
}

func errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Kind() ErrorKind { return e.kind }
func (e *Error) Symbol() string  { return e.symbol }

func (e *Error) Path() []int {
	return append([]int(nil), e.path...)
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.kind.String())
	if e.msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.msg)
	}
	if e.symbol != "" || len(e.path) > 0 {
		sb.WriteString(" (at ")
		sb.WriteString(e.location())
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

// Trace renders the error location as a tree, outermost context first.
func (e *Error) Trace() string {
	root := gotree.New("gbnf: " + e.kind.String())
	node := root
	if e.symbol != "" {
		node = node.Add(fmt.Sprintf("rule(%s)", e.symbol))
	}
	for _, i := range e.path {
		node = node.Add(fmt.Sprintf("[%d]", i))
	}
	if e.msg != "" {
		node.Add(e.msg)
	}
	return root.Print()
}

func (e *Error) location() string {
	parts := make([]string, 0, len(e.path)+1)
	if e.symbol != "" {
		parts = append(parts, "rule "+e.symbol)
	}
	if len(e.path) > 0 {
		idx := make([]string, 0, len(e.path))
		for _, i := range e.path {
			idx = append(idx, strconv.Itoa(i))
		}
		parts = append(parts, "child "+strings.Join(idx, "."))
	}
	return strings.Join(parts, ", ")
}

// KindOf returns the kind of the first *Error in err's chain, or NoError.
func KindOf(err error) ErrorKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.kind
	}
	return NoError
}

// within prefixes the error path with the index of the child it came from.
func within(err error, index int) error {
	e, ok := err.(*Error)
	if !ok || e.symbol != "" {
		return err
	}
	out := *e
	out.path = append([]int{index}, e.path...)
	return &out
}

// inRule records symbol as the enclosing rule unless a nearer one is already
// known.
func inRule(err error, symbol string) error {
	e, ok := err.(*Error)
	if !ok || e.symbol != "" {
		return err
	}
	out := *e
	out.symbol = symbol
	return &out
}
