// Package gbnf builds GBNF grammars as immutable node trees, canonicalizes
// them and renders them as grammar text.
//
// A Grammar is exactly one of *CharRange, *Literal, *Rule, *And or *Or. Nodes
// are never modified after construction, so trees may be shared freely
// between goroutines. Simplify returns a new tree; Render and RenderDebug only
// read.
package gbnf

import "github.com/arr-ai/gbnf/errors"

// MaxElements caps the children of a group and the intervals of a range.
const MaxElements = 1 << 20

type Grammar interface {
	// Quantifier is the repetition bound attached to the node.
	Quantifier() Quantifier
	String() string
	isGrammar()
}

var (
	_ Grammar = (*CharRange)(nil)
	_ Grammar = (*Literal)(nil)
	_ Grammar = (*Rule)(nil)
	_ Grammar = (*And)(nil)
	_ Grammar = (*Or)(nil)
)

// Quantify returns a copy of g carrying q in place of g's own quantifier.
func Quantify(g Grammar, q Quantifier) Grammar {
	switch g := g.(type) {
	case *CharRange:
		out := *g
		out.quant = q
		return &out
	case *Literal:
		out := *g
		out.quant = q
		return &out
	case *Rule:
		out := *g
		out.quant = q
		return &out
	case *And:
		out := *g
		out.quant = q
		return &out
	case *Or:
		out := *g
		out.quant = q
		return &out
	}
	panic(errors.Inconceivable)
}

// Opt makes g optional (g?).
func Opt(g Grammar) Grammar { return Quantify(g, Optional) }

// Any repeats g zero or more times (g*).
func Any(g Grammar) Grammar { return Quantify(g, ZeroOrMore) }

// Some repeats g one or more times (g+).
func Some(g Grammar) Grammar { return Quantify(g, OneOrMore) }

// Repeat attaches {min,max} to g.
func Repeat(g Grammar, min, max int) (Grammar, error) {
	q, err := NewQuantifier(min, max)
	if err != nil {
		return nil, err
	}
	return Quantify(g, q), nil
}

func checkNode(g Grammar) error {
	if g == nil {
		return errorf(InvalidArgument, "nil grammar")
	}
	return nil
}
