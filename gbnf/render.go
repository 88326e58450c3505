package gbnf

import (
	"strings"

	"github.com/arr-ai/gbnf/errors"
)

type RenderOptions struct {
	// MaxDepth bounds nesting; zero means DefaultMaxDepth.
	MaxDepth int
}

// Render returns g as GBNF text. A rule definition renders as
// "symbol ::= value" and must not be quantified; anything else renders as a
// bare expression. Rendering fails on the first invalid node met.
func Render(g Grammar) (string, error) {
	return RenderWith(g, RenderOptions{})
}

func RenderWith(g Grammar, opts RenderOptions) (string, error) {
	r := newRenderer(opts)
	if rule, ok := g.(*Rule); ok {
		if err := checkDefinitionQuantifier(rule); err != nil {
			return "", err
		}
		return r.definition(rule)
	}
	text, _, err := r.render(g, 0)
	return text, err
}

// binding orders how tightly rendered text holds together, tightest first.
// A quantifier suffix needs an atom; a sequence element needs at least a
// sequence.
type binding int

const (
	atomic binding = iota
	postfix
	sequence
	alternation
)

type renderer struct {
	maxDepth int
}

func newRenderer(opts RenderOptions) renderer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return renderer{maxDepth: opts.MaxDepth}
}

func (r renderer) definition(rule *Rule) (string, error) {
	if rule.value == nil {
		return "", errorf(UnresolvedReference, "%s is a reference without a definition", rule.symbol)
	}
	body, _, err := r.render(rule.value, 1)
	if err != nil {
		return "", inRule(err, rule.symbol)
	}
	return rule.symbol + " ::= " + body, nil
}

// checkDefinitionQuantifier rejects a quantifier on a rule rendered as a
// definition. "symbol ::= value" has no place for one.
func checkDefinitionQuantifier(rule *Rule) error {
	if rule.quant.IsOnce() {
		return nil
	}
	return inRule(errorf(InvalidArgument, "quantifier %s on a top-level rule", rule.quant.Suffix()), rule.symbol)
}

func (r renderer) render(g Grammar, depth int) (string, binding, error) {
	if err := checkNode(g); err != nil {
		return "", 0, err
	}
	if depth > r.maxDepth {
		return "", 0, errorf(TooDeep, "nesting exceeds %d levels", r.maxDepth)
	}
	var (
		body string
		bind binding
		err  error
	)
	switch g := g.(type) {
	case *CharRange:
		if err = g.validate(); err != nil {
			return "", 0, err
		}
		body, bind = g.body(), atomic
	case *Literal:
		body, bind = quoteLiteral(g.value), atomic
	case *Rule:
		body, bind = g.symbol, atomic
	case *And:
		body, bind, err = r.group(g.children, andSeparator, "and", sequence, depth)
	case *Or:
		body, bind, err = r.group(g.children, orSeparator, "or", alternation, depth)
	default:
		panic(errors.Inconceivable)
	}
	if err != nil {
		return "", 0, err
	}
	body, bind = quantify(body, bind, g.Quantifier())
	return body, bind, nil
}

func (r renderer) group(children []Grammar, sep, kind string, bind binding, depth int) (string, binding, error) {
	if len(children) == 0 {
		return "", 0, errorf(EmptyGroup, "%s has no children", kind)
	}
	if len(children) == 1 {
		text, b, err := r.render(children[0], depth+1)
		if err != nil {
			return "", 0, within(err, 0)
		}
		return text, b, nil
	}
	parts := make([]string, 0, len(children))
	for i, c := range children {
		text, b, err := r.render(c, depth+1)
		if err != nil {
			return "", 0, within(err, i)
		}
		if b > bind {
			text = "(" + text + ")"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, sep), bind, nil
}

// quantify appends q's suffix, parenthesizing anything that is not a bare
// atom.
func quantify(body string, bind binding, q Quantifier) (string, binding) {
	if q.IsOnce() {
		return body, bind
	}
	if bind != atomic {
		body = "(" + body + ")"
	}
	return body + q.Suffix(), postfix
}
