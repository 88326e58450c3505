package gbnf

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arr-ai/gbnf/errors"
)

// DefaultMaxDepth bounds grammar nesting for Simplify and Render when no
// other limit is given.
const DefaultMaxDepth = 256

type SimplifyOptions struct {
	// MaxDepth bounds nesting; zero means DefaultMaxDepth.
	MaxDepth int

	// MergeStrings joins adjacent unquantified literals inside an And.
	MergeStrings bool

	// CollapseSingletonRanges turns a non-negated range of one code point
	// into a literal.
	CollapseSingletonRanges bool
}

// Simplify returns the canonical form of g. The input is left untouched.
//
// Ranges are sorted and merged; nested groups of the same kind without a
// quantifier are spliced into their parent; duplicate alternatives are
// dropped, first occurrence kept; single-child groups are unwrapped.
func Simplify(g Grammar) (Grammar, error) {
	return SimplifyWith(g, SimplifyOptions{})
}

func SimplifyWith(g Grammar, opts SimplifyOptions) (Grammar, error) {
	return newSimplifier(opts).simplify(g, 0)
}

type simplifier struct {
	opts SimplifyOptions

	// Definitions already simplified in this run, so shared rules are
	// rebuilt once and stay shared.
	rules map[*Rule]*Rule
}

func newSimplifier(opts SimplifyOptions) *simplifier {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &simplifier{opts: opts, rules: map[*Rule]*Rule{}}
}

func (s *simplifier) simplify(g Grammar, depth int) (Grammar, error) {
	if err := checkNode(g); err != nil {
		return nil, err
	}
	if depth > s.opts.MaxDepth {
		return nil, errorf(TooDeep, "nesting exceeds %d levels", s.opts.MaxDepth)
	}
	switch g := g.(type) {
	case *CharRange:
		return s.simplifyCharRange(g)
	case *Literal:
		return &Literal{value: g.value, quant: g.quant}, nil
	case *Rule:
		return s.simplifyRule(g, depth)
	case *And:
		return s.simplifyAnd(g, depth)
	case *Or:
		return s.simplifyOr(g, depth)
	}
	panic(errors.Inconceivable)
}

func (s *simplifier) simplifyCharRange(c *CharRange) (Grammar, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	out := c.canonical()
	if s.opts.CollapseSingletonRanges && !out.negate && len(out.intervals) == 1 {
		if iv := out.intervals[0]; iv.Start == iv.End {
			return &Literal{value: string(iv.Start), quant: out.quant}, nil
		}
	}
	return out, nil
}

// simplifyRule simplifies a definition's value. A value that reduces to
// another rule stays a reference to it; rules are never inlined.
func (s *simplifier) simplifyRule(r *Rule, depth int) (Grammar, error) {
	if r.value == nil {
		return &Rule{symbol: r.symbol, quant: r.quant}, nil
	}
	if done, has := s.rules[r]; has {
		return done, nil
	}
	logrus.WithField("symbol", r.symbol).Trace("simplify rule")
	value, err := s.simplify(r.value, depth+1)
	if err != nil {
		return nil, inRule(err, r.symbol)
	}
	out := &Rule{symbol: r.symbol, value: value, quant: r.quant}
	s.rules[r] = out
	return out, nil
}

func (s *simplifier) simplifyAnd(g *And, depth int) (Grammar, error) {
	children, err := s.simplifyChildren(g.children, depth)
	if err != nil {
		return nil, err
	}
	flat := make([]Grammar, 0, len(children))
	for _, c := range children {
		if sub, ok := c.(*And); ok && sub.quant.IsOnce() {
			flat = append(flat, sub.children...)
		} else {
			flat = append(flat, c)
		}
	}
	if s.opts.MergeStrings {
		flat = mergeLiterals(flat)
	}
	return collapse(flat, g.quant, "and", func(kids []Grammar) Grammar {
		return &And{children: kids, quant: g.quant}
	})
}

func (s *simplifier) simplifyOr(g *Or, depth int) (Grammar, error) {
	children, err := s.simplifyChildren(g.children, depth)
	if err != nil {
		return nil, err
	}
	flat := make([]Grammar, 0, len(children))
	for _, c := range children {
		if sub, ok := c.(*Or); ok && sub.quant.IsOnce() {
			flat = append(flat, sub.children...)
		} else {
			flat = append(flat, c)
		}
	}
	unique := flat[:0:0]
	seen := make(map[string][]Grammar, len(flat))
	for _, c := range flat {
		key := dedupKey(c)
		if containsEqual(seen[key], c) {
			continue
		}
		seen[key] = append(seen[key], c)
		unique = append(unique, c)
	}
	return collapse(unique, g.quant, "or", func(kids []Grammar) Grammar {
		return &Or{children: kids, quant: g.quant}
	})
}

func (s *simplifier) simplifyChildren(children []Grammar, depth int) ([]Grammar, error) {
	out := make([]Grammar, 0, len(children))
	for i, c := range children {
		simplified, err := s.simplify(c, depth+1)
		if err != nil {
			return nil, within(err, i)
		}
		out = append(out, simplified)
	}
	return out, nil
}

// collapse finishes a simplified group. A lone child replaces the group when
// the group adds nothing, or takes over the group's quantifier when it has
// none of its own.
func collapse(children []Grammar, quant Quantifier, kind string, build func([]Grammar) Grammar) (Grammar, error) {
	switch len(children) {
	case 0:
		return nil, errorf(EmptyGroup, "%s has no children", kind)
	case 1:
		child := children[0]
		switch {
		case quant.IsOnce():
			return child, nil
		case child.Quantifier().IsOnce():
			return Quantify(child, quant), nil
		}
	}
	return build(children), nil
}

func containsEqual(list []Grammar, g Grammar) bool {
	for _, x := range list {
		if Equal(x, g) {
			return true
		}
	}
	return false
}

// dedupKeyDepth bounds how far into groups dedupKey looks.
const dedupKeyDepth = 3

// dedupKey summarizes g so that nodes Equal reports equal always share a key.
// Rule values are never entered, so the key stays cheap for recursive rules.
func dedupKey(g Grammar) string {
	var sb strings.Builder
	writeDedupKey(&sb, g, dedupKeyDepth)
	return sb.String()
}

func writeDedupKey(sb *strings.Builder, g Grammar, depth int) {
	sb.WriteString(g.Quantifier().String())
	switch g := g.(type) {
	case *CharRange:
		sb.WriteByte('c')
		sb.WriteString(g.body())
	case *Literal:
		sb.WriteByte('l')
		sb.WriteString(strconv.Quote(g.value))
	case *Rule:
		sb.WriteByte('r')
		if g.value == nil {
			sb.WriteByte('&')
		}
		sb.WriteString(g.symbol)
	case *And:
		sb.WriteByte('a')
		writeDedupChildren(sb, g.children, depth)
	case *Or:
		sb.WriteByte('o')
		writeDedupChildren(sb, g.children, depth)
	default:
		panic(errors.Inconceivable)
	}
}

func writeDedupChildren(sb *strings.Builder, children []Grammar, depth int) {
	sb.WriteString(strconv.Itoa(len(children)))
	if depth == 0 {
		return
	}
	sb.WriteByte('(')
	for _, c := range children {
		writeDedupKey(sb, c, depth-1)
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
}

func mergeLiterals(children []Grammar) []Grammar {
	out := make([]Grammar, 0, len(children))
	var run []string
	flush := func() {
		if len(run) > 0 {
			out = append(out, &Literal{value: strings.Join(run, ""), quant: Once})
			run = run[:0]
		}
	}
	for _, c := range children {
		if l, ok := c.(*Literal); ok && l.quant.IsOnce() {
			run = append(run, l.value)
			continue
		}
		flush()
		out = append(out, c)
	}
	flush()
	return out
}
