package gbnf

import (
	"strings"

	"github.com/arr-ai/frozen"
	"github.com/sirupsen/logrus"

	"github.com/arr-ai/gbnf/errors"
)

// Document is a complete grammar: a root rule plus a registry of named
// definitions that references resolve against. Documents are values; With
// returns a new document and leaves the receiver alone.
type Document struct {
	root  *Rule
	rules frozen.Map[string, *Rule]
}

// NewDocument starts a document at root and registers rules. Root may be a
// reference, as long as one of rules defines it. Neither root nor rules may be
// quantified.
func NewDocument(root *Rule, rules ...*Rule) (*Document, error) {
	if root == nil {
		return nil, errorf(InvalidArgument, "nil root rule")
	}
	if err := checkDefinitionQuantifier(root); err != nil {
		return nil, err
	}
	d := &Document{root: root, rules: frozen.NewMap[string, *Rule]()}
	var err error
	if !root.IsRef() {
		if d, err = d.With(root); err != nil {
			return nil, err
		}
	}
	for _, r := range rules {
		if d, err = d.With(r); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// With registers a definition. Registering an identical definition again is a
// no-op; a different definition under a taken symbol is a DuplicateSymbol.
func (d *Document) With(rule *Rule) (*Document, error) {
	if rule == nil || rule.IsRef() {
		return nil, errorf(InvalidArgument, "only rule definitions can be registered")
	}
	if err := checkDefinitionQuantifier(rule); err != nil {
		return nil, err
	}
	if existing, has := d.rules.Get(rule.symbol); has {
		if sameDefinition(existing, rule) {
			return d, nil
		}
		return nil, inRule(errorf(DuplicateSymbol, "%s has two different definitions", rule.symbol), rule.symbol)
	}
	return &Document{root: d.root, rules: d.rules.With(rule.symbol, rule)}, nil
}

func (d *Document) Root() *Rule { return d.root }

// Lookup returns the registered definition of symbol. Definitions that only
// appear inline inside other rules are not registered.
func (d *Document) Lookup(symbol string) (*Rule, bool) {
	return d.rules.Get(symbol)
}

// Symbols lists the registered symbols in lexical order.
func (d *Document) Symbols() []string {
	return d.rules.Keys().OrderedElements(func(a, b string) bool { return a < b })
}

// Rules returns the definitions reachable from the root: the root first, then
// the rest breadth-first in the order their references appear.
func (d *Document) Rules() ([]*Rule, error) {
	return d.order(DefaultMaxDepth)
}

func (d *Document) Render() (string, error) {
	return d.RenderWith(RenderOptions{})
}

// RenderWith renders every reachable definition as "symbol ::= value", one per
// line, in the order given by Rules.
func (d *Document) RenderWith(opts RenderOptions) (string, error) {
	r := newRenderer(opts)
	rules, err := d.order(r.maxDepth)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, rule := range rules {
		line, err := r.definition(rule)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Validate reports the first error Render would.
func (d *Document) Validate() error {
	_, err := d.Render()
	return err
}

func (d *Document) Simplify() (*Document, error) {
	return d.SimplifyWith(SimplifyOptions{})
}

// SimplifyWith simplifies the root and every registered definition. Rules
// shared between them are simplified once and stay shared.
func (d *Document) SimplifyWith(opts SimplifyOptions) (*Document, error) {
	s := newSimplifier(opts)
	root, err := s.simplify(d.root, 0)
	if err != nil {
		return nil, err
	}
	out := &Document{root: root.(*Rule), rules: frozen.NewMap[string, *Rule]()}
	for _, symbol := range d.Symbols() {
		rule, _ := d.rules.Get(symbol)
		simplified, err := s.simplify(rule, 0)
		if err != nil {
			return nil, err
		}
		out.rules = out.rules.With(symbol, simplified.(*Rule))
	}
	return out, nil
}

func (d *Document) rootDefinition() (*Rule, error) {
	if !d.root.IsRef() {
		return d.root, nil
	}
	if def, has := d.rules.Get(d.root.symbol); has {
		return def, nil
	}
	return nil, inRule(errorf(UnresolvedReference, "root %s is not defined", d.root.symbol), d.root.symbol)
}

// resolve merges the definitions written inline inside reachable rule values
// into the registry.
func (d *Document) resolve(maxDepth int) (frozen.Map[string, *Rule], error) {
	root, err := d.rootDefinition()
	if err != nil {
		return frozen.Map[string, *Rule]{}, err
	}
	rules := d.rules
	scanned := frozen.NewSet[string]()
	pending := []*Rule{root}
	for len(pending) > 0 {
		rule := pending[0]
		pending = pending[1:]
		if scanned.Has(rule.symbol) {
			continue
		}
		scanned = scanned.With(rule.symbol)
		err := walkRules(rule.value, 1, maxDepth, func(ref *Rule) error {
			if ref.IsRef() {
				if def, has := rules.Get(ref.symbol); has {
					pending = append(pending, def)
				}
				return nil
			}
			if existing, has := rules.Get(ref.symbol); has {
				if !sameDefinition(existing, ref) {
					return errorf(DuplicateSymbol, "%s has two different definitions", ref.symbol)
				}
			} else {
				rules = rules.With(ref.symbol, ref)
			}
			pending = append(pending, ref)
			return nil
		})
		if err != nil {
			return frozen.Map[string, *Rule]{}, inRule(err, rule.symbol)
		}
	}
	return rules, nil
}

func (d *Document) order(maxDepth int) ([]*Rule, error) {
	rules, err := d.resolve(maxDepth)
	if err != nil {
		return nil, err
	}
	root, err := d.rootDefinition()
	if err != nil {
		return nil, err
	}
	seen := frozen.NewSet(root.symbol)
	out := []*Rule{root}
	for i := 0; i < len(out); i++ {
		rule := out[i]
		logrus.WithField("symbol", rule.symbol).Trace("visit rule")
		err := walkRules(rule.value, 1, maxDepth, func(ref *Rule) error {
			if seen.Has(ref.symbol) {
				return nil
			}
			def, has := rules.Get(ref.symbol)
			if !has {
				return errorf(UnresolvedReference, "%s is not defined", ref.symbol)
			}
			seen = seen.With(ref.symbol)
			out = append(out, def)
			return nil
		})
		if err != nil {
			return nil, inRule(err, rule.symbol)
		}
	}
	return out, nil
}

// walkRules calls visit for every rule inside g in textual order, without
// descending into rule values.
func walkRules(g Grammar, depth, maxDepth int, visit func(*Rule) error) error {
	if err := checkNode(g); err != nil {
		return err
	}
	if depth > maxDepth {
		return errorf(TooDeep, "nesting exceeds %d levels", maxDepth)
	}
	switch g := g.(type) {
	case *CharRange, *Literal:
		return nil
	case *Rule:
		return visit(g)
	case *And:
		return walkChildren(g.children, depth, maxDepth, visit)
	case *Or:
		return walkChildren(g.children, depth, maxDepth, visit)
	}
	panic(errors.Inconceivable)
}

func walkChildren(children []Grammar, depth, maxDepth int, visit func(*Rule) error) error {
	for i, c := range children {
		if err := walkRules(c, depth+1, maxDepth, visit); err != nil {
			return within(err, i)
		}
	}
	return nil
}
