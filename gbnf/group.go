package gbnf

import "strings"

const (
	andSeparator = " "
	orSeparator  = " | "
)

// And matches its children in order.
type And struct {
	children []Grammar
	quant    Quantifier
}

// Or matches any one of its children. Children keep their order for
// rendering.
type Or struct {
	children []Grammar
	quant    Quantifier
}

func NewAnd(children ...Grammar) (*And, error) {
	kids, err := groupChildren("and", children)
	if err != nil {
		return nil, err
	}
	return &And{children: kids, quant: Once}, nil
}

func NewOr(children ...Grammar) (*Or, error) {
	kids, err := groupChildren("or", children)
	if err != nil {
		return nil, err
	}
	return &Or{children: kids, quant: Once}, nil
}

func MustAnd(children ...Grammar) *And {
	g, err := NewAnd(children...)
	if err != nil {
		panic(err)
	}
	return g
}

func MustOr(children ...Grammar) *Or {
	g, err := NewOr(children...)
	if err != nil {
		panic(err)
	}
	return g
}

func groupChildren(kind string, children []Grammar) ([]Grammar, error) {
	switch {
	case len(children) == 0:
		return nil, errorf(EmptyGroup, "%s has no children", kind)
	case len(children) > MaxElements:
		return nil, errorf(AllocationFailure, "%d children exceed the limit of %d", len(children), MaxElements)
	}
	for i, c := range children {
		if err := checkNode(c); err != nil {
			return nil, within(err, i)
		}
	}
	return append([]Grammar(nil), children...), nil
}

func (g *And) Children() []Grammar    { return append([]Grammar(nil), g.children...) }
func (g *And) Separator() string      { return andSeparator }
func (g *And) Quantifier() Quantifier { return g.quant }
func (*And) isGrammar()               {}

func (g *And) String() string {
	return "And(" + joinStrings(g.children) + ")" + quantString(g.quant)
}

func (g *Or) Children() []Grammar    { return append([]Grammar(nil), g.children...) }
func (g *Or) Separator() string      { return orSeparator }
func (g *Or) Quantifier() Quantifier { return g.quant }
func (*Or) isGrammar()               {}

func (g *Or) String() string {
	return "Or(" + joinStrings(g.children) + ")" + quantString(g.quant)
}

func joinStrings(children []Grammar) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}
