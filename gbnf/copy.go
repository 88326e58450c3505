package gbnf

import "github.com/arr-ai/gbnf/errors"

// Copy returns a deep copy of g. Rules are copied as references: the copy gets
// its own Rule but shares the original's value, which keeps rule graphs
// finite and shared definitions shared.
//
// Copy has no depth limit and recurses as deep as g goes. Pass trees of
// unknown depth through Simplify or Render first; they fail with TooDeep.
func Copy(g Grammar) Grammar {
	switch g := g.(type) {
	case nil:
		return nil
	case *CharRange:
		return &CharRange{
			intervals: append([]Interval(nil), g.intervals...),
			negate:    g.negate,
			quant:     g.quant,
		}
	case *Literal:
		return &Literal{value: g.value, quant: g.quant}
	case *Rule:
		return &Rule{symbol: g.symbol, value: g.value, quant: g.quant}
	case *And:
		return &And{children: copyChildren(g.children), quant: g.quant}
	case *Or:
		return &Or{children: copyChildren(g.children), quant: g.quant}
	}
	panic(errors.Inconceivable)
}

func copyChildren(children []Grammar) []Grammar {
	out := make([]Grammar, 0, len(children))
	for _, c := range children {
		out = append(out, Copy(c))
	}
	return out
}
