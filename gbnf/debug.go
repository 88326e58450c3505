package gbnf

import (
	"fmt"

	"github.com/arr-ai/gbnf/errors"
	"github.com/arr-ai/gbnf/gotree"
)

// RenderDebug returns a tree view of g for diagnostics, one node per line.
// It is not GBNF and never fails; subtrees deeper than DefaultMaxDepth are
// elided.
func RenderDebug(g Grammar) string {
	return debugTree(g, 0).Print()
}

func debugTree(g Grammar, depth int) gotree.Tree {
	if g == nil {
		return gotree.New("<nil>")
	}
	if depth > DefaultMaxDepth {
		return gotree.New("…")
	}
	q := quantString(g.Quantifier())
	switch g := g.(type) {
	case *CharRange:
		return gotree.New(fmt.Sprintf("CharRange%s %s", q, g.body()))
	case *Literal:
		return gotree.New(fmt.Sprintf("Literal%s %s", q, quoteLiteral(g.value)))
	case *Rule:
		if g.value == nil {
			return gotree.New(fmt.Sprintf("Ref%s %s", q, g.symbol))
		}
		t := gotree.New(fmt.Sprintf("Rule%s %s", q, g.symbol))
		t.AddTree(debugTree(g.value, depth+1))
		return t
	case *And:
		return debugGroup("And"+q, g.children, depth)
	case *Or:
		return debugGroup("Or"+q, g.children, depth)
	}
	panic(errors.Inconceivable)
}

func debugGroup(label string, children []Grammar, depth int) gotree.Tree {
	t := gotree.New(label)
	for _, c := range children {
		t.AddTree(debugTree(c, depth+1))
	}
	return t
}
