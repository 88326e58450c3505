package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arr-ai/gbnf/errors"
	"github.com/arr-ai/gbnf/gbnf"
)

const (
	noScope int = iota
	bracesScope
	listScope
)

// goNode is a Go expression under construction: name, then children joined
// inside the brackets its scope calls for.
type goNode struct {
	name     string
	children []goNode
	scope    int
}

func (g *goNode) String() string {
	x := map[int]struct {
		open  string
		close string
	}{
		noScope:     {"", ""},
		bracesScope: {"(", ")"},
		listScope:   {"{", "}"},
	}[g.scope]
	children := make([]string, 0, len(g.children))
	for _, c := range g.children {
		children = append(children, c.String())
	}
	return strings.Join([]string{g.name, x.open, strings.Join(children, ",\n"), x.close}, "")
}

func (g *goNode) Add(n goNode) {
	g.children = append(g.children, n)
}

func safeString(src string) string {
	r := strings.NewReplacer("`", "`+\"`\"+`")
	return r.Replace(src)
}

func stringNode(fmtString string, args ...interface{}) goNode {
	return goNode{name: fmt.Sprintf(fmtString, args...)}
}

func call(name string, children ...goNode) goNode {
	return goNode{name: name, children: children, scope: bracesScope}
}

// walkGrammar returns the builder expression that reconstructs g.
func walkGrammar(g gbnf.Grammar) goNode {
	var node goNode
	switch t := g.(type) {
	case *gbnf.Literal:
		node = stringNode("gbnf.S(%s)", strconv.Quote(t.Value()))
	case *gbnf.CharRange:
		intervals := goNode{name: "[]gbnf.Interval", scope: listScope}
		for _, iv := range t.Intervals() {
			if iv.Start == iv.End {
				intervals.Add(stringNode("gbnf.Char(%s)", strconv.QuoteRune(iv.Start)))
			} else {
				intervals.Add(stringNode("gbnf.Span(%s, %s)", strconv.QuoteRune(iv.Start), strconv.QuoteRune(iv.End)))
			}
		}
		node = call("gbnf.MustCharRange", intervals, stringNode("%t", t.Negated()))
	case *gbnf.Rule:
		if t.IsRef() {
			node = stringNode("gbnf.MustRef(%q)", t.Symbol())
		} else {
			node = call("gbnf.MustRule", stringNode("%q", t.Symbol()), walkGrammar(t.Value()))
		}
	case *gbnf.And:
		node = call("gbnf.MustAnd", walkChildren(t.Children())...)
	case *gbnf.Or:
		node = call("gbnf.MustOr", walkChildren(t.Children())...)
	default:
		panic(errors.Inconceivable)
	}
	return quantify(node, g.Quantifier())
}

func walkChildren(children []gbnf.Grammar) []goNode {
	out := make([]goNode, 0, len(children))
	for _, c := range children {
		out = append(out, walkGrammar(c))
	}
	return out
}

func quantify(node goNode, q gbnf.Quantifier) goNode {
	switch q {
	case gbnf.Once:
		return node
	case gbnf.Optional:
		return call("gbnf.Opt", node)
	case gbnf.ZeroOrMore:
		return call("gbnf.Any", node)
	case gbnf.OneOrMore:
		return call("gbnf.Some", node)
	}
	max := "gbnf.Unbounded"
	if q.IsBounded() {
		max = strconv.Itoa(q.Max())
	}
	return call("gbnf.Quantify", node, stringNode("gbnf.MustQuantifier(%d, %s)", q.Min(), max))
}

// MakeDocument turns every rule reachable from the document root into a
// builder expression, root first.
func MakeDocument(doc *gbnf.Document) (root string, rules []string, err error) {
	defs, err := doc.Rules()
	if err != nil {
		return "", nil, err
	}
	for _, r := range defs {
		node := call("gbnf.MustRule", stringNode("%q", r.Symbol()), walkGrammar(r.Value()))
		rules = append(rules, node.String())
	}
	return fmt.Sprintf("gbnf.MustRef(%q)", defs[0].Symbol()), rules, nil
}
