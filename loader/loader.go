// Package loader reads grammar descriptions written in YAML (or JSON) and
// builds gbnf documents from them.
//
//	root: number
//	rules:
//	  number: {and: [{string: "-", quant: "?"}, {ref: digit, quant: "+"}]}
//	  digit: {ranges: [["0", "9"]]}
//
// A node holds exactly one of string, ranges, chars, ref, and or or, plus an
// optional quant ("?", "*", "+") or min/max pair (max -1 is unbounded).
package loader

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/arr-ai/gbnf/errors"
	"github.com/arr-ai/gbnf/gbnf"
)

// Error locates a failure in the grammar description.
type Error struct {
	Rule string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("rule %s (line %d): %v", e.Rule, e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type file struct {
	Root      string    `yaml:"root"`
	Normalize bool      `yaml:"normalize"`
	Rules     yaml.Node `yaml:"rules"`
}

type node struct {
	String *string     `yaml:"string"`
	Ranges [][]string  `yaml:"ranges"`
	Chars  *string     `yaml:"chars"`
	Negate bool        `yaml:"negate"`
	Ref    string      `yaml:"ref"`
	And    []yaml.Node `yaml:"and"`
	Or     []yaml.Node `yaml:"or"`
	Quant  string      `yaml:"quant"`
	Min    *int        `yaml:"min"`
	Max    *int        `yaml:"max"`
}

// LoadFile reads the grammar description at path.
func LoadFile(path string) (*gbnf.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a grammar description. The document's root is the rule named
// by root, or the first rule when root is absent.
func Load(r io.Reader) (*gbnf.Document, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.WithStack(err)
	}
	if f.Rules.Kind != yaml.MappingNode || len(f.Rules.Content) == 0 {
		return nil, errors.WithStack(&Error{Line: f.Rules.Line, Err: fmt.Errorf("rules must be a non-empty mapping")})
	}

	l := loader{normalize: f.Normalize}
	rules := make([]*gbnf.Rule, 0, len(f.Rules.Content)/2)
	for i := 0; i < len(f.Rules.Content); i += 2 {
		key, value := f.Rules.Content[i], f.Rules.Content[i+1]
		l.rule = key.Value
		symbol := l.symbol(key.Value)
		body, err := l.node(value)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		rule, err := gbnf.NewRule(symbol, body)
		if err != nil {
			return nil, errors.WithStack(l.errorAt(key, err))
		}
		rules = append(rules, rule)
	}

	root := rules[0].Symbol()
	if f.Root != "" {
		root = l.symbol(f.Root)
	}
	ref, err := gbnf.NewRef(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	doc, err := gbnf.NewDocument(ref, rules...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	logrus.WithFields(logrus.Fields{"root": root, "rules": len(rules)}).Debug("loaded grammar")
	return doc, nil
}

type loader struct {
	normalize bool
	rule      string
}

func (l *loader) symbol(name string) string {
	if l.normalize {
		return gbnf.SymbolFrom(name)
	}
	return name
}

func (l *loader) errorAt(n *yaml.Node, err error) error {
	return &Error{Rule: l.rule, Line: n.Line, Err: err}
}

func (l *loader) node(n *yaml.Node) (gbnf.Grammar, error) {
	var desc node
	if err := n.Decode(&desc); err != nil {
		return nil, l.errorAt(n, err)
	}
	g, err := l.body(n, &desc)
	if err != nil {
		return nil, err
	}
	q, err := desc.quantifier()
	if err != nil {
		return nil, l.errorAt(n, err)
	}
	return gbnf.Quantify(g, q), nil
}

func (l *loader) body(n *yaml.Node, desc *node) (gbnf.Grammar, error) {
	set := 0
	for _, has := range []bool{
		desc.String != nil, desc.Ranges != nil, desc.Chars != nil,
		desc.Ref != "", desc.And != nil, desc.Or != nil,
	} {
		if has {
			set++
		}
	}
	if set != 1 {
		return nil, l.errorAt(n, fmt.Errorf("node needs exactly one of string, ranges, chars, ref, and, or (found %d)", set))
	}

	var (
		g   gbnf.Grammar
		err error
	)
	switch {
	case desc.String != nil:
		return gbnf.NewLiteral(*desc.String), nil
	case desc.Chars != nil:
		g, err = gbnf.CharRangeFromChars(*desc.Chars, desc.Negate)
	case desc.Ranges != nil:
		var intervals []gbnf.Interval
		if intervals, err = parseIntervals(desc.Ranges); err == nil {
			g, err = gbnf.NewCharRange(intervals, desc.Negate)
		}
	case desc.Ref != "":
		g, err = gbnf.NewRef(l.symbol(desc.Ref))
	case desc.And != nil:
		var children []gbnf.Grammar
		if children, err = l.children(desc.And); err != nil {
			return nil, err
		}
		g, err = gbnf.NewAnd(children...)
	case desc.Or != nil:
		var children []gbnf.Grammar
		if children, err = l.children(desc.Or); err != nil {
			return nil, err
		}
		g, err = gbnf.NewOr(children...)
	}
	if err != nil {
		return nil, l.errorAt(n, err)
	}
	return g, nil
}

func (l *loader) children(nodes []yaml.Node) ([]gbnf.Grammar, error) {
	out := make([]gbnf.Grammar, 0, len(nodes))
	for i := range nodes {
		g, err := l.node(&nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (n *node) quantifier() (gbnf.Quantifier, error) {
	if n.Min == nil && n.Max == nil {
		switch n.Quant {
		case "":
			return gbnf.Once, nil
		case "?":
			return gbnf.Optional, nil
		case "*":
			return gbnf.ZeroOrMore, nil
		case "+":
			return gbnf.OneOrMore, nil
		}
		return gbnf.Quantifier{}, fmt.Errorf("unknown quant %q", n.Quant)
	}
	if n.Quant != "" {
		return gbnf.Quantifier{}, fmt.Errorf("quant cannot be combined with min/max")
	}
	min, max := 0, gbnf.Unbounded
	if n.Min != nil {
		min = *n.Min
	}
	if n.Max != nil {
		max = *n.Max
	}
	return gbnf.NewQuantifier(min, max)
}

func parseIntervals(ranges [][]string) ([]gbnf.Interval, error) {
	out := make([]gbnf.Interval, 0, len(ranges))
	for _, r := range ranges {
		if len(r) != 1 && len(r) != 2 {
			return nil, fmt.Errorf("range %q needs one or two characters", r)
		}
		start, err := singleRune(r[0])
		if err != nil {
			return nil, err
		}
		end := start
		if len(r) == 2 {
			if end, err = singleRune(r[1]); err != nil {
				return nil, err
			}
		}
		out = append(out, gbnf.Span(start, end))
	}
	return out, nil
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	return r, nil
}
