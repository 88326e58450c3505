package gbnf

import (
	"strings"
	"unicode/utf8"
)

// Rule is a derivation rule, symbol ::= value. A rule without a value is a
// reference, resolved by name when a Document is rendered; references are how
// recursive grammars are written.
//
// Nested inside another node a rule renders as its bare symbol.
type Rule struct {
	symbol string
	value  Grammar
	quant  Quantifier
}

// NewRule defines symbol as value. A nil value yields a reference.
func NewRule(symbol string, value Grammar) (*Rule, error) {
	if err := checkSymbol(symbol); err != nil {
		return nil, err
	}
	return &Rule{symbol: symbol, value: value, quant: Once}, nil
}

// NewRef refers to the rule named symbol.
func NewRef(symbol string) (*Rule, error) {
	return NewRule(symbol, nil)
}

func MustRule(symbol string, value Grammar) *Rule {
	r, err := NewRule(symbol, value)
	if err != nil {
		panic(err)
	}
	return r
}

func MustRef(symbol string) *Rule {
	return MustRule(symbol, nil)
}

func (r *Rule) Symbol() string         { return r.symbol }
func (r *Rule) Value() Grammar         { return r.value }
func (r *Rule) IsRef() bool            { return r.value == nil }
func (r *Rule) Quantifier() Quantifier { return r.quant }
func (*Rule) isGrammar()               {}

// Ref returns a reference to r's symbol.
func (r *Rule) Ref() *Rule {
	return &Rule{symbol: r.symbol, quant: Once}
}

func (r *Rule) String() string {
	if r.value == nil {
		return "Ref(" + r.symbol + ")" + quantString(r.quant)
	}
	return "Rule(" + r.symbol + " ::= " + r.value.String() + ")" + quantString(r.quant)
}

func isSymbolChar(c rune) bool {
	return c == '-' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

func checkSymbol(symbol string) error {
	if symbol == "" {
		return errorf(InvalidSymbol, "empty symbol")
	}
	if i := strings.IndexFunc(symbol, func(c rune) bool { return !isSymbolChar(c) }); i >= 0 {
		c, _ := utf8.DecodeRuneInString(symbol[i:])
		return errorf(InvalidSymbol, "%q: character %q is not allowed in a symbol", symbol, c)
	}
	return nil
}
