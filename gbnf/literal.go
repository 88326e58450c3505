package gbnf

// Literal matches a fixed sequence of code points. The value may be empty and
// may hold NUL or other control characters.
type Literal struct {
	value string
	quant Quantifier
}

func NewLiteral(s string) *Literal {
	return &Literal{value: s, quant: Once}
}

// S is shorthand for NewLiteral.
func S(s string) *Literal { return NewLiteral(s) }

func (l *Literal) Value() string          { return l.value }
func (l *Literal) Quantifier() Quantifier { return l.quant }
func (*Literal) isGrammar()               {}

func (l *Literal) String() string {
	return "Literal(" + quoteLiteral(l.value) + ")" + quantString(l.quant)
}
