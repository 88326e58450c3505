package gbnf

import "strconv"

// Unbounded is the upper bound of an open-ended quantifier.
const Unbounded = -1

// Quantifier bounds how many times a node repeats. The zero value is {0,0};
// use the presets or the constructors.
type Quantifier struct {
	min, max int
}

var (
	Once       = Quantifier{1, 1}
	Optional   = Quantifier{0, 1}
	ZeroOrMore = Quantifier{0, Unbounded}
	OneOrMore  = Quantifier{1, Unbounded}
)

// NewQuantifier returns {min,max}. Pass Unbounded as max for no upper limit.
func NewQuantifier(min, max int) (Quantifier, error) {
	switch {
	case min < 0:
		return Quantifier{}, errorf(InvalidQuantifier, "lower bound %d is negative", min)
	case max < 0 && max != Unbounded:
		return Quantifier{}, errorf(InvalidQuantifier, "upper bound %d is negative", max)
	case max != Unbounded && min > max:
		return Quantifier{}, errorf(InvalidQuantifier, "lower bound %d exceeds upper bound %d", min, max)
	}
	return Quantifier{min, max}, nil
}

func MustQuantifier(min, max int) Quantifier {
	q, err := NewQuantifier(min, max)
	if err != nil {
		panic(err)
	}
	return q
}

func Exactly(n int) (Quantifier, error) {
	if n < 0 {
		return Quantifier{}, errorf(InvalidQuantifier, "repetition count %d is negative", n)
	}
	return NewQuantifier(n, n)
}

func AtLeast(n int) (Quantifier, error) {
	return NewQuantifier(n, Unbounded)
}

func (q Quantifier) Min() int        { return q.min }
func (q Quantifier) Max() int        { return q.max }
func (q Quantifier) IsBounded() bool { return q.max != Unbounded }
func (q Quantifier) IsOnce() bool    { return q == Once }

// Suffix is the GBNF operator for q: "", "?", "*", "+", "{n}", "{n,}" or
// "{n,m}".
func (q Quantifier) Suffix() string {
	switch q {
	case Once:
		return ""
	case Optional:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	}
	lower := strconv.Itoa(q.min)
	switch {
	case q.max == Unbounded:
		return "{" + lower + ",}"
	case q.min == q.max:
		return "{" + lower + "}"
	}
	return "{" + lower + "," + strconv.Itoa(q.max) + "}"
}

func (q Quantifier) String() string {
	upper := "∞"
	if q.IsBounded() {
		upper = strconv.Itoa(q.max)
	}
	return "{" + strconv.Itoa(q.min) + "," + upper + "}"
}
