package gbnf

import (
	"sort"
	"strings"
	"unicode"
)

// Interval is an inclusive span of code points.
type Interval struct {
	Start, End rune
}

// Span returns the interval start..end.
func Span(start, end rune) Interval { return Interval{start, end} }

// Char returns the single-code-point interval c..c.
func Char(c rune) Interval { return Interval{c, c} }

// CharRange matches one code point from a set of intervals, or, when negated,
// any code point outside it.
type CharRange struct {
	intervals []Interval
	negate    bool
	quant     Quantifier
}

func NewCharRange(intervals []Interval, negate bool) (*CharRange, error) {
	switch {
	case len(intervals) == 0:
		return nil, errorf(InvalidRange, "no intervals")
	case len(intervals) > MaxElements:
		return nil, errorf(AllocationFailure, "%d intervals exceed the limit of %d", len(intervals), MaxElements)
	}
	for i, iv := range intervals {
		switch {
		case iv.Start < 0 || iv.End > unicode.MaxRune:
			return nil, within(errorf(InvalidRange, "%U-%U is outside the code point space", iv.Start, iv.End), i)
		case iv.Start > iv.End:
			return nil, within(errorf(InvalidRange, "start %q is after end %q", iv.Start, iv.End), i)
		}
	}
	return &CharRange{
		intervals: append([]Interval(nil), intervals...),
		negate:    negate,
		quant:     Once,
	}, nil
}

// CharRangeFromRunes builds a range holding exactly the given code points.
// Duplicates are allowed.
func CharRangeFromRunes(runes []rune, negate bool) (*CharRange, error) {
	intervals := make([]Interval, 0, len(runes))
	for _, r := range runes {
		intervals = append(intervals, Char(r))
	}
	return NewCharRange(intervals, negate)
}

func CharRangeFromChars(chars string, negate bool) (*CharRange, error) {
	return CharRangeFromRunes([]rune(chars), negate)
}

func MustCharRange(intervals []Interval, negate bool) *CharRange {
	c, err := NewCharRange(intervals, negate)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *CharRange) Intervals() []Interval {
	return append([]Interval(nil), c.intervals...)
}

func (c *CharRange) Negated() bool          { return c.negate }
func (c *CharRange) Quantifier() Quantifier { return c.quant }
func (*CharRange) isGrammar()               {}

func (c *CharRange) String() string {
	return "CharRange" + c.body() + quantString(c.quant)
}

// IsCanonical reports whether the intervals are sorted and neither overlap nor
// touch.
func (c *CharRange) IsCanonical() bool {
	for i := 1; i < len(c.intervals); i++ {
		if c.intervals[i-1].End+1 >= c.intervals[i].Start {
			return false
		}
	}
	return true
}

// canonical sorts and merges the intervals into a new range. Negation stays a
// flag; the complement is never materialized.
func (c *CharRange) canonical() *CharRange {
	merged := append([]Interval(nil), c.intervals...)
	if len(merged) == 0 {
		return &CharRange{negate: c.negate, quant: c.quant}
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})
	w := 0
	for _, iv := range merged[1:] {
		if iv.Start <= merged[w].End+1 {
			if iv.End > merged[w].End {
				merged[w].End = iv.End
			}
			continue
		}
		w++
		merged[w] = iv
	}
	return &CharRange{
		intervals: merged[:w+1],
		negate:    c.negate,
		quant:     c.quant,
	}
}

func (c *CharRange) body() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.negate {
		sb.WriteByte('^')
	}
	for _, iv := range c.intervals {
		escapeRune(&sb, iv.Start, rangeEscapes)
		switch {
		case iv.End == iv.Start:
		case iv.End == iv.Start+1:
			// Two neighbours are shorter without the dash.
			escapeRune(&sb, iv.End, rangeEscapes)
		default:
			sb.WriteByte('-')
			escapeRune(&sb, iv.End, rangeEscapes)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (c *CharRange) validate() error {
	if len(c.intervals) == 0 {
		return errorf(InvalidRange, "no intervals")
	}
	return nil
}

func quantString(q Quantifier) string {
	if q.IsOnce() {
		return ""
	}
	return q.String()
}
