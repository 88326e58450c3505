package gbnf

import (
	"github.com/arr-ai/frozen"

	"github.com/arr-ai/gbnf/errors"
)

// Equal reports whether a and b are structurally identical: same variants,
// same quantifiers and same contents, with children compared in order (Or
// included). Rules compare by symbol and value; a rule met again while its
// own comparison is still in progress compares equal. Like Copy, Equal is not
// depth limited.
func Equal(a, b Grammar) bool {
	return equal(a, b, frozen.NewSet[string]())
}

func equal(a, b Grammar, inProgress frozen.Set[string]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Quantifier() != b.Quantifier() {
		return false
	}
	switch a := a.(type) {
	case *CharRange:
		b, ok := b.(*CharRange)
		if !ok || a.negate != b.negate || len(a.intervals) != len(b.intervals) {
			return false
		}
		for i, iv := range a.intervals {
			if iv != b.intervals[i] {
				return false
			}
		}
		return true
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.value == b.value
	case *Rule:
		b, ok := b.(*Rule)
		if !ok || a.symbol != b.symbol {
			return false
		}
		if inProgress.Has(a.symbol) {
			return true
		}
		return equal(a.value, b.value, inProgress.With(a.symbol))
	case *And:
		b, ok := b.(*And)
		return ok && equalChildren(a.children, b.children, inProgress)
	case *Or:
		b, ok := b.(*Or)
		return ok && equalChildren(a.children, b.children, inProgress)
	}
	panic(errors.Inconceivable)
}

func equalChildren(a, b []Grammar, inProgress frozen.Set[string]) bool {
	if len(a) != len(b) {
		return false
	}
	for i, c := range a {
		if !equal(c, b[i], inProgress) {
			return false
		}
	}
	return true
}

// sameDefinition compares two rule definitions, ignoring the quantifiers
// attached to the rules themselves.
func sameDefinition(a, b *Rule) bool {
	return a.symbol == b.symbol && Equal(a.value, b.value)
}
