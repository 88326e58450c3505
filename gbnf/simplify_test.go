package gbnf

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSimplifiesTo(t *testing.T, expected string, g Grammar) bool { //nolint:unparam
	s, err := Simplify(g)
	if !assert.NoError(t, err) {
		return false
	}
	text, err := Render(s)
	return assert.NoError(t, err) && assert.Equal(t, expected, text)
}

func TestSimplify(t *testing.T) {
	t.Parallel()

	a, b, c := S("a"), S("b"), S("c")

	for _, test := range []struct {
		name     string
		g        Grammar
		expected string
	}{
		{"flatten and", MustAnd(a, MustAnd(b, c)), `"a" "b" "c"`},
		{"flatten or", MustOr(MustOr(a, b), c), `"a" | "b" | "c"`},
		{"keep quantified and", MustAnd(a, Some(MustAnd(b, c))), `"a" ("b" "c")+`},
		{"or in and stays", MustAnd(a, MustOr(b, c)), `"a" ("b" | "c")`},
		{"dedup", MustOr(a, b, a), `"a" | "b"`},
		{"dedup keeps first", MustOr(b, a, b, a), `"b" | "a"`},
		{"dedup after flatten", MustOr(a, MustOr(b, a)), `"a" | "b"`},
		{"dedup to one", MustOr(a, a), `"a"`},
		{"quantifiers differ", MustOr(a, Opt(a)), `"a" | "a"?`},
		{"single child", MustAnd(a), `"a"`},
		{"nested single children", MustOr(MustAnd(MustOr(a))), `"a"`},
		{"hoist quantifier", Opt(MustAnd(a)), `"a"?`},
		{"keep both quantifiers", Opt(MustAnd(Some(a))), `("a"+)?`},
		{"ranges", MustOr(MustCharRange([]Interval{Char('b'), Char('a')}, false)), `[ab]`},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assertSimplifiesTo(t, test.expected, test.g)
		})
	}
}

func TestSimplifyAssociative(t *testing.T) {
	t.Parallel()

	a, b, c := S("a"), S("b"), S("c")
	left, err := Simplify(MustAnd(MustAnd(a, b), c))
	require.NoError(t, err)
	right, err := Simplify(MustAnd(a, MustAnd(b, c)))
	require.NoError(t, err)
	assert.True(t, Equal(left, right))
	assert.True(t, Equal(MustAnd(a, b, c), left))

	left, err = Simplify(MustOr(MustOr(a, b), c))
	require.NoError(t, err)
	right, err = Simplify(MustOr(a, MustOr(b, c)))
	require.NoError(t, err)
	assert.True(t, Equal(left, right))
}

func TestSimplifyIdempotent(t *testing.T) {
	t.Parallel()

	digit := MustRule("digit", MustCharRange([]Interval{Span('5', '9'), Span('0', '4')}, false))
	for _, g := range []Grammar{
		S("a"),
		MustOr(S("a"), MustOr(S("b"), S("a")), Opt(MustAnd(S("c")))),
		MustAnd(S("x"), MustAnd(MustOr(S("y"), S("y"))), Some(digit)),
		MustRule("root", MustAnd(digit, MustRef("root"))),
	} {
		once, err := Simplify(g)
		require.NoError(t, err, g.String())
		twice, err := Simplify(once)
		require.NoError(t, err, g.String())
		assert.True(t, Equal(once, twice), "%s: %s != %s", g, once, twice)
	}
}

func TestSimplifyLeavesInputAlone(t *testing.T) {
	t.Parallel()

	g := MustOr(S("a"), MustOr(S("b"), S("a")), MustCharRange([]Interval{Char('z'), Char('y')}, false))
	before := g.String()
	_, err := Simplify(g)
	require.NoError(t, err)
	assert.Equal(t, before, g.String())
}

func TestSimplifyRules(t *testing.T) {
	t.Parallel()

	x := MustRule("x", MustAnd(S("a")))
	s, err := Simplify(MustRule("r", MustAnd(x)))
	require.NoError(t, err)

	// x stays a rule of its own.
	text, err := Render(s)
	require.NoError(t, err)
	assert.Equal(t, "r ::= x", text)
	inner := s.(*Rule).Value().(*Rule)
	assert.Equal(t, "x", inner.Symbol())
	assert.True(t, Equal(S("a"), inner.Value()))

	digit := MustRule("digit", MustCharRange([]Interval{Span('0', '9')}, false))
	s, err = Simplify(MustAnd(digit, S("-"), digit))
	require.NoError(t, err)
	kids := s.(*And).Children()
	assert.Same(t, kids[0], kids[2])
}

func TestSimplifyErrors(t *testing.T) {
	t.Parallel()

	_, err := Simplify(&And{quant: Once})
	assert.Equal(t, EmptyGroup, KindOf(err))

	_, err = Simplify(MustRule("r", MustOr(S("a"), MustAnd(S("b"), &Or{quant: Once}))))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, EmptyGroup, e.Kind())
	assert.Equal(t, "r", e.Symbol())
	assert.Equal(t, []int{1, 1}, e.Path())

	_, err = SimplifyWith(nest(20), SimplifyOptions{MaxDepth: 5})
	assert.Equal(t, TooDeep, KindOf(err))

	_, err = Simplify(nil)
	assert.Equal(t, InvalidArgument, KindOf(err))
}

func TestSimplifyOptions(t *testing.T) {
	t.Parallel()

	g := MustAnd(S("a"), S("b"), Some(S("c")), S("d"), MustAnd(S("e"), S("f")))
	s, err := SimplifyWith(g, SimplifyOptions{MergeStrings: true})
	require.NoError(t, err)
	text, err := Render(s)
	require.NoError(t, err)
	assert.Equal(t, `"ab" "c"+ "def"`, text)

	assertSimplifiesTo(t, `"a" "b"`, MustAnd(S("a"), S("b")))

	r := Opt(MustCharRange([]Interval{Char('q')}, false))
	s, err = SimplifyWith(r, SimplifyOptions{CollapseSingletonRanges: true})
	require.NoError(t, err)
	text, err = Render(s)
	require.NoError(t, err)
	assert.Equal(t, `"q"?`, text)

	s, err = SimplifyWith(MustCharRange([]Interval{Char('q')}, true), SimplifyOptions{CollapseSingletonRanges: true})
	require.NoError(t, err)
	text, err = Render(s)
	require.NoError(t, err)
	assert.Equal(t, `[^q]`, text)
}

func TestSimplifyOrDedupLarge(t *testing.T) {
	t.Parallel()

	const distinct = 1000
	children := make([]Grammar, 0, 20*distinct)
	for round := 0; round < 20; round++ {
		for i := 0; i < distinct; i++ {
			children = append(children, Opt(S(strconv.Itoa(i))))
		}
	}
	s, err := Simplify(MustOr(children...))
	require.NoError(t, err)

	kids := s.(*Or).Children()
	require.Len(t, kids, distinct)
	for i, k := range kids {
		assert.True(t, Equal(Opt(S(strconv.Itoa(i))), k), k.String())
	}
}

func TestSimplifyOrDedupKeepsDistinct(t *testing.T) {
	t.Parallel()

	x := MustRule("x", S("a"))
	assertSimplifiesTo(t, `x | x`, MustOr(x.Ref(), x, x.Ref(), Copy(x)))
	ab := func() Grammar { return MustAnd(S("a"), S("b")) }
	assertSimplifiesTo(t, `"a" "b" | ("a" "b")+`, MustOr(ab(), Some(ab()), ab()))
}

func TestDedupKeyMatchesEqual(t *testing.T) {
	t.Parallel()

	for _, g := range sampleGrammars() {
		assert.Equal(t, dedupKey(g), dedupKey(Copy(g)), g.String())
	}
	assert.NotEqual(t, dedupKey(MustRef("x")), dedupKey(MustRule("x", S("a"))))
	assert.NotEqual(t, dedupKey(S("a")), dedupKey(Opt(S("a"))))
}
