package gbnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDocument(t *testing.T, expected string, d *Document) bool { //nolint:unparam
	text, err := d.Render()
	return assert.NoError(t, err) && assert.Equal(t, expected, text)
}

func TestDocumentOrder(t *testing.T) {
	t.Parallel()

	root := MustRule("root", MustAnd(MustRef("b"), MustRef("a"), MustRef("b")))
	a := MustRule("a", MustRef("c"))
	b := MustRule("b", S("b"))
	c := MustRule("c", S("c"))
	unused := MustRule("unused", S("u"))

	d, err := NewDocument(root, c, unused, a, b)
	require.NoError(t, err)
	assertDocument(t,
		"root ::= b a b\n"+
			"b ::= \"b\"\n"+
			"a ::= c\n"+
			"c ::= \"c\"\n",
		d,
	)

	rules, err := d.Rules()
	require.NoError(t, err)
	symbols := make([]string, 0, len(rules))
	for _, r := range rules {
		symbols = append(symbols, r.Symbol())
	}
	assert.Equal(t, []string{"root", "b", "a", "c"}, symbols)
	assert.Equal(t, []string{"a", "b", "c", "root", "unused"}, d.Symbols())
}

func TestDocumentInlineDefinitions(t *testing.T) {
	t.Parallel()

	digit := MustRule("digit", MustCharRange([]Interval{Span('0', '9')}, false))
	root := MustRule("root", MustAnd(Some(digit), S("."), Some(digit)))
	d, err := NewDocument(root)
	require.NoError(t, err)
	assertDocument(t, "root ::= digit+ \".\" digit+\ndigit ::= [0-9]\n", d)

	_, has := d.Lookup("digit")
	assert.False(t, has)
	_, has = d.Lookup("root")
	assert.True(t, has)
}

func TestDocumentRecursion(t *testing.T) {
	t.Parallel()

	list := MustRule("list", MustAnd(MustRef("item"), Opt(MustAnd(S(","), MustRef("list")))))
	item := MustRule("item", Some(MustCharRange([]Interval{Span('a', 'z')}, false)))
	d, err := NewDocument(list, item)
	require.NoError(t, err)
	assertDocument(t, "list ::= item (\",\" list)?\nitem ::= [a-z]+\n", d)
	assert.NoError(t, d.Validate())
}

func TestDocumentRootReference(t *testing.T) {
	t.Parallel()

	d, err := NewDocument(MustRef("main"), MustRule("main", S("a")))
	require.NoError(t, err)
	assertDocument(t, "main ::= \"a\"\n", d)

	d, err = NewDocument(MustRef("main"))
	require.NoError(t, err)
	_, err = d.Render()
	assert.Equal(t, UnresolvedReference, KindOf(err))

	_, err = NewDocument(nil)
	assert.Equal(t, InvalidArgument, KindOf(err))
}

func TestDocumentRejectsQuantifiedDefinitions(t *testing.T) {
	t.Parallel()

	def := MustRule("main", S("a"))
	for _, test := range []struct {
		name  string
		build func() (*Document, error)
	}{
		{"root", func() (*Document, error) { return NewDocument(Opt(def).(*Rule)) }},
		{"root reference", func() (*Document, error) { return NewDocument(Some(def.Ref()).(*Rule), def) }},
		{"registered", func() (*Document, error) {
			return NewDocument(MustRule("root", def.Ref()), Any(def).(*Rule))
		}},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := test.build()
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, InvalidArgument, e.Kind())
			assert.Equal(t, "main", e.Symbol())
		})
	}

	// Quantified uses of a rule, inline definitions included, are fine.
	d, err := NewDocument(MustRule("root", MustAnd(Some(def), Opt(def.Ref()))))
	require.NoError(t, err)
	assertDocument(t, "root ::= main+ main?\nmain ::= \"a\"\n", d)
}

func TestDocumentDuplicateSymbol(t *testing.T) {
	t.Parallel()

	_, err := NewDocument(MustRule("a", S("x")), MustRule("a", S("y")))
	assert.Equal(t, DuplicateSymbol, KindOf(err))

	_, err = NewDocument(MustRule("a", S("x")), MustRule("a", S("x")))
	assert.NoError(t, err)

	d, err := NewDocument(MustRule("root", MustAnd(MustRule("a", S("x")), MustRule("a", S("y")))))
	require.NoError(t, err)
	err = d.Validate()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, DuplicateSymbol, e.Kind())
	assert.Equal(t, "root", e.Symbol())
	assert.Equal(t, []int{1}, e.Path())

	_, err = NewDocument(MustRule("root", S("x")), MustRef("a"))
	assert.Equal(t, InvalidArgument, KindOf(err))
}

func TestDocumentUnresolvedReference(t *testing.T) {
	t.Parallel()

	inner := MustRule("inner", MustOr(S("a"), MustAnd(S("b"), MustRef("missing"))))
	d, err := NewDocument(MustRule("root", MustAnd(S("x"), inner)))
	require.NoError(t, err)

	_, err = d.Render()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, UnresolvedReference, e.Kind())
	assert.Equal(t, "inner", e.Symbol())
	assert.Equal(t, []int{1, 1}, e.Path())
}

func TestDocumentWithIsPersistent(t *testing.T) {
	t.Parallel()

	d, err := NewDocument(MustRule("root", MustRef("x")))
	require.NoError(t, err)
	d2, err := d.With(MustRule("x", S("x")))
	require.NoError(t, err)

	_, has := d.Lookup("x")
	assert.False(t, has)
	assert.Error(t, d.Validate())
	assert.NoError(t, d2.Validate())
	assert.Same(t, d.Root(), d2.Root())
}

func TestDocumentSimplify(t *testing.T) {
	t.Parallel()

	root := MustRule("root", MustOr(S("a"), MustAnd(S("a")), MustRef("d")))
	digits := MustRule("d", MustAnd(Some(MustCharRange([]Interval{Span('5', '9'), Span('0', '4')}, false))))
	d, err := NewDocument(root, digits)
	require.NoError(t, err)

	s, err := d.Simplify()
	require.NoError(t, err)
	assertDocument(t, "root ::= \"a\" | d\nd ::= [0-9]+\n", s)

	// The original document is unchanged.
	assertDocument(t, "root ::= \"a\" | \"a\" | d\nd ::= [5-90-4]+\n", d)

	bad, err := NewDocument(MustRule("root", &And{quant: Once}))
	require.NoError(t, err)
	_, err = bad.Simplify()
	assert.Equal(t, EmptyGroup, KindOf(err))
}

func TestDocumentTooDeep(t *testing.T) {
	t.Parallel()

	d, err := NewDocument(MustRule("root", nest(30)))
	require.NoError(t, err)
	_, err = d.RenderWith(RenderOptions{MaxDepth: 10})
	assert.Equal(t, TooDeep, KindOf(err))
	assert.NoError(t, d.Validate())
}
