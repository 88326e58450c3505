package gbnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantifier(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		min, max int
		ekind    ErrorKind
	}{
		{"optional", 0, 1, NoError},
		{"exact zero", 0, 0, NoError},
		{"open", 3, Unbounded, NoError},
		{"negative min", -1, 1, InvalidQuantifier},
		{"negative max", 0, -2, InvalidQuantifier},
		{"min over max", 2, 1, InvalidQuantifier},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			q, err := NewQuantifier(test.min, test.max)
			if test.ekind != NoError {
				require.Error(t, err)
				assert.Equal(t, test.ekind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.min, q.Min())
			assert.Equal(t, test.max, q.Max())
		})
	}
}

func TestQuantifierSuffix(t *testing.T) {
	t.Parallel()

	exactly3, err := Exactly(3)
	require.NoError(t, err)
	atLeast2, err := AtLeast(2)
	require.NoError(t, err)
	between, err := NewQuantifier(1, 3)
	require.NoError(t, err)
	never, err := Exactly(0)
	require.NoError(t, err)

	for _, test := range []struct {
		q        Quantifier
		expected string
	}{
		{Once, ""},
		{Optional, "?"},
		{ZeroOrMore, "*"},
		{OneOrMore, "+"},
		{exactly3, "{3}"},
		{atLeast2, "{2,}"},
		{between, "{1,3}"},
		{never, "{0}"},
	} {
		assert.Equal(t, test.expected, test.q.Suffix(), test.q.String())
	}
}

func TestQuantifierString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{1,∞}", OneOrMore.String())
	assert.Equal(t, "{0,1}", Optional.String())
	assert.True(t, Once.IsOnce())
	assert.False(t, ZeroOrMore.IsBounded())
	assert.True(t, Optional.IsBounded())

	_, err := Exactly(-1)
	assert.Equal(t, InvalidQuantifier, KindOf(err))
}
