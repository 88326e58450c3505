package gbnf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDebug(t *testing.T) {
	t.Parallel()

	number := MustRule("number", MustAnd(
		Opt(S("-")),
		Some(MustCharRange([]Interval{Span('0', '9')}, false)),
		MustOr(MustRef("frac"), S("")),
	))
	assert.Equal(t,
		"Rule number\n"+
			"└── And\n"+
			"    ├── Literal{0,1} \"-\"\n"+
			"    ├── CharRange{1,∞} [0-9]\n"+
			"    └── Or\n"+
			"        ├── Ref frac\n"+
			"        └── Literal \"\"\n",
		RenderDebug(number),
	)
}

func TestRenderDebugNeverFails(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<nil>\n", RenderDebug(nil))
	assert.Equal(t, "And\n", RenderDebug(&And{quant: Once}))
	assert.Equal(t, "CharRange []\n", RenderDebug(&CharRange{quant: Once}))

	deep := RenderDebug(nest(DefaultMaxDepth + 5))
	assert.Contains(t, deep, "…")
	assert.True(t, strings.HasPrefix(deep, "And\n"))
}
