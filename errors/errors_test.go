package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithStack(t *testing.T) {
	assert.NoError(t, WithStack(nil))

	base := fmt.Errorf("boom")
	err := WithStack(base)
	assert.EqualError(t, err, "boom")
	assert.Contains(t, Stack(err), "TestWithStack")
}

func TestStackWithoutTrace(t *testing.T) {
	assert.Equal(t, "", Stack(fmt.Errorf("plain")))
}
