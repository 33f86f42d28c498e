package mib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraint_NormalizeMergesOverlappingRanges(t *testing.T) {
	c := NewConstraint(false, []Element{{Lo: 10, Hi: 20}, {Lo: 0, Hi: 5}, {Lo: 15, Hi: 25}, {Lo: 26, Hi: 30}})
	require.Equal(t, []Element{{Lo: 0, Hi: 5}, {Lo: 10, Hi: 30}}, c.Elements)
}

func TestConstraint_Extract_NonSize(t *testing.T) {
	// INTEGER(0..255) applied to [42, 9]: 42 satisfies the range and is
	// extracted as the single content element; [9] remains.
	c := NewConstraint(false, []Element{{Lo: 0, Hi: 255}})
	content, next, ok := c.Extract([]int64{42, 9})
	require.True(t, ok)
	assert.Equal(t, []int64{42}, content)
	assert.Equal(t, []int64{9}, next)
}

func TestConstraint_Extract_SizeRange(t *testing.T) {
	// OCTET STRING (SIZE(0..4)) applied to [3, 65, 66, 67, 99]: the
	// leading 3 is a runtime length, consuming the next 3 elements.
	c := NewConstraint(true, []Element{{Lo: 0, Hi: 4}})
	content, next, ok := c.Extract([]int64{3, 65, 66, 67, 99})
	require.True(t, ok)
	assert.Equal(t, []int64{65, 66, 67}, content)
	assert.Equal(t, []int64{99}, next)
}

func TestConstraint_Extract_SizeFixed(t *testing.T) {
	// OCTET STRING (SIZE(4)) consumes exactly 4 elements, no length byte.
	c := NewConstraint(true, []Element{{Lo: 4, Hi: 4}})
	content, next, ok := c.Extract([]int64{10, 20, 30, 40, 50})
	require.True(t, ok)
	assert.Equal(t, []int64{10, 20, 30, 40}, content)
	assert.Equal(t, []int64{50}, next)
}

func TestConstraint_Extract_ImpliedZeroSize(t *testing.T) {
	c := NewConstraint(true, []Element{{Lo: 0, Hi: 0}})
	content, next, ok := c.Extract([]int64{7, 8})
	require.True(t, ok)
	assert.Empty(t, content)
	assert.Equal(t, []int64{7, 8}, next)
}

func TestConstraint_Extract_TooShort(t *testing.T) {
	c := NewConstraint(true, []Element{{Lo: 4, Hi: 4}})
	_, _, ok := c.Extract([]int64{1, 2})
	assert.False(t, ok)
}

func TestConstraint_Extract_ViolatesConstraint(t *testing.T) {
	c := NewConstraint(false, []Element{{Lo: 0, Hi: 10}})
	_, _, ok := c.Extract([]int64{42})
	assert.False(t, ok)
}

func TestConstraint_Extract_EmptyOid(t *testing.T) {
	c := NewConstraint(false, []Element{{Lo: 0, Hi: 10}})
	_, _, ok := c.Extract(nil)
	assert.False(t, ok)
}
