package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowlist(t *testing.T) {
	a := NewAllowlist([]int64{1, 2})

	assert.True(t, a.IsAllowed(1))
	assert.False(t, a.IsAllowed(3))

	a.Reload([]int64{3})
	assert.False(t, a.IsAllowed(1))
	assert.True(t, a.IsAllowed(3))
}

func TestAllowlistEmptyDeniesAll(t *testing.T) {
	a := NewAllowlist(nil)
	assert.False(t, a.IsAllowed(1))
	assert.False(t, a.IsAllowedString("1"))
}

func TestOptionalAllowlist(t *testing.T) {
	a := NewOptionalAllowlist(nil)
	assert.True(t, a.IsAllowed(99))
	assert.True(t, a.IsAllowedString("not-a-number"))

	a.Reload([]int64{1096638355995566110})
	assert.True(t, a.IsAllowedString("1096638355995566110"))
	assert.False(t, a.IsAllowedString("42"))
	assert.False(t, a.IsAllowedString("not-a-number"))
}
