package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("secret")

	sum, err := h.Hash("token")
	require.NoError(t, err)
	assert.Len(t, sum, 64)

	assert.True(t, h.Verify(string(sum), "token"))
	assert.False(t, h.Verify(string(sum), "other"))
	assert.False(t, NewHMACSHA256("else").Verify(string(sum), "token"))
}

func TestHMACSHA256_Key(t *testing.T) {
	h := NewHMACSHA256("secret")

	assert.Equal(t, h.Key("a", "b"), h.Key("a", "b"))
	assert.NotEqual(t, h.Key("ab", "c"), h.Key("a", "bc"))
}
