package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemory()

	// Act
	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	payload := []byte("<account/>")
	require.NoError(t, c.Set(ctx, Entry{Key: "k", Payload: payload, ExpiresAt: now.Add(5 * time.Minute)}))
	payload[0] = 'X'

	got, found, err := c.Get(ctx, "k")

	// Assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "<account/>", string(got.Payload))
	assert.True(t, got.Fresh(now.Add(4*time.Minute)))
	assert.False(t, got.Fresh(now.Add(5*time.Minute)))
}

func TestMemory_SetSupersedes(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	exp := time.Now().Add(time.Minute)

	require.NoError(t, c.Set(ctx, Entry{Key: "k", Payload: []byte("old"), ExpiresAt: exp}))
	require.NoError(t, c.Set(ctx, Entry{Key: "k", Payload: []byte("new"), ExpiresAt: exp.Add(time.Minute)}))

	got, _, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got.Payload))
	assert.Equal(t, exp.Add(time.Minute), got.ExpiresAt)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewMemory()
	_, _, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Set(ctx, Entry{Key: "k"}), context.Canceled)
}
