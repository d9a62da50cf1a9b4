package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
elasticemail:
  username: "user@example.com"
  queue_enabled: true
  credit_low_threshold: 2.5
app:
  cors: "http://a.test, ,http://b.test"
  hosts:
    - one
    - two
  timeout_seconds: 3
`

func TestNewViperFromBytes(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sample))
	assert.ErrorIs(t, err, ErrConfigTypeRequired)

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", cfg.GetString("elasticemail.username"))
	assert.True(t, cfg.GetBool("elasticemail.queue_enabled"))
	assert.InDelta(t, 2.5, cfg.GetFloat64("elasticemail.credit_low_threshold"), 0.0001)
	assert.Equal(t, 3*time.Second, cfg.GetSecond("app.timeout_seconds"))
	assert.Empty(t, cfg.GetString("elasticemail.missing"))
	assert.NoError(t, cfg.Close())
}

func TestViper_GetArray(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetArray("app.cors"))
	assert.Equal(t, []string{"one", "two"}, cfg.GetArray("app.hosts"))
	assert.Empty(t, cfg.GetArray("app.nothing"))
}

func TestViper_OnChange(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	calls := 0
	cfg.OnChange(func() { calls++ })
	cfg.OnChange(nil)

	cfg.Set("elasticemail.queue_enabled", false)

	assert.Equal(t, 1, calls)
	assert.False(t, cfg.GetBool("elasticemail.queue_enabled"))
}
