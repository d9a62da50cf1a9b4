package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Exec(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(func() time.Time { return now })
	ctx := context.Background()

	calls := 0
	run := func(context.Context) error { calls++; return nil }

	require.NoError(t, m.Exec(ctx, "k", run))
	assert.ErrorIs(t, m.Exec(ctx, "k", run), ErrAlreadyCompleted)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Hour)
	require.NoError(t, m.Exec(ctx, "k", run))
	assert.Equal(t, 2, calls)
}

func TestMemory_ExecFailure(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.Exec(ctx, "k", func(context.Context) error { return boom }, WithStateTTL(time.Minute))
	assert.ErrorIs(t, err, boom)

	err = m.Exec(ctx, "k", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrAlreadyFailed)
}

func TestMemory_InProgress(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	state, err := m.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)

	err = m.Exec(ctx, "k", func(context.Context) error { return nil }, WithLockDuration(time.Second))
	assert.ErrorIs(t, err, ErrAlreadyInProgress)
}

func TestParseState(t *testing.T) {
	s, err := parseState("completed")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s)

	_, err = parseState("weird")
	assert.ErrorIs(t, err, ErrInvalidState)
}
