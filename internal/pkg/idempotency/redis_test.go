package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/elasticmail/internal/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTracker_Exec(t *testing.T) {
	client := testkit.Redis(t)
	prefix := testkit.Prefix(t)
	s := New(client, prefix)
	ctx := context.Background()

	calls := 0
	run := func(context.Context) error { calls++; return nil }

	require.NoError(t, s.Exec(ctx, "send", run, WithStateTTL(time.Minute)))
	assert.ErrorIs(t, s.Exec(ctx, "send", run), ErrAlreadyCompleted)
	assert.Equal(t, 1, calls)

	state, err := client.Get(ctx, prefix+"send").Result()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted.String(), state)

	ttl, err := client.TTL(ctx, prefix+"send").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestStateTracker_ExecFailure(t *testing.T) {
	s := New(testkit.Redis(t), testkit.Prefix(t))
	ctx := context.Background()
	boom := errors.New("boom")

	assert.ErrorIs(t, s.Exec(ctx, "send", func(context.Context) error { return boom }), boom)
	assert.ErrorIs(t, s.Exec(ctx, "send", func(context.Context) error { return nil }), ErrAlreadyFailed)
}

func TestStateTracker_InProgressUntilLockExpires(t *testing.T) {
	s := New(testkit.Redis(t), testkit.Prefix(t))
	ctx := context.Background()

	state, err := s.Acquire(ctx, "send", 200*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, StateNone, state)

	state, err = s.Acquire(ctx, "send", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, state)
	assert.ErrorIs(t, s.Exec(ctx, "send", func(context.Context) error { return nil }), ErrAlreadyInProgress)

	assert.Eventually(t, func() bool {
		return s.Exec(ctx, "send", func(context.Context) error { return nil }) == nil
	}, 3*time.Second, 50*time.Millisecond)
}

func TestStateTracker_InvalidState(t *testing.T) {
	client := testkit.Redis(t)
	prefix := testkit.Prefix(t)
	s := New(client, prefix)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, prefix+"send", "garbage", time.Minute).Err())

	state, err := s.Acquire(ctx, "send", time.Minute)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StateError, state)
}

func TestNew_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "idempotency:", New(nil, "").prefix)
}
