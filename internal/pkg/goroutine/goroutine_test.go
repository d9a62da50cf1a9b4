package goroutine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CollectsErrors(t *testing.T) {
	m := NewManager(4)
	boom := errors.New("boom")

	m.Go(context.Background(), "ok", func(context.Context) error { return nil })
	m.Go(context.Background(), "fail", func(context.Context) error { return boom })
	m.Go(context.Background(), "panic", func(context.Context) error { panic("oops") })

	err := m.Wait()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "goroutine panic: panic: oops")
	assert.Equal(t, 0, m.Active())
}

func TestManager_LimitReached(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	m.Go(context.Background(), "blocker", func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started
	assert.Equal(t, 1, m.Active())

	m.Go(context.Background(), "dropped", func(context.Context) error { return nil })
	close(release)

	assert.ErrorIs(t, m.Wait(), ErrLimitReached)
}

func TestManager_ClosedSkipsTasks(t *testing.T) {
	m := NewManager(1)
	require.NoError(t, m.Wait())

	ran := false
	m.Go(context.Background(), "late", func(context.Context) error { ran = true; return nil })
	assert.False(t, ran)
}

func TestManager_Nil(t *testing.T) {
	var m *Manager
	m.Go(context.Background(), "x", func(context.Context) error { return nil })
	assert.NoError(t, m.Wait())
	assert.Equal(t, 0, m.Active())
}
