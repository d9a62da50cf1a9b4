// Package goroutine runs named background tasks under a shared concurrency cap.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/shandysiswandi/elasticmail/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrLimitReached is recorded when a task is dropped because every slot is busy.
var ErrLimitReached = errors.New("goroutine: limit reached")

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// Errors returned by tasks are collected and reported by Wait.
type Manager struct {
	mu     sync.Mutex
	errs   []error
	wg     sync.WaitGroup
	sema   chan struct{}
	active atomic.Int64

	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go schedules f under name. The task is skipped with a warning when the
// manager is closed or already at its limit.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping task", "task", name)
		return
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached, skipping task", "task", name)
		g.record(fmt.Errorf("%w: %s", ErrLimitReached, name))
		return
	}

	g.active.Add(1)
	g.wg.Go(func() {
		defer func() {
			<-g.sema
			g.active.Add(-1)

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "panic", rvr, "stack", paths)
				} else {
					slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "panic", rvr, "stack", string(stack))
				}
				g.record(fmt.Errorf("goroutine %s: panic: %v", name, rvr))
			}
		}()

		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "goroutine canceled before start", "task", name, "because", err)
			return
		}

		if err := f(ctx); err != nil && !errors.Is(err, context.Canceled) {
			g.record(fmt.Errorf("goroutine %s: %w", name, err))
		}
	})
}

// Active reports how many tasks are currently running.
func (g *Manager) Active() int {
	if g == nil {
		return 0
	}
	return int(g.active.Load())
}

// Wait closes the manager, blocks until all tasks finish and returns the collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}
