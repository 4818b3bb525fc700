package application

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// RunSupervised runs fn until it returns nil or the context is
// cancelled. A non-nil error, including a recovered panic, is logged
// with full context and fn is restarted after the fixed backoff. This
// is the coarse safety net above the workers' per-item error handling:
// a loop that dies from a programming defect comes back instead of
// silently ending the pipeline.
func RunSupervised(ctx context.Context, name string, backoff time.Duration, fn func(context.Context) error) {
	for {
		err := runRecover(ctx, fn)
		if err == nil {
			return
		}

		slog.Error("supervised task failed, restarting",
			"task", name,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// RunPeriodic runs fn immediately and then on every interval tick until
// the context is cancelled. Each invocation's error is logged, never
// propagated, so one bad run does not stop the schedule.
func RunPeriodic(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	run := func() {
		if err := runRecover(ctx, fn); err != nil {
			slog.Error("periodic task failed", "task", name, "error", err)
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func runRecover(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return fn(ctx)
}
