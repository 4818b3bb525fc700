package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinKinloch/sadm/internal/application"
)

func TestRunSupervised_RestartsUntilNilReturn(t *testing.T) {
	const backoff = 20 * time.Millisecond

	invocations := 0
	start := time.Now()
	application.RunSupervised(context.Background(), "flaky", backoff, func(context.Context) error {
		invocations++
		if invocations <= 2 {
			return errors.New("transient defect")
		}
		return nil
	})

	assert.Equal(t, 3, invocations, "two failures then a clean return means exactly three invocations")
	assert.GreaterOrEqual(t, time.Since(start), 2*backoff, "a fixed backoff must separate failed attempts")
}

func TestRunSupervised_NilReturnStopsImmediately(t *testing.T) {
	invocations := 0
	application.RunSupervised(context.Background(), "clean", time.Second, func(context.Context) error {
		invocations++
		return nil
	})

	assert.Equal(t, 1, invocations)
}

func TestRunSupervised_RecoversPanics(t *testing.T) {
	invocations := 0
	application.RunSupervised(context.Background(), "panicky", 5*time.Millisecond, func(context.Context) error {
		invocations++
		if invocations == 1 {
			panic("boom")
		}
		return nil
	})

	assert.Equal(t, 2, invocations, "a panic must be treated as a failure and restarted")
}

func TestRunSupervised_ContextCancelStopsRestarts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		application.RunSupervised(ctx, "doomed", 10*time.Millisecond, func(context.Context) error {
			return errors.New("always failing")
		})
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunSupervised did not stop after context cancellation")
	}
}

func TestRunPeriodic_RunsImmediatelyThenOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		application.RunPeriodic(ctx, "ticker", 10*time.Millisecond, func(context.Context) error {
			ran <- struct{}{}
			return nil
		})
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatalf("invocation %d never happened", i+1)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunPeriodic did not stop after context cancellation")
	}
}

func TestRunPeriodic_ErrorsDoNotStopSchedule(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{}, 16)
	go func() {
		application.RunPeriodic(ctx, "failing-ticker", 10*time.Millisecond, func(context.Context) error {
			ran <- struct{}{}
			return errors.New("prune failed")
		})
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatalf("invocation %d never happened after errors", i+1)
		}
	}
}

func TestRunPeriodic_PanicsDoNotStopSchedule(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{}, 16)
	go func() {
		application.RunPeriodic(ctx, "panicking-ticker", 10*time.Millisecond, func(context.Context) error {
			ran <- struct{}{}
			panic("boom")
		})
	}()

	require.Eventually(t, func() bool { return len(ran) >= 2 }, 5*time.Second, 5*time.Millisecond)
}
