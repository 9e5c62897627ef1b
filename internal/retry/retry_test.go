package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testPolicy = Policy{
	MaxAttempts: 4,
	BaseDelay:   time.Millisecond,
	MaxDelay:    5 * time.Millisecond,
}

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testPolicy, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testPolicy, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoStopsAfterMaxAttempts(t *testing.T) {
	errAlways := errors.New("always failing")
	calls := 0
	err := Do(context.Background(), testPolicy, func() error {
		calls++
		return errAlways
	})
	if !errors.Is(err, errAlways) {
		t.Fatalf("err = %v, want the operation's error", err)
	}
	if calls != int(testPolicy.MaxAttempts) {
		t.Errorf("calls = %d, want %d", calls, testPolicy.MaxAttempts)
	}
}

func TestDoClassifiedStopsOnPermanentError(t *testing.T) {
	errPermanent := errors.New("bad request")
	calls := 0
	err := DoClassified(context.Background(), testPolicy,
		func(err error) bool { return !errors.Is(err, errPermanent) },
		func() error {
			calls++
			return errPermanent
		})
	if !errors.Is(err, errPermanent) {
		t.Fatalf("err = %v, want permanent error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries on permanent errors)", calls)
	}
}

func TestDoAbortsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 10, BaseDelay: 10 * time.Millisecond, MaxDelay: 50 * time.Millisecond}, func() error {
		calls++
		cancel()
		return errors.New("failing while cancelled")
	})
	if err == nil {
		t.Fatal("Do succeeded despite cancellation")
	}
	if calls > 2 {
		t.Errorf("calls = %d, want retries to stop after cancel", calls)
	}
}

func TestZeroAttemptsStillRunsOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
