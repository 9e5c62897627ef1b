// Package retry is the single retry-with-bounded-exponential-backoff
// helper shared by the hardware port and the automation reporter.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retried operation: at most MaxAttempts calls, delays
// starting at BaseDelay and doubling up to MaxDelay.
type Policy struct {
	MaxAttempts uint64
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Do runs op under the policy, treating every error as transient.
func Do(ctx context.Context, p Policy, op func() error) error {
	return DoClassified(ctx, p, func(error) bool { return true }, op)
}

// DoClassified runs op under the policy. retryable decides whether a
// failure is transient; a non-retryable error aborts immediately and is
// returned as-is. Context cancellation also aborts between attempts.
func DoClassified(ctx context.Context, p Policy, retryable func(error) bool, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.MaxInterval = p.MaxDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxElapsedTime = 0 // bounded by attempts, not wall clock

	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	wrapped := func() error {
		err := op()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(b, attempts-1), ctx))
}
