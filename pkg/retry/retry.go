package retry

import (
	"context"
	"fmt"
	"time"
)

// Classifier reports whether an error is worth retrying.
type Classifier func(error) bool

// Policy configures the backoff loop.
type Policy struct {
	MaxAttempts  int           // Total attempts including the first
	InitialDelay time.Duration // Delay before the second attempt; doubles each retry
	Retryable    Classifier    // nil means retry everything
}

// DefaultPolicy returns the policy used for transcription calls.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
	}
}

// Do runs fn up to policy.MaxAttempts times with exponential backoff between
// attempts. Errors the classifier rejects propagate immediately. When all
// attempts are exhausted the last error is returned.
func Do(ctx context.Context, policy Policy, fn func(ctx context.Context) error) error {
	if policy.MaxAttempts < 1 {
		return fmt.Errorf("retry: max attempts must be at least 1, got %d", policy.MaxAttempts)
	}

	delay := policy.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if policy.Retryable != nil && !policy.Retryable(lastErr) {
			return lastErr
		}

		if attempt == policy.MaxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return fmt.Errorf("after %d attempts: %w", policy.MaxAttempts, lastErr)
}
