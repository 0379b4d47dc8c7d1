package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/harvest"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*harvest.RawDocument, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DelayFunc returns how long to wait after the given failed attempt.
// Attempts are numbered from 1.
type DelayFunc func(attempt int) time.Duration

// FixedDelay waits d between every attempt.
func FixedDelay(d time.Duration) DelayFunc {
	return func(int) time.Duration { return d }
}

// ExponentialDelay doubles base after every attempt, capped at limit.
// A zero limit means no cap.
func ExponentialDelay(base, limit time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
			if limit > 0 && d >= limit {
				return limit
			}
		}
		if limit > 0 && d > limit {
			return limit
		}
		return d
	}
}

// RetryPolicy controls how often and how patiently a fetch is retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	Delay       DelayFunc
}

// Defaults used by DefaultRetryPolicy.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

// DefaultRetryPolicy returns 3 attempts with a fixed 2s pause between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       FixedDelay(DefaultRetryDelay),
	}
}

// NoDelayPolicy returns a policy with the given attempts and no waiting.
// This is useful for testing without waiting for real delays.
func NoDelayPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, Delay: FixedDelay(0)}
}

// FetchWithRetry calls fetch until it succeeds or the policy's attempts are
// exhausted, returning the last error in the latter case. Every fetch error
// is retried. The logger function, if provided, is called for each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, policy RetryPolicy, logger LogFunc) (*harvest.RawDocument, error) {
	maxAttempts := max(policy.MaxAttempts, 1)
	delay := policy.Delay
	if delay == nil {
		delay = FixedDelay(0)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		doc, err := fetch(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logger != nil {
			logger("retry %s (attempt %d/%d): %v", url, attempt+1, maxAttempts, err)
		}

		d := delay(attempt)
		if d <= 0 {
			continue
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}
