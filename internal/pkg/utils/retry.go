package utils

import (
	"context"
	"time"
)

// Retry defaults used around single HTTP calls.
const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 1 * time.Second
)

// Retry runs fn up to attempts times with a fixed delay between attempts,
// returning the first success or the last error. The context cancels the
// wait between attempts.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
