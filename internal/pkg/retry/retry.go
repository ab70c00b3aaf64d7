// Package retry implements the fixed-count, fixed-delay retry policy used for
// transient exchange and reasoning-service failures. No exponential backoff:
// bounded attempts with a constant pause keep the worst-case scan-cycle
// duration predictable.
package retry

import (
	"context"
	"time"
)

// Do runs fn up to attempts times, sleeping delay between failures. It
// returns nil on the first success, the last error once the budget is
// exhausted, and ctx.Err() if the context ends while waiting.
func Do(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
