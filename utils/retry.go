package utils

import (
	"context"
	"fmt"
	"time"
)

type RetryableFunc[T any] func() (T, error)

// RetryWrapper executes a retryable function and retries on error with
// the delays configured in Server.RetryFrequencySec. Used for the
// startup pings against Redis and MongoDB, which may come up after us.
func RetryWrapper[T any](ctx context.Context, fn RetryableFunc[T]) (ret T, err error) {

	ret, err = fn()
	if err == nil {
		return ret, nil // Success
	}

	for _, delaySeconds := range Cfg.Server.RetryFrequencySec {
		select {
		case <-ctx.Done():
			return ret, ctx.Err()
		case <-time.After(time.Duration(delaySeconds) * time.Second):
			// Retry the function
			ret, err = fn()
			if err == nil {
				return ret, nil
			}
		}
	}

	return ret, fmt.Errorf("all retries failed, last error: %w", err)
}
