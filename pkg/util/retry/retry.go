// Package retry provides a bounded retry combinator for operations that can
// fail with a recoverable conflict, such as the count-then-insert race when
// allocating ticket IDs.
package retry

import (
	"context"
	"errors"
)

// ErrExhausted is returned when every attempt failed with a retryable error.
var ErrExhausted = errors.New("retry attempts exhausted")

// Do runs attempt up to maxAttempts times. A nil return stops immediately.
// An error for which retryable reports false aborts and is returned as-is;
// retryable errors consume an attempt and the last one is wrapped together
// with ErrExhausted when the budget runs out.
func Do(ctx context.Context, maxAttempts int, attempt func(ctx context.Context) error, retryable func(error) bool) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		lastErr = err
	}
	return errors.Join(ErrExhausted, lastErr)
}
