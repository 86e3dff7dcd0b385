package loadable

import (
	"context"
	"errors"
)

var (
	// ErrTryAgain is returned by an attempt passed to [Retry] to request
	// another attempt.
	ErrTryAgain = errors.New("loadable: try again")

	// ErrTooManyAttempts is returned by [Retry] once every attempt has
	// requested another one.
	ErrTooManyAttempts = errors.New("loadable: too many attempts")
)

// Retry runs f up to attempts times, as long as it keeps returning
// [ErrTryAgain]. Any other outcome of f, nil included, is returned verbatim.
// Once the attempts are used up, Retry returns [ErrTooManyAttempts].
//
// Retry is a plain helper, orthogonal to the supervisor; ctx is checked
// between attempts, and backoff is the caller's business.
func Retry(ctx context.Context, attempts int, f func(ctx context.Context, attempt int) error) error {
	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f(ctx, i); !errors.Is(err, ErrTryAgain) {
			return err
		}
	}
	return ErrTooManyAttempts
}
