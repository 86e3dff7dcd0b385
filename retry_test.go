package loadable_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stateloop/loadable"
)

func TestRetryFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := loadable.Retry(context.Background(), 3, func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryEventuallySucceeds(t *testing.T) {
	var attempts []int
	err := loadable.Retry(context.Background(), 5, func(ctx context.Context, attempt int) error {
		attempts = append(attempts, attempt)
		if attempt < 2 {
			return loadable.ErrTryAgain
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, attempts)
}

func TestRetryReturnsOtherErrorsVerbatim(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := loadable.Retry(context.Background(), 5, func(ctx context.Context, attempt int) error {
		calls++
		return boom
	})
	assert.Same(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := loadable.Retry(context.Background(), 3, func(ctx context.Context, attempt int) error {
		calls++
		return loadable.ErrTryAgain
	})
	assert.ErrorIs(t, err, loadable.ErrTooManyAttempts)
	assert.Equal(t, 3, calls)
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := loadable.Retry(ctx, 5, func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return loadable.ErrTryAgain
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryWrappedTryAgain(t *testing.T) {
	err := loadable.Retry(context.Background(), 2, func(ctx context.Context, attempt int) error {
		return fmt.Errorf("fetch: %w", loadable.ErrTryAgain)
	})
	assert.ErrorIs(t, err, loadable.ErrTooManyAttempts)
}
