package loadable

import (
	"context"
	"time"
)

// withInterrupts runs f as the primary operation, racing it against a
// sequence of accumulating delays: with delays d1, d2, ..., onInterrupt is
// invoked at the cumulative times d1, d1+d2, ..., in order, as long as f is
// still in flight.
//
// If f finishes first, the remaining boundaries never fire and f's outcome
// is the result. If every boundary fires first, the schedule simply ends and
// f is still awaited. If onInterrupt returns an error at some boundary, f is
// cancelled, its outcome is discarded, and that error is the result.
//
// The primary operation and the schedule are siblings under one scope:
// cancelling ctx cancels both, and only one of the two ever determines
// the result.
func withInterrupts(ctx context.Context, delays []time.Duration, onInterrupt func(elapsed time.Duration) error, f func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res := make(chan error, 1)
	go func() {
		res <- guard(func() error { return f(ctx) })
	}()

	var elapsed time.Duration
	for _, d := range delays {
		timer := time.NewTimer(d)
		select {
		case err := <-res:
			timer.Stop()
			return err
		case <-ctx.Done():
			timer.Stop()
			return <-res
		case <-timer.C:
			elapsed += d
			if err := onInterrupt(elapsed); err != nil {
				cancel()
				<-res // Let the primary unwind; its outcome is discarded.
				return err
			}
		}
	}

	return <-res
}
