package futures

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go"

	"github.com/veiloq/mexc-futures/pkg/logging"
	"github.com/veiloq/mexc-futures/pkg/ratelimit"
)

// Retrier is an explicit, opt-in retry and pacing policy for SDK calls.
// The client itself never retries, because silently resubmitting a trading
// order is worse than failing loudly; wrapping a call in a Retrier is the
// caller stating that the operation is safe to repeat.
//
// Only retriable failures are repeated: NetworkError with backoff, and
// RateLimitError after waiting out its RetryAfter. Authentication,
// validation, and API errors fail immediately.
//
//	r := futures.Retrier{Attempts: 4, Delay: 500 * time.Millisecond}
//	var ticker *futures.Response[futures.Ticker]
//	err := r.Do(ctx, func(ctx context.Context) error {
//		var err error
//		ticker, err = client.Ticker(ctx, "BTC_USDT")
//		return err
//	})
type Retrier struct {
	// Attempts is the total number of tries, including the first.
	// Zero means DefaultAttempts.
	Attempts uint

	// Delay is the base delay between attempts. Zero means DefaultDelay.
	Delay time.Duration

	// Limiter, when set, paces every attempt. Use it to stay under the
	// exchange's request quotas instead of reacting to 429s.
	Limiter ratelimit.RateLimiter

	// Logger, when set, records each retry at WARN level.
	Logger logging.Logger
}

// Retrier defaults.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// Do runs op until it succeeds, fails with a non-retriable error, or the
// attempts are exhausted. The last error is returned unchanged, so it still
// matches the taxonomy with errors.As.
func (r Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := r.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}
	delay := r.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	return retry.Do(
		func() error {
			if r.Limiter != nil {
				if err := r.Limiter.Wait(ctx); err != nil {
					return retry.Unrecoverable(err)
				}
			}

			err := op(ctx)

			var rlErr *RateLimitError
			if errors.As(err, &rlErr) {
				if waitErr := sleep(ctx, rlErr.RetryAfter); waitErr != nil {
					return retry.Unrecoverable(waitErr)
				}
			}
			return err
		},
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(Retriable),
		retry.OnRetry(func(n uint, err error) {
			if r.Logger != nil {
				r.Logger.Warn("retrying request",
					logging.Int("attempt", int(n)+1),
					logging.Error(err),
				)
			}
		}),
	)
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
