package snapshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesnap"
)

// DefaultRetryDelays returns the backoff delays used for n retries:
// 1s, 2s, 4s and so on, doubling each time.
func DefaultRetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// fetchWithRetry attempts to fetch a URL once plus one retry per delay.
// Invalid-input errors are not retried.
func fetchWithRetry(ctx context.Context, fetcher pagesnap.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (*pagesnap.Page, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		// Don't retry after the last attempt or on errors a retry cannot fix
		if attempt >= maxAttempts-1 || pagesnap.ErrorCode(err) == pagesnap.EINVALID {
			break
		}

		// Check context before sleeping
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		logger.Warn("retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"err", err,
		)

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
