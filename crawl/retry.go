package crawl

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays used by --retries: 1s, 2s, 4s, ...
// A non-positive retries yields no delays.
func DefaultRetryDelays(retries int) []time.Duration {
	retries = max(retries, 0)
	delays := make([]time.Duration, 0, retries)
	d := time.Second
	for range retries {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays calls fetch once, then once more after each delay for
// as long as it keeps failing. Empty delays means a single attempt.
// The logger, if provided, receives a record for each retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("retry",
				"url", url,
				"attempt", attempt+2,
				"delay", delays[attempt],
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
