// Package slog provides log/slog decorators for docmirror services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmirror"
)

// Ensure LoggingFetcher implements docmirror.Fetcher.
var _ docmirror.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   docmirror.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docmirror.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL, response size and duration and delegates to the
// wrapped fetcher. Failures are logged at warn level with their error code.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
		if err != nil {
			attrs = append(attrs, "code", docmirror.ErrorCode(err), "err", err)
			f.logger.Warn("fetch", attrs...)
			return
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
