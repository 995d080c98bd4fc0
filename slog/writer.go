package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmirror"
)

// Ensure LoggingWriter implements docmirror.Writer.
var _ docmirror.Writer = (*LoggingWriter)(nil)

// LoggingWriter wraps a Writer with logging.
type LoggingWriter struct {
	next   docmirror.Writer
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next docmirror.Writer, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// Write logs the output path and size and delegates to the wrapped writer.
func (w *LoggingWriter) Write(ctx context.Context, path string, text string) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"path", path,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Write(ctx, path, text)
}
