package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docmirror"
	"golang.org/x/net/html"
)

// Ensure LoggingConverter implements docmirror.Converter.
var _ docmirror.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   docmirror.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next docmirror.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert logs the size of the rendered Markdown and the number of links
// discovered, and delegates to the wrapped converter.
func (c *LoggingConverter) Convert(content *html.Node, pageURL string, visited docmirror.VisitedSet) (conv *docmirror.Conversion, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", pageURL, "duration", time.Since(begin)}
		if conv != nil {
			attrs = append(attrs, "bytes", len(conv.Markdown), "links", len(conv.Links))
		}
		if err != nil {
			attrs = append(attrs, "code", docmirror.ErrorCode(err), "err", err)
		}
		c.logger.Debug("convert", attrs...)
	}(time.Now())
	return c.next.Convert(content, pageURL, visited)
}
