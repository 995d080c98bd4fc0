// Package crawl drives a documentation mirror run: a bounded number of
// rounds, each dequeuing one URL from a FIFO frontier and taking it through
// fetch, content extraction, Markdown conversion and persistence.
package crawl

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/docmirror"
	"github.com/google/uuid"
)

// DefaultRounds is the number of dequeue attempts a run makes. A run stops
// after this many rounds even when the frontier still holds URLs, and rounds
// that find the frontier empty do nothing.
const DefaultRounds = 5

// Session is one mirror run. It owns its frontier, which is seeded with the
// base URL and discarded with the session.
type Session struct {
	// ID identifies the run in log records.
	ID string

	// BaseURL is the root page and the scope prefix of the mirror.
	BaseURL string

	// Rounds is the number of dequeue attempts. Defaults to DefaultRounds.
	Rounds int

	Fetcher   docmirror.Fetcher
	Extractor docmirror.ContentExtractor
	Converter docmirror.Converter
	Writer    docmirror.Writer

	// RateLimiter, if set, is waited on before every fetch.
	RateLimiter docmirror.DomainLimiter

	// RetryDelays are the pauses between fetch attempts. Empty means a
	// single attempt per URL.
	RetryDelays []time.Duration

	// Lenient skips pages with unrecognized tags instead of aborting the run.
	Lenient bool

	Logger *slog.Logger

	frontier *Frontier
}

// NewSession creates a Session for baseURL with a frontier holding only
// baseURL. Options configure the frontier.
func NewSession(baseURL string, opts ...FrontierOption) *Session {
	frontier := NewFrontier(baseURL, opts...)
	frontier.Enqueue(baseURL)

	return &Session{
		ID:       uuid.NewString(),
		BaseURL:  baseURL,
		Rounds:   DefaultRounds,
		frontier: frontier,
	}
}

// Frontier returns the session's frontier.
func (s *Session) Frontier() *Frontier {
	return s.frontier
}

// Result holds the outcome of a run.
type Result struct {
	Saved   int
	Failed  int
	Idle    int // rounds that found the frontier empty
	Bytes   int
	Pending int // URLs left in the frontier when the rounds ran out
	Paths   []string
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type  ProgressType
	Round int
	Total int
	URL   string
	Path  string
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressVisiting // a URL was dequeued and is about to be fetched
	ProgressCompleted
	ProgressFailed
	ProgressIdle
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run performs Rounds dequeue attempts.
//
// Pages that cannot be fetched or have no content root are counted as failed
// and skipped. An unrecognized tag aborts the run unless Lenient is set.
// Write failures and context cancellation abort the run. The returned Result
// is non-nil whenever validation passed, also alongside an error.
func (s *Session) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	rounds := s.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	logger := s.logger().With("run", s.ID)
	notify := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}

	logger.Info("run", "base", s.BaseURL, "rounds", rounds)
	notify(ProgressEvent{Type: ProgressStarted, Total: rounds})

	result := &Result{}
	for round := 1; round <= rounds; round++ {
		if err := ctx.Err(); err != nil {
			result.Pending = s.frontier.Len()
			return result, err
		}

		link, ok := s.frontier.Dequeue()
		if !ok {
			result.Idle++
			logger.Debug("round", "round", round, "idle", true)
			notify(ProgressEvent{Type: ProgressIdle, Round: round, Total: rounds})
			continue
		}

		logger.Info("url", "round", round, "url", link)
		notify(ProgressEvent{Type: ProgressVisiting, Round: round, Total: rounds, URL: link})
		page, err := s.process(ctx, logger, link)
		if err != nil {
			notify(ProgressEvent{Type: ProgressFailed, Round: round, Total: rounds, URL: link, Error: err})
			if s.fatal(err) {
				result.Pending = s.frontier.Len()
				return result, err
			}
			result.Failed++
			logger.Warn("skip", "url", link, "code", docmirror.ErrorCode(err), "err", err)
			continue
		}

		result.Saved++
		result.Bytes += page.bytes
		result.Paths = append(result.Paths, page.path)
		notify(ProgressEvent{Type: ProgressCompleted, Round: round, Total: rounds, URL: link, Path: page.path})
	}

	result.Pending = s.frontier.Len()
	notify(ProgressEvent{Type: ProgressFinished, Round: rounds, Total: rounds})
	logger.Info("finish",
		"saved", result.Saved,
		"failed", result.Failed,
		"idle", result.Idle,
		"pending", result.Pending,
	)
	return result, nil
}

// savedPage describes a persisted page.
type savedPage struct {
	path  string
	bytes int
}

// process takes one URL from fetch to persistence.
func (s *Session) process(ctx context.Context, logger *slog.Logger, link string) (*savedPage, error) {
	html, err := s.fetch(ctx, logger, link)
	if err != nil {
		return nil, err
	}

	content, err := s.Extractor.Extract(html, link)
	if err != nil {
		return nil, err
	}

	conv, err := s.Converter.Convert(content, link, s.frontier)
	if err != nil {
		return nil, err
	}

	enqueued := 0
	for _, l := range conv.Links {
		if s.frontier.Enqueue(l) {
			enqueued++
		}
	}

	path := docmirror.OutputPath(s.BaseURL, link)
	text := conv.Text()
	if err := s.Writer.Write(ctx, path, text); err != nil {
		return nil, err
	}

	logger.Debug("saved",
		"url", link,
		"path", path,
		"bytes", len(text),
		"hash", ComputeHash(text),
		"links", len(conv.Links),
		"enqueued", enqueued,
	)
	return &savedPage{path: path, bytes: len(text)}, nil
}

// fetch waits on the rate limiter and fetches link with the configured
// retries. Failures other than cancellation are reported as EFETCH.
func (s *Session) fetch(ctx context.Context, logger *slog.Logger, link string) (string, error) {
	if s.RateLimiter != nil {
		u, err := url.Parse(link)
		if err != nil {
			return "", docmirror.Errorf(docmirror.EINVALID, "invalid URL %q: %v", link, err)
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	html, err := FetchWithRetryDelays(ctx, link, s.Fetcher.Fetch, logger, s.RetryDelays)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if docmirror.ErrorCode(err) == docmirror.EFETCH {
			return "", err
		}
		return "", docmirror.Errorf(docmirror.EFETCH, "fetch %s: %v", link, err)
	}
	return html, nil
}

// fatal reports whether err must end the run rather than skip the page.
func (s *Session) fatal(err error) bool {
	var tagErr *docmirror.UnrecognizedTagError
	if errors.As(err, &tagErr) {
		return !s.Lenient
	}
	switch docmirror.ErrorCode(err) {
	case docmirror.EFETCH, docmirror.ENOCONTENT, docmirror.EINVALID:
		return false
	}
	return true
}

func (s *Session) validate() error {
	if !docmirror.IsAbsolute(s.BaseURL) {
		return docmirror.Errorf(docmirror.EINVALID, "base URL %q must be absolute", s.BaseURL)
	}
	if s.frontier == nil {
		return docmirror.Errorf(docmirror.EINVALID, "session must be created with NewSession")
	}
	if s.Fetcher == nil || s.Extractor == nil || s.Converter == nil || s.Writer == nil {
		return docmirror.Errorf(docmirror.EINVALID, "session requires a fetcher, extractor, converter and writer")
	}
	return nil
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
