package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher     docmirror.Fetcher
	Extractor   docmirror.ContentExtractor
	Converter   docmirror.Converter
	Writer      docmirror.Writer
	RateLimiter docmirror.DomainLimiter

	// Committer, if set, is committed after a successful run and aborted
	// after a failed one.
	Committer docmirror.Committer

	// Allow, if set, filters discovered URLs before they are scheduled.
	Allow func(url string) bool
}

// MirrorCmd mirrors one documentation site.
type MirrorCmd struct {
	URL         string
	Rounds      int
	RetryDelays []time.Duration
	Lenient     bool
}

// Run executes the mirror command.
func (c *MirrorCmd) Run(deps *Dependencies) error {
	var opts []crawl.FrontierOption
	if deps.Allow != nil {
		opts = append(opts, crawl.WithAllow(deps.Allow))
	}

	sess := crawl.NewSession(c.URL, opts...)
	sess.Rounds = c.Rounds
	sess.Fetcher = deps.Fetcher
	sess.Extractor = deps.Extractor
	sess.Converter = deps.Converter
	sess.Writer = deps.Writer
	sess.RateLimiter = deps.RateLimiter
	sess.RetryDelays = c.RetryDelays
	sess.Lenient = c.Lenient
	sess.Logger = deps.Logger

	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressVisiting:
			fmt.Fprintf(deps.Stdout, "url: %s\n", e.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "skip: %s: %s\n", e.URL, docmirror.ErrorMessage(e.Error))
		}
	}

	result, err := sess.Run(deps.Ctx, progress)
	if err != nil {
		if deps.Committer != nil {
			_ = deps.Committer.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmirror.ErrorMessage(err))
		return err
	}

	if deps.Committer != nil {
		if err := deps.Committer.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "finish: %s\n", crawl.FormatResult(result))
	return nil
}
