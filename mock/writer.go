package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.Writer = (*Writer)(nil)

// Writer is a mock implementation of docmirror.Writer.
type Writer struct {
	WriteFn func(ctx context.Context, path string, text string) error
}

func (w *Writer) Write(ctx context.Context, path string, text string) error {
	return w.WriteFn(ctx, path, text)
}

var _ docmirror.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docmirror.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ docmirror.Committer = (*Committer)(nil)

// Committer is a mock implementation of docmirror.Committer.
type Committer struct {
	CommitFn func() error
	AbortFn  func() error
}

func (c *Committer) Commit() error {
	return c.CommitFn()
}

func (c *Committer) Abort() error {
	return c.AbortFn()
}
