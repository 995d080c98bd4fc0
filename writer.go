package docmirror

import "context"

// Writer persists rendered pages.
type Writer interface {
	// Write stores text under the relative output path.
	Write(ctx context.Context, path string, text string) error
}

// Committer is implemented by writers with transactional semantics.
// Commit makes written pages permanent; Abort discards them.
type Committer interface {
	Commit() error
	Abort() error
}
