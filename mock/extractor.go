package mock

import (
	"github.com/fwojciec/docmirror"
	"golang.org/x/net/html"
)

var _ docmirror.ContentExtractor = (*Extractor)(nil)

// Extractor is a mock implementation of docmirror.ContentExtractor.
type Extractor struct {
	ExtractFn func(rawHTML string, pageURL string) (*html.Node, error)
}

func (e *Extractor) Extract(rawHTML string, pageURL string) (*html.Node, error) {
	return e.ExtractFn(rawHTML, pageURL)
}
