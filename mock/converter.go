package mock

import (
	"github.com/fwojciec/docmirror"
	"golang.org/x/net/html"
)

var _ docmirror.Converter = (*Converter)(nil)

// Converter is a mock implementation of docmirror.Converter.
type Converter struct {
	ConvertFn func(content *html.Node, pageURL string, visited docmirror.VisitedSet) (*docmirror.Conversion, error)
}

func (c *Converter) Convert(content *html.Node, pageURL string, visited docmirror.VisitedSet) (*docmirror.Conversion, error) {
	return c.ConvertFn(content, pageURL, visited)
}
