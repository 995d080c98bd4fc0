package docmirror

import (
	"strings"

	"golang.org/x/net/html"
)

// Blank is the set of bytes trimmed around rendered Markdown. Unicode spaces
// such as U+00A0 are content and survive trimming.
const Blank = " \t\n\r\x00\x0b"

// Conversion is the outcome of rendering one content root.
type Conversion struct {
	// Markdown is the rendered text, untrimmed.
	Markdown string

	// Links holds the in-scope, not yet visited URLs found while rendering,
	// in document order and without duplicates.
	Links []string
}

// Text returns the Markdown with surrounding blank bytes removed, as it is
// persisted.
func (c *Conversion) Text() string {
	return strings.Trim(c.Markdown, Blank)
}

// VisitedSet reports whether a URL has already been scheduled.
type VisitedSet interface {
	Seen(url string) bool
}

// Converter renders a DOM subtree as Markdown.
type Converter interface {
	// Convert renders the children of content. Relative hrefs are resolved
	// against pageURL. Links already in visited are not reported; visited
	// may be nil.
	Convert(content *html.Node, pageURL string, visited VisitedSet) (*Conversion, error)
}
