package docmirror

import "golang.org/x/net/html"

// ContentID is the element id of a page's content root.
const ContentID = "content"

// ContentExtractor locates the content root of a fetched page.
type ContentExtractor interface {
	// Extract parses raw HTML leniently, rewrites every anchor href to an
	// absolute URL relative to pageURL and returns the content root element.
	// Returns ENOCONTENT if the page has no content root.
	Extract(rawHTML string, pageURL string) (*html.Node, error)
}
