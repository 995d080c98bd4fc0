// Package markdown renders documentation DOM subtrees as Markdown.
//
// Rendering is a recursive walk over golang.org/x/net/html nodes. Every
// element is dispatched by tag name through an explicit table; a tag with no
// entry stops the conversion with a *docmirror.UnrecognizedTagError.
package markdown

import (
	"strings"

	"github.com/fwojciec/docmirror"
	"golang.org/x/net/html"
)

// navTablePosition is the child index of the content root that holds a
// page's navigation table, when it has one.
const navTablePosition = 1

// Ensure Converter implements docmirror.Converter at compile time.
var _ docmirror.Converter = (*Converter)(nil)

// Converter renders content roots as Markdown and reports the in-scope links
// it meets. A Converter holds no per-page state and can be reused.
type Converter struct {
	// BaseURL is the mirror's scope. Only links with this prefix are reported.
	BaseURL string

	// SkipNavTable drops a table found at child position 1 of the content root.
	SkipNavTable bool
}

// NewConverter creates a Converter scoped to baseURL with navigation-table
// suppression enabled.
func NewConverter(baseURL string) *Converter {
	return &Converter{
		BaseURL:      baseURL,
		SkipNavTable: true,
	}
}

// Convert renders the children of content in document order.
func (c *Converter) Convert(content *html.Node, pageURL string, visited docmirror.VisitedSet) (*docmirror.Conversion, error) {
	if content == nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "nil content node")
	}

	r := &renderer{
		baseURL: c.BaseURL,
		pageURL: pageURL,
		visited: visited,
		found:   make(map[string]bool),
	}

	var b strings.Builder
	pos := 0
	for child := content.FirstChild; child != nil; child = child.NextSibling {
		if c.SkipNavTable && pos == navTablePosition && isElement(child, "table") {
			pos++
			continue
		}
		pos++

		s, err := r.render(child)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}

	return &docmirror.Conversion{
		Markdown: b.String(),
		Links:    r.links,
	}, nil
}

// renderer carries the state of a single conversion.
type renderer struct {
	baseURL string
	pageURL string
	visited docmirror.VisitedSet

	// depth is the current <ul> nesting level.
	depth int

	links []string
	found map[string]bool
}

func (r *renderer) render(n *html.Node) (string, error) {
	switch n.Type {
	case html.TextNode:
		return renderText(n), nil
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		fn, ok := renderers[tag]
		if !ok {
			return "", &docmirror.UnrecognizedTagError{Tag: tag}
		}
		return fn(r, n)
	default:
		// Comments, doctypes and raw nodes carry no content.
		return "", nil
	}
}

// children renders and concatenates all children of n.
func (r *renderer) children(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s, err := r.render(c)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// discover records href as a new link if it is in scope and unseen.
func (r *renderer) discover(href string) {
	if !docmirror.InScope(r.baseURL, href) {
		return
	}
	if r.visited != nil && r.visited.Seen(href) {
		return
	}
	if r.found[href] {
		return
	}
	r.found[href] = true
	r.links = append(r.links, href)
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
