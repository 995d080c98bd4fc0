// Package goquery implements docmirror.ContentExtractor on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docmirror"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docmirror.ContentExtractor at compile time.
var _ docmirror.ContentExtractor = (*Extractor)(nil)

// Extractor parses pages with goquery and returns their content root.
type Extractor struct {
	// ContentID is the id of the content root element.
	ContentID string
}

// NewExtractor creates an Extractor looking for docmirror.ContentID.
func NewExtractor() *Extractor {
	return &Extractor{ContentID: docmirror.ContentID}
}

// Extract parses rawHTML, rewrites every anchor href to an absolute URL
// resolved against pageURL and returns the first element whose id is
// ContentID. Malformed markup is repaired by the HTML5 parser rather than
// rejected. Returns ENOCONTENT if no such element exists.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "failed to parse HTML of %s: %v", pageURL, err)
	}

	AbsolutizeLinks(doc.Selection, pageURL)

	content := doc.Find(`[id="` + e.ContentID + `"]`).First()
	if content.Length() == 0 {
		return nil, docmirror.Errorf(docmirror.ENOCONTENT, "no #%s element in %s", e.ContentID, pageURL)
	}
	return content.Get(0), nil
}

// AbsolutizeLinks rewrites the href of every anchor under sel with
// docmirror.Absolutize. Hrefs that cannot be resolved are left as they are.
func AbsolutizeLinks(sel *goquery.Selection, pageURL string) {
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs, err := docmirror.Absolutize(pageURL, href)
		if err != nil {
			return
		}
		a.SetAttr("href", abs)
	})
}
