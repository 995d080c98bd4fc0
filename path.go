package docmirror

import "strings"

// DefaultPageName is the output path of the mirror's root page.
const DefaultPageName = "index.md"

// OutputPath derives the relative output file path of pageURL.
//
// The baseURL prefix is stripped and the remainder trimmed; an empty remainder
// maps to DefaultPageName. The first ".html" substring (not only a suffix)
// becomes ".md".
//
//	OutputPath("https://site/docs", "https://site/docs/foo/bar.html") == "foo/bar.md"
func OutputPath(baseURL, pageURL string) string {
	p := strings.TrimPrefix(pageURL, baseURL)
	p = strings.TrimSpace(p)
	p = strings.TrimLeft(p, "/")

	if p == "" {
		p = DefaultPageName
	}

	return strings.Replace(p, ".html", ".md", 1)
}
