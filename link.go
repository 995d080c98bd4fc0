package docmirror

import (
	"net/url"
	"strings"
)

// IsAbsolute reports whether href is an absolute HTTP(S) URL.
func IsAbsolute(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

// InScope reports whether u is an absolute URL under the baseURL prefix.
func InScope(baseURL, u string) bool {
	return IsAbsolute(u) && strings.HasPrefix(u, baseURL)
}

// Absolutize resolves href against the page it was found on.
//
// Absolute HTTP(S) hrefs are returned unchanged. Anything else is appended to
// pageURL as a new path segment and the resulting path is normalized with
// NormalizePath. Query and fragment of a relative href are dropped. Non-HTTP
// references (mailto:, javascript:, ...) are returned unchanged so they never
// fall into the site scope.
func Absolutize(pageURL, href string) (string, error) {
	if IsAbsolute(href) || isNonHTTPLink(href) {
		return href, nil
	}

	joined := pageURL + "/" + href
	u, err := url.Parse(joined)
	if err != nil {
		return "", Errorf(EINVALID, "invalid link %q on %s: %v", href, pageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "page URL %q is not absolute", pageURL)
	}

	// Take the path from the raw string: url.URL would escape backslashes
	// before NormalizePath could split on them.
	rest := joined[strings.Index(joined, "://")+len("://"):]
	p := rest[strings.Index(rest, "/"):]
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	return u.Scheme + "://" + u.Host + NormalizePath(p), nil
}

// NormalizePath collapses "." and ".." segments and empty segments of p.
// Both "/" and "\" separate segments. A ".." with nothing left to remove is
// dropped. The result always starts with "/".
//
//	NormalizePath("/a/b/../c") == "/a/c"
//	NormalizePath("/../a")     == "/a"
func NormalizePath(p string) string {
	parts := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case ".":
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, part)
		}
	}

	return "/" + strings.Join(kept, "/")
}

// isNonHTTPLink checks if a href uses a scheme that cannot be crawled.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "ftp:")
}
