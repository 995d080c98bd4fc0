// Package robots applies robots.txt rules to the mirror's frontier using
// github.com/temoto/robotstxt.
package robots

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/fwojciec/docmirror"
	"github.com/temoto/robotstxt"
)

// Policy decides which URLs a user agent may fetch.
// A Policy without a group allows everything.
type Policy struct {
	group *robotstxt.Group
}

// Parse builds a Policy for userAgent from the text of a robots.txt file.
func Parse(text string, userAgent string) (*Policy, error) {
	data, err := robotstxt.FromString(text)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "parse robots.txt: %v", err)
	}
	return &Policy{group: data.FindGroup(userAgent)}, nil
}

// Load fetches robots.txt from the host of baseURL and builds a Policy for
// userAgent. A robots.txt that cannot be fetched or parsed yields a Policy
// that allows everything; the failure is logged.
func Load(ctx context.Context, fetcher docmirror.Fetcher, baseURL string, userAgent string, logger *slog.Logger) (*Policy, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, docmirror.Errorf(docmirror.EINVALID, "base URL %q must be absolute", baseURL)
	}
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	text, err := fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("robots.txt unavailable, allowing all", "url", robotsURL, "err", err)
		return &Policy{}, nil
	}

	policy, err := Parse(text, userAgent)
	if err != nil {
		logger.Warn("robots.txt unparsable, allowing all", "url", robotsURL, "err", err)
		return &Policy{}, nil
	}
	logger.Debug("robots.txt loaded", "url", robotsURL)
	return policy, nil
}

// Allowed reports whether link may be fetched. Unparseable links are
// rejected.
func (p *Policy) Allowed(link string) bool {
	if p.group == nil {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return p.group.Test(path)
}
