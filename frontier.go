package docmirror

import "context"

// URLFrontier manages the crawl queue with deduplication.
type URLFrontier interface {
	VisitedSet

	// Enqueue schedules url. Returns false if url is out of scope or has
	// already been seen.
	Enqueue(url string) bool

	// Dequeue returns the oldest pending URL.
	// Returns false if the frontier is empty.
	Dequeue() (string, bool)

	// Len returns the number of pending URLs.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
