package crawl

import (
	"maps"
	"strings"
	"sync"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/bloom"
)

// Compile-time interface verification.
var _ docmirror.URLFrontier = (*Frontier)(nil)

// Frontier sizing for the visited-set Bloom filter.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate of the filter.
	frontierFalsePositiveRate = 0.01
)

// Frontier is a FIFO queue of pending URLs with a visited set.
// A URL is visited from the moment it is enqueued, so it is dequeued at most
// once per Frontier. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	baseURL string
	allow   func(url string) bool

	// filter answers most "never seen" lookups; seen confirms its positives.
	filter *bloom.Filter
	seen   map[string]struct{}
	queue  []string
}

// FrontierOption configures a Frontier.
type FrontierOption func(*Frontier)

// WithAllow adds a filter that in-scope URLs must also pass to be enqueued,
// such as a robots.txt policy.
func WithAllow(allow func(url string) bool) FrontierOption {
	return func(f *Frontier) {
		f.allow = allow
	}
}

// WithExpectedURLs sizes the visited-set filter for n URLs. The filter
// doubles whenever it fills up.
func WithExpectedURLs(n uint) FrontierOption {
	return func(f *Frontier) {
		f.filter = bloom.NewFilter(n, frontierFalsePositiveRate)
	}
}

// NewFrontier creates an empty Frontier scoped to URLs starting with baseURL.
func NewFrontier(baseURL string, opts ...FrontierOption) *Frontier {
	f := &Frontier{
		baseURL: baseURL,
		filter:  bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		seen:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Enqueue appends url to the queue and marks it visited.
// It returns false, leaving the frontier unchanged, if url is relative, lies
// outside the base URL, is rejected by the allow filter or was seen before.
// URL fragments are stripped first: URLs differing only by fragment are the
// same page.
func (f *Frontier) Enqueue(url string) bool {
	url = stripFragment(url)
	if !docmirror.InScope(f.baseURL, url) {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seenLocked(url) {
		return false
	}
	if f.allow != nil && !f.allow(url) {
		return false
	}

	f.filter.Add(url)
	f.seen[url] = struct{}{}
	if f.filter.Full() {
		f.filter = f.filter.Grow(maps.Keys(f.seen))
	}
	f.queue = append(f.queue, url)
	return true
}

// Dequeue removes and returns the oldest pending URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been enqueued, whether or not it has been
// dequeued since. URL fragments are stripped before checking.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seenLocked(stripFragment(url))
}

func (f *Frontier) seenLocked(url string) bool {
	if !f.filter.Test(url) {
		return false
	}
	_, ok := f.seen[url]
	return ok
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
