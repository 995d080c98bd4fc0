// Package bloom fronts the frontier's exact visited set with a Bloom filter
// from github.com/bits-and-blooms/bloom/v3.
package bloom

import (
	"iter"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter answers "possibly visited" or "definitely not visited" for URLs.
// It is sized for a capacity; once that many URLs are in it the false
// positive rate climbs above the configured one and the owner should Grow it.
type Filter struct {
	f        *bloom.BloomFilter
	capacity uint
	fpRate   float64
}

// NewFilter creates a Filter sized for capacity URLs at the given false
// positive rate.
func NewFilter(capacity uint, fpRate float64) *Filter {
	return &Filter{
		f:        bloom.NewWithEstimates(capacity, fpRate),
		capacity: capacity,
		fpRate:   fpRate,
	}
}

// Add records a visited URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been visited.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Full reports whether the filter holds about as many URLs as it was sized
// for.
func (f *Filter) Full() bool {
	return f.EstimatedCount() >= f.capacity
}

// Grow returns a filter with twice the capacity holding urls. Bloom filters
// cannot be resized in place, so the caller supplies the exact set.
func (f *Filter) Grow(urls iter.Seq[string]) *Filter {
	next := NewFilter(f.capacity*2, f.fpRate)
	for url := range urls {
		next.Add(url)
	}
	return next
}
