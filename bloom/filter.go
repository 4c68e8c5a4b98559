// Package bloom provides the probabilistic prefilter the crawl frontier
// consults before its exact seen-set.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over normalized URLs.
// It is not safe for concurrent use; callers serialize access.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter sizes a filter for n expected URLs at the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records url.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether url may have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd reports whether url may have been added before, then adds it.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// Len returns the approximate number of distinct URLs added.
func (f *Filter) Len() uint {
	return uint(f.f.ApproximatedSize())
}

// Cap returns the size of the filter's bit set.
func (f *Filter) Cap() uint {
	return f.f.Cap()
}
