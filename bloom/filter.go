// Package bloom provides approximate deduplication of resolved references
// using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter for reference deduplication.
// It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected references
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a reference to the filter.
func (f *Filter) Add(ref string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(ref)
}

// Test returns true if the reference might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(ref string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(ref)
}

// Seen adds the reference and reports whether it was probably present
// before the call.
func (f *Filter) Seen(ref string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(ref)
}

// EstimatedCount returns the approximate number of distinct references
// in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
