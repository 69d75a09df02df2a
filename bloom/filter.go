// Package bloom provides work ID deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is low enough that a batch of a few thousand
// IDs is very unlikely to drop a distinct work.
const DefaultFalsePositiveRate = 1e-9

// Filter wraps a Bloom filter for work ID deduplication.
// Safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds an ID to the filter.
func (f *Filter) Add(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(id)
}

// Test returns true if the ID might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(id)
}

// TestAndAdd adds the ID and reports whether it might have been present.
func (f *Filter) TestAndAdd(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(id)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// Dedupe returns ids with repeats removed, keeping first occurrences in order.
func Dedupe(ids []string) []string {
	f := NewFilter(uint(len(ids)), DefaultFalsePositiveRate)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if f.TestAndAdd(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
