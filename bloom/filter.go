// Package bloom suppresses repeated inputs in a batch using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate keeps the chance of treating a distinct input as
// a repeat below one in a million for a correctly sized filter.
const DefaultFalsePositiveRate = 1e-6

// Filter is a set of string keys with no false negatives and a bounded
// false positive rate.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd adds key and reports whether it was possibly present before.
func (f *Filter) TestAndAdd(key string) bool {
	return f.f.TestAndAddString(key)
}
