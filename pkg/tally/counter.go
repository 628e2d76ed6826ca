package tally

import (
	"cmp"
	"slices"
)

// Entry is one key of a Counter with its count.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counter is a frequency counter that remembers the order in which keys were
// first seen. The zero value is ready to use.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// NewCounter returns an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{}
}

// Add increments k by n. A key is registered on first Add even when n is zero.
func (c *Counter[K]) Add(k K, n int) {
	if c.counts == nil {
		c.counts = make(map[K]int)
	}

	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}

	c.counts[k] += n
}

// Inc increments k by one.
func (c *Counter[K]) Inc(k K) {
	c.Add(k, 1)
}

// Get returns the count of k, zero when k was never added.
func (c *Counter[K]) Get(k K) int {
	return c.counts[k]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	total := 0

	for _, n := range c.counts {
		total += n
	}

	return total
}

// Keys returns the keys in first-seen order.
func (c *Counter[K]) Keys() []K {
	return slices.Clone(c.order)
}

// MostCommon returns all entries ordered by count descending. Equal counts
// keep first-seen order.
func (c *Counter[K]) MostCommon() []Entry[K] {
	entries := make([]Entry[K], 0, len(c.order))

	for _, k := range c.order {
		entries = append(entries, Entry[K]{Key: k, Count: c.counts[k]})
	}

	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return entries
}

// AtLeast returns the entries whose count is >= threshold, in MostCommon order.
func (c *Counter[K]) AtLeast(threshold int) []Entry[K] {
	common := c.MostCommon()
	out := common[:0]

	for _, e := range common {
		if e.Count >= threshold {
			out = append(out, e)
		}
	}

	return out
}

// Merge adds every count of other into c, in other's first-seen order.
func (c *Counter[K]) Merge(other *Counter[K]) {
	if other == nil {
		return
	}

	for _, k := range other.order {
		c.Add(k, other.counts[k])
	}
}
