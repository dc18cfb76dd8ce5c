// SPDX-License-Identifier: MIT
// Package: lvcone/candidate
//
// table.go - degree-bucketed reducer index.
//
// Entries are grouped into buckets of equal sort degree, kept in increasing
// degree order, so a query for a candidate of degree s visits exactly the
// buckets with degree < s. Lookups are read-only and may run concurrently;
// Insert and Remove must not overlap with lookups.

package candidate

import (
	"sort"

	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

type bucket[T any] struct {
	deg  T
	rows [][]T
}

// Table indexes the values of reducers by sort degree.
type Table[T any] struct {
	ring    number.Ring[T]
	lastHyp int
	buckets []bucket[T]
	size    int
}

// NewTable returns an empty table comparing values on indices [0,lastHyp].
func NewTable[T any](r number.Ring[T], lastHyp int) *Table[T] {
	return &Table[T]{ring: r, lastHyp: lastHyp}
}

// TableOf indexes every candidate of l.
func TableOf[T any](l *List[T], lastHyp int) *Table[T] {
	t := NewTable(l.ring, lastHyp)
	for _, c := range l.Candidates {
		t.Insert(c)
	}

	return t
}

// Len returns the number of indexed entries.
func (t *Table[T]) Len() int { return t.size }

func (t *Table[T]) search(deg T) int {
	return sort.Search(len(t.buckets), func(i int) bool {
		return t.ring.Cmp(t.buckets[i].deg, deg) >= 0
	})
}

// Insert indexes c by its current SortDeg and Values.
func (t *Table[T]) Insert(c *Candidate[T]) {
	k := t.search(c.SortDeg)
	if k == len(t.buckets) || !t.ring.Equal(t.buckets[k].deg, c.SortDeg) {
		t.buckets = append(t.buckets, bucket[T]{})
		copy(t.buckets[k+1:], t.buckets[k:])
		t.buckets[k] = bucket[T]{deg: c.SortDeg}
	}
	t.buckets[k].rows = append(t.buckets[k].rows, c.Values)
	t.size++
}

// Remove drops one entry with the values and degree of c; it reports whether
// an entry was found.
func (t *Table[T]) Remove(c *Candidate[T]) bool {
	k := t.search(c.SortDeg)
	if k == len(t.buckets) || !t.ring.Equal(t.buckets[k].deg, c.SortDeg) {
		return false
	}
	rows := t.buckets[k].rows
	for i, row := range rows {
		if matrix.EqualVec(t.ring, row, c.Values) {
			t.buckets[k].rows = append(rows[:i], rows[i+1:]...)
			t.size--
			if len(t.buckets[k].rows) == 0 {
				t.buckets = append(t.buckets[:k], t.buckets[k+1:]...)
			}
			return true
		}
	}

	return false
}

// IsReducibleUnordered reports whether an indexed entry of degree strictly
// below sortDeg is component-wise at most values on [0,lastHyp].
func (t *Table[T]) IsReducibleUnordered(values []T, sortDeg T) bool {
	r := t.ring
	limit := t.lastHyp + 1
	if limit > len(values) {
		limit = len(values)
	}
	hint := limit - 1
	if hint < 0 {
		hint = 0
	}
	end := t.search(sortDeg)
	for b := 0; b < end; b++ {
		for _, red := range t.buckets[b].rows {
			if dominates(r, red, values, limit, &hint) {
				return true
			}
		}
	}

	return false
}
