// SPDX-License-Identifier: MIT
// Package: lvcone/candidate
//
// candidate.go - the Candidate element and its total order.

package candidate

import (
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

// Candidate is a lattice vector under evaluation.
type Candidate[T any] struct {
	Vector    []T
	Values    []T
	SortDeg   T
	OldTotDeg T
	Mother    T
	Reducible bool
}

// New returns a candidate with a zero value vector of length nrValues.
func New[T any](r number.Ring[T], v []T, nrValues int) *Candidate[T] {
	return &Candidate[T]{
		Vector:    v,
		Values:    matrix.NewVector(r, nrValues),
		SortDeg:   r.Zero(),
		OldTotDeg: r.Zero(),
		Mother:    r.Zero(),
	}
}

// FromValues returns a candidate with the given values; SortDeg is their sum.
func FromValues[T any](r number.Ring[T], v, values []T) *Candidate[T] {
	c := New(r, v, 0)
	c.Values = values
	c.SortDeg = matrix.SumVec(r, values)

	return c
}

// Clone returns a deep copy of c.
func (c *Candidate[T]) Clone() *Candidate[T] {
	out := *c
	out.Vector = matrix.CloneVec(c.Vector)
	out.Values = matrix.CloneVec(c.Values)

	return &out
}

// ValCompare orders candidates by SortDeg, then Values lexicographically,
// then Mother.
func ValCompare[T any](r number.Ring[T], a, b *Candidate[T]) int {
	if c := r.Cmp(a.SortDeg, b.SortDeg); c != 0 {
		return c
	}
	if c := matrix.LexCompare(r, a.Values, b.Values); c != 0 {
		return c
	}

	return r.Cmp(a.Mother, b.Mother)
}

// dominates reports whether red.Values ≤ values on indices [0,limit).
// hint is the index of the last failing coordinate, tried first.
func dominates[T any](r number.Ring[T], red, values []T, limit int, hint *int) bool {
	if k := *hint; k < limit && r.Cmp(values[k], red[k]) < 0 {
		return false
	}
	for i := 0; i < limit; i++ {
		if r.Cmp(values[i], red[i]) < 0 {
			*hint = i
			return false
		}
	}

	return true
}
