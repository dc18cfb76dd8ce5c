// SPDX-License-Identifier: MIT
// Package: lvcone/candidate
//
// list.go - ordered candidate lists: sorting, deduplicating merge and
// reduction.
//
// Contract:
//   • Lists that take part in MergeByVal, IsReducible or reduction must be
//     sorted by ValCompare (SortByVal); all mutating methods keep that order.
//   • ReduceBy and AutoReduce run the reducibility tests in parallel blocks and
//     delete after the barrier, so results do not depend on the thread count.

package candidate

import (
	"context"
	"sort"

	"github.com/katalvlaran/lvcone/internal/parallel"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

// List is an ordered collection of candidates.
type List[T any] struct {
	ring       number.Ring[T]
	Candidates []*Candidate[T]
}

// NewList returns an empty list.
func NewList[T any](r number.Ring[T]) *List[T] {
	return &List[T]{ring: r}
}

// Ring returns the arithmetic of l.
func (l *List[T]) Ring() number.Ring[T] { return l.ring }

// Len returns the number of candidates.
func (l *List[T]) Len() int { return len(l.Candidates) }

// Empty reports whether the list has no candidates.
func (l *List[T]) Empty() bool { return len(l.Candidates) == 0 }

// Append adds c at the end without restoring order.
func (l *List[T]) Append(c ...*Candidate[T]) {
	l.Candidates = append(l.Candidates, c...)
}

// Clear removes all candidates.
func (l *List[T]) Clear() { l.Candidates = nil }

// Splice moves all candidates of o to the end of l and empties o.
func (l *List[T]) Splice(o *List[T]) {
	l.Candidates = append(l.Candidates, o.Candidates...)
	o.Candidates = nil
}

// SortByVal sorts by ValCompare; equal candidates keep their relative order.
func (l *List[T]) SortByVal() {
	r := l.ring
	sort.SliceStable(l.Candidates, func(i, j int) bool {
		return ValCompare(r, l.Candidates[i], l.Candidates[j]) < 0
	})
}

// SortByDeg sorts by SortDeg only.
func (l *List[T]) SortByDeg() {
	r := l.ring
	sort.SliceStable(l.Candidates, func(i, j int) bool {
		return r.Cmp(l.Candidates[i].SortDeg, l.Candidates[j].SortDeg) < 0
	})
}

// UniqueVectors drops every candidate whose values equal those of its
// predecessor. The list must be sorted by value.
func (l *List[T]) UniqueVectors() {
	if len(l.Candidates) < 2 {
		return
	}
	out := l.Candidates[:1]
	for _, c := range l.Candidates[1:] {
		if matrix.EqualVec(l.ring, c.Values, out[len(out)-1].Values) {
			continue
		}
		out = append(out, c)
	}
	l.Candidates = out
}

// MergeByVal merges the sorted list o into the sorted list l. A candidate of
// o with the same values as one of l is dropped and the survivor keeps the
// smaller mother. o is emptied; the candidates actually inserted are
// returned in order.
func (l *List[T]) MergeByVal(o *List[T]) []*Candidate[T] {
	r := l.ring
	merged := make([]*Candidate[T], 0, len(l.Candidates)+len(o.Candidates))
	var added []*Candidate[T]
	i, j := 0, 0
	for i < len(l.Candidates) && j < len(o.Candidates) {
		a, b := l.Candidates[i], o.Candidates[j]
		if matrix.EqualVec(r, a.Values, b.Values) {
			if r.Cmp(b.Mother, a.Mother) < 0 {
				a.Mother = b.Mother
			}
			j++
			continue
		}
		if ValCompare(r, b, a) < 0 {
			merged = append(merged, b)
			added = append(added, b)
			j++
			continue
		}
		merged = append(merged, a)
		i++
	}
	merged = append(merged, l.Candidates[i:]...)
	for ; j < len(o.Candidates); j++ {
		merged = append(merged, o.Candidates[j])
		added = append(added, o.Candidates[j])
	}
	l.Candidates = merged
	o.Candidates = nil

	return added
}

// IsReducible reports whether some candidate of the sorted list l reduces a
// vector with the given values and sort degree: its values are component-wise
// at most values and its SortDeg is strictly smaller. The scan stops at the
// first candidate whose degree is not smaller.
func (l *List[T]) IsReducible(values []T, sortDeg T) bool {
	r := l.ring
	hint := 0
	for _, red := range l.Candidates {
		if r.Cmp(red.SortDeg, sortDeg) >= 0 {
			return false
		}
		if dominates(r, red.Values, values, len(values), &hint) {
			return true
		}
	}

	return false
}

// ReduceBy removes every candidate of l that is reducible by reducers.
// reducers must be sorted by value.
func (l *List[T]) ReduceBy(ctx context.Context, reducers *List[T], threads int) error {
	if l.Empty() || reducers.Empty() {
		return ctx.Err()
	}
	err := parallel.ForEach(ctx, len(l.Candidates), threads, func(i int) error {
		c := l.Candidates[i]
		c.Reducible = reducers.IsReducible(c.Values, c.SortDeg)
		return nil
	})
	if err != nil {
		return err
	}
	l.dropReducible()

	return nil
}

func (l *List[T]) dropReducible() {
	out := l.Candidates[:0]
	for _, c := range l.Candidates {
		if !c.Reducible {
			out = append(out, c)
		}
	}
	for k := len(out); k < len(l.Candidates); k++ {
		l.Candidates[k] = nil
	}
	l.Candidates = out
}

// AutoReduce sorts l and removes every candidate reducible by another one;
// duplicates by value are dropped. The result is an antichain under
// component-wise comparison of values.
func (l *List[T]) AutoReduce(ctx context.Context, threads int) error {
	l.SortByVal()
	l.UniqueVectors()

	return l.AutoReduceSorted(ctx, threads)
}

// AutoReduceSorted is AutoReduce for a list already sorted by value without
// value duplicates.
// Implementation: process generations of equal SortDeg in increasing order.
// Members of one generation never reduce each other, so each generation is
// tested in parallel against the accumulated irreducibles only.
func (l *List[T]) AutoReduceSorted(ctx context.Context, threads int) error {
	if len(l.Candidates) < 2 {
		return ctx.Err()
	}
	r := l.ring
	irred := NewList(r)
	rest := l.Candidates
	for len(rest) > 0 {
		deg := rest[0].SortDeg
		end := 1
		for end < len(rest) && r.Equal(rest[end].SortDeg, deg) {
			end++
		}
		gen := &List[T]{ring: r, Candidates: append([]*Candidate[T](nil), rest[:end]...)}
		if err := gen.ReduceBy(ctx, irred, threads); err != nil {
			return err
		}
		irred.Candidates = append(irred.Candidates, gen.Candidates...)
		rest = rest[end:]
	}
	l.Candidates = irred.Candidates

	return nil
}

// SelectByDegree removes the candidates with OldTotDeg ≤ deg from l and
// returns them in list order.
func (l *List[T]) SelectByDegree(deg T) []*Candidate[T] {
	var picked []*Candidate[T]
	kept := l.Candidates[:0]
	for _, c := range l.Candidates {
		if l.ring.Cmp(c.OldTotDeg, deg) <= 0 {
			picked = append(picked, c)
			continue
		}
		kept = append(kept, c)
	}
	for k := len(kept); k < len(l.Candidates); k++ {
		l.Candidates[k] = nil
	}
	l.Candidates = kept

	return picked
}

// Vectors returns the candidate vectors in list order.
func (l *List[T]) Vectors() [][]T { return Vectors(l.Candidates) }

// ValueRows returns the candidate values in list order.
func (l *List[T]) ValueRows() [][]T {
	out := make([][]T, len(l.Candidates))
	for i, c := range l.Candidates {
		out[i] = c.Values
	}

	return out
}

// Vectors returns the vectors of cs.
func Vectors[T any](cs []*Candidate[T]) [][]T {
	out := make([][]T, len(cs))
	for i, c := range cs {
		out[i] = c.Vector
	}

	return out
}
