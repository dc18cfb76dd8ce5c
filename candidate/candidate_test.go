// SPDX-License-Identifier: MIT
package candidate_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcone/candidate"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

var ring = number.NewMachine()

func cand(mother int64, values ...int64) *candidate.Candidate[int64] {
	c := candidate.FromValues[int64](ring, matrix.CloneVec(values), matrix.CloneVec(values))
	c.Mother = mother

	return c
}

func list(cs ...*candidate.Candidate[int64]) *candidate.List[int64] {
	l := candidate.NewList[int64](ring)
	l.Append(cs...)
	l.SortByVal()

	return l
}

func values(l *candidate.List[int64]) [][]int64 {
	out := make([][]int64, 0, l.Len())
	for _, c := range l.Candidates {
		out = append(out, c.Values)
	}

	return out
}

func leq(a, b []int64) bool {
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}

	return true
}

func TestValCompareOrder(t *testing.T) {
	t.Parallel()
	l := list(cand(0, 2, 0), cand(0, 0, 1), cand(3, 1, 1), cand(1, 1, 1))
	assert.Equal(t, [][]int64{{0, 1}, {1, 1}, {1, 1}, {2, 0}}, values(l))
	assert.Equal(t, int64(1), l.Candidates[1].Mother)
}

func TestMergeByValKeepsSmallerMother(t *testing.T) {
	t.Parallel()
	old := list(cand(5, 1, 0), cand(4, 1, 1))
	fresh := list(cand(2, 1, 1), cand(0, 0, 3), cand(1, 2, 0))
	added := old.MergeByVal(fresh)

	assert.True(t, fresh.Empty())
	assert.Equal(t, [][]int64{{1, 0}, {1, 1}, {2, 0}, {0, 3}}, values(old))
	assert.Equal(t, int64(2), old.Candidates[1].Mother)
	require.Len(t, added, 2)
	assert.Equal(t, []int64{2, 0}, added[0].Values)
	assert.Equal(t, []int64{0, 3}, added[1].Values)
}

func TestUniqueVectors(t *testing.T) {
	t.Parallel()
	l := list(cand(0, 1, 2), cand(1, 1, 2), cand(0, 3, 0))
	l.UniqueVectors()
	assert.Equal(t, [][]int64{{1, 2}, {3, 0}}, values(l))
}

func TestIsReducibleNeedsSmallerDegree(t *testing.T) {
	t.Parallel()
	l := list(cand(0, 1, 0), cand(0, 0, 2))
	assert.True(t, l.IsReducible([]int64{1, 1}, 2))
	assert.False(t, l.IsReducible([]int64{1, 0}, 1))
	assert.False(t, l.IsReducible([]int64{0, 1}, 1))
	assert.True(t, l.IsReducible([]int64{0, 3}, 3))
}

func TestAutoReduceProducesAntichain(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		var cs []*candidate.Candidate[int64]
		for k := 0; k < 60; k++ {
			cs = append(cs, cand(0, rng.Int63n(4), rng.Int63n(4), rng.Int63n(4)))
		}
		l := list(cs...)
		before := values(l)
		require.NoError(t, l.AutoReduce(context.Background(), 3))

		got := values(l)
		for i := range got {
			for j := range got {
				if i != j {
					assert.False(t, leq(got[i], got[j]), "%v ≤ %v", got[i], got[j])
				}
			}
		}
		// Every removed vector is dominated by a survivor.
		for _, v := range before {
			found := false
			for _, s := range got {
				if leq(s, v) {
					found = true
					break
				}
			}
			assert.True(t, found, "%v lost", v)
		}
	}
}

func TestReduceByAndCancellation(t *testing.T) {
	t.Parallel()
	l := list(cand(0, 2, 1), cand(0, 0, 5), cand(0, 3, 3))
	reducers := list(cand(0, 1, 1))
	require.NoError(t, l.ReduceBy(context.Background(), reducers, 2))
	assert.Equal(t, [][]int64{{0, 5}}, values(l))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l = list(cand(0, 2, 1))
	assert.ErrorIs(t, l.ReduceBy(ctx, reducers, 2), context.Canceled)
}

func TestTableBuckets(t *testing.T) {
	t.Parallel()
	tab := candidate.NewTable[int64](ring, 1)
	a, b := cand(0, 1, 0, 9), cand(0, 0, 2, 9)
	tab.Insert(a)
	tab.Insert(b)
	assert.Equal(t, 2, tab.Len())

	// Index 2 lies beyond lastHyp and is ignored.
	assert.True(t, tab.IsReducibleUnordered([]int64{1, 1, 0}, 12))
	assert.False(t, tab.IsReducibleUnordered([]int64{1, 1, 0}, 10))
	assert.False(t, tab.IsReducibleUnordered([]int64{0, 1, 0}, 12))

	assert.True(t, tab.Remove(a))
	assert.False(t, tab.Remove(a))
	assert.Equal(t, 1, tab.Len())
	assert.False(t, tab.IsReducibleUnordered([]int64{1, 1, 0}, 12))

	full := candidate.TableOf(list(cand(0, 1, 1)), 1)
	assert.True(t, full.IsReducibleUnordered([]int64{2, 1}, 3))
}
