// SPDX-License-Identifier: MIT
// Package: lvcone/dual
//
// extreme.go - extreme rays and facets of a finished pointed run.

package dual

import (
	"github.com/katalvlaran/lvcone/candidate"
	"github.com/katalvlaran/lvcone/matrix"
)

// extremeRays returns the basis elements vanishing on hyperplanes of rank
// dim−1.
func (e *Engine[T]) extremeRays() []*candidate.Candidate[T] {
	r := e.r
	var out []*candidate.Candidate[T]
	zeros := make([]int, 0, e.hyps.Rows())
	for _, c := range e.intermediate.Candidates {
		zeros = zeros[:0]
		for i, v := range c.Values {
			if r.IsZero(v) {
				zeros = append(zeros, i)
			}
		}
		if len(zeros) >= e.dim-1 && matrix.RankRows(e.hyps, zeros) >= e.dim-1 {
			out = append(out, c)
		}
	}

	return out
}

// relevantHyperplanes returns the input indices of the hyperplanes whose zero
// set among the extreme rays has rank realdim−1.
func (e *Engine[T]) relevantHyperplanes(ers []*candidate.Candidate[T]) []int {
	if len(ers) == 0 {
		return nil
	}
	r := e.r
	gens, _ := matrix.FromRows(r, e.dim, candidate.Vectors(ers))
	realdim := matrix.Rank(gens)
	var out []int
	var idx []int
	for i := 0; i < e.hyps.Rows(); i++ {
		idx = idx[:0]
		for k, c := range ers {
			if r.IsZero(c.Values[i]) {
				idx = append(idx, k)
			}
		}
		if len(idx) >= realdim-1 && matrix.RankRows(gens, idx) >= realdim-1 {
			out = append(out, e.origin[i])
		}
	}

	return out
}
