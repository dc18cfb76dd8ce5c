// SPDX-License-Identifier: MIT
// Package: matrix
//
// determinant.go - fraction-free determinants, adjugates and independent
// row selection.

package matrix

import "github.com/katalvlaran/lvcone/number"

// Determinant returns det(m) by Bareiss elimination.
// Complexity: O(n³) ring operations, all exact divisions.
func Determinant[T any](m *Dense[T]) (T, error) {
	if m.r != m.c {
		var zero T
		return zero, matrixErrorf(opDet, ErrNonSquare)
	}

	return bareiss(m.ring, m.ToRows()), nil
}

func bareiss[T any](r number.Ring[T], a [][]T) T {
	n := len(a)
	if n == 0 {
		return r.One()
	}
	negate := false
	prev := r.One()
	var i, j, k int
	for k = 0; k < n-1; k++ {
		if r.IsZero(a[k][k]) {
			p := -1
			for i = k + 1; i < n; i++ {
				if !r.IsZero(a[i][k]) {
					p = i
					break
				}
			}
			if p < 0 {
				return r.Zero()
			}
			a[k], a[p] = a[p], a[k]
			negate = !negate
		}
		for i = k + 1; i < n; i++ {
			for j = k + 1; j < n; j++ {
				num := r.Sub(r.Mul(a[i][j], a[k][k]), r.Mul(a[i][k], a[k][j]))
				a[i][j] = r.Quo(num, prev)
			}
		}
		prev = a[k][k]
	}
	det := a[n-1][n-1]
	if negate {
		det = r.Neg(det)
	}

	return det
}

// Adjugate returns adj(m), so that m·adj(m) = det(m)·I.
// Complexity: O(n⁵) via cofactors; intended for the small square systems of
// simplicial cones and sublattice changes.
func Adjugate[T any](m *Dense[T]) (*Dense[T], error) {
	if m.r != m.c {
		return nil, matrixErrorf(opAdj, ErrNonSquare)
	}
	r := m.ring
	n := m.r
	out := zeros(r, n, n)
	if n == 1 {
		out.data[0] = r.One()
		return out, nil
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			minor := make([][]T, 0, n-1)
			for a := 0; a < n; a++ {
				if a == i {
					continue
				}
				row := make([]T, 0, n-1)
				for b := 0; b < n; b++ {
					if b != j {
						row = append(row, m.data[a*n+b])
					}
				}
				minor = append(minor, row)
			}
			c := bareiss(r, minor)
			if (i+j)%2 == 1 {
				c = r.Neg(c)
			}
			out.data[j*n+i] = c
		}
	}

	return out, nil
}

// Independence incrementally tracks a set of linearly independent vectors.
// Each accepted vector is reduced against the previously accepted ones
// (fraction-free, kept primitive), so Add costs O(rank·dim).
type Independence[T any] struct {
	r      number.Ring[T]
	basis  [][]T
	pivots []int
}

// NewIndependence returns an empty tracker.
func NewIndependence[T any](r number.Ring[T]) *Independence[T] {
	return &Independence[T]{r: r}
}

// Rank returns the number of accepted vectors.
func (ind *Independence[T]) Rank() int { return len(ind.basis) }

// Reduce returns v reduced against the accepted vectors.
func (ind *Independence[T]) Reduce(v []T) []T {
	r := ind.r
	w := CloneVec(v)
	for k, b := range ind.basis {
		p := ind.pivots[k]
		if r.IsZero(w[p]) {
			continue
		}
		w = Combine(r, b[p], w, r.Neg(w[p]), b)
		MakePrimitive(r, w)
	}

	return w
}

// Add accepts v if it is independent of the accepted vectors and reports
// whether it did.
func (ind *Independence[T]) Add(v []T) bool {
	w := ind.Reduce(v)
	for j, x := range w {
		if !ind.r.IsZero(x) {
			ind.basis = append(ind.basis, w)
			ind.pivots = append(ind.pivots, j)
			return true
		}
	}

	return false
}

// MaxRankRows returns the lexicographically first maximal set of linearly
// independent rows of m.
func MaxRankRows[T any](m *Dense[T]) []int {
	ind := NewIndependence(m.ring)
	var out []int
	for i := 0; i < m.r && ind.Rank() < m.c; i++ {
		if ind.Add(m.Row(i)) {
			out = append(out, i)
		}
	}

	return out
}

// RankRows returns the rank of the rows of m listed in idx.
func RankRows[T any](m *Dense[T], idx []int) int {
	ind := NewIndependence(m.ring)
	for _, i := range idx {
		if ind.Rank() == m.c {
			break
		}
		ind.Add(m.Row(i))
	}

	return ind.Rank()
}
