// SPDX-License-Identifier: MIT
// Package: matrix
//
// echelon.go - integer row reduction with optional transform tracking.
//
// Implementation:
//   - Euclidean pivoting: within a column the row with the smallest non-zero
//     absolute value becomes the pivot and all rows below are reduced by
//     floor division until they vanish. Only unimodular row operations are
//     used, so the row lattice is preserved exactly.
//   - When tracking is requested, T accumulates the operations (T·M = E) and
//     Tinv accumulates their inverses applied from the right (M = Tinv·E).
//   - On an overflowed machine ring the loops stop early; callers observe
//     the sticky flag and discard the result.

package matrix

import "github.com/katalvlaran/lvcone/number"

type reducer[T any] struct {
	r    number.Ring[T]
	rows [][]T
	t    [][]T
	tinv [][]T
}

func newReducer[T any](m *Dense[T], track bool) *reducer[T] {
	red := &reducer[T]{r: m.ring, rows: m.ToRows()}
	if track {
		red.t = Identity(m.ring, m.r).ToRows()
		red.tinv = Identity(m.ring, m.r).ToRows()
	}

	return red
}

func (red *reducer[T]) swap(i, j int) {
	if i == j {
		return
	}
	red.rows[i], red.rows[j] = red.rows[j], red.rows[i]
	if red.t != nil {
		red.t[i], red.t[j] = red.t[j], red.t[i]
		for _, row := range red.tinv {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// sub performs row_i -= q·row_k.
func (red *reducer[T]) sub(i, k int, q T) {
	r := red.r
	if r.IsZero(q) {
		return
	}
	axpy(r, red.rows[i], red.rows[k], q)
	if red.t != nil {
		axpy(r, red.t[i], red.t[k], q)
		for _, row := range red.tinv {
			row[k] = r.Add(row[k], r.Mul(q, row[i]))
		}
	}
}

func (red *reducer[T]) neg(i int) {
	r := red.r
	for j := range red.rows[i] {
		red.rows[i][j] = r.Neg(red.rows[i][j])
	}
	if red.t != nil {
		for j := range red.t[i] {
			red.t[i][j] = r.Neg(red.t[i][j])
		}
		for _, row := range red.tinv {
			row[i] = r.Neg(row[i])
		}
	}
}

// axpy computes dst -= q·src in place.
func axpy[T any](r number.Ring[T], dst, src []T, q T) {
	for j := range dst {
		if r.IsZero(src[j]) {
			continue
		}
		dst[j] = r.Sub(dst[j], r.Mul(q, src[j]))
	}
}

// echelon brings rows to integer row echelon form and returns the rank and
// the pivot column of every non-zero row.
func (red *reducer[T]) echelon(ncols int) (int, []int) {
	r := red.r
	n := len(red.rows)
	rank := 0
	var pivots []int
	for col := 0; col < ncols && rank < n; col++ {
		for {
			if r.Overflowed() {
				return rank, pivots
			}
			p := -1
			for i := rank; i < n; i++ {
				v := red.rows[i][col]
				if r.IsZero(v) {
					continue
				}
				if p < 0 || r.Cmp(r.Abs(v), r.Abs(red.rows[p][col])) < 0 {
					p = i
				}
			}
			if p < 0 {
				break
			}
			red.swap(rank, p)
			pivot := red.rows[rank][col]
			clean := true
			for i := rank + 1; i < n; i++ {
				v := red.rows[i][col]
				if r.IsZero(v) {
					continue
				}
				red.sub(i, rank, r.FloorDiv(v, pivot))
				if !r.IsZero(red.rows[i][col]) {
					clean = false
				}
			}
			if clean {
				pivots = append(pivots, col)
				rank++
				break
			}
		}
	}

	return rank, pivots
}

// hermite turns an echelon form into Hermite normal form: positive pivots and
// entries above each pivot reduced into [0, pivot).
func (red *reducer[T]) hermite(pivots []int) {
	r := red.r
	for k, pc := range pivots {
		if r.Sign(red.rows[k][pc]) < 0 {
			red.neg(k)
		}
		for i := 0; i < k; i++ {
			q := r.FloorDiv(red.rows[i][pc], red.rows[k][pc])
			red.sub(i, k, q)
		}
	}
}

// Rank returns the rank of m.
// Complexity: O(r·c·min(r,c)) ring operations plus Euclidean steps.
func Rank[T any](m *Dense[T]) int {
	red := newReducer(m, false)
	rank, _ := red.echelon(m.c)

	return rank
}

// RowEchelon returns the non-zero rows of an integer row echelon form of m,
// spanning the same lattice as the rows of m.
func RowEchelon[T any](m *Dense[T]) *Dense[T] {
	red := newReducer(m, false)
	rank, _ := red.echelon(m.c)
	out, _ := FromRows(m.ring, m.c, red.rows[:rank])

	return out
}

// Hermite returns the row Hermite normal form of m (only the non-zero rows)
// and the pivot columns. Two matrices have equal Hermite forms exactly when
// their rows generate the same lattice.
func Hermite[T any](m *Dense[T]) (*Dense[T], []int) {
	red := newReducer(m, false)
	rank, pivots := red.echelon(m.c)
	red.hermite(pivots)
	out, _ := FromRows(m.ring, m.c, red.rows[:rank])

	return out, pivots
}

// ColumnForm is the result of ColumnEchelon: M·U = [L | 0] with U unimodular
// and V = U⁻¹. L has Rank columns.
type ColumnForm[T any] struct {
	L    *Dense[T]
	U    *Dense[T]
	V    *Dense[T]
	Rank int
}

// ColumnEchelon computes a column echelon form of m with transforms.
// Stage 1: reduce mᵀ by rows while tracking T (T·mᵀ = E) and T⁻¹.
// Stage 2: U = Tᵀ, V = (T⁻¹)ᵀ and L = first rank columns of Eᵀ.
func ColumnEchelon[T any](m *Dense[T]) ColumnForm[T] {
	mt := m.Transpose()
	red := newReducer(mt, true)
	rank, _ := red.echelon(mt.c)

	e, _ := FromRows(m.ring, mt.c, red.rows)
	t, _ := FromRows(m.ring, m.c, red.t)
	tinv, _ := FromRows(m.ring, m.c, red.tinv)
	et := e.Transpose()
	cols := make([]int, rank)
	for i := range cols {
		cols[i] = i
	}
	l, _ := SelectColumns(et, cols)

	return ColumnForm[T]{L: l, U: t.Transpose(), V: tinv.Transpose(), Rank: rank}
}

// Kernel returns a lattice basis (as rows) of {x ∈ Zⁿ : m·x = 0}, n = m.c.
func Kernel[T any](m *Dense[T]) *Dense[T] {
	cf := ColumnEchelon(m)
	d := m.c
	out := zeros(m.ring, d-cf.Rank, d)
	var i, j int
	for j = cf.Rank; j < d; j++ {
		for i = 0; i < d; i++ {
			out.data[(j-cf.Rank)*d+i] = cf.U.data[i*d+j]
		}
	}

	return out
}
