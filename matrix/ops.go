// SPDX-License-Identifier: MIT
// Package: matrix
//
// ops.go - products, row selection and row-set normalizations.

package matrix

import (
	"sort"
)

// Mul returns a·b.
// Complexity: O(a.r · a.c · b.c).
func Mul[T any](a, b *Dense[T]) (*Dense[T], error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	r := a.ring
	out := zeros(r, a.r, b.c)
	var i, j, k int
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			aik := a.data[i*a.c+k]
			if r.IsZero(aik) {
				continue
			}
			for j = 0; j < b.c; j++ {
				bkj := b.data[k*b.c+j]
				if r.IsZero(bkj) {
					continue
				}
				out.data[i*b.c+j] = r.Add(out.data[i*b.c+j], r.Mul(aik, bkj))
			}
		}
	}

	return out, nil
}

// mustMul is Mul for shapes that are correct by construction.
func mustMul[T any](a, b *Dense[T]) *Dense[T] {
	out, err := Mul(a, b)
	if err != nil {
		panic(err)
	}

	return out
}

// MxV returns m·v (v is a column vector of length m.c).
func MxV[T any](m *Dense[T], v []T) ([]T, error) {
	if len(v) != m.c {
		return nil, matrixErrorf(opMxV, ErrDimensionMismatch)
	}
	out := make([]T, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = Dot(m.ring, m.Row(i), v)
	}

	return out, nil
}

// VxM returns v·m (v is a row vector of length m.r).
func VxM[T any](v []T, m *Dense[T]) ([]T, error) {
	if len(v) != m.r {
		return nil, matrixErrorf(opVxM, ErrDimensionMismatch)
	}
	r := m.ring
	out := NewVector(r, m.c)
	var i, j int
	for i = 0; i < m.r; i++ {
		if r.IsZero(v[i]) {
			continue
		}
		row := m.Row(i)
		for j = 0; j < m.c; j++ {
			out[j] = r.Add(out[j], r.Mul(v[i], row[j]))
		}
	}

	return out, nil
}

// Submatrix returns the rows of m listed in idx, in that order.
func Submatrix[T any](m *Dense[T], idx []int) (*Dense[T], error) {
	out := zeros(m.ring, len(idx), m.c)
	for k, i := range idx {
		if i < 0 || i >= m.r {
			return nil, matrixErrorf(opSubmatrix, ErrOutOfRange)
		}
		copy(out.data[k*m.c:(k+1)*m.c], m.Row(i))
	}

	return out, nil
}

// SelectColumns returns the columns of m listed in idx.
func SelectColumns[T any](m *Dense[T], idx []int) (*Dense[T], error) {
	out := zeros(m.ring, m.r, len(idx))
	for k, j := range idx {
		if j < 0 || j >= m.c {
			return nil, matrixErrorf(opSelect, ErrOutOfRange)
		}
		for i := 0; i < m.r; i++ {
			out.data[i*len(idx)+k] = m.data[i*m.c+j]
		}
	}

	return out, nil
}

// Concat stacks a on top of b.
func Concat[T any](a, b *Dense[T]) (*Dense[T], error) {
	if a.c != b.c {
		return nil, matrixErrorf(opConcat, ErrDimensionMismatch)
	}
	out := zeros(a.ring, a.r+b.r, a.c)
	copy(out.data, a.data)
	copy(out.data[len(a.data):], b.data)

	return out, nil
}

// SortLex sorts the rows of m lexicographically in place.
func SortLex[T any](m *Dense[T]) {
	rows := m.ToRows()
	sort.SliceStable(rows, func(i, j int) bool { return LexCompare(m.ring, rows[i], rows[j]) < 0 })
	for i, row := range rows {
		copy(m.Row(i), row)
	}
}

// RemoveZeroRows returns m without its zero rows.
func RemoveZeroRows[T any](m *Dense[T]) *Dense[T] {
	var keep []int
	for i := 0; i < m.r; i++ {
		if !IsZeroVec(m.ring, m.Row(i)) {
			keep = append(keep, i)
		}
	}
	out, _ := Submatrix(m, keep)

	return out
}

// RemoveDuplicateRows keeps the first occurrence of every row.
func RemoveDuplicateRows[T any](m *Dense[T]) *Dense[T] {
	seen := make(map[string]struct{}, m.r)
	var keep []int
	for i := 0; i < m.r; i++ {
		k := VectorKey(m.ring, m.Row(i))
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}
	out, _ := Submatrix(m, keep)

	return out
}

// MakeRowsPrimitive divides every row of m by the gcd of its entries.
func MakeRowsPrimitive[T any](m *Dense[T]) {
	for i := 0; i < m.r; i++ {
		MakePrimitive(m.ring, m.Row(i))
	}
}

// Negated returns −m.
func Negated[T any](m *Dense[T]) *Dense[T] {
	out := m.Clone()
	for i := range out.data {
		out.data[i] = m.ring.Neg(out.data[i])
	}

	return out
}
