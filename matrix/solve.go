// SPDX-License-Identifier: MIT
// Package: matrix
//
// solve.go - exact solutions of M·x = v for full column rank M.

package matrix

// Solve returns (x, denom) with M·x = denom·v, denom > 0 and gcd(x, denom) = 1.
// M must have full column rank and the system must be consistent; otherwise
// ErrSingular (rank deficit) or ErrDimensionMismatch (inconsistent / bad
// length) is returned.
// Stage 1: pick the lexicographically first maximal independent rows.
// Stage 2: solve the square system by adjugate.
// Stage 3: verify all rows, then cancel the common gcd.
func Solve[T any](m *Dense[T], v []T) ([]T, T, error) {
	r := m.ring
	var zero T
	if len(v) != m.r {
		return nil, zero, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	if m.c == 0 {
		if !IsZeroVec(r, v) {
			return nil, zero, matrixErrorf(opSolve, ErrDimensionMismatch)
		}
		return []T{}, r.One(), nil
	}
	rows := MaxRankRows(m)
	if len(rows) != m.c {
		return nil, zero, matrixErrorf(opSolve, ErrSingular)
	}
	left, _ := Submatrix(m, rows)
	det, _ := Determinant(left)
	adj, _ := Adjugate(left)
	rhs := make([]T, len(rows))
	for k, i := range rows {
		rhs[k] = v[i]
	}
	x, _ := MxV(adj, rhs)
	if r.Sign(det) < 0 {
		det = r.Neg(det)
		x = Negate(r, x)
	}
	test, _ := MxV(m, x)
	for i := range test {
		if !r.Equal(test[i], r.Mul(det, v[i])) {
			return nil, zero, matrixErrorf(opSolve, ErrDimensionMismatch)
		}
	}
	g := r.Gcd(det, VectorGcd(r, x))
	if !r.Equal(g, r.One()) {
		DivideVec(r, x, g)
		det = r.Quo(det, g)
	}

	return x, det, nil
}

// SolveZZ returns the integral solution of M·x = v, or false if the unique
// rational solution is not integral or does not exist.
func SolveZZ[T any](m *Dense[T], v []T) ([]T, bool) {
	x, den, err := Solve(m, v)
	if err != nil || !m.ring.Equal(den, m.ring.One()) {
		return nil, false
	}

	return x, true
}

// FindLinearForm returns the primitive linear form λ with λ(row) equal to the
// same positive value on every row of m, or false if no such form exists.
// m must have full column rank.
func FindLinearForm[T any](m *Dense[T]) ([]T, bool) {
	ones := make([]T, m.r)
	for i := range ones {
		ones[i] = m.ring.One()
	}
	x, _, err := Solve(m, ones)
	if err != nil {
		return nil, false
	}
	MakePrimitive(m.ring, x)

	return x, true
}
