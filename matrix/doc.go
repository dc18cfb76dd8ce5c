// SPDX-License-Identifier: MIT

// Package matrix provides exact integer matrices and vectors for the cone
// engines.
//
// Dense[T] is a row-major matrix over a number.Ring[T], stored in a flat
// slice. All arithmetic is exact: elimination routines use Euclidean pivoting
// (row echelon, Hermite and Smith forms) or fraction-free Bareiss steps
// (determinants), never rational division.
//
// Main kernels:
//
//	Rank, MaxRankRows        - rank and a lexicographically first basis of rows
//	RowEchelon, Hermite      - integer row echelon and Hermite normal form
//	ColumnEchelon            - M·U = [L|0] with unimodular U and V = U⁻¹
//	Kernel                   - lattice basis of {x : M·x = 0}
//	Determinant, Adjugate    - Bareiss determinant and adj(M) = det(M)·M⁻¹
//	Smith                    - Smith normal form with column transform
//	FindLinearForm, SolveZZ  - integral solutions of M·x = v
//
// Vector helpers (Dot, Combine, MakePrimitive, LexCompare, ...) operate on
// plain []T slices with an explicit ring argument.
//
// Errors are package sentinels wrapped with the operation name; check them
// with errors.Is.
package matrix
