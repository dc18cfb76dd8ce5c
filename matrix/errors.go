// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All exported kernels return these sentinels (possibly wrapped with the
// operation name through matrixErrorf) and tests check them via errors.Is.
// Kernels never panic on user-triggered conditions.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid (negative
	// sizes, ragged input rows).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrSingular signals a zero determinant where an invertible matrix
	// was required.
	ErrSingular = errors.New("matrix: matrix is singular")

	// ErrNilMatrix indicates that a nil *Dense was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

// Operation tags used for error wrapping.
const (
	opNew       = "New"
	opAt        = "At"
	opSet       = "Set"
	opMul       = "Mul"
	opMxV       = "MxV"
	opVxM       = "VxM"
	opSubmatrix = "Submatrix"
	opSelect    = "SelectColumns"
	opConcat    = "Concat"
	opDet       = "Determinant"
	opAdj       = "Adjugate"
	opSolve     = "Solve"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
