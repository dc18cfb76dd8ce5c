// SPDX-License-Identifier: MIT
// Package: matrix
//
// vector.go - helpers on plain []T vectors. Every helper takes the ring
// explicitly; vectors carry no arithmetic of their own.

package matrix

import (
	"strings"

	"github.com/katalvlaran/lvcone/number"
)

// NewVector returns a zero vector of length n.
func NewVector[T any](r number.Ring[T], n int) []T {
	v := make([]T, n)
	z := r.Zero()
	for i := range v {
		v[i] = z
	}

	return v
}

// VectorFromInt64 converts an int64 slice.
func VectorFromInt64[T any](r number.Ring[T], xs []int64) []T {
	v := make([]T, len(xs))
	for i, x := range xs {
		v[i] = r.FromInt64(x)
	}

	return v
}

// VectorInt64 converts v to int64 entries.
func VectorInt64[T any](r number.Ring[T], v []T) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = r.ToBig(x).Int64()
	}

	return out
}

// Dot returns Σ a[i]·b[i]. Lengths must match; the shorter length is used otherwise.
func Dot[T any](r number.Ring[T], a, b []T) T {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	s := r.Zero()
	for i := 0; i < n; i++ {
		if r.IsZero(a[i]) || r.IsZero(b[i]) {
			continue
		}
		s = r.Add(s, r.Mul(a[i], b[i]))
	}

	return s
}

// AddVec returns a+b.
func AddVec[T any](r number.Ring[T], a, b []T) []T {
	out := make([]T, len(a))
	for i := range a {
		out[i] = r.Add(a[i], b[i])
	}

	return out
}

// SubVec returns a−b.
func SubVec[T any](r number.Ring[T], a, b []T) []T {
	out := make([]T, len(a))
	for i := range a {
		out[i] = r.Sub(a[i], b[i])
	}

	return out
}

// Scale returns s·a.
func Scale[T any](r number.Ring[T], s T, a []T) []T {
	out := make([]T, len(a))
	for i := range a {
		out[i] = r.Mul(s, a[i])
	}

	return out
}

// Combine returns x·a + y·b.
func Combine[T any](r number.Ring[T], x T, a []T, y T, b []T) []T {
	out := make([]T, len(a))
	for i := range a {
		out[i] = r.Add(r.Mul(x, a[i]), r.Mul(y, b[i]))
	}

	return out
}

// Negate returns −a.
func Negate[T any](r number.Ring[T], a []T) []T {
	out := make([]T, len(a))
	for i := range a {
		out[i] = r.Neg(a[i])
	}

	return out
}

// VectorGcd returns the gcd of all entries (0 for the zero vector).
func VectorGcd[T any](r number.Ring[T], a []T) T {
	g := r.Zero()
	one := r.One()
	for _, x := range a {
		g = r.Gcd(g, x)
		if r.Equal(g, one) {
			break
		}
	}

	return g
}

// MakePrimitive divides a by the gcd of its entries and returns the gcd.
// The zero vector is left untouched.
func MakePrimitive[T any](r number.Ring[T], a []T) T {
	g := VectorGcd(r, a)
	if r.IsZero(g) || r.Equal(g, r.One()) {
		return g
	}
	for i := range a {
		a[i] = r.Quo(a[i], g)
	}

	return g
}

// DivideVec divides every entry of a by d exactly, in place.
func DivideVec[T any](r number.Ring[T], a []T, d T) {
	for i := range a {
		a[i] = r.Quo(a[i], d)
	}
}

// IsZeroVec reports whether all entries are zero.
func IsZeroVec[T any](r number.Ring[T], a []T) bool {
	for _, x := range a {
		if !r.IsZero(x) {
			return false
		}
	}

	return true
}

// EqualVec reports element-wise equality.
func EqualVec[T any](r number.Ring[T], a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !r.Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// LexCompare compares a and b lexicographically; a shorter prefix is smaller.
func LexCompare[T any](r number.Ring[T], a, b []T) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := r.Cmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// SumVec returns Σ a[i].
func SumVec[T any](r number.Ring[T], a []T) T {
	s := r.Zero()
	for _, x := range a {
		s = r.Add(s, x)
	}

	return s
}

// CloneVec copies a.
func CloneVec[T any](a []T) []T {
	out := make([]T, len(a))
	copy(out, a)

	return out
}

// VectorString renders a as "[a0 a1 ...]".
func VectorString[T any](r number.Ring[T], a []T) string {
	parts := make([]string, len(a))
	for i, x := range a {
		parts[i] = r.String(x)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// VectorKey is a canonical map key for a.
func VectorKey[T any](r number.Ring[T], a []T) string {
	parts := make([]string, len(a))
	for i, x := range a {
		parts[i] = r.String(x)
	}

	return strings.Join(parts, ",")
}
