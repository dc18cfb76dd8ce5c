// SPDX-License-Identifier: MIT
// Package: lvcone/number
//
// ring.go - the Ring[T] contract shared by the machine and big rings.
//
// Contract:
//   • Values of type T are immutable from the caller's point of view; every
//     operation returns a fresh value (Big) or a plain copy (Machine).
//   • Quo truncates toward zero and must only be called when the division is
//     exact or truncation is intended. FloorDiv rounds toward −∞. Mod returns
//     a value in [0,|b|).
//   • Gcd is always non-negative; Gcd(0,0) == 0.
//   • Overflowed reports whether any operation since the last Reset left the
//     representable range. For Big it is always false.

package number

import "math/big"

// Ring is the exact integer arithmetic used by matrices, candidates and engines.
type Ring[T any] interface {
	// Kind identifies the representation.
	Kind() Kind

	Zero() T
	One() T
	FromInt64(v int64) T
	FromBig(v *big.Int) T
	ToBig(v T) *big.Int

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Neg(a T) T
	Abs(a T) T
	Quo(a, b T) T
	FloorDiv(a, b T) T
	Mod(a, b T) T
	Gcd(a, b T) T

	Cmp(a, b T) int
	Sign(a T) int
	IsZero(a T) bool
	Equal(a, b T) bool
	String(a T) string

	Overflowed() bool
	Reset()
}

// Lcm returns the non-negative least common multiple of a and b.
func Lcm[T any](r Ring[T], a, b T) T {
	if r.IsZero(a) || r.IsZero(b) {
		return r.Zero()
	}
	g := r.Gcd(a, b)

	return r.Abs(r.Mul(r.Quo(a, g), b))
}

// Min returns the smaller of a and b.
func Min[T any](r Ring[T], a, b T) T {
	if r.Cmp(a, b) <= 0 {
		return a
	}

	return b
}

// Convert maps v from ring src into ring dst through *big.Int.
func Convert[S, D any](src Ring[S], dst Ring[D], v S) D {
	return dst.FromBig(src.ToBig(v))
}

// Check returns ErrRange if r has overflowed since its last Reset.
func Check[T any](r Ring[T]) error {
	if r.Overflowed() {
		return ErrRange
	}

	return nil
}
