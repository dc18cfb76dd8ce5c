// SPDX-License-Identifier: MIT
// Package: lvcone/number
//
// big.go - arbitrary precision ring on math/big.
//
// Values are never mutated after they are returned, so they may be shared
// freely between matrices, candidates and goroutines.

package number

import "math/big"

// BigRing implements Ring[*big.Int].
type BigRing struct{}

// NewBig returns the arbitrary precision ring.
func NewBig() BigRing { return BigRing{} }

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Kind reports Big.
func (BigRing) Kind() Kind { return Big }

// Zero returns a shared 0.
func (BigRing) Zero() *big.Int { return bigZero }

// One returns a shared 1.
func (BigRing) One() *big.Int { return bigOne }

// FromInt64 returns v as *big.Int.
func (BigRing) FromInt64(v int64) *big.Int { return big.NewInt(v) }

// FromBig returns a copy of v.
func (BigRing) FromBig(v *big.Int) *big.Int { return new(big.Int).Set(v) }

// ToBig returns a copy of v.
func (BigRing) ToBig(v *big.Int) *big.Int { return new(big.Int).Set(v) }

// Add returns a+b.
func (BigRing) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

// Sub returns a-b.
func (BigRing) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

// Mul returns a*b.
func (BigRing) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// Neg returns -a.
func (BigRing) Neg(a *big.Int) *big.Int { return new(big.Int).Neg(a) }

// Abs returns |a|.
func (BigRing) Abs(a *big.Int) *big.Int { return new(big.Int).Abs(a) }

// Quo returns a/b truncated toward zero.
func (BigRing) Quo(a, b *big.Int) *big.Int { return new(big.Int).Quo(a, b) }

// FloorDiv returns ⌊a/b⌋.
func (BigRing) FloorDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, bigOne)
	}

	return q
}

// Mod returns a mod |b| in [0,|b|).
func (BigRing) Mod(a, b *big.Int) *big.Int {
	// big.Int.Mod implements Euclidean modulus, which is already non-negative.
	return new(big.Int).Mod(a, b)
}

// Gcd returns gcd(|a|,|b|).
func (BigRing) Gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)

	return x.GCD(nil, nil, x, y)
}

// Cmp compares a and b.
func (BigRing) Cmp(a, b *big.Int) int { return a.Cmp(b) }

// Sign returns -1, 0 or +1.
func (BigRing) Sign(a *big.Int) int { return a.Sign() }

// IsZero reports a == 0.
func (BigRing) IsZero(a *big.Int) bool { return a.Sign() == 0 }

// Equal reports a == b.
func (BigRing) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

// String formats a in base 10.
func (BigRing) String(a *big.Int) string { return a.String() }

// Overflowed is always false.
func (BigRing) Overflowed() bool { return false }

// Reset is a no-op.
func (BigRing) Reset() {}
