// SPDX-License-Identifier: MIT
// Package: lvcone/number
//
// machine.go - int64 ring with sticky overflow detection.
//
// Every operation validates its result. On overflow the ring records the fact
// in an atomic flag (shared by all goroutines using the ring) and returns 0.
// Division by zero after an overflow also returns 0 because the operands are
// already meaningless; division by zero on a clean ring is a programmer error.

package number

import (
	"math"
	"math/big"
	"strconv"
	"sync/atomic"
)

// MachineRing implements Ring[int64].
type MachineRing struct {
	overflow atomic.Bool
}

// NewMachine returns a fresh int64 ring with a clear overflow flag.
func NewMachine() *MachineRing {
	return &MachineRing{}
}

func (m *MachineRing) flag() int64 {
	m.overflow.Store(true)
	return 0
}

// Kind reports Machine.
func (m *MachineRing) Kind() Kind { return Machine }

// Zero returns 0.
func (m *MachineRing) Zero() int64 { return 0 }

// One returns 1.
func (m *MachineRing) One() int64 { return 1 }

// FromInt64 returns v.
func (m *MachineRing) FromInt64(v int64) int64 { return v }

// FromBig converts v, flagging overflow when v does not fit.
func (m *MachineRing) FromBig(v *big.Int) int64 {
	if !v.IsInt64() {
		return m.flag()
	}

	return v.Int64()
}

// ToBig converts v.
func (m *MachineRing) ToBig(v int64) *big.Int { return big.NewInt(v) }

// Add returns a+b.
func (m *MachineRing) Add(a, b int64) int64 {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return m.flag()
	}

	return s
}

// Sub returns a-b.
func (m *MachineRing) Sub(a, b int64) int64 {
	s := a - b
	if (a >= 0 && b < 0 && s < 0) || (a < 0 && b > 0 && s >= 0) {
		return m.flag()
	}

	return s
}

// Mul returns a*b.
func (m *MachineRing) Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return m.flag()
	}
	p := a * b
	if p/b != a {
		return m.flag()
	}

	return p
}

// Neg returns -a.
func (m *MachineRing) Neg(a int64) int64 {
	if a == math.MinInt64 {
		return m.flag()
	}

	return -a
}

// Abs returns |a|.
func (m *MachineRing) Abs(a int64) int64 {
	if a < 0 {
		return m.Neg(a)
	}

	return a
}

// Quo returns a/b truncated toward zero.
func (m *MachineRing) Quo(a, b int64) int64 {
	if b == 0 {
		if m.Overflowed() {
			return 0
		}
		panic("number: division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return m.flag()
	}

	return a / b
}

// FloorDiv returns ⌊a/b⌋.
func (m *MachineRing) FloorDiv(a, b int64) int64 {
	q := m.Quo(a, b)
	if b != 0 && (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

// Mod returns a mod |b| in [0,|b|).
func (m *MachineRing) Mod(a, b int64) int64 {
	if b == 0 {
		if m.Overflowed() {
			return 0
		}
		panic("number: modulo by zero")
	}
	if b == math.MinInt64 {
		if a < 0 {
			return a - math.MinInt64
		}
		return a
	}
	if b < 0 {
		b = -b
	}
	r := a % b
	if r < 0 {
		r += b
	}

	return r
}

// Gcd returns gcd(|a|,|b|).
func (m *MachineRing) Gcd(a, b int64) int64 {
	a, b = m.Abs(a), m.Abs(b)
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// Cmp compares a and b.
func (m *MachineRing) Cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Sign returns -1, 0 or +1.
func (m *MachineRing) Sign(a int64) int { return m.Cmp(a, 0) }

// IsZero reports a == 0.
func (m *MachineRing) IsZero(a int64) bool { return a == 0 }

// Equal reports a == b.
func (m *MachineRing) Equal(a, b int64) bool { return a == b }

// String formats a in base 10.
func (m *MachineRing) String(a int64) string { return strconv.FormatInt(a, 10) }

// Overflowed reports whether the sticky overflow flag is set.
func (m *MachineRing) Overflowed() bool { return m.overflow.Load() }

// Reset clears the overflow flag.
func (m *MachineRing) Reset() { m.overflow.Store(false) }
