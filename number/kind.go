// SPDX-License-Identifier: MIT
// Package: lvcone/number
//
// kind.go - representation selector and the escalation loop.

package number

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// Kind selects an integer representation.
type Kind int

const (
	// Machine is int64 with overflow detection.
	Machine Kind = iota
	// Big is arbitrary precision.
	Big
)

// Widest is the last Kind in escalation order.
const Widest = Big

// ErrRange signals that a fixed-width ring overflowed. It is retryable:
// the computation must be discarded and rerun under Kind.Wider().
var ErrRange = errors.New("number: arithmetic range exceeded")

// ErrUnknownKind is returned for Kind values outside the declared set.
var ErrUnknownKind = errors.New("number: unknown integer kind")

// String returns the representation name.
func (k Kind) String() string {
	switch k {
	case Machine:
		return "machine"
	case Big:
		return "big"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Wider returns the next representation and false when k is already widest.
func (k Kind) Wider() (Kind, bool) {
	if k >= Widest {
		return k, false
	}

	return k + 1, true
}

// Valid reports whether k is a declared representation.
func (k Kind) Valid() bool { return k >= Machine && k <= Widest }

// Escalate runs fn under start and reruns it from scratch under wider kinds
// while it returns ErrRange. onRetry, when non-nil, is told about every
// escalation. ErrRange from the widest kind is returned wrapped; every other
// error is returned untouched.
func Escalate(ctx context.Context, start Kind, onRetry func(from, to Kind), fn func(Kind) error) error {
	if !start.Valid() {
		return fmt.Errorf("Escalate(%s): %w", start, ErrUnknownKind)
	}
	k := start
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(k)
		if !errors.Is(err, ErrRange) {
			return err
		}
		next, ok := k.Wider()
		if !ok {
			return fmt.Errorf("Escalate: widest kind %s overflowed: %w", k, err)
		}
		if onRetry != nil {
			onRetry(k, next)
		}
		k = next
	}
}

// Dispatch instantiates a generic computation for kind k. The two callbacks
// are the same generic function bound to the machine and big rings.
func Dispatch(k Kind, machine func(Ring[int64]) error, bigRing func(Ring[*big.Int]) error) error {
	switch k {
	case Machine:
		return machine(NewMachine())
	case Big:
		return bigRing(NewBig())
	default:
		return fmt.Errorf("Dispatch(%s): %w", k, ErrUnknownKind)
	}
}
