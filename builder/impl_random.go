// SPDX-License-Identifier: MIT
// Package: lvcone/builder
//
// impl_random.go - RandomLatticePolytope(d, n, bound).
//
// Contract:
//   • d ≥ 1, n ≥ d+1, bound ≥ 1 (else ErrTooFewVertices).
//   • cfg.rng must be set (else ErrNeedRandSource).
//   • Draws n points of [0,bound]^d, coordinate by coordinate; a draw whose
//     points do not span R^d is discarded. After maxAttempts discarded draws
//     the constructor gives up with ErrConstructFailed.
//
// Determinism: identical seed ⇒ identical points.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

const (
	methodRandom = "RandomLatticePolytope"
	maxAttempts  = 64
)

// RandomLatticePolytope returns a Constructor for the convex hull of n random
// lattice points of [0,bound]^d.
func RandomLatticePolytope(d, n, bound int) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if d < minDim || n < d+1 || bound < 1 {
			return fmt.Errorf("%s: d=%d n=%d bound=%d: %w", methodRandom, d, n, bound, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandom, ErrNeedRandSource)
		}

		r := number.NewMachine()
		for attempt := 0; attempt < maxAttempts; attempt++ {
			pts := make([][]int64, n)
			for i := range pts {
				pts[i] = make([]int64, d+1)
				for j := 0; j < d; j++ {
					pts[i][j] = int64(cfg.rng.Intn(bound + 1))
				}
				pts[i][d] = 1
			}
			m, err := matrix.FromInt64[int64](r, d+1, pts)
			if err != nil {
				return fmt.Errorf("%s: %w", methodRandom, err)
			}
			if matrix.Rank(m) < d+1 {
				continue
			}
			for _, p := range pts {
				if err = f.add(methodRandom, cfg, p[:d]); err != nil {
					return err
				}
			}
			f.rename(fmt.Sprintf("%s(%d,%d,%d)", methodRandom, d, n, bound))
			return nil
		}

		return fmt.Errorf("%s: no full dimensional draw in %d attempts: %w", methodRandom, maxAttempts, ErrConstructFailed)
	}
}
