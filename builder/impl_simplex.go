// SPDX-License-Identifier: MIT
// Package: lvcone/builder
//
// impl_simplex.go - Simplex(d, k) and CrossPolytope(d).
//
// Contract:
//   • d ≥ 1, k ≥ 1 (else ErrTooFewVertices).
//   • Simplex emits the origin, then k·e_1 … k·e_d.
//   • CrossPolytope emits e_1, −e_1, e_2, −e_2, ….

package builder

import "fmt"

const (
	methodSimplex = "Simplex"
	methodCross   = "CrossPolytope"
	minDim        = 1
)

// Simplex returns a Constructor for the dilated standard simplex k·Δ_d.
func Simplex(d, k int) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if d < minDim || k < 1 {
			return fmt.Errorf("%s: d=%d k=%d: %w", methodSimplex, d, k, ErrTooFewVertices)
		}
		if err := f.add(methodSimplex, cfg, make([]int64, d)); err != nil {
			return err
		}
		for i := 0; i < d; i++ {
			p := make([]int64, d)
			p[i] = int64(k)
			if err := f.add(methodSimplex, cfg, p); err != nil {
				return err
			}
		}
		f.rename(fmt.Sprintf("%s(%d,%d)", methodSimplex, d, k))

		return nil
	}
}

// CrossPolytope returns a Constructor for conv(±e_i).
func CrossPolytope(d int) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if d < minDim {
			return fmt.Errorf("%s: d=%d: %w", methodCross, d, ErrTooFewVertices)
		}
		for i := 0; i < d; i++ {
			for _, s := range []int64{1, -1} {
				p := make([]int64, d)
				p[i] = s
				if err := f.add(methodCross, cfg, p); err != nil {
					return err
				}
			}
		}
		f.rename(fmt.Sprintf("%s(%d)", methodCross, d))

		return nil
	}
}
