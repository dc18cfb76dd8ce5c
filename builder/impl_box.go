// SPDX-License-Identifier: MIT
// Package: lvcone/builder
//
// impl_box.go - Cube(d) and Box(sides...).
//
// Contract:
//   • d ≥ 1 and every side ≥ 1 (else ErrTooFewVertices).
//   • Vertices in binary counting order: bit j of the index selects the far
//     end of coordinate d−1−j, so the first vertex is the origin and the
//     rows come out lexicographically sorted.
//
// Complexity: O(2^d · d) time and space.

package builder

import "fmt"

const (
	methodCube = "Cube"
	methodBox  = "Box"
	maxBoxDim  = 20
)

// Cube returns a Constructor for the unit cube {0,1}^d.
func Cube(d int) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if d < minDim {
			return fmt.Errorf("%s: d=%d: %w", methodCube, d, ErrTooFewVertices)
		}
		sides := make([]int, d)
		for i := range sides {
			sides[i] = 1
		}
		if err := emitBox(methodCube, f, cfg, sides); err != nil {
			return err
		}
		f.rename(fmt.Sprintf("%s(%d)", methodCube, d))

		return nil
	}
}

// Box returns a Constructor for the box Π[0, s_i].
func Box(sides ...int) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if len(sides) < minDim {
			return fmt.Errorf("%s: no sides: %w", methodBox, ErrTooFewVertices)
		}
		for i, s := range sides {
			if s < 1 {
				return fmt.Errorf("%s: side %d is %d: %w", methodBox, i, s, ErrTooFewVertices)
			}
		}
		if err := emitBox(methodBox, f, cfg, sides); err != nil {
			return err
		}
		f.rename(fmt.Sprintf("%s%v", methodBox, sides))

		return nil
	}
}

func emitBox(method string, f *Fixture, cfg builderConfig, sides []int) error {
	d := len(sides)
	if d > maxBoxDim {
		return fmt.Errorf("%s: d=%d > max=%d: %w", method, d, maxBoxDim, ErrConstructFailed)
	}
	for mask := 0; mask < 1<<d; mask++ {
		p := make([]int64, d)
		for j := 0; j < d; j++ {
			if mask&(1<<(d-1-j)) != 0 {
				p[j] = int64(sides[j])
			}
		}
		if err := f.add(method, cfg, p); err != nil {
			return err
		}
	}

	return nil
}
