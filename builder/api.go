// SPDX-License-Identifier: MIT
// Package: lvcone/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: Build(bopts, cons...). Resolves cfg, runs cons in order,
//     each one appending lattice points to the same Fixture.
//   - All public factories are declared here, implemented in impl_*.go.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical rows.
//   - Safety: never panic; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvcone/cone"
)

// Fixture is a lattice polytope given by points (rows without the
// homogenizing coordinate). Several constructors applied to one Fixture
// describe the convex hull of the union.
type Fixture struct {
	// Name joins the constructor names in application order.
	Name string
	// Dim is the dimension of the points; 0 until the first constructor runs.
	Dim int
	// Points are the rows in emission order.
	Points [][]int64
}

// Constructor appends the points of one polytope using the resolved config.
// Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Emit points in a stable, documented order.
//   - Keep f.Dim consistent (ErrDimensionMismatch otherwise).
type Constructor func(f *Fixture, cfg builderConfig) error

// Build resolves the builder configuration from bopts and applies all
// constructors in order to a fresh Fixture.
//
// Errors:
//   - Wraps constructor errors via %w; branch with errors.Is against the
//     builder sentinels (ErrTooFewVertices, ErrNeedRandSource, ...).
func Build(bopts []BuilderOption, cons ...Constructor) (*Fixture, error) {
	cfg := newBuilderConfig(bopts...)
	if len(cons) == 0 {
		return nil, fmt.Errorf("Build: no constructor: %w", ErrConstructFailed)
	}

	f := &Fixture{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(f, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return f, nil
}

// Input returns the fixture as cone input: its points as Polytope rows.
func (f *Fixture) Input() map[cone.InputType][][]int64 {
	rows := make([][]int64, len(f.Points))
	for i, p := range f.Points {
		rows[i] = append([]int64(nil), p...)
	}

	return map[cone.InputType][][]int64{cone.Polytope: rows}
}

// Cone builds the cone over the fixture.
func (f *Fixture) Cone(opts ...cone.Option) (*cone.Cone, error) {
	return cone.New(f.Input(), opts...)
}

// Homogenized returns the points with a trailing 1, the generators of the
// cone over the fixture.
func (f *Fixture) Homogenized() [][]int64 {
	out := make([][]int64, len(f.Points))
	for i, p := range f.Points {
		out[i] = append(append(make([]int64, 0, len(p)+1), p...), 1)
	}

	return out
}

// add appends p, scaled by cfg.scale, after checking its dimension.
// method names the caller in errors.
func (f *Fixture) add(method string, cfg builderConfig, p []int64) error {
	if f.Dim == 0 {
		f.Dim = len(p)
	}
	if len(p) != f.Dim {
		return fmt.Errorf("%s: point of dimension %d, fixture has %d: %w", method, len(p), f.Dim, ErrDimensionMismatch)
	}
	row := make([]int64, len(p))
	for i, v := range p {
		row[i] = v * cfg.scale
	}
	f.Points = append(f.Points, row)

	return nil
}

// rename appends a constructor name to f.Name.
func (f *Fixture) rename(name string) {
	if f.Name == "" {
		f.Name = name
		return
	}
	f.Name += "+" + name
}

// =============================================================================
// Factories (declarations) - implemented in impl_*.go
// =============================================================================
//
// Simplex(d, k) builds k·Δ_d: the origin and k·e_i (d ≥ 1, k ≥ 1).
// Normalized volume k^d.
//func Simplex(d, k int) Constructor
//
// Cube(d) builds {0,1}^d in binary counting order (d ≥ 1). Normalized volume d!.
//func Cube(d int) Constructor
//
// Box(sides...) builds Π[0, s_i] in binary counting order (every s_i ≥ 1).
// Normalized volume d!·Π s_i.
//func Box(sides ...int) Constructor
//
// CrossPolytope(d) builds ±e_i, positive first (d ≥ 1). Normalized volume 2^d.
//func CrossPolytope(d int) Constructor
//
// RandomLatticePolytope(d, n, bound) draws n points of [0,bound]^d from cfg.rng.
//func RandomLatticePolytope(d, n, bound int) Constructor
