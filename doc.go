// SPDX-License-Identifier: MIT

// Package lvcone is an exact-arithmetic engine for rational polyhedral cones.
//
// Given a cone by generators or by inequalities, equations and congruences it
// computes extreme rays and support hyperplanes, the Hilbert basis of the
// monoid of lattice points, unimodular triangulations and the face lattice.
//
// Everything is organized into flat subpackages:
//
//	number/      - exact integer rings: int64 with overflow detection, *big.Int
//	matrix/      - exact dense matrices: echelon, Hermite, Smith, kernel, det
//	sublattice/  - coordinate changes between Zⁿ and a sublattice
//	candidate/   - value-ordered candidate lists for Hilbert basis search
//	dual/        - dual elimination (Hilbert basis by cutting with hyperplanes)
//	polar/       - double description dualization and placing triangulation
//	simplex/     - simplicial cones: fundamental parallelepiped, local basis
//	collection/  - refinable cone collections and unimodular subdivision
//	facelattice/ - faces by codimension over bitsets
//	cone/        - the Cone facade: inputs, properties, Compute
//	builder/     - deterministic fixture cones and polytopes
//
// The root package only carries the shared logger (see SetLogger).
//
// Quick example:
//
//	c, _ := cone.New(map[cone.InputType][][]int64{
//		cone.Generators: {{1, 0}, {1, 2}},
//	})
//	_ = c.Compute(ctx, cone.HilbertBasis)
//	hb, _ := c.Matrix(cone.HilbertBasis) // [[1 0] [1 1] [1 2]]
package lvcone
