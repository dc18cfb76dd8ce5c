// SPDX-License-Identifier: MIT

// Package builder provides deterministic lattice polytope fixtures for tests,
// examples and benchmarks of the cone facade, in the same functional options
// style as the rest of lvcone.
//
// The package offers:
//
//   - Configuration primitives:
//     – BuilderOption: a function that mutates builderConfig before use.
//     – WithSeed / WithRand: the RNG of stochastic constructors.
//     – WithScale: dilation of every emitted point.
//   - Constructors (Constructor closures, applied by Build in order):
//     – Simplex(d, k):                  k·Δ_d, normalized volume k^d.
//     – Cube(d), Box(sides...):         boxes, normalized volume d!·Π s_i.
//     – CrossPolytope(d):               conv(±e_i), normalized volume 2^d.
//     – RandomLatticePolytope(d, n, m): n random points of [0,m]^d.
//   - Fixture: the resulting points, with Input, Homogenized and Cone helpers.
//
// Guarantees:
//
//   - Same constructors, options and seed ⇒ identical rows in identical order.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors never panic; they return sentinel errors wrapped with the
//     constructor name.
package builder
