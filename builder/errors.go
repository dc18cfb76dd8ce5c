// SPDX-License-Identifier: MIT
// Package: lvcone/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context using `%w`.
//   • Constructors MUST NOT panic at runtime; validation panics are confined
//     to option constructor functions (WithX...).

package builder

import "errors"

// ErrTooFewVertices indicates that a numeric parameter (dimension, number of
// points, side length, scale) is smaller than the allowed minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that a stochastic constructor requires a non-nil
// *rand.Rand in the resolved builderConfig (WithSeed/WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrDimensionMismatch indicates constructors of different dimensions applied
// to one Fixture.
var ErrDimensionMismatch = errors.New("builder: dimension mismatch")

// ErrConstructFailed indicates a Build call without a usable constructor, or
// a stochastic constructor that could not reach full dimension.
var ErrConstructFailed = errors.New("builder: construction failed")
