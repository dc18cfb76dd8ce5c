// SPDX-License-Identifier: MIT
// Package: lvcone/polar
//
// types.go - errors, options and results.

package polar

import (
	"errors"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvcone/matrix"
)

var (
	// ErrNilInput indicates a nil generator matrix.
	ErrNilInput = errors.New("polar: nil generator matrix")

	// ErrNotFullDimensional indicates generators of rank below the ambient
	// dimension.
	ErrNotFullDimensional = errors.New("polar: generators do not span the space")

	// ErrBadThreads indicates a negative thread count.
	ErrBadThreads = errors.New("polar: thread count must be non-negative")
)

const opDualize = "polar.Dualize"

// Options configures Dualize.
type Options struct {
	Triangulate bool
	Threads     int
	Logger      *slog.Logger
}

// Option configures Dualize.
type Option func(*Options)

// WithTriangulation requests the placing triangulation.
func WithTriangulation() Option {
	return func(o *Options) { o.Triangulate = true }
}

// WithThreads sets the worker count; 0 means NumCPU. Panics on negatives.
func WithThreads(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadThreads.Error())
		}
		o.Threads = n
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Simplex is a full-dimensional cell of a triangulation: indices of the
// generators spanning it (ascending) and the absolute determinant of those
// generators.
type Simplex[T any] struct {
	Key    []int
	Volume T
}

// Result of Dualize.
type Result[T any] struct {
	// Hyperplanes are the primitive support hyperplanes, sorted lexicographically.
	Hyperplanes *matrix.Dense[T]

	// Incidence[i] holds the generators lying on Hyperplanes row i.
	Incidence []*bitset.BitSet

	// Extreme lists the generators spanning extreme rays, one per ray (the
	// first among collinear ones). Empty when the cone is not pointed.
	Extreme []int

	// Pointed reports whether the hyperplanes have full rank.
	Pointed bool

	// Triangulation is the placing triangulation, if requested.
	Triangulation []Simplex[T]
}
