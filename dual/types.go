// SPDX-License-Identifier: MIT
// Package: lvcone/dual
//
// types.go - sentinel errors, options and the result type.

package dual

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/lvcone/matrix"
)

// Sentinel errors.
var (
	// ErrNilInput indicates a nil hyperplane matrix.
	ErrNilInput = errors.New("dual: nil hyperplane matrix")

	// ErrDimension indicates an empty ambient space or a subspace basis of
	// the wrong width.
	ErrDimension = errors.New("dual: dimension mismatch")

	// ErrNoLevel indicates truncation without a level hyperplane.
	ErrNoLevel = errors.New("dual: truncation needs a level hyperplane")

	// ErrBadThreads indicates a negative thread count.
	ErrBadThreads = errors.New("dual: thread count must be non-negative")
)

const (
	opNew = "dual.New"
	opRun = "dual.Run"
	opCut = "dual.cut"
)

// Options configures an Engine.
//
// Truncate – hyperplane 0 is a level form; only elements of level ≤ 1 are kept.
// Threads  – worker goroutines for generation and reduction; 0 means NumCPU.
// Logger   – debug progress; nil means lvcone.Logger().
type Options struct {
	Truncate bool
	Threads  int
	Logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Options)

// DefaultOptions returns the untruncated configuration on all CPUs.
func DefaultOptions() Options {
	return Options{}
}

// WithTruncation restricts the computation to level ≤ 1 of hyperplane 0.
func WithTruncation() Option {
	return func(o *Options) {
		o.Truncate = true
	}
}

// WithThreads sets the worker count. Panics on negative values.
func WithThreads(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadThreads.Error())
		}
		o.Threads = n
	}
}

// WithLogger sets the logger for progress records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Result is the outcome of a run.
//
// HilbertBasis holds the (possibly truncated) Hilbert basis, one element per
// row; for a cone that is not pointed these are representatives modulo the
// maximal subspace, whose lattice basis is MaxSubspace. ExtremeRays and
// Relevant (indices of the input hyperplanes that are facets) are only set
// for pointed, untruncated runs and assume the cone spans the ambient space.
type Result[T any] struct {
	HilbertBasis *matrix.Dense[T]
	MaxSubspace  *matrix.Dense[T]
	ExtremeRays  *matrix.Dense[T]
	Relevant     []int
	Pointed      bool
}
