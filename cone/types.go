// SPDX-License-Identifier: MIT
// Package: lvcone/cone
//
// types.go - input kinds, properties, errors and options.

package cone

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/katalvlaran/lvcone/number"
)

// Sentinel errors.
var (
	// ErrMalformedInput indicates inconsistent widths, an unknown ambient
	// dimension, a forbidden mix of input kinds or an invalid value (bad
	// modulus, grading not positive on the cone, vertex denominator ≤ 0).
	ErrMalformedInput = errors.New("cone: malformed input")

	// ErrNotComputable indicates a property whose prerequisites are missing.
	// The message names the missing input.
	ErrNotComputable = errors.New("cone: not computable")

	// ErrNotComputed is returned by accessors for properties that were not
	// requested from Compute.
	ErrNotComputed = errors.New("cone: property not computed")

	// ErrWrongAccessor indicates an accessor that does not match the type of
	// the property (for example Matrix(Rank)).
	ErrWrongAccessor = errors.New("cone: property has a different type")

	// ErrInternal indicates a violated invariant or an overflow of the widest
	// integer kind. It is fatal and carries a stack trace.
	ErrInternal = errors.New("cone: internal error")

	// ErrBadThreads indicates a negative thread count.
	ErrBadThreads = errors.New("cone: thread count must be non-negative")
)

// InputType names a matrix of input rows.
type InputType int

const (
	// Generators span the cone; the lattice is Zᵈ ∩ span.
	Generators InputType = iota
	// Normalization spans the cone; the lattice is the one the rows generate.
	Normalization
	// Polytope rows are points; the cone is over P × {1}, graded by the
	// last coordinate.
	Polytope
	// Subspace rows span a linear space contained in the cone.
	Subspace
	// Vertices are the vertices of a polyhedron, last column the positive
	// denominator.
	Vertices
	// PrecomputedExtremeRays paired with PrecomputedSupportHyperplanes are
	// trusted without dualization; alone they act like Generators.
	PrecomputedExtremeRays
	// Inequalities are rows a with a·x ≥ 0.
	Inequalities
	// InhomInequalities are rows (a, b) with a·x + b ≥ 0.
	InhomInequalities
	// Signs is a single row of −1, 0, 1 giving sign conditions per coordinate.
	Signs
	// Equations are rows a with a·x = 0.
	Equations
	// Congruences are rows (a, m) with a·x ≡ 0 mod m.
	Congruences
	// PrecomputedSupportHyperplanes are facets; alone they act like
	// Inequalities.
	PrecomputedSupportHyperplanes
	// Grading is a single row, the degree form.
	Grading
	// Dehomogenization is a single row selecting the homogenizing coordinate.
	Dehomogenization
)

var inputNames = [...]string{
	"Generators", "Normalization", "Polytope", "Subspace", "Vertices",
	"PrecomputedExtremeRays", "Inequalities", "InhomInequalities", "Signs",
	"Equations", "Congruences", "PrecomputedSupportHyperplanes", "Grading",
	"Dehomogenization",
}

func (t InputType) String() string {
	if t >= 0 && int(t) < len(inputNames) {
		return inputNames[t]
	}

	return fmt.Sprintf("InputType(%d)", int(t))
}

// generatorType reports whether rows of t describe the cone from inside.
func (t InputType) generatorType() bool {
	switch t {
	case Generators, Normalization, Polytope, Subspace, Vertices, PrecomputedExtremeRays:
		return true
	}

	return false
}

// constraintType reports whether rows of t cut the cone out.
func (t InputType) constraintType() bool {
	switch t {
	case Inequalities, InhomInequalities, Signs, Equations, Congruences, PrecomputedSupportHyperplanes:
		return true
	}

	return false
}

// inhomogeneous reports whether t implies an inhomogeneous computation.
func (t InputType) inhomogeneous() bool {
	return t == Vertices || t == InhomInequalities || t == Dehomogenization
}

// Property names a computable result or an algorithm hint.
type Property int

const (
	SupportHyperplanes Property = iota
	ExtremeRays
	MaximalSubspace
	Sublattice
	SublatticeEquations
	SublatticeCongruences
	HilbertBasis
	Deg1Elements
	ModuleGenerators
	VerticesOfPolyhedron
	RecessionRank
	Triangulation
	UnimodularTriangulation
	TriangulationDetSum
	Multiplicity
	Volume
	FaceLattice
	FVector
	ClassGroup
	Rank
	EmbeddingDim
	Index
	IsPointed
	IsDeg1HilbertBasis
	IsIntegrallyClosed
	GradingForm

	// DualMode forces dual elimination for Hilbert bases.
	DualMode
	// PrimalMode forces triangulation plus local bases for Hilbert bases.
	PrimalMode
	// DefaultMode restores automatic selection.
	DefaultMode
)

var propNames = [...]string{
	"SupportHyperplanes", "ExtremeRays", "MaximalSubspace", "Sublattice",
	"SublatticeEquations", "SublatticeCongruences", "HilbertBasis", "Deg1Elements",
	"ModuleGenerators", "VerticesOfPolyhedron", "RecessionRank", "Triangulation",
	"UnimodularTriangulation", "TriangulationDetSum", "Multiplicity", "Volume",
	"FaceLattice", "FVector", "ClassGroup", "Rank", "EmbeddingDim", "Index",
	"IsPointed", "IsDeg1HilbertBasis", "IsIntegrallyClosed", "GradingForm",
	"DualMode", "PrimalMode", "DefaultMode",
}

func (p Property) String() string {
	if p >= 0 && int(p) < len(propNames) {
		return propNames[p]
	}

	return fmt.Sprintf("Property(%d)", int(p))
}

func (p Property) hint() bool { return p == DualMode || p == PrimalMode || p == DefaultMode }

// Algorithm selects the Hilbert basis route.
type Algorithm int

const (
	// Auto uses the simplicial shortcut when possible and dual elimination
	// otherwise.
	Auto Algorithm = iota
	// Dual always runs dual elimination.
	Dual
	// Primal triangulates, collects local Hilbert bases and reduces globally.
	Primal
)

func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case Dual:
		return "dual"
	case Primal:
		return "primal"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Cell is a simplex of a triangulation: indices into the generator matrix of
// the triangulation property and the lattice volume.
type Cell struct {
	Key    []int
	Volume *big.Int
}

// Options configures a Cone.
//
// Threads    – workers for every engine; 0 means NumCPU.
// Kind       – integer representation to start with; escalation widens it.
// Algorithm  – Hilbert basis route.
// CodimBound – face lattice depth; −1 is unbounded.
// Logger     – nil means lvcone.Logger().
type Options struct {
	Threads    int
	Kind       number.Kind
	Algorithm  Algorithm
	CodimBound int
	Logger     *slog.Logger
}

// Option configures a Cone.
type Option func(*Options)

// DefaultOptions starts on machine integers with automatic selection.
func DefaultOptions() Options {
	return Options{Kind: number.Machine, Algorithm: Auto, CodimBound: -1}
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

// WithIntegerKind sets the starting integer representation. Panics on
// undeclared kinds.
func WithIntegerKind(k number.Kind) Option {
	return func(o *Options) {
		if !k.Valid() {
			panic(number.ErrUnknownKind.Error())
		}
		o.Kind = k
	}
}

// WithAlgorithm sets the Hilbert basis route. Panics on unknown values.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) {
		if a < Auto || a > Primal {
			panic(fmt.Sprintf("cone: unknown algorithm %d", int(a)))
		}
		o.Algorithm = a
	}
}

// WithCodimBound limits the face lattice to faces of codimension ≤ k; a
// negative k is unbounded.
func WithCodimBound(k int) Option {
	return func(o *Options) {
		if k < 0 {
			k = -1
		}
		o.CodimBound = k
	}
}

// WithLogger sets the logger for selection and escalation records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
