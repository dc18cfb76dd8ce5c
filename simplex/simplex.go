// SPDX-License-Identifier: MIT
// Package: lvcone/simplex
//
// simplex.go - simplicial cone data, parallelepiped and local Hilbert basis.

package simplex

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvcone/candidate"
	"github.com/katalvlaran/lvcone/internal/parallel"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

var (
	// ErrNilInput indicates a nil generator matrix.
	ErrNilInput = errors.New("simplex: nil generator matrix")

	// ErrKey indicates a key whose size differs from the dimension.
	ErrKey = errors.New("simplex: key size must equal the dimension")

	// ErrDegenerate indicates linearly dependent generators.
	ErrDegenerate = errors.New("simplex: generators are linearly dependent")

	// ErrTooLarge indicates a volume too large to enumerate.
	ErrTooLarge = errors.New("simplex: volume too large to enumerate")
)

const (
	opNew            = "simplex.New"
	opParallelepiped = "simplex.Parallelepiped"
)

// Cone is a simplicial cone.
type Cone[T any] struct {
	r    number.Ring[T]
	key  []int
	gens *matrix.Dense[T]
	vol  T
	hyps *matrix.Dense[T]
	// coords row i is the oriented adjugate column i: coords_i·g_k = vol·δ_ik.
	coords *matrix.Dense[T]
}

// New returns the simplicial cone on the rows of gens listed in key; a nil
// key takes all rows.
func New[T any](gens *matrix.Dense[T], key []int) (*Cone[T], error) {
	if gens == nil {
		return nil, fmt.Errorf("%s: %w", opNew, ErrNilInput)
	}
	if key == nil {
		key = make([]int, gens.Rows())
		for i := range key {
			key[i] = i
		}
	}
	d := gens.Cols()
	if len(key) != d {
		return nil, fmt.Errorf("%s: %d generators in dimension %d: %w", opNew, len(key), d, ErrKey)
	}
	sub, err := matrix.Submatrix(gens, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	r := gens.Ring()
	det, err := matrix.Determinant(sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	if r.IsZero(det) {
		return nil, fmt.Errorf("%s: key %v: %w", opNew, key, ErrDegenerate)
	}
	adj, err := matrix.Adjugate(sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	coords := adj.Transpose()
	if r.Sign(det) < 0 {
		coords = matrix.Negated(coords)
	}
	hyps := coords.Clone()
	matrix.MakeRowsPrimitive(hyps)

	s := &Cone[T]{
		r:      r,
		key:    append([]int(nil), key...),
		gens:   sub,
		vol:    r.Abs(det),
		hyps:   hyps,
		coords: coords,
	}
	if err = number.Check(r); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return s, nil
}

// Volume returns |det| of the rows of gens listed in key.
func Volume[T any](gens *matrix.Dense[T], key []int) (T, error) {
	sub, err := matrix.Submatrix(gens, key)
	if err != nil {
		var zero T
		return zero, err
	}
	det, err := matrix.Determinant(sub)
	if err != nil {
		var zero T
		return zero, err
	}

	return gens.Ring().Abs(det), nil
}

// Key returns the generator indices.
func (s *Cone[T]) Key() []int { return s.key }

// Generators returns the generators as rows, in key order.
func (s *Cone[T]) Generators() *matrix.Dense[T] { return s.gens }

// Volume returns the lattice volume |det G|.
func (s *Cone[T]) Volume() T { return s.vol }

// IsUnimodular reports whether the generators form a lattice basis.
func (s *Cone[T]) IsUnimodular() bool { return s.r.Equal(s.vol, s.r.One()) }

// SupportHyperplanes returns the primitive facet normals; row i does not
// vanish on generator i.
func (s *Cone[T]) SupportHyperplanes() *matrix.Dense[T] { return s.hyps }

// Coordinates returns c with v = Σ cᵢ·gᵢ / Volume().
func (s *Cone[T]) Coordinates(v []T) []T {
	out, _ := matrix.MxV(s.coords, v)
	return out
}

// Contains reports whether v lies in the cone.
func (s *Cone[T]) Contains(v []T) bool {
	for _, c := range s.Coordinates(v) {
		if s.r.Sign(c) < 0 {
			return false
		}
	}

	return true
}

// Parallelepiped returns the non-zero lattice points of the half-open
// fundamental parallelepiped. The order is fixed by the Hermite normal form
// and does not depend on threads.
func (s *Cone[T]) Parallelepiped(ctx context.Context, threads int) ([][]T, error) {
	r := s.r
	vb := r.ToBig(s.vol)
	if !vb.IsInt64() || vb.Int64() > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("%s: volume %s: %w", opParallelepiped, vb, ErrTooLarge)
	}
	total := int(vb.Int64())
	if total == 1 {
		return nil, nil
	}
	hnf, pivots := matrix.Hermite(s.gens)
	radix := make([]int, len(pivots))
	for j, p := range pivots {
		h, _ := hnf.At(j, p)
		radix[j] = int(r.ToBig(h).Int64())
	}
	d := s.gens.Cols()

	// index 0 is the zero representative
	blocks, err := parallel.Map(ctx, total-1, threads, func(ctx context.Context, b parallel.Block) ([][]T, error) {
		out := make([][]T, 0, b.Hi-b.Lo)
		a := make([]T, d)
		for t := b.Lo + 1; t <= b.Hi; t++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for j := range a {
				a[j] = r.Zero()
			}
			rest := t
			for j, m := range radix {
				a[pivots[j]] = r.FromInt64(int64(rest % m))
				rest /= m
			}
			out = append(out, s.reduce(a))
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opParallelepiped, err)
	}
	var points [][]T
	for _, blk := range blocks {
		points = append(points, blk...)
	}
	if err = number.Check(r); err != nil {
		return nil, fmt.Errorf("%s: %w", opParallelepiped, err)
	}

	return points, nil
}

// reduce moves a into the fundamental parallelepiped.
func (s *Cone[T]) reduce(a []T) []T {
	r := s.r
	c := s.Coordinates(a)
	p := matrix.NewVector(r, s.gens.Cols())
	for i, ci := range c {
		m := r.Mod(ci, s.vol)
		if r.IsZero(m) {
			continue
		}
		p = matrix.AddVec(r, p, matrix.Scale(r, m, s.gens.Row(i)))
	}
	matrix.DivideVec(r, p, s.vol)

	return p
}

// HilbertBasis returns the Hilbert basis of the cone, sorted lexicographically.
func (s *Cone[T]) HilbertBasis(ctx context.Context, threads int) (*matrix.Dense[T], error) {
	r := s.r
	points, err := s.Parallelepiped(ctx, threads)
	if err != nil {
		return nil, err
	}
	l := candidate.NewList(r)
	for i := 0; i < s.gens.Rows(); i++ {
		l.Append(s.candidate(s.gens.RowCopy(i)))
	}
	for _, p := range points {
		l.Append(s.candidate(p))
	}
	if err = l.AutoReduce(ctx, threads); err != nil {
		return nil, err
	}
	hb, _ := matrix.FromRows(r, s.gens.Cols(), l.Vectors())
	matrix.SortLex(hb)

	return hb, number.Check(r)
}

func (s *Cone[T]) candidate(v []T) *candidate.Candidate[T] {
	vals, _ := matrix.MxV(s.hyps, v)
	return candidate.FromValues(s.r, v, vals)
}
