// SPDX-License-Identifier: MIT
// Package: lvcone/dual
//
// engine.go - construction, the hyperplane loop and the lifting step.

package dual

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvcone"
	"github.com/katalvlaran/lvcone/candidate"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

// Engine runs dual elimination over the ring of its inputs.
type Engine[T any] struct {
	r        number.Ring[T]
	dim      int
	hyps     *matrix.Dense[T] // non-zero input rows
	origin   []int            // input index of every row of hyps
	subspace *matrix.Dense[T]
	opts     Options
	log      *slog.Logger

	intermediate *candidate.List[T]
}

// New prepares a run for the cone {x : h·x ≥ 0 for every row h of hyps}
// inside the linear space spanned by subspace (rows); nil subspace means the
// whole ambient lattice. Zero rows of hyps are ignored.
func New[T any](hyps, subspace *matrix.Dense[T], opts ...Option) (*Engine[T], error) {
	if hyps == nil {
		return nil, fmt.Errorf("%s: %w", opNew, ErrNilInput)
	}
	dim := hyps.Cols()
	if dim == 0 {
		return nil, fmt.Errorf("%s: ambient dimension 0: %w", opNew, ErrDimension)
	}
	r := hyps.Ring()
	if subspace == nil {
		subspace = matrix.Identity(r, dim)
	} else if subspace.Cols() != dim {
		return nil, fmt.Errorf("%s: subspace width %d, want %d: %w", opNew, subspace.Cols(), dim, ErrDimension)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine[T]{r: r, dim: dim, subspace: subspace.Clone(), opts: o}
	var rows [][]T
	for i := 0; i < hyps.Rows(); i++ {
		if matrix.IsZeroVec(r, hyps.Row(i)) {
			continue
		}
		rows = append(rows, hyps.RowCopy(i))
		e.origin = append(e.origin, i)
	}
	e.hyps, _ = matrix.FromRows(r, dim, rows)
	if o.Truncate && (len(e.origin) == 0 || e.origin[0] != 0) {
		return nil, fmt.Errorf("%s: %w", opNew, ErrNoLevel)
	}
	e.log = o.Logger
	if e.log == nil {
		e.log = lvcone.Logger()
	}

	return e, nil
}

// Run processes all hyperplanes and returns the Hilbert basis.
// The engine can be run only once.
func (e *Engine[T]) Run(ctx context.Context) (*Result[T], error) {
	r := e.r
	e.intermediate = candidate.NewList(r)
	basis := e.subspace
	var err error
	for h := 0; h < e.hyps.Rows(); h++ {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", opRun, err)
		}
		if basis, err = e.cutWithHalfspace(ctx, h, basis); err != nil {
			return nil, err
		}
		if err = number.Check(r); err != nil {
			return nil, fmt.Errorf("%s: hyperplane %d: %w", opRun, h, err)
		}
	}

	if e.opts.Truncate {
		// Higher levels may survive the cut; they are not part of the answer.
		one := r.One()
		kept := e.intermediate.Candidates[:0]
		for _, c := range e.intermediate.Candidates {
			if r.Cmp(c.Values[0], one) <= 0 {
				kept = append(kept, c)
			}
		}
		e.intermediate.Candidates = kept
	}

	res := &Result[T]{MaxSubspace: basis, Pointed: basis.Rows() == 0}
	res.HilbertBasis, _ = matrix.FromRows(r, e.dim, e.intermediate.Vectors())
	if res.Pointed && !e.opts.Truncate {
		ers := e.extremeRays()
		res.ExtremeRays, _ = matrix.FromRows(r, e.dim, candidate.Vectors(ers))
		res.Relevant = e.relevantHyperplanes(ers)
	}
	if err = number.Check(r); err != nil {
		return nil, fmt.Errorf("%s: %w", opRun, err)
	}
	e.log.Debug("dual: done",
		"hilbert_basis", res.HilbertBasis.Rows(),
		"subspace", basis.Rows(),
		"truncated", e.opts.Truncate)

	return res, nil
}

// cutWithHalfspace intersects the current cone with hyperplane h and returns
// the basis of the new maximal subspace.
func (e *Engine[T]) cutWithHalfspace(ctx context.Context, h int, basis *matrix.Dense[T]) (*matrix.Dense[T], error) {
	r := e.r
	lin := e.hyps.Row(h)
	k := basis.Rows()
	newBasis := basis
	var half []T
	if k > 0 {
		restriction, _ := matrix.MxV(basis, lin)
		if !matrix.IsZeroVec(r, restriction) {
			m, _ := matrix.FromRows(r, k, [][]T{restriction})
			cf := matrix.ColumnEchelon(m)
			rebased, _ := matrix.Mul(cf.U.Transpose(), basis)
			half = rebased.RowCopy(0)
			rest := make([]int, 0, k-1)
			for i := 1; i < k; i++ {
				rest = append(rest, i)
			}
			newBasis, _ = matrix.Submatrix(rebased, rest)
		}
	}

	c := &cut[T]{
		e:       e,
		hyp:     h,
		lin:     lin,
		pointed: k == 0,
	}
	if err := c.run(ctx, half); err != nil {
		return nil, err
	}

	return newBasis, nil
}
