// SPDX-License-Identifier: MIT
// Package: lvcone/cone
//
// stages.go - triangulation, Hilbert basis, unimodular refinement, faces.

package cone

import (
	"context"
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvcone/candidate"
	"github.com/katalvlaran/lvcone/collection"
	"github.com/katalvlaran/lvcone/dual"
	"github.com/katalvlaran/lvcone/facelattice"
	"github.com/katalvlaran/lvcone/internal/parallel"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/polar"
	"github.com/katalvlaran/lvcone/simplex"
)

// pointedRays returns the extreme rays of the pointed base cone in the frame
// ring. Stages that need rays fail with ErrNotComputable otherwise.
func (f *frame[T]) pointedRays(st stage) (*matrix.Dense[T], error) {
	b := f.c.st.base
	if !b.pointed || b.erL == nil {
		return nil, fmt.Errorf("%s: %s needs a pointed cone: %w", opCompute, st, ErrNotComputable)
	}

	return f.convert(b.erL), nil
}

// degreeForm returns the form degrees are measured with, or nil: the grading
// in the homogeneous case, the dehomogenization of a bounded polyhedron.
func (f *frame[T]) degreeForm() []T {
	b := f.c.st.base
	if !f.c.inhom {
		return f.convertVec(b.gradL)
	}
	if b.recession == 0 {
		return f.convertVec(b.dehomL)
	}

	return nil
}

// triangulate returns the placing triangulation of the extreme rays.
func (f *frame[T]) triangulate(ctx context.Context, er *matrix.Dense[T]) ([]polar.Simplex[T], error) {
	if er.Rows() == 0 || er.Cols() == 0 {
		return nil, nil
	}
	res, err := polar.Dualize(ctx, er, append(f.polarOptions(), polar.WithTriangulation())...)
	if err != nil {
		return nil, err
	}

	return res.Triangulation, nil
}

// triangulationStage computes the triangulation, its determinant sum and,
// when a degree form exists, the multiplicity.
func triangulationStage[T any](ctx context.Context, f *frame[T]) (*results, error) {
	r := f.r
	er, err := f.pointedRays(stageTriangulation)
	if err != nil {
		return nil, err
	}
	tri, err := f.triangulate(ctx, er)
	if err != nil {
		return nil, err
	}

	out := newResults()
	cells := make([]Cell, len(tri))
	frozenTri := make([]polar.Simplex[*big.Int], len(tri))
	sum := new(big.Int)
	deg := f.degreeForm()
	mult := new(big.Rat)
	for i, s := range tri {
		vol := r.ToBig(s.Volume)
		cells[i] = Cell{Key: append([]int(nil), s.Key...), Volume: vol}
		frozenTri[i] = polar.Simplex[*big.Int]{Key: cells[i].Key, Volume: vol}
		sum.Add(sum, vol)
		if deg == nil {
			continue
		}
		den := big.NewInt(1)
		for _, k := range s.Key {
			den.Mul(den, r.ToBig(matrix.Dot(r, deg, er.Row(k))))
		}
		mult.Add(mult, new(big.Rat).SetFrac(vol, den))
	}
	out.tri = frozenTri
	out.cells[Triangulation] = cells
	out.mats[Triangulation] = f.c.st.mats[Triangulation]
	out.ints[TriangulationDetSum] = sum
	if deg != nil {
		out.rats[Multiplicity] = mult
		out.rats[Volume] = new(big.Rat).Set(mult)
	}
	f.c.log.Debug("cone: triangulated", "simplices", len(tri), "det_sum", sum.String())

	return out, nil
}

// wants reports whether any of ps is in want.
func wants(want []Property, ps ...Property) bool {
	for _, w := range want {
		for _, p := range ps {
			if w == p {
				return true
			}
		}
	}

	return false
}

// hilbertStage computes Hilbert bases, degree 1 elements and module
// generators along the requested route.
func hilbertStage[T any](ctx context.Context, f *frame[T], want []Property, alg Algorithm) (*results, error) {
	r := f.r
	b := f.c.st.base
	out := newResults()
	rank := f.lat.Rank()
	sh := f.convert(b.shL)

	if f.c.inhom {
		// Level 0 of the dehomogenization is the recession monoid, level 1
		// the module generators.
		rec, mod := f.empty(rank), f.empty(rank)
		dehom := f.convertVec(b.dehomL)
		if rank > 0 && !matrix.IsZeroVec(r, dehom) {
			hb, err := f.truncated(ctx, dehom, sh)
			if err != nil {
				return nil, err
			}
			for i := 0; i < hb.Rows(); i++ {
				if r.IsZero(matrix.Dot(r, dehom, hb.Row(i))) {
					_ = rec.AppendRow(hb.RowCopy(i))
				} else {
					_ = mod.AppendRow(hb.RowCopy(i))
				}
			}
		}
		if err := f.publishRows(out, HilbertBasis, rec); err != nil {
			return nil, err
		}
		return out, f.publishRows(out, ModuleGenerators, mod)
	}

	deg := f.convertVec(b.gradL)
	if !wants(want, HilbertBasis, IsDeg1HilbertBasis, IsIntegrallyClosed) {
		// Only degree 1 elements: truncate at level 1 of the grading.
		d1 := f.empty(rank)
		if rank > 0 {
			hb, err := f.truncated(ctx, deg, sh)
			if err != nil {
				return nil, err
			}
			d1 = selectDegree(hb, deg)
		}
		return out, f.publishRows(out, Deg1Elements, d1)
	}

	hb := f.empty(rank)
	if rank > 0 {
		var err error
		switch {
		case alg == Primal && b.pointed:
			hb, err = f.primalBasis(ctx, f.convert(b.erL), sh)
		case alg == Auto && b.pointed && b.erL.Rows() == rank:
			f.c.log.Info("cone: simplicial cone, using the parallelepiped")
			var s *simplex.Cone[T]
			if s, err = simplex.New(f.convert(b.erL), nil); err == nil {
				hb, err = s.HilbertBasis(ctx, f.c.opts.Threads)
			}
		default:
			// Dual elimination also covers the non-pointed case: the basis
			// is that of the pointed quotient, lifted.
			hb, err = f.dualBasis(ctx, sh)
		}
		if err != nil {
			return nil, err
		}
	}
	amb, err := f.lat.FromSublatticeRows(hb)
	if err != nil {
		return nil, err
	}
	matrix.SortLex(amb)
	out.mats[HilbertBasis] = toBig(amb)

	if deg != nil {
		d1 := selectDegree(hb, deg)
		if err = f.publishRows(out, Deg1Elements, d1); err != nil {
			return nil, err
		}
		out.bools[IsDeg1HilbertBasis] = d1.Rows() == hb.Rows()
	}
	if f.c.originalGenerators() {
		closed, err := f.integrallyClosed(hb, sh)
		if err != nil {
			return nil, err
		}
		out.bools[IsIntegrallyClosed] = closed
	}

	return out, nil
}

// integrallyClosed reports whether every Hilbert basis element (sublattice
// coordinates) is one of the original generators. Vectors are compared by
// their values on the support hyperplanes, which identifies them modulo the
// maximal subspace.
func (f *frame[T]) integrallyClosed(hb, sh *matrix.Dense[T]) (bool, error) {
	r := f.r
	gens, err := f.lat.ToSublatticeRows(f.rows(Generators, Normalization, Polytope))
	if err != nil {
		return false, err
	}
	switch {
	case hb.Rows() == 0:
		return true, nil
	case hb.Rows() > gens.Rows():
		return false, nil
	}
	key := func(v []T) (string, error) {
		vals, err := matrix.MxV(sh, v)
		if err != nil {
			return "", err
		}
		return matrix.VectorKey(r, vals), nil
	}
	known := make(map[string]struct{}, gens.Rows())
	for i := 0; i < gens.Rows(); i++ {
		k, err := key(gens.Row(i))
		if err != nil {
			return false, err
		}
		known[k] = struct{}{}
	}
	for i := 0; i < hb.Rows(); i++ {
		k, err := key(hb.Row(i))
		if err != nil {
			return false, err
		}
		if _, ok := known[k]; !ok {
			return false, nil
		}
	}

	return true, nil
}

// publishRows stores sublattice rows under p in sorted ambient coordinates.
func (f *frame[T]) publishRows(out *results, p Property, rows *matrix.Dense[T]) error {
	amb, err := f.lat.FromSublatticeRows(rows)
	if err != nil {
		return err
	}
	matrix.SortLex(amb)
	out.mats[p] = toBig(amb)

	return nil
}

// selectDegree keeps the rows of m of degree 1.
func selectDegree[T any](m *matrix.Dense[T], deg []T) *matrix.Dense[T] {
	r := m.Ring()
	var keep []int
	for i := 0; i < m.Rows(); i++ {
		if r.Equal(matrix.Dot(r, deg, m.Row(i)), r.One()) {
			keep = append(keep, i)
		}
	}
	out, _ := matrix.Submatrix(m, keep)

	return out
}

func (f *frame[T]) dualOptions(truncate bool) []dual.Option {
	opts := []dual.Option{dual.WithThreads(f.c.opts.Threads), dual.WithLogger(f.c.log)}
	if truncate {
		opts = append(opts, dual.WithTruncation())
	}

	return opts
}

// dualBasis runs dual elimination on the support hyperplanes.
func (f *frame[T]) dualBasis(ctx context.Context, sh *matrix.Dense[T]) (*matrix.Dense[T], error) {
	f.c.log.Info("cone: dual elimination", "hyperplanes", sh.Rows())
	e, err := dual.New(sh, nil, f.dualOptions(false)...)
	if err != nil {
		return nil, err
	}
	res, err := e.Run(ctx)
	if err != nil {
		return nil, err
	}

	return res.HilbertBasis, nil
}

// truncated runs dual elimination with level as hyperplane 0 and returns the
// elements of level ≤ 1.
func (f *frame[T]) truncated(ctx context.Context, level []T, sh *matrix.Dense[T]) (*matrix.Dense[T], error) {
	hyps, _ := matrix.FromRows(f.r, len(level), [][]T{level})
	hyps, err := matrix.Concat(hyps, sh)
	if err != nil {
		return nil, err
	}
	e, err := dual.New(hyps, nil, f.dualOptions(true)...)
	if err != nil {
		return nil, err
	}
	res, err := e.Run(ctx)
	if err != nil {
		return nil, err
	}

	return res.HilbertBasis, nil
}

// primalBasis triangulates, collects the local Hilbert bases in parallel and
// reduces their union against the support hyperplanes.
func (f *frame[T]) primalBasis(ctx context.Context, er, sh *matrix.Dense[T]) (*matrix.Dense[T], error) {
	r := f.r
	tri, err := f.triangulate(ctx, er)
	if err != nil {
		return nil, err
	}
	f.c.log.Info("cone: primal route", "simplices", len(tri))
	parts, err := parallel.Map(ctx, len(tri), f.c.opts.Threads, func(ctx context.Context, blk parallel.Block) ([][][]T, error) {
		var local [][][]T
		for _, s := range tri[blk.Lo:blk.Hi] {
			sc, err := simplex.New(er, s.Key)
			if err != nil {
				return nil, err
			}
			hb, err := sc.HilbertBasis(ctx, 1)
			if err != nil {
				return nil, err
			}
			local = append(local, hb.ToRows())
		}
		return local, nil
	})
	if err != nil {
		return nil, err
	}

	list := candidate.NewList(r)
	seen := make(map[string]struct{})
	for _, part := range parts {
		for _, rows := range part {
			for _, v := range rows {
				key := matrix.VectorKey(r, v)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				values, err := matrix.MxV(sh, v)
				if err != nil {
					return nil, err
				}
				list.Append(candidate.FromValues(r, v, values))
			}
		}
	}
	if err = list.AutoReduce(ctx, f.c.opts.Threads); err != nil {
		return nil, err
	}
	hb, _ := matrix.FromRows(r, er.Cols(), list.Vectors())

	return hb, nil
}

// unimodularStage refines the triangulation until every cell is unimodular.
func unimodularStage[T any](ctx context.Context, f *frame[T]) (*results, error) {
	r := f.r
	if len(f.c.st.tri) == 0 {
		out := newResults()
		out.mats[UnimodularTriangulation] = f.c.st.mats[Triangulation]
		out.cells[UnimodularTriangulation] = []Cell{}
		return out, nil
	}
	er, err := f.pointedRays(stageUnimodular)
	if err != nil {
		return nil, err
	}
	tri := make([]polar.Simplex[T], len(f.c.st.tri))
	for i, s := range f.c.st.tri {
		tri[i] = polar.Simplex[T]{Key: s.Key, Volume: r.FromBig(s.Volume)}
	}
	coll, err := collection.New(er, tri, collection.WithThreads(f.c.opts.Threads), collection.WithLogger(f.c.log))
	if err != nil {
		return nil, err
	}
	if err = coll.MakeUnimodular(ctx); err != nil {
		return nil, err
	}

	out := newResults()
	gens, err := f.lat.FromSublatticeRows(coll.Generators())
	if err != nil {
		return nil, err
	}
	out.mats[UnimodularTriangulation] = toBig(gens)
	flat := coll.Flatten()
	cells := make([]Cell, len(flat))
	for i, s := range flat {
		cells[i] = Cell{Key: s.Key, Volume: r.ToBig(s.Volume)}
	}
	out.cells[UnimodularTriangulation] = cells
	f.c.log.Debug("cone: unimodular", "cells", len(cells), "subdivisions", coll.Subdivisions())

	return out, nil
}

// faceStage computes the face lattice of the pointed cone.
func faceStage[T any](ctx context.Context, f *frame[T]) (*results, error) {
	b := f.c.st.base
	opts := []facelattice.Option{
		facelattice.WithCodimBound(f.c.opts.CodimBound),
		facelattice.WithThreads(f.c.opts.Threads),
		facelattice.WithLogger(f.c.log),
	}
	if f.c.inhom && b.nVert > 0 {
		opts = append(opts, facelattice.WithVertices(b.nVert))
	}
	er, err := f.pointedRays(stageFaces)
	if err != nil {
		return nil, err
	}
	l, err := facelattice.Compute(ctx, er, f.convert(b.shL), opts...)
	if err != nil {
		return nil, err
	}

	out := newResults()
	out.faces = l
	fv := make([]*big.Int, len(l.FVector()))
	for i, n := range l.FVector() {
		fv[i] = big.NewInt(int64(n))
	}
	out.lists[FVector] = fv

	return out, nil
}
