// SPDX-License-Identifier: MIT
// Package: lvcone/cone
//
// base.go - dualization: support hyperplanes, extreme rays, lattice data.
//
// Generator input: the generators in sublattice coordinates span the space,
// so polar.Dualize gives the facets and the extreme rays at once.
// Constraint input: the inequalities are dualized instead; their facets are
// the extreme rays and the extreme inequalities the facets. A cone that is
// not full dimensional shows up as a non-pointed dual: its lineality gives
// implicit equations, and the lattice is rebuilt with them.

package cone

import (
	"context"
	"math/big"
	"sort"

	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
	"github.com/katalvlaran/lvcone/polar"
	"github.com/katalvlaran/lvcone/sublattice"
)

// dualData is the outcome of dualization in sublattice coordinates.
type dualData[T any] struct {
	sh, er, sub *matrix.Dense[T]
	pointed     bool
}

func (f *frame[T]) polarOptions() []polar.Option {
	return []polar.Option{polar.WithThreads(f.c.opts.Threads), polar.WithLogger(f.c.log)}
}

// baseStage computes every property of the base stage.
func baseStage[T any](ctx context.Context, f *frame[T]) (*results, error) {
	var (
		dd       *dualData[T]
		implicit *matrix.Dense[T]
		err      error
	)
	switch {
	case f.c.trusted():
		dd, err = f.trustedDual()
	case f.c.generatorInput():
		dd, err = f.dualizeGenerators(ctx)
	default:
		for {
			var eqs *matrix.Dense[T]
			dd, eqs, err = f.dualizeConstraints(ctx)
			if err != nil || eqs == nil {
				break
			}
			if implicit == nil {
				implicit = eqs
			} else if implicit, err = matrix.Concat(implicit, eqs); err != nil {
				break
			}
			if err = f.buildLattice(implicit); err != nil {
				break
			}
			f.c.log.Debug("cone: implicit equations", "rows", implicit.Rows(), "rank", f.lat.Rank())
		}
	}
	if err != nil {
		return nil, err
	}

	out := newResults()
	fz := &frozen{pointed: dd.pointed}
	if implicit != nil {
		fz.implicit = toBig(implicit)
	}
	if err = f.publishDual(dd, fz, out); err != nil {
		return nil, err
	}
	if err = f.publishLattice(dd, fz, out); err != nil {
		return nil, err
	}
	if err = f.publishGrading(dd, fz, out); err != nil {
		return nil, err
	}
	if err = number.Check(f.r); err != nil {
		return nil, err
	}
	out.base = fz

	return out, nil
}

// trustedDual maps precomputed rays and facets into sublattice coordinates
// and checks that they fit together.
func (f *frame[T]) trustedDual() (*dualData[T], error) {
	r := f.r
	er, err := f.lat.ToSublatticeRows(f.in[PrecomputedExtremeRays])
	if err != nil {
		return nil, err
	}
	matrix.MakeRowsPrimitive(er)
	er = matrix.RemoveDuplicateRows(matrix.RemoveZeroRows(er))
	sh, err := f.lat.ToSublatticeDualRows(f.in[PrecomputedSupportHyperplanes])
	if err != nil {
		return nil, err
	}
	sh = matrix.RemoveDuplicateRows(matrix.RemoveZeroRows(sh))
	if matrix.Rank(sh) != f.lat.Rank() {
		return nil, malformed(opCompute, "precomputed support hyperplanes of rank %d, want %d", matrix.Rank(sh), f.lat.Rank())
	}
	for i := 0; i < sh.Rows(); i++ {
		for j := 0; j < er.Rows(); j++ {
			if r.Sign(matrix.Dot(r, sh.Row(i), er.Row(j))) < 0 {
				return nil, malformed(opCompute, "extreme ray %d violates support hyperplane %d", j, i)
			}
		}
	}

	return &dualData[T]{sh: sh, er: er, sub: f.empty(f.lat.Rank()), pointed: true}, nil
}

func (f *frame[T]) dualizeGenerators(ctx context.Context) (*dualData[T], error) {
	g, err := f.lat.ToSublatticeRows(f.generators())
	if err != nil {
		return nil, err
	}
	res, err := polar.Dualize(ctx, g, f.polarOptions()...)
	if err != nil {
		return nil, err
	}
	dd := &dualData[T]{sh: res.Hyperplanes, pointed: res.Pointed}
	if !res.Pointed {
		dd.sub = matrix.Kernel(res.Hyperplanes)
		return dd, nil
	}
	if dd.er, err = matrix.Submatrix(g, res.Extreme); err != nil {
		return nil, err
	}
	matrix.MakeRowsPrimitive(dd.er)
	dd.sub = f.empty(f.lat.Rank())

	return dd, nil
}

// dualizeConstraints returns either the dual data or, for a cone that is
// not full dimensional, the implicit equations as ambient forms.
// Stage 1: restrict the inequalities to L; their span is the dual lattice D.
// Stage 2: dualize them in D coordinates.
// Stage 3: a non-pointed result yields equations; otherwise read off facets.
func (f *frame[T]) dualizeConstraints(ctx context.Context) (*dualData[T], *matrix.Dense[T], error) {
	rank := f.lat.Rank()
	ineq, err := f.lat.ToSublatticeDualRows(f.inequalities())
	if err != nil {
		return nil, nil, err
	}
	ineq = matrix.RemoveZeroRows(ineq)
	if rank == 0 {
		return &dualData[T]{sh: f.empty(0), er: f.empty(0), sub: f.empty(0), pointed: true}, nil, nil
	}
	s := matrix.Rank(ineq)
	if s == 0 {
		return &dualData[T]{sh: f.empty(rank), sub: matrix.Identity(f.r, rank)}, nil, nil
	}

	dl, err := sublattice.FromGenerators(ineq, true)
	if err != nil {
		return nil, nil, err
	}
	q, err := dl.ToSublatticeRows(ineq)
	if err != nil {
		return nil, nil, err
	}
	res, err := polar.Dualize(ctx, q, f.polarOptions()...)
	if err != nil {
		return nil, nil, err
	}

	if !res.Pointed {
		// Forms in the lineality of the dual vanish on the cone.
		lin := matrix.Kernel(res.Hyperplanes)
		eqs := f.empty(f.c.dim)
		for i := 0; i < lin.Rows(); i++ {
			form, err := dl.FromSublattice(lin.Row(i))
			if err != nil {
				return nil, nil, err
			}
			amb, err := f.lat.FromSublatticeDual(form)
			if err != nil {
				return nil, nil, err
			}
			_ = eqs.AppendRow(amb)
		}
		return nil, eqs, nil
	}

	dd := &dualData[T]{pointed: s == rank}
	if dd.sh, err = matrix.Submatrix(ineq, res.Extreme); err != nil {
		return nil, nil, err
	}
	if dd.pointed {
		dd.er = res.Hyperplanes
		dd.sub = f.empty(rank)
	} else {
		dd.sub = matrix.Kernel(ineq)
	}

	return dd, nil, nil
}

// publishDual orders rays and facets, stores them in ambient coordinates and
// freezes the sublattice coordinates in the same order.
func (f *frame[T]) publishDual(dd *dualData[T], fz *frozen, out *results) error {
	r, lat, dim := f.r, f.lat, f.c.dim

	sh, err := lat.FromSublatticeDualRows(dd.sh)
	if err != nil {
		return err
	}
	order := lexOrder(r, sh)
	shAmb, _ := matrix.Submatrix(sh, order)
	shL, _ := matrix.Submatrix(dd.sh, order)
	out.mats[SupportHyperplanes] = toBig(shAmb)
	fz.shL = toBig(shL)

	sub, err := lat.FromSublatticeRows(dd.sub)
	if err != nil {
		return err
	}
	out.mats[MaximalSubspace] = toBig(sub)
	fz.subL = toBig(dd.sub)
	out.bools[IsPointed] = dd.pointed
	if f.c.inhom {
		dehomL, err := f.restrictForm(f.dehomogenization())
		if err != nil {
			return err
		}
		fz.dehomL = toBigVec(r, dehomL)
	}
	if !dd.pointed {
		return nil
	}

	// Rays primitive in Zᵈ; for inhomogeneous input vertices come first.
	type ray struct {
		l, amb []T
		vertex bool
	}
	rays := make([]ray, dd.er.Rows())
	for i := range rays {
		amb, err := lat.FromSublattice(dd.er.Row(i))
		if err != nil {
			return err
		}
		matrix.MakePrimitive(r, amb)
		rays[i] = ray{l: dd.er.RowCopy(i), amb: amb}
		if f.c.inhom {
			rays[i].vertex = r.Sign(matrix.Dot(r, f.dehomogenization(), amb)) > 0
		}
	}
	sort.SliceStable(rays, func(i, j int) bool {
		if rays[i].vertex != rays[j].vertex {
			return rays[i].vertex
		}
		return matrix.LexCompare(r, rays[i].amb, rays[j].amb) < 0
	})
	all, erL := f.empty(dim), f.empty(lat.Rank())
	verts, recs := f.empty(dim), f.empty(dim)
	for _, x := range rays {
		_ = all.AppendRow(x.amb)
		_ = erL.AppendRow(x.l)
		if x.vertex {
			_ = verts.AppendRow(x.amb)
			fz.nVert++
		} else {
			_ = recs.AppendRow(x.amb)
		}
	}
	fz.erL = toBig(erL)
	out.mats[ExtremeRays] = toBig(recs)
	out.mats[Triangulation] = toBig(all)
	if f.c.inhom {
		out.mats[VerticesOfPolyhedron] = toBig(verts)
	}

	return nil
}

// publishLattice stores the sublattice data, the ranks and the class group.
func (f *frame[T]) publishLattice(dd *dualData[T], fz *frozen, out *results) error {
	lat := f.lat
	out.mats[Sublattice] = toBig(lat.Embedding())
	out.mats[SublatticeEquations] = toBig(lat.Equations())
	out.mats[SublatticeCongruences] = toBig(lat.Congruences())
	out.ints[Rank] = big.NewInt(int64(lat.Rank()))
	out.ints[EmbeddingDim] = big.NewInt(int64(f.c.dim))
	out.ints[Index] = f.r.ToBig(lat.ExternalIndex())

	// Cl = Z^n / image of x ↦ (σ_i(x)); the Smith factors give the torsion.
	cg := []*big.Int{big.NewInt(int64(dd.sh.Rows()))}
	if dd.sh.Rows() > 0 {
		diag := matrix.Smith(dd.sh).Diagonal
		cg[0] = big.NewInt(int64(dd.sh.Rows() - len(diag)))
		for _, d := range diag {
			if !f.r.Equal(d, f.r.One()) {
				cg = append(cg, f.r.ToBig(d))
			}
		}
	}
	out.lists[ClassGroup] = cg

	if f.c.inhom {
		rec := f.empty(lat.Rank())
		if dd.pointed {
			dehomL, err := f.restrictForm(f.dehomogenization())
			if err != nil {
				return err
			}
			for i := 0; i < dd.er.Rows(); i++ {
				if f.r.IsZero(matrix.Dot(f.r, dehomL, dd.er.Row(i))) {
					_ = rec.AppendRow(dd.er.RowCopy(i))
				}
			}
		}
		for i := 0; i < dd.sub.Rows(); i++ {
			_ = rec.AppendRow(dd.sub.RowCopy(i))
		}
		fz.recession = matrix.Rank(rec)
		out.ints[RecessionRank] = big.NewInt(int64(fz.recession))
	}

	return nil
}

// publishGrading validates an explicit grading or looks for an implicit one.
func (f *frame[T]) publishGrading(dd *dualData[T], fz *frozen, out *results) error {
	r := f.r
	if f.c.inhom {
		return nil
	}
	g := f.grading()
	if g != nil {
		if !dd.pointed {
			return malformed(opCompute, "grading on a non-pointed cone")
		}
		gl, err := f.restrictForm(g)
		if err != nil {
			return err
		}
		for i := 0; i < dd.er.Rows(); i++ {
			if r.Sign(matrix.Dot(r, gl, dd.er.Row(i))) <= 0 {
				amb, _ := f.lat.FromSublattice(dd.er.Row(i))
				return malformed(opCompute, "grading not positive on extreme ray %s", matrix.VectorString(r, amb))
			}
		}
		fz.gradL = toBigVec(r, gl)
		gm, _ := matrix.FromRows(r, f.c.dim, [][]T{g})
		out.mats[GradingForm] = toBig(gm)
		return nil
	}
	if !dd.pointed || dd.er.Rows() == 0 {
		return nil
	}
	lambda, ok := matrix.FindLinearForm(dd.er)
	if !ok {
		f.c.log.Warn("cone: no implicit grading", "extreme_rays", dd.er.Rows())
		return nil
	}
	amb, err := f.lat.FromSublatticeDual(lambda)
	if err != nil {
		return err
	}
	fz.gradL = toBigVec(r, lambda)
	gm, _ := matrix.FromRows(r, f.c.dim, [][]T{amb})
	out.mats[GradingForm] = toBig(gm)
	f.c.log.Info("cone: implicit grading", "grading", matrix.VectorString(r, amb))

	return nil
}

// restrictForm returns the values of an ambient form on the lattice basis,
// without normalization.
func (f *frame[T]) restrictForm(g []T) ([]T, error) {
	return f.lat.ToSublatticeDualNoDiv(g)
}

// lexOrder returns the row indices of m in lexicographic row order.
func lexOrder[T any](r number.Ring[T], m *matrix.Dense[T]) []int {
	idx := make([]int, m.Rows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return matrix.LexCompare(r, m.Row(idx[a]), m.Row(idx[b])) < 0
	})

	return idx
}
