// SPDX-License-Identifier: MIT
// Package: lvcone/cone
//
// frame.go - input rows and the sublattice in one ring.

package cone

import (
	"math/big"

	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
	"github.com/katalvlaran/lvcone/sublattice"
)

// frame carries the cone input converted into ring r and the lattice the
// cone lives in. Every stage builds its own frame; the lattice is a pure
// function of the input and the implicit equations, so coordinates agree
// across stages and rings.
type frame[T any] struct {
	c   *Cone
	r   number.Ring[T]
	in  map[InputType]*matrix.Dense[T]
	lat *sublattice.Representation[T]
}

func newFrame[T any](c *Cone, r number.Ring[T]) (*frame[T], error) {
	f := &frame[T]{c: c, r: r, in: make(map[InputType]*matrix.Dense[T], len(c.input))}
	for t, m := range c.input {
		f.in[t] = matrix.Convert(m, r)
	}
	if err := number.Check(r); err != nil {
		return nil, err
	}
	var implicit *matrix.Dense[T]
	if c.st.base != nil && c.st.base.implicit != nil {
		implicit = matrix.Convert(c.st.base.implicit, r)
	}
	if err := f.buildLattice(implicit); err != nil {
		return nil, err
	}

	return f, number.Check(r)
}

// buildLattice sets f.lat from the input; implicit, when non-nil, adds
// equations to a constraint description.
func (f *frame[T]) buildLattice(implicit *matrix.Dense[T]) error {
	var err error
	if f.c.generatorInput() {
		f.lat, err = sublattice.FromGenerators(f.generators(), !f.c.has(Normalization))
		return err
	}

	eqs := f.rows(Equations)
	if implicit != nil {
		if eqs, err = matrix.Concat(eqs, implicit); err != nil {
			return err
		}
	}
	outer, err := sublattice.FromEquations(eqs)
	if err != nil {
		return err
	}
	f.lat = outer
	cong, ok := f.in[Congruences]
	if !ok || outer.Rank() == 0 {
		return nil
	}

	// Restrict every congruence a·x ≡ 0 (m) to the kernel lattice.
	d := f.c.dim
	rows := make([][]T, 0, cong.Rows())
	for i := 0; i < cong.Rows(); i++ {
		row := cong.Row(i)
		a, err := outer.ToSublatticeDualNoDiv(row[:d])
		if err != nil {
			return err
		}
		rows = append(rows, append(a, row[d]))
	}
	restricted, _ := matrix.FromRows(f.r, outer.Rank()+1, rows)
	gens, err := sublattice.CongruenceLattice(restricted)
	if err != nil {
		return err
	}
	inner, err := sublattice.FromGenerators(gens, false)
	if err != nil {
		return err
	}
	f.lat, err = outer.Compose(inner)

	return err
}

func (f *frame[T]) empty(cols int) *matrix.Dense[T] {
	m, _ := matrix.NewDense(f.r, 0, cols)
	return m
}

// rows stacks the input of the given kinds; Subspace rows enter with both
// signs.
func (f *frame[T]) rows(types ...InputType) *matrix.Dense[T] {
	out := f.empty(f.c.dim)
	for _, t := range types {
		m, ok := f.in[t]
		if !ok {
			continue
		}
		for i := 0; i < m.Rows(); i++ {
			_ = out.AppendRow(m.RowCopy(i))
			if t == Subspace {
				_ = out.AppendRow(matrix.Negate(f.r, m.Row(i)))
			}
		}
	}

	return out
}

func (f *frame[T]) generators() *matrix.Dense[T] {
	return f.rows(Generators, Normalization, Polytope, Subspace, Vertices, PrecomputedExtremeRays)
}

// inequalities includes x_dehom ≥ 0 for inhomogeneous input.
func (f *frame[T]) inequalities() *matrix.Dense[T] {
	m := f.rows(Inequalities, InhomInequalities, PrecomputedSupportHyperplanes)
	if f.c.inhom {
		_ = m.AppendRow(f.dehomogenization())
	}

	return m
}

func (f *frame[T]) dehomogenization() []T {
	return f.in[Dehomogenization].RowCopy(0)
}

// grading returns the explicit grading row, or nil.
func (f *frame[T]) grading() []T {
	if m, ok := f.in[Grading]; ok {
		return m.RowCopy(0)
	}

	return nil
}

// convert maps a frozen matrix into the frame's ring.
func (f *frame[T]) convert(m *matrix.Dense[*big.Int]) *matrix.Dense[T] {
	return matrix.Convert(m, f.r)
}

func (f *frame[T]) convertVec(v []*big.Int) []T {
	if v == nil {
		return nil
	}
	out := make([]T, len(v))
	for i, x := range v {
		out[i] = f.r.FromBig(x)
	}

	return out
}

func toBig[T any](m *matrix.Dense[T]) *matrix.Dense[*big.Int] {
	return matrix.Convert(m, bigRing)
}

func toBigVec[T any](r number.Ring[T], v []T) []*big.Int {
	if v == nil {
		return nil
	}
	out := make([]*big.Int, len(v))
	for i, x := range v {
		out[i] = r.ToBig(x)
	}

	return out
}
