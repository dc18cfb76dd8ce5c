// SPDX-License-Identifier: MIT
// Package: lvcone/dual
//
// cut.go - one halfspace cut of the Hilbert basis.
//
// Contract:
//   • Values of every candidate hold |λ_i(x)| for the hyperplanes i ≤ hyp;
//     SortDeg is their sum. Positive, negative and neutral lists are sorted by
//     candidate.ValCompare at every round boundary.
//   • The three reducer tables are only written between generation phases.
//   • Elements enter an Irred list only when their old total degree is at most
//     the guaranteed degree of the round (or when no reduction takes place).

package dual

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvcone/candidate"
	"github.com/katalvlaran/lvcone/internal/parallel"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

type cut[T any] struct {
	e       *Engine[T]
	hyp     int
	lin     []T
	pointed bool

	posIrred, negIrred, neuIrred *candidate.List[T]
	posTable, negTable, neuTable *candidate.Table[T]

	posGen0, posGen1 []*candidate.Candidate[T]
	negGen0, negGen1 []*candidate.Candidate[T]

	doReduction bool
}

// buffers are the per-block outputs of one generation step.
type buffers[T any] struct {
	pos, neg, neu []*candidate.Candidate[T]
}

func (c *cut[T]) run(ctx context.Context, half []T) error {
	e, r := c.e, c.e.r
	nrh := e.hyps.Rows()
	truncate := e.opts.Truncate
	lifting := half != nil
	inter := e.intermediate

	c.posIrred = candidate.NewList(r)
	c.negIrred = candidate.NewList(r)
	c.neuIrred = candidate.NewList(r)

	if lifting {
		orientation := matrix.Dot(r, c.lin, half)
		if r.Sign(orientation) < 0 {
			orientation = r.Neg(orientation)
			half = matrix.Negate(r, half)
		}
		// Reduce modulo the two halves of the old subspace: |λ(x)| < orientation.
		for _, x := range inter.Candidates {
			sp := matrix.Dot(r, c.lin, x.Vector)
			factor := r.Quo(r.Abs(sp), orientation)
			if r.IsZero(factor) {
				continue
			}
			if r.Sign(sp) < 0 {
				factor = r.Neg(factor)
			}
			x.Vector = matrix.Combine(r, r.One(), x.Vector, r.Neg(factor), half)
		}
		pos := candidate.New(r, matrix.CloneVec(half), nrh)
		pos.Values[c.hyp] = orientation
		pos.SortDeg = orientation
		neg := pos.Clone()
		neg.Vector = matrix.Negate(r, half)
		c.posIrred.Append(pos)
		c.posGen0 = append(c.posGen0, pos)
		c.negIrred.Append(neg)
		c.negGen0 = append(c.negGen0, neg)
	} else if inter.Empty() {
		return nil
	}

	gen0MinDeg := r.Zero()
	if !lifting {
		gen0MinDeg = inter.Candidates[0].SortDeg
		for _, x := range inter.Candidates {
			gen0MinDeg = number.Min(r, gen0MinDeg, x.SortDeg)
		}
	}

	gen1Pos, gen1Neg := false, false
	noPosInLevel0 := c.pointed
	allPositiveLevel := c.pointed
	for _, x := range inter.Candidates {
		v := matrix.Dot(r, c.lin, x.Vector)
		x.Reducible = false
		x.Mother = r.Zero()
		x.OldTotDeg = x.SortDeg
		level0 := r.IsZero(x.Values[0])
		switch s := r.Sign(v); {
		case s > 0:
			gen1Pos = true
			x.Values[c.hyp] = v
			x.SortDeg = r.Add(x.SortDeg, v)
			c.posIrred.Append(x)
			c.posGen1 = append(c.posGen1, x)
			if level0 {
				noPosInLevel0 = false
				allPositiveLevel = false
			}
		case s < 0:
			gen1Neg = true
			av := r.Neg(v)
			x.Values[c.hyp] = av
			x.SortDeg = r.Add(x.SortDeg, av)
			c.negIrred.Append(x)
			c.negGen1 = append(c.negGen1, x)
			if level0 {
				allPositiveLevel = false
			}
		default:
			c.neuIrred.Append(x)
			if level0 {
				noPosInLevel0 = false
				allPositiveLevel = false
			}
		}
	}
	inter.Clear()

	if truncate && noPosInLevel0 && !allPositiveLevel {
		// Negative elements of positive level can not contribute anymore.
		c.negGen1 = nil
		kept := c.negIrred.Candidates[:0]
		for _, x := range c.negIrred.Candidates {
			if r.Sign(x.Values[0]) > 0 {
				continue
			}
			kept = append(kept, x)
			c.negGen1 = append(c.negGen1, x)
		}
		c.negIrred.Candidates = kept
	}
	if err := number.Check(r); err != nil {
		return fmt.Errorf("%s: hyperplane %d: %w", opCut, c.hyp, err)
	}

	c.posIrred.SortByVal()
	c.negIrred.SortByVal()
	c.neuIrred.SortByVal()
	c.posTable = candidate.TableOf(c.posIrred, c.hyp)
	c.negTable = candidate.TableOf(c.negIrred, c.hyp)
	c.neuTable = candidate.TableOf(c.neuIrred, c.hyp)

	notDone := gen1Pos && gen1Neg
	if lifting {
		notDone = gen1Pos || gen1Neg
	}
	c.doReduction = !(truncate && noPosInLevel0)
	onlySelection := truncate && allPositiveLevel

	posDepot := candidate.NewList(r)
	negDepot := candidate.NewList(r)
	neuDepot := candidate.NewList(r)
	threads := e.opts.Threads
	round := 0

	for notDone && !onlySelection {
		round++
		var parts []buffers[T]
		steps := [3][2][]*candidate.Candidate[T]{
			{c.posGen0, c.negGen1},
			{c.posGen1, c.negGen0},
			{c.posGen1, c.negGen1},
		}
		for _, st := range steps {
			pos, neg := st[0], st[1]
			if len(pos) == 0 || len(neg) == 0 {
				continue
			}
			out, err := parallel.Map(ctx, len(pos), threads, func(ctx context.Context, b parallel.Block) (buffers[T], error) {
				return c.generate(ctx, pos[b.Lo:b.Hi], neg)
			})
			if err != nil {
				return fmt.Errorf("%s: hyperplane %d round %d: %w", opCut, c.hyp, round, err)
			}
			parts = append(parts, out...)
		}

		c.posGen0 = append(c.posGen0, c.posGen1...)
		c.posGen1 = nil
		c.negGen0 = append(c.negGen0, c.negGen1...)
		c.negGen1 = nil

		var pos, neg, neu []*candidate.Candidate[T]
		for _, p := range parts {
			pos = append(pos, p.pos...)
			neg = append(neg, p.neg...)
			neu = append(neu, p.neu...)
		}
		spliceSort(neuDepot, neu)
		spliceSort(posDepot, pos)
		spliceSort(negDepot, neg)

		if posDepot.Empty() && negDepot.Empty() {
			notDone = false
		}

		// The element with the smallest old degree need not come first.
		gen1MinDeg := r.Zero()
		first := true
		for _, l := range []*candidate.List[T]{posDepot, negDepot} {
			for _, x := range l.Candidates {
				if first || r.Cmp(x.OldTotDeg, gen1MinDeg) < 0 {
					gen1MinDeg = x.OldTotDeg
					first = false
				}
			}
		}
		allKnown := r.Sub(r.Add(gen0MinDeg, gen1MinDeg), r.One())
		guaranteed := r.Add(r.Add(allKnown, allKnown), r.One())

		newNeu := candidate.NewList(r)
		if notDone {
			if err := selectHB(ctx, neuDepot, guaranteed, newNeu, !c.doReduction, threads); err != nil {
				return err
			}
		} else {
			// No new elements follow; only the neutral depot needs cleaning.
			if err := neuDepot.AutoReduceSorted(ctx, threads); err != nil {
				return err
			}
			c.neuIrred.MergeByVal(neuDepot)
		}

		if !newNeu.Empty() {
			if c.doReduction {
				if err := posDepot.ReduceBy(ctx, newNeu, threads); err != nil {
					return err
				}
				if err := neuDepot.ReduceBy(ctx, newNeu, threads); err != nil {
					return err
				}
			}
			if err := negDepot.ReduceBy(ctx, newNeu, threads); err != nil {
				return err
			}
			for _, x := range c.neuIrred.MergeByVal(newNeu) {
				c.neuTable.Insert(x)
			}
		}

		newPos := candidate.NewList(r)
		newNeg := candidate.NewList(r)
		if err := selectHB(ctx, posDepot, guaranteed, newPos, !c.doReduction, threads); err != nil {
			return err
		}
		if err := selectHB(ctx, negDepot, guaranteed, newNeg, !c.doReduction, threads); err != nil {
			return err
		}

		if !newPos.Empty() {
			if c.doReduction {
				if err := posDepot.ReduceBy(ctx, newPos, threads); err != nil {
					return err
				}
			}
			c.posGen1 = c.posIrred.MergeByVal(newPos)
			for _, x := range c.posGen1 {
				c.posTable.Insert(x)
			}
		}
		if !newNeg.Empty() {
			if err := negDepot.ReduceBy(ctx, newNeg, threads); err != nil {
				return err
			}
			c.negGen1 = c.negIrred.MergeByVal(newNeg)
			for _, x := range c.negGen1 {
				c.negTable.Insert(x)
			}
		}

		if err := number.Check(r); err != nil {
			return fmt.Errorf("%s: hyperplane %d round %d: %w", opCut, c.hyp, round, err)
		}
	}

	e.log.Debug("dual: cut",
		"hyperplane", e.origin[c.hyp],
		"lifting", lifting,
		"rounds", round,
		"positive", c.posIrred.Len(),
		"negative", c.negIrred.Len(),
		"neutral", c.neuIrred.Len())

	inter.Splice(c.posIrred)
	inter.Splice(c.neuIrred)
	inter.SortByVal()

	return nil
}

// generate forms the sums of every element of pos with every element of neg
// and keeps those not known to be reducible.
func (c *cut[T]) generate(ctx context.Context, pos, neg []*candidate.Candidate[T]) (buffers[T], error) {
	r := c.e.r
	hyp := c.hyp
	nrh := c.e.hyps.Rows()
	truncate := c.e.opts.Truncate
	two := r.FromInt64(2)
	var out buffers[T]

	for _, p := range pos {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := number.Check(r); err != nil {
			return out, err
		}
		posVal := p.Values[hyp]
		for _, n := range neg {
			if truncate && r.Cmp(r.Add(p.Values[0], n.Values[0]), two) >= 0 {
				continue
			}
			negVal := n.Values[hyp]
			diff := r.Sub(posVal, negVal)
			if prunable(r, p, n, posVal, negVal, diff) {
				continue
			}

			values := make([]T, nrh)
			for i := 0; i < hyp; i++ {
				values[i] = r.Add(p.Values[i], n.Values[i])
			}
			for i := hyp; i < nrh; i++ {
				values[i] = r.Zero()
			}
			sum := r.Add(p.SortDeg, n.SortDeg)
			x := &candidate.Candidate[T]{
				Values:    values,
				OldTotDeg: r.Add(p.OldTotDeg, n.OldTotDeg),
				Mother:    r.Zero(),
			}

			switch r.Sign(diff) {
			case 1:
				values[hyp] = diff
				x.SortDeg = r.Sub(sum, r.Add(negVal, negVal))
				if c.doReduction && (c.posTable.IsReducibleUnordered(values, x.SortDeg) ||
					c.neuTable.IsReducibleUnordered(values, x.SortDeg)) {
					continue
				}
				x.Mother = posVal
				x.Vector = matrix.AddVec(r, p.Vector, n.Vector)
				out.pos = append(out.pos, x)
			case -1:
				if !c.doReduction {
					continue
				}
				values[hyp] = r.Neg(diff)
				x.SortDeg = r.Sub(sum, r.Add(posVal, posVal))
				if c.negTable.IsReducibleUnordered(values, x.SortDeg) ||
					c.neuTable.IsReducibleUnordered(values, x.SortDeg) {
					continue
				}
				x.Mother = negVal
				x.Vector = matrix.AddVec(r, p.Vector, n.Vector)
				out.neg = append(out.neg, x)
			default:
				x.SortDeg = r.Sub(sum, r.Add(posVal, posVal))
				if c.doReduction && c.neuTable.IsReducibleUnordered(values, x.SortDeg) {
					continue
				}
				x.Vector = matrix.AddVec(r, p.Vector, n.Vector)
				out.neu = append(out.neu, x)
			}
		}
	}

	return out, nil
}

// prunable predicts that p+n is reducible from the mothers of p and n: the
// sum is then dominated by a mother plus the operand on the opposite side, or
// by the sum of the two mothers.
func prunable[T any](r number.Ring[T], p, n *candidate.Candidate[T], posVal, negVal, diff T) bool {
	switch r.Sign(diff) {
	case 1:
		if r.IsZero(n.Mother) {
			return false
		}
		return r.Cmp(n.Mother, posVal) <= 0 ||
			(r.Cmp(p.Mother, n.Mother) >= 0 && r.Cmp(r.Sub(p.Mother, n.Mother), diff) <= 0)
	case -1:
		if r.IsZero(p.Mother) {
			return false
		}
		return r.Cmp(p.Mother, negVal) <= 0 ||
			(r.Cmp(n.Mother, p.Mother) >= 0 && r.Cmp(r.Sub(n.Mother, p.Mother), r.Neg(diff)) <= 0)
	default:
		return !r.IsZero(p.Mother) && r.Equal(n.Mother, p.Mother)
	}
}

// spliceSort sorts the fresh elements, drops value duplicates and merges them
// into total.
func spliceSort[T any](total *candidate.List[T], fresh []*candidate.Candidate[T]) {
	if len(fresh) == 0 {
		return
	}
	nl := candidate.NewList(total.Ring())
	nl.Append(fresh...)
	nl.SortByVal()
	nl.UniqueVectors()
	total.MergeByVal(nl)
}

// selectHB moves the elements of cand whose old degree is at most guaranteed
// into irred and auto-reduces irred. With allIrreducible every element moves.
func selectHB[T any](ctx context.Context, cand *candidate.List[T], guaranteed T, irred *candidate.List[T], allIrreducible bool, threads int) error {
	if allIrreducible {
		irred.MergeByVal(cand)
		return nil
	}
	moved := cand.SelectByDegree(guaranteed)
	irred.Append(moved...)

	return irred.AutoReduceSorted(ctx, threads)
}
