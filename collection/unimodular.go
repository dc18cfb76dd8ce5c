// SPDX-License-Identifier: MIT
// Package: lvcone/collection
//
// unimodular.go - refinement until every leaf has volume 1.

package collection

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvcone/internal/parallel"
	"github.com/katalvlaran/lvcone/matrix"
)

type hit[T any] struct {
	vec  []T
	cell int
}

// MakeUnimodular refines the collection until all leaves are unimodular.
func (c *Collection[T]) MakeUnimodular(ctx context.Context) error {
	r := c.r
	one := r.One()
	for round := 1; ; round++ {
		var todo []int
		for _, id := range c.leaves() {
			if !r.Equal(c.cells[id].Multiplicity, one) {
				todo = append(todo, id)
			}
		}
		if len(todo) == 0 {
			return nil
		}
		// every cell is touched by exactly one worker; rays is read-only here
		parts, err := parallel.Map(ctx, len(todo), c.opts.Threads, func(ctx context.Context, b parallel.Block) ([]hit[T], error) {
			var out []hit[T]
			for _, id := range todo[b.Lo:b.Hi] {
				s, err := c.simplexOf(c.cells[id])
				if err != nil {
					return nil, err
				}
				hb, err := s.HilbertBasis(ctx, 1)
				if err != nil {
					return nil, err
				}
				for i := 0; i < hb.Rows(); i++ {
					if _, ok := c.rays[matrix.VectorKey(r, hb.Row(i))]; !ok {
						out = append(out, hit[T]{vec: hb.RowCopy(i), cell: id})
					}
				}
			}
			return out, nil
		})
		if err != nil {
			return fmt.Errorf("%s: round %d: %w", opUnimod, round, err)
		}
		var hits []hit[T]
		for _, p := range parts {
			hits = append(hits, p...)
		}
		if len(hits) == 0 {
			return nil
		}
		sort.SliceStable(hits, func(i, j int) bool {
			if k := matrix.LexCompare(r, hits[i].vec, hits[j].vec); k != 0 {
				return k < 0
			}
			return hits[i].cell < hits[j].cell
		})

		places := make([]Place, 0, len(hits))
		var last []T
		for _, h := range hits {
			if last == nil || !matrix.EqualVec(r, last, h.vec) {
				last = h.vec
				if err = c.gens.AppendRow(h.vec); err != nil {
					return fmt.Errorf("%s: %w", opUnimod, err)
				}
			}
			places = append(places, Place{Ray: c.gens.Rows() - 1, Cell: h.cell})
		}
		if err = c.InsertVectors(ctx, places); err != nil {
			return fmt.Errorf("%s: %w", opUnimod, err)
		}
		c.log.Debug("collection: refinement round",
			"round", round,
			"cells", len(todo),
			"generators", c.gens.Rows(),
			"subdivisions", c.subdivisions)
	}
}
