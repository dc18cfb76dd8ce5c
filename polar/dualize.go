// SPDX-License-Identifier: MIT
// Package: lvcone/polar
//
// dualize.go - beneath-beyond double description.
//
// Contract:
//   • Generators must span the ambient space; zero rows are ignored.
//   • Facet normals are primitive and non-negative on every generator.
//   • The facet list after each insertion does not depend on the thread
//     count: new facets are collected per block of positive facets and
//     appended in block order.
//
// Complexity: O(n · f² · d) ring operations in the worst case for n
// generators and f intermediate facets, plus the rank tests.

package polar

import (
	"context"
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvcone"
	"github.com/katalvlaran/lvcone/internal/parallel"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

type facet[T any] struct {
	normal []T
	zeros  *bitset.BitSet
}

// Dualize computes the support hyperplanes of the cone generated by the rows
// of gens, the generators spanning extreme rays and, on request, the placing
// triangulation.
func Dualize[T any](ctx context.Context, gens *matrix.Dense[T], opts ...Option) (*Result[T], error) {
	if gens == nil {
		return nil, fmt.Errorf("%s: %w", opDualize, ErrNilInput)
	}
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		log = lvcone.Logger()
	}
	r := gens.Ring()
	d, n := gens.Cols(), gens.Rows()
	if d == 0 {
		empty, _ := matrix.NewDense(r, 0, 0)
		return &Result[T]{Hyperplanes: empty, Pointed: true}, nil
	}

	basis := matrix.MaxRankRows(gens)
	if len(basis) < d {
		return nil, fmt.Errorf("%s: rank %d < %d: %w", opDualize, len(basis), d, ErrNotFullDimensional)
	}

	facets, tri, err := initialSimplex(gens, basis, o.Triangulate)
	if err != nil {
		return nil, err
	}

	placed := bitset.New(uint(n))
	for _, b := range basis {
		placed.Set(uint(b))
	}
	for j := 0; j < n; j++ {
		if placed.Test(uint(j)) {
			continue
		}
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", opDualize, err)
		}
		x := gens.Row(j)
		if matrix.IsZeroVec(r, x) {
			continue
		}
		placed.Set(uint(j))

		var pos, neg []int
		vals := make([]T, len(facets))
		for i, f := range facets {
			vals[i] = matrix.Dot(r, f.normal, x)
			switch r.Sign(vals[i]) {
			case 1:
				pos = append(pos, i)
			case -1:
				neg = append(neg, i)
			default:
				f.zeros.Set(uint(j))
			}
		}
		if len(neg) == 0 {
			continue
		}
		if o.Triangulate {
			if tri, err = place(gens, tri, facets, neg, j); err != nil {
				return nil, err
			}
		}

		parts, err := parallel.Map(ctx, len(pos), o.Threads, func(ctx context.Context, b parallel.Block) ([]*facet[T], error) {
			var out []*facet[T]
			for _, pi := range pos[b.Lo:b.Hi] {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				p := facets[pi]
				for _, ni := range neg {
					if f, ok := ridge(gens, p, facets[ni], vals[pi], vals[ni], j); ok {
						out = append(out, f)
					}
				}
			}
			return out, nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: generator %d: %w", opDualize, j, err)
		}

		kept := make([]*facet[T], 0, len(facets))
		for i, f := range facets {
			if r.Sign(vals[i]) >= 0 {
				kept = append(kept, f)
			}
		}
		for _, p := range parts {
			kept = append(kept, p...)
		}
		facets = kept
		if err = number.Check(r); err != nil {
			return nil, fmt.Errorf("%s: generator %d: %w", opDualize, j, err)
		}
	}

	res := finish(gens, facets)
	res.Triangulation = tri
	if err = number.Check(r); err != nil {
		return nil, fmt.Errorf("%s: %w", opDualize, err)
	}
	log.Debug("polar: dualized",
		"generators", n,
		"hyperplanes", res.Hyperplanes.Rows(),
		"extreme", len(res.Extreme),
		"simplices", len(tri))

	return res, nil
}

// initialSimplex returns the facets of the simplicial cone on the basis rows.
// The facet opposite to basis[i] is column i of the adjugate, oriented by
// the sign of the determinant.
func initialSimplex[T any](gens *matrix.Dense[T], basis []int, triangulate bool) ([]*facet[T], []Simplex[T], error) {
	r := gens.Ring()
	d, n := gens.Cols(), gens.Rows()
	sub, err := matrix.Submatrix(gens, basis)
	if err != nil {
		return nil, nil, err
	}
	det, err := matrix.Determinant(sub)
	if err != nil {
		return nil, nil, err
	}
	adj, err := matrix.Adjugate(sub)
	if err != nil {
		return nil, nil, err
	}
	adjT := adj.Transpose()
	facets := make([]*facet[T], d)
	for i := 0; i < d; i++ {
		normal := adjT.RowCopy(i)
		if r.Sign(det) < 0 {
			normal = matrix.Negate(r, normal)
		}
		matrix.MakePrimitive(r, normal)
		z := bitset.New(uint(n))
		for k, b := range basis {
			if k != i {
				z.Set(uint(b))
			}
		}
		facets[i] = &facet[T]{normal: normal, zeros: z}
	}
	var tri []Simplex[T]
	if triangulate {
		key := append([]int(nil), basis...)
		sort.Ints(key)
		tri = append(tri, Simplex[T]{Key: key, Volume: r.Abs(det)})
	}

	return facets, tri, nil
}

// ridge returns the facet through x and the ridge P ∩ N when P and N are
// adjacent.
func ridge[T any](gens *matrix.Dense[T], p, n *facet[T], pv, nv T, j int) (*facet[T], bool) {
	r := gens.Ring()
	d := gens.Cols()
	common := p.zeros.Intersection(n.zeros)
	if int(common.Count()) < d-2 {
		return nil, false
	}
	idx := members(common)
	if matrix.RankRows(gens, idx) < d-2 {
		return nil, false
	}
	normal := matrix.Combine(r, pv, n.normal, r.Neg(nv), p.normal)
	matrix.MakePrimitive(r, normal)
	common.Set(uint(j))

	return &facet[T]{normal: normal, zeros: common}, true
}

// place joins generator j with every boundary face of tri lying in a facet
// visible from it.
func place[T any](gens *matrix.Dense[T], tri []Simplex[T], facets []*facet[T], visible []int, j int) ([]Simplex[T], error) {
	r := gens.Ring()
	current := len(tri)
	for _, vi := range visible {
		z := facets[vi].zeros
		for s := 0; s < current; s++ {
			key := tri[s].Key
			for drop := range key {
				inFacet := true
				for k, g := range key {
					if k != drop && !z.Test(uint(g)) {
						inFacet = false
						break
					}
				}
				if !inFacet {
					continue
				}
				nk := make([]int, 0, len(key))
				nk = append(nk, key[:drop]...)
				nk = append(nk, key[drop+1:]...)
				nk = append(nk, j)
				sort.Ints(nk)
				sub, err := matrix.Submatrix(gens, nk)
				if err != nil {
					return nil, err
				}
				det, err := matrix.Determinant(sub)
				if err != nil {
					return nil, err
				}
				tri = append(tri, Simplex[T]{Key: nk, Volume: r.Abs(det)})
			}
		}
	}

	return tri, nil
}

// finish sorts the facets, recomputes the incidence over all generators and
// selects the extreme rays.
func finish[T any](gens *matrix.Dense[T], facets []*facet[T]) *Result[T] {
	r := gens.Ring()
	d, n := gens.Cols(), gens.Rows()
	sort.SliceStable(facets, func(a, b int) bool {
		return matrix.LexCompare(r, facets[a].normal, facets[b].normal) < 0
	})
	rows := make([][]T, len(facets))
	for i, f := range facets {
		rows[i] = f.normal
	}
	hyps, _ := matrix.FromRows(r, d, rows)

	res := &Result[T]{Hyperplanes: hyps, Incidence: make([]*bitset.BitSet, len(facets))}
	onFacets := make([][]int, n)
	for i, f := range facets {
		inc := bitset.New(uint(n))
		for j := 0; j < n; j++ {
			if r.IsZero(matrix.Dot(r, f.normal, gens.Row(j))) {
				inc.Set(uint(j))
				onFacets[j] = append(onFacets[j], i)
			}
		}
		res.Incidence[i] = inc
	}

	res.Pointed = matrix.Rank(hyps) == d
	if !res.Pointed {
		return res
	}
	seen := make(map[string]bool)
	for j := 0; j < n; j++ {
		g := gens.Row(j)
		if matrix.IsZeroVec(r, g) || len(onFacets[j]) < d-1 {
			continue
		}
		if matrix.RankRows(hyps, onFacets[j]) < d-1 {
			continue
		}
		prim := matrix.CloneVec(g)
		matrix.MakePrimitive(r, prim)
		key := matrix.VectorKey(r, prim)
		if seen[key] {
			continue
		}
		seen[key] = true
		res.Extreme = append(res.Extreme, j)
	}

	return res
}

// members lists the set bits of b.
func members(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}
