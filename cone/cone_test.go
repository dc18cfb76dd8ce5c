// SPDX-License-Identifier: MIT
package cone_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcone/builder"
	"github.com/katalvlaran/lvcone/cone"
	"github.com/katalvlaran/lvcone/number"
)

type input = map[cone.InputType][][]int64

var (
	// the cone over 3·Δ₂
	triangleHyps   = [][]int64{{1, 0, 0}, {0, 1, 0}, {-1, -1, 3}}
	trianglePoints = [][]int64{
		{0, 0, 1}, {0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {1, 0, 1},
		{1, 1, 1}, {1, 2, 1}, {2, 0, 1}, {2, 1, 1}, {3, 0, 1},
	}
)

func newCone(t *testing.T, in input, opts ...cone.Option) *cone.Cone {
	t.Helper()
	c, err := cone.New(in, opts...)
	require.NoError(t, err)

	return c
}

func compute(t *testing.T, c *cone.Cone, props ...cone.Property) {
	t.Helper()
	require.NoError(t, c.Compute(context.Background(), props...))
}

func rows(t *testing.T, c *cone.Cone, p cone.Property) [][]int64 {
	t.Helper()
	m, err := c.Int64Matrix(p)
	require.NoError(t, err)

	return m
}

func integer(t *testing.T, c *cone.Cone, p cone.Property) int64 {
	t.Helper()
	v, err := c.Int(p)
	require.NoError(t, err)

	return v.Int64()
}

func flag(t *testing.T, c *cone.Cone, p cone.Property) bool {
	t.Helper()
	v, err := c.Bool(p)
	require.NoError(t, err)

	return v
}

func rat(t *testing.T, c *cone.Cone, p cone.Property) string {
	t.Helper()
	v, err := c.Rat(p)
	require.NoError(t, err)

	return v.RatString()
}

func TestGeneratorsUseSaturatedLattice(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Generators: {{1, 0}, {1, 2}}})
	compute(t, c, cone.HilbertBasis, cone.SupportHyperplanes, cone.ExtremeRays,
		cone.Multiplicity, cone.IsIntegrallyClosed, cone.ClassGroup)

	assert.Equal(t, [][]int64{{1, 0}, {1, 1}, {1, 2}}, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, [][]int64{{0, 1}, {2, -1}}, rows(t, c, cone.SupportHyperplanes))
	assert.Equal(t, [][]int64{{1, 0}, {1, 2}}, rows(t, c, cone.ExtremeRays))
	assert.Equal(t, [][]int64{{1, 0}}, rows(t, c, cone.GradingForm))
	assert.Equal(t, [][]int64{{1, 0}, {1, 1}, {1, 2}}, rows(t, c, cone.Deg1Elements))
	assert.True(t, flag(t, c, cone.IsDeg1HilbertBasis))
	assert.False(t, flag(t, c, cone.IsIntegrallyClosed))
	assert.True(t, flag(t, c, cone.IsPointed))
	assert.Equal(t, "2", rat(t, c, cone.Multiplicity))
	assert.Equal(t, int64(2), integer(t, c, cone.Rank))
	assert.Equal(t, int64(1), integer(t, c, cone.Index))

	cg, err := c.ClassGroup()
	require.NoError(t, err)
	assert.Equal(t, []*big.Int{big.NewInt(0), big.NewInt(2)}, cg)
}

func TestNormalizationKeepsGeneratedLattice(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Normalization: {{1, 0}, {1, 2}}})
	compute(t, c, cone.HilbertBasis, cone.Index, cone.IsIntegrallyClosed)

	assert.Equal(t, [][]int64{{1, 0}, {1, 2}}, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, int64(2), integer(t, c, cone.Index))
	assert.True(t, flag(t, c, cone.IsIntegrallyClosed))
}

func TestUnitVectors(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Generators: {{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}})
	compute(t, c, cone.HilbertBasis, cone.UnimodularTriangulation, cone.ClassGroup)

	assert.Equal(t, [][]int64{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}, rows(t, c, cone.HilbertBasis))
	cells, err := c.TriangulationCells(cone.UnimodularTriangulation)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, []int{0, 1, 2}, cells[0].Key)
	assert.Equal(t, int64(1), cells[0].Volume.Int64())

	cg, err := c.ClassGroup()
	require.NoError(t, err)
	assert.Equal(t, []*big.Int{big.NewInt(0)}, cg)
}

func TestInequalitiesMatchPolytope(t *testing.T) {
	t.Parallel()
	ineq := newCone(t, input{cone.Inequalities: triangleHyps})
	compute(t, ineq, cone.HilbertBasis, cone.ExtremeRays, cone.Multiplicity)

	poly, err := builder.Build(nil, builder.Simplex(2, 3))
	require.NoError(t, err)
	pc, err := poly.Cone()
	require.NoError(t, err)
	compute(t, pc, cone.HilbertBasis, cone.ExtremeRays, cone.Multiplicity)

	assert.Equal(t, trianglePoints, rows(t, ineq, cone.HilbertBasis))
	assert.Equal(t, rows(t, pc, cone.HilbertBasis), rows(t, ineq, cone.HilbertBasis))
	assert.Equal(t, rows(t, pc, cone.ExtremeRays), rows(t, ineq, cone.ExtremeRays))
	assert.Equal(t, [][]int64{{0, 0, 1}}, rows(t, ineq, cone.GradingForm))
	assert.Equal(t, "9", rat(t, ineq, cone.Multiplicity))
	assert.Equal(t, "9", rat(t, pc, cone.Multiplicity))
}

func TestHyperplaneOrderDoesNotMatter(t *testing.T) {
	t.Parallel()
	a := newCone(t, input{cone.Inequalities: triangleHyps})
	b := newCone(t, input{cone.Inequalities: {triangleHyps[2], triangleHyps[0], triangleHyps[1]}})
	compute(t, a, cone.HilbertBasis, cone.SupportHyperplanes)
	compute(t, b, cone.HilbertBasis, cone.SupportHyperplanes)

	assert.Equal(t, rows(t, a, cone.HilbertBasis), rows(t, b, cone.HilbertBasis))
	assert.Equal(t, rows(t, a, cone.SupportHyperplanes), rows(t, b, cone.SupportHyperplanes))
}

func TestRoutesAgree(t *testing.T) {
	t.Parallel()
	for _, mode := range []cone.Property{cone.DefaultMode, cone.DualMode, cone.PrimalMode} {
		mode := mode
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()
			c := newCone(t, input{cone.Polytope: {{0, 0}, {3, 0}, {0, 3}}})
			compute(t, c, mode, cone.HilbertBasis)
			assert.Equal(t, trianglePoints, rows(t, c, cone.HilbertBasis))
			assert.True(t, flag(t, c, cone.IsDeg1HilbertBasis))
		})
	}
}

func TestTriangleTriangulationAndFaces(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Polytope: {{0, 0}, {3, 0}, {0, 3}}})
	compute(t, c, cone.Triangulation, cone.TriangulationDetSum, cone.Volume,
		cone.UnimodularTriangulation, cone.FaceLattice, cone.FVector)

	assert.Equal(t, [][]int64{{0, 0, 1}, {0, 3, 1}, {3, 0, 1}}, rows(t, c, cone.Triangulation))
	cells, err := c.TriangulationCells(cone.Triangulation)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, int64(9), cells[0].Volume.Int64())
	assert.Equal(t, int64(9), integer(t, c, cone.TriangulationDetSum))
	assert.Equal(t, "9", rat(t, c, cone.Volume))

	uni, err := c.TriangulationCells(cone.UnimodularTriangulation)
	require.NoError(t, err)
	assert.Len(t, uni, 9)
	for _, cell := range uni {
		assert.Equal(t, int64(1), cell.Volume.Int64())
	}
	assert.GreaterOrEqual(t, len(rows(t, c, cone.UnimodularTriangulation)), 3)

	fv, err := c.FVector()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 3, 1}, fv)
	faces, err := c.Faces()
	require.NoError(t, err)
	assert.Equal(t, 8, faces.Len())
}

func TestCongruences(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{
		cone.Inequalities: {{1, 0}, {0, 1}},
		cone.Congruences:  {{1, 1, 2}},
	})
	compute(t, c, cone.HilbertBasis, cone.SublatticeCongruences, cone.Index)

	hb := rows(t, c, cone.HilbertBasis)
	assert.Equal(t, [][]int64{{0, 2}, {1, 1}, {2, 0}}, hb)
	assert.Equal(t, int64(2), integer(t, c, cone.Index))

	cong := rows(t, c, cone.SublatticeCongruences)
	require.Len(t, cong, 1)
	for _, v := range hb {
		s := cong[0][0]*v[0] + cong[0][1]*v[1]
		assert.Zero(t, s%cong[0][2])
	}
}

func TestImplicitEquations(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Inequalities: {{1, 0}, {-1, 0}, {0, 1}}})
	compute(t, c, cone.HilbertBasis, cone.ExtremeRays, cone.SublatticeEquations)

	assert.Equal(t, int64(1), integer(t, c, cone.Rank))
	assert.True(t, flag(t, c, cone.IsPointed))
	assert.Equal(t, [][]int64{{0, 1}}, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, [][]int64{{0, 1}}, rows(t, c, cone.ExtremeRays))
	assert.Len(t, rows(t, c, cone.SublatticeEquations), 1)
}

func TestNonPointedCone(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Inequalities: {{1, 0}}})
	compute(t, c, cone.HilbertBasis, cone.MaximalSubspace)

	assert.False(t, flag(t, c, cone.IsPointed))
	assert.Equal(t, [][]int64{{1, 0}}, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, [][]int64{{1, 0}}, rows(t, c, cone.SupportHyperplanes))
	assert.Len(t, rows(t, c, cone.MaximalSubspace), 1)

	for _, p := range []cone.Property{cone.ExtremeRays, cone.Triangulation, cone.FaceLattice, cone.Deg1Elements} {
		assert.ErrorIs(t, c.Compute(context.Background(), p), cone.ErrNotComputable, p.String())
	}

	s := newCone(t, input{cone.Generators: {{1, 0}}, cone.Subspace: {{0, 1}}})
	compute(t, s, cone.HilbertBasis, cone.MaximalSubspace)
	assert.False(t, flag(t, s, cone.IsPointed))
	assert.Len(t, rows(t, s, cone.MaximalSubspace), 1)
	hb := rows(t, s, cone.HilbertBasis)
	require.Len(t, hb, 1)
	assert.Equal(t, int64(1), hb[0][0])
	for _, p := range []cone.Property{cone.ExtremeRays, cone.UnimodularTriangulation, cone.FVector} {
		assert.ErrorIs(t, s.Compute(context.Background(), p), cone.ErrNotComputable, p.String())
	}
}

func TestNonPointedHilbertBasis(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   input
		// form has value 1 on the pointed Hilbert basis element and 0 on the
		// maximal subspace
		form []int64
		mod2 bool
	}{
		{"halfplane by inequality", input{cone.Inequalities: {{1, 0}}}, []int64{1, 0}, false},
		{"halfplane by generators", input{cone.Generators: {{1, 0}, {-1, 0}, {0, 1}}}, []int64{0, 1}, false},
		{"generators and subspace", input{cone.Generators: {{0, 1}}, cone.Subspace: {{1, 0}}}, []int64{0, 1}, false},
		{"halfplane with congruence", input{cone.Inequalities: {{0, 1}}, cone.Congruences: {{1, 1, 2}}}, []int64{0, 1}, true},
	}
	for _, tc := range cases {
		for _, alg := range []cone.Algorithm{cone.Auto, cone.Dual, cone.Primal} {
			t.Run(tc.name+"/"+alg.String(), func(t *testing.T) {
				c := newCone(t, tc.in, cone.WithAlgorithm(alg))
				compute(t, c, cone.HilbertBasis, cone.MaximalSubspace, cone.SupportHyperplanes)

				assert.False(t, flag(t, c, cone.IsPointed))
				assert.Len(t, rows(t, c, cone.SupportHyperplanes), 1)
				sub := rows(t, c, cone.MaximalSubspace)
				require.Len(t, sub, 1)
				assert.Zero(t, dot(sub[0], tc.form))

				hb := rows(t, c, cone.HilbertBasis)
				require.Len(t, hb, 1)
				assert.Equal(t, int64(1), dot(hb[0], tc.form))
				if tc.mod2 {
					assert.Zero(t, (hb[0][0]+hb[0][1])%2)
				}
			})
		}
	}
}

func TestIntegralClosureModuloSubspace(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		in     input
		closed bool
	}{
		// ±e1 and (1,1) generate Z × Z≥0 whatever lift the basis uses
		{"shifted generator", input{cone.Generators: {{1, 0}, {-1, 0}, {1, 1}}}, true},
		{"unit generator", input{cone.Generators: {{1, 0}, {-1, 0}, {0, 1}}}, true},
		{"height two only", input{cone.Generators: {{1, 0}, {-1, 0}, {0, 2}}}, false},
		{"with subspace input", input{cone.Generators: {{1, 1}}, cone.Subspace: {{1, 0}}}, true},
	}
	for _, tc := range cases {
		for _, alg := range []cone.Algorithm{cone.Auto, cone.Dual, cone.Primal} {
			t.Run(tc.name+"/"+alg.String(), func(t *testing.T) {
				c := newCone(t, tc.in, cone.WithAlgorithm(alg))
				compute(t, c, cone.IsIntegrallyClosed)
				assert.Equal(t, tc.closed, flag(t, c, cone.IsIntegrallyClosed))
			})
		}
	}
}

func TestIntegralClosureNeedsEnoughGenerators(t *testing.T) {
	t.Parallel()
	// two generators; in Z² the cone has four Hilbert basis elements
	c := newCone(t, input{cone.Normalization: {{1, 0}, {1, 3}}})
	compute(t, c, cone.HilbertBasis, cone.IsIntegrallyClosed)
	assert.Len(t, rows(t, c, cone.HilbertBasis), 2)
	assert.True(t, flag(t, c, cone.IsIntegrallyClosed))

	s := newCone(t, input{cone.Generators: {{1, 0}, {1, 3}}})
	compute(t, s, cone.HilbertBasis, cone.IsIntegrallyClosed)
	assert.Len(t, rows(t, s, cone.HilbertBasis), 4)
	assert.False(t, flag(t, s, cone.IsIntegrallyClosed))
}

func dot(a, b []int64) int64 {
	var s int64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func TestSigns(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Signs: {{1, 1}}})
	compute(t, c, cone.HilbertBasis)
	assert.Equal(t, [][]int64{{0, 1}, {1, 0}}, rows(t, c, cone.HilbertBasis))
}

func TestPolytopeByVertices(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Vertices: {{0, 0, 1}, {2, 0, 1}, {0, 2, 1}}})
	compute(t, c, cone.ModuleGenerators, cone.HilbertBasis, cone.VerticesOfPolyhedron,
		cone.RecessionRank, cone.Multiplicity)

	assert.True(t, c.IsInhomogeneous())
	assert.Equal(t, 3, c.EmbeddingDimension())
	assert.Equal(t, [][]int64{
		{0, 0, 1}, {0, 1, 1}, {0, 2, 1}, {1, 0, 1}, {1, 1, 1}, {2, 0, 1},
	}, rows(t, c, cone.ModuleGenerators))
	assert.Empty(t, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, [][]int64{{0, 0, 1}, {0, 2, 1}, {2, 0, 1}}, rows(t, c, cone.VerticesOfPolyhedron))
	assert.Empty(t, rows(t, c, cone.ExtremeRays))
	assert.Equal(t, int64(0), integer(t, c, cone.RecessionRank))
	assert.Equal(t, "4", rat(t, c, cone.Multiplicity))
}

func TestUnboundedPolyhedron(t *testing.T) {
	t.Parallel()
	// x ≥ 0, y ≥ 0, x + y ≥ 1
	c := newCone(t, input{cone.InhomInequalities: {{1, 0, 0}, {0, 1, 0}, {1, 1, -1}}})
	compute(t, c, cone.ModuleGenerators, cone.HilbertBasis, cone.VerticesOfPolyhedron, cone.RecessionRank)

	assert.Equal(t, [][]int64{{0, 1, 1}, {1, 0, 1}}, rows(t, c, cone.VerticesOfPolyhedron))
	assert.Equal(t, [][]int64{{0, 1, 0}, {1, 0, 0}}, rows(t, c, cone.ExtremeRays))
	assert.Equal(t, [][]int64{{0, 1, 0}, {1, 0, 0}}, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, [][]int64{{0, 1, 1}, {1, 0, 1}}, rows(t, c, cone.ModuleGenerators))
	assert.Equal(t, int64(2), integer(t, c, cone.RecessionRank))

	err := c.Compute(context.Background(), cone.Multiplicity)
	assert.ErrorIs(t, err, cone.ErrNotComputable)
	assert.Contains(t, err.Error(), "bounded polyhedron")
}

func TestAccessors(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Generators: {{1, 0}, {1, 2}}})

	_, err := c.Matrix(cone.HilbertBasis)
	assert.ErrorIs(t, err, cone.ErrNotComputed)

	compute(t, c, cone.HilbertBasis)
	_, err = c.Matrix(cone.Rank)
	assert.ErrorIs(t, err, cone.ErrWrongAccessor)
	_, err = c.Int(cone.HilbertBasis)
	assert.ErrorIs(t, err, cone.ErrWrongAccessor)
	_, err = c.Bool(cone.Multiplicity)
	assert.ErrorIs(t, err, cone.ErrWrongAccessor)
	_, err = c.FVector()
	assert.ErrorIs(t, err, cone.ErrNotComputed)

	// results are copies
	hb, err := c.Matrix(cone.HilbertBasis)
	require.NoError(t, err)
	hb[0][0].SetInt64(42)
	assert.Equal(t, [][]int64{{1, 0}, {1, 1}, {1, 2}}, rows(t, c, cone.HilbertBasis))

	// cached properties survive a second call
	compute(t, c, cone.HilbertBasis, cone.ExtremeRays)
	assert.Equal(t, [][]int64{{1, 0}, {1, 1}, {1, 2}}, rows(t, c, cone.HilbertBasis))
}

func TestNotComputable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gens := newCone(t, input{cone.Generators: {{1, 0}, {1, 2}}})
	for _, p := range []cone.Property{cone.ModuleGenerators, cone.VerticesOfPolyhedron, cone.RecessionRank, cone.Property(99)} {
		assert.ErrorIs(t, gens.Compute(ctx, p), cone.ErrNotComputable, p.String())
	}
	err := gens.Compute(ctx, cone.ModuleGenerators)
	assert.Contains(t, err.Error(), "Dehomogenization")

	ineq := newCone(t, input{cone.Inequalities: {{1, 0}, {0, 1}}})
	err = ineq.Compute(ctx, cone.IsIntegrallyClosed)
	assert.ErrorIs(t, err, cone.ErrNotComputable)
	assert.Contains(t, err.Error(), "Generators")
}

func TestMalformedInput(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		in   input
	}{
		{"mixed", input{cone.Generators: {{1, 0}}, cone.Inequalities: {{1, 0}}}},
		{"empty", input{}},
		{"widths", input{cone.Generators: {{1, 0}, {1, 2, 3}}}},
		{"dimensions", input{cone.Inequalities: {{1, 0}}, cone.Equations: {{1, 0, 0}}}},
		{"modulus", input{cone.Inequalities: {{1, 0}}, cone.Congruences: {{1, 1, 0}}}},
		{"denominator", input{cone.Vertices: {{1, 0, 0}}}},
		{"two gradings", input{cone.Generators: {{1, 0}}, cone.Grading: {{1, 0}, {0, 1}}}},
		{"sign", input{cone.Signs: {{2, 0}}}},
		{"zero dehomogenization", input{cone.InhomInequalities: {{1, 0}}, cone.Dehomogenization: {{0, 0}}}},
		{"grading with polytope", input{cone.Polytope: {{0}, {1}}, cone.Grading: {{0, 1}}}},
		{"precomputed with others", input{cone.PrecomputedExtremeRays: {{1, 0}}, cone.PrecomputedSupportHyperplanes: {{1, 0}}, cone.Equations: {{0, 1}}}},
		{"unknown type", input{cone.InputType(42): {{1}}}},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := cone.New(tc.in)
			assert.ErrorIs(t, err, cone.ErrMalformedInput)
		})
	}

	// checked during computation
	c := newCone(t, input{cone.Generators: {{1, 0}, {0, 1}}, cone.Grading: {{1, -1}}})
	assert.ErrorIs(t, c.Compute(context.Background(), cone.HilbertBasis), cone.ErrMalformedInput)
}

func TestPrecomputedPair(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{
		cone.PrecomputedExtremeRays:        {{1, 0}, {1, 2}},
		cone.PrecomputedSupportHyperplanes: {{0, 1}, {2, -1}},
	})
	compute(t, c, cone.HilbertBasis, cone.ExtremeRays)
	assert.Equal(t, [][]int64{{1, 0}, {1, 1}, {1, 2}}, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, [][]int64{{1, 0}, {1, 2}}, rows(t, c, cone.ExtremeRays))

	bad := newCone(t, input{
		cone.PrecomputedExtremeRays:        {{1, 0}, {1, 2}},
		cone.PrecomputedSupportHyperplanes: {{0, 1}, {-1, 0}},
	})
	assert.ErrorIs(t, bad.Compute(context.Background(), cone.HilbertBasis), cone.ErrMalformedInput)
}

func TestAddInequalities(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Generators: {{1, 0}, {0, 1}}})
	compute(t, c, cone.HilbertBasis)
	require.NoError(t, c.AddInequalities(context.Background(), [][]int64{{-1, 1}}))

	_, err := c.Matrix(cone.HilbertBasis)
	assert.ErrorIs(t, err, cone.ErrNotComputed)
	compute(t, c, cone.HilbertBasis)
	assert.Equal(t, [][]int64{{0, 1}, {1, 1}}, rows(t, c, cone.HilbertBasis))

	assert.ErrorIs(t, c.AddInequalities(context.Background(), [][]int64{{1}}), cone.ErrMalformedInput)
}

func TestAddGenerators(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Inequalities: {{1, 0}, {0, 1}}})
	require.NoError(t, c.AddGenerators(context.Background(), [][]int64{{-1, 1}}))
	compute(t, c, cone.HilbertBasis, cone.SupportHyperplanes)

	assert.Equal(t, [][]int64{{-1, 1}, {1, 0}}, rows(t, c, cone.HilbertBasis))
	assert.Equal(t, [][]int64{{0, 1}, {1, 1}}, rows(t, c, cone.SupportHyperplanes))

	cong := newCone(t, input{cone.Inequalities: {{1, 0}, {0, 1}}, cone.Congruences: {{1, 1, 2}}})
	assert.ErrorIs(t, cong.AddGenerators(context.Background(), [][]int64{{1, 1}}), cone.ErrNotComputable)
}

func TestEscalation(t *testing.T) {
	t.Parallel()
	huge := new(big.Int).Lsh(big.NewInt(1), 70)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	c, err := cone.NewBig(map[cone.InputType][][]*big.Int{
		cone.Normalization: {{huge, big.NewInt(0)}, {big.NewInt(0), big.NewInt(1)}},
	}, cone.WithLogger(log))
	require.NoError(t, err)
	compute(t, c, cone.HilbertBasis, cone.Index)

	hb, err := c.Matrix(cone.HilbertBasis)
	require.NoError(t, err)
	require.Len(t, hb, 2)
	assert.Equal(t, "[0 1]", "["+hb[0][0].String()+" "+hb[0][1].String()+"]")
	assert.Equal(t, 0, hb[1][0].Cmp(huge))
	idx, err := c.Int(cone.Index)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Cmp(huge))
	assert.Contains(t, buf.String(), "escalating integer kind")

	_, err = c.Int64Matrix(cone.HilbertBasis)
	assert.ErrorIs(t, err, number.ErrRange)
}

func TestBigKindFromStart(t *testing.T) {
	t.Parallel()
	c := newCone(t, input{cone.Generators: {{1, 0}, {1, 2}}}, cone.WithIntegerKind(number.Big))
	compute(t, c, cone.HilbertBasis)
	assert.Equal(t, [][]int64{{1, 0}, {1, 1}, {1, 2}}, rows(t, c, cone.HilbertBasis))
}

func TestThreadCountDoesNotMatter(t *testing.T) {
	t.Parallel()
	f, err := builder.Build(nil, builder.Cube(3))
	require.NoError(t, err)
	var got [][][]int64
	for _, n := range []int{1, 4} {
		c, err := f.Cone(cone.WithThreads(n), cone.WithAlgorithm(cone.Primal))
		require.NoError(t, err)
		compute(t, c, cone.HilbertBasis)
		got = append(got, rows(t, c, cone.HilbertBasis))
	}
	assert.Equal(t, got[0], got[1])
	assert.Len(t, got[0], 8)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()
	in := input{cone.Generators: {{1, 0}}}
	assert.Panics(t, func() { _, _ = cone.New(in, cone.WithThreads(-1)) })
	assert.Panics(t, func() { _, _ = cone.New(in, cone.WithIntegerKind(number.Kind(9))) })
	assert.Panics(t, func() { _, _ = cone.New(in, cone.WithAlgorithm(cone.Algorithm(9))) })
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newCone(t, input{cone.Generators: {{1, 0}, {1, 2}}})
	assert.ErrorIs(t, c.Compute(ctx, cone.HilbertBasis), context.Canceled)
}
