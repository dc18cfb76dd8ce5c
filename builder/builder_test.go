// SPDX-License-Identifier: MIT
package builder_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcone/builder"
	"github.com/katalvlaran/lvcone/cone"
)

func build(t *testing.T, opts []builder.BuilderOption, cons ...builder.Constructor) *builder.Fixture {
	t.Helper()
	f, err := builder.Build(opts, cons...)
	require.NoError(t, err)

	return f
}

func TestConstructorRows(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		ctor builder.Constructor
		want [][]int64
	}{
		{"Simplex(2,3)", builder.Simplex(2, 3), [][]int64{{0, 0}, {3, 0}, {0, 3}}},
		{"Cube(2)", builder.Cube(2), [][]int64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		{"Box[2 1]", builder.Box(2, 1), [][]int64{{0, 0}, {0, 1}, {2, 0}, {2, 1}}},
		{"CrossPolytope(2)", builder.CrossPolytope(2), [][]int64{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := build(t, nil, tc.ctor)
			assert.Equal(t, tc.name, f.Name)
			assert.Equal(t, 2, f.Dim)
			assert.Equal(t, tc.want, f.Points)
		})
	}
}

func TestScaleAndComposition(t *testing.T) {
	t.Parallel()
	f := build(t, []builder.BuilderOption{builder.WithScale(2)}, builder.Simplex(1, 1), builder.CrossPolytope(1))
	assert.Equal(t, "Simplex(1,1)+CrossPolytope(1)", f.Name)
	assert.Equal(t, [][]int64{{0}, {2}, {2}, {-2}}, f.Points)
	assert.Equal(t, [][]int64{{0, 1}, {2, 1}, {2, 1}, {-2, 1}}, f.Homogenized())
	assert.Equal(t, f.Points, f.Input()[cone.Polytope])
}

func TestRandomIsDeterministic(t *testing.T) {
	t.Parallel()
	a := build(t, []builder.BuilderOption{builder.WithSeed(7)}, builder.RandomLatticePolytope(3, 6, 4))
	b := build(t, []builder.BuilderOption{builder.WithSeed(7)}, builder.RandomLatticePolytope(3, 6, 4))
	assert.Equal(t, a.Points, b.Points)
	require.Len(t, a.Points, 6)
	for _, p := range a.Points {
		require.Len(t, p, 3)
		for _, v := range p {
			assert.GreaterOrEqual(t, v, int64(0))
			assert.LessOrEqual(t, v, int64(4))
		}
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		opts []builder.BuilderOption
		cons []builder.Constructor
		want error
	}{
		{"no constructor", nil, nil, builder.ErrConstructFailed},
		{"nil constructor", nil, []builder.Constructor{nil}, builder.ErrConstructFailed},
		{"simplex d=0", nil, []builder.Constructor{builder.Simplex(0, 1)}, builder.ErrTooFewVertices},
		{"box side 0", nil, []builder.Constructor{builder.Box(1, 0)}, builder.ErrTooFewVertices},
		{"cube d=0", nil, []builder.Constructor{builder.Cube(0)}, builder.ErrTooFewVertices},
		{"random without rng", nil, []builder.Constructor{builder.RandomLatticePolytope(2, 3, 1)}, builder.ErrNeedRandSource},
		{"random too few points", []builder.BuilderOption{builder.WithSeed(1)}, []builder.Constructor{builder.RandomLatticePolytope(2, 2, 1)}, builder.ErrTooFewVertices},
		{"dimensions differ", nil, []builder.Constructor{builder.Cube(2), builder.Cube(3)}, builder.ErrDimensionMismatch},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := builder.Build(tc.opts, tc.cons...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// The fixtures have known invariants; computing them exercises the facade
// on the dual, primal and simplicial routes.
func TestFixtureInvariants(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name   string
		ctor   builder.Constructor
		points int
		mult   int64
		fv     []int
	}{
		{"triangle", builder.Simplex(2, 3), 10, 9, []int{1, 3, 3, 1}},
		{"square", builder.Cube(2), 4, 2, []int{1, 4, 4, 1}},
		{"rectangle", builder.Box(2, 1), 6, 4, []int{1, 4, 4, 1}},
		{"cube", builder.Cube(3), 8, 6, []int{1, 6, 12, 8, 1}},
		{"octahedron", builder.CrossPolytope(3), 7, 8, []int{1, 8, 12, 6, 1}},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, err := build(t, nil, tc.ctor).Cone()
			require.NoError(t, err)
			ctx := context.Background()
			require.NoError(t, c.Compute(ctx, cone.Deg1Elements, cone.Multiplicity, cone.FVector))

			d1, err := c.Matrix(cone.Deg1Elements)
			require.NoError(t, err)
			assert.Len(t, d1, tc.points)
			mult, err := c.Rat(cone.Multiplicity)
			require.NoError(t, err)
			assert.Equal(t, 0, mult.Cmp(new(big.Rat).SetInt64(tc.mult)))
			fv, err := c.FVector()
			require.NoError(t, err)
			assert.Equal(t, tc.fv, fv)

			for _, mode := range []cone.Property{cone.DualMode, cone.PrimalMode} {
				c, err := build(t, nil, tc.ctor).Cone()
				require.NoError(t, err)
				require.NoError(t, c.Compute(ctx, mode, cone.HilbertBasis, cone.IsDeg1HilbertBasis))
				hb, err := c.Matrix(cone.HilbertBasis)
				require.NoError(t, err)
				assert.Len(t, hb, tc.points, mode.String())
				deg1, err := c.Bool(cone.IsDeg1HilbertBasis)
				require.NoError(t, err)
				assert.True(t, deg1)
			}
		})
	}
}
