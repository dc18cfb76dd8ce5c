// SPDX-License-Identifier: MIT
package polar_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
	"github.com/katalvlaran/lvcone/polar"
)

var (
	square = [][]int64{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1}}

	// all lattice points of 3·Δ₂ at height 1
	trianglePoints = [][]int64{
		{0, 0, 1}, {0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {1, 0, 1},
		{1, 1, 1}, {1, 2, 1}, {2, 0, 1}, {2, 1, 1}, {3, 0, 1},
	}

	octahedron = [][]int64{
		{1, 0, 0, 1}, {-1, 0, 0, 1}, {0, 1, 0, 1},
		{0, -1, 0, 1}, {0, 0, 1, 1}, {0, 0, -1, 1},
	}
)

func cube() [][]int64 {
	var out [][]int64
	for _, a := range []int64{0, 1} {
		for _, b := range []int64{0, 1} {
			for _, c := range []int64{0, 1} {
				out = append(out, []int64{a, b, c, 1})
			}
		}
	}

	return out
}

func dualize(t *testing.T, gens [][]int64, opts ...polar.Option) *polar.Result[int64] {
	t.Helper()
	g, err := matrix.FromInt64[int64](number.NewMachine(), len(gens[0]), gens)
	require.NoError(t, err)
	res, err := polar.Dualize(context.Background(), g, opts...)
	require.NoError(t, err)

	return res
}

func volume(tri []polar.Simplex[int64]) int64 {
	var sum int64
	for _, s := range tri {
		sum += s.Volume
	}

	return sum
}

func TestSquareCone(t *testing.T) {
	t.Parallel()
	res := dualize(t, square, polar.WithTriangulation())

	assert.True(t, res.Pointed)
	assert.Equal(t, [][]int64{{-1, 0, 1}, {0, -1, 1}, {0, 1, 0}, {1, 0, 0}}, res.Hyperplanes.Int64Rows())
	assert.Equal(t, []int{0, 1, 2, 3}, res.Extreme)
	require.Len(t, res.Incidence, 4)
	// x ≥ 0 contains (0,0,1) and (0,1,1)
	assert.Equal(t, uint(2), res.Incidence[3].Count())
	assert.True(t, res.Incidence[3].Test(0))
	assert.True(t, res.Incidence[3].Test(2))

	require.Len(t, res.Triangulation, 2)
	assert.Equal(t, []int{0, 1, 2}, res.Triangulation[0].Key)
	assert.Equal(t, []int{1, 2, 3}, res.Triangulation[1].Key)
	assert.Equal(t, int64(2), volume(res.Triangulation))
}

func TestDualityRoundTrip(t *testing.T) {
	t.Parallel()
	for name, gens := range map[string][][]int64{
		"square": square,
		"cube":   cube(),
		"cross":  octahedron,
	} {
		gens := gens
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sh := dualize(t, gens)
			back := dualize(t, sh.Hyperplanes.Int64Rows())

			g, _ := matrix.FromInt64[int64](number.NewMachine(), len(gens[0]), gens)
			matrix.SortLex(g)
			assert.Equal(t, g.Int64Rows(), back.Hyperplanes.Int64Rows())
			assert.Len(t, back.Extreme, sh.Hyperplanes.Rows())
		})
	}
}

func TestRedundantGenerators(t *testing.T) {
	t.Parallel()
	res := dualize(t, trianglePoints, polar.WithTriangulation())

	assert.Equal(t, [][]int64{{-1, -1, 3}, {0, 1, 0}, {1, 0, 0}}, res.Hyperplanes.Int64Rows())
	assert.Equal(t, []int{0, 3, 9}, res.Extreme)
	// every point is used and the triangulation is unimodular
	assert.Len(t, res.Triangulation, 9)
	for _, s := range res.Triangulation {
		assert.Equal(t, int64(1), s.Volume, "simplex %v", s.Key)
	}
}

func TestTriangulationVolume(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name   string
		gens   [][]int64
		facets int
		volume int64
	}{
		{"cube", cube(), 6, 6},
		{"cross", octahedron, 8, 8},
		{"triangle", trianglePoints, 3, 9},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := dualize(t, tc.gens, polar.WithTriangulation())
			assert.Equal(t, tc.facets, res.Hyperplanes.Rows())
			assert.Equal(t, tc.volume, volume(res.Triangulation))
		})
	}
}

func TestNonPointedCone(t *testing.T) {
	t.Parallel()
	res := dualize(t, [][]int64{{1, 0}, {-1, 0}, {0, 1}})

	assert.False(t, res.Pointed)
	assert.Equal(t, [][]int64{{0, 1}}, res.Hyperplanes.Int64Rows())
	assert.Nil(t, res.Extreme)
}

func TestZeroAndDuplicateGenerators(t *testing.T) {
	t.Parallel()
	res := dualize(t, [][]int64{{0, 0}, {1, 0}, {2, 0}, {1, 2}})

	assert.Equal(t, [][]int64{{0, 1}, {2, -1}}, res.Hyperplanes.Int64Rows())
	assert.Equal(t, []int{1, 3}, res.Extreme)
	// the zero generator lies on every facet
	for _, inc := range res.Incidence {
		assert.True(t, inc.Test(0))
	}
}

func TestThreadCountDoesNotMatter(t *testing.T) {
	t.Parallel()
	one := dualize(t, cube(), polar.WithThreads(1), polar.WithTriangulation())
	many := dualize(t, cube(), polar.WithThreads(4), polar.WithTriangulation())

	assert.Equal(t, one.Hyperplanes.Int64Rows(), many.Hyperplanes.Int64Rows())
	assert.Equal(t, one.Triangulation, many.Triangulation)
}

func TestBigRingAgrees(t *testing.T) {
	t.Parallel()
	g, err := matrix.FromInt64[*big.Int](number.NewBig(), 4, octahedron)
	require.NoError(t, err)
	res, err := polar.Dualize(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, dualize(t, octahedron).Hyperplanes.Int64Rows(), res.Hyperplanes.Int64Rows())
}

func TestErrors(t *testing.T) {
	t.Parallel()
	r := number.NewMachine()

	_, err := polar.Dualize[int64](context.Background(), nil)
	assert.ErrorIs(t, err, polar.ErrNilInput)

	flat, _ := matrix.FromInt64[int64](r, 2, [][]int64{{1, 0}, {2, 0}})
	_, err = polar.Dualize(context.Background(), flat)
	assert.ErrorIs(t, err, polar.ErrNotFullDimensional)

	g, _ := matrix.FromInt64[int64](r, 3, square)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = polar.Dualize(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Panics(t, func() { polar.WithThreads(-1)(&polar.Options{}) })
}
