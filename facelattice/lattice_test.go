// SPDX-License-Identifier: MIT
package facelattice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcone/facelattice"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
	"github.com/katalvlaran/lvcone/polar"
)

var (
	triangle = [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	cube = [][]int64{
		{0, 0, 0, 1}, {0, 0, 1, 1}, {0, 1, 0, 1}, {0, 1, 1, 1},
		{1, 0, 0, 1}, {1, 0, 1, 1}, {1, 1, 0, 1}, {1, 1, 1, 1},
	}

	octahedron = [][]int64{
		{1, 0, 0, 1}, {-1, 0, 0, 1}, {0, 1, 0, 1},
		{0, -1, 0, 1}, {0, 0, 1, 1}, {0, 0, -1, 1},
	}

	pyramid = [][]int64{
		{0, 0, 0, 1}, {2, 0, 0, 1}, {0, 2, 0, 1}, {2, 2, 0, 1}, {1, 1, 1, 1},
	}
)

func lattice(t *testing.T, gens [][]int64, opts ...facelattice.Option) *facelattice.Lattice {
	t.Helper()
	g, err := matrix.FromInt64[int64](number.NewMachine(), len(gens[0]), gens)
	require.NoError(t, err)
	res, err := polar.Dualize(context.Background(), g)
	require.NoError(t, err)
	l, err := facelattice.Compute(context.Background(), g, res.Hyperplanes, opts...)
	require.NoError(t, err)

	return l
}

func TestFVectors(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		gens [][]int64
		want []int
	}{
		{"triangle", triangle, []int{1, 3, 3, 1}},
		{"cube", cube, []int{1, 6, 12, 8, 1}},
		{"cross", octahedron, []int{1, 8, 12, 6, 1}},
		{"pyramid", pyramid, []int{1, 5, 8, 5, 1}},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := lattice(t, tc.gens)
			assert.Equal(t, tc.want, l.FVector())

			// Euler relation of the underlying polytope
			sum := 0
			for k, f := range l.FVector() {
				if k%2 == 0 {
					sum += f
				} else {
					sum -= f
				}
			}
			assert.Zero(t, sum)
		})
	}
}

func TestFacesOfTriangle(t *testing.T) {
	t.Parallel()
	l := lattice(t, triangle)

	m := l.Map()
	assert.Len(t, m, 8)
	assert.Equal(t, 0, m["{0,1,2}"])
	assert.Equal(t, 1, m["{0,1}"])
	assert.Equal(t, 2, m["{2}"])
	assert.Equal(t, 3, m["{}"])

	faces := l.Faces()
	require.Len(t, faces, 8)
	assert.Equal(t, "{0,1}", faces[1].Rays.String())
	assert.Equal(t, "{}", faces[7].Rays.String())
	assert.Equal(t, uint(3), faces[7].Hyps.Count())

	dual := lattice(t, triangle, facelattice.WithDualKeys()).Map()
	assert.Equal(t, 0, dual["{}"])
	assert.Equal(t, 3, dual["{0,1,2}"])
}

func TestCodimBound(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{1, 6}, lattice(t, cube, facelattice.WithCodimBound(1)).FVector())
	assert.Equal(t, []int{1}, lattice(t, cube, facelattice.WithCodimBound(0)).FVector())
}

func TestPolyhedron(t *testing.T) {
	t.Parallel()
	r := number.NewMachine()
	// the quadrant with vertex (0,0) and recession rays e1, e2
	rays, _ := matrix.FromInt64[int64](r, 3, [][]int64{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}})
	hyps, _ := matrix.FromInt64[int64](r, 3, [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	l, err := facelattice.Compute(context.Background(), rays, hyps, facelattice.WithVertices(1))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1}, l.FVector())

	// a strip between two vertices adds the empty face
	rays, _ = matrix.FromInt64[int64](r, 3, [][]int64{{0, 0, 1}, {1, 0, 1}, {0, 1, 0}})
	hyps, _ = matrix.FromInt64[int64](r, 3, [][]int64{{1, 0, 0}, {-1, 0, 1}, {0, 1, 0}})
	l, err = facelattice.Compute(context.Background(), rays, hyps, facelattice.WithVertices(2))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 1}, l.FVector())
	assert.Equal(t, 3, l.Map()["{}"])
}

func TestThreadCountDoesNotMatter(t *testing.T) {
	t.Parallel()
	one := lattice(t, octahedron, facelattice.WithThreads(1))
	many := lattice(t, octahedron, facelattice.WithThreads(4))
	assert.Equal(t, one.Map(), many.Map())
}

func TestErrors(t *testing.T) {
	t.Parallel()
	r := number.NewMachine()
	ctx := context.Background()
	rays, _ := matrix.FromInt64[int64](r, 2, [][]int64{{1, 0}, {0, 1}})

	_, err := facelattice.Compute[int64](ctx, nil, rays)
	assert.ErrorIs(t, err, facelattice.ErrNilInput)

	wide, _ := matrix.FromInt64[int64](r, 3, [][]int64{{1, 0, 0}})
	_, err = facelattice.Compute(ctx, rays, wide)
	assert.ErrorIs(t, err, facelattice.ErrDimension)

	half, _ := matrix.FromInt64[int64](r, 2, [][]int64{{0, 1}})
	_, err = facelattice.Compute(ctx, rays, half)
	assert.ErrorIs(t, err, facelattice.ErrNotPointed)

	_, err = facelattice.Compute(ctx, rays, rays, facelattice.WithVertices(3))
	assert.ErrorIs(t, err, facelattice.ErrBadOption)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = facelattice.Compute(cancelled, rays, rays)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Panics(t, func() { facelattice.WithThreads(-1)(&facelattice.Options{}) })
	assert.Panics(t, func() { facelattice.WithVertices(-1)(&facelattice.Options{}) })
}
