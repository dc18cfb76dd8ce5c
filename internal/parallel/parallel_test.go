// SPDX-License-Identifier: MIT
package parallel_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcone/internal/parallel"
)

func TestSplitCoversRange(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ n, parts int }{{10, 3}, {3, 8}, {1, 1}, {7, 0}} {
		blocks := parallel.Split(tc.n, tc.parts)
		next := 0
		for _, b := range blocks {
			assert.Equal(t, next, b.Lo)
			assert.Greater(t, b.Hi, b.Lo)
			next = b.Hi
		}
		assert.Equal(t, tc.n, next)
	}
	assert.Empty(t, parallel.Split(0, 4))
}

func TestMapKeepsBlockOrder(t *testing.T) {
	t.Parallel()
	out, err := parallel.Map(context.Background(), 100, 7, func(_ context.Context, b parallel.Block) ([]int, error) {
		var local []int
		for i := b.Lo; i < b.Hi; i++ {
			local = append(local, i)
		}
		return local, nil
	})
	require.NoError(t, err)
	var flat []int
	for _, part := range out {
		flat = append(flat, part...)
	}
	require.Len(t, flat, 100)
	for i, v := range flat {
		assert.Equal(t, i, v)
	}
}

func TestForEachStopsOnError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var calls atomic.Int64
	err := parallel.ForEach(context.Background(), 50, 1, func(i int) error {
		calls.Add(1)
		if i == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(4), calls.Load())
}

func TestForEachHonorsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := parallel.ForEach(ctx, 10, 4, func(int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
