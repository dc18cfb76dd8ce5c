// SPDX-License-Identifier: MIT
// Package parallel provides the fork-join helper used by the cone engines.
// Work over an index range is split into contiguous blocks, every block is
// processed by exactly one goroutine into its own result buffer, and the
// buffers are handed back in block order so callers can merge them
// deterministically after the barrier.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested thread count. Non-positive means all CPUs.
func Workers(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}

	return threads
}

// Block is a half-open index range [Lo,Hi).
type Block struct {
	Lo, Hi int
}

// Split partitions [0,n) into at most parts contiguous non-empty blocks.
func Split(n, parts int) []Block {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	blocks := make([]Block, 0, parts)
	size, rest := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		hi := lo + size
		if i < rest {
			hi++
		}
		blocks = append(blocks, Block{Lo: lo, Hi: hi})
		lo = hi
	}

	return blocks
}

// Map runs fn on every block of [0,n) with at most threads goroutines and
// returns the per-block results in block order. The derived context is
// cancelled as soon as one block fails; the first error is returned.
func Map[R any](ctx context.Context, n, threads int, fn func(ctx context.Context, b Block) (R, error)) ([]R, error) {
	workers := Workers(threads)
	blocks := Split(n, workers)
	out := make([]R, len(blocks))
	if len(blocks) == 0 {
		return out, ctx.Err()
	}
	if len(blocks) == 1 {
		r, err := fn(ctx, blocks[0])
		out[0] = r
		return out, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range blocks {
		i, b := i, b
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, b)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// ForEach runs fn for every index in [0,n), checking ctx between indices.
// Indices of one block run sequentially on one goroutine.
func ForEach(ctx context.Context, n, threads int, fn func(i int) error) error {
	_, err := Map(ctx, n, threads, func(ctx context.Context, b Block) (struct{}, error) {
		for i := b.Lo; i < b.Hi; i++ {
			if err := ctx.Err(); err != nil {
				return struct{}{}, err
			}
			if err := fn(i); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})

	return err
}
