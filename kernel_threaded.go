// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// threadedChunk is the unit of work claimed by a worker: a contiguous run
// of cells in the collapsed (i, j) iteration space [start, end).
const threadedChunk = 64

// ThreadedCountInto partitions the collapsed N*M (i, j) grid across
// opts.resolveThreads() workers and fills out with the op-and-count matrix.
// Partitioning uses a shared atomic cursor handing out small fixed-size
// chunks to whichever worker asks next, approximating an OpenMP
// guided/dynamic schedule: load stays balanced even when N or M is much
// smaller than the worker count, since a worker that
// finishes early simply claims the next unclaimed chunk instead of sitting
// idle on a statically assigned slice. Each cell is written by exactly one
// worker; the errgroup join barrier is the only synchronization.
func ThreadedCountInto(ctx context.Context, a, b *BitDB, op operator, opts Options, out *CountMatrix) error {
	checkKernelPreconditions("ThreadedCountInto", a, b)
	n, m := int(a.nelem), int(b.nelem)
	out.checkShape("ThreadedCountInto", n, m)

	total := n * m
	if total == 0 {
		return nil
	}
	workers := opts.resolveThreads()
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		SerialCountInto(a, b, op, out)
		return nil
	}

	var cursor int64
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				start := int(atomic.AddInt64(&cursor, threadedChunk)) - threadedChunk
				if start >= total {
					return nil
				}
				end := start + threadedChunk
				if end > total {
					end = total
				}
				for cell := start; cell < end; cell++ {
					i, j := cell/m, cell%m
					out.Data[cell] = cellPopcount(op, a, b, uint32(i), uint32(j))
				}
			}
		})
	}
	return g.Wait()
}

// ThreadedCount allocates and fills a new count matrix. See
// ThreadedCountInto.
func ThreadedCount(ctx context.Context, a, b *BitDB, op operator, opts Options) (*CountMatrix, error) {
	checkKernelPreconditions("ThreadedCount", a, b)
	out := NewCountMatrix(int(a.nelem), int(b.nelem))
	if err := ThreadedCountInto(ctx, a, b, op, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}
