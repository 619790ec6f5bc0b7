//go:build cgo && gpuoffload

// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gpu

/*
#cgo CFLAGS: -fopenmp
#cgo LDFLAGS: -fopenmp

#include <stdint.h>
#include <omp.h>

static inline uint64_t bitdb_popcount(uint64_t x) {
    x -= (x >> 1) & 0x5555555555555555ULL;
    x = ((x >> 2) & 0x3333333333333333ULL) + (x & 0x3333333333333333ULL);
    x = (x + (x >> 4)) & 0x0F0F0F0F0F0F0F0FULL;
    x *= 0x0101010101010101ULL;
    return x >> 56;
}

static inline uint64_t bitdb_apply_op(int op, uint64_t a, uint64_t b) {
    switch (op) {
    case 0: return a ^ b;          // diff (XOR)
    case 1: return a & b;          // inter (AND)
    case 2: return a & (~b);       // minus (AND NOT)
    default: return a | b;         // union (OR)
    }
}

// bitdb_kernel implements the batched pairwise op-and-count kernel: one
// team per row i, one thread per column j within the team, each thread
// reducing its W-word inner product with the portable
// popcount so the kernel body compiles identically whether the team runs
// on the host fallback or an accelerator target. a and b are the
// concatenated N*ww and M*ww word arrays; counts is the N*M row-major
// output.
void bitdb_kernel(const uint64_t *a, const uint64_t *b, uint32_t *counts,
                   int n, int m, int ww, int op, int device) {
    #pragma omp target teams distribute \
        map(to: a[0:(long)n*ww], b[0:(long)m*ww]) \
        map(from: counts[0:(long)n*m]) \
        device(device)
    for (int i = 0; i < n; i++) {
        #pragma omp parallel for
        for (int j = 0; j < m; j++) {
            const uint64_t *arow = a + (long)i * ww;
            const uint64_t *brow = b + (long)j * ww;
            uint64_t sum = 0;
            #pragma omp simd reduction(+:sum)
            for (int k = 0; k < ww; k++) {
                sum += bitdb_popcount(bitdb_apply_op(op, arow[k], brow[k]));
            }
            counts[(long)i * m + j] = (uint32_t)sum;
        }
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// compute runs req through the real OpenMP target-offload kernel declared
// above. It is the native counterpart to native_stub.go's simulated
// compute; both share the exact same Request/Kernel orchestration in
// backend.go, so only this function's build tag changes what actually
// executes the reduction. Device 0 is always accepted (OpenMP falls back
// to the host when no accelerator is attached); a nonzero device id must
// name a real device.
func compute(req Request) error {
	if len(req.AWords) == 0 || len(req.BWords) == 0 || len(req.Counts) == 0 {
		return nil
	}
	if ndev := int(C.omp_get_num_devices()); req.DeviceID > 0 && req.DeviceID >= ndev {
		return fmt.Errorf("%w: device %d, have %d", ErrNoGPU, req.DeviceID, ndev)
	}
	C.bitdb_kernel(
		(*C.uint64_t)(unsafe.Pointer(&req.AWords[0])),
		(*C.uint64_t)(unsafe.Pointer(&req.BWords[0])),
		(*C.uint32_t)(unsafe.Pointer(&req.Counts[0])),
		C.int(req.N), C.int(req.M), C.int(req.WordWidth),
		C.int(req.Op), C.int(req.DeviceID),
	)
	return nil
}
