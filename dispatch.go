// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/bitdb/gpu"
)

// deviceRegistry is the process-wide residency registry backing the GPU
// entry points below. A single registry is shared across calls so that
// the residency flags in Options actually have something to keep resident
// between them, amortizing repeated transfers.
var deviceRegistry = gpu.NewRegistry()

func toGPUOp(op operator) gpu.Op {
	switch op {
	case opDiff:
		return gpu.OpDiff
	case opInter:
		return gpu.OpInter
	case opMinus:
		return gpu.OpMinus
	default:
		return gpu.OpUnion
	}
}

// gpuCountInto is the shared implementation behind every *CountGPU /
// *CountStoreGPU entry point: it builds a gpu.Request from the two
// containers and the caller's options and runs it through gpu.Kernel,
// which in turn dispatches to the native OpenMP-offload compute or the
// simulated fallback depending on how this binary was built.
func gpuCountInto(a, b *BitDB, op operator, opts Options, out *CountMatrix) error {
	checkKernelPreconditions("GPUCount", a, b)
	n, m := int(a.nelem), int(b.nelem)
	out.checkShape("GPUCount", n, m)
	err := gpu.Kernel(deviceRegistry, gpu.Request{
		DeviceID:      opts.DeviceID,
		Op:            toGPUOp(op),
		WordWidth:     a.wordWidth,
		N:             n,
		M:             m,
		AWords:        a.words,
		BWords:        b.words,
		Counts:        out.Data,
		UpdateA:       opts.UpdateFirstOperand,
		UpdateB:       opts.UpdateSecondOperand,
		ReleaseA:      opts.ReleaseFirstOperand,
		ReleaseB:      opts.ReleaseSecondOperand,
		ReleaseCounts: opts.ReleaseCounts,
	})
	if err != nil {
		if errors.Is(err, gpu.ErrNoGPU) {
			return fmt.Errorf("%w: %w", ErrNoDevice, err)
		}
		return fmt.Errorf("%w: %w", ErrDeviceCompute, err)
	}
	return nil
}

// cpuCountInto is the shared implementation behind every *CountCPU /
// *CountStoreCPU entry point: threaded when more than one worker is
// usable, otherwise the serial algorithm (itself also independently
// tested, since every other backend is checked for bit-exact agreement
// against it).
func cpuCountInto(ctx context.Context, a, b *BitDB, op operator, opts Options, out *CountMatrix) error {
	if opts.resolveThreads() <= 1 {
		SerialCountInto(a, b, op, out)
		return nil
	}
	return ThreadedCountInto(ctx, a, b, op, opts, out)
}

func allocCount(n, m int) *CountMatrix { return NewCountMatrix(n, m) }

// The four entry points below are written out once per operator: each
// operator's allocating and store variants for both the CPU and GPU
// backends, so every operator exposes the same four entry points.

// InterCountCPU is the allocating-CPU entry point for AND-and-count.
func InterCountCPU(ctx context.Context, a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := cpuCountInto(ctx, a, b, opInter, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// InterCountStoreCPU is the store-CPU entry point for AND-and-count.
func InterCountStoreCPU(ctx context.Context, a, b *BitDB, opts Options, out *CountMatrix) error {
	return cpuCountInto(ctx, a, b, opInter, opts, out)
}

// InterCountGPU is the allocating-GPU entry point for AND-and-count.
func InterCountGPU(a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := gpuCountInto(a, b, opInter, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// InterCountStoreGPU is the store-GPU entry point for AND-and-count.
func InterCountStoreGPU(a, b *BitDB, opts Options, out *CountMatrix) error {
	return gpuCountInto(a, b, opInter, opts, out)
}

// UnionCountCPU is the allocating-CPU entry point for OR-and-count.
func UnionCountCPU(ctx context.Context, a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := cpuCountInto(ctx, a, b, opUnion, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnionCountStoreCPU is the store-CPU entry point for OR-and-count.
func UnionCountStoreCPU(ctx context.Context, a, b *BitDB, opts Options, out *CountMatrix) error {
	return cpuCountInto(ctx, a, b, opUnion, opts, out)
}

// UnionCountGPU is the allocating-GPU entry point for OR-and-count. Routes
// to its own operator rather than aliasing a sibling's store routine.
func UnionCountGPU(a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := gpuCountInto(a, b, opUnion, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnionCountStoreGPU is the store-GPU entry point for OR-and-count.
func UnionCountStoreGPU(a, b *BitDB, opts Options, out *CountMatrix) error {
	return gpuCountInto(a, b, opUnion, opts, out)
}

// DiffCountCPU is the allocating-CPU entry point for XOR-and-count.
func DiffCountCPU(ctx context.Context, a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := cpuCountInto(ctx, a, b, opDiff, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DiffCountStoreCPU is the store-CPU entry point for XOR-and-count.
func DiffCountStoreCPU(ctx context.Context, a, b *BitDB, opts Options, out *CountMatrix) error {
	return cpuCountInto(ctx, a, b, opDiff, opts, out)
}

// DiffCountGPU is the allocating-GPU entry point for XOR-and-count.
// Routes to its own operator, like UnionCountGPU.
func DiffCountGPU(a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := gpuCountInto(a, b, opDiff, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DiffCountStoreGPU is the store-GPU entry point for XOR-and-count.
func DiffCountStoreGPU(a, b *BitDB, opts Options, out *CountMatrix) error {
	return gpuCountInto(a, b, opDiff, opts, out)
}

// MinusCountCPU is the allocating-CPU entry point for AND-NOT-and-count.
func MinusCountCPU(ctx context.Context, a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := cpuCountInto(ctx, a, b, opMinus, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MinusCountStoreCPU is the store-CPU entry point for AND-NOT-and-count.
func MinusCountStoreCPU(ctx context.Context, a, b *BitDB, opts Options, out *CountMatrix) error {
	return cpuCountInto(ctx, a, b, opMinus, opts, out)
}

// MinusCountGPU is the allocating-GPU entry point for AND-NOT-and-count.
// Routes to its own operator, like UnionCountGPU.
func MinusCountGPU(a, b *BitDB, opts Options) (*CountMatrix, error) {
	out := allocCount(int(a.nelem), int(b.nelem))
	if err := gpuCountInto(a, b, opMinus, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MinusCountStoreGPU is the store-GPU entry point for AND-NOT-and-count.
func MinusCountStoreGPU(a, b *BitDB, opts Options, out *CountMatrix) error {
	return gpuCountInto(a, b, opMinus, opts, out)
}
