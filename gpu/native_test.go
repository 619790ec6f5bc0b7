//go:build cgo && gpuoffload

// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNativeKernelMatchesTwoSlotIntersection exercises the real OpenMP target-offload
// kernel (native.go) against the same fixture the simulated-backend test
// (simulated_test.go) checks, so a build with an OpenMP-capable toolchain
// verifies the accelerator path is bit-exact with the portable one.
func TestNativeKernelMatchesTwoSlotIntersection(t *testing.T) {
	ww := 2
	set := func(indices ...int) []uint64 {
		w := make([]uint64, ww)
		for _, i := range indices {
			w[i/64] |= 1 << uint(i%64)
		}
		return w
	}
	a := append(append([]uint64{}, set(1, 3)...), set(1, 3, 7)...)
	b := append(append([]uint64{}, set(3, 5)...), set(3, 5, 7)...)
	counts := make([]uint32, 4)

	reg := NewRegistry()
	err := Kernel(reg, Request{
		Op: OpInter, WordWidth: ww, N: 2, M: 2,
		AWords: a, BWords: b, Counts: counts,
	})
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 1, 1, 2}, counts)
}

func TestNativeKernelRejectsUnknownDevice(t *testing.T) {
	a := []uint64{1}
	b := []uint64{1}
	counts := make([]uint32, 1)
	err := Kernel(NewRegistry(), Request{
		Op: OpInter, WordWidth: 1, N: 1, M: 1, DeviceID: 1 << 20,
		AWords: a, BWords: b, Counts: counts,
	})
	require.ErrorIs(t, err, ErrNoGPU)
}
