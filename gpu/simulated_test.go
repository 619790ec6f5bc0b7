//go:build !(cgo && gpuoffload)

// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioWords builds a fixture directly in word form: A has two slots
// ({1,3}, {1,3,7}), B has two slots ({3,5}, {3,5,7}), both at a width wide
// enough to need two words, so the inner reduction is exercised across a
// word boundary.
func scenarioWords() (a, b []uint64, ww int) {
	ww = 2 // 128 bits, 2 words per slot
	set := func(indices ...int) []uint64 {
		w := make([]uint64, ww)
		for _, i := range indices {
			w[i/64] |= 1 << uint(i%64)
		}
		return w
	}
	a = append(append([]uint64{}, set(1, 3)...), set(1, 3, 7)...)
	b = append(append([]uint64{}, set(3, 5)...), set(3, 5, 7)...)
	return
}

func TestKernelSimulatedInterMatchesTwoSlotIntersection(t *testing.T) {
	a, b, ww := scenarioWords()
	counts := make([]uint32, 4)
	reg := NewRegistry()
	err := Kernel(reg, Request{
		Op: OpInter, WordWidth: ww, N: 2, M: 2,
		AWords: a, BWords: b, Counts: counts,
	})
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 1, 1, 2}, counts)
}

func TestKernelResidencyProtocol(t *testing.T) {
	a, b, ww := scenarioWords()
	counts := make([]uint32, 4)
	reg := NewRegistry()

	require.False(t, reg.Present(a, 0))
	require.NoError(t, Kernel(reg, Request{
		Op: OpInter, WordWidth: ww, N: 2, M: 2,
		AWords: a, BWords: b, Counts: counts,
	}))
	require.True(t, reg.Present(a, 0))
	require.True(t, reg.Present(b, 0))
	require.True(t, reg.PresentCounts(counts, 0))

	// A second call without release flags keeps both operands resident.
	require.NoError(t, Kernel(reg, Request{
		Op: OpUnion, WordWidth: ww, N: 2, M: 2,
		AWords: a, BWords: b, Counts: counts,
	}))
	require.True(t, reg.Present(a, 0))
	require.True(t, reg.Present(b, 0))

	// Release flags are independent: only the flagged buffers are evicted.
	require.NoError(t, Kernel(reg, Request{
		Op: OpDiff, WordWidth: ww, N: 2, M: 2,
		AWords: a, BWords: b, Counts: counts,
		ReleaseA: true, ReleaseCounts: true,
	}))
	require.False(t, reg.Present(a, 0))
	require.True(t, reg.Present(b, 0))
	require.False(t, reg.PresentCounts(counts, 0))
}

func TestKernelEmptyGridIsNoop(t *testing.T) {
	reg := NewRegistry()
	err := Kernel(reg, Request{Op: OpInter, WordWidth: 2, N: 0, M: 0})
	require.NoError(t, err)
}

func TestApplyOpMatchesOperatorSemantics(t *testing.T) {
	require.EqualValues(t, 0b0110, applyOp(OpDiff, 0b0101, 0b0011))
	require.EqualValues(t, 0b0001, applyOp(OpInter, 0b0101, 0b0011))
	require.EqualValues(t, 0b0100, applyOp(OpMinus, 0b0101, 0b0011))
	require.EqualValues(t, 0b0111, applyOp(OpUnion, 0b0101, 0b0011))
}
