// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

import "math/bits"

// Wilks-Wheeler-Gill reduction constants, one nibble-group per step.
const (
	wwgC1 = 0x5555555555555555
	wwgC2 = 0x3333333333333333
	wwgC3 = 0x0F0F0F0F0F0F0F0F
	wwgC4 = 0x0101010101010101
)

// popcountPortable counts the set bits of x using the five-step
// Wilks-Wheeler-Gill bit-parallel reduction. It touches no hardware or
// library facility beyond integer arithmetic, so it is the variant safe to
// inline into the cgo-compiled GPU kernel (gpu/native.go) where a call into
// the host math/bits intrinsic would not be reachable.
func popcountPortable(x uint64) uint64 {
	x -= (x >> 1) & wwgC1
	x = (x>>2)&wwgC2 + x&wwgC2
	x = (x + (x >> 4)) & wwgC3
	x *= wwgC4
	return x >> 56
}

// popcountHW counts the set bits of x using the Go runtime's intrinsic
// population count (lowered to a single POPCNT instruction on hardware that
// supports it). It is bit-exact with popcountPortable for every input;
// throughput, not correctness, is the only difference between the two.
func popcountHW(x uint64) uint64 {
	return uint64(bits.OnesCount64(x))
}

// Popcount is the default word-popcount entry point used by every host-side
// path in this package (Bit.Count, the set-op count variants, the serial
// and threaded batched kernels). It uses the hardware-backed
// implementation; popcountPortable is kept separate so it can be
// unit-tested for agreement and reused verbatim by the GPU kernel source
// where only the portable form compiles.
func Popcount(x uint64) uint64 {
	return popcountHW(x)
}
