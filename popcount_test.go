// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPopcountPortableAgreesWithHardware(t *testing.T) {
	cases := []uint64{
		0, 1, 2, 3, ^uint64(0), 0x5555555555555555, 0xAAAAAAAAAAAAAAAA,
		0x0F0F0F0F0F0F0F0F, 0x8000000000000000, 0x0000000000000001,
	}
	for _, x := range cases {
		require.Equal(t, popcountPortable(x), popcountHW(x), "x=%#x", x)
		require.Equal(t, uint64(bits.OnesCount64(x)), Popcount(x), "x=%#x", x)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := rng.Uint64()
		require.Equal(t, popcountPortable(x), popcountHW(x), "x=%#x", x)
	}
}
