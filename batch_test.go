// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitDBGetPutRoundTrip(t *testing.T) {
	const length, n = 2048, 4
	d := NewBitDB(length, n)

	b := setOf(length, 1, 3, 7)
	d.PutAt(2, b)

	got := d.GetFrom(2)
	require.True(t, b.Eq(got))

	// Round-trip property: put_at(d, i, get_from(d, i)) leaves d
	// unchanged.
	before := append([]uint64(nil), d.words...)
	d.PutAt(2, d.GetFrom(2))
	require.Equal(t, before, d.words)
}

func TestBitDBExtractReplace(t *testing.T) {
	const length, n = 128, 3
	d := NewBitDB(length, n)
	b := setOf(length, 5, 9, 100)
	d.PutAt(1, b)

	buf := make([]byte, BufferSize(length))
	got := d.ExtractFrom(1, buf)
	require.Equal(t, BufferSize(length), got)

	fresh := NewBitDB(length, n)
	fresh.ReplaceAt(1, buf)
	require.True(t, b.Eq(fresh.GetFrom(1)))
}

func TestBitDBClear(t *testing.T) {
	const length, n = 64, 2
	d := NewBitDB(length, n)
	d.PutAt(0, setOf(length, 1, 2, 3))
	d.ClearAt(0)
	require.EqualValues(t, 0, d.CountAt(0))

	d.PutAt(1, setOf(length, 1, 2, 3))
	d.Clear()
	counts := d.Count()
	for i, c := range counts {
		require.EqualValuesf(t, 0, c, "slot %d", i)
	}
}

func TestBitDBSlotOutOfRange(t *testing.T) {
	d := NewBitDB(64, 2)
	require.Panics(t, func() { d.GetFrom(2) })
	require.Panics(t, func() { d.CountAt(5) })
}

func TestBitDBPutLengthMismatch(t *testing.T) {
	d := NewBitDB(128, 2)
	mismatched := NewBit(64)
	require.Panics(t, func() { d.PutAt(0, mismatched) })
}
