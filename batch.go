// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

// BitDB packs N equal-width bitsets of length L contiguously, one slot per
// bitset, so that slot i occupies words [i*wordWidth, (i+1)*wordWidth) of a
// single backing buffer, wordWidth being the word count of a Bit of
// length L. A slot's byte layout is bit-for-bit identical to a
// standalone Bit of length L, so GetFrom/PutAt are the only copies needed
// to move between the two representations.
type BitDB struct {
	length    uint32
	nelem     uint32
	wordWidth int // words per slot == wordsFor(length)
	words     []uint64
	owned     bool
}

// NewBitDB allocates zeroed contiguous storage for N slots of length L.
func NewBitDB(length, n uint32) *BitDB {
	checkLength("NewBitDB", length)
	if n == 0 {
		fail("NewBitDB", "bad-nelem", "nelem must be > 0")
	}
	ww := wordsFor(length)
	return &BitDB{
		length:    length,
		nelem:     n,
		wordWidth: ww,
		words:     make([]uint64, ww*int(n)),
		owned:     true,
	}
}

// Free releases d's storage iff it was library-allocated, then retires the
// handle. Mirrors Bit.Free.
func (d *BitDB) Free() {
	if d == nil || d.words == nil {
		fail("BitDB.Free", "double-free", "handle already freed or nil")
	}
	d.words = nil
}

// Length returns L.
func (d *BitDB) Length() uint32 { return d.length }

// Nelem returns N.
func (d *BitDB) Nelem() uint32 { return d.nelem }

func (d *BitDB) checkSlot(op string, i uint32) {
	if d.words == nil {
		fail(op, "null-handle", "operation on freed or nil BitDB")
	}
	if i >= d.nelem {
		fail(op, "slot-out-of-range", "slot %d >= nelem %d", i, d.nelem)
	}
}

// slotWords returns the zero-copy word subslice backing slot i.
func (d *BitDB) slotWords(i uint32) []uint64 {
	off := int(i) * d.wordWidth
	return d.words[off : off+d.wordWidth]
}

// GetFrom returns a freshly allocated Bit holding a copy of slot i.
func (d *BitDB) GetFrom(i uint32) *Bit {
	d.checkSlot("BitDB.GetFrom", i)
	out := NewBit(d.length)
	copy(out.words, d.slotWords(i))
	return out
}

// PutAt copies bit's bytes into slot i. bit's length must equal d.Length().
func (d *BitDB) PutAt(i uint32, bit *Bit) {
	d.checkSlot("BitDB.PutAt", i)
	if bit == nil || bit.words == nil {
		fail("BitDB.PutAt", "null-handle", "bit is nil or freed")
	}
	if bit.length != d.length {
		fail("BitDB.PutAt", "length-mismatch", "bit length %d != container length %d", bit.length, d.length)
	}
	copy(d.slotWords(i), bit.words)
}

// ExtractFrom copies slot i's bytes into buffer and returns the byte count
// copied.
func (d *BitDB) ExtractFrom(i uint32, buffer []byte) int {
	d.checkSlot("BitDB.ExtractFrom", i)
	slot := (&Bit{length: d.length, words: d.slotWords(i)}).bytes()
	return copy(buffer, slot)
}

// ReplaceAt is the inverse of ExtractFrom: copies buffer's bytes into slot
// i, up to the slot's byte width. No length check beyond slot size.
func (d *BitDB) ReplaceAt(i uint32, buffer []byte) {
	d.checkSlot("BitDB.ReplaceAt", i)
	slot := (&Bit{length: d.length, words: d.slotWords(i)}).bytes()
	copy(slot, buffer)
}

// ClearAt zeroes slot i.
func (d *BitDB) ClearAt(i uint32) {
	d.checkSlot("BitDB.ClearAt", i)
	w := d.slotWords(i)
	for k := range w {
		w[k] = 0
	}
}

// Clear zeroes every slot.
func (d *BitDB) Clear() {
	if d.words == nil {
		fail("BitDB.Clear", "null-handle", "operation on freed or nil BitDB")
	}
	for i := range d.words {
		d.words[i] = 0
	}
}

// CountAt returns the popcount of slot i.
func (d *BitDB) CountAt(i uint32) uint64 {
	d.checkSlot("BitDB.CountAt", i)
	var n uint64
	for _, w := range d.slotWords(i) {
		n += Popcount(w)
	}
	return n
}

// Count returns a freshly allocated array of N popcounts, one per slot.
func (d *BitDB) Count() []uint64 {
	if d.words == nil {
		fail("BitDB.Count", "null-handle", "operation on freed or nil BitDB")
	}
	out := make([]uint64, d.nelem)
	for i := range out {
		out[i] = d.CountAt(uint32(i))
	}
	return out
}
