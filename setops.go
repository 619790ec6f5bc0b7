// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package bitdb

// operator is the closed set of binary set operators shared by the
// single-pair path (this file) and the batched kernels (kernel.go),
// dispatched through one generic switch instead of four near-duplicate
// functions.
type operator int

const (
	opDiff  operator = iota // XOR, symmetric difference
	opInter                 // AND, intersection
	opMinus                 // AND NOT
	opUnion                 // OR, union
)

func applyWord(op operator, a, b uint64) uint64 {
	switch op {
	case opDiff:
		return a ^ b
	case opInter:
		return a & b
	case opMinus:
		return a &^ b
	case opUnion:
		return a | b
	default:
		fail("applyWord", "bad-operator", "unknown operator %d", op)
		return 0
	}
}

// setOp implements the null-operand table for the allocating variants:
// an absent operand behaves as the empty set. Both-nil is a checked
// error; length mismatch between two live operands is a checked error.
func setOp(op operator, opName string, s, t *Bit) *Bit {
	switch {
	case s == nil && t == nil:
		fail(opName, "both-null", "both operands absent")
	case s == nil:
		switch op {
		case opInter, opMinus:
			return NewBit(t.length)
		default:
			return t.clone()
		}
	case t == nil:
		switch op {
		case opInter:
			return NewBit(s.length)
		default:
			return s.clone()
		}
	}
	if s.length != t.length {
		fail(opName, "length-mismatch", "lengths %d and %d differ", s.length, t.length)
	}
	if s == t {
		switch op {
		case opDiff, opMinus:
			return NewBit(s.length)
		default: // inter, union: copy of t (== s)
			return t.clone()
		}
	}
	out := NewBit(s.length)
	for i := range out.words {
		out.words[i] = applyWord(op, s.words[i], t.words[i])
	}
	return out
}

// setOpCount implements the count-only counterpart: 0 where the allocating
// variant would yield an empty set, the surviving operand's count
// otherwise, folding popcount over the word-wise operator result when both
// operands are live.
func setOpCount(op operator, opName string, s, t *Bit) uint64 {
	switch {
	case s == nil && t == nil:
		fail(opName, "both-null", "both operands absent")
	case s == nil:
		switch op {
		case opInter, opMinus:
			return 0
		default:
			return t.Count()
		}
	case t == nil:
		switch op {
		case opInter:
			return 0
		default:
			return s.Count()
		}
	}
	if s.length != t.length {
		fail(opName, "length-mismatch", "lengths %d and %d differ", s.length, t.length)
	}
	if s == t {
		switch op {
		case opDiff, opMinus:
			return 0
		default:
			return t.Count()
		}
	}
	var n uint64
	for i := range s.words {
		n += Popcount(applyWord(op, s.words[i], t.words[i]))
	}
	return n
}

// Diff returns s XOR t (symmetric difference), honoring the null-operand
// table: Diff(s, nil) == copy(s), Diff(nil, t) == copy(t), Diff(s, s) ==
// empty.
func Diff(s, t *Bit) *Bit { return setOp(opDiff, "Diff", s, t) }

// Inter returns s AND t. Inter(s, nil) == empty(len s), Inter(nil, t) ==
// empty(len t), Inter(s, s) == copy(s).
func Inter(s, t *Bit) *Bit { return setOp(opInter, "Inter", s, t) }

// Minus returns s AND NOT t. Minus(s, nil) == copy(s), Minus(nil, t) ==
// empty(len t), Minus(s, s) == empty.
func Minus(s, t *Bit) *Bit { return setOp(opMinus, "Minus", s, t) }

// Union returns s OR t. Union(s, nil) == copy(s), Union(nil, t) ==
// copy(t), Union(s, s) == copy(s).
func Union(s, t *Bit) *Bit { return setOp(opUnion, "Union", s, t) }

// DiffCount returns count(Diff(s, t)) without materializing it.
func DiffCount(s, t *Bit) uint64 { return setOpCount(opDiff, "DiffCount", s, t) }

// InterCount returns count(Inter(s, t)) without materializing it.
func InterCount(s, t *Bit) uint64 { return setOpCount(opInter, "InterCount", s, t) }

// MinusCount returns count(Minus(s, t)) without materializing it.
func MinusCount(s, t *Bit) uint64 { return setOpCount(opMinus, "MinusCount", s, t) }

// UnionCount returns count(Union(s, t)) without materializing it.
func UnionCount(s, t *Bit) uint64 { return setOpCount(opUnion, "UnionCount", s, t) }
