//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package protocol

import (
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// publicBit builds a BSharedVector whose LSB is the public constant
// bit in every row, held entirely by rank 0 (the standard convention
// for "share of secret + public constant": only one party adds the
// constant to its own share).
func publicBit[T vector.Integer](rank, n int, bit T) share.BSharedVector[T] {
	cols := []vector.Vector[T]{vector.New[T](n)}
	if rank == 0 {
		cols[0] = vector.NewFilled[T](n, bit)
	}
	return share.NewBSharedVector(share.FromColumns(cols, 0))
}

// addB is the ripple-carry full adder shared by AddB and SubB, with
// an explicit initial carry-in so two's complement subtraction can
// feed in the constant 1 without a special case.
func addB[T vector.Integer](s *Session, a, b share.BSharedVector[T], carryIn T) (share.BSharedVector[T], error) {
	width := vector.BitWidth[T]()
	n := a.Len()
	carry := publicBit[T](s.Rank, n, carryIn)

	sum := a.Xor(b).Xor(carry)
	for i := 1; i < width; i++ {
		// generate = (a&b) | (carry&(a^b)), expressed in XOR/AND form
		// since BSharedVector has no OR: g|h = g^h^(g&h).
		ab, err := AndB(s, a, b)
		if err != nil {
			return share.BSharedVector[T]{}, err
		}
		axorb := a.Xor(b)
		carryProp, err := AndB(s, carry, axorb)
		if err != nil {
			return share.BSharedVector[T]{}, err
		}
		both, err := AndB(s, ab, carryProp)
		if err != nil {
			return share.BSharedVector[T]{}, err
		}
		gen := ab.Xor(carryProp).Xor(both)
		carry = gen.Shl(1)
		sum = sum.Xor(carry)
	}
	return sum, nil
}

// AddB is a bit-sliced ripple-carry full adder over boolean-shared
// integers: row i's two operands are the full width of T, and the
// adder walks the width bit by bit, carrying a BSharedVector of
// per-row carry bits forward. Every step costs a constant number of
// AndB calls (hence BeaverAndTriples), so this adder spends
// O(BitWidth(T)) correlations and round trips per call - simpler to
// verify than the parallel-prefix variant below, at the cost of more
// network round trips.
func AddB[T vector.Integer](s *Session, a, b share.BSharedVector[T]) (share.BSharedVector[T], error) {
	return addB(s, a, b, 0)
}

// SubB computes a-b over boolean shares via two's complement:
// a + (^b) + 1, with the +1 folded in as the adder's carry-in so the
// NOT of b never needs special-casing its own low bit.
func SubB[T vector.Integer](s *Session, a, b share.BSharedVector[T]) (share.BSharedVector[T], error) {
	// BSharedVector.Not flips bit 0 only; the full complement is an
	// XOR with a public all-ones word.
	notB := b.Xor(publicBit[T](s.Rank, b.Len(), ^T(0)))
	return addB(s, a, notB, 1)
}

// AddBKoggeStone computes the same sum with a parallel-prefix
// (Kogge-Stone) carry network: log2(BitWidth(T)) AndB rounds instead
// of BitWidth(T), trading more local bit-shuffling for fewer network
// round trips - the standard choice when round-trip latency
// dominates triple generation cost.
func AddBKoggeStone[T vector.Integer](s *Session, a, b share.BSharedVector[T]) (share.BSharedVector[T], error) {
	width := vector.BitWidth[T]()
	p := a.Xor(b)
	g, err := AndB(s, a, b)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	for shift := 1; shift < width; shift <<= 1 {
		pShift := p.Shl(uint(shift))
		gShift := g.Shl(uint(shift))
		pAndGShift, err := AndB(s, p, gShift)
		if err != nil {
			return share.BSharedVector[T]{}, err
		}
		newG := g.Xor(pAndGShift)
		newP, err := AndB(s, p, pShift)
		if err != nil {
			return share.BSharedVector[T]{}, err
		}
		g, p = newG, newP
	}
	carry := g.Shl(1)
	return a.Xor(b).Xor(carry), nil
}
