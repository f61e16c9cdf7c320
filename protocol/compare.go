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

// andTree AND-reduces a slice of single-bit BSharedVectors to one,
// in log2(len(bits)) rounds of AndB rather than len(bits)-1
// sequential rounds.
func andTree[T vector.Integer](s *Session, bits []share.BSharedVector[T]) (share.BSharedVector[T], error) {
	for len(bits) > 1 {
		next := make([]share.BSharedVector[T], 0, (len(bits)+1)/2)
		for i := 0; i+1 < len(bits); i += 2 {
			r, err := AndB(s, bits[i], bits[i+1])
			if err != nil {
				return share.BSharedVector[T]{}, err
			}
			next = append(next, r)
		}
		if len(bits)%2 == 1 {
			next = append(next, bits[len(bits)-1])
		}
		bits = next
	}
	return bits[0], nil
}

// bitAt isolates logical bit i of a boolean share, returning it in
// position 0.
func bitAt[T vector.Integer](b share.BSharedVector[T], i int) share.BSharedVector[T] {
	width := vector.BitWidth[T]()
	return b.Shr(uint(i)).Shl(uint(width - 1)).Shr(uint(width - 1))
}

// Compare returns (eq, gt) indicator bits for a==b and a>b, both
// two's complement signed comparisons over T's native bit width
// (spec.md section 4.4's two-output compare primitive, from which
// lt/le/ge/ne are all derived locally: lt = NOT(gt) AND NOT(eq),
// ne = NOT(eq), and so on).
func Compare[T vector.Integer](s *Session, a, b share.ASharedVector[T]) (eq, gt share.BSharedVector[T], err error) {
	diffA := a.Sub(b)
	diff, err := A2B(s, diffA)
	if err != nil {
		return share.BSharedVector[T]{}, share.BSharedVector[T]{}, err
	}

	width := vector.BitWidth[T]()
	notBits := make([]share.BSharedVector[T], width)
	for i := 0; i < width; i++ {
		notBits[i] = bitAt(diff, i).Not(s.Rank)
	}
	eq, err = andTree(s, notBits)
	if err != nil {
		return share.BSharedVector[T]{}, share.BSharedVector[T]{}, err
	}

	signBit := bitAt(diff, width-1)
	notSign := signBit.Not(s.Rank)
	notEq := eq.Not(s.Rank)
	gt, err = AndB(s, notSign, notEq)
	if err != nil {
		return share.BSharedVector[T]{}, share.BSharedVector[T]{}, err
	}
	return eq, gt, nil
}

// Lt derives a<b from Compare's two outputs: neither greater nor
// equal.
func Lt[T vector.Integer](s *Session, a, b share.ASharedVector[T]) (share.BSharedVector[T], error) {
	eq, gt, err := Compare(s, a, b)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	notGt := gt.Not(s.Rank)
	notEq := eq.Not(s.Rank)
	return AndB(s, notGt, notEq)
}
