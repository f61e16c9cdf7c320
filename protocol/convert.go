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

// A2B converts an arithmetically shared vector into a boolean-shared
// one by running a full binary adder over each party's own
// arithmetic share treated as a public-to-itself boolean value:
// party 0 contributes (x0, 0) and party 1 contributes (0, x1) to
// AddB, so the adder reconstructs the bits of x0+x1 without either
// side learning the other's share. This costs one adder evaluation,
// 3*(BitWidth(T)-1) AndB calls, per call.
func A2B[T vector.Integer](s *Session, a share.ASharedVector[T]) (share.BSharedVector[T], error) {
	n := a.Len()
	mine := a.E.Column(0)
	zero := vector.New[T](n)
	var myCols, theirCols []vector.Vector[T]
	if s.Rank == 0 {
		myCols = []vector.Vector[T]{mine}
		theirCols = []vector.Vector[T]{zero}
	} else {
		myCols = []vector.Vector[T]{zero}
		theirCols = []vector.Vector[T]{mine}
	}
	myShare := share.NewBSharedVector(share.FromColumns(myCols, 0))
	theirShare := share.NewBSharedVector(share.FromColumns(theirCols, 0))
	if s.Rank == 0 {
		return AddB(s, myShare, theirShare)
	}
	return AddB(s, theirShare, myShare)
}

// B2ABit converts a single-bit boolean share into an arithmetic share
// of the same bit using the classic identity a = b0 XOR b1 =
// b0+b1-2*b0*b1: b0 and b1 are each held entirely by one party, so
// first lift them into trivial (zero-share-on-the-other-side)
// arithmetic shares, securely multiply with MulA (one
// BeaverMulTriple), then combine locally.
func B2ABit[T vector.Integer](s *Session, b share.BSharedVector[T]) (share.ASharedVector[T], error) {
	n := b.Len()
	mine := b.E.Column(0)
	zero := vector.New[T](n)
	var x0Cols, x1Cols []vector.Vector[T]
	if s.Rank == 0 {
		x0Cols = []vector.Vector[T]{mine}
		x1Cols = []vector.Vector[T]{zero}
	} else {
		x0Cols = []vector.Vector[T]{zero}
		x1Cols = []vector.Vector[T]{mine}
	}
	x0 := share.NewASharedVector(share.FromColumns(x0Cols, 0))
	x1 := share.NewASharedVector(share.FromColumns(x1Cols, 0))

	prod, err := MulA(s, x0, x1)
	if err != nil {
		return share.ASharedVector[T]{}, err
	}
	sum := x0.Add(x1)
	doubled := prod.MulPublic(vector.NewFilled[T](n, 2), 0, false)
	return sum.Sub(doubled), nil
}

// B2AFull converts a full-width boolean share into an arithmetic
// share by converting each bit with B2ABit and summing the weighted
// (shifted) results, spending BitWidth(T) secure multiplications.
func B2AFull[T vector.Integer](s *Session, b share.BSharedVector[T]) (share.ASharedVector[T], error) {
	width := vector.BitWidth[T]()
	n := b.Len()
	acc := share.NewASharedVector(share.NewEVector[T](1, n))
	for i := 0; i < width; i++ {
		// isolate bit i: shift it down to position 0, then mask all
		// higher bits by shifting left then right through the top.
		bit := b.Shr(uint(i)).Shl(uint(width - 1)).Shr(uint(width - 1))
		arith, err := B2ABit(s, bit)
		if err != nil {
			return share.ASharedVector[T]{}, err
		}
		weighted := arith.MulPublic(vector.NewFilled[T](n, 1<<uint(i)), 0, false)
		acc = acc.Add(weighted)
	}
	return acc, nil
}
