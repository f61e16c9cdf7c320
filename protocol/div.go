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

// fullMask spreads a secret single-bit (in bit position 0) boolean
// share across every bit of T: two's complement negation of 0 is 0
// and of 1 is all-ones, so SubB(0, sel) gives exactly the mask DivB
// needs to select between its trial and prior remainder without
// opening the selection bit.
func fullMask[T vector.Integer](s *Session, sel share.BSharedVector[T]) (share.BSharedVector[T], error) {
	zero := share.NewBSharedVector(share.NewEVector[T](1, sel.Len()))
	return SubB(s, zero, sel)
}

// mux selects x where sel's mask is all-ones and y where it is zero,
// without revealing which: y XOR (mask AND (x XOR y)).
func mux[T vector.Integer](s *Session, mask, x, y share.BSharedVector[T]) (share.BSharedVector[T], error) {
	diff := x.Xor(y)
	masked, err := AndB(s, mask, diff)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	return y.Xor(masked), nil
}

// DivB implements unsigned restoring division of two boolean-shared
// values bit by bit: at each of T's bit positions the parties compute
// a trial subtraction of the divisor from the shifted-in remainder,
// then obliviously keep the trial (and set a quotient bit) only where
// it did not go negative, and otherwise keep the prior remainder. It
// is a restoring, not a non-restoring, division. This is the private
// division of spec.md section 4.4; it is the most round-trip-heavy
// primitive in the package: each bit of T spends two SubB evaluations
// (the trial and fullMask), a sign-bit extraction, and one select.
func DivB[T vector.Integer](s *Session, dividend, divisor share.BSharedVector[T]) (quotient, remainder share.BSharedVector[T], err error) {
	width := vector.BitWidth[T]()
	n := dividend.Len()
	remainder = share.NewBSharedVector(share.NewEVector[T](1, n))
	quotient = share.NewBSharedVector(share.NewEVector[T](1, n))

	for i := width - 1; i >= 0; i-- {
		bit := bitAt(dividend, i)
		remainder = remainder.Shl(1).Xor(bit)

		trial, serr := SubB(s, remainder, divisor)
		if serr != nil {
			return share.BSharedVector[T]{}, share.BSharedVector[T]{}, serr
		}
		sign := bitAt(trial, width-1)
		notNeg := sign.Not(s.Rank)
		mask, merr := fullMask(s, notNeg)
		if merr != nil {
			return share.BSharedVector[T]{}, share.BSharedVector[T]{}, merr
		}

		remainder, err = mux(s, mask, trial, remainder)
		if err != nil {
			return share.BSharedVector[T]{}, share.BSharedVector[T]{}, err
		}
		quotient = quotient.Shl(1).Xor(notNeg)
	}
	return quotient, remainder, nil
}
