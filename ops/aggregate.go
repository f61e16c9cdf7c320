//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package ops

import (
	"github.com/caspsystems/orq/orqerr"
	"github.com/caspsystems/orq/protocol"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// checkAggregateShape validates that value and boundary describe the
// same number of rows (spec.md section 4.5's segmented scan
// precondition).
func checkAggregateShape(op string, n, boundaryLen int) error {
	if boundaryLen != n {
		return orqerr.Shapef(op, "boundary length %d != value length %d", boundaryLen, n)
	}
	return nil
}

// AggregateSum runs a boundary-bit-gated segmented running sum: every
// row accumulates into the prior row's running total unless boundary
// marks it as the first row of a new group. Because addition of
// shares is linear, each party performs this scan entirely on its own
// local share column - no correlation or round trip is spent, unlike
// Min/Max below.
func AggregateSum[T vector.Integer](value share.ASharedVector[T], boundary vector.Vector[T], reverse bool) (share.ASharedVector[T], error) {
	n := value.Len()
	if err := checkAggregateShape("ops.AggregateSum", n, boundary.Len()); err != nil {
		return share.ASharedVector[T]{}, err
	}
	acc := value.E.Column(0).Materialize()
	order := scanOrder(n, reverse)
	for idx := 1; idx < n; idx++ {
		i, prev := order[idx], order[idx-1]
		if boundary.At(i) != 0 {
			continue
		}
		acc.Set(i, acc.At(prev)+acc.At(i))
	}
	return share.NewASharedVector(share.FromColumns([]vector.Vector[T]{acc}, value.E.Precision())), nil
}

func scanOrder(n int, reverse bool) []int {
	order := make([]int, n)
	for i := range order {
		if reverse {
			order[i] = n - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}

// AggregateMinMax runs the same boundary-gated scan but for min/max,
// which cannot be combined locally on secret shares: each step
// obliviously compares the running value against the next row with
// protocol.Compare and selects the winner via a secure multiplication
// (one MulA per row), so this costs O(n) round trips where
// AggregateSum costs none.
func AggregateMinMax[T vector.Integer](s *protocol.Session, value share.ASharedVector[T], boundary vector.Vector[T], wantMax, reverse bool) (share.ASharedVector[T], error) {
	n := value.Len()
	if err := checkAggregateShape("ops.AggregateMinMax", n, boundary.Len()); err != nil {
		return share.ASharedVector[T]{}, err
	}
	acc := value.E.Column(0).Materialize()
	order := scanOrder(n, reverse)
	for idx := 1; idx < n; idx++ {
		i, prev := order[idx], order[idx-1]
		if boundary.At(i) != 0 {
			continue
		}
		runningCol := vector.From([]T{acc.At(prev)})
		nextCol := vector.From([]T{acc.At(i)})
		running := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{runningCol}, 0))
		next := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{nextCol}, 0))

		var cmpA, cmpB share.ASharedVector[T]
		if wantMax {
			cmpA, cmpB = running, next
		} else {
			cmpA, cmpB = next, running
		}
		_, gt, err := protocol.Compare(s, cmpA, cmpB)
		if err != nil {
			return share.ASharedVector[T]{}, err
		}
		gtA, err := protocol.B2ABit(s, gt)
		if err != nil {
			return share.ASharedVector[T]{}, err
		}
		// gt selects cmpA over cmpB (cmpA>cmpB); select running over
		// next when gt, the reverse of the usual "pick b when sel=1"
		// identity, so the diff and base term are both flipped here.
		diff := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{vector.From([]T{runningCol.At(0) - nextCol.At(0)})}, 0))
		term, err := protocol.MulA(s, gtA, diff)
		if err != nil {
			return share.ASharedVector[T]{}, err
		}
		winner := nextCol.At(0) + term.E.Column(0).At(0)
		acc.Set(i, winner)
	}
	return share.NewASharedVector(share.FromColumns([]vector.Vector[T]{acc}, value.E.Precision())), nil
}

// AggregateCount is AggregateSum specialized to a boolean indicator
// column (1 per valid row), reusing the same linear scan.
func AggregateCount[T vector.Integer](valid share.ASharedVector[T], boundary vector.Vector[T], reverse bool) (share.ASharedVector[T], error) {
	return AggregateSum(valid, boundary, reverse)
}

// AggregateOrB runs a boundary-gated OR-reduction over boolean
// shares, used for VALID/UNIQ propagation: OR is expressed as
// a^b^(a&b), so every step spends one AndB.
func AggregateOrB[T vector.Integer](s *protocol.Session, value share.BSharedVector[T], boundary vector.Vector[T], reverse bool) (share.BSharedVector[T], error) {
	n := value.Len()
	if err := checkAggregateShape("ops.AggregateOrB", n, boundary.Len()); err != nil {
		return share.BSharedVector[T]{}, err
	}
	acc := value
	order := scanOrder(n, reverse)
	for idx := 1; idx < n; idx++ {
		i, prev := order[idx], order[idx-1]
		if boundary.At(i) != 0 {
			continue
		}
		a := acc.Slice(prev, prev+1)
		b := acc.Slice(i, i+1)
		and, err := protocol.AndB(s, a, b)
		if err != nil {
			return share.BSharedVector[T]{}, err
		}
		orVal := a.Xor(b).Xor(and)
		acc.E.Column(0).Set(i, orVal.E.Column(0).At(0))
	}
	return acc, nil
}
