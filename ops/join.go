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

// JoinKind selects which rows of a sort-merge join survive in the
// output VALID column (spec.md section 4.5's four join variants).
type JoinKind int

const (
	InnerJoin JoinKind = iota
	SemiJoin
	AntiJoin
	LeftJoin
)

// nextPow2 returns the smallest power of two >= n, at least 1.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// padA right-pads an arithmetic column to length n with fill,
// entirely on rank 0's share (the standard public-constant
// convention), so every party's padding agrees.
func padA[T vector.Integer](rank int, col share.ASharedVector[T], n int, fill T) share.ASharedVector[T] {
	cur := col.E.Column(0).Materialize().ToSlice()
	out := make([]T, n)
	copy(out, cur)
	if rank == 0 {
		for i := len(cur); i < n; i++ {
			out[i] = fill
		}
	}
	return share.NewASharedVector(share.FromColumns([]vector.Vector[T]{vector.From(out)}, col.E.Precision()))
}

func padB[T vector.Integer](rank int, col share.BSharedVector[T], n int, fill T) share.BSharedVector[T] {
	cur := col.E.Column(0).Materialize().ToSlice()
	out := make([]T, n)
	copy(out, cur)
	if rank == 0 {
		for i := len(cur); i < n; i++ {
			out[i] = fill
		}
	}
	return share.NewBSharedVector(share.FromColumns([]vector.Vector[T]{vector.From(out)}, 0))
}

// orB computes a secure OR of two boolean shares: a^b^(a&b), since
// BSharedVector exposes no OR of two secret values directly (only
// AndPublic against a cleartext mask).
func orB[T vector.Integer](s *protocol.Session, a, b share.BSharedVector[T]) (share.BSharedVector[T], error) {
	and, err := protocol.AndB(s, a, b)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	return a.Xor(b).Xor(and), nil
}

// groupHas runs AggregateOrB forward and backward so every row learns
// whether ANY row of its key group (not just its immediate neighbor)
// carries indicator, then combines the two passes with a secure OR.
func groupHas[T vector.Integer](s *protocol.Session, indicator share.BSharedVector[T], boundary vector.Vector[T]) (share.BSharedVector[T], error) {
	fwd, err := AggregateOrB(s, indicator, boundary, false)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	// boundary for the reverse pass must mark the LAST row of each
	// group, i.e. boundary shifted by one position.
	n := boundary.Len()
	revBoundary := vector.New[T](n)
	for i := 0; i < n; i++ {
		if i == n-1 {
			revBoundary.Set(i, 1)
		} else {
			revBoundary.Set(i, boundary.At(i+1))
		}
	}
	bwd, err := AggregateOrB(s, indicator, revBoundary, true)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	return orB(s, fwd, bwd)
}

// propagateForward copies col[prev] into col[i] wherever hasOwn[i] is
// false and i is not a group boundary, oblivious select implemented
// with one B2ABit conversion and one MulA per row - the "forward scan
// to propagate matching-row payloads" spec.md section 4.5 names for
// sort-merge join.
func propagateForward[T vector.Integer](s *protocol.Session, col share.ASharedVector[T], hasOwn share.BSharedVector[T], boundary vector.Vector[T], reverse bool) (share.ASharedVector[T], error) {
	n := col.Len()
	acc := col.E.Column(0).Materialize()
	order := scanOrder(n, reverse)
	for idx := 1; idx < n; idx++ {
		i, prev := order[idx], order[idx-1]
		// Forward: skip when i itself starts a new group (don't
		// inherit the prior physical row's value across a boundary).
		// Backward: prev is the next physical row forward of i, so
		// skip when prev starts a new group (i is outside it).
		boundaryHit := boundary.At(i) != 0
		if reverse {
			boundaryHit = boundary.At(prev) != 0
		}
		if boundaryHit {
			continue
		}
		ownI := hasOwn.Slice(i, i+1)
		notOwn := ownI.Not(s.Rank)
		notOwnA, err := protocol.B2ABit(s, notOwn)
		if err != nil {
			return share.ASharedVector[T]{}, err
		}
		curVal := acc.At(i)
		prevVal := acc.At(prev)
		diff := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{vector.From([]T{prevVal - curVal})}, 0))
		term, err := protocol.MulA(s, notOwnA, diff)
		if err != nil {
			return share.ASharedVector[T]{}, err
		}
		acc.Set(i, curVal+term.E.Column(0).At(0))
	}
	return share.NewASharedVector(share.FromColumns([]vector.Vector[T]{acc}, col.E.Precision())), nil
}

// JoinResult holds a sort-merge join's output, one row per row of the
// concatenated left and right inputs (padded to a power of two), in
// sorted order: the shared sort key, the Side bit (0 for a left-table
// row, 1 for a right-table or padding row), the left payload columns
// (zero on right rows), the right payload columns backward-propagated
// onto each matched left row, and the VALID column selected according
// to the requested JoinKind. Output rows whose Side bit is 1 (the
// right-table rows used only to carry payload into the scan) are
// always marked invalid by every JoinKind below, and so carry no
// further meaning once Valid is consulted.
type JoinResult[T vector.Integer] struct {
	Key      share.ASharedVector[T]
	Side     share.BSharedVector[T]
	LeftCols []share.ASharedVector[T]
	RightCol []share.ASharedVector[T]
	Valid    share.BSharedVector[T]
}

// Join implements the sort-merge equi-join of spec.md section 4.5:
// concatenate the two tables with a side tag, sort by (key, side),
// compute group boundaries, backward-propagate right payload columns
// onto the preceding same-key left row, then pick VALID per JoinKind
// so every surviving output row is a left-table row. This assumes
// each key value appears at most once per side (a primary/foreign-key
// join); arbitrary many-to-many joins would need an explicit
// cross-product expansion this implementation does not perform.
func Join[T vector.Integer](s *protocol.Session, leftKey, rightKey share.ASharedVector[T], leftCols, rightCols []share.ASharedVector[T], kind JoinKind, sentinel T) (JoinResult[T], error) {
	n1, n2 := leftKey.Len(), rightKey.Len()
	total := n1 + n2
	padded := nextPow2(total)

	key := concatA(leftKey, rightKey)
	key = padA(s.Rank, key, padded, sentinel)

	sideRaw := make([]T, total)
	for i := n1; i < total; i++ {
		sideRaw[i] = 1
	}
	var sideCols []vector.Vector[T]
	if s.Rank == 0 {
		sideCols = []vector.Vector[T]{vector.From(sideRaw)}
	} else {
		sideCols = []vector.Vector[T]{vector.New[T](total)}
	}
	side := share.NewBSharedVector(share.FromColumns(sideCols, 0))
	side = padB(s.Rank, side, padded, 1)

	validRaw := make([]T, total)
	for i := range validRaw {
		validRaw[i] = 1
	}
	var validCols []vector.Vector[T]
	if s.Rank == 0 {
		validCols = []vector.Vector[T]{vector.From(validRaw)}
	} else {
		validCols = []vector.Vector[T]{vector.New[T](total)}
	}
	valid := share.NewBSharedVector(share.FromColumns(validCols, 0))
	valid = padB(s.Rank, valid, padded, 0)

	leftPadded := make([]share.ASharedVector[T], len(leftCols))
	for c, col := range leftCols {
		zerosRight := share.NewASharedVector(share.NewEVector[T](1, n2))
		merged := concatA(col, zerosRight)
		leftPadded[c] = padA(s.Rank, merged, padded, 0)
	}
	rightPadded := make([]share.ASharedVector[T], len(rightCols))
	for c, col := range rightCols {
		zerosLeft := share.NewASharedVector(share.NewEVector[T](1, n1))
		merged := concatA(zerosLeft, col)
		rightPadded[c] = padA(s.Rank, merged, padded, 0)
	}

	sortCols := append([]share.ASharedVector[T]{}, leftPadded...)
	sortCols = append(sortCols, rightPadded...)
	sideAsA, err := protocol.B2AFull(s, side)
	if err != nil {
		return JoinResult[T]{}, err
	}
	sortCols = append(sortCols, sideAsA)
	validAsA, err := protocol.B2ABit(s, valid)
	if err != nil {
		return JoinResult[T]{}, err
	}
	sortCols = append(sortCols, validAsA)

	sortedKey, sortedCols, err := BitonicSortKeys(s, key, sortCols)
	if err != nil {
		return JoinResult[T]{}, err
	}
	sortedLeft := sortedCols[:len(leftCols)]
	sortedRight := sortedCols[len(leftCols) : len(leftCols)+len(rightCols)]
	sortedSideA := sortedCols[len(leftCols)+len(rightCols)]
	sortedValidA, err := protocol.A2B(s, sortedCols[len(leftCols)+len(rightCols)+1])
	if err != nil {
		return JoinResult[T]{}, err
	}
	sortedSide, err := protocol.A2B(s, sortedSideA)
	if err != nil {
		return JoinResult[T]{}, err
	}

	eq, _, err := boundaryFromKey(s, sortedKey)
	if err != nil {
		return JoinResult[T]{}, err
	}
	boundaryB := eq.Not(s.Rank)
	boundaryVec, err := protocol.OpenB(s, boundaryB)
	if err != nil {
		return JoinResult[T]{}, err
	}

	for c := range sortedRight {
		sortedRight[c], err = propagateForward(s, sortedRight[c], sortedSide, boundaryVec, true)
		if err != nil {
			return JoinResult[T]{}, err
		}
	}

	hasRight, err := groupHas(s, sortedSide, boundaryVec)
	if err != nil {
		return JoinResult[T]{}, err
	}
	notSide := sortedSide.Not(s.Rank)

	var finalValid share.BSharedVector[T]
	switch kind {
	case InnerJoin, LeftJoin:
		// both kinds start from "this is a left row", then Inner
		// additionally requires a match; Left keeps every left row.
		finalValid, err = protocol.AndB(s, sortedValidA, notSide)
		if err == nil && kind == InnerJoin {
			finalValid, err = protocol.AndB(s, finalValid, hasRight)
		}
	case SemiJoin:
		leftValid, aerr := protocol.AndB(s, sortedValidA, notSide)
		if aerr != nil {
			err = aerr
			break
		}
		finalValid, err = protocol.AndB(s, leftValid, hasRight)
	case AntiJoin:
		leftValid, aerr := protocol.AndB(s, sortedValidA, notSide)
		if aerr != nil {
			err = aerr
			break
		}
		notRight := hasRight.Not(s.Rank)
		finalValid, err = protocol.AndB(s, leftValid, notRight)
	default:
		return JoinResult[T]{}, orqerr.Shapef("ops.Join", "unknown join kind %d", kind)
	}
	if err != nil {
		return JoinResult[T]{}, err
	}

	return JoinResult[T]{
		Key:      sortedKey,
		Side:     sortedSide,
		LeftCols: sortedLeft,
		RightCol: sortedRight,
		Valid:    finalValid,
	}, nil
}

// boundaryFromKey returns, for each row i>0, the equality bit between
// key[i] and key[i-1] (row 0 has no predecessor and is always treated
// as a boundary by callers).
func boundaryFromKey[T vector.Integer](s *protocol.Session, key share.ASharedVector[T]) (eq, gt share.BSharedVector[T], err error) {
	n := key.Len()
	shiftedRaw := key.E.Column(0).Materialize()
	shifted := make([]T, n)
	for i := 1; i < n; i++ {
		shifted[i] = shiftedRaw.At(i - 1)
	}
	shiftedCol := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{vector.From(shifted)}, key.E.Precision()))
	return protocol.Compare(s, key, shiftedCol)
}

