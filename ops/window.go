//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package ops

import (
	"github.com/caspsystems/orq/protocol"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// constB builds a BSharedVector holding the public constant c in
// every row, entirely on rank 0's share (the same public-constant
// convention used throughout package protocol).
func constB[T vector.Integer](rank, n int, c T) share.BSharedVector[T] {
	cols := []vector.Vector[T]{vector.New[T](n)}
	if rank == 0 {
		cols[0] = vector.NewFilled[T](n, c)
	}
	return share.NewBSharedVector(share.FromColumns(cols, 0))
}

func constA[T vector.Integer](rank, n int, c T) share.ASharedVector[T] {
	cols := []vector.Vector[T]{vector.New[T](n)}
	if rank == 0 {
		cols[0] = vector.NewFilled[T](n, c)
	}
	return share.NewASharedVector(share.FromColumns(cols, 0))
}

// TumblingWindow assigns window_id = timestamp // width (spec.md
// section 4.5's tumbling window), via DivB against a public-constant
// divisor, then opens the quotient since a tumbling window id is
// defined to be published.
func TumblingWindow[T vector.Integer](s *protocol.Session, timestamp share.BSharedVector[T], width T) (vector.Vector[T], error) {
	divisor := constB(s.Rank, timestamp.Len(), width)
	quotient, _, err := protocol.DivB(s, timestamp, divisor)
	if err != nil {
		return vector.Vector[T]{}, err
	}
	return protocol.OpenB(s, quotient)
}

// GapSessionWindow implements gap-session windowing: sort rows by
// (id, timestamp) - folded into one compound key via id*keyScale +
// timestamp, which assumes timestamp values fit under keyScale - then
// a new window starts wherever id changes or the gap to the previous
// row's timestamp exceeds gap. Window ids are a running count of
// window starts; since the start/no-start decision is opened as a
// public boundary column (the same convention package ops uses for
// every segmented scan), the window id itself is derived locally from
// that public prefix sum and handed back as a trivial share.
//
// Like BitonicSortKeys, this requires id/timestamp to have a
// power-of-two length; the EncodedTable layer is responsible for
// padding before calling in.
func GapSessionWindow[T vector.Integer](s *protocol.Session, id, timestamp share.ASharedVector[T], cols []share.ASharedVector[T], keyScale T, gap T) (windowID share.ASharedVector[T], sortedID, sortedTimestamp share.ASharedVector[T], sortedCols []share.ASharedVector[T], err error) {
	n := id.Len()
	scaled := id.MulPublic(vector.NewFilled[T](n, keyScale), 0, false)
	key := scaled.Add(timestamp)

	allCols := append([]share.ASharedVector[T]{id, timestamp}, cols...)
	sortedKey, sorted, serr := BitonicSortKeys(s, key, allCols)
	if serr != nil {
		err = serr
		return
	}
	_ = sortedKey
	sortedID = sorted[0]
	sortedTimestamp = sorted[1]
	sortedCols = sorted[2:]

	idEq, _, cerr := boundaryFromKey(s, sortedID)
	if cerr != nil {
		err = cerr
		return
	}
	idChanged := idEq.Not(s.Rank)

	shiftedRaw := sortedTimestamp.E.Column(0).Materialize()
	shifted := make([]T, n)
	for i := 1; i < n; i++ {
		shifted[i] = shiftedRaw.At(i - 1)
	}
	prevTimestamp := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{vector.From(shifted)}, sortedTimestamp.E.Precision()))
	delta := sortedTimestamp.Sub(prevTimestamp)
	gapConst := constA(s.Rank, n, gap)
	_, gapExceeded, cerr := protocol.Compare(s, delta, gapConst)
	if cerr != nil {
		err = cerr
		return
	}

	boundary, cerr := orB(s, idChanged, gapExceeded)
	if cerr != nil {
		err = cerr
		return
	}
	boundaryVec, oerr := protocol.OpenB(s, boundary)
	if oerr != nil {
		err = oerr
		return
	}
	// row 0 always starts a window.
	forced := boundaryVec.Materialize()
	forced.Set(0, 1)

	ids := make([]T, n)
	var running T
	for i := 0; i < n; i++ {
		if forced.At(i) != 0 {
			running++
		}
		ids[i] = running
	}
	windowID = constAFromSlice(s.Rank, ids)
	return
}

func constAFromSlice[T vector.Integer](rank int, vals []T) share.ASharedVector[T] {
	cols := []vector.Vector[T]{vector.New[T](len(vals))}
	if rank == 0 {
		cols[0] = vector.From(vals)
	}
	return share.NewASharedVector(share.FromColumns(cols, 0))
}

// ThresholdSessionWindow implements threshold-session windowing:
// given a per-row boolean "inside threshold" indicator (already
// computed by the caller, e.g. GLUCOSE>5 via protocol.Compare) and a
// grouping key, a new session starts whenever the group changes or
// inside flips from false to true after having been false. Window ids
// are again a running count over the opened boundary column.
func ThresholdSessionWindow[T vector.Integer](s *protocol.Session, groupKey share.ASharedVector[T], inside share.BSharedVector[T]) (windowID share.ASharedVector[T], err error) {
	n := groupKey.Len()
	groupEq, _, cerr := boundaryFromKey(s, groupKey)
	if cerr != nil {
		err = cerr
		return
	}
	groupChanged := groupEq.Not(s.Rank)

	insideRaw := inside.E.Column(0).Materialize()
	prevInside := make([]T, n)
	for i := 1; i < n; i++ {
		prevInside[i] = insideRaw.At(i - 1)
	}
	// prevInside is this party's own share of inside shifted by one row,
	// a local linear operation on a genuine secret share - wrap it
	// directly rather than through the public-constant convention (which
	// zeroes out rank 1's contribution, correct only for known constants).
	prevB := share.NewBSharedVector(share.FromColumns([]vector.Vector[T]{vector.From(prevInside)}, 0))

	notPrev := prevB.Not(s.Rank)
	enteredInside, aerr := protocol.AndB(s, inside, notPrev)
	if aerr != nil {
		err = aerr
		return
	}

	boundary, oerr := orB(s, groupChanged, enteredInside)
	if oerr != nil {
		err = oerr
		return
	}
	boundaryVec, berr := protocol.OpenB(s, boundary)
	if berr != nil {
		err = berr
		return
	}
	forced := boundaryVec.Materialize()
	forced.Set(0, 1)

	ids := make([]T, n)
	var running T
	for i := 0; i < n; i++ {
		if forced.At(i) != 0 {
			running++
		}
		ids[i] = running
	}
	windowID = constAFromSlice(s.Rank, ids)
	return
}
