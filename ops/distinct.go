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

// DistinctResult holds a sorted table together with the UNIQ column
// spec.md section 4.5 defines for distinct: UNIQ marks the first row
// of each run of equal keys.
type DistinctResult[T vector.Integer] struct {
	Key  share.ASharedVector[T]
	Cols []share.ASharedVector[T]
	Uniq share.BSharedVector[T]
}

// Distinct sorts by key K and computes UNIQ = "this is the first row
// of its group": sort, then compare each row's key against its
// predecessor, negate the equality bit. Filtering the duplicates out
// of storage is left to the caller (spec.md's invariant that sorts
// and filters never shrink storage - callers AND UNIQ into VALID and
// trim later via head/tail on a VALID-sorted table).
//
// Like BitonicSortKeys, this requires key to have a power-of-two
// length; padding a table out to that length (with VALID=0 filler
// rows) is the EncodedTable layer's job, not this function's.
func Distinct[T vector.Integer](s *protocol.Session, key share.ASharedVector[T], cols []share.ASharedVector[T]) (DistinctResult[T], error) {
	sortedKey, sortedCols, err := BitonicSortKeys(s, key, cols)
	if err != nil {
		return DistinctResult[T]{}, err
	}
	eq, _, err := boundaryFromKey(s, sortedKey)
	if err != nil {
		return DistinctResult[T]{}, err
	}
	uniq := eq.Not(s.Rank)
	// row 0 has no predecessor and is unconditionally unique; eq's
	// row 0 entry came from comparing key[0] against a zero-filled
	// shifted column, which is wrong in general, so force it here.
	forced := uniq.E.Column(0).Materialize()
	if s.Rank == 0 {
		forced.Set(0, 1)
	} else {
		forced.Set(0, 0)
	}
	uniq = share.NewBSharedVector(share.FromColumns([]vector.Vector[T]{forced}, 0))

	return DistinctResult[T]{Key: sortedKey, Cols: sortedCols, Uniq: uniq}, nil
}
