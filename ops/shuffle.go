//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package ops implements the oblivious relational operators (spec.md
// section 4.5): shuffle, sort, aggregate, join, distinct, and
// windowing, each built from package share's local algebra and
// package protocol's secure primitives.
package ops

import (
	"github.com/caspsystems/orq/orqerr"
	"github.com/caspsystems/orq/protocol"
	"github.com/caspsystems/orq/random"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// ShuffleA obliviously permutes an arithmetically shared column by a
// sharded permutation correlation, via the masked-permute-and-combine
// protocol dm_sharded_permutation_generator.h's assertCorrelated
// implies: pi(A0+A1) = B0+B1, with A split across parties and a
// zero-shared C (C0+C1=0) folded in before the one value that ever
// touches the wire is opened. Concretely, each party masks its own
// share with its own A-share and C-share, the masked sum is opened
// (revealing X-A, safe since A is uniformly random and never fully
// known to either party alone), party 0 scatters the opened value by
// pi - the one permutation this correlation agrees on - and exactly
// one party folds the scattered public term into its own B-share, the
// same single-counting convention MulA/AndB use for their Beaver
// cross term. Applying each party's own independently sampled
// permutation straight to its own raw share, as a naive
// implementation might, does not reconstruct any permutation of the
// secret unless both parties happen to agree on pi - which is exactly
// what this correlation, and not the column itself, is responsible
// for providing.
func ShuffleA[T vector.Integer](s *protocol.Session, x share.ASharedVector[T], perm random.ShardedPermutation[T]) (share.ASharedVector[T], error) {
	n := x.Len()
	if perm.Size() != n {
		return share.ASharedVector[T]{}, orqerr.Shapef("ops.ShuffleA", "permutation size %d != column length %d", perm.Size(), n)
	}
	mine := x.E.Column(0)
	masked := vector.New[T](n)
	for i := 0; i < n; i++ {
		masked.Set(i, mine.At(i)-perm.A.At(i)+perm.C.At(i))
	}
	maskedShare := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{masked}, x.E.Precision()))
	opened, err := protocol.OpenA(s, maskedShare)
	if err != nil {
		return share.ASharedVector[T]{}, err
	}

	permuted := vector.New[T](n)
	for i := 0; i < n; i++ {
		permuted.Set(perm.Pi[i], opened.At(i))
	}

	out := perm.B
	if s.Rank == 0 {
		out = vector.Add(out, permuted)
	}
	return share.NewASharedVector(share.FromColumns([]vector.Vector[T]{out}, x.E.Precision())), nil
}

// ShuffleB is ShuffleA's boolean-encoding twin: XOR replaces add/sub
// throughout, matching AndB's relationship to MulA.
func ShuffleB[T vector.Integer](s *protocol.Session, x share.BSharedVector[T], perm random.ShardedPermutation[T]) (share.BSharedVector[T], error) {
	n := x.Len()
	if perm.Size() != n {
		return share.BSharedVector[T]{}, orqerr.Shapef("ops.ShuffleB", "permutation size %d != column length %d", perm.Size(), n)
	}
	mine := x.E.Column(0)
	masked := vector.New[T](n)
	for i := 0; i < n; i++ {
		masked.Set(i, mine.At(i)^perm.A.At(i)^perm.C.At(i))
	}
	maskedShare := share.NewBSharedVector(share.FromColumns([]vector.Vector[T]{masked}, 0))
	opened, err := protocol.OpenB(s, maskedShare)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}

	permuted := vector.New[T](n)
	for i := 0; i < n; i++ {
		permuted.Set(perm.Pi[i], opened.At(i))
	}

	out := perm.B
	if s.Rank == 0 {
		out = vector.Xor(out, permuted)
	}
	return share.NewBSharedVector(share.FromColumns([]vector.Vector[T]{out}, 0)), nil
}

// DoubleShuffle composes two independently generated permutation
// correlations, each consumed by its own masked-permute-and-combine
// round, so the composed reindexing is known to neither party alone
// - the standard anti-collusion strengthening for a semi-honest
// two-party oblivious shuffle.
func DoubleShuffle[T vector.Integer](s *protocol.Session, x share.ASharedVector[T], first, second random.ShardedPermutation[T]) (share.ASharedVector[T], error) {
	mid, err := ShuffleA(s, x, first)
	if err != nil {
		return share.ASharedVector[T]{}, err
	}
	return ShuffleA(s, mid, second)
}
