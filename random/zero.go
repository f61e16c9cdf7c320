//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

import "github.com/caspsystems/orq/vector"

// ZeroGenerator produces shares of zero: n vectors, one per party in
// a group, that XOR (or sum) to the all-zero vector. Operators spend
// zero shares to re-randomize an intermediate value before opening
// it, so the opened value leaks nothing beyond what the final output
// is supposed to reveal (spec.md's ZeroSharing correlation). Every
// party derives its share from the same CommonPRG keyed to the whole
// group and combines it with its rank, so no communication round is
// needed per batch - this mirrors how the original computes zero
// shares from a shared PRG rather than a trusted dealer.
type ZeroGenerator[T vector.Integer] struct {
	rank  int
	nrank int
	prg   *CommonPRG
	xor   bool
}

func NewZeroGenerator[T vector.Integer](rank, nrank int, prg *CommonPRG, xor bool) *ZeroGenerator[T] {
	return &ZeroGenerator[T]{rank: rank, nrank: nrank, prg: prg, xor: xor}
}

func (z *ZeroGenerator[T]) Rank() int          { return z.rank }
func (z *ZeroGenerator[T]) Kind() Correlation  { return ZeroSharing }

// Next returns this party's share of n zero vectors. For a group of
// k parties, party i's share is drawn pseudorandomly for i<k-1 and
// set to the running negation (or XOR) of the earlier k-1 shares for
// the last party, so the whole group sums (or XORs) to zero. Every
// party advances the same shared stream in lockstep, so each can
// compute every other party's share of the same block and the last
// party's correction without a message.
func (z *ZeroGenerator[T]) Next(n int) vector.Vector[T] {
	shares := make([]vector.Vector[T], z.nrank-1)
	for i := range shares {
		shares[i] = CommonVector[T](z.prg, n)
	}
	if z.rank < z.nrank-1 {
		return shares[z.rank]
	}
	out := vector.New[T](n)
	for i := 0; i < n; i++ {
		var acc T
		for _, s := range shares {
			if z.xor {
				acc ^= s.At(i)
			} else {
				acc += s.At(i)
			}
		}
		if z.xor {
			out.Set(i, acc)
		} else {
			out.Set(i, -acc)
		}
	}
	return out
}
