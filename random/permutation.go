//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

import (
	"github.com/caspsystems/orq/orqerr"
	"github.com/caspsystems/orq/p2p"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// ShardedPermutation is one party's view of a permutation correlation:
// a local permutation Pi agreed with the peer plus this party's own
// shares A, B, C of three aligned vectors such that, across both
// parties, Pi(A0+A1) = B0+B1 and C0+C1 is the zero vector (arithmetic)
// or all-zero under XOR (boolean) - grounded in
// dm_sharded_permutation_generator.h's DMShardedPermutation tuple
// (pi, A, B, C). ops' shuffle operator consumes one of these per
// shuffled column, masking with A, rerandomizing with C before the
// one value that is ever opened, then recombining with B.
type ShardedPermutation[T vector.Integer] struct {
	Pi       []int
	A, B, C  vector.Vector[T]
	Encoding share.Encoding
}

func (p ShardedPermutation[T]) Size() int { return len(p.Pi) }

// Clone deep-copies all four vectors so the correlation can be reused
// without consuming the original, mirroring DMShardedPermutation's
// clone().
func (p ShardedPermutation[T]) Clone() ShardedPermutation[T] {
	pi := append([]int(nil), p.Pi...)
	return ShardedPermutation[T]{
		Pi:       pi,
		A:        vector.From(append([]T(nil), p.A.Materialize().Raw()...)),
		B:        vector.From(append([]T(nil), p.B.Materialize().Raw()...)),
		C:        vector.From(append([]T(nil), p.C.Materialize().Raw()...)),
		Encoding: p.Encoding,
	}
}

// ConvertType produces a component-wise widened or narrowed copy of a
// sharded permutation: Pi is unchanged (it only reorders rows, it
// never holds element values), and A, B, C are cast element-by-element
// to U, mirroring dm_perm_convert_type's static_cast over each
// vector's backing store.
func ConvertType[T, U vector.Integer](p ShardedPermutation[T]) ShardedPermutation[U] {
	cast := func(v vector.Vector[T]) vector.Vector[U] {
		raw := v.Materialize().Raw()
		out := make([]U, len(raw))
		for i, x := range raw {
			out[i] = U(x)
		}
		return vector.From(out)
	}
	return ShardedPermutation[U]{
		Pi:       append([]int(nil), p.Pi...),
		A:        cast(p.A),
		B:        cast(p.B),
		C:        cast(p.C),
		Encoding: p.Encoding,
	}
}

// ConvertB2A converts a boolean-encoded sharded permutation to an
// arithmetic one, b2a-converting only the B and C components while
// keeping Pi (and A, which already carries whichever encoding the
// caller sampled it under) fixed - mirroring dm_perm_convert_b2a,
// which swaps each party's B for the peer's C before the b2a
// conversion (since "P0's B matches up with P1's C, and vice versa")
// and swaps them back after. b2a is the caller's job: b2a takes the
// boolean share of a value and returns the matching arithmetic share
// of the same value, the same conversion protocol.B2ABit runs for a
// single bit.
func ConvertB2A[T vector.Integer](p ShardedPermutation[T], b2a func(vector.Vector[T]) (vector.Vector[T], error)) (ShardedPermutation[T], error) {
	if p.Encoding != share.Boolean {
		return ShardedPermutation[T]{}, orqerr.Shapef("random.ConvertB2A", "permutation is already %s-encoded", p.Encoding)
	}
	bArith, err := b2a(p.B)
	if err != nil {
		return ShardedPermutation[T]{}, err
	}
	cArith, err := b2a(p.C)
	if err != nil {
		return ShardedPermutation[T]{}, err
	}
	return ShardedPermutation[T]{
		Pi:       append([]int(nil), p.Pi...),
		A:        p.A,
		B:        bArith,
		C:        cArith,
		Encoding: share.Arithmetic,
	}, nil
}

// PermutationGenerator produces sharded permutation correlations for
// one party. Only the two-party (dishonest-majority) construction is
// implemented, matching DMShardedPermutationGenerator's "currently
// only supports 2PC" note. It is built over a CommonPRG shared by
// exactly the two parties, the same insecure-by-construction dummy
// model as DummyOLE and ZeroGenerator: Pi and the joint vectors are
// all derivable by both parties from the identical stream, trading a
// genuine OT-based permutation protocol (dm_sharded_permutation_
// generator.h's own generateBatch stubs this out with "skip for now")
// for a shared seed. Shuffle still hides the DATA under the
// permutation from any observer of the wire, which is the property
// spec.md section 4.5 actually depends on for oblivious join and
// distinct; it does not hide Pi from the other computing party, only
// from outsiders.
type PermutationGenerator[T vector.Integer] struct {
	rank int
	prg  *CommonPRG
	enc  share.Encoding
}

func NewPermutationGenerator[T vector.Integer](rank int, prg *CommonPRG, enc share.Encoding) *PermutationGenerator[T] {
	return &PermutationGenerator[T]{rank: rank, prg: prg, enc: enc}
}

func (g *PermutationGenerator[T]) Rank() int         { return g.rank }
func (g *PermutationGenerator[T]) Kind() Correlation { return ShardedPermutation }

// randomPermutation draws a Fisher-Yates shuffle of 0..n-1 from prg.
// Called with a CommonPRG, both parties advance the identical stream
// in lockstep and so agree on pi without a message, exactly the
// property ShuffleA/ShuffleB need: a shuffle that both parties apply
// consistently, not one each party invents independently.
func randomPermutation(n int, prg *CommonPRG) []int {
	pi := make([]int, n)
	for i := range pi {
		pi[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(prg.nextUint64() % uint64(i+1))
		pi[i], pi[j] = pi[j], pi[i]
	}
	return pi
}

func scatter[T vector.Integer](pi []int, v vector.Vector[T]) vector.Vector[T] {
	out := vector.New[T](len(pi))
	for i, p := range pi {
		out.Set(p, v.At(i))
	}
	return out
}

// Next samples a fresh permutation correlation of size n: a common pi
// and A split additively (or by XOR) across the two parties, B split
// so that B0+B1 = pi(A0+A1) (or the XOR equivalent), and C split as a
// zero-sharing (C0+C1 is all-zero) for ShuffleA/ShuffleB to
// rerandomize the masked value they open. The caller is responsible
// for running AssertPermutationCorrelated (when it wants the
// integrity check) to confirm the cross-party equation before
// trusting the batch in production.
func (g *PermutationGenerator[T]) Next(n int) ShardedPermutation[T] {
	pi := randomPermutation(n, g.prg)
	a0 := CommonVector[T](g.prg, n)
	a1 := CommonVector[T](g.prg, n)
	b0 := CommonVector[T](g.prg, n)
	c0 := CommonVector[T](g.prg, n)

	var jointA, piA, b1, c1 vector.Vector[T]
	if g.enc == share.Boolean {
		jointA = vector.Xor(a0, a1)
		piA = scatter(pi, jointA)
		b1 = vector.Xor(piA, b0)
		c1 = c0
	} else {
		jointA = vector.Add(a0, a1)
		piA = scatter(pi, jointA)
		b1 = vector.Sub(piA, b0)
		c1 = vector.Neg(c0)
	}

	if g.rank == 0 {
		return ShardedPermutation[T]{Pi: pi, A: a0, B: b0, C: c0, Encoding: g.enc}
	}
	return ShardedPermutation[T]{Pi: pi, A: a1, B: b1, C: c1, Encoding: g.enc}
}

// AssertPermutationCorrelated runs the real, communicating integrity check of
// dm_sharded_permutation_generator.h's assertCorrelated: party 0
// receives party 1's (A,B) shares and checks Pi(A0+A1) = B0+B1. It is
// never silently skipped when invoked; opt into calling it only where
// the leak of one extra round of share material is acceptable
// (spec.md section 7's integrity checks are opt-in for exactly this
// reason).
func AssertPermutationCorrelated[T vector.Integer](rank int, conn *p2p.Conn, perm ShardedPermutation[T]) error {
	n := perm.Size()
	if rank == 0 {
		otherA, err := ReceiveVector[T](conn, n)
		if err != nil {
			return err
		}
		otherB, err := ReceiveVector[T](conn, n)
		if err != nil {
			return err
		}
		combine := vector.Add[T]
		if perm.Encoding == share.Boolean {
			combine = vector.Xor[T]
		}
		sum := combine(perm.A, otherA)
		applied := scatter(perm.Pi, sum)
		expect := combine(perm.B, otherB)
		for i := 0; i < n; i++ {
			if applied.At(i) != expect.At(i) {
				return orqerr.NewIntegrity("sharded permutation failed pi(A0+A1)=B0+B1 check")
			}
		}
		return nil
	}
	if err := SendVector(conn, perm.A); err != nil {
		return err
	}
	return SendVector(conn, perm.B)
}
