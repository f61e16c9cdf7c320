//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package ops

import (
	"testing"

	"github.com/caspsystems/orq/p2p"
	"github.com/caspsystems/orq/protocol"
	"github.com/caspsystems/orq/random"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// asA and asB wrap one party's own raw column into a trivial
// single-column share, the shape every ops test builds its fixtures
// from.
func asA(col []int32) share.ASharedVector[int32] {
	return share.NewASharedVector(share.FromColumns([]vector.Vector[int32]{vector.From(col)}, 0))
}

func asB(col []int32) share.BSharedVector[int32] {
	return share.NewBSharedVector(share.FromColumns([]vector.Vector[int32]{vector.From(col)}, 0))
}

// additiveShares splits plain into two uniformly random additive
// int32 shares, the same convention package protocol's own tests use.
func additiveShares(plain []int32) ([]int32, []int32) {
	a := make([]int32, len(plain))
	b := make([]int32, len(plain))
	for i, v := range plain {
		a[i] = int32(11*i + 5)
		b[i] = v - a[i]
	}
	return a, b
}

// newTestSessions wires up two protocol.Sessions over an in-memory
// p2p.Pipe, preloaded with a shared deck of Beaver triples derived
// from a DummyOLE keyed to a fixed shared seed. The reserved count is
// generous: a single BitonicSortKeys or Join call on a small table
// burns hundreds of AND triples (one ripple-carry adder alone costs
// O(BitWidth(T)) AndB calls), so package protocol's own smaller test
// counts are not enough headroom here.
func newTestSessions(t *testing.T, maxRowLen int) (*protocol.Session, *protocol.Session) {
	t.Helper()
	c0, c1 := p2p.Pipe()

	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i*5 + 1)
	}
	prg0 := random.NewCommonPRG(seed)
	prg1 := random.NewCommonPRG(seed)

	pool0 := random.NewPool()
	pool1 := random.NewPool()

	const batches = 20000

	mulOLE0 := random.NewDummyOLE[int32](0, prg0)
	mulOLE1 := random.NewDummyOLE[int32](1, prg1)
	random.Reserve(pool0, random.BeaverMulTriple, batches, func(k int) []random.Triple[int32] {
		g := random.NewMulTripleGenerator[int32](0, mulOLE0)
		out := make([]random.Triple[int32], k)
		for i := range out {
			out[i] = g.Next(maxRowLen)
		}
		return out
	})
	random.Reserve(pool1, random.BeaverMulTriple, batches, func(k int) []random.Triple[int32] {
		g := random.NewMulTripleGenerator[int32](1, mulOLE1)
		out := make([]random.Triple[int32], k)
		for i := range out {
			out[i] = g.Next(maxRowLen)
		}
		return out
	})

	andOLE0 := random.NewDummyOLE[int32](0, prg0)
	andOLE1 := random.NewDummyOLE[int32](1, prg1)
	random.Reserve(pool0, random.BeaverAndTriple, batches, func(k int) []random.Triple[int32] {
		g := random.NewAndTripleGenerator[int32](0, andOLE0)
		out := make([]random.Triple[int32], k)
		for i := range out {
			out[i] = g.Next(maxRowLen)
		}
		return out
	})
	random.Reserve(pool1, random.BeaverAndTriple, batches, func(k int) []random.Triple[int32] {
		g := random.NewAndTripleGenerator[int32](1, andOLE1)
		out := make([]random.Triple[int32], k)
		for i := range out {
			out[i] = g.Next(maxRowLen)
		}
		return out
	})

	return protocol.NewSession(0, c0, pool0), protocol.NewSession(1, c1, pool1)
}
