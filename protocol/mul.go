//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package protocol

import (
	"github.com/caspsystems/orq/random"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// MulA computes a share of a*b from two arithmetically shared
// vectors using one Beaver multiplication triple per element, the
// classic Beaver '91 reduction: with triple (x,y,z=x*y), mask
// e=a-x, d=b-y, open both, then z + e*y_i + d*x_i (+ e*d, added by
// exactly one party so it isn't double counted) reconstructs to
// a*b. This is the one arithmetic operation EVector's pure local
// algebra (package share) cannot provide, since a*b element-wise on
// raw shares does not itself share the product.
func MulA[T vector.Integer](s *Session, a, b share.ASharedVector[T]) (share.ASharedVector[T], error) {
	n := a.Len()
	triples, err := requireTriples[random.Triple[T]](s, random.BeaverMulTriple, 1)
	if err != nil {
		return share.ASharedVector[T]{}, err
	}
	tr := triples[0]
	if tr.A.Len() != n {
		tr = random.Triple[T]{A: tr.A.Slice(0, n), B: tr.B.Slice(0, n), C: tr.C.Slice(0, n)}
	}

	eShare := share.NewASharedVector(share.Sub(a.E, share.FromColumns([]vector.Vector[T]{tr.A}, a.E.Precision())))
	dShare := share.NewASharedVector(share.Sub(b.E, share.FromColumns([]vector.Vector[T]{tr.B}, b.E.Precision())))

	e, err := OpenA(s, eShare)
	if err != nil {
		return share.ASharedVector[T]{}, err
	}
	d, err := OpenA(s, dShare)
	if err != nil {
		return share.ASharedVector[T]{}, err
	}

	myA := a.E.Column(0)
	myB := b.E.Column(0)
	z := tr.C.Materialize()
	for i := 0; i < n; i++ {
		v := z.At(i) + e.At(i)*myB.At(i) + d.At(i)*myA.At(i)
		if s.Rank == 0 {
			v += e.At(i) * d.At(i)
		}
		z.Set(i, v)
	}
	out := share.FromColumns([]vector.Vector[T]{z}, a.E.Precision())
	return share.NewASharedVector(out), nil
}

// AndB is AndA's boolean-encoding twin, consuming one
// BeaverAndTriple per call: the same masked-open-reconstruct pattern
// with XOR and AND replacing +/-, * - secret AND is no more
// expressible as a local operation on XOR shares than secret
// multiplication is on additive shares.
func AndB[T vector.Integer](s *Session, a, b share.BSharedVector[T]) (share.BSharedVector[T], error) {
	n := a.Len()
	triples, err := requireTriples[random.Triple[T]](s, random.BeaverAndTriple, 1)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	tr := triples[0]
	if tr.A.Len() != n {
		tr = random.Triple[T]{A: tr.A.Slice(0, n), B: tr.B.Slice(0, n), C: tr.C.Slice(0, n)}
	}

	eShare := share.NewBSharedVector(share.Xor(a.E, share.FromColumns([]vector.Vector[T]{tr.A}, 0)))
	dShare := share.NewBSharedVector(share.Xor(b.E, share.FromColumns([]vector.Vector[T]{tr.B}, 0)))

	e, err := OpenB(s, eShare)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}
	d, err := OpenB(s, dShare)
	if err != nil {
		return share.BSharedVector[T]{}, err
	}

	myA := a.E.Column(0)
	myB := b.E.Column(0)
	z := tr.C.Materialize()
	for i := 0; i < n; i++ {
		v := z.At(i) ^ (e.At(i) & myB.At(i)) ^ (d.At(i) & myA.At(i))
		if s.Rank == 0 {
			v ^= e.At(i) & d.At(i)
		}
		z.Set(i, v)
	}
	out := share.FromColumns([]vector.Vector[T]{z}, 0)
	return share.NewBSharedVector(out), nil
}
