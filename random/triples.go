//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

import "github.com/caspsystems/orq/vector"

// Triple is a Beaver triple: three vectors a, b, c, additively
// (BeaverMulTriple) or XOR (BeaverAndTriple) shared across parties,
// satisfying c = a (op) b over the reconstructed secrets. protocol's
// MulA/AndB consume one triple per secure multiplication/AND and open
// (e-a, d-b) to finish the computation without revealing either
// operand.
type Triple[T vector.Integer] struct {
	A, B, C vector.Vector[T]
}

// TripleGenerator turns OLE tuples into Beaver triples. For two
// parties holding (a0,b0) and (a1,b1), the product's cross terms
// a0*b1 and a1*b0 are exactly what an OLETuple's C supplies each
// party locally; summing in the locally-known term a_i*b_i completes
// c_i = a_i*b_i + C_i, so that c0+c1 = (a0+a1)*(b0+b1).
type TripleGenerator[T vector.Integer] struct {
	rank int
	ole  OLEProvider[T]
	and  bool // true selects XOR/AND combination instead of +/*
}

func NewMulTripleGenerator[T vector.Integer](rank int, ole OLEProvider[T]) *TripleGenerator[T] {
	return &TripleGenerator[T]{rank: rank, ole: ole}
}

func NewAndTripleGenerator[T vector.Integer](rank int, ole OLEProvider[T]) *TripleGenerator[T] {
	return &TripleGenerator[T]{rank: rank, ole: ole, and: true}
}

func (g *TripleGenerator[T]) Rank() int { return g.rank }

func (g *TripleGenerator[T]) Kind() Correlation {
	if g.and {
		return BeaverAndTriple
	}
	return BeaverMulTriple
}

// Next returns n fresh triples' worth of shares for this party.
func (g *TripleGenerator[T]) Next(n int) Triple[T] {
	t := g.ole.Next(n)
	c := vector.New[T](n)
	for i := 0; i < n; i++ {
		a, b := t.A.At(i), t.B.At(i)
		if g.and {
			c.Set(i, (a&b)^t.C.At(i))
		} else {
			c.Set(i, a*b+t.C.At(i))
		}
	}
	return Triple[T]{A: t.A, B: t.B, C: c}
}
