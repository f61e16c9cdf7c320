//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package share

import (
	"github.com/caspsystems/orq/vector"
)

// Encoding distinguishes the two share encodings of spec.md section 3:
// arithmetic (ring addition/multiplication) and boolean (XOR/AND over
// bits). A table column's name carries this choice by convention
// (bracketed names are boolean), but the wrapper types below carry it
// as a real tag so a misuse (feeding a BSharedVector into an
// arithmetic-only protocol call) is a type error, not a runtime
// surprise.
type Encoding int

const (
	Arithmetic Encoding = iota
	Boolean
)

func (e Encoding) String() string {
	if e == Boolean {
		return "B"
	}
	return "A"
}

// ASharedVector is an EVector under the arithmetic encoding. It
// exposes only the operations computable from local shares alone:
// addition, subtraction, negation, and multiplication/division by a
// public constant. Multiplying or dividing two secret-shared
// ASharedVectors requires a Beaver triple and a round of
// communication, so that operation is defined on a protocol session,
// not here (package protocol's MulA).
type ASharedVector[T vector.Integer] struct {
	E EVector[T]
}

func NewASharedVector[T vector.Integer](e EVector[T]) ASharedVector[T] {
	return ASharedVector[T]{E: e}
}

func (a ASharedVector[T]) Encoding() Encoding { return Arithmetic }
func (a ASharedVector[T]) Len() int           { return a.E.Len() }
func (a ASharedVector[T]) R() int             { return a.E.R() }

// Add is locally computable: additive (and XOR-additive, and
// replicated-additive) shares of a sum are the element-wise sum of
// the input shares.
func (a ASharedVector[T]) Add(b ASharedVector[T]) ASharedVector[T] {
	return ASharedVector[T]{E: Add(a.E, b.E)}
}

// Sub is locally computable for the same reason as Add.
func (a ASharedVector[T]) Sub(b ASharedVector[T]) ASharedVector[T] {
	return ASharedVector[T]{E: Sub(a.E, b.E)}
}

// Neg is locally computable: negating every share negates the secret.
func (a ASharedVector[T]) Neg() ASharedVector[T] {
	return ASharedVector[T]{E: Neg(a.E)}
}

// MulPublic multiplies by a public (cleartext, identical at every
// party) constant vector; each party scales its own shares, so no
// communication is needed.
func (a ASharedVector[T]) MulPublic(c vector.Vector[T], constPrecision int, truncate bool) ASharedVector[T] {
	return ASharedVector[T]{E: MulPublicConstant(a.E, c, constPrecision, truncate)}
}

// DivPublic divides by a public constant; see DivPublicConstant's
// caveat about exactness.
func (a ASharedVector[T]) DivPublic(c vector.Vector[T]) ASharedVector[T] {
	return ASharedVector[T]{E: DivPublicConstant(a.E, c)}
}

// AddPublic adds a public constant to party 0's share only (its
// column 0; every other column is copied unchanged), which is the
// standard convention for opening a share of (secret + public).
func (a ASharedVector[T]) AddPublic(c vector.Vector[T], rank int) ASharedVector[T] {
	out := a.E.ConstructLike()
	out.MatchPrecision(a.E)
	for i := 0; i < a.E.R(); i++ {
		col := a.E.Column(i)
		if rank == 0 && i == 0 {
			out.contents[i] = vector.Add(col, c)
		} else {
			out.contents[i] = col.Materialize()
		}
	}
	return ASharedVector[T]{E: out}
}

func (a ASharedVector[T]) Slice(from, to int) ASharedVector[T] {
	return ASharedVector[T]{E: a.E.Slice(from, to)}
}

func (a ASharedVector[T]) ApplyMapping(perm []int) ASharedVector[T] {
	return ASharedVector[T]{E: a.E.ApplyMapping(perm)}
}

// BSharedVector is an EVector under the boolean encoding: each column
// holds an XOR share of the secret bit(s). It exposes AND/OR/XOR,
// shifts, and masking directly, since XOR is locally computable and
// AND-with-a-public-mask is too. Secret AND of two BSharedVectors
// (needed for e.g. comparisons) goes through package protocol's AndB,
// which consumes a Beaver AND triple.
type BSharedVector[T vector.Integer] struct {
	E EVector[T]
}

func NewBSharedVector[T vector.Integer](e EVector[T]) BSharedVector[T] {
	return BSharedVector[T]{E: e}
}

func (b BSharedVector[T]) Encoding() Encoding { return Boolean }
func (b BSharedVector[T]) Len() int           { return b.E.Len() }
func (b BSharedVector[T]) R() int             { return b.E.R() }

// Xor is locally computable: XOR-sharing is additive over GF(2).
func (b BSharedVector[T]) Xor(o BSharedVector[T]) BSharedVector[T] {
	return BSharedVector[T]{E: Xor(b.E, o.E)}
}

// AndPublic ANDs every share with a public (cleartext) mask, used to
// gate rows by VALID without spending a correlation.
func (b BSharedVector[T]) AndPublic(mask vector.Vector[T]) BSharedVector[T] {
	maskE := b.E.ConstructLike()
	for i := 0; i < b.E.R(); i++ {
		maskE.contents[i] = mask
	}
	return BSharedVector[T]{E: And(b.E, maskE)}
}

// Not locally flips party 0's share only (same convention as
// AddPublic): NOT(x) = x XOR 1, which flips bit 0 only, and XOR with
// a public constant only needs one party to apply it.
func (b BSharedVector[T]) Not(rank int) BSharedVector[T] {
	out := b.E.ConstructLike()
	for i := 0; i < b.E.R(); i++ {
		col := b.E.Column(i)
		if rank == 0 && i == 0 {
			ones := vector.NewFilled[T](col.Len(), 1)
			out.contents[i] = vector.Xor(col, ones)
		} else {
			out.contents[i] = col.Materialize()
		}
	}
	return BSharedVector[T]{E: out}
}

// Shl/Shr shift every share by a public bit count; shifting shares
// shifts the secret, so this needs no correlation.
func (b BSharedVector[T]) Shl(bits uint) BSharedVector[T] {
	return BSharedVector[T]{E: Shl(b.E, bits)}
}

func (b BSharedVector[T]) Shr(bits uint) BSharedVector[T] {
	return BSharedVector[T]{E: Shr(b.E, bits)}
}

func (b BSharedVector[T]) Slice(from, to int) BSharedVector[T] {
	return BSharedVector[T]{E: b.E.Slice(from, to)}
}

func (b BSharedVector[T]) ApplyMapping(perm []int) BSharedVector[T] {
	return BSharedVector[T]{E: b.E.ApplyMapping(perm)}
}
