//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package share implements EVector, ASharedVector, and BSharedVector
// (spec.md sections 3 and 4.2): R parallel vector.Vector[T] columns
// carrying a fixed-point precision, replicating every vector.Vector
// operation across the R columns. This layer is pure data-parallel
// algebra; it contains no cryptography. Secure multiplication, AND,
// comparison, and private division live in package protocol, which
// consumes a correlation-providing session to evaluate them.
package share

import (
	"fmt"

	"github.com/caspsystems/orq/orqerr"
	"github.com/caspsystems/orq/vector"
)

// EVector is R parallel Vector[T] columns plus a fixed-point
// precision. R is the replication factor of the configured sharing
// scheme (1 for 2PC additive, 2 for 3PC replicated, 3 for 4PC
// replicated).
type EVector[T vector.Integer] struct {
	contents  []vector.Vector[T]
	precision int
}

// NewEVector allocates an EVector with r zero-filled columns of the
// given size.
func NewEVector[T vector.Integer](r, size int) EVector[T] {
	contents := make([]vector.Vector[T], r)
	for i := range contents {
		contents[i] = vector.New[T](size)
	}
	return EVector[T]{contents: contents}
}

// FromColumns wraps existing columns as an EVector. All columns must
// have identical logical length (invariant of spec.md section 3).
func FromColumns[T vector.Integer](contents []vector.Vector[T], precision int) EVector[T] {
	n := contents[0].Len()
	for i, c := range contents {
		if c.Len() != n {
			panic(orqerr.Shapef("share.FromColumns", "column %d length %d != column 0 length %d", i, c.Len(), n))
		}
	}
	return EVector[T]{contents: contents, precision: precision}
}

// R returns the replication factor.
func (e EVector[T]) R() int { return len(e.contents) }

// Len returns the logical length, shared by every column.
func (e EVector[T]) Len() int {
	if len(e.contents) == 0 {
		return 0
	}
	return e.contents[0].Len()
}

// Column returns a mutable reference to the i-th share column.
func (e EVector[T]) Column(i int) vector.Vector[T] {
	return e.contents[i]
}

// Precision returns the fixed-point fractional bit count.
func (e EVector[T]) Precision() int { return e.precision }

// SetPrecision sets the fixed-point fractional bit count.
func (e *EVector[T]) SetPrecision(p int) { e.precision = p }

// MatchPrecision copies another EVector's precision onto this one.
func (e *EVector[T]) MatchPrecision(o EVector[T]) { e.precision = o.precision }

// ConstructLike allocates a same-R, same-size, empty EVector.
func (e EVector[T]) ConstructLike() EVector[T] {
	return NewEVector[T](e.R(), e.Len())
}

func (e EVector[T]) String() string {
	return fmt.Sprintf("EVector[R=%d,n=%d,p=%d]", e.R(), e.Len(), e.precision)
}

// replicate applies f to every column of a and b (which must share R)
// and returns a new EVector of the results.
func replicate[T vector.Integer](op string, a, b EVector[T], f func(x, y vector.Vector[T]) vector.Vector[T]) EVector[T] {
	if a.R() != b.R() {
		panic(orqerr.Shapef(op, "replication mismatch: %d vs %d", a.R(), b.R()))
	}
	out := make([]vector.Vector[T], a.R())
	for i := range out {
		out[i] = f(a.contents[i], b.contents[i])
	}
	return EVector[T]{contents: out}
}

func replicateUnary[T vector.Integer](a EVector[T], f func(x vector.Vector[T]) vector.Vector[T]) EVector[T] {
	out := make([]vector.Vector[T], a.R())
	for i := range out {
		out[i] = f(a.contents[i])
	}
	return EVector[T]{contents: out, precision: a.precision}
}

// Add replicates vector.Add to every column. Precision is kept
// invariant (spec.md section 9); callers must ensure equal input
// precision.
func Add[T vector.Integer](a, b EVector[T]) EVector[T] {
	r := replicate("share.Add", a, b, vector.Add[T])
	r.precision = a.precision
	return r
}

// Sub replicates vector.Sub to every column, keeping precision
// invariant.
func Sub[T vector.Integer](a, b EVector[T]) EVector[T] {
	r := replicate("share.Sub", a, b, vector.Sub[T])
	r.precision = a.precision
	return r
}

// Xor replicates vector.Xor to every column. Fully local: XOR shares
// commute, so this needs no correlation even for two secret-shared
// operands.
func Xor[T vector.Integer](a, b EVector[T]) EVector[T] {
	r := replicate("share.Xor", a, b, vector.Xor[T])
	r.precision = a.precision
	return r
}

// Or replicates vector.Or (used for the VALID/UNIQ OR-reduction
// idiom, not for secret-share AND/OR of independent secrets, which
// requires a correlation and lives in package protocol).
func Or[T vector.Integer](a, b EVector[T]) EVector[T] {
	return replicate("share.Or", a, b, vector.Or[T])
}

// And replicates vector.And locally. Only correct when one operand
// is a public (non-secret) mask applied identically to every column,
// e.g. gating rows by VALID; secure AND of two independently shared
// values needs a Beaver triple and lives in package protocol.
func And[T vector.Integer](a, b EVector[T]) EVector[T] {
	return replicate("share.And", a, b, vector.And[T])
}

// MulPublicConstant scales every share column by a public
// (non-secret) per-row constant vector, doubling precision unless
// truncate requests rescaling back to a.Precision().
func MulPublicConstant[T vector.Integer](a EVector[T], c vector.Vector[T], constPrecision int, truncate bool) EVector[T] {
	r := replicateUnary(a, func(x vector.Vector[T]) vector.Vector[T] {
		return vector.Mul(x, c)
	})
	r.precision = a.precision + constPrecision
	if truncate {
		shift := uint(r.precision - a.precision)
		if shift > 0 {
			r = replicateUnary(r, func(x vector.Vector[T]) vector.Vector[T] {
				return vector.Shr(x, shift)
			})
		}
		r.precision = a.precision
	}
	return r
}

// DivPublicConstant divides every share column by a public constant.
// This is a caller-trusted local fast path: it is only exact when the
// constant evenly divides every share, which the private-division
// protocol (package protocol) does not assume. Precision follows the
// dividend, per spec.md section 9.
func DivPublicConstant[T vector.Integer](a EVector[T], c vector.Vector[T]) EVector[T] {
	r := replicateUnary(a, func(x vector.Vector[T]) vector.Vector[T] {
		return vector.Div(x, c)
	})
	r.precision = a.precision
	return r
}

// Shl replicates a bit-count left shift to every column, precision
// preserved.
func Shl[T vector.Integer](a EVector[T], bits uint) EVector[T] {
	return replicateUnary(a, func(x vector.Vector[T]) vector.Vector[T] {
		return vector.Shl(x, bits)
	})
}

// Shr replicates a bit-count right shift to every column, precision
// preserved.
func Shr[T vector.Integer](a EVector[T], bits uint) EVector[T] {
	return replicateUnary(a, func(x vector.Vector[T]) vector.Vector[T] {
		return vector.Shr(x, bits)
	})
}

// Not replicates vector.Not to every column.
func Not[T vector.Integer](a EVector[T]) EVector[T] {
	return replicateUnary(a, vector.Not[T])
}

// Neg replicates vector.Neg to every column, precision preserved.
func Neg[T vector.Integer](a EVector[T]) EVector[T] {
	return replicateUnary(a, vector.Neg[T])
}

// Slice replicates vector.Vector.Slice to every column.
func (e EVector[T]) Slice(from, to int) EVector[T] {
	return replicateUnary(e, func(x vector.Vector[T]) vector.Vector[T] {
		return x.Slice(from, to)
	})
}

// ApplyMapping replicates vector.Vector.ApplyMapping to every column,
// used by shuffle and sort to permute a whole EVector at once.
func (e EVector[T]) ApplyMapping(perm []int) EVector[T] {
	return replicateUnary(e, func(x vector.Vector[T]) vector.Vector[T] {
		return x.ApplyMapping(perm)
	})
}

// Materialize replicates vector.Vector.Materialize to every column.
func (e EVector[T]) Materialize() EVector[T] {
	return replicateUnary(e, func(x vector.Vector[T]) vector.Vector[T] {
		return x.Materialize()
	})
}

// Reverse replicates vector.Vector.Reverse to every column.
func (e EVector[T]) Reverse() EVector[T] {
	return replicateUnary(e, func(x vector.Vector[T]) vector.Vector[T] {
		return x.Reverse()
	})
}
