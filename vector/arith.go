//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package vector

import "github.com/caspsystems/orq/orqerr"

func panicInvalidRange(op string, start, end, n int) {
	panic(orqerr.Shapef(op, "invalid range [%d,%d) of %d", start, end, n))
}

// Arithmetic, bitwise, and comparison operators. None of these can be
// expressed as a deferred mapping, so each materializes a fresh,
// owned result vector, walking both operands' mappings exactly once.

func binOp[T Integer](op string, a, b Vector[T], f func(x, y T) T) Vector[T] {
	requireSameLen(op, a, b)
	n := a.Len()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = f(a.At(i), b.At(i))
	}
	return Vector[T]{data: out}
}

func unaryOp[T Integer](a Vector[T], f func(x T) T) Vector[T] {
	n := a.Len()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = f(a.At(i))
	}
	return Vector[T]{data: out}
}

// Add returns a+b element-wise.
func Add[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Add", a, b, func(x, y T) T { return x + y })
}

// Sub returns a-b element-wise.
func Sub[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Sub", a, b, func(x, y T) T { return x - y })
}

// Mul returns a*b element-wise.
func Mul[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Mul", a, b, func(x, y T) T { return x * y })
}

// Div returns a/b element-wise (integer division).
func Div[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Div", a, b, func(x, y T) T { return x / y })
}

// And returns a&b element-wise.
func And[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.And", a, b, func(x, y T) T { return x & y })
}

// Or returns a|b element-wise.
func Or[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Or", a, b, func(x, y T) T { return x | y })
}

// Xor returns a^b element-wise.
func Xor[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Xor", a, b, func(x, y T) T { return x ^ y })
}

// Not returns ~a element-wise.
func Not[T Integer](a Vector[T]) Vector[T] {
	return unaryOp(a, func(x T) T { return ^x })
}

// Neg returns -a element-wise.
func Neg[T Integer](a Vector[T]) Vector[T] {
	return unaryOp(a, func(x T) T { return -x })
}

// Shl returns a<<bits element-wise. Shifts take a bit-count
// parameter, never a per-element share (spec.md section 4.4).
func Shl[T Integer](a Vector[T], bits uint) Vector[T] {
	return unaryOp(a, func(x T) T { return x << bits })
}

// Shr returns a>>bits element-wise (the shift performed is whichever
// the element type's native >> gives: logical for unsigned T,
// arithmetic for signed T).
func Shr[T Integer](a Vector[T], bits uint) Vector[T] {
	return unaryOp(a, func(x T) T { return x >> bits })
}

// Eq returns a 0/1 vector: 1 where a[i]==b[i].
func Eq[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Eq", a, b, func(x, y T) T {
		if x == y {
			return 1
		}
		return 0
	})
}

// Lt returns a 0/1 vector: 1 where a[i]<b[i].
func Lt[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Lt", a, b, func(x, y T) T {
		if x < y {
			return 1
		}
		return 0
	})
}

// Gt returns a 0/1 vector: 1 where a[i]>b[i].
func Gt[T Integer](a, b Vector[T]) Vector[T] {
	return binOp("Vector.Gt", a, b, func(x, y T) T {
		if x > y {
			return 1
		}
		return 0
	})
}

// Mask zeroes out every element whose corresponding m entry is zero,
// leaving the rest unchanged.
func (v Vector[T]) Mask(m Vector[T]) Vector[T] {
	return binOp("Vector.Mask", v, m, func(x, y T) T {
		if y != 0 {
			return x
		}
		return 0
	})
}

// Zero sets every element addressed by the vector's view to zero,
// in place.
func (v Vector[T]) Zero() {
	n := v.Len()
	for i := 0; i < n; i++ {
		v.Set(i, 0)
	}
}

// SetBits sets every element in the logical range [start,end) to 1,
// in place.
func (v Vector[T]) SetBits(start, end int) {
	if start < 0 || end > v.Len() || start > end {
		panicInvalidRange("Vector.SetBits", start, end, v.Len())
	}
	for i := start; i < end; i++ {
		v.Set(i, 1)
	}
}
