//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package vector

import "github.com/caspsystems/orq/orqerr"

// BitWidth returns the number of storage bits of T, used by callers
// (e.g. package protocol's bit-sliced adders) that need to know how
// many sequential steps a per-row boolean circuit spans.
func BitWidth[T Integer]() int {
	var zero T
	return bitWidth(zero)
}

// bitWidth returns the number of storage bits of T.
func bitWidth[T Integer](zero T) int {
	switch any(zero).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	case int64, uint64:
		return 64
	default:
		return 64
	}
}

// Pack lays the bits of the logical vector v contiguously into the
// storage type U, left to right in stream order, preserving the total
// bit count (spec.md section 4.1's bit-packing routines). Only the
// low bit of each element of v is packed: Pack is meant for boolean
// (0/1) vectors, as used by BSharedVector's single-bit share packing.
func Pack[T Integer, U Integer](v Vector[T]) Vector[U] {
	var zeroU U
	outWidth := bitWidth(zeroU)
	n := v.Len()
	outLen := (n + outWidth - 1) / outWidth
	out := make([]U, outLen)
	for i := 0; i < n; i++ {
		bit := v.At(i) & 1
		if bit != 0 {
			word := i / outWidth
			pos := uint(outWidth - 1 - i%outWidth)
			out[word] |= U(1) << pos
		}
	}
	return Vector[U]{data: out}
}

// Unpack is the inverse of Pack: it expands n logical bits packed
// into v back into a 0/1 vector of element type T.
func Unpack[U Integer, T Integer](v Vector[U], n int) Vector[T] {
	var zeroU U
	inWidth := bitWidth(zeroU)
	if n > v.Len()*inWidth {
		panic(orqerr.Shapef("vector.Unpack", "n=%d exceeds packed capacity %d", n, v.Len()*inWidth))
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		word := i / inWidth
		pos := uint(inWidth - 1 - i%inWidth)
		bit := (v.At(word) >> pos) & 1
		if bit != 0 {
			out[i] = 1
		}
	}
	return Vector[T]{data: out}
}
