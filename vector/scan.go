//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package vector

import "github.com/caspsystems/orq/orqerr"

// PrefixSum replaces v's contents, in place, with the inclusive
// running sum over its logical order: out[i] = sum(v[0..i]). The
// walk is a Hillis-Steele scan restricted to the mapping (spec.md
// section 4.1), i.e. every read/write goes through v.At/v.Set so a
// mapped view's prefix sum is computed over its logical, not storage,
// order.
func (v Vector[T]) PrefixSum() {
	n := v.Len()
	if n == 0 {
		return
	}
	vals := make([]T, n)
	for i := 0; i < n; i++ {
		vals[i] = v.At(i)
	}
	for step := 1; step < n; step *= 2 {
		next := make([]T, n)
		copy(next, vals)
		for i := step; i < n; i++ {
			next[i] = vals[i] + vals[i-step]
		}
		vals = next
	}
	for i := 0; i < n; i++ {
		v.Set(i, vals[i])
	}
}

// DotProduct returns the sum over i of v[i]*other[i].
func (v Vector[T]) DotProduct(other Vector[T]) T {
	requireSameLen("Vector.DotProduct", v, other)
	var sum T
	n := v.Len()
	for i := 0; i < n; i++ {
		sum += v.At(i) * other.At(i)
	}
	return sum
}

// ChunkedSum sums over contiguous runs of k logical elements,
// returning a vector of length Len()/k.
func (v Vector[T]) ChunkedSum(k int) Vector[T] {
	if k <= 0 {
		panic(orqerr.NewShape("Vector.ChunkedSum", "k must be positive"))
	}
	n := v.Len()
	if n%k != 0 {
		panic(orqerr.Shapef("Vector.ChunkedSum", "length %d not a multiple of chunk %d", n, k))
	}
	out := make([]T, n/k)
	for c := 0; c < n/k; c++ {
		var sum T
		for j := 0; j < k; j++ {
			sum += v.At(c*k + j)
		}
		out[c] = sum
	}
	return Vector[T]{data: out}
}
