//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package vector implements Vector[T], a contiguous owned sequence of
// machine integers plus an optional access mapping (spec.md section
// 4.1). A mapping is a deferred permutation/subset view that is
// materialized only when an operation that cannot be expressed
// through the mapping is invoked.
package vector

import (
	"fmt"

	"github.com/caspsystems/orq/orqerr"
)

// Integer constrains the element types a Vector may hold: the
// machine-integer family named in spec.md section 3 (i8..i64 and
// unsigned peers). Go has no native 128 bit integer, so i128 is out of
// scope for Vector[T] itself.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Vector is an owned sequence of T plus an optional access mapping.
// The zero value is not usable; construct with New, NewFilled, orFrom.
type Vector[T Integer] struct {
	data    []T
	mapping Mapping
}

// New allocates a zero-filled Vector of the given size.
func New[T Integer](size int) Vector[T] {
	return Vector[T]{data: make([]T, size)}
}

// NewFilled allocates a Vector of the given size, every element set
// to fill.
func NewFilled[T Integer](size int, fill T) Vector[T] {
	data := make([]T, size)
	for i := range data {
		data[i] = fill
	}
	return Vector[T]{data: data}
}

// From constructs a Vector that owns the given plaintext buffer (a
// move: the caller must not retain a mutable alias to buf).
func From[T Integer](buf []T) Vector[T] {
	return Vector[T]{data: buf}
}

// Span constructs a Vector over a sub-range [from:to) of buf without
// copying.
func Span[T Integer](buf []T, from, to int) Vector[T] {
	return Vector[T]{data: buf[from:to]}
}

// Len returns the logical length: the mapping length if present, else
// the storage length (invariant (i) of spec.md section 3).
func (v Vector[T]) Len() int {
	if v.mapping != nil {
		return v.mapping.Len()
	}
	return len(v.data)
}

// HasMapping reports whether this vector carries a deferred view
// rather than addressing storage directly.
func (v Vector[T]) HasMapping() bool {
	return v.mapping != nil
}

func (v Vector[T]) resolve(i int) int {
	if v.mapping != nil {
		return v.mapping.At(i)
	}
	return i
}

// At returns the logical i-th element.
func (v Vector[T]) At(i int) T {
	if i < 0 || i >= v.Len() {
		panic(orqerr.Shapef("Vector.At", "index %d out of range [0,%d)", i, v.Len()))
	}
	return v.data[v.resolve(i)]
}

// Set assigns the logical i-th element.
func (v Vector[T]) Set(i int, val T) {
	if i < 0 || i >= v.Len() {
		panic(orqerr.Shapef("Vector.Set", "index %d out of range [0,%d)", i, v.Len()))
	}
	v.data[v.resolve(i)] = val
}

// requireSameLen panics with InvalidShape when two vectors
// participating in a binary op have different logical lengths.
func requireSameLen[T Integer](op string, a, b Vector[T]) {
	if a.Len() != b.Len() {
		panic(orqerr.Shapef(op, "size mismatch: %d vs %d", a.Len(), b.Len()))
	}
}

func (v Vector[T]) String() string {
	n := v.Len()
	if n > 16 {
		n = 16
	}
	s := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%v", v.At(i))
	}
	if v.Len() > 16 {
		s += " ..."
	}
	return s + "]"
}

// Slice returns a view over the logical range [from:to).
func (v Vector[T]) Slice(from, to int) Vector[T] {
	if from < 0 || to > v.Len() || from > to {
		panic(orqerr.Shapef("Vector.Slice", "invalid range [%d,%d) of %d", from, to, v.Len()))
	}
	return v.view(strideMapping{start: from, stride: 1, count: to - from})
}

// SimpleSubsetReference implements simple_subset_reference(start,
// stride, count).
func (v Vector[T]) SimpleSubsetReference(start, stride, count int) Vector[T] {
	return v.view(strideMapping{start: start, stride: stride, count: count})
}

// AlternatingSubsetReference implements
// alternating_subset_reference(n1, n0): runs of n1 kept elements
// separated by n0 skipped elements, repeated to produce `count`
// logical elements.
func (v Vector[T]) AlternatingSubsetReference(n1, n0, count int) Vector[T] {
	if n1 <= 0 {
		panic(orqerr.NewShape("Vector.AlternatingSubsetReference", "n1 must be positive"))
	}
	return v.view(alternatingMapping{n1: n1, n0: n0, count: count})
}

// ReversedAlternatingSubsetReference is AlternatingSubsetReference
// with each kept run read back to front.
func (v Vector[T]) ReversedAlternatingSubsetReference(n1, n0, count int) Vector[T] {
	if n1 <= 0 {
		panic(orqerr.NewShape("Vector.ReversedAlternatingSubsetReference", "n1 must be positive"))
	}
	return v.view(reversedAlternatingMapping{n1: n1, n0: n0, count: count})
}

// RepeatedSubsetReference implements repeated_subset_reference(k):
// each element repeated k times consecutively.
func (v Vector[T]) RepeatedSubsetReference(k int) Vector[T] {
	if k <= 0 {
		panic(orqerr.NewShape("Vector.RepeatedSubsetReference", "k must be positive"))
	}
	return v.view(repeatedMapping{k: k, base: v.Len()})
}

// CyclicSubsetReference implements cyclic_subset_reference(k): the
// whole vector repeated cyclically k times.
func (v Vector[T]) CyclicSubsetReference(k int) Vector[T] {
	if k <= 0 {
		panic(orqerr.NewShape("Vector.CyclicSubsetReference", "k must be positive"))
	}
	return v.view(cyclicMapping{k: k, base: v.Len()})
}

// DirectedSubsetReference implements directed_subset_reference(dir):
// dir must be +1 or -1.
func (v Vector[T]) DirectedSubsetReference(start, dir, count int) Vector[T] {
	if dir != 1 && dir != -1 {
		panic(orqerr.NewShape("Vector.DirectedSubsetReference", "dir must be +1 or -1"))
	}
	return v.view(directedMapping{start: start, dir: dir, count: count})
}

// IncludedReference implements included_reference(mask): a view over
// only the positions where mask is true, in order.
func (v Vector[T]) IncludedReference(mask []bool) Vector[T] {
	if len(mask) != v.Len() {
		panic(orqerr.Shapef("Vector.IncludedReference", "mask length %d != vector length %d", len(mask), v.Len()))
	}
	indices := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return v.view(listMapping{indices: indices})
}

// MappingReference implements mapping_reference(indices): an
// arbitrary-order view, each logical position i addressing index[i]
// of the current logical sequence.
func (v Vector[T]) MappingReference(indices []int) Vector[T] {
	cp := make([]int, len(indices))
	copy(cp, indices)
	return v.view(listMapping{indices: cp})
}

// ApplyMapping permutes the vector by perm: the result's logical
// position i holds what was logical position perm[i]. Equivalent to
// MappingReference but named to match spec.md's apply_mapping(perm).
func (v Vector[T]) ApplyMapping(perm []int) Vector[T] {
	return v.MappingReference(perm)
}

// Reverse returns a view with logical order reversed. Never
// allocates a new data buffer.
func (v Vector[T]) Reverse() Vector[T] {
	if v.mapping == nil {
		return v.view(reversedMapping{base: identityMapping{n: len(v.data)}})
	}
	// view composes with v.mapping itself; reverse the logical order only.
	return v.view(reversedMapping{base: identityMapping{n: v.Len()}})
}

// view composes `next` on top of v's current mapping and returns a
// new Vector sharing the same storage.
func (v Vector[T]) view(next Mapping) Vector[T] {
	if v.mapping == nil {
		return Vector[T]{data: v.data, mapping: next}
	}
	if next.Len() == 0 {
		panic(orqerr.NewShape("Vector.view", "mapping-over-mapping yields zero length"))
	}
	return Vector[T]{data: v.data, mapping: compose(v.mapping, next)}
}

// Materialize walks the mapping once and returns an owned, mapping-
// free Vector with the data copied into a new contiguous buffer.
func (v Vector[T]) Materialize() Vector[T] {
	if v.mapping == nil {
		out := make([]T, len(v.data))
		copy(out, v.data)
		return Vector[T]{data: out}
	}
	n := v.Len()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = v.data[v.mapping.At(i)]
	}
	return Vector[T]{data: out}
}

// Raw exposes the underlying storage slice (not the logical view) for
// code that genuinely needs direct buffer access, e.g. network
// (de)serialization of an already-materialized vector.
func (v Vector[T]) Raw() []T {
	return v.data
}

// ToSlice copies out the logical contents as a plain Go slice.
func (v Vector[T]) ToSlice() []T {
	n := v.Len()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = v.At(i)
	}
	return out
}
