//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package vector

// Mapping is a lazy index transformation over a storage buffer. At(i)
// returns the storage index addressed by logical position i, for
// 0 <= i < Len(). Mappings never copy the underlying data; composing
// two mappings yields a third mapping whose At simply chains the two,
// so arbitrarily deep views (a cyclic view of an alternating view of a
// slice, say) never allocate more than a handful of small structs.
type Mapping interface {
	Len() int
	At(i int) int
}

// identityMapping is the absence of a mapping: logical index i
// addresses storage index i.
type identityMapping struct {
	n int
}

func (m identityMapping) Len() int    { return m.n }
func (m identityMapping) At(i int) int { return i }

// strideMapping implements simple_subset_reference(start, stride,
// count): logical index i addresses start + i*stride.
type strideMapping struct {
	start, stride, count int
}

func (m strideMapping) Len() int     { return m.count }
func (m strideMapping) At(i int) int { return m.start + i*m.stride }

// alternatingMapping implements alternating_subset_reference(n1, n0):
// take n1 consecutive storage indices, skip n0, repeat, until count
// logical indices have been produced.
type alternatingMapping struct {
	n1, n0, count int
}

func (m alternatingMapping) Len() int { return m.count }

func (m alternatingMapping) At(i int) int {
	period := m.n1 + m.n0
	block := i / m.n1
	off := i % m.n1
	return block*period + off
}

// reversedAlternatingMapping is alternatingMapping read back to front
// within each run of n1.
type reversedAlternatingMapping struct {
	n1, n0, count int
}

func (m reversedAlternatingMapping) Len() int { return m.count }

func (m reversedAlternatingMapping) At(i int) int {
	period := m.n1 + m.n0
	block := i / m.n1
	off := i % m.n1
	return block*period + (m.n1 - 1 - off)
}

// repeatedMapping implements repeated_subset_reference(k): each
// storage element is repeated k times consecutively in the logical
// sequence, e.g. [a,b,c] with k=2 reads as [a,a,b,b,c,c].
type repeatedMapping struct {
	k, base int
}

func (m repeatedMapping) Len() int     { return m.base * m.k }
func (m repeatedMapping) At(i int) int { return i / m.k }

// cyclicMapping implements cyclic_subset_reference(k): the whole
// base vector is repeated cyclically k times, e.g. [a,b,c] with k=2
// reads as [a,b,c,a,b,c].
type cyclicMapping struct {
	k, base int
}

func (m cyclicMapping) Len() int     { return m.base * m.k }
func (m cyclicMapping) At(i int) int { return i % m.base }

// directedMapping implements directed_subset_reference(+-1): a walk
// of `count` steps starting at `start`, advancing by `dir` (+1 or -1)
// each step.
type directedMapping struct {
	start, dir, count int
}

func (m directedMapping) Len() int     { return m.count }
func (m directedMapping) At(i int) int { return m.start + i*m.dir }

// listMapping implements mapping_reference(indices) and, via
// IncludedReference, included_reference(mask): logical index i
// addresses indices[i].
type listMapping struct {
	indices []int
}

func (m listMapping) Len() int     { return len(m.indices) }
func (m listMapping) At(i int) int { return m.indices[i] }

// reversedMapping reverses the logical order of a base mapping.
type reversedMapping struct {
	base Mapping
}

func (m reversedMapping) Len() int { return m.base.Len() }

func (m reversedMapping) At(i int) int {
	return m.base.At(m.base.Len() - 1 - i)
}

// composedMapping chains two mappings: outer selects a logical
// position in a vector that is itself viewed through inner. Composing
// mappings never materializes data, only the small descriptor chain.
type composedMapping struct {
	outer, inner Mapping
}

func (m composedMapping) Len() int { return m.outer.Len() }

func (m composedMapping) At(i int) int {
	return m.inner.At(m.outer.At(i))
}

// compose builds the mapping a vector should carry when a new mapping
// `next` is applied on top of its current mapping `cur` (nil meaning
// identity). The result is always lazy.
func compose(cur Mapping, next Mapping) Mapping {
	if cur == nil {
		return next
	}
	return composedMapping{outer: next, inner: cur}
}
