//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package table implements EncodedTable (spec.md section 4.2): an
// ordered name -> shared-vector mapping plus the VALID and UNIQ
// system columns every oblivious operator in package ops reads and
// writes.
package table

import (
	"github.com/caspsystems/orq/orqerr"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// column holds one named EncodedTable column together with the
// encoding its bracket convention implies: a name surrounded by
// brackets ("[Name]") is boolean-shared, anything else arithmetic.
type column[T vector.Integer] struct {
	name string
	a    share.ASharedVector[T]
	b    share.BSharedVector[T]
	enc  share.Encoding
}

func bracketed(name string) bool {
	return len(name) >= 2 && name[0] == '[' && name[len(name)-1] == ']'
}

// EncodedTable is an ordered collection of equal-length shared
// columns plus the VALID and (optional) UNIQ system columns. Sorts,
// filters, joins and aggregations never shrink storage: they mutate
// VALID, and rows are only dropped by an explicit Head/Tail on a
// VALID-sorted table.
type EncodedTable[T vector.Integer] struct {
	order []string
	cols  map[string]column[T]
	valid share.BSharedVector[T]
	uniq  share.BSharedVector[T]
	hasU  bool
	n     int
}

// New constructs an empty table of the given row count, VALID set to
// all-ones (every row live).
func New[T vector.Integer](rank, n int) *EncodedTable[T] {
	ones := vector.NewFilled[T](n, 1)
	var cols []vector.Vector[T]
	if rank == 0 {
		cols = []vector.Vector[T]{ones}
	} else {
		cols = []vector.Vector[T]{vector.New[T](n)}
	}
	return &EncodedTable[T]{
		order: nil,
		cols:  make(map[string]column[T]),
		valid: share.NewBSharedVector(share.FromColumns(cols, 0)),
		n:     n,
	}
}

// Len returns the table's row count, the logical length shared by
// every column, VALID, and UNIQ.
func (t *EncodedTable[T]) Len() int { return t.n }

// Names returns column names in insertion order (system columns
// excluded).
func (t *EncodedTable[T]) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// AddArithmetic inserts an unbracketed, arithmetically shared column.
func (t *EncodedTable[T]) AddArithmetic(name string, v share.ASharedVector[T]) error {
	if bracketed(name) {
		return orqerr.Shapef("table.AddArithmetic", "name %q looks boolean-bracketed", name)
	}
	return t.add(name, column[T]{name: name, a: v, enc: share.Arithmetic})
}

// AddBoolean inserts a bracketed, boolean shared column. name is
// stored with its brackets so Boolean lookups by the bracketed name
// round-trip.
func (t *EncodedTable[T]) AddBoolean(name string, v share.BSharedVector[T]) error {
	if !bracketed(name) {
		return orqerr.Shapef("table.AddBoolean", "name %q is not bracketed", name)
	}
	return t.add(name, column[T]{name: name, b: v, enc: share.Boolean})
}

func (t *EncodedTable[T]) add(name string, c column[T]) error {
	if _, exists := t.cols[name]; exists {
		return orqerr.Shapef("table.add", "duplicate column %q", name)
	}
	if c.enc == share.Arithmetic && c.a.Len() != t.n {
		return orqerr.Shapef("table.add", "column %q length %d != table length %d", name, c.a.Len(), t.n)
	}
	if c.enc == share.Boolean && c.b.Len() != t.n {
		return orqerr.Shapef("table.add", "column %q length %d != table length %d", name, c.b.Len(), t.n)
	}
	t.cols[name] = c
	t.order = append(t.order, name)
	return nil
}

// Arithmetic looks up an unbracketed column.
func (t *EncodedTable[T]) Arithmetic(name string) (share.ASharedVector[T], error) {
	c, ok := t.cols[name]
	if !ok || c.enc != share.Arithmetic {
		return share.ASharedVector[T]{}, orqerr.Shapef("table.Arithmetic", "no arithmetic column %q", name)
	}
	return c.a, nil
}

// Boolean looks up a bracketed column.
func (t *EncodedTable[T]) Boolean(name string) (share.BSharedVector[T], error) {
	c, ok := t.cols[name]
	if !ok || c.enc != share.Boolean {
		return share.BSharedVector[T]{}, orqerr.Shapef("table.Boolean", "no boolean column %q", name)
	}
	return c.b, nil
}

// Valid returns the VALID system column.
func (t *EncodedTable[T]) Valid() share.BSharedVector[T] { return t.valid }

// SetValid replaces VALID, e.g. after a filter, join, or distinct
// operator recomputes which rows are live.
func (t *EncodedTable[T]) SetValid(v share.BSharedVector[T]) error {
	if v.Len() != t.n {
		return orqerr.Shapef("table.SetValid", "VALID length %d != table length %d", v.Len(), t.n)
	}
	t.valid = v
	return nil
}

// Uniq returns the UNIQ system column and whether it has been set
// (only sort-derived operators like Distinct populate it).
func (t *EncodedTable[T]) Uniq() (share.BSharedVector[T], bool) { return t.uniq, t.hasU }

// SetUniq installs UNIQ, e.g. from ops.Distinct's result.
func (t *EncodedTable[T]) SetUniq(v share.BSharedVector[T]) error {
	if v.Len() != t.n {
		return orqerr.Shapef("table.SetUniq", "UNIQ length %d != table length %d", v.Len(), t.n)
	}
	t.uniq = v
	t.hasU = true
	return nil
}

// ApplyMapping reorders every column, VALID, and UNIQ by perm in
// place - the table-level counterpart of ops.ShuffleA/ShuffleB and
// ops.BitonicSortKeys, which operate one column at a time.
func (t *EncodedTable[T]) ApplyMapping(perm []int) error {
	if len(perm) != t.n {
		return orqerr.Shapef("table.ApplyMapping", "permutation length %d != table length %d", len(perm), t.n)
	}
	for name, c := range t.cols {
		switch c.enc {
		case share.Arithmetic:
			c.a = c.a.ApplyMapping(perm)
		case share.Boolean:
			c.b = c.b.ApplyMapping(perm)
		}
		t.cols[name] = c
	}
	t.valid = t.valid.ApplyMapping(perm)
	if t.hasU {
		t.uniq = t.uniq.ApplyMapping(perm)
	}
	return nil
}

// Head returns a new table over the first k logical rows. Per
// spec.md section 4.2, trimming storage only ever happens through
// Head/Tail on a table whose rows are already VALID-sorted (live rows
// first), so this does not itself inspect VALID.
func (t *EncodedTable[T]) Head(k int) (*EncodedTable[T], error) {
	return t.slice(0, k)
}

// Tail returns a new table over the last k logical rows.
func (t *EncodedTable[T]) Tail(k int) (*EncodedTable[T], error) {
	return t.slice(t.n-k, t.n)
}

func (t *EncodedTable[T]) slice(from, to int) (*EncodedTable[T], error) {
	if from < 0 || to > t.n || from > to {
		return nil, orqerr.Shapef("table.slice", "invalid range [%d,%d) of %d", from, to, t.n)
	}
	out := &EncodedTable[T]{
		cols: make(map[string]column[T], len(t.cols)),
		n:    to - from,
	}
	for _, name := range t.order {
		c := t.cols[name]
		switch c.enc {
		case share.Arithmetic:
			c.a = c.a.Slice(from, to)
		case share.Boolean:
			c.b = c.b.Slice(from, to)
		}
		out.cols[name] = c
		out.order = append(out.order, name)
	}
	out.valid = t.valid.Slice(from, to)
	if t.hasU {
		out.uniq = t.uniq.Slice(from, to)
		out.hasU = true
	}
	return out, nil
}
