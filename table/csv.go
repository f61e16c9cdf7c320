//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package table

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/caspsystems/orq/orqerr"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// LoadCSV reads one party's own secret-share file: a header row of
// column names (bracketed names are boolean-shared, bare names
// arithmetic) followed by one row of that party's shares per
// logical table row. This is the local-share input format, not a
// plaintext table - each party runs LoadCSV against its own file, and
// no single file can be opened into the underlying secret on its own.
func LoadCSV[T vector.Integer](r io.Reader) (*EncodedTable[T], error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, orqerr.Shapef("table.LoadCSV", "reading header: %v", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, orqerr.Shapef("table.LoadCSV", "reading rows: %v", err)
	}

	n := len(rows)
	cols := make([][]T, len(header))
	for c := range cols {
		cols[c] = make([]T, n)
	}
	for r, row := range rows {
		if len(row) != len(header) {
			return nil, orqerr.Shapef("table.LoadCSV", "row %d has %d fields, want %d", r, len(row), len(header))
		}
		for c, field := range row {
			v, perr := strconv.ParseInt(field, 10, 64)
			if perr != nil {
				return nil, orqerr.Shapef("table.LoadCSV", "row %d column %q: %v", r, header[c], perr)
			}
			cols[c][r] = T(v)
		}
	}

	t := &EncodedTable[T]{cols: make(map[string]column[T]), n: n}
	allValid := make([]T, n)
	for i := range allValid {
		allValid[i] = 1
	}
	t.valid = share.NewBSharedVector(share.FromColumns([]vector.Vector[T]{vector.From(allValid)}, 0))

	for c, name := range header {
		if bracketed(name) {
			bv := share.NewBSharedVector(share.FromColumns([]vector.Vector[T]{vector.From(cols[c])}, 0))
			if err := t.AddBoolean(name, bv); err != nil {
				return nil, err
			}
		} else {
			av := share.NewASharedVector(share.FromColumns([]vector.Vector[T]{vector.From(cols[c])}, 0))
			if err := t.AddArithmetic(name, av); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// DumpCSV writes this party's own shares of every column back out in
// LoadCSV's format - again, one party's share file, not the opened
// table.
func DumpCSV[T vector.Integer](w io.Writer, t *EncodedTable[T]) error {
	cw := csv.NewWriter(w)
	header := t.Names()
	if err := cw.Write(header); err != nil {
		return orqerr.Shapef("table.DumpCSV", "writing header: %v", err)
	}
	n := t.Len()
	materialized := make([]vector.Vector[T], len(header))
	for i, name := range header {
		c := t.cols[name]
		switch c.enc {
		case share.Arithmetic:
			materialized[i] = c.a.E.Column(0).Materialize()
		case share.Boolean:
			materialized[i] = c.b.E.Column(0).Materialize()
		}
	}
	row := make([]string, len(header))
	for r := 0; r < n; r++ {
		for c := range header {
			row[c] = strconv.FormatInt(int64(materialized[c].At(r)), 10)
		}
		if err := cw.Write(row); err != nil {
			return orqerr.Shapef("table.DumpCSV", "writing row %d: %v", r, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
