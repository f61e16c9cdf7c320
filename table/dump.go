//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package table

import (
	"io"
	"strconv"

	"github.com/caspsystems/orq/vector"
	"github.com/markkurossi/tabulate"
)

// Dump pretty-prints a table's shape for debugging: column names,
// encoding, and length, never the underlying secret values - the same
// texture as the teacher's circuit object dump, but structural only,
// since opening a column here would defeat the whole point of the
// engine.
func Dump[T vector.Integer](w io.Writer, t *EncodedTable[T]) {
	tab := tabulate.New(tabulate.Github)
	tab.Header("Column")
	tab.Header("Encoding")
	tab.Header("Rows").SetAlign(tabulate.MR)
	for _, name := range t.Names() {
		c := t.cols[name]
		row := tab.Row()
		row.Column(name)
		row.Column(c.enc.String())
		row.Column(strconv.Itoa(t.n))
	}
	tab.Print(w)
}
