//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package table

import (
	"testing"

	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

func arithCol(vals []int32) share.ASharedVector[int32] {
	return share.NewASharedVector(share.FromColumns([]vector.Vector[int32]{vector.From(vals)}, 0))
}

func boolCol(vals []int32) share.BSharedVector[int32] {
	return share.NewBSharedVector(share.FromColumns([]vector.Vector[int32]{vector.From(vals)}, 0))
}

func TestAddArithmeticRejectsBracketedName(t *testing.T) {
	tbl := New[int32](0, 3)
	if err := tbl.AddArithmetic("[X]", arithCol([]int32{1, 2, 3})); err == nil {
		t.Fatal("expected an error for a bracketed arithmetic name")
	}
}

func TestAddBooleanRejectsUnbracketedName(t *testing.T) {
	tbl := New[int32](0, 3)
	if err := tbl.AddBoolean("X", boolCol([]int32{1, 0, 1})); err == nil {
		t.Fatal("expected an error for an unbracketed boolean name")
	}
}

func TestAddArithmeticRejectsLengthMismatch(t *testing.T) {
	tbl := New[int32](0, 3)
	if err := tbl.AddArithmetic("X", arithCol([]int32{1, 2})); err == nil {
		t.Fatal("expected a shape error for mismatched column length")
	}
}

func TestAddArithmeticRejectsDuplicateName(t *testing.T) {
	tbl := New[int32](0, 2)
	if err := tbl.AddArithmetic("X", arithCol([]int32{1, 2})); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddArithmetic("X", arithCol([]int32{3, 4})); err == nil {
		t.Fatal("expected an error for a duplicate column name")
	}
}

func TestArithmeticAndBooleanRoundTrip(t *testing.T) {
	tbl := New[int32](0, 2)
	if err := tbl.AddArithmetic("X", arithCol([]int32{1, 2})); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddBoolean("[Y]", boolCol([]int32{1, 0})); err != nil {
		t.Fatal(err)
	}

	x, err := tbl.Arithmetic("X")
	if err != nil {
		t.Fatal(err)
	}
	got := x.E.Column(0).Materialize()
	if got.At(0) != 1 || got.At(1) != 2 {
		t.Fatalf("X = %v, want [1 2]", got)
	}

	if _, err := tbl.Arithmetic("[Y]"); err == nil {
		t.Fatal("expected Arithmetic lookup of a boolean column to fail")
	}
	if _, err := tbl.Boolean("X"); err == nil {
		t.Fatal("expected Boolean lookup of an arithmetic column to fail")
	}

	y, err := tbl.Boolean("[Y]")
	if err != nil {
		t.Fatal(err)
	}
	gotY := y.E.Column(0).Materialize()
	if gotY.At(0) != 1 || gotY.At(1) != 0 {
		t.Fatalf("[Y] = %v, want [1 0]", gotY)
	}
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	tbl := New[int32](0, 1)
	if err := tbl.AddArithmetic("B", arithCol([]int32{1})); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddArithmetic("A", arithCol([]int32{1})); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddBoolean("[C]", boolCol([]int32{1})); err != nil {
		t.Fatal(err)
	}

	want := []string{"B", "A", "[C]"}
	got := tbl.Names()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestSetValidRejectsLengthMismatch(t *testing.T) {
	tbl := New[int32](0, 3)
	if err := tbl.SetValid(boolCol([]int32{1, 0})); err == nil {
		t.Fatal("expected a shape error for mismatched VALID length")
	}
}

func TestSetUniqPopulatesHasFlag(t *testing.T) {
	tbl := New[int32](0, 2)
	if _, has := tbl.Uniq(); has {
		t.Fatal("expected UNIQ to be unset on a fresh table")
	}
	if err := tbl.SetUniq(boolCol([]int32{1, 0})); err != nil {
		t.Fatal(err)
	}
	u, has := tbl.Uniq()
	if !has {
		t.Fatal("expected UNIQ to be set after SetUniq")
	}
	got := u.E.Column(0).Materialize()
	if got.At(0) != 1 || got.At(1) != 0 {
		t.Fatalf("UNIQ = %v, want [1 0]", got)
	}
}

func TestApplyMappingReordersColumnsAndValid(t *testing.T) {
	tbl := New[int32](0, 3)
	if err := tbl.AddArithmetic("X", arithCol([]int32{10, 20, 30})); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetValid(boolCol([]int32{1, 0, 1})); err != nil {
		t.Fatal(err)
	}

	if err := tbl.ApplyMapping([]int{2, 0, 1}); err != nil {
		t.Fatal(err)
	}

	x, err := tbl.Arithmetic("X")
	if err != nil {
		t.Fatal(err)
	}
	gotX := x.E.Column(0).Materialize()
	wantX := []int32{30, 10, 20}
	for i, want := range wantX {
		if gotX.At(i) != want {
			t.Errorf("X[%d] = %d, want %d", i, gotX.At(i), want)
		}
	}

	gotValid := tbl.Valid().E.Column(0).Materialize()
	wantValid := []int32{1, 1, 0}
	for i, want := range wantValid {
		if gotValid.At(i) != want {
			t.Errorf("VALID[%d] = %d, want %d", i, gotValid.At(i), want)
		}
	}
}

func TestApplyMappingRejectsLengthMismatch(t *testing.T) {
	tbl := New[int32](0, 3)
	if err := tbl.ApplyMapping([]int{0, 1}); err == nil {
		t.Fatal("expected a shape error for mismatched permutation length")
	}
}

func TestHeadAndTailSliceRows(t *testing.T) {
	tbl := New[int32](0, 4)
	if err := tbl.AddArithmetic("X", arithCol([]int32{1, 2, 3, 4})); err != nil {
		t.Fatal(err)
	}

	head, err := tbl.Head(2)
	if err != nil {
		t.Fatal(err)
	}
	if head.Len() != 2 {
		t.Fatalf("Head(2).Len() = %d, want 2", head.Len())
	}
	hx, err := head.Arithmetic("X")
	if err != nil {
		t.Fatal(err)
	}
	hgot := hx.E.Column(0).Materialize()
	if hgot.At(0) != 1 || hgot.At(1) != 2 {
		t.Fatalf("Head(2) X = %v, want [1 2]", hgot)
	}

	tail, err := tbl.Tail(2)
	if err != nil {
		t.Fatal(err)
	}
	tx, err := tail.Arithmetic("X")
	if err != nil {
		t.Fatal(err)
	}
	tgot := tx.E.Column(0).Materialize()
	if tgot.At(0) != 3 || tgot.At(1) != 4 {
		t.Fatalf("Tail(2) X = %v, want [3 4]", tgot)
	}
}

func TestHeadRejectsOutOfRange(t *testing.T) {
	tbl := New[int32](0, 2)
	if _, err := tbl.Head(5); err == nil {
		t.Fatal("expected a shape error for Head beyond table length")
	}
}
