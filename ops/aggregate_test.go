//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package ops

import (
	"testing"

	"github.com/caspsystems/orq/protocol"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

func boundaryOf(bits ...int32) vector.Vector[int32] {
	return vector.From(bits)
}

func TestAggregateSumSegmentedScan(t *testing.T) {
	value0, value1 := additiveShares([]int32{1, 2, 3, 4, 5, 6})
	boundary := boundaryOf(1, 0, 0, 1, 0, 0)

	acc0, err := AggregateSum(asA(value0), boundary, false)
	if err != nil {
		t.Fatal(err)
	}
	acc1, err := AggregateSum(asA(value1), boundary, false)
	if err != nil {
		t.Fatal(err)
	}

	c0 := acc0.E.Column(0).Materialize()
	c1 := acc1.E.Column(0).Materialize()
	want := []int32{1, 3, 6, 4, 9, 15}
	for i := range want {
		if got := c0.At(i) + c1.At(i); got != want[i] {
			t.Errorf("row %d: got %d, want %d", i, got, want[i])
		}
	}
}

func TestAggregateSumShapeMismatch(t *testing.T) {
	value0, _ := additiveShares([]int32{1, 2, 3})
	_, err := AggregateSum(asA(value0), boundaryOf(1, 0), false)
	if err == nil {
		t.Fatal("expected a shape error for mismatched boundary length")
	}
}

func TestAggregateCountMatchesSum(t *testing.T) {
	valid0, valid1 := additiveShares([]int32{1, 1, 1, 1})
	boundary := boundaryOf(1, 0, 1, 0)

	cnt0, err := AggregateCount(asA(valid0), boundary, false)
	if err != nil {
		t.Fatal(err)
	}
	cnt1, err := AggregateCount(asA(valid1), boundary, false)
	if err != nil {
		t.Fatal(err)
	}
	c0 := cnt0.E.Column(0).Materialize()
	c1 := cnt1.E.Column(0).Materialize()
	want := []int32{1, 2, 1, 2}
	for i := range want {
		if got := c0.At(i) + c1.At(i); got != want[i] {
			t.Errorf("row %d: got %d, want %d", i, got, want[i])
		}
	}
}

type minMaxResult struct {
	acc share.ASharedVector[int32]
	err error
}

func runMinMax(s *protocol.Session, value share.ASharedVector[int32], boundary vector.Vector[int32], wantMax bool) minMaxResult {
	acc, err := AggregateMinMax(s, value, boundary, wantMax, false)
	return minMaxResult{acc: acc, err: err}
}

func TestAggregateMinMaxSegmentedScan(t *testing.T) {
	valuePlain := []int32{5, 2, 8, 1}
	boundary := boundaryOf(1, 0, 1, 0)
	value0, value1 := additiveShares(valuePlain)

	s0, s1 := newTestSessions(t, len(valuePlain))
	ch := make(chan minMaxResult, 2)
	go func() { ch <- runMinMax(s0, asA(value0), boundary, true) }()
	go func() { ch <- runMinMax(s1, asA(value1), boundary, true) }()
	r0 := <-ch
	r1 := <-ch
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}

	c0 := r0.acc.E.Column(0).Materialize()
	c1 := r1.acc.E.Column(0).Materialize()
	wantMax := []int32{5, 5, 8, 8}
	for i := range wantMax {
		if got := c0.At(i) + c1.At(i); got != wantMax[i] {
			t.Errorf("max row %d: got %d, want %d", i, got, wantMax[i])
		}
	}
}

func TestAggregateMinMaxWantMin(t *testing.T) {
	valuePlain := []int32{5, 2, 8, 9}
	boundary := boundaryOf(1, 0, 1, 0)
	value0, value1 := additiveShares(valuePlain)

	s0, s1 := newTestSessions(t, len(valuePlain))
	ch := make(chan minMaxResult, 2)
	go func() { ch <- runMinMax(s0, asA(value0), boundary, false) }()
	go func() { ch <- runMinMax(s1, asA(value1), boundary, false) }()
	r0 := <-ch
	r1 := <-ch
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}

	c0 := r0.acc.E.Column(0).Materialize()
	c1 := r1.acc.E.Column(0).Materialize()
	wantMin := []int32{5, 2, 8, 8}
	for i := range wantMin {
		if got := c0.At(i) + c1.At(i); got != wantMin[i] {
			t.Errorf("min row %d: got %d, want %d", i, got, wantMin[i])
		}
	}
}

type orBResult struct {
	val share.BSharedVector[int32]
	err error
}

func runOrB(s *protocol.Session, value share.BSharedVector[int32], boundary vector.Vector[int32]) orBResult {
	v, err := AggregateOrB(s, value, boundary, false)
	return orBResult{val: v, err: err}
}

func TestAggregateOrBSegmentedScan(t *testing.T) {
	// trivial sharing: rank 0 holds the whole boolean column, rank 1
	// holds zero, so the reconstructed OR is a plain XOR of the two
	// parties' outputs.
	plain := []int32{0, 0, 1, 0, 0, 0}
	boundary := boundaryOf(1, 0, 0, 1, 0, 0)
	zero := make([]int32, len(plain))

	s0, s1 := newTestSessions(t, len(plain))
	ch := make(chan orBResult, 2)
	go func() { ch <- runOrB(s0, asB(plain), boundary) }()
	go func() { ch <- runOrB(s1, asB(zero), boundary) }()
	r0 := <-ch
	r1 := <-ch
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}

	c0 := r0.val.E.Column(0).Materialize()
	c1 := r1.val.E.Column(0).Materialize()
	want := []int32{0, 0, 1, 0, 0, 0}
	for i := range want {
		if got := c0.At(i) ^ c1.At(i); got != want[i] {
			t.Errorf("row %d: got %d, want %d", i, got, want[i])
		}
	}
}
