//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package ops

import (
	"sort"
	"testing"

	"github.com/caspsystems/orq/protocol"
	"github.com/caspsystems/orq/share"
)

type bitonicResult struct {
	key  share.ASharedVector[int32]
	cols []share.ASharedVector[int32]
	err  error
}

func runBitonic(s *protocol.Session, key share.ASharedVector[int32], cols []share.ASharedVector[int32]) bitonicResult {
	k, c, err := BitonicSortKeys(s, key, cols)
	return bitonicResult{key: k, cols: c, err: err}
}

func TestBitonicSortKeysOrdersAscending(t *testing.T) {
	keyPlain := []int32{30, 10, 40, 20}
	payloadPlain := []int32{3, 1, 4, 2}
	key0, key1 := additiveShares(keyPlain)
	pay0, pay1 := additiveShares(payloadPlain)

	s0, s1 := newTestSessions(t, len(keyPlain))

	ch := make(chan bitonicResult, 2)
	go func() { ch <- runBitonic(s0, asA(key0), []share.ASharedVector[int32]{asA(pay0)}) }()
	go func() { ch <- runBitonic(s1, asA(key1), []share.ASharedVector[int32]{asA(pay1)}) }()

	r0 := <-ch
	r1 := <-ch
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}

	gotKey := make([]int32, len(keyPlain))
	gotPayload := make([]int32, len(keyPlain))
	k0 := r0.key.E.Column(0).Materialize()
	k1 := r1.key.E.Column(0).Materialize()
	p0 := r0.cols[0].E.Column(0).Materialize()
	p1 := r1.cols[0].E.Column(0).Materialize()
	for i := range gotKey {
		gotKey[i] = k0.At(i) + k1.At(i)
		gotPayload[i] = p0.At(i) + p1.At(i)
	}

	wantKey := append([]int32(nil), keyPlain...)
	sort.Slice(wantKey, func(i, j int) bool { return wantKey[i] < wantKey[j] })
	for i := range wantKey {
		if gotKey[i] != wantKey[i] {
			t.Fatalf("sorted key = %v, want ascending %v", gotKey, wantKey)
		}
	}

	// every payload entry must have moved together with its key: for
	// each output row, the payload value must be the one that
	// originally paired with that key value.
	pairs := make(map[int32]int32, len(keyPlain))
	for i, k := range keyPlain {
		pairs[k] = payloadPlain[i]
	}
	for i, k := range gotKey {
		if gotPayload[i] != pairs[k] {
			t.Errorf("row %d: key %d paired with payload %d, want %d", i, k, gotPayload[i], pairs[k])
		}
	}
}

func TestBitonicSortKeysRejectsNonPowerOfTwo(t *testing.T) {
	s0, _ := newTestSessions(t, 3)
	_, _, err := BitonicSortKeys(s0, asA([]int32{1, 2, 3}), nil)
	if err == nil {
		t.Fatal("expected a shape error for non-power-of-two length")
	}
}

// runSortKeys drives either the dedicated sort function or SortKeys'
// dispatcher, depending on which the caller wants exercised.
func runSortKeys(s *protocol.Session, tag SortingProtocol, key share.ASharedVector[int32], cols []share.ASharedVector[int32]) bitonicResult {
	k, c, err := SortKeys(s, tag, key, cols)
	return bitonicResult{key: k, cols: c, err: err}
}

// checkSorted reconstructs key and payload from both parties' shares
// and checks the key is ascending and every payload row still pairs
// with the key value it started out next to.
func checkSorted(t *testing.T, keyPlain, payloadPlain []int32, r0, r1 bitonicResult) ([]int32, []int32) {
	t.Helper()
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}
	n := len(keyPlain)
	gotKey := make([]int32, n)
	gotPayload := make([]int32, n)
	k0 := r0.key.E.Column(0)
	k1 := r1.key.E.Column(0)
	p0 := r0.cols[0].E.Column(0)
	p1 := r1.cols[0].E.Column(0)
	for i := 0; i < n; i++ {
		gotKey[i] = k0.At(i) + k1.At(i)
		gotPayload[i] = p0.At(i) + p1.At(i)
	}
	for i := 1; i < n; i++ {
		if gotKey[i-1] > gotKey[i] {
			t.Fatalf("output not ascending: %v", gotKey)
		}
	}
	pairs := make(map[int32]int32, n)
	for i, k := range keyPlain {
		pairs[k] = payloadPlain[i]
	}
	for i, k := range gotKey {
		if gotPayload[i] != pairs[k] {
			t.Errorf("row %d: key %d paired with payload %d, want %d", i, k, gotPayload[i], pairs[k])
		}
	}
	return gotKey, gotPayload
}

func TestRadixSortKeysOrdersAscending(t *testing.T) {
	keyPlain := []int32{30, -10, 40, 20, -5, 0, 7}
	payloadPlain := []int32{3, 1, 4, 2, 5, 6, 7}
	key0, key1 := additiveShares(keyPlain)
	pay0, pay1 := additiveShares(payloadPlain)

	s0, s1 := newTestSessions(t, len(keyPlain))

	ch := make(chan bitonicResult, 2)
	go func() { ch <- runSortKeys(s0, RadixSortProtocol, asA(key0), []share.ASharedVector[int32]{asA(pay0)}) }()
	go func() { ch <- runSortKeys(s1, RadixSortProtocol, asA(key1), []share.ASharedVector[int32]{asA(pay1)}) }()
	r0 := <-ch
	r1 := <-ch
	checkSorted(t, keyPlain, payloadPlain, r0, r1)
}

func TestQuicksortKeysOrdersAscending(t *testing.T) {
	keyPlain := []int32{30, -10, 40, 20, -5, 0, 7}
	payloadPlain := []int32{3, 1, 4, 2, 5, 6, 7}
	key0, key1 := additiveShares(keyPlain)
	pay0, pay1 := additiveShares(payloadPlain)

	s0, s1 := newTestSessions(t, len(keyPlain))

	ch := make(chan bitonicResult, 2)
	go func() { ch <- runSortKeys(s0, QuicksortProtocol, asA(key0), []share.ASharedVector[int32]{asA(pay0)}) }()
	go func() { ch <- runSortKeys(s1, QuicksortProtocol, asA(key1), []share.ASharedVector[int32]{asA(pay1)}) }()
	r0 := <-ch
	r1 := <-ch
	checkSorted(t, keyPlain, payloadPlain, r0, r1)
}

// TestAllSortingProtocolsAgree is scenario C of spec.md's Testable
// Properties: the three sort operators must produce identical opened
// outputs on the same input.
func TestAllSortingProtocolsAgree(t *testing.T) {
	keyPlain := []int32{30, 10, 40, 20}
	payloadPlain := []int32{3, 1, 4, 2}
	key0, key1 := additiveShares(keyPlain)
	pay0, pay1 := additiveShares(payloadPlain)

	protocols := []SortingProtocol{BitonicSortProtocol, RadixSortProtocol, QuicksortProtocol}
	var prevKey, prevPayload []int32
	for _, tag := range protocols {
		s0, s1 := newTestSessions(t, len(keyPlain))
		ch := make(chan bitonicResult, 2)
		go func() { ch <- runSortKeys(s0, tag, asA(key0), []share.ASharedVector[int32]{asA(pay0)}) }()
		go func() { ch <- runSortKeys(s1, tag, asA(key1), []share.ASharedVector[int32]{asA(pay1)}) }()
		r0 := <-ch
		r1 := <-ch
		gotKey, gotPayload := checkSorted(t, keyPlain, payloadPlain, r0, r1)
		if prevKey != nil {
			for i := range gotKey {
				if gotKey[i] != prevKey[i] || gotPayload[i] != prevPayload[i] {
					t.Fatalf("protocol %v disagreed with a previous protocol: key %v payload %v, want %v / %v", tag, gotKey, gotPayload, prevKey, prevPayload)
				}
			}
		}
		prevKey, prevPayload = gotKey, gotPayload
	}
}
