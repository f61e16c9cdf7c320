//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package ops

import (
	"testing"

	"github.com/caspsystems/orq/random"
	"github.com/caspsystems/orq/share"
)

// permPair builds one genuinely correlated permutation per party
// (rank 0's and rank 1's own share of the same correlation), the way
// two real parties would each hold a distinct ShardedPermutation[T]
// value rather than sharing one Go value between them. salt varies
// the derived seed so independently drawn correlations differ.
func permPair(n int, enc share.Encoding, salt byte) (random.ShardedPermutation[int32], random.ShardedPermutation[int32]) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i*7+3) ^ salt
	}
	g0 := random.NewPermutationGenerator[int32](0, random.NewCommonPRG(seed), enc)
	g1 := random.NewPermutationGenerator[int32](1, random.NewCommonPRG(seed), enc)
	return g0.Next(n), g1.Next(n)
}

type shuffleResult struct {
	col share.ASharedVector[int32]
	err error
}

type shuffleBResult struct {
	col share.BSharedVector[int32]
	err error
}

func TestShuffleAPermutesShares(t *testing.T) {
	plain := []int32{10, 20, 30, 40}
	col0, col1 := additiveShares(plain)
	perm0, perm1 := permPair(len(plain), share.Arithmetic, 0)

	s0, s1 := newTestSessions(t, len(plain))

	ch := make(chan shuffleResult, 2)
	go func() {
		c, err := ShuffleA(s0, asA(col0), perm0)
		ch <- shuffleResult{c, err}
	}()
	go func() {
		c, err := ShuffleA(s1, asA(col1), perm1)
		ch <- shuffleResult{c, err}
	}()
	r0 := <-ch
	r1 := <-ch
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}

	got0 := r0.col.E.Column(0).Materialize()
	got1 := r1.col.E.Column(0).Materialize()
	for i := range plain {
		// ShuffleA scatters: input row i lands at output row Pi[i].
		row := perm0.Pi[i]
		want := plain[i]
		sum := got0.At(row) + got1.At(row)
		if sum != want {
			t.Errorf("row %d: got %d, want %d", row, sum, want)
		}
	}
}

func TestShuffleAShapeMismatch(t *testing.T) {
	perm := random.ShardedPermutation[int32]{Pi: []int{0, 1, 2}}
	s0, _ := newTestSessions(t, 3)
	_, err := ShuffleA(s0, asA([]int32{1, 2}), perm)
	if err == nil {
		t.Fatal("expected a shape error for mismatched permutation size")
	}
}

func TestShuffleBPermutesBooleanShares(t *testing.T) {
	plain := []int32{1, 0, 1, 0}
	col0 := []int32{1, 1, 0, 1}
	col1 := make([]int32, len(plain))
	for i := range plain {
		col1[i] = plain[i] ^ col0[i]
	}
	perm0, perm1 := permPair(len(plain), share.Boolean, 0)

	s0, s1 := newTestSessions(t, len(plain))

	ch := make(chan shuffleBResult, 2)
	go func() {
		c, err := ShuffleB(s0, asB(col0), perm0)
		ch <- shuffleBResult{c, err}
	}()
	go func() {
		c, err := ShuffleB(s1, asB(col1), perm1)
		ch <- shuffleBResult{c, err}
	}()
	r0 := <-ch
	r1 := <-ch
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}

	got0 := r0.col.E.Column(0).Materialize()
	got1 := r1.col.E.Column(0).Materialize()
	for i := range plain {
		// ShuffleB scatters like ShuffleA: input row i lands at Pi[i].
		row := perm0.Pi[i]
		want := plain[i]
		xor := got0.At(row) ^ got1.At(row)
		if xor != want {
			t.Errorf("row %d: got %d, want %d", row, xor, want)
		}
	}
}

func TestDoubleShuffleComposesPermutations(t *testing.T) {
	plain := []int32{10, 20, 30, 40}
	col0, col1 := additiveShares(plain)
	first0, first1 := permPair(len(plain), share.Arithmetic, 0)
	second0, second1 := permPair(len(plain), share.Arithmetic, 0xA5)

	s0, s1 := newTestSessions(t, len(plain))

	ch := make(chan shuffleResult, 2)
	go func() {
		c, err := DoubleShuffle(s0, asA(col0), first0, second0)
		ch <- shuffleResult{c, err}
	}()
	go func() {
		c, err := DoubleShuffle(s1, asA(col1), first1, second1)
		ch <- shuffleResult{c, err}
	}()
	r0 := <-ch
	r1 := <-ch
	if r0.err != nil {
		t.Fatal(r0.err)
	}
	if r1.err != nil {
		t.Fatal(r1.err)
	}

	got0 := r0.col.E.Column(0).Materialize()
	got1 := r1.col.E.Column(0).Materialize()
	for i := range plain {
		// Input row i goes to first.Pi[i], then to second.Pi of that.
		row := second0.Pi[first0.Pi[i]]
		want := plain[i]
		sum := got0.At(row) + got1.At(row)
		if sum != want {
			t.Errorf("row %d: got %d, want %d", row, sum, want)
		}
	}
}
