//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package random implements the randomness and correlation layer
// (spec.md section 4.3): local and common pseudorandom generators,
// zero-sharing, OLE-backed Beaver triples, and sharded permutations,
// each reserved and consumed through a Pool keyed by Correlation.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/chacha20"

	"github.com/caspsystems/orq/vector"
)

// LocalPRG is a per-party source of private randomness, grounded in
// the teacher's env.Config.GetRandom: a plain io.Reader, defaulting
// to crypto/rand when the caller supplies none.
type LocalPRG struct {
	r io.Reader
}

// NewLocalPRG wraps r, or crypto/rand.Reader if r is nil.
func NewLocalPRG(r io.Reader) *LocalPRG {
	if r == nil {
		r = rand.Reader
	}
	return &LocalPRG{r: r}
}

func (p *LocalPRG) nextUint64() uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(p.r, buf[:]); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint64(buf[:])
}

// Vector fills a fresh length-n vector with private random values.
func Vector[T vector.Integer](p *LocalPRG, n int) vector.Vector[T] {
	data := make([]T, n)
	for i := range data {
		data[i] = T(p.nextUint64())
	}
	return vector.From(data)
}

// CommonPRG is a deterministic stream shared by a fixed subset of
// parties (the "group"), grounded in common_prg.h's CommonPRG: every
// party in the group derives identical output from identical input
// because the stream is a ChaCha20 keystream keyed by a seed agreed
// on out of band (e.g. during Bootstrap). It is used to generate
// correlated randomness - zero shares, dummy OLE tuples - without a
// communication round.
type CommonPRG struct {
	cipher *chacha20.Cipher
	nonce  uint64
}

// NewCommonPRG keys a CommonPRG from a 32-byte seed shared by every
// member of the group out of band.
func NewCommonPRG(seed [32]byte) *CommonPRG {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		panic(err)
	}
	return &CommonPRG{cipher: c}
}

func (c *CommonPRG) nextUint64() uint64 {
	var in, out [8]byte
	c.cipher.XORKeyStream(out[:], in[:])
	return binary.BigEndian.Uint64(out[:])
}

// IncrementNonce bumps the nonce counter and advances the keystream
// past one 64-byte block; the cipher is not re-keyed with the new
// nonce. Two instances that call it equally often stay in step, the
// re-synchronization role of common_prg.h's incrementNonce.
func (c *CommonPRG) IncrementNonce() {
	c.nonce++
	var nonce [chacha20.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[:8], c.nonce)
	// chacha20.Cipher has no exported rekey; discard one block as a
	// cheap resynchronization point instead of reconstructing it.
	var buf [64]byte
	c.cipher.XORKeyStream(buf[:], buf[:])
}

// CommonVector fills a fresh length-n vector from the shared stream.
func CommonVector[T vector.Integer](c *CommonPRG, n int) vector.Vector[T] {
	data := make([]T, n)
	for i := range data {
		data[i] = T(c.nextUint64())
	}
	return vector.From(data)
}

// groupKey canonicalizes a party-rank set into a stable map key,
// grounded in CommonPRGManager's std::set<int> group key.
func groupKey(group []int) string {
	g := append([]int(nil), group...)
	sort.Ints(g)
	parts := make([]string, len(g))
	for i, r := range g {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ",")
}

// CommonPRGManager caches one CommonPRG per distinct group of
// parties, since a runtime may need several (e.g. "me and my left
// neighbor", "me and my right neighbor", "everyone").
type CommonPRGManager struct {
	seeds map[string][32]byte
	prgs  map[string]*CommonPRG
}

func NewCommonPRGManager() *CommonPRGManager {
	return &CommonPRGManager{
		seeds: make(map[string][32]byte),
		prgs:  make(map[string]*CommonPRG),
	}
}

// SetSeed registers the seed shared out of band for a group. Every
// party in the group must call this with the same seed.
func (m *CommonPRGManager) SetSeed(group []int, seed [32]byte) {
	m.seeds[groupKey(group)] = seed
}

// Get returns (creating on first use) the CommonPRG for a group.
func (m *CommonPRGManager) Get(group []int) *CommonPRG {
	key := groupKey(group)
	if prg, ok := m.prgs[key]; ok {
		return prg
	}
	seed, ok := m.seeds[key]
	if !ok {
		panic("random: no seed registered for group " + key)
	}
	prg := NewCommonPRG(seed)
	m.prgs[key] = prg
	return prg
}
