//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package protocol implements the arithmetic and boolean secure
// primitives (spec.md section 4.4): operations that need correlated
// randomness and a round of communication to evaluate, layered on
// top of the locally-computable algebra package share already
// provides. Every exported function here takes a *Session, which
// pairs a party's rank with its correlation Pool and its
// communicator to the other party.
package protocol

import (
	"github.com/caspsystems/orq/p2p"
	"github.com/caspsystems/orq/random"
)

// Session is one party's view of a two-party secure computation: its
// rank (0 or 1), the peer connection used to open values and run
// integrity checks, and the correlation pool operators draw Beaver
// triples and permutations from. Only the two-party, dishonest
// majority construction is implemented, mirroring
// random.PermutationGenerator's "currently only supports 2PC" scope.
type Session struct {
	Rank int
	Conn *p2p.Conn
	Pool *random.Pool
}

func NewSession(rank int, conn *p2p.Conn, pool *random.Pool) *Session {
	return &Session{Rank: rank, Conn: conn, Pool: pool}
}

func (s *Session) other() int {
	if s.Rank == 0 {
		return 1
	}
	return 0
}

func requireTriples[T any](s *Session, c random.Correlation, n int) ([]T, error) {
	return random.GetNext[T](s.Pool, c, n)
}
