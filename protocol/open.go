//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package protocol

import (
	"github.com/caspsystems/orq/random"
	"github.com/caspsystems/orq/share"
	"github.com/caspsystems/orq/vector"
)

// OpenA reconstructs the secret behind an arithmetic share by
// exchanging shares with the peer and summing, the two-party
// specialization of the original's ring-neighbour reconstruction
// sum.
func OpenA[T vector.Integer](s *Session, a share.ASharedVector[T]) (vector.Vector[T], error) {
	mine := a.E.Column(0)
	if err := random.SendVector(s.Conn, mine); err != nil {
		return vector.Vector[T]{}, err
	}
	theirs, err := random.ReceiveVector[T](s.Conn, mine.Len())
	if err != nil {
		return vector.Vector[T]{}, err
	}
	return vector.Add(mine, theirs), nil
}

// OpenB reconstructs the secret behind a boolean share by exchanging
// shares and XORing.
func OpenB[T vector.Integer](s *Session, b share.BSharedVector[T]) (vector.Vector[T], error) {
	mine := b.E.Column(0)
	if err := random.SendVector(s.Conn, mine); err != nil {
		return vector.Vector[T]{}, err
	}
	theirs, err := random.ReceiveVector[T](s.Conn, mine.Len())
	if err != nil {
		return vector.Vector[T]{}, err
	}
	return vector.Xor(mine, theirs), nil
}
