//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

import (
	"io"

	"github.com/caspsystems/orq/ot"
	"github.com/caspsystems/orq/otext"
	"github.com/caspsystems/orq/p2p"
	"github.com/caspsystems/orq/vector"
)

// ROTSenderGenerator is the sender side of the real random-OT
// correlation: each instance is a pair of random bits (M0, M1), backed
// by the teacher's otext.IKNPSender OT extension over a live
// connection, the "real" provider for random.ROT in SPEC_FULL.md's
// correlation taxonomy (as opposed to a shared-PRG dummy).
type ROTSenderGenerator[T vector.Integer] struct {
	rank   int
	sender *otext.IKNPSender
}

// NewROTSenderGenerator runs the IKNP base-OT setup (one base.Receive
// call) and returns a generator ready to Expand random OT instances on
// demand.
func NewROTSenderGenerator[T vector.Integer](rank int, base ot.OT, conn *p2p.Conn, r io.Reader) (*ROTSenderGenerator[T], error) {
	s, err := otext.NewIKNPSender(base, conn, r)
	if err != nil {
		return nil, err
	}
	return &ROTSenderGenerator[T]{rank: rank, sender: s}, nil
}

func (g *ROTSenderGenerator[T]) Rank() int         { return g.rank }
func (g *ROTSenderGenerator[T]) Kind() Correlation { return ROT }

// Next expands n fresh random-OT instances, returning this party's two
// random bits per instance as T-valued vectors (0 or 1).
func (g *ROTSenderGenerator[T]) Next(n int) (m0, m1 vector.Vector[T], err error) {
	wires, err := g.sender.Expand(n)
	if err != nil {
		return vector.Vector[T]{}, vector.Vector[T]{}, err
	}
	m0v := vector.New[T](n)
	m1v := vector.New[T](n)
	for i, w := range wires {
		m0v.Set(i, T(w.L0.D0&1))
		m1v.Set(i, T(w.L1.D0&1))
	}
	return m0v, m1v, nil
}

// ROTReceiverGenerator is the receiver side: each instance is a random
// choice bit and the sender bit it selected, satisfying M = Choice ?
// M1 : M0 against the matching ROTSenderGenerator instance.
type ROTReceiverGenerator[T vector.Integer] struct {
	rank int
	recv *otext.IKNPReceiver
	r    io.Reader
}

// NewROTReceiverGenerator runs the IKNP base-OT setup (one base.Send
// call) and returns a generator ready to Expand random OT instances.
func NewROTReceiverGenerator[T vector.Integer](rank int, base ot.OT, conn *p2p.Conn, r io.Reader) (*ROTReceiverGenerator[T], error) {
	recv, err := otext.NewIKNPReceiver(base, conn, r)
	if err != nil {
		return nil, err
	}
	return &ROTReceiverGenerator[T]{rank: rank, recv: recv, r: r}, nil
}

func (g *ROTReceiverGenerator[T]) Rank() int         { return g.rank }
func (g *ROTReceiverGenerator[T]) Kind() Correlation { return ROT }

// Next samples n fresh random choice bits and expands the chosen
// sender bit for each.
func (g *ROTReceiverGenerator[T]) Next(n int) (choice, chosen vector.Vector[T], err error) {
	rowBytes := (n + 7) / 8
	buf := make([]byte, rowBytes)
	if _, err = io.ReadFull(g.r, buf); err != nil {
		return vector.Vector[T]{}, vector.Vector[T]{}, err
	}
	flags := make([]bool, n)
	for i := 0; i < n; i++ {
		flags[i] = (buf[i/8]>>uint(i%8))&1 == 1
	}
	labels, err := g.recv.Expand(flags)
	if err != nil {
		return vector.Vector[T]{}, vector.Vector[T]{}, err
	}
	cv := vector.New[T](n)
	mv := vector.New[T](n)
	for i, l := range labels {
		if flags[i] {
			cv.Set(i, 1)
		}
		mv.Set(i, T(l.D0&1))
	}
	return cv, mv, nil
}
