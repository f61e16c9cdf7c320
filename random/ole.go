//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

import (
	"io"
	"math/big"

	"github.com/caspsystems/orq/ot"
	"github.com/caspsystems/orq/p2p"
	"github.com/caspsystems/orq/vector"
	"github.com/caspsystems/orq/vole"
)

// OLETuple is one party's half of an oblivious linear evaluation:
// locally sampled factors A, B and a cross term C such that, across
// both parties, A0*B1 + A1*B0 = C0 + C1 (ole_generator.h's ole_t).
// BeaverMulGenerator consumes these to finish a full Beaver
// multiplication triple.
type OLETuple[T vector.Integer] struct {
	A, B, C vector.Vector[T]
}

// OLEProvider produces n fresh OLE tuples for this party.
type OLEProvider[T vector.Integer] interface {
	Next(n int) OLETuple[T]
}

// DummyOLE derives OLE tuples from a CommonPRG shared by exactly the
// two parties in the OLE, the way dummy_ole.h's DummyOLE does: both
// parties sample A and B from the shared stream (so they agree on
// them without any messages), and each then computes its half of C
// locally from quantities it is not supposed to know alone. This is
// INSECURE - it trades the OT-extension round trip for a shared seed
// - and exists only for local testing and benchmarking without a
// network, exactly as in the original.
type DummyOLE[T vector.Integer] struct {
	rank int
	prg  *CommonPRG
}

func NewDummyOLE[T vector.Integer](rank int, prg *CommonPRG) *DummyOLE[T] {
	return &DummyOLE[T]{rank: rank, prg: prg}
}

func (d *DummyOLE[T]) Next(n int) OLETuple[T] {
	a := CommonVector[T](d.prg, n)
	b := CommonVector[T](d.prg, n)
	c := vector.New[T](n)
	for i := 0; i < n; i++ {
		// Both parties read the same stream, so the peer's factors
		// equal this party's own and A0*B1 + A1*B0 = 2*a*b: each
		// party's half of the cross term is a*b, computed locally
		// rather than by a real oblivious transfer.
		c.Set(i, a.At(i)*b.At(i))
	}
	return OLETuple[T]{A: a, B: b, C: c}
}

// RealOLE backs OLE tuples with the teacher's two-party OT-extension
// stack: vole.Sender/vole.Receiver run the IKNP-based oblivious
// product over a live p2p.Conn, so no party ever learns the other's
// factor. One RealOLE is a sender on one field element modulus and a
// receiver on the complementary role; which role a party plays is
// fixed by the OT base protocol's InitSender/InitReceiver handshake,
// mirroring vole_test.go's harness.
type RealOLE[T vector.Integer] struct {
	rank   int
	conn   *p2p.Conn
	sender *vole.Sender
	recv   *vole.Receiver
	prg    *LocalPRG
	p      *big.Int
}

// NewRealOLESender constructs a RealOLE playing the vole sender role
// over conn, using oti as the base OT and r for local randomness. p
// is the field modulus the OLE product is computed in.
func NewRealOLESender[T vector.Integer](rank int, oti ot.OT, conn *p2p.Conn, r io.Reader, p *big.Int) (*RealOLE[T], error) {
	s, err := vole.NewSender(oti, conn, r)
	if err != nil {
		return nil, err
	}
	return &RealOLE[T]{rank: rank, conn: conn, sender: s, prg: NewLocalPRG(r), p: p}, nil
}

// NewRealOLEReceiver constructs the matching receiver-side RealOLE.
func NewRealOLEReceiver[T vector.Integer](rank int, oti ot.OT, conn *p2p.Conn, r io.Reader, p *big.Int) (*RealOLE[T], error) {
	rc, err := vole.NewReceiver(oti, conn, r)
	if err != nil {
		return nil, err
	}
	return &RealOLE[T]{rank: rank, conn: conn, recv: rc, prg: NewLocalPRG(r), p: p}, nil
}

func (o *RealOLE[T]) Next(n int) OLETuple[T] {
	a := Vector[T](o.prg, n)
	b := Vector[T](o.prg, n)
	c := vector.New[T](n)

	big64 := func(x T) *big.Int { return new(big.Int).SetUint64(uint64(x)) }
	inputs := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		if o.sender != nil {
			inputs[i] = big64(a.At(i))
		} else {
			inputs[i] = big64(b.At(i))
		}
	}

	var out []*big.Int
	var err error
	if o.sender != nil {
		out, err = o.sender.Mul(inputs, o.p)
	} else {
		out, err = o.recv.Mul(inputs, o.p)
	}
	if err != nil {
		panic(err)
	}
	for i := 0; i < n; i++ {
		c.Set(i, T(out[i].Uint64()))
	}
	return OLETuple[T]{A: a, B: b, C: c}
}
