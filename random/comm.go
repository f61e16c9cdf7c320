//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

import (
	"encoding/binary"

	"github.com/caspsystems/orq/orqerr"
	"github.com/caspsystems/orq/p2p"
	"github.com/caspsystems/orq/vector"
)

// SendVector frames a vector as length-prefixed 8-byte-per-element
// big-endian data over a p2p.Conn, reusing p2p.Conn.SendData's
// framing (the same wire convention gmw.Network and vole.Sender
// already use for their payloads).
func SendVector[T vector.Integer](conn *p2p.Conn, v vector.Vector[T]) error {
	n := v.Len()
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		binary.BigEndian.PutUint64(buf[i*8:], uint64(v.At(i)))
	}
	if err := conn.SendData(buf); err != nil {
		return orqerr.NewComm(0, err)
	}
	return conn.Flush()
}

// ReceiveVector reads n elements framed by SendVector.
func ReceiveVector[T vector.Integer](conn *p2p.Conn, n int) (vector.Vector[T], error) {
	buf, err := conn.ReceiveData()
	if err != nil {
		return vector.Vector[T]{}, orqerr.NewComm(0, err)
	}
	if len(buf) != n*8 {
		return vector.Vector[T]{}, orqerr.NewIntegrity("received vector has wrong byte length")
	}
	data := make([]T, n)
	for i := 0; i < n; i++ {
		data[i] = T(binary.BigEndian.Uint64(buf[i*8:]))
	}
	return vector.From(data), nil
}
