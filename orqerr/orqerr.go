//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package orqerr defines the four error kinds that the ORQ core can
// raise. Every protocol, operator, and correlation generator fails
// fast with one of these; none is recovered locally (spec.md section
// 7).
package orqerr

import "fmt"

// Shape reports a size, precision, or encoding mismatch. It is always
// a caller bug and is never retried.
type Shape struct {
	Op     string
	Reason string
}

func (e *Shape) Error() string {
	return fmt.Sprintf("orq: invalid shape in %s: %s", e.Op, e.Reason)
}

// NewShape constructs a Shape error for the named operation.
func NewShape(op, reason string) error {
	return &Shape{Op: op, Reason: reason}
}

// Shapef constructs a Shape error with a formatted reason.
func Shapef(op, format string, args ...any) error {
	return &Shape{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// Exhausted reports that a protocol asked for more correlations
// (triples, permutations, OLE pairs) than a pool holds. The caller
// must reserve more ahead of time.
type Exhausted struct {
	Correlation string
	Requested   int
	Available   int
}

func (e *Exhausted) Error() string {
	return fmt.Sprintf("orq: %s pool exhausted: requested %d, have %d",
		e.Correlation, e.Requested, e.Available)
}

// NewExhausted constructs an Exhausted error.
func NewExhausted(correlation string, requested, available int) error {
	return &Exhausted{
		Correlation: correlation,
		Requested:   requested,
		Available:   available,
	}
}

// Comm reports a peer disconnect, socket error, or transport abort.
// It terminates the session for all worker threads; it is not
// retried.
type Comm struct {
	Peer int
	Err  error
}

func (e *Comm) Error() string {
	return fmt.Sprintf("orq: communication with peer %d failed: %v", e.Peer, e.Err)
}

// Unwrap allows errors.Is/errors.As to see through to the underlying
// transport error.
func (e *Comm) Unwrap() error {
	return e.Err
}

// NewComm constructs a Comm error.
func NewComm(peer int, err error) error {
	return &Comm{Peer: peer, Err: err}
}

// Integrity reports that the end-of-session MAC verification pass
// (malicious_check) found a mismatch. No partial result is returned.
type Integrity struct {
	Reason string
}

func (e *Integrity) Error() string {
	return fmt.Sprintf("orq: integrity check failed: %s", e.Reason)
}

// NewIntegrity constructs an Integrity error.
func NewIntegrity(reason string) error {
	return &Integrity{Reason: reason}
}
