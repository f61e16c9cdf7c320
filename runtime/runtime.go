//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package runtime

import (
	"fmt"
	"time"

	"github.com/caspsystems/orq/p2p"
	"github.com/caspsystems/orq/protocol"
	"github.com/caspsystems/orq/random"
)

// Runtime is one party's live process: its configuration, one
// two-party protocol.Session per other party (each with its own
// correlation Pool, since correlations are always pairwise even in a
// setup with more than two parties), and accumulated statistics.
type Runtime struct {
	Config   *Config
	Sessions map[int]*protocol.Session
	Verbose  bool

	stats map[string]*stat
}

type stat struct {
	calls   int
	elapsed time.Duration
}

// New builds a Runtime from a party's bootstrap connections, one
// correlation Pool and protocol.Session per peer id.
func New(cfg *Config, conns map[int]*p2p.Conn) *Runtime {
	sessions := make(map[int]*protocol.Session, len(conns))
	for id, conn := range conns {
		pool := random.NewPool()
		sessions[id] = protocol.NewSession(cfg.PartyID, conn, pool)
	}
	return &Runtime{
		Config:   cfg,
		Sessions: sessions,
		Verbose:  cfg.Verbose,
		stats:    make(map[string]*stat),
	}
}

// Session returns the two-party session shared with peer id.
func (r *Runtime) Session(peer int) (*protocol.Session, error) {
	s, ok := r.Sessions[peer]
	if !ok {
		return nil, fmt.Errorf("runtime: no session with peer %d", peer)
	}
	return s, nil
}

// Debugf prints a debug message when Verbose is set, mirroring the
// teacher's bmr.Player.Debugf: plain fmt.Printf gated by a boolean
// flag rather than a leveled logger.
func (r *Runtime) Debugf(format string, args ...any) {
	if !r.Verbose {
		return
	}
	fmt.Printf(format, args...)
}

// Time runs fn, recording its elapsed wall time under tag for later
// reporting via PrintStatistics. Tags accumulate across repeated
// calls, e.g. one tag per protocol operator name.
func (r *Runtime) Time(tag string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	e, ok := r.stats[tag]
	if !ok {
		e = &stat{}
		r.stats[tag] = e
	}
	e.calls++
	e.elapsed += elapsed
	return err
}

// Close shuts down every peer connection.
func (r *Runtime) Close() error {
	var first error
	for _, s := range r.Sessions {
		if err := s.Conn.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
