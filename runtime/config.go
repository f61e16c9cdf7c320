//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

// Package runtime ties the lower layers together into a running party:
// configuration, communicator bootstrap, the correlation pool per peer,
// and statistics reporting (spec.md section 4.6 and 5).
package runtime

import (
	"crypto/rand"
	"io"
)

// Scheme names the secret-sharing and correlation backend, the same
// choice the original system makes via compile flags. Only the
// two-party additive/XOR scheme is implemented; ReplicatedNPC is a
// name only. New does not read Scheme, so it neither selects a backend
// by it nor rejects ReplicatedNPC.
type Scheme int

const (
	// Additive2PC is the two-party additive/XOR secret-sharing scheme
	// implemented by package protocol.
	Additive2PC Scheme = iota
	// ReplicatedNPC names an n-party replicated-sharing backend not
	// implemented by this module.
	ReplicatedNPC
)

func (s Scheme) String() string {
	switch s {
	case Additive2PC:
		return "additive-2pc"
	case ReplicatedNPC:
		return "replicated-npc"
	default:
		return "unknown"
	}
}

// Config defines a party's global configuration, generalizing the
// teacher's env.Config (a plain struct holding the entropy source,
// safe for concurrent read once constructed and never modified
// afterward) with party topology, batching, and backend selection.
type Config struct {
	// Rand is the entropy source for key material, OT, and sharding.
	// A nil Rand falls back to crypto/rand.Reader, mirroring
	// env.Config.GetRandom.
	Rand io.Reader

	// PartyID is this process's party index; 0 is always the
	// communicator-bootstrap leader.
	PartyID int
	// NumParties is the total party count. Only 2 is supported by
	// the Additive2PC scheme.
	NumParties int

	// Listen is the address this party accepts inbound connections
	// on during Bootstrap. StaticTopology listens on Peers[PartyID]
	// and does not read Listen.
	Listen string
	// Leader is party 0's externally reachable address; every
	// non-leader party dials it first during Bootstrap.
	Leader string
	// Peers is a fixed party-id-indexed address list, used only by
	// StaticTopology; Peers[PartyID] must equal Listen.
	Peers []string

	// BatchSize is the correlation batch a Pool reserves at once.
	BatchSize int
	// Workers is the number of goroutines a Runtime may use to
	// parallelize correlation generation and column scans.
	Workers int

	Scheme  Scheme
	Verbose bool
}

// GetRandom returns the configured entropy source, or crypto/rand.Reader
// if none was set.
func (c *Config) GetRandom() io.Reader {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.Reader
}

const defaultBatchSize = 1 << 16

// getBatchSize returns the configured batch size, or a default.
func (c *Config) getBatchSize() int {
	if c.BatchSize > 0 {
		return c.BatchSize
	}
	return defaultBatchSize
}
