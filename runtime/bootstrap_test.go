//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package runtime

import (
	"net"
	"testing"
)

// freeAddr asks the OS for an unused loopback port, the same trick
// the teacher's gmw/p2p tests would need for a real listener (no
// fixed port can be hardcoded in a test).
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("freeAddr: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func TestBootstrapTwoParties(t *testing.T) {
	leaderAddr := freeAddr(t)
	peerAddr := freeAddr(t)

	leaderCfg := &Config{PartyID: 0, NumParties: 2, Listen: leaderAddr}
	peerCfg := &Config{PartyID: 1, NumParties: 2, Listen: peerAddr, Leader: leaderAddr}

	leaderDone := make(chan error, 1)

	go func() {
		conns, err := Bootstrap(leaderCfg)
		if err != nil {
			leaderDone <- err
			return
		}
		if len(conns) != 1 {
			t.Errorf("leader: got %d peer conns, want 1", len(conns))
		}
		if _, ok := conns[1]; !ok {
			t.Errorf("leader: missing conn to peer 1")
		}
		for _, c := range conns {
			c.Close()
		}
		leaderDone <- nil
	}()

	conns, err := Bootstrap(peerCfg)
	if err != nil {
		t.Fatalf("peer Bootstrap: %v", err)
	}
	if len(conns) != 1 {
		t.Fatalf("peer: got %d peer conns, want 1", len(conns))
	}
	if _, ok := conns[0]; !ok {
		t.Fatalf("peer: missing conn to leader")
	}
	for _, c := range conns {
		c.Close()
	}

	if err := <-leaderDone; err != nil {
		t.Fatalf("leader Bootstrap: %v", err)
	}
}

func TestStaticTopologyTwoParties(t *testing.T) {
	addr0 := freeAddr(t)
	addr1 := freeAddr(t)
	peers := []string{addr0, addr1}

	cfg0 := &Config{PartyID: 0, NumParties: 2, Peers: peers}
	cfg1 := &Config{PartyID: 1, NumParties: 2, Peers: peers}

	done := make(chan error, 1)
	go func() {
		conns, err := StaticTopology(cfg1)
		if err != nil {
			done <- err
			return
		}
		for _, c := range conns {
			c.Close()
		}
		done <- nil
	}()

	conns, err := StaticTopology(cfg0)
	if err != nil {
		t.Fatalf("StaticTopology(cfg0): %v", err)
	}
	if _, ok := conns[1]; !ok {
		t.Fatalf("party 0: missing conn to party 1")
	}
	for _, c := range conns {
		c.Close()
	}
	if err := <-done; err != nil {
		t.Fatalf("StaticTopology(cfg1): %v", err)
	}
}
