//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package runtime

import (
	"fmt"
	"net"
	"sort"
	"sync"

	"github.com/caspsystems/orq/p2p"
)

// peerAddr pairs a party id with its dial address, the bootstrap
// handshake's wire payload - the same (id, addr) pair gmw.Network's
// leader fans out to every connected peer.
type peerAddr struct {
	id   int
	addr string
}

// Bootstrap discovers peer addresses dynamically and returns one
// p2p.Conn per other party, keyed by party id: party 0 (the leader)
// listens on cfg.Listen and accepts cfg.NumParties-1 inbound
// connections, records each peer's self-reported id and address, then
// sends every peer the full peer list so a complete mesh of pairwise
// connections can be dialed. This is gmw.Network's runLeader/runPeer
// handshake with the GMW circuit-evaluation body removed - only the
// connection bootstrap survives.
func Bootstrap(cfg *Config) (map[int]*p2p.Conn, error) {
	if cfg.PartyID == 0 {
		return bootstrapLeader(cfg)
	}
	return bootstrapPeer(cfg)
}

func bootstrapLeader(cfg *Config) (map[int]*p2p.Conn, error) {
	l, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	conns := make(map[int]*p2p.Conn)
	addrs := []peerAddr{{id: 0, addr: cfg.Listen}}

	for len(conns) < cfg.NumParties-1 {
		nc, err := l.Accept()
		if err != nil {
			return nil, err
		}
		conn := p2p.NewConn(nc)
		id, err := conn.ReceiveUint32()
		if err != nil {
			conn.Close()
			return nil, err
		}
		addr, err := conn.ReceiveString()
		if err != nil {
			conn.Close()
			return nil, err
		}
		if _, exists := conns[id]; exists {
			conn.Close()
			return nil, fmt.Errorf("runtime: peer %d already connected", id)
		}
		conns[id] = conn
		addrs = append(addrs, peerAddr{id: id, addr: addr})
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].id < addrs[j].id })

	// Fan out every other peer's (id, addr) to each connected peer.
	for id, conn := range conns {
		others := make([]peerAddr, 0, len(addrs)-2)
		for _, a := range addrs {
			if a.id == id || a.id == 0 {
				continue
			}
			others = append(others, a)
		}
		if err := conn.SendUint32(len(others)); err != nil {
			return nil, err
		}
		for _, a := range others {
			if err := conn.SendUint32(a.id); err != nil {
				return nil, err
			}
			if err := conn.SendString(a.addr); err != nil {
				return nil, err
			}
		}
		if err := conn.Flush(); err != nil {
			return nil, err
		}
	}
	return conns, nil
}

func bootstrapPeer(cfg *Config) (map[int]*p2p.Conn, error) {
	l, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	nc, err := net.Dial("tcp", cfg.Leader)
	if err != nil {
		return nil, err
	}
	leaderConn := p2p.NewConn(nc)

	if err := leaderConn.SendUint32(cfg.PartyID); err != nil {
		return nil, err
	}
	if err := leaderConn.SendString(cfg.Listen); err != nil {
		return nil, err
	}
	if err := leaderConn.Flush(); err != nil {
		return nil, err
	}

	n, err := leaderConn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	others := make([]peerAddr, n)
	for i := 0; i < n; i++ {
		id, err := leaderConn.ReceiveUint32()
		if err != nil {
			return nil, err
		}
		addr, err := leaderConn.ReceiveString()
		if err != nil {
			return nil, err
		}
		others[i] = peerAddr{id: id, addr: addr}
	}

	conns := map[int]*p2p.Conn{0: leaderConn}
	var m sync.Mutex
	var wg sync.WaitGroup
	errc := make(chan error, len(others))

	for _, peer := range others {
		peer := peer
		wg.Add(1)
		go func() {
			defer wg.Done()
			var conn *p2p.Conn
			if cfg.PartyID < peer.id {
				nc, derr := net.Dial("tcp", peer.addr)
				if derr != nil {
					errc <- derr
					return
				}
				conn = p2p.NewConn(nc)
			} else {
				nc, aerr := l.Accept()
				if aerr != nil {
					errc <- aerr
					return
				}
				conn = p2p.NewConn(nc)
			}
			m.Lock()
			conns[peer.id] = conn
			m.Unlock()
		}()
	}
	wg.Wait()
	close(errc)
	for err := range errc {
		if err != nil {
			return nil, err
		}
	}
	return conns, nil
}

// StaticTopology connects a fixed, pre-agreed hostname:port list
// (cfg.Peers, indexed by party id) without the leader fan-out
// handshake: every party listens on its own entry, dials every higher
// party id and accepts from every lower one, the same ordering rule
// Bootstrap uses to avoid both sides dialing simultaneously.
func StaticTopology(cfg *Config) (map[int]*p2p.Conn, error) {
	if cfg.PartyID < 0 || cfg.PartyID >= len(cfg.Peers) {
		return nil, fmt.Errorf("runtime: party id %d out of range for %d peers", cfg.PartyID, len(cfg.Peers))
	}
	l, err := net.Listen("tcp", cfg.Peers[cfg.PartyID])
	if err != nil {
		return nil, err
	}
	defer l.Close()

	conns := make(map[int]*p2p.Conn)
	for id, addr := range cfg.Peers {
		if id == cfg.PartyID {
			continue
		}
		if cfg.PartyID < id {
			nc, err := net.Dial("tcp", addr)
			if err != nil {
				return nil, err
			}
			conns[id] = p2p.NewConn(nc)
		} else {
			nc, err := l.Accept()
			if err != nil {
				return nil, err
			}
			conns[id] = p2p.NewConn(nc)
		}
	}
	return conns, nil
}
