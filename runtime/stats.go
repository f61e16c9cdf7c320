//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package runtime

import (
	"io"
	"sort"
	"strconv"

	"github.com/markkurossi/tabulate"
)

// PrintStatistics reports, per tagged protocol invocation, the call
// count and total elapsed wall time recorded by Time.
func (r *Runtime) PrintStatistics(w io.Writer) {
	tab := tabulate.New(tabulate.Github)
	tab.Header("Tag")
	tab.Header("Calls").SetAlign(tabulate.MR)
	tab.Header("Elapsed").SetAlign(tabulate.MR)

	tags := make([]string, 0, len(r.stats))
	for tag := range r.stats {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		e := r.stats[tag]
		row := tab.Row()
		row.Column(tag)
		row.Column(strconv.Itoa(e.calls))
		row.Column(e.elapsed.String())
	}
	tab.Print(w)
}

// PrintCommunicatorStatistics reports, per peer, bytes sent and
// received over that peer's p2p.Conn, the same counters gmw.Network
// would report per connection if it surfaced them.
func (r *Runtime) PrintCommunicatorStatistics(w io.Writer) {
	tab := tabulate.New(tabulate.Github)
	tab.Header("Peer").SetAlign(tabulate.MR)
	tab.Header("Sent").SetAlign(tabulate.MR)
	tab.Header("Received").SetAlign(tabulate.MR)

	peers := make([]int, 0, len(r.Sessions))
	for id := range r.Sessions {
		peers = append(peers, id)
	}
	sort.Ints(peers)

	for _, id := range peers {
		stats := r.Sessions[id].Conn.Stats
		row := tab.Row()
		row.Column(strconv.Itoa(id))
		row.Column(strconv.FormatUint(stats.Sent, 10))
		row.Column(strconv.FormatUint(stats.Recvd, 10))
	}
	tab.Print(w)
}
