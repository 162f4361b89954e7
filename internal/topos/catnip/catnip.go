// Package catnip holds the endpoints shared by the catnip test topologies:
// the alice and bob hosts that run the catnip test programs.
package catnip

import "github.com/AidanWoolley/demikernel/internal/topology"

// Key is the name every catnip topology is registered under.
const Key = "catniptopo"

const (
	Alice     = "alice"
	AliceIP   = "10.0.0.1/24"
	AliceMAC  = "12:23:45:67:89:A1"
	Bob       = "bob"
	BobIP     = "10.0.0.2/24"
	BobMAC    = "12:23:45:67:89:B0"
	Switch1   = "s1"
	Switch2   = "s2"
	EdgeBW    = 10
	EdgeDelay = "50ms"
)

// AddHosts declares alice and bob on t and returns their names.
func AddHosts(t *topology.Topology) (alice, bob string) {
	alice = t.AddHost(Alice, AliceIP, AliceMAC)
	bob = t.AddHost(Bob, BobIP, BobMAC)
	return alice, bob
}
