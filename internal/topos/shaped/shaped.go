// Package shaped declares two hosts behind one switch with traffic-shaped
// links:
//
//	alice --- s1 --- bob
package shaped

import (
	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos/catnip"
)

// Topos lets the command line select this topology with --topo=catniptopo.
var Topos = topology.Registry{catnip.Key: New}

func New() *topology.Topology {
	t := topology.NewTopology()

	alice, bob := catnip.AddHosts(t)
	s1 := t.AddSwitch(catnip.Switch1)

	edge := topology.LinkOptions{
		Class:     topology.ClassTCLink,
		Bandwidth: catnip.EdgeBW,
		Delay:     catnip.EdgeDelay,
	}
	t.AddLink(alice, s1, edge)
	t.AddLink(s1, bob, edge)

	return t
}
