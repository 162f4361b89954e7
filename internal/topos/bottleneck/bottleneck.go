// Package bottleneck declares two hosts behind a pair of switches whose
// middle link is slow and has a short queue:
//
//	alice --- s1 === s2 --- bob
package bottleneck

import (
	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos/catnip"
)

const (
	BottleneckBW    = 1
	BottleneckQueue = 10
)

var Topos = topology.Registry{catnip.Key: New}

// New builds the topology. Links are of the plain class: their parameters
// are declared but no traffic control is installed for them.
func New() *topology.Topology {
	t := topology.NewTopology()

	alice, bob := catnip.AddHosts(t)
	s1 := t.AddSwitch(catnip.Switch1)
	s2 := t.AddSwitch(catnip.Switch2)

	edge := topology.LinkOptions{
		Class:     topology.ClassLink,
		Bandwidth: catnip.EdgeBW,
		Delay:     catnip.EdgeDelay,
	}
	t.AddLink(alice, s1, edge)
	t.AddLink(s1, s2, topology.LinkOptions{
		Class:        topology.ClassLink,
		Bandwidth:    BottleneckBW,
		Delay:        catnip.EdgeDelay,
		MaxQueueSize: BottleneckQueue,
	})
	t.AddLink(s2, bob, edge)

	return t
}
