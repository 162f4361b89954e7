// Package plain declares two hosts behind one switch with default links.
package plain

import (
	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos/catnip"
)

var Topos = topology.Registry{catnip.Key: New}

func New() *topology.Topology {
	t := topology.NewTopology()

	alice, bob := catnip.AddHosts(t)
	s1 := t.AddSwitch(catnip.Switch1)

	t.AddLink(alice, s1, topology.LinkOptions{})
	t.AddLink(s1, bob, topology.LinkOptions{})

	return t
}
