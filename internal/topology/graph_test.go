package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AidanWoolley/demikernel/internal/topology"
)

func TestGraph(t *testing.T) {
	testCases := map[string]struct {
		build     func() *topology.Topology
		connected bool
		line      bool
	}{
		"line": {
			build:     line,
			connected: true,
			line:      true,
		},
		"empty": {
			build: topology.NewTopology,
		},
		"disconnected": {
			build: func() *topology.Topology {
				topo := line()
				topo.AddSwitch("s2")
				return topo
			},
		},
		"star": {
			build: func() *topology.Topology {
				topo := line()
				h3 := topo.AddHost("h3", "10.0.0.3/24", "02:00:00:00:00:03")
				topo.AddLink(h3, "s1", topology.LinkOptions{})
				return topo
			},
			connected: true,
		},
		"switch at the end": {
			build: func() *topology.Topology {
				topo := topology.NewTopology()
				h1 := topo.AddHost("h1", "10.0.0.1/24", "02:00:00:00:00:01")
				s1 := topo.AddSwitch("s1")
				topo.AddLink(h1, s1, topology.LinkOptions{})
				return topo
			},
			connected: true,
		},
		"ring": {
			build: func() *topology.Topology {
				topo := line()
				topo.AddLink("h1", "h2", topology.LinkOptions{})
				return topo
			},
			connected: true,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			topo := tc.build()
			assert.Equal(t, tc.connected, topo.Connected())
			assert.Equal(t, tc.line, topo.IsLine())
		})
	}
}

func TestPath(t *testing.T) {
	topo := line()
	assert.Equal(t, []string{"h1", "s1", "h2"}, topo.Path("h1", "h2"))
	assert.Equal(t, []string{"s1"}, topo.Path("s1", "s1"))
	assert.Nil(t, topo.Path("h1", "h9"))

	topo.AddSwitch("s2")
	assert.Nil(t, topo.Path("h1", "s2"))
}
