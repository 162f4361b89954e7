package topology_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/AidanWoolley/demikernel/internal/topology"
)

func line() *topology.Topology {
	t := topology.NewTopology()
	h1 := t.AddHost("h1", "10.0.0.1/24", "02:00:00:00:00:01")
	h2 := t.AddHost("h2", "10.0.0.2/24", "02:00:00:00:00:02")
	s1 := t.AddSwitch("s1")
	t.AddLink(h1, s1, topology.LinkOptions{})
	t.AddLink(s1, h2, topology.LinkOptions{})
	return t
}

func TestAddNodes(t *testing.T) {
	topo := line()
	require.NoError(t, topo.Validate())

	assert.Equal(t, []string{"h1", "h2", "s1"}, topo.Names())
	assert.Len(t, topo.Hosts(), 2)
	assert.Equal(t, []topology.Node{{Name: "s1", Type: topology.NodeSwitch}}, topo.Switches())

	h1, ok := topo.Node("h1")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1/24", h1.IP)
	assert.Equal(t, "02:00:00:00:00:01", h1.MAC)

	_, ok = topo.Node("h3")
	assert.False(t, ok)

	links := topo.LinksOf("s1")
	require.Len(t, links, 2)
	assert.Equal(t, "h1", links[0].Peer("s1"))
	assert.Equal(t, "h2", links[1].Peer("s1"))
	assert.True(t, links[1].Connects("h2", "s1"))
}

func TestValidate(t *testing.T) {
	testCases := map[string]struct {
		build  func(t *topology.Topology)
		errIs  error
		errors int
	}{
		"duplicate host": {
			build: func(t *topology.Topology) {
				t.AddHost("h1", "10.0.0.9/24", "02:00:00:00:00:09")
			},
			errIs:  topology.ErrDuplicateNode,
			errors: 1,
		},
		"switch shadows host": {
			build: func(t *topology.Topology) {
				t.AddSwitch("h2")
			},
			errIs:  topology.ErrDuplicateNode,
			errors: 1,
		},
		"undeclared link end": {
			build: func(t *topology.Topology) {
				t.AddLink("s1", "s9", topology.LinkOptions{})
			},
			errIs:  topology.ErrUndeclaredNode,
			errors: 1,
		},
		"self loop": {
			build: func(t *topology.Topology) {
				t.AddLink("s1", "s1", topology.LinkOptions{})
			},
			errors: 1,
		},
		"bad address": {
			build: func(t *topology.Topology) {
				t.AddHost("h3", "10.0.0.3", "02:00:00:00:00:03")
			},
			errors: 1,
		},
		"bad mac": {
			build: func(t *topology.Topology) {
				t.AddHost("h3", "10.0.0.3/24", "02:00:00")
			},
			errors: 1,
		},
		"bad delay": {
			build: func(t *topology.Topology) {
				t.AddSwitch("s2")
				t.AddLink("s1", "s2", topology.LinkOptions{Delay: "fast"})
			},
			errors: 1,
		},
		"negative queue": {
			build: func(t *topology.Topology) {
				t.AddSwitch("s2")
				t.AddLink("s1", "s2", topology.LinkOptions{MaxQueueSize: -1})
			},
			errors: 1,
		},
		"unknown class": {
			build: func(t *topology.Topology) {
				t.AddSwitch("s2")
				t.AddLink("s1", "s2", topology.LinkOptions{Class: "OVSLink"})
			},
			errors: 1,
		},
		"link declared twice": {
			build: func(t *topology.Topology) {
				t.AddLink("h2", "s1", topology.LinkOptions{})
			},
			errors: 1,
		},
		"shared address": {
			build: func(t *topology.Topology) {
				t.AddHost("h3", "10.0.0.1/24", "02:00:00:00:00:03")
			},
			errors: 1,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			topo := line()
			tc.build(topo)
			err := topo.Validate()
			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), tc.errors)
			if tc.errIs != nil {
				assert.True(t, errors.Is(err, tc.errIs), "got %v", err)
			}
		})
	}
}

func TestRejectedNodesAreNotKept(t *testing.T) {
	topo := line()
	topo.AddHost("h1", "10.0.0.9/24", "02:00:00:00:00:09")
	topo.AddLink("h1", "nope", topology.LinkOptions{})

	h1, _ := topo.Node("h1")
	assert.Equal(t, "10.0.0.1/24", h1.IP)
	assert.Len(t, topo.Links, 2)
	assert.Len(t, topo.Names(), 3)
}

func TestEqual(t *testing.T) {
	a, b := line(), line()
	assert.True(t, a.Equal(b))

	b.AddSwitch("s2")
	assert.False(t, a.Equal(b))

	var none *topology.Topology
	assert.False(t, a.Equal(none))
	assert.True(t, none.Equal(nil))
}
