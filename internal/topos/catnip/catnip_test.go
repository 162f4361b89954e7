package catnip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos/catnip"
)

func TestAddHosts(t *testing.T) {
	topo := topology.NewTopology()
	alice, bob := catnip.AddHosts(topo)
	require.NoError(t, topo.Validate())

	assert.Equal(t, "alice", alice)
	assert.Equal(t, "bob", bob)
	assert.Equal(t, []topology.Node{
		{Name: "alice", Type: topology.NodeHost, IP: "10.0.0.1/24", MAC: "12:23:45:67:89:A1"},
		{Name: "bob", Type: topology.NodeHost, IP: "10.0.0.2/24", MAC: "12:23:45:67:89:B0"},
	}, topo.Hosts())
}
