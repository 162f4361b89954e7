package topology_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AidanWoolley/demikernel/internal/topology"
)

func shapedLine() *topology.Topology {
	topo := line()
	topo.AddSwitch("s2")
	topo.AddLink("s1", "s2", topology.LinkOptions{
		Class:        topology.ClassTCLink,
		Bandwidth:    1,
		Delay:        "50ms",
		MaxQueueSize: 10,
	})
	return topo
}

func TestTransform(t *testing.T) {
	want := topology.Desc{
		Hosts: []topology.HostDesc{
			{Name: "h1", IP: "10.0.0.1/24", MAC: "02:00:00:00:00:01"},
			{Name: "h2", IP: "10.0.0.2/24", MAC: "02:00:00:00:00:02"},
		},
		Switches: []string{"s1", "s2"},
		Links: []topology.LinkDesc{
			{A: "h1", B: "s1"},
			{A: "s1", B: "h2"},
			{A: "s1", B: "s2", Class: topology.ClassTCLink, Bandwidth: 1, Delay: "50ms", MaxQueueSize: 10},
		},
	}
	if diff := cmp.Diff(want, shapedLine().Transform()); diff != "" {
		t.Errorf("Transform() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDescYAML(t *testing.T) {
	raw := []byte(`
name: catniptopo
hosts:
  - {name: alice, ip: 10.0.0.1/24, mac: "12:23:45:67:89:A1"}
  - {name: bob, ip: 10.0.0.2/24, mac: "12:23:45:67:89:B0"}
switches: [s1]
links:
  - {a: alice, b: s1, cls: TCLink, bw: 10, delay: 50ms}
  - {a: s1, b: bob, cls: TCLink, bw: 10, delay: 50ms}
`)
	desc, err := topology.ReadDesc("", true, raw)
	require.NoError(t, err)
	assert.Equal(t, "catniptopo", desc.Name)

	topo, err := desc.Topology()
	require.NoError(t, err)
	assert.True(t, topo.IsLine())
	assert.Equal(t, 10.0, topo.Links[1].Options.Bandwidth)
	assert.Equal(t, "50ms", topo.Links[1].Options.Delay)
}

func TestDescTopologyInvalid(t *testing.T) {
	desc := topology.Desc{
		Switches: []string{"s1"},
		Links:    []topology.LinkDesc{{A: "s1", B: "h1"}},
	}
	_, err := desc.Topology()
	assert.ErrorIs(t, err, topology.ErrUndeclaredNode)
}

func TestWriteReadFile(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "topo"+ext)
			require.NoError(t, topology.WriteToFile(shapedLine(), "mytopo", filename))

			topo, name, err := topology.ReadFromFile(filename)
			require.NoError(t, err)
			assert.Equal(t, "mytopo", name)
			assert.True(t, topo.Equal(shapedLine()))
		})
	}
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()

	err := topology.WriteToFile(line(), "x", filepath.Join(dir, "topo.txt"))
	assert.Error(t, err)

	_, _, err = topology.ReadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{"), 0o644))
	_, _, err = topology.ReadFromFile(garbage)
	assert.Error(t, err)
}
