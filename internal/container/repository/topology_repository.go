package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AidanWoolley/demikernel/internal/topology"
)

const topologyFile = "topology.yaml"

// TopologyRepository keeps the description of the last built topology.
type TopologyRepository struct {
	path string
}

func NewTopologyRepository(stateDir string) (*TopologyRepository, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &TopologyRepository{path: filepath.Join(stateDir, topologyFile)}, nil
}

func (tr *TopologyRepository) Save(name string, t *topology.Topology) error {
	return topology.WriteToFile(t, name, tr.path)
}

// Load returns the saved topology and the name it was built under.
func (tr *TopologyRepository) Load() (*topology.Topology, string, error) {
	t, name, err := topology.ReadFromFile(tr.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("topology: %w", ErrNotFound)
	}
	return t, name, err
}

func (tr *TopologyRepository) Delete() error {
	err := os.Remove(tr.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
