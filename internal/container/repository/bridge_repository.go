package repository

import (
	"path/filepath"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
)

type BridgeRepository struct {
	store *jsonStore[domain.Bridge]
}

func NewBridgeRepository(stateDir string) (*BridgeRepository, error) {
	store, err := newJSONStore[domain.Bridge](filepath.Join(stateDir, "bridges"), "bridge")
	if err != nil {
		return nil, err
	}
	return &BridgeRepository{store: store}, nil
}

func (br *BridgeRepository) Save(bridge *domain.Bridge) error {
	if err := ensureID(&bridge.ID); err != nil {
		return err
	}
	return br.store.put(bridge.ID, bridge)
}

func (br *BridgeRepository) FindByID(id string) (*domain.Bridge, error) {
	return br.store.get(id)
}

func (br *BridgeRepository) FindByName(name string) (*domain.Bridge, error) {
	return br.store.find(func(b *domain.Bridge) bool { return b.Name == name }, name)
}

// FindByNamespace returns the bridges living in the named namespace.
func (br *BridgeRepository) FindByNamespace(namespace string) ([]*domain.Bridge, error) {
	all, err := br.store.list()
	if err != nil {
		return nil, err
	}
	var bridges []*domain.Bridge
	for _, b := range all {
		if b.Namespace != nil && b.Namespace.Name == namespace {
			bridges = append(bridges, b)
		}
	}
	return bridges, nil
}

func (br *BridgeRepository) List() ([]*domain.Bridge, error) {
	return br.store.list()
}

func (br *BridgeRepository) Delete(id string) error {
	return br.store.remove(id)
}
