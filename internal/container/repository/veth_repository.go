package repository

import (
	"fmt"
	"path/filepath"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
)

type VethRepository struct {
	store         *jsonStore[domain.Veth]
	namespaceRepo *NamespaceRepository
}

func NewVethRepository(stateDir string, namespaceRepo *NamespaceRepository) (*VethRepository, error) {
	store, err := newJSONStore[domain.Veth](filepath.Join(stateDir, "veths"), "veth")
	if err != nil {
		return nil, err
	}
	return &VethRepository{store: store, namespaceRepo: namespaceRepo}, nil
}

// Save stores the veth and the namespaces of both ends.
func (vr *VethRepository) Save(veth *domain.Veth) error {
	if err := ensureID(&veth.ID); err != nil {
		return err
	}

	if vr.namespaceRepo != nil {
		for _, ns := range []*domain.Namespace{veth.NamespaceA, veth.NamespaceB} {
			if ns == nil {
				continue
			}
			if err := vr.namespaceRepo.Save(ns); err != nil {
				return fmt.Errorf("save namespace %s: %w", ns.Name, err)
			}
		}
	}

	return vr.store.put(veth.ID, veth)
}

func (vr *VethRepository) FindByID(id string) (*domain.Veth, error) {
	return vr.store.get(id)
}

// FindByName matches either end of the pair.
func (vr *VethRepository) FindByName(name string) (*domain.Veth, error) {
	return vr.store.find(func(v *domain.Veth) bool { return v.Name == name || v.PeerName == name }, name)
}

func (vr *VethRepository) List() ([]*domain.Veth, error) {
	return vr.store.list()
}

// Delete removes the veth record. The end namespaces belong to their
// containers and are kept.
func (vr *VethRepository) Delete(id string) error {
	return vr.store.remove(id)
}
