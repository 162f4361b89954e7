package repository

import (
	"path/filepath"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
)

type NamespaceRepository struct {
	store *jsonStore[domain.Namespace]
}

func NewNamespaceRepository(stateDir string) (*NamespaceRepository, error) {
	store, err := newJSONStore[domain.Namespace](filepath.Join(stateDir, "namespaces"), "namespace")
	if err != nil {
		return nil, err
	}
	return &NamespaceRepository{store: store}, nil
}

func (nr *NamespaceRepository) Save(namespace *domain.Namespace) error {
	if err := ensureID(&namespace.ID); err != nil {
		return err
	}
	return nr.store.put(namespace.ID, namespace)
}

func (nr *NamespaceRepository) FindByID(id string) (*domain.Namespace, error) {
	return nr.store.get(id)
}

func (nr *NamespaceRepository) FindByName(name string) (*domain.Namespace, error) {
	return nr.store.find(func(ns *domain.Namespace) bool { return ns.Name == name }, name)
}

func (nr *NamespaceRepository) List() ([]*domain.Namespace, error) {
	return nr.store.list()
}

func (nr *NamespaceRepository) Delete(id string) error {
	return nr.store.remove(id)
}
