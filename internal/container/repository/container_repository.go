package repository

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
)

type ContainerRepository struct {
	store         *jsonStore[domain.Container]
	namespaceRepo *NamespaceRepository
	bridgeRepo    *BridgeRepository
	vethRepo      *VethRepository
}

func NewContainerRepository(
	stateDir string,
	namespaceRepo *NamespaceRepository,
	bridgeRepo *BridgeRepository,
	vethRepo *VethRepository,
) (*ContainerRepository, error) {
	store, err := newJSONStore[domain.Container](filepath.Join(stateDir, "containers"), "container")
	if err != nil {
		return nil, err
	}
	return &ContainerRepository{
		store:         store,
		namespaceRepo: namespaceRepo,
		bridgeRepo:    bridgeRepo,
		vethRepo:      vethRepo,
	}, nil
}

// Save stores the container together with its namespace, bridges and veths.
func (cr *ContainerRepository) Save(container *domain.Container) error {
	if err := ensureID(&container.ID); err != nil {
		return err
	}

	if container.Namespace != nil {
		if err := cr.namespaceRepo.Save(container.Namespace); err != nil {
			return fmt.Errorf("save namespace: %w", err)
		}
	}
	for i := range container.Bridges {
		if err := cr.bridgeRepo.Save(&container.Bridges[i]); err != nil {
			return fmt.Errorf("save bridge %s: %w", container.Bridges[i].Name, err)
		}
	}
	for i := range container.Veths {
		if err := cr.vethRepo.Save(&container.Veths[i]); err != nil {
			return fmt.Errorf("save veth %s: %w", container.Veths[i].Name, err)
		}
	}

	return cr.store.put(container.ID, container)
}

func (cr *ContainerRepository) FindByID(containerID string) (*domain.Container, error) {
	return cr.store.get(containerID)
}

func (cr *ContainerRepository) FindByName(name string) (*domain.Container, error) {
	return cr.store.find(func(c *domain.Container) bool { return c.Name == name }, name)
}

// Find matches a container by exact name or by ID prefix.
func (cr *ContainerRepository) Find(target string) (*domain.Container, error) {
	if target == "" {
		return nil, fmt.Errorf("container %q: %w", target, ErrNotFound)
	}
	if c, err := cr.FindByName(target); err == nil {
		return c, nil
	}
	return cr.store.find(func(c *domain.Container) bool { return strings.HasPrefix(c.ID, target) }, target)
}

func (cr *ContainerRepository) List() ([]*domain.Container, error) {
	return cr.store.list()
}

// Delete removes the container record and the records it owns. Records
// already gone are not an error.
func (cr *ContainerRepository) Delete(containerID string) error {
	container, err := cr.FindByID(containerID)
	if err != nil {
		return err
	}

	var errs error
	if container.Namespace != nil {
		errs = multierr.Append(errs, ignoreNotFound(cr.namespaceRepo.Delete(container.Namespace.ID)))
	}
	for _, bridge := range container.Bridges {
		errs = multierr.Append(errs, ignoreNotFound(cr.bridgeRepo.Delete(bridge.ID)))
	}
	for _, veth := range container.Veths {
		errs = multierr.Append(errs, ignoreNotFound(cr.vethRepo.Delete(veth.ID)))
	}
	return multierr.Append(errs, cr.store.remove(containerID))
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
