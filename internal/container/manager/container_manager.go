package manager

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
	"github.com/AidanWoolley/demikernel/internal/container/repository"
)

type ContainerManager struct {
	containerRepo *repository.ContainerRepository
	topologyRepo  *repository.TopologyRepository
	logger        *zap.Logger
}

func NewContainerManager(repos *repository.Repositories, logger *zap.Logger) *ContainerManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContainerManager{
		containerRepo: repos.ContainerRepo,
		topologyRepo:  repos.TopologyRepo,
		logger:        logger,
	}
}

// CreateContainer creates a new container with its namespace
func (cm *ContainerManager) CreateContainer(name string, kind domain.Kind) (*domain.Container, error) {
	if existing, err := cm.containerRepo.FindByName(name); err == nil {
		return nil, fmt.Errorf("container %s already exists (ID %s)", name, existing.ID)
	}

	container, err := domain.CreateWithNamespace(name, kind)
	if err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}

	if err := cm.containerRepo.Save(container); err != nil {
		return nil, fmt.Errorf("save container: %w", err)
	}

	cm.logger.Debug("Container created",
		zap.String("name", name), zap.String("id", container.ID), zap.String("kind", string(kind)))
	return container, nil
}

// ListContainers lists all containers
func (cm *ContainerManager) ListContainers() ([]*domain.Container, error) {
	containers, err := cm.containerRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return containers, nil
}

// FindContainer looks a container up by name or ID prefix.
func (cm *ContainerManager) FindContainer(target string) (*domain.Container, error) {
	return cm.containerRepo.Find(target)
}

// Save persists changes made to a container.
func (cm *ContainerManager) Save(container *domain.Container) error {
	if err := cm.containerRepo.Save(container); err != nil {
		return fmt.Errorf("save container %s: %w", container.Name, err)
	}
	return nil
}

// AttachContainer attaches to a container shell
func (cm *ContainerManager) AttachContainer(container *domain.Container) error {
	if err := container.AttachShell(); err != nil {
		return fmt.Errorf("attach to container: %w", err)
	}
	return nil
}

// ExecCommand executes a command in container
func (cm *ContainerManager) ExecCommand(container *domain.Container, cmd []string) error {
	cm.logger.Info("Executing", zap.String("container", container.Name), zap.String("cmd", strings.Join(cmd, " ")))

	if err := container.Exec(cmd); err != nil {
		return fmt.Errorf("exec command: %w", err)
	}
	return nil
}

// DeleteContainer removes a container and its resources. Kernel objects are
// removed best effort; the metadata is removed regardless.
func (cm *ContainerManager) DeleteContainer(container *domain.Container) error {
	cm.logger.Info("Deleting container", zap.String("name", container.Name), zap.String("id", container.ID))

	// Veths and bridges go before the namespace holding them
	for _, veth := range container.Veths {
		if err := veth.Delete(); err != nil {
			cm.logger.Warn("Failed to delete veth", zap.String("veth", veth.Name), zap.Error(err))
		}
	}
	for _, bridge := range container.Bridges {
		if err := bridge.Delete(); err != nil {
			cm.logger.Warn("Failed to delete bridge", zap.String("bridge", bridge.Name), zap.Error(err))
		}
	}
	if container.Namespace != nil {
		if err := container.Namespace.Delete(); err != nil {
			cm.logger.Warn("Failed to delete namespace", zap.String("namespace", container.Namespace.Name), zap.Error(err))
		}
	}

	if err := cm.containerRepo.Delete(container.ID); err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	return nil
}

// Cleanup deletes every container and forgets the built topology. It keeps
// going after a failure and returns all of them.
func (cm *ContainerManager) Cleanup() (int, error) {
	containers, err := cm.ListContainers()
	if err != nil {
		return 0, err
	}

	var errs error
	deleted := 0
	for _, container := range containers {
		if err := cm.DeleteContainer(container); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", container.Name, err))
			continue
		}
		deleted++
	}
	return deleted, multierr.Append(errs, cm.topologyRepo.Delete())
}

// CreateBridgeToContainer adds a bridge to an existing container
func (cm *ContainerManager) CreateBridgeToContainer(container *domain.Container, name string) (*domain.Bridge, error) {
	bridge, err := container.AddBridge(name)
	if err != nil {
		return nil, fmt.Errorf("add bridge: %w", err)
	}

	if err := cm.containerRepo.Save(container); err != nil {
		return nil, fmt.Errorf("save container: %w", err)
	}
	return bridge, nil
}
