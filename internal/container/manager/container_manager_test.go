package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
	"github.com/AidanWoolley/demikernel/internal/container/manager"
	"github.com/AidanWoolley/demikernel/internal/container/repository"
	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos/plain"
)

func newManager(t *testing.T) (*manager.ContainerManager, *repository.Repositories) {
	repos, err := repository.InitializeRepositories(t.TempDir())
	require.NoError(t, err)
	return manager.NewContainerManager(repos, zaptest.NewLogger(t)), repos
}

// record stores a container without touching the kernel.
func record(t *testing.T, repos *repository.Repositories, name string, kind domain.Kind) *domain.Container {
	c := domain.NewContainer(name, kind)
	require.NoError(t, repos.ContainerRepo.Save(c))
	return c
}

func TestFindAndList(t *testing.T) {
	cm, repos := newManager(t)
	alice := record(t, repos, "alice", domain.KindHost)
	record(t, repos, "s1", domain.KindSwitch)

	containers, err := cm.ListContainers()
	require.NoError(t, err)
	assert.Len(t, containers, 2)

	got, err := cm.FindContainer(alice.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)

	_, err = cm.FindContainer("bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateContainerRejectsDuplicateName(t *testing.T) {
	cm, repos := newManager(t)
	record(t, repos, "alice", domain.KindHost)

	_, err := cm.CreateContainer("alice", domain.KindHost)
	assert.ErrorContains(t, err, "already exists")
}

func TestContainerWithoutNamespace(t *testing.T) {
	cm, repos := newManager(t)
	c := record(t, repos, "alice", domain.KindHost)

	assert.ErrorIs(t, cm.ExecCommand(c, []string{"true"}), domain.ErrNoNamespace)
	assert.ErrorIs(t, cm.AttachContainer(c), domain.ErrNoNamespace)
	_, err := cm.CreateBridgeToContainer(c, "alice-br0")
	assert.ErrorIs(t, err, domain.ErrNoNamespace)
}

func TestCleanup(t *testing.T) {
	cm, repos := newManager(t)
	record(t, repos, "alice", domain.KindHost)
	record(t, repos, "bob", domain.KindHost)
	require.NoError(t, repos.TopologyRepo.Save("plain/catniptopo", plain.New()))

	deleted, err := cm.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	containers, err := cm.ListContainers()
	require.NoError(t, err)
	assert.Empty(t, containers)
	_, _, err = repos.TopologyRepo.Load()
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err = cm.Cleanup()
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestFabricLinkNeedsNodes(t *testing.T) {
	cm, _ := newManager(t)
	fabric := manager.NewFabric(cm)

	err := fabric.CreateLink(context.Background(),
		topology.Endpoint{Node: "alice", Intf: "alice-eth0"},
		topology.Endpoint{Node: "s1", Intf: "s1-eth0"},
		nil,
	)
	assert.ErrorContains(t, err, "missing container")
}
