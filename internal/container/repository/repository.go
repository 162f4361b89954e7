package repository

// Repositories holds all repository instances
type Repositories struct {
	NamespaceRepo *NamespaceRepository
	BridgeRepo    *BridgeRepository
	VethRepo      *VethRepository
	ContainerRepo *ContainerRepository
	TopologyRepo  *TopologyRepository
}

// InitializeRepositories creates the repositories under stateDir in order of
// their dependencies.
func InitializeRepositories(stateDir string) (*Repositories, error) {
	namespaceRepo, err := NewNamespaceRepository(stateDir)
	if err != nil {
		return nil, err
	}
	vethRepo, err := NewVethRepository(stateDir, namespaceRepo)
	if err != nil {
		return nil, err
	}
	bridgeRepo, err := NewBridgeRepository(stateDir)
	if err != nil {
		return nil, err
	}
	containerRepo, err := NewContainerRepository(stateDir, namespaceRepo, bridgeRepo, vethRepo)
	if err != nil {
		return nil, err
	}
	topologyRepo, err := NewTopologyRepository(stateDir)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		NamespaceRepo: namespaceRepo,
		BridgeRepo:    bridgeRepo,
		VethRepo:      vethRepo,
		ContainerRepo: containerRepo,
		TopologyRepo:  topologyRepo,
	}, nil
}
