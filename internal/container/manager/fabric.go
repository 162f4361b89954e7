package manager

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
	"github.com/AidanWoolley/demikernel/internal/topology"
)

// Fabric realizes a topology with containers: every node is a network
// namespace, every switch holds a bridge and every link is a veth pair.
type Fabric struct {
	cm         *ContainerManager
	containers map[string]*domain.Container
}

var _ topology.Fabric = (*Fabric)(nil)

func NewFabric(cm *ContainerManager) *Fabric {
	return &Fabric{
		cm:         cm,
		containers: map[string]*domain.Container{},
	}
}

func bridgeName(node string) string {
	return node + "-br0"
}

func (f *Fabric) CreateNode(_ context.Context, node topology.Node) error {
	kind := domain.KindHost
	if node.Type == topology.NodeSwitch {
		kind = domain.KindSwitch
	}

	container, err := f.cm.CreateContainer(node.Name, kind)
	if err != nil {
		return err
	}
	f.containers[node.Name] = container

	if kind == domain.KindSwitch {
		bridge, err := f.cm.CreateBridgeToContainer(container, bridgeName(node.Name))
		if err != nil {
			return fmt.Errorf("create bridge: %w", err)
		}
		f.cm.logger.Debug("Switch bridge up", zap.String("switch", node.Name), zap.String("bridge", bridge.Name))
	}
	return nil
}

func (f *Fabric) CreateLink(_ context.Context, a, b topology.Endpoint, shaping *topology.Shaping) error {
	containerA := f.containers[a.Node]
	containerB := f.containers[b.Node]
	if containerA == nil || containerB == nil {
		return fmt.Errorf("missing container for link %s-%s", a.Node, b.Node)
	}

	veth, err := containerA.Connect(containerB, a.Intf, b.Intf)
	if err != nil {
		return err
	}
	if err := f.cm.Save(containerA); err != nil {
		return err
	}
	if err := f.cm.Save(containerB); err != nil {
		return err
	}

	for _, end := range []struct {
		ep        topology.Endpoint
		container *domain.Container
	}{{a, containerA}, {b, containerB}} {
		if err := f.configure(veth, end.container, end.ep); err != nil {
			return err
		}
		if shaping == nil {
			continue
		}
		tc := domain.TrafficControl{
			Bandwidth:    shaping.Bandwidth,
			Delay:        shaping.Delay,
			MaxQueueSize: shaping.MaxQueueSize,
		}
		if err := veth.Shape(end.ep.Intf, tc); err != nil {
			return fmt.Errorf("shape %s: %w", end.ep.Intf, err)
		}
	}
	return nil
}

// configure enslaves switch ends to the bridge and addresses host ends.
func (f *Fabric) configure(veth *domain.Veth, container *domain.Container, ep topology.Endpoint) error {
	if ep.Type == topology.NodeSwitch {
		for i := range container.Bridges {
			if err := container.Bridges[i].AttachInterfaceByName(ep.Intf); err != nil {
				return fmt.Errorf("attach %s to bridge: %w", ep.Intf, err)
			}
		}
		return f.cm.Save(container)
	}

	if err := veth.Configure(ep.Intf, ep.MAC, ep.IP); err != nil {
		return fmt.Errorf("configure %s: %w", ep.Intf, err)
	}
	if ep.IP != "" {
		f.cm.logger.Info("Address assigned",
			zap.String("node", ep.Node), zap.String("intf", ep.Intf),
			zap.String("ip", ep.IP), zap.String("mac", ep.MAC))
	}
	return nil
}
