package topology

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Endpoint is one side of a link as it is realized on a node.
type Endpoint struct {
	Node string
	Type NodeType
	Intf string
	// IP and MAC are set on the first interface of a host only.
	IP  string
	MAC string
}

// Fabric realizes nodes and links, e.g. as network namespaces joined by veth
// pairs.
type Fabric interface {
	CreateNode(ctx context.Context, node Node) error
	// CreateLink connects a and b. A nil shaping leaves the link unshaped.
	CreateLink(ctx context.Context, a, b Endpoint, shaping *Shaping) error
}

type Builder struct {
	fabric Fabric
	logger *zap.Logger
}

func NewBuilder(fabric Fabric, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		fabric: fabric,
		logger: logger,
	}
}

// Build creates every node of t and then every link, both in declaration
// order. It stops at the first failure.
func (b *Builder) Build(ctx context.Context, t *Topology) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid topology: %w", err)
	}

	for _, name := range t.order {
		if err := ctx.Err(); err != nil {
			return err
		}
		node := t.Nodes[name]
		b.logger.Info("Creating node", zap.String("node", name), zap.String("type", string(node.Type)))
		if err := b.fabric.CreateNode(ctx, node); err != nil {
			return fmt.Errorf("build node %s: %w", name, err)
		}
	}

	intfs := map[string]int{}
	for _, link := range t.Links {
		if err := ctx.Err(); err != nil {
			return err
		}
		a := b.endpoint(t, intfs, link.NodeA)
		z := b.endpoint(t, intfs, link.NodeB)
		shaping := link.Options.Shaping()
		if shaping == nil && link.Options.Class != ClassTCLink && hasShapingParams(link.Options) {
			b.logger.Warn("Link class does not shape traffic, parameters not applied",
				zap.String("link", a.Intf+"<->"+z.Intf),
				zap.String("class", string(link.Options.Class)))
		}
		b.logger.Info("Creating link",
			zap.String("a", a.Intf), zap.String("b", z.Intf), zap.Any("shaping", shaping))
		if err := b.fabric.CreateLink(ctx, a, z, shaping); err != nil {
			return fmt.Errorf("build link %s-%s: %w", link.NodeA, link.NodeB, err)
		}
	}

	b.logger.Info("Topology built",
		zap.Int("nodes", len(t.order)), zap.Int("links", len(t.Links)))
	return nil
}

// endpoint allocates the next <node>-ethN interface of name.
func (b *Builder) endpoint(t *Topology, intfs map[string]int, name string) Endpoint {
	node := t.Nodes[name]
	idx := intfs[name]
	intfs[name] = idx + 1

	ep := Endpoint{
		Node: name,
		Type: node.Type,
		Intf: fmt.Sprintf("%s-eth%d", name, idx),
	}
	if node.Type == NodeHost && idx == 0 {
		ep.IP = node.IP
		ep.MAC = node.MAC
	}
	return ep
}

func hasShapingParams(o LinkOptions) bool {
	return o.Bandwidth != 0 || o.Delay != "" || o.MaxQueueSize != 0
}
