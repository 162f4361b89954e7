package topology

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

type NodeType string

const (
	NodeHost   NodeType = "host"
	NodeSwitch NodeType = "switch"
)

// Node is a host or a switch. Only hosts carry an address.
type Node struct {
	Name string
	Type NodeType
	IP   string
	MAC  string
}

// Link is an unordered pair of node names plus the shaping options.
type Link struct {
	NodeA   string
	NodeB   string
	Options LinkOptions
}

// Connects reports whether the link joins a and b, in either direction.
func (l Link) Connects(a, b string) bool {
	return (l.NodeA == a && l.NodeB == b) || (l.NodeA == b && l.NodeB == a)
}

// Peer returns the other end of the link as seen from name.
func (l Link) Peer(name string) string {
	if l.NodeA == name {
		return l.NodeB
	}
	return l.NodeA
}

// Topology is a static graph of hosts, switches and links. It is written once
// through the Add methods and read afterwards; declaration problems are kept
// and surfaced by Validate rather than aborting construction.
type Topology struct {
	Nodes map[string]Node
	Links []Link

	order []string
	errs  []error
}

func NewTopology() *Topology {
	return &Topology{
		Nodes: map[string]Node{},
		Links: []Link{},
	}
}

// AddHost declares a host with its address in CIDR notation and its hardware
// address. It returns the host name so calls can be chained into AddLink.
func (t *Topology) AddHost(name, ip, mac string) string {
	if _, err := netip.ParsePrefix(ip); err != nil {
		t.fail(fmt.Errorf("host %s: invalid address %q: %w", name, ip, err))
	}
	if _, err := net.ParseMAC(mac); err != nil {
		t.fail(fmt.Errorf("host %s: invalid hardware address %q: %w", name, mac, err))
	}
	t.addNode(Node{
		Name: name,
		Type: NodeHost,
		IP:   ip,
		MAC:  mac,
	})
	return name
}

func (t *Topology) AddSwitch(name string) string {
	t.addNode(Node{
		Name: name,
		Type: NodeSwitch,
	})
	return name
}

// AddLink connects two declared nodes. Both ends must exist at the time of
// the call.
func (t *Topology) AddLink(a, b string, opts LinkOptions) {
	for _, end := range []string{a, b} {
		if _, ok := t.Nodes[end]; !ok {
			t.fail(fmt.Errorf("link %s-%s: %w: %s", a, b, ErrUndeclaredNode, end))
			return
		}
	}
	if a == b {
		t.fail(fmt.Errorf("link %s-%s: both ends are the same node", a, b))
		return
	}
	if err := opts.validate(); err != nil {
		t.fail(fmt.Errorf("link %s-%s: %w", a, b, err))
	}
	t.Links = append(t.Links, Link{
		NodeA:   a,
		NodeB:   b,
		Options: opts,
	})
}

func (t *Topology) addNode(n Node) {
	if n.Name == "" {
		t.fail(fmt.Errorf("%s with empty name", n.Type))
		return
	}
	if _, exists := t.Nodes[n.Name]; exists {
		t.fail(fmt.Errorf("%w: %s", ErrDuplicateNode, n.Name))
		return
	}
	t.Nodes[n.Name] = n
	t.order = append(t.order, n.Name)
}

func (t *Topology) fail(err error) {
	t.errs = append(t.errs, err)
}

// Validate returns every declaration error plus any structural problem found
// in the node and link sets, combined into one error.
func (t *Topology) Validate() error {
	err := multierr.Combine(t.errs...)
	for i, l := range t.Links {
		for j := i + 1; j < len(t.Links); j++ {
			if t.Links[j].Connects(l.NodeA, l.NodeB) {
				err = multierr.Append(err, fmt.Errorf("link %s-%s declared twice", l.NodeA, l.NodeB))
			}
		}
	}
	seen := map[string]string{}
	for _, h := range t.Hosts() {
		for key, what := range map[string]string{h.IP: "address", h.MAC: "hardware address"} {
			if other, dup := seen[what+key]; dup {
				err = multierr.Append(err, fmt.Errorf("hosts %s and %s share %s %s", other, h.Name, what, key))
			}
			seen[what+key] = h.Name
		}
	}
	return err
}

// Node returns the node with the given name.
func (t *Topology) Node(name string) (Node, bool) {
	n, ok := t.Nodes[name]
	return n, ok
}

// Names returns all node names in declaration order.
func (t *Topology) Names() []string {
	return append([]string(nil), t.order...)
}

func (t *Topology) Hosts() []Node {
	return t.byType(NodeHost)
}

func (t *Topology) Switches() []Node {
	return t.byType(NodeSwitch)
}

func (t *Topology) byType(typ NodeType) []Node {
	var nodes []Node
	for _, name := range t.order {
		if n := t.Nodes[name]; n.Type == typ {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// LinksOf returns the links touching name, in declaration order.
func (t *Topology) LinksOf(name string) []Link {
	var links []Link
	for _, l := range t.Links {
		if l.NodeA == name || l.NodeB == name {
			links = append(links, l)
		}
	}
	return links
}

// Equal compares the declared nodes and links of two topologies.
func (t *Topology) Equal(other *Topology) bool {
	if t == nil || other == nil {
		return t == other
	}
	return cmp.Equal(t.Nodes, other.Nodes) &&
		cmp.Equal(t.Links, other.Links) &&
		cmp.Equal(t.order, other.order)
}
