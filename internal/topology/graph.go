package topology

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// undirected returns the link graph of t. Node ids are declaration indexes.
func (t *Topology) undirected() (*simple.UndirectedGraph, map[string]int64) {
	g := simple.NewUndirectedGraph()
	ids := make(map[string]int64, len(t.order))
	for i, name := range t.order {
		ids[name] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, l := range t.Links {
		a, okA := ids[l.NodeA]
		b, okB := ids[l.NodeB]
		if !okA || !okB || a == b {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
	}
	return g, ids
}

// Connected reports whether every node can reach every other node.
func (t *Topology) Connected() bool {
	if len(t.order) == 0 {
		return false
	}
	g, _ := t.undirected()
	return len(topo.ConnectedComponents(g)) == 1
}

// IsLine reports whether t is a chain host-switch-...-switch-host: connected,
// acyclic, no node with more than two neighbours and hosts at both ends.
func (t *Topology) IsLine() bool {
	if len(t.order) < 2 || !t.Connected() {
		return false
	}
	g, ids := t.undirected()
	if g.Edges().Len() != len(t.order)-1 {
		return false
	}
	for name, id := range ids {
		switch degree := g.From(id).Len(); {
		case degree > 2:
			return false
		case degree == 1 && t.Nodes[name].Type != NodeHost:
			return false
		}
	}
	return true
}

// Path returns the node names on a shortest path from a to b, both included.
// It returns nil if either node is unknown or b is unreachable.
func (t *Topology) Path(a, b string) []string {
	g, ids := t.undirected()
	from, okA := ids[a]
	to, okB := ids[b]
	if !okA || !okB {
		return nil
	}
	nodes, _ := path.DijkstraFrom(g.Node(from), g).To(to)
	if len(nodes) == 0 {
		return nil
	}
	return t.names(nodes)
}

func (t *Topology) names(nodes []graph.Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = t.order[n.ID()]
	}
	return names
}
