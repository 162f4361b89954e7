package topology

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Constructor builds a fresh topology on every call.
type Constructor func() *Topology

// Registry maps the name given on the command line to the constructor of a
// topology.
type Registry map[string]Constructor

// Names returns the registered keys, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build constructs the topology registered under name and validates it.
func (r Registry) Build(name string) (*Topology, error) {
	ctor, ok := r[name]
	if !ok || ctor == nil {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownTopology, name, r.Names())
	}
	t := ctor()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("topology %s: %w", name, err)
	}
	return t, nil
}
