// Package topos selects one of the catnip topology variants by name, the
// way a custom topology file is picked before its key.
package topos

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos/bottleneck"
	"github.com/AidanWoolley/demikernel/internal/topos/plain"
	"github.com/AidanWoolley/demikernel/internal/topos/shaped"
)

var ErrUnknownVariant = errors.New("unknown topology variant")

// Custom maps a variant name to its registry. Variants are alternatives,
// each one is selected on its own.
var Custom = map[string]topology.Registry{
	"shaped":     shaped.Topos,
	"bottleneck": bottleneck.Topos,
	"plain":      plain.Topos,
}

// Variants returns the variant names, sorted.
func Variants() []string {
	names := make([]string, 0, len(Custom))
	for name := range Custom {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the registry of variant.
func Lookup(variant string) (topology.Registry, error) {
	reg, ok := Custom[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownVariant, variant, Variants())
	}
	return reg, nil
}

// Build constructs and validates the topology registered as key in variant.
func Build(variant, key string) (*topology.Topology, error) {
	reg, err := Lookup(variant)
	if err != nil {
		return nil, err
	}
	return reg.Build(key)
}
