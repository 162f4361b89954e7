package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AidanWoolley/demikernel/internal/container/manager"
	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos"
)

func newBuildCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Create the nodes and links of a topology",
		Long: `'build' realizes a topology on this machine: every node gets a network
namespace, every switch a bridge, and every link a veth pair. Links of class
TCLink are shaped with tc. Needs root.

The topology is picked with --custom and --topo, or loaded from a file
written by 'show --output'.`,
		Example: `  catnet build --custom shaped --topo catniptopo
  catnet build --file bottleneck.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				t    *topology.Topology
				name string
				err  error
			)
			if file != "" {
				t, name, err = topology.ReadFromFile(file)
			} else {
				name = a.cfg.Custom + "/" + a.cfg.Topo
				t, err = topos.Build(a.cfg.Custom, a.cfg.Topo)
			}
			if err != nil {
				return err
			}

			cm, repos, err := a.manager()
			if err != nil {
				return err
			}
			a.logger.Info("Building topology", zap.String("topology", name))
			builder := topology.NewBuilder(manager.NewFabric(cm), a.logger)
			if err := builder.Build(cmd.Context(), t); err != nil {
				return err
			}
			return repos.TopologyRepo.Save(name, t)
		},
	}
	addSelectFlags(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Topology description (.yaml, .yml or .json)")
	return cmd
}
