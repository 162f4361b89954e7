package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AidanWoolley/demikernel/internal/container/repository"
	"github.com/AidanWoolley/demikernel/internal/container/utils"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all nodes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, repos, err := a.manager()
			if err != nil {
				return err
			}
			containers, err := cm.ListContainers()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, name, err := repos.TopologyRepo.Load(); err == nil {
				fmt.Fprintf(out, "Topology: %s\n\n", name)
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			// Display containers in Docker-like format
			fmt.Fprintf(out, "%-12s  %-10s  %-6s  %-20s  %-8s  %-8s  %s\n",
				"CONTAINER ID", "NAME", "KIND", "NAMESPACE", "BRIDGES", "VETHS", "CREATED")
			for _, c := range containers {
				namespaceName := "-"
				if c.Namespace != nil {
					namespaceName = c.Namespace.Name
				}
				fmt.Fprintf(out, "%-12s  %-10s  %-6s  %-20s  %-8d  %-8d  %s\n",
					utils.ShortID(c.ID),
					c.Name,
					c.Kind,
					namespaceName,
					len(c.Bridges),
					len(c.Veths),
					c.CreatedAt,
				)
			}
			return nil
		},
	}
}
