package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AidanWoolley/demikernel/internal/container/utils"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <container-id|name>",
		Aliases: []string{"remove"},
		Short:   "Remove a node",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, _, err := a.manager()
			if err != nil {
				return err
			}
			container, err := cm.FindContainer(args[0])
			if err != nil {
				return err
			}
			if err := cm.DeleteContainer(container); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (ID: %s)\n", container.Name, utils.ShortID(container.ID))
			return nil
		},
	}
}
