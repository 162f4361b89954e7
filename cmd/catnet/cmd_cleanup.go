package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove all nodes and forget the built topology",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, _, err := a.manager()
			if err != nil {
				return err
			}
			deleted, err := cm.Cleanup()
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d containers\n", deleted)
			return err
		},
	}
}
