package main

import (
	"github.com/spf13/cobra"
)

func newAttachCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <container-id|name>",
		Short: "Open a shell inside a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, _, err := a.manager()
			if err != nil {
				return err
			}
			container, err := cm.FindContainer(args[0])
			if err != nil {
				return err
			}
			return cm.AttachContainer(container)
		},
	}
}
