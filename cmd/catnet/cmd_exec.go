package main

import (
	"github.com/spf13/cobra"
)

func newExecCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <container-id|name> <command> [args...]",
		Short: "Execute a command inside a node",
		Example: `  catnet exec alice ip addr show
  catnet exec bob ping -c1 10.0.0.1`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, _, err := a.manager()
			if err != nil {
				return err
			}
			container, err := cm.FindContainer(args[0])
			if err != nil {
				return err
			}
			return cm.ExecCommand(container, args[1:])
		},
	}
	// Flags after the node name belong to the command
	cmd.Flags().SetInterspersed(false)
	return cmd
}
