package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AidanWoolley/demikernel/internal/topos"
)

func newToposCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "topos",
		Short: "List topology variants and their keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s  %s\n", "VARIANT", "TOPOS")
			for _, variant := range topos.Variants() {
				fmt.Fprintf(out, "%-12s  %s\n", variant, strings.Join(topos.Custom[variant].Names(), ", "))
			}
			return nil
		},
	}
}
