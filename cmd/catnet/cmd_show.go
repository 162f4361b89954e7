package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AidanWoolley/demikernel/internal/topology"
	"github.com/AidanWoolley/demikernel/internal/topos"
)

func newShowCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Build a topology in memory and print or dump it",
		Long: `'show' builds the selected topology without touching the network and prints it.

With --output the description is written to a file instead; the encoding
follows the extension (.yaml, .yml or .json). Such a file can be given to
'build --file'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, key := a.cfg.Custom, a.cfg.Topo
			t, err := topos.Build(variant, key)
			if err != nil {
				return err
			}
			name := variant + "/" + key

			if output != "" {
				if err := topology.WriteToFile(t, name, output); err != nil {
					return err
				}
				a.logger.Info("Topology written", zap.String("topology", name), zap.String("file", output))
				return nil
			}
			return printTopology(cmd.OutOrStdout(), name, t, format)
		},
	}
	addSelectFlags(cmd)
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, yaml, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the description to this file")
	return cmd
}

func printTopology(w io.Writer, name string, t *topology.Topology, format string) error {
	switch format {
	case "yaml", "json":
		desc := t.Transform()
		desc.Name = name
		raw, err := desc.Marshal(format == "yaml")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	case "table":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintf(w, "Topology %s\n\n", name)
	fmt.Fprintf(w, "%-8s  %-8s  %-18s  %s\n", "NODE", "TYPE", "IP", "MAC")
	for _, node := range t.Hosts() {
		fmt.Fprintf(w, "%-8s  %-8s  %-18s  %s\n", node.Name, node.Type, node.IP, node.MAC)
	}
	for _, node := range t.Switches() {
		fmt.Fprintf(w, "%-8s  %-8s  %-18s  %s\n", node.Name, node.Type, "-", "-")
	}

	fmt.Fprintf(w, "\n%-16s  %-8s  %-8s  %-8s  %s\n", "LINK", "CLASS", "BW", "DELAY", "QUEUE")
	for _, l := range t.Links {
		opts := l.Options
		class := string(opts.Class)
		if class == "" {
			class = string(topology.ClassLink)
		}
		fmt.Fprintf(w, "%-16s  %-8s  %-8s  %-8s  %s\n",
			l.NodeA+"<->"+l.NodeB, class,
			orDash(opts.Bandwidth != 0, fmt.Sprintf("%gM", opts.Bandwidth)),
			orDash(opts.Delay != "", opts.Delay),
			orDash(opts.MaxQueueSize != 0, fmt.Sprint(opts.MaxQueueSize)),
		)
	}
	return nil
}

func orDash(set bool, v string) string {
	if !set {
		return "-"
	}
	return v
}
