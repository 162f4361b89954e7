// catnet builds and manages the emulated networks the catnip test programs
// run on.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/AidanWoolley/demikernel/internal/config"
	"github.com/AidanWoolley/demikernel/internal/container/domain"
	"github.com/AidanWoolley/demikernel/internal/container/manager"
	"github.com/AidanWoolley/demikernel/internal/container/repository"
	"github.com/AidanWoolley/demikernel/internal/log"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger
}

func main() {
	// Re-executed by attach to open a shell inside a node
	if len(os.Args) >= 2 && os.Args[1] == domain.NsenterCommand {
		cmdNsenter(os.Args[2:])
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:           "catnet",
		Short:         "Emulated networks for the catnip test programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			logger, err := log.New(cfg.Log)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(config.KeyConfigFile, "", "Config file (TOML or YAML)")
	flags.String(config.KeyStateDir, config.DefaultStateDir, "Directory holding node metadata")
	flags.String(config.KeyLogLevel, log.DefaultLevel, "Log level (debug, info, warn, error)")
	flags.String(config.KeyLogFormat, log.DefaultFormat, "Log format (console, json)")

	cmd.AddCommand(
		newToposCmd(a),
		newShowCmd(a),
		newBuildCmd(a),
		newListCmd(a),
		newRemoveCmd(a),
		newExecCmd(a),
		newAttachCmd(a),
		newCleanupCmd(a),
	)
	return cmd
}

// manager opens the repositories under the configured state dir.
func (a *app) manager() (*manager.ContainerManager, *repository.Repositories, error) {
	repos, err := repository.InitializeRepositories(a.cfg.StateDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize repositories: %w", err)
	}
	return manager.NewContainerManager(repos, a.logger), repos, nil
}

// addSelectFlags adds --custom and --topo to cmd.
func addSelectFlags(cmd *cobra.Command) {
	cmd.Flags().String(config.KeyCustom, config.DefaultCustom, "Topology variant")
	cmd.Flags().String(config.KeyTopo, config.DefaultTopo, "Topology key within the variant")
}
