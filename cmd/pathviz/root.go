package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathviz/config"
)

// app carries what the root command resolves for its sub-commands.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pathviz",
		Short:         "Incremental A* pathfinding on square grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newSolveCmd(a), newViewCmd(a))

	return root
}

// load resolves the configuration and the process logger.
func (a *app) load(logOut io.Writer) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	} else {
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		if _, err := config.ParseLevel(a.logLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(logOut)

	return nil
}
