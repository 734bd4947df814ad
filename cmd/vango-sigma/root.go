package main

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/recera/vango-sigma/internal/config"
	"github.com/recera/vango-sigma/internal/logging"
	"github.com/recera/vango-sigma/pkg/stager"
)

func newRootCommand() *cobra.Command {
	var verbose bool
	var cwd string

	root := &cobra.Command{
		Use:   "vango-sigma",
		Short: "Sigma.js graph component for Vango",
		Long: `vango-sigma stages the Sigma.js graph component sources into a Vango
project, pins the frontend packages they need and serves a demo page.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", cwd, err)
				}
			}
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := logging.WithLogger(cmd.Context(), logging.New(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cwd, "cwd", "", "project directory (defaults to current)")

	root.AddCommand(newStageCommand())
	root.AddCommand(newDepsCommand())
	root.AddCommand(newDemoCommand())

	return root
}

// loadConfig reads the project config from the working directory. A broken
// config file is reported and replaced by defaults.
func loadConfig(ctx context.Context) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	cfg, err := config.Load(".")
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newStager(ctx context.Context, cfg *config.Config) *stager.Stager {
	return stager.New(stager.Config{
		SourceDir: cfg.Sigma.SourceDir,
		Root:      cfg.Sigma.Root,
		Dir:       cfg.Sigma.UtilsDir,
		Logger:    logging.FromContext(ctx).WithPrefix("stage"),
	})
}
