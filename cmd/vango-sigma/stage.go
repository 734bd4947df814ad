package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recera/vango-sigma/internal/config"
	"github.com/recera/vango-sigma/internal/logging"
)

func newStageCommand() *cobra.Command {
	var watch bool
	var initConfig bool

	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Copy the graph component sources into the project",
		Long: `Copies SigmaGraphWrapper.jsx and SigmaGraphViewer.jsx into the project's
.web/utils directory. Files are only rewritten when the source is newer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if initConfig {
				if err := writeConfig(ctx, cfg); err != nil {
					return err
				}
			}
			st := newStager(ctx, cfg)

			if watch {
				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return st.Watch(ctx)
			}

			report, err := st.Ensure()
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Info("Staged assets",
				"dest", st.Dest(),
				"copied", len(report.Copied),
				"up_to_date", len(report.UpToDate),
				"missing", len(report.Missing))
			return nil
		},
	}

	cmd.Flags().BoolVar(&initConfig, "init", false, "write vango.json with the effective settings when no config file exists")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-stage when the source files change (requires sigma.sourceDir)")
	return cmd
}

func writeConfig(ctx context.Context, cfg *config.Config) error {
	logger := logging.FromContext(ctx)
	if path, ok := config.Find("."); ok {
		logger.Info("Config already exists, leaving it alone", "path", path)
		return nil
	}
	if err := config.Save(cfg, "."); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.Info("Wrote config", "path", "vango.json")
	return nil
}
