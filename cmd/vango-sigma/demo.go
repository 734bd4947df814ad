package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recera/vango-sigma/internal/demo"
	"github.com/recera/vango-sigma/internal/logging"
	"github.com/recera/vango-sigma/pkg/components/sigmagraph"
)

func newDemoCommand() *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve the sample graph page",
		Long: `Stages the component sources, then serves a page rendering a five node
graph. Browser events are delivered back over the live websocket and logged.

The page imports sigma.bundleURL (default /assets/sigma-graph.js). That bundle
is not built here: compile .web/utils/SigmaGraphWrapper.jsx with the host
bundler into sigma.bundleDir (default .web/build/assets), which is served
under /assets/. The bundle must export mount(el, tag, props).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			// CLI takes precedence over the config file
			if cmd.Flags().Changed("port") {
				cfg.Dev.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Dev.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			st := newStager(ctx, cfg)
			if _, err := st.Ensure(); err != nil {
				return err
			}

			logger := logging.FromContext(ctx)
			if bundle := bundlePath(cfg.Sigma.BundleDir, cfg.Sigma.BundleURL); bundle != "" {
				if _, err := os.Stat(bundle); err != nil {
					logger.Warn("Component bundle not found, the graph will not mount", "path", bundle)
				}
			}

			srv := demo.New(demo.Config{
				Host:      cfg.Dev.Host,
				Port:      cfg.Dev.Port,
				Component: sigmagraph.New(st),
				StagedDir: st.Dest(),
				BundleDir: cfg.Sigma.BundleDir,
				BundleURL: cfg.Sigma.BundleURL,
				Logger:    logger,
			})

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to serve on")
	cmd.Flags().StringVarP(&host, "host", "H", "localhost", "host to bind to")
	return cmd
}

// bundlePath maps a bundle URL served from /assets/ onto bundleDir. Other
// URLs are external and return "".
func bundlePath(bundleDir, bundleURL string) string {
	rel, ok := strings.CutPrefix(bundleURL, "/assets/")
	if !ok || bundleDir == "" {
		return ""
	}
	return filepath.Join(bundleDir, filepath.FromSlash(rel))
}
