package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/recera/vango-sigma/internal/frontend"
	"github.com/recera/vango-sigma/internal/logging"
)

var (
	primaryColor = lipgloss.Color("#3b82f6")
	mutedColor   = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	versionStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

func newDepsCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List the frontend packages the component needs",
		Long: `Prints the pinned npm packages. With --write they are merged into the
dependencies of the project's .web/package.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			pkgs, err := frontend.ParsePackages(cfg.Sigma.Packages)
			if err != nil {
				return err
			}

			if !write {
				printPackages(cmd.OutOrStdout(), pkgs)
				return nil
			}

			path := cfg.PackageJSONPath()
			changed, err := frontend.WritePackageJSON(path, pkgs)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Info("Updated package.json", "path", path, "changed", len(changed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "merge the packages into .web/package.json")
	return cmd
}

func printPackages(w io.Writer, pkgs []frontend.Package) {
	width := 0
	for _, p := range pkgs {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}

	fmt.Fprintln(w, titleStyle.Render("Frontend packages"))
	for _, p := range pkgs {
		fmt.Fprintf(w, "  %s %s\n", nameStyle.Width(width).Render(p.Name), versionStyle.Render(p.Version))
	}
}
