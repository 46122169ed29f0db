package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/navkit-dev/navkit/internal/config"
	"github.com/navkit-dev/navkit/pkg/loader"
	"github.com/navkit-dev/navkit/pkg/router"
)

func routesCmd() *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the project's resolved route table",
		Long: `Resolve the project's route manifests and print the route table
in registration order (the order the router matches in).

Lazy route modules are marked with (lazy); pass --expand to load
them and print their routes too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(expand)
		},
	}

	cmd.Flags().BoolVarP(&expand, "expand", "e", false, "Load lazy modules and print their routes")

	return cmd
}

func runRoutes(expand bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	source := loader.NewDiskSource(filepath.Join(cfg.Dir(), cfg.Routes.Dir))
	var ldOpts []loader.Option
	if len(cfg.Routes.Components) > 0 {
		ldOpts = append(ldOpts, loader.WithComponents(cfg.Routes.Components...))
	}
	ld := loader.New(source, ldOpts...)

	table, err := ld.Load(context.Background(), cfg.Routes.Entry)
	if err != nil {
		return err
	}

	fmt.Printf("Routes for %s (entry %q):\n\n", cfg.Name, cfg.Routes.Entry)
	return printTable(table, "", 0, expand)
}

func printTable(table router.RouteTable, prefix string, depth int, expand bool) error {
	indent := strings.Repeat("  ", depth)
	for i := range table {
		route := &table[i]
		full := joinForDisplay(prefix, route.Path)

		switch {
		case route.RedirectTo != "":
			fmt.Printf("%s%-32s -> %s\n", indent, full, route.RedirectTo)
		case route.Component != "":
			fmt.Printf("%s%-32s %s\n", indent, full, route.Component)
		default:
			fmt.Printf("%s%s\n", indent, full)
		}

		if len(route.Children) > 0 {
			if err := printTable(route.Children, full, depth+1, expand); err != nil {
				return err
			}
		}
		if route.LoadChildren != nil {
			if !expand {
				fmt.Printf("%s  %s (lazy)\n", indent, full)
				continue
			}
			children, err := route.LoadChildren(context.Background())
			if err != nil {
				return err
			}
			if err := printTable(children, full, depth+1, expand); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinForDisplay(prefix, path string) string {
	if prefix == "" {
		return path
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}
