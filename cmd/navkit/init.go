package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/navkit-dev/navkit/internal/config"
	"github.com/navkit-dev/navkit/internal/errors"
)

func initCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a navkit.json in the current directory",
		Long: `Create a navkit.json project file with defaults, plus a routes
directory with a starter manifest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")

	return cmd
}

func runInit(name string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err == nil {
		return errors.Newf(errors.CategoryCLI, "navkit.json already exists in %s", dir)
	}
	if name == "" {
		name = filepath.Base(dir)
	}

	cfg := config.New()
	cfg.Name = name
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		return err
	}

	routesDir := filepath.Join(dir, cfg.Routes.Dir)
	if err := os.MkdirAll(routesDir, 0755); err != nil {
		return err
	}
	manifest := filepath.Join(routesDir, cfg.Routes.Entry+".json")
	if _, err := os.Stat(manifest); os.IsNotExist(err) {
		if err := os.WriteFile(manifest, []byte(starterManifest), 0644); err != nil {
			return err
		}
	}

	success("created navkit.json")
	info("project: %s", name)
	info("routes:  %s", filepath.Join(cfg.Routes.Dir, cfg.Routes.Entry+".json"))
	info("run 'navkit serve' to start the dev shell")
	return nil
}

const starterManifest = `{
  "module": "app",
  "routes": [
    {"path": "/", "component": "Home"},
    {"path": "/about", "component": "About"}
  ]
}
`
