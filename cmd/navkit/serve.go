package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/navkit-dev/navkit"
	"github.com/navkit-dev/navkit/internal/config"
	"github.com/navkit-dev/navkit/internal/devserver"
	"github.com/navkit-dev/navkit/pkg/loader"
	"github.com/navkit-dev/navkit/pkg/location"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dev shell around the project's route manifests",
		Long: `Run the development shell: an HTTP server that provisions the
project's router from its route manifests and exposes a debug page,
JSON views of the route table and router state, and a WebSocket feed
of router lifecycle events.

Examples:
  navkit serve
  navkit serve --port=8080
  navkit serve --tracing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, tracing)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from navkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from navkit.json)")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Log every router lifecycle event")

	return cmd
}

func runServe(port int, host string, tracing bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app, err := provisionFromConfig(cfg, logger, tracing)
	if err != nil {
		return err
	}
	defer app.Dispose()

	// The dev shell is its own host: settle startup and attach the root
	// view immediately so navigations commit without a real application.
	if err := app.Initializer.AppInitializer(context.Background()); err != nil {
		return err
	}
	app.Initializer.BootstrapListener(cfg.RootComponent)

	srv := devserver.New(app, devserver.Config{
		Addr:   cfg.DevAddress(),
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner()
	success("dev shell on http://%s", cfg.DevAddress())
	info("routes from %s", filepath.Join(cfg.Dir(), cfg.Routes.Dir))

	return srv.Run(ctx)
}

// provisionFromConfig builds the route table from the project's manifests
// and provisions the router with the project's options.
func provisionFromConfig(cfg *config.Config, logger *slog.Logger, tracing bool) (*navkit.App, error) {
	source := loader.NewDiskSource(filepath.Join(cfg.Dir(), cfg.Routes.Dir))
	ldOpts := []loader.Option{loader.WithLogger(logger)}
	if len(cfg.Routes.Components) > 0 {
		ldOpts = append(ldOpts, loader.WithComponents(cfg.Routes.Components...))
	}
	ld := loader.New(source, ldOpts...)

	table, err := ld.Load(context.Background(), cfg.Routes.Entry)
	if err != nil {
		return nil, err
	}

	opts := navkit.DefaultOptions()
	opts.UseHash = cfg.UseHash
	opts.BaseHref = cfg.BaseHref
	opts.EnableTracing = cfg.EnableTracing || tracing
	opts.SkipInitialNavigation = cfg.SkipInitialNavigation
	opts.Logger = logger
	if cfg.Preload == "all" {
		opts.PreloadingStrategy = navkit.PreloadAllModules()
	}

	reg := navkit.NewRegistry()
	if err := reg.RegisterRoot(table, opts); err != nil {
		return nil, err
	}

	startURL := "/"
	if cfg.UseHash {
		startURL = "/#/"
	}
	return navkit.Provision(reg, navkit.Deps{
		Platform:      location.NewMemoryPlatform(cfg.BaseHref, startURL),
		RootComponent: cfg.RootComponent,
	})
}
