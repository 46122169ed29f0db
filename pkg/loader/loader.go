package loader

import (
	"context"
	"log/slog"
	"sync"

	"github.com/navkit-dev/navkit/pkg/router"
)

// Loader compiles route-module manifests into route tables. It is handed
// to applications that declare lazy routes by module name rather than by
// Go function.
type Loader struct {
	source     Source
	components map[string]bool
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]router.RouteTable
}

// Option configures a Loader.
type Option func(*Loader)

// WithComponents restricts manifests to the given component type names.
// A manifest referencing anything else fails to load.
func WithComponents(names ...string) Option {
	return func(l *Loader) {
		l.components = make(map[string]bool, len(names))
		for _, name := range names {
			l.components[name] = true
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader over the given manifest source.
func New(source Source, opts ...Option) *Loader {
	l := &Loader{
		source: source,
		logger: slog.Default(),
		cache:  make(map[string]router.RouteTable),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Module returns a ModuleFunc loading the named module. Place it on a
// route's LoadChildren to defer the module until navigation or preloading
// requests it.
func (l *Loader) Module(name string) router.ModuleFunc {
	return func(ctx context.Context) (router.RouteTable, error) {
		return l.Load(ctx, name)
	}
}

// Load fetches, validates and compiles the named module's manifest.
// Results are cached; concurrent callers share one fetch.
func (l *Loader) Load(ctx context.Context, name string) (router.RouteTable, error) {
	l.mu.Lock()
	if table, ok := l.cache[name]; ok {
		l.mu.Unlock()
		return table, nil
	}
	l.mu.Unlock()

	data, err := l.source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	if err := manifest.validate(l.components); err != nil {
		return nil, err
	}

	table := l.buildTable(manifest.Routes)

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[name]; ok {
		return cached, nil
	}
	l.cache[name] = table
	l.logger.Debug("route module compiled", "module", name, "routes", len(table))
	return table, nil
}

// buildTable converts manifest entries into routes, turning "module"
// references into nested lazy modules served by this loader.
func (l *Loader) buildTable(entries []ManifestRoute) router.RouteTable {
	table := make(router.RouteTable, 0, len(entries))
	for _, entry := range entries {
		route := router.Route{
			Path:       entry.Path,
			Component:  entry.Component,
			RedirectTo: entry.RedirectTo,
		}
		if len(entry.Children) > 0 {
			route.Children = l.buildTable(entry.Children)
		}
		if entry.Module != "" {
			route.LoadChildren = l.Module(entry.Module)
		}
		table = append(table, route)
	}
	return table
}
