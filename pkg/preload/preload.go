// Package preload implements preloading of lazily-loadable route modules.
//
// A Strategy decides, per discovered lazy route, whether to warm its module
// before it is navigated to. Two strategies ship with navkit:
//
//   - NoPreloading never loads anything ahead of navigation (the default)
//   - PreloadAllModules loads every discoverable module in the background
//
// The strategy is selected once at root registration and consulted by the
// Preloader; it is not re-evaluated per navigation.
package preload

import (
	"context"
	"log/slog"
	"sync"

	"github.com/navkit-dev/navkit/pkg/router"
)

// Strategy is the policy for proactively loading lazy route modules.
type Strategy interface {
	// Preload is called once per discovered lazy route. Calling load
	// fetches and registers the module; not calling it skips the route.
	Preload(route *router.Route, load func() error) error
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(route *router.Route, load func() error) error

func (f StrategyFunc) Preload(route *router.Route, load func() error) error {
	return f(route, load)
}

// NoPreloading skips every lazy route.
func NoPreloading() Strategy {
	return StrategyFunc(func(route *router.Route, load func() error) error {
		return nil
	})
}

// PreloadAllModules eagerly loads every discoverable lazy route module.
func PreloadAllModules() Strategy {
	return StrategyFunc(func(route *router.Route, load func() error) error {
		return load()
	})
}

// =============================================================================
// Preloader
// =============================================================================

// Preloader applies the selected strategy to the router's lazy routes.
// One instance exists per application, created at provisioning time.
type Preloader struct {
	router   *router.Router
	strategy Strategy
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
	visited map[*router.Route]bool
	done    chan struct{}
}

// NewPreloader creates a preloader over the provisioned router.
func NewPreloader(r *router.Router, strategy Strategy, logger *slog.Logger) *Preloader {
	if strategy == nil {
		strategy = NoPreloading()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Preloader{
		router:   r,
		strategy: strategy,
		logger:   logger,
		visited:  make(map[*router.Route]bool),
		done:     make(chan struct{}),
	}
}

// SetUpPreloading begins background preloading. The startup coordinator
// calls it once the first root view is attached; loading a module can
// surface further lazy routes, which are offered to the strategy in turn.
// Repeated calls are no-ops.
func (p *Preloader) SetUpPreloading() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		p.run(context.Background())
	}()
}

// Done is closed once the initial preloading pass has finished offering
// every discoverable lazy route to the strategy.
func (p *Preloader) Done() <-chan struct{} {
	return p.done
}

// run offers every pending lazy route to the strategy until a pass over
// the router's lazy routes discovers nothing new.
func (p *Preloader) run(ctx context.Context) {
	for {
		offered := 0
		for _, route := range p.router.LazyRoutes() {
			p.mu.Lock()
			seen := p.visited[route]
			if !seen {
				p.visited[route] = true
			}
			p.mu.Unlock()
			if seen {
				continue
			}

			offered++
			route := route
			err := p.strategy.Preload(route, func() error {
				_, err := p.router.LoadModule(ctx, route)
				return err
			})
			if err != nil {
				p.logger.Error("preloading route module failed", "path", route.Path, "error", err)
			}
		}
		if offered == 0 {
			return
		}
	}
}
