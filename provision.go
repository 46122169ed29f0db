package navkit

import (
	"context"

	"github.com/navkit-dev/navkit/pkg/location"
	"github.com/navkit-dev/navkit/pkg/preload"
	"github.com/navkit-dev/navkit/pkg/router"
)

// AppRef is the host application's lifecycle handle: it reports the
// top-level component types attached so far, first-attached first. The
// startup coordinator uses it to tell the root view apart from any views
// the host attaches later.
type AppRef interface {
	Components() []string
}

// StaticAppRef is an AppRef over a fixed component list, for hosts whose
// root view is known up front.
type StaticAppRef []string

func (a StaticAppRef) Components() []string { return a }

// Deps are the external collaborators Provision wires the router to. Each
// dependency is passed explicitly; there is no ambient container.
type Deps struct {
	// Platform is the browsing context's location access.
	Platform location.PlatformLocation

	// RootComponent names the application's root component type.
	RootComponent string

	// AppRef reports attached top-level views. If nil, a StaticAppRef
	// containing only RootComponent is used.
	AppRef AppRef

	// LocationReady, if non-nil, is awaited by AppInitializer before the
	// initial navigation starts. Its failure is fatal to bootstrap.
	LocationReady func(ctx context.Context) error
}

// App bundles the services provisioned for one application: the singleton
// router, its preloader, and the startup coordinator.
type App struct {
	Router      *router.Router
	Preloader   *preload.Preloader
	Initializer *Initializer

	cancelTracing func()
}

// Dispose releases the app's location listener and tracing subscription.
func (a *App) Dispose() {
	a.Router.Dispose()
	if a.cancelTracing != nil {
		a.cancelTracing()
	}
}

// Provision constructs the application's single router from the registry's
// accumulated route tables and root options, selects the location and
// preloading strategies, and wires the startup coordinator. It may be
// called once per registry; provisioning twice, or provisioning with no
// root registered, fails composition.
func Provision(reg *Registry, deps Deps) (*App, error) {
	if err := reg.markProvisioned(); err != nil {
		return nil, err
	}

	opts := reg.Options()
	logger := opts.logger()

	strategy := location.Select(deps.Platform, opts.BaseHref, opts.UseHash)

	r := router.New(reg.Flatten(), router.Config{
		Strategy:      strategy,
		Logger:        logger,
		RootComponent: deps.RootComponent,
	})
	if opts.ErrorHandler != nil {
		r.ErrorHandler = opts.ErrorHandler
	}

	var cancelTracing func()
	if opts.EnableTracing {
		// Passive observer: one log line per event, in emission order.
		cancelTracing = r.Subscribe(func(ev router.Event) {
			logger.Info("router event", "kind", ev.Kind(), "event", ev.String())
		})
	}

	appRef := deps.AppRef
	if appRef == nil {
		appRef = StaticAppRef{deps.RootComponent}
	}

	p := preload.NewPreloader(r, opts.PreloadingStrategy, logger)
	init := newInitializer(r, p, appRef, opts, deps.LocationReady)

	return &App{
		Router:        r,
		Preloader:     p,
		Initializer:   init,
		cancelTracing: cancelTracing,
	}, nil
}
