// Package navkit provisions the singleton client-side router of a Go
// single-page application and coordinates its startup.
//
// This is the recommended import for most applications:
//
//	import "github.com/navkit-dev/navkit"
//
// Usage:
//
//	reg := navkit.NewRegistry()
//	reg.RegisterRoot(appRoutes, navkit.DefaultOptions())
//	reg.RegisterChild(adminRoutes)
//
//	app, err := navkit.Provision(reg, navkit.Deps{
//	    Platform:      platform,
//	    RootComponent: "AppRoot",
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Early in host startup; blocks until the first navigation is held
//	// at preactivation (or returns immediately if skipped).
//	if err := app.Initializer.AppInitializer(ctx); err != nil {
//	    return err
//	}
//
//	// Once the host attaches its root view; releases the navigation.
//	app.Initializer.BootstrapListener("AppRoot")
//
// Route tables come from any number of modules; exactly one registers as
// root and supplies the Options. The router, its location strategy, the
// preloading strategy, and the startup coordinator are all provisioned in
// one pass by Provision.
package navkit

import (
	"github.com/navkit-dev/navkit/pkg/preload"
	"github.com/navkit-dev/navkit/pkg/router"
)

// =============================================================================
// Route model (re-export from pkg/router)
// =============================================================================

// Route is a single path-to-component mapping entry.
type Route = router.Route

// RouteTable is an ordered route list; a module-level contribution.
type RouteTable = router.RouteTable

// Params holds the path parameters extracted by a matched route.
type Params = router.Params

// StateSnapshot is the immutable activated-route tree of a committed
// navigation.
type StateSnapshot = router.StateSnapshot

// ModuleFunc loads a lazy route module's table on demand.
type ModuleFunc = router.ModuleFunc

// =============================================================================
// Preloading strategies (re-export from pkg/preload)
// =============================================================================

// PreloadingStrategy decides whether to warm a lazy route module ahead of
// navigation.
type PreloadingStrategy = preload.Strategy

// NoPreloading never loads modules ahead of navigation.
var NoPreloading = preload.NoPreloading

// PreloadAllModules eagerly loads every discoverable lazy module.
var PreloadAllModules = preload.PreloadAllModules
