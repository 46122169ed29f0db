package router

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/navkit-dev/navkit/internal/errors"
	"github.com/navkit-dev/navkit/pkg/location"
)

// maxRedirects bounds RedirectTo chains so a cycle fails instead of spinning.
const maxRedirects = 10

// Config configures a Router.
type Config struct {
	// Strategy is the location strategy the router commits URLs through.
	Strategy location.LocationStrategy

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// RootComponent names the application's root component type. It can be
	// re-synchronized later via ResetRootComponentType.
	RootComponent string
}

// Router is the navigation service. Exactly one instance exists per
// application; it is created by the provisioning layer and lives for the
// application's lifetime.
type Router struct {
	// ErrorHandler receives unhandled navigation errors. It may be replaced
	// during provisioning; the default logs the error.
	ErrorHandler func(error)

	// AfterPreactivation, when set, runs after a navigation's target route
	// tree has been computed but before it commits. The navigation proceeds
	// with the returned snapshot once the hook returns. Assign it before
	// navigation begins; the startup coordinator uses this slot to hold the
	// first navigation open.
	AfterPreactivation func(ctx context.Context, snap *StateSnapshot) (*StateSnapshot, error)

	strategy location.LocationStrategy
	logger   *slog.Logger
	events   eventStream
	navSeq   atomic.Int64

	// navMu serializes navigations; at most one runs at a time.
	navMu sync.Mutex

	// mu guards current, rootComponent and listener state.
	mu            sync.Mutex
	current       *StateSnapshot
	rootComponent string
	listening     bool
	cancelListen  func()

	// treeMu guards the route tree and lazy-module bookkeeping.
	treeMu sync.Mutex
	tree   *routeNode
	table  RouteTable
	lazy   []*lazyModule
}

// lazyModule tracks a route with LoadChildren that has not loaded yet.
type lazyModule struct {
	route  *Route
	prefix string // full path the loaded children register under
	chain  []*Route
	loaded bool
	result RouteTable
}

// New creates the router wired to an already-merged route table and the
// chosen location strategy.
func New(table RouteTable, cfg Config) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		strategy:      cfg.Strategy,
		logger:        logger,
		rootComponent: cfg.RootComponent,
		tree:          newRouteNode(""),
		table:         table,
	}
	r.ErrorHandler = func(err error) {
		r.logger.Error("navigation failed", "error", err)
	}
	r.registerTable("", table, nil)
	return r
}

// registerTable inserts a route table into the tree under prefix.
// chain is the route-definition path leading to this table, outermost first.
// Callers other than New must hold treeMu.
func (r *Router) registerTable(prefix string, table RouteTable, chain []*Route) {
	for i := range table {
		route := &table[i]
		full := joinPaths(prefix, route.Path)

		routeChain := make([]*Route, len(chain), len(chain)+1)
		copy(routeChain, chain)
		routeChain = append(routeChain, route)

		if route.Component != "" || route.RedirectTo != "" {
			r.tree.insert(full, &routeEntry{route: route, chain: routeChain})
		}
		if len(route.Children) > 0 {
			r.registerTable(full, route.Children, routeChain)
		}
		if route.LoadChildren != nil {
			r.lazy = append(r.lazy, &lazyModule{route: route, prefix: full, chain: routeChain})
		}
	}
}

// Table returns the merged route table the router was provisioned with.
func (r *Router) Table() RouteTable {
	return r.table
}

// Subscribe registers an observer for router lifecycle events. Observers
// are invoked synchronously in subscription order and must not alter
// navigation outcome.
func (r *Router) Subscribe(fn func(Event)) (cancel func()) {
	return r.events.subscribe(fn)
}

// CurrentSnapshot returns the snapshot of the last committed navigation,
// or nil before the first one completes.
func (r *Router) CurrentSnapshot() *StateSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// RootComponentType returns the root component type name.
func (r *Router) RootComponentType() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rootComponent
}

// ResetRootComponentType re-synchronizes the root component type binding.
// The startup coordinator calls this once the first root view is attached.
func (r *Router) ResetRootComponentType(t string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rootComponent = t
}

// InitialNavigation starts the first navigation to the current location.
// It returns immediately; the navigation runs in the background so the
// after-preactivation hook can hold it open across the host's startup.
func (r *Router) InitialNavigation(ctx context.Context) {
	url := r.strategy.Path()
	go func() {
		// Errors reach the ErrorHandler; the coordinator does not care.
		_ = r.navigate(ctx, url, false)
	}()
}

// SetUpLocationChangeListener subscribes the router to location changes
// (back/forward traversal). It is idempotent.
func (r *Router) SetUpLocationChangeListener() {
	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return
	}
	r.listening = true
	r.mu.Unlock()

	cancel := r.strategy.OnPopState(func(path string) {
		_ = r.navigate(context.Background(), path, false)
	})

	r.mu.Lock()
	r.cancelListen = cancel
	r.mu.Unlock()
}

// Dispose releases the location change listener.
func (r *Router) Dispose() {
	r.mu.Lock()
	cancel := r.cancelListen
	r.cancelListen = nil
	r.listening = false
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// NavigateByURL navigates to the given application URL, pushing a history
// entry on success. It returns once the navigation has committed, been
// cancelled, or failed.
func (r *Router) NavigateByURL(ctx context.Context, url string) error {
	return r.navigate(ctx, url, true)
}

// navigate runs one navigation through the pipeline:
// recognize -> after-preactivation -> commit.
func (r *Router) navigate(ctx context.Context, url string, push bool) error {
	r.navMu.Lock()
	defer r.navMu.Unlock()

	id := r.navSeq.Add(1)
	r.events.emit(NavigationStart{ID: id, URL: url})

	entry, params, finalURL, err := r.recognize(ctx, url)
	if err != nil {
		r.events.emit(NavigationError{ID: id, URL: url, Err: err})
		if handler := r.ErrorHandler; handler != nil {
			handler(err)
		}
		return err
	}

	snap := buildSnapshot(finalURL, r.RootComponentType(), entry.chain, params)
	r.events.emit(RoutesRecognized{ID: id, URL: finalURL, Snapshot: snap})

	if hook := r.AfterPreactivation; hook != nil {
		out, err := hook(ctx, snap)
		if err != nil {
			r.events.emit(NavigationCancel{ID: id, URL: finalURL, Reason: err.Error()})
			return err
		}
		if out != nil {
			snap = out
		}
	}

	r.commit(snap, finalURL, push)
	r.events.emit(NavigationEnd{ID: id, URL: finalURL})
	return nil
}

// recognize resolves url to a terminal route entry, following redirects and
// loading lazy modules along the matched path as needed.
func (r *Router) recognize(ctx context.Context, url string) (*routeEntry, Params, string, error) {
	redirects := 0
	for {
		path := stripQuery(url)
		params := Params{}

		r.treeMu.Lock()
		entry, ok := r.tree.match(splitPath(path), params)
		r.treeMu.Unlock()

		if !ok {
			mod := r.pendingModuleFor(path)
			if mod == nil {
				return nil, nil, "", errors.New("N040").WithMessagef("no route matches %q", url)
			}
			if _, err := r.LoadModule(ctx, mod.route); err != nil {
				return nil, nil, "", err
			}
			continue
		}

		if entry.route.RedirectTo != "" {
			redirects++
			if redirects > maxRedirects {
				return nil, nil, "", errors.New("N041").WithMessagef("redirect loop at %q", url)
			}
			url = entry.route.RedirectTo
			continue
		}

		return entry, params, url, nil
	}
}

// commit swaps in the new snapshot and synchronizes the location.
func (r *Router) commit(snap *StateSnapshot, url string, push bool) {
	r.mu.Lock()
	r.current = snap
	r.mu.Unlock()

	if r.strategy.Path() == url {
		return
	}
	if push {
		r.strategy.PushState(nil, "", url)
	} else {
		r.strategy.ReplaceState(nil, "", url)
	}
}

// =============================================================================
// Lazy Route Modules
// =============================================================================

// LazyRoutes returns the routes with pending (not yet loaded) lazy modules.
// Loading a module can surface new lazy routes from within the loaded
// table, so preloading re-queries until the result is empty.
func (r *Router) LazyRoutes() []*Route {
	r.treeMu.Lock()
	defer r.treeMu.Unlock()
	var routes []*Route
	for _, mod := range r.lazy {
		if !mod.loaded {
			routes = append(routes, mod.route)
		}
	}
	return routes
}

// LoadModule loads route's lazy children, registers them in the route tree
// and caches the result. Subsequent calls return the cached table.
func (r *Router) LoadModule(ctx context.Context, route *Route) (RouteTable, error) {
	r.treeMu.Lock()
	var mod *lazyModule
	for _, m := range r.lazy {
		if m.route == route {
			mod = m
			break
		}
	}
	if mod == nil {
		r.treeMu.Unlock()
		return nil, errors.New("N060").WithMessagef("route %q has no lazy module", route.Path)
	}
	if mod.loaded {
		table := mod.result
		r.treeMu.Unlock()
		return table, nil
	}
	r.treeMu.Unlock()

	table, err := route.LoadChildren(ctx)
	if err != nil {
		return nil, errors.FromError(err, "N060")
	}

	r.treeMu.Lock()
	defer r.treeMu.Unlock()
	if mod.loaded {
		return mod.result, nil
	}
	mod.loaded = true
	mod.result = table
	r.registerTable(mod.prefix, table, mod.chain)
	r.logger.Debug("lazy route module loaded", "prefix", mod.prefix, "routes", len(table))
	return table, nil
}

// pendingModuleFor returns the deepest pending lazy module whose prefix
// covers path, or nil.
func (r *Router) pendingModuleFor(path string) *lazyModule {
	r.treeMu.Lock()
	defer r.treeMu.Unlock()
	var best *lazyModule
	for _, mod := range r.lazy {
		if mod.loaded {
			continue
		}
		if !coversPath(mod.prefix, path) {
			continue
		}
		if best == nil || len(mod.prefix) > len(best.prefix) {
			best = mod
		}
	}
	return best
}

// coversPath reports whether a lazy module registered at prefix could
// contain routes matching path.
func coversPath(prefix, path string) bool {
	if prefix == "" || prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
