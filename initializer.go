package navkit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/navkit-dev/navkit/internal/errors"
	"github.com/navkit-dev/navkit/pkg/preload"
	"github.com/navkit-dev/navkit/pkg/router"
)

// State is the startup coordinator's phase.
type State int

const (
	// StateUninitialized is the state before AppInitializer runs.
	StateUninitialized State = iota

	// StateAwaitingLocationReady means AppInitializer is waiting for the
	// host's location-ready signal.
	StateAwaitingLocationReady

	// StateNavigationSkipped means the automatic first navigation was
	// disabled; the router only listens for location changes.
	StateNavigationSkipped

	// StateAwaitingFirstPreactivation means the initial navigation has been
	// started and AppInitializer is held open until it reaches the
	// after-preactivation hook.
	StateAwaitingFirstPreactivation

	// StateListeningOnly follows StateNavigationSkipped once AppInitializer
	// has settled.
	StateListeningOnly

	// StateAwaitingBootstrapCompletion means the first navigation is held at
	// preactivation until the host attaches its root view.
	StateAwaitingBootstrapCompletion

	// StateSteadyState means bootstrap is complete; navigations proceed
	// without coordinator involvement.
	StateSteadyState
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAwaitingLocationReady:
		return "awaiting-location-ready"
	case StateNavigationSkipped:
		return "navigation-skipped"
	case StateAwaitingFirstPreactivation:
		return "awaiting-first-preactivation"
	case StateListeningOnly:
		return "listening-only"
	case StateAwaitingBootstrapCompletion:
		return "awaiting-bootstrap-completion"
	case StateSteadyState:
		return "steady-state"
	default:
		return "unknown"
	}
}

// =============================================================================
// One-Shot Future
// =============================================================================

// oneShot is a single-resolution future. Resolve settles it exactly once;
// later attempts are no-ops. Await blocks until it settles.
//
// A plain future, not a stream: the at-most-once contract is carried by
// explicit state so double resolution cannot be expressed.
type oneShot[T any] struct {
	once sync.Once
	ch   chan struct{}
	val  T
}

func newOneShot[T any]() *oneShot[T] {
	return &oneShot[T]{ch: make(chan struct{})}
}

// resolve settles the future with val. It reports whether this call was the
// one that settled it.
func (f *oneShot[T]) resolve(val T) bool {
	settled := false
	f.once.Do(func() {
		f.val = val
		close(f.ch)
		settled = true
	})
	return settled
}

// await blocks until the future settles and returns its value.
func (f *oneShot[T]) await() T {
	<-f.ch
	return f.val
}

// settled reports whether the future has resolved, without blocking.
func (f *oneShot[T]) settled() bool {
	select {
	case <-f.ch:
		return true
	default:
		return false
	}
}

// =============================================================================
// Startup Coordinator
// =============================================================================

// Initializer sequences application startup against the router's first
// navigation. One instance exists per provisioned App.
//
// The host invokes its two hooks in a fixed order:
//
//  1. AppInitializer, early in startup. It starts (or skips) the initial
//     navigation and blocks until the navigation reaches preactivation, so
//     the application is not declared ready with no route recognized.
//  2. BootstrapListener, once per attached top-level view. For the root
//     view it releases the held navigation and starts preloading; for any
//     other view it is a no-op.
//
// Between the two hooks the first navigation is parked at the router's
// after-preactivation extension point. There is no timeout: if the host
// never attaches a root view, the navigation stays pending.
type Initializer struct {
	router        *router.Router
	preloader     *preload.Preloader
	appRef        AppRef
	opts          Options
	locationReady func(ctx context.Context) error
	logger        *slog.Logger

	mu           sync.Mutex
	state        State
	initSnapshot *router.StateSnapshot
	captured     bool

	// released holds the first navigation at preactivation until
	// BootstrapListener resolves it with the captured snapshot.
	released *oneShot[*router.StateSnapshot]

	// settledEarly releases AppInitializer once the first navigation has
	// been intercepted at preactivation.
	settledEarly *oneShot[struct{}]
}

// newInitializer wires the coordinator to the provisioned router and
// preloader. locationReady may be nil.
func newInitializer(r *router.Router, p *preload.Preloader, appRef AppRef, opts Options, locationReady func(ctx context.Context) error) *Initializer {
	return &Initializer{
		router:        r,
		preloader:     p,
		appRef:        appRef,
		opts:          opts,
		locationReady: locationReady,
		logger:        opts.logger(),
		state:         StateUninitialized,
		released:      newOneShot[*router.StateSnapshot](),
		settledEarly:  newOneShot[struct{}](),
	}
}

// State returns the coordinator's current phase.
func (i *Initializer) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// InitSnapshot returns the snapshot captured from the first navigation's
// preactivation, or nil if none has been captured.
func (i *Initializer) InitSnapshot() *router.StateSnapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.initSnapshot
}

// AppInitializer is the early-phase startup hook. It must settle before the
// host declares the application ready.
//
// It waits for the optional location-ready signal, then either puts the
// router into listen-only mode (SkipInitialNavigation) and returns
// immediately, or installs a one-shot interception on the router's
// after-preactivation slot, starts the initial navigation, and blocks until
// that navigation is intercepted. A location-ready failure is fatal and
// propagates unrecovered.
func (i *Initializer) AppInitializer(ctx context.Context) error {
	i.setState(StateAwaitingLocationReady)

	if i.locationReady != nil {
		if err := i.locationReady(ctx); err != nil {
			return errors.FromError(err, "N020")
		}
	}

	if i.opts.SkipInitialNavigation {
		i.setState(StateNavigationSkipped)
		i.router.SetUpLocationChangeListener()
		i.setState(StateListeningOnly)
		i.logger.Debug("initial navigation skipped, listening for location changes")
		return nil
	}

	i.setState(StateAwaitingFirstPreactivation)
	i.router.AfterPreactivation = i.intercept

	// A first navigation that fails before reaching preactivation would
	// otherwise hold startup open forever. The failure itself still goes to
	// the router's error handler; this only settles the hook.
	cancel := i.router.Subscribe(func(ev router.Event) {
		if _, ok := ev.(router.NavigationError); ok {
			i.settledEarly.resolve(struct{}{})
		}
	})
	defer cancel()

	i.router.SetUpLocationChangeListener()
	i.router.InitialNavigation(ctx)

	i.settledEarly.await()

	// The root view may have attached before the navigation reached
	// preactivation; in that case BootstrapListener already released it and
	// the coordinator is done, not waiting.
	i.mu.Lock()
	if i.released.settled() {
		i.state = StateSteadyState
	} else {
		i.state = StateAwaitingBootstrapCompletion
	}
	i.mu.Unlock()
	return nil
}

// intercept is installed on the router's after-preactivation slot. The
// first invocation captures the snapshot, settles AppInitializer, and parks
// the navigation until BootstrapListener releases it. Every later
// invocation passes its snapshot straight through; navigations after the
// first are never delayed.
func (i *Initializer) intercept(ctx context.Context, snap *router.StateSnapshot) (*router.StateSnapshot, error) {
	i.mu.Lock()
	if i.captured {
		i.mu.Unlock()
		return snap, nil
	}
	i.captured = true
	i.initSnapshot = snap
	i.mu.Unlock()

	i.settledEarly.resolve(struct{}{})
	return i.released.await(), nil
}

// BootstrapListener is the late-phase startup hook, invoked by the host
// once per attached top-level view with the view's component type. Unless
// component is the first component the host reports as attached, the call
// is a no-op.
//
// For the root view it starts background preloading, re-synchronizes the
// router's root component binding, and resolves the held first navigation
// with the captured snapshot. The release happens at most once; repeated
// root attachments do not resolve it again.
func (i *Initializer) BootstrapListener(component string) {
	attached := i.appRef.Components()
	if len(attached) == 0 || attached[0] != component {
		return
	}

	i.preloader.SetUpPreloading()
	i.router.ResetRootComponentType(component)

	i.mu.Lock()
	snap := i.initSnapshot
	i.mu.Unlock()

	if i.released.resolve(snap) {
		i.logger.Debug("bootstrap complete, initial navigation released", "component", component)
	}
	i.setState(StateSteadyState)
}

func (i *Initializer) setState(s State) {
	i.mu.Lock()
	i.state = s
	i.mu.Unlock()
}
