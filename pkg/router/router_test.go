package router

import (
	"context"
	"errors"
	"testing"

	navkiterrors "github.com/navkit-dev/navkit/internal/errors"
	"github.com/navkit-dev/navkit/pkg/location"
)

func newTestRouter(t *testing.T, table RouteTable) (*Router, *location.MemoryPlatform) {
	t.Helper()
	platform := location.NewMemoryPlatform("", "/")
	strategy := location.NewPathStrategy(platform, "")
	r := New(table, Config{Strategy: strategy, RootComponent: "AppRoot"})
	return r, platform
}

func TestNavigateStaticRoute(t *testing.T) {
	r, platform := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	if err := r.NavigateByURL(context.Background(), "/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}

	snap := r.CurrentSnapshot()
	if snap == nil {
		t.Fatal("expected a snapshot after navigation")
	}
	if got := snap.URL(); got != "/users" {
		t.Errorf("snapshot URL = %q, want %q", got, "/users")
	}
	if got := snap.Leaf().Component(); got != "UserList" {
		t.Errorf("leaf component = %q, want %q", got, "UserList")
	}
	if got := snap.Root().Component(); got != "AppRoot" {
		t.Errorf("root component = %q, want %q", got, "AppRoot")
	}
	if got := platform.Path(); got != "/users" {
		t.Errorf("platform path = %q, want %q", got, "/users")
	}
}

func TestNavigateParams(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users/:id", Component: "UserDetail"},
	})

	if err := r.NavigateByURL(context.Background(), "/users/123"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}

	params := r.CurrentSnapshot().Leaf().Params()
	if params["id"] != "123" {
		t.Errorf("params[id] = %q, want %q", params["id"], "123")
	}
}

func TestNavigateCatchAll(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/files/*rest", Component: "FileBrowser"},
	})

	if err := r.NavigateByURL(context.Background(), "/files/a/b/c"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}

	params := r.CurrentSnapshot().Leaf().Params()
	if params["rest"] != "a/b/c" {
		t.Errorf("params[rest] = %q, want %q", params["rest"], "a/b/c")
	}
}

func TestNavigateNestedChildren(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/admin", Component: "AdminShell", Children: RouteTable{
			{Path: "users", Component: "AdminUsers"},
		}},
	})

	if err := r.NavigateByURL(context.Background(), "/admin/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}

	snap := r.CurrentSnapshot()
	chain := []string{}
	for node := snap.Root(); node != nil; {
		chain = append(chain, node.Component())
		children := node.Children()
		if len(children) == 0 {
			break
		}
		node = children[0]
	}
	want := []string{"AppRoot", "AdminShell", "AdminUsers"}
	if len(chain) != len(want) {
		t.Fatalf("activated chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("activated chain = %v, want %v", chain, want)
		}
	}

	if snap.Leaf().Parent().Component() != "AdminShell" {
		t.Errorf("leaf parent = %q, want AdminShell", snap.Leaf().Parent().Component())
	}
}

func TestNavigateNoMatch(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	var handled error
	r.ErrorHandler = func(err error) { handled = err }

	err := r.NavigateByURL(context.Background(), "/missing")
	if err == nil {
		t.Fatal("expected error for unmatched URL")
	}
	if handled == nil {
		t.Fatal("ErrorHandler was not invoked")
	}

	var ne *navkiterrors.NavkitError
	if !errors.As(err, &ne) || ne.Code != "N040" {
		t.Errorf("error = %v, want code N040", err)
	}
	if r.CurrentSnapshot() != nil {
		t.Error("failed navigation must not commit a snapshot")
	}
}

func TestNavigateRedirect(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/", RedirectTo: "/home"},
		{Path: "/home", Component: "Home"},
	})

	if err := r.NavigateByURL(context.Background(), "/"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if got := r.CurrentSnapshot().URL(); got != "/home" {
		t.Errorf("snapshot URL = %q, want %q", got, "/home")
	}
}

func TestNavigateRedirectLoop(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/a", RedirectTo: "/b"},
		{Path: "/b", RedirectTo: "/a"},
	})

	err := r.NavigateByURL(context.Background(), "/a")
	var ne *navkiterrors.NavkitError
	if !errors.As(err, &ne) || ne.Code != "N041" {
		t.Errorf("error = %v, want code N041", err)
	}
}

func TestRegistrationOrderWins(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "First"},
		{Path: "/users", Component: "Second"},
	})

	if err := r.NavigateByURL(context.Background(), "/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if got := r.CurrentSnapshot().Leaf().Component(); got != "First" {
		t.Errorf("leaf component = %q, want %q (first registered wins)", got, "First")
	}
}

func TestStaticBeatsParam(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users/:id", Component: "UserDetail"},
		{Path: "/users/new", Component: "UserNew"},
	})

	if err := r.NavigateByURL(context.Background(), "/users/new"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if got := r.CurrentSnapshot().Leaf().Component(); got != "UserNew" {
		t.Errorf("leaf component = %q, want %q", got, "UserNew")
	}
}

func TestEventOrder(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	var kinds []string
	r.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind())
	})

	if err := r.NavigateByURL(context.Background(), "/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}

	want := []string{"NavigationStart", "RoutesRecognized", "NavigationEnd"}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

func TestSubscriberOrderPreserved(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	var order []string
	r.Subscribe(func(ev Event) { order = append(order, "first:"+ev.Kind()) })
	r.Subscribe(func(ev Event) { order = append(order, "second:"+ev.Kind()) })

	if err := r.NavigateByURL(context.Background(), "/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}

	// For each event, the first subscriber observes it before the second.
	for i := 0; i+1 < len(order); i += 2 {
		if order[i][:6] != "first:" || order[i+1][:7] != "second:" {
			t.Fatalf("delivery order broken at %d: %v", i, order)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	count := 0
	cancel := r.Subscribe(func(ev Event) { count++ })
	cancel()

	if err := r.NavigateByURL(context.Background(), "/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if count != 0 {
		t.Errorf("unsubscribed observer received %d events", count)
	}
}

func TestAfterPreactivationHook(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	var seen *StateSnapshot
	r.AfterPreactivation = func(ctx context.Context, snap *StateSnapshot) (*StateSnapshot, error) {
		seen = snap
		return snap, nil
	}

	if err := r.NavigateByURL(context.Background(), "/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if seen == nil {
		t.Fatal("hook was not invoked")
	}
	if r.CurrentSnapshot() != seen {
		t.Error("committed snapshot should be the hook's snapshot")
	}
}

func TestAfterPreactivationCancel(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	r.AfterPreactivation = func(ctx context.Context, snap *StateSnapshot) (*StateSnapshot, error) {
		return nil, errors.New("guard says no")
	}

	var kinds []string
	r.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind()) })

	if err := r.NavigateByURL(context.Background(), "/users"); err == nil {
		t.Fatal("expected navigation to be cancelled")
	}
	if r.CurrentSnapshot() != nil {
		t.Error("cancelled navigation must not commit")
	}
	if kinds[len(kinds)-1] != "NavigationCancel" {
		t.Errorf("last event = %q, want NavigationCancel", kinds[len(kinds)-1])
	}
}

func TestLazyModuleLoadedOnDemand(t *testing.T) {
	loads := 0
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/admin", LoadChildren: func(ctx context.Context) (RouteTable, error) {
			loads++
			return RouteTable{
				{Path: "users", Component: "AdminUsers"},
			}, nil
		}},
	})

	if err := r.NavigateByURL(context.Background(), "/admin/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if loads != 1 {
		t.Errorf("module loaded %d times, want 1", loads)
	}
	if got := r.CurrentSnapshot().Leaf().Component(); got != "AdminUsers" {
		t.Errorf("leaf component = %q, want %q", got, "AdminUsers")
	}

	// Second navigation hits the cached module.
	if err := r.NavigateByURL(context.Background(), "/admin/users"); err != nil {
		t.Fatalf("second NavigateByURL: %v", err)
	}
	if loads != 1 {
		t.Errorf("module loaded %d times after second navigation, want 1", loads)
	}
}

func TestLazyModuleLoadFailure(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/admin", LoadChildren: func(ctx context.Context) (RouteTable, error) {
			return nil, errors.New("bundle unavailable")
		}},
	})

	err := r.NavigateByURL(context.Background(), "/admin/users")
	var ne *navkiterrors.NavkitError
	if !errors.As(err, &ne) || ne.Code != "N060" {
		t.Errorf("error = %v, want code N060", err)
	}
}

func TestLocationChangeListener(t *testing.T) {
	r, platform := newTestRouter(t, RouteTable{
		{Path: "/a", Component: "A"},
		{Path: "/b", Component: "B"},
	})

	r.SetUpLocationChangeListener()
	r.SetUpLocationChangeListener() // idempotent

	if err := r.NavigateByURL(context.Background(), "/a"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if err := r.NavigateByURL(context.Background(), "/b"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}

	platform.Back()
	if got := r.CurrentSnapshot().URL(); got != "/a" {
		t.Errorf("snapshot URL after back = %q, want %q", got, "/a")
	}

	r.Dispose()
	platform.Forward()
	if got := r.CurrentSnapshot().URL(); got != "/a" {
		t.Errorf("disposed router should not navigate, snapshot URL = %q", got)
	}
}

func TestResetRootComponentType(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/users", Component: "UserList"},
	})

	r.ResetRootComponentType("RealRoot")
	if err := r.NavigateByURL(context.Background(), "/users"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if got := r.CurrentSnapshot().Root().Component(); got != "RealRoot" {
		t.Errorf("root component = %q, want %q", got, "RealRoot")
	}
}

func TestSnapshotReplacedNotMutated(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/a", Component: "A"},
		{Path: "/b", Component: "B"},
	})

	if err := r.NavigateByURL(context.Background(), "/a"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	first := r.CurrentSnapshot()

	if err := r.NavigateByURL(context.Background(), "/b"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	second := r.CurrentSnapshot()

	if first == second {
		t.Fatal("expected a new snapshot per navigation")
	}
	if got := first.URL(); got != "/a" {
		t.Errorf("old snapshot mutated: URL = %q, want %q", got, "/a")
	}
}

func TestQueryStringIgnoredForMatching(t *testing.T) {
	r, _ := newTestRouter(t, RouteTable{
		{Path: "/search", Component: "Search"},
	})

	if err := r.NavigateByURL(context.Background(), "/search?q=go"); err != nil {
		t.Fatalf("NavigateByURL: %v", err)
	}
	if got := r.CurrentSnapshot().URL(); got != "/search?q=go" {
		t.Errorf("snapshot URL = %q, want query preserved", got)
	}
}
