package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/navkit-dev/navkit"
	"github.com/navkit-dev/navkit/pkg/location"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	reg := navkit.NewRegistry()
	err := reg.RegisterRoot(navkit.RouteTable{
		{Path: "/", Component: "Home"},
		{Path: "/users/:id", Component: "UserDetail"},
		{Path: "/old", RedirectTo: "/"},
	}, navkit.DefaultOptions())
	if err != nil {
		t.Fatalf("RegisterRoot: %v", err)
	}

	app, err := navkit.Provision(reg, navkit.Deps{
		Platform:      location.NewMemoryPlatform("", "/"),
		RootComponent: "AppRoot",
	})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	t.Cleanup(app.Dispose)

	srv := New(app, Config{Addr: "localhost:0"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(srv.feed.Close)
	return srv, ts
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decoding %s: %v", url, err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRoutesEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	var body struct {
		Routes []routeView `json:"routes"`
	}
	getJSON(t, ts.URL+"/navkit/routes", &body)

	if len(body.Routes) != 3 {
		t.Fatalf("routes = %d entries, want 3", len(body.Routes))
	}
	if body.Routes[1].Path != "/users/:id" || body.Routes[1].Component != "UserDetail" {
		t.Errorf("routes[1] = %+v, want /users/:id UserDetail", body.Routes[1])
	}
	if body.Routes[2].RedirectTo != "/" {
		t.Errorf("routes[2].RedirectTo = %q, want %q", body.Routes[2].RedirectTo, "/")
	}
}

func TestNavigateEndpointUpdatesState(t *testing.T) {
	_, ts := newTestServer(t)

	payload := bytes.NewBufferString(`{"url": "/users/42"}`)
	resp, err := http.Post(ts.URL+"/navkit/navigate", "application/json", payload)
	if err != nil {
		t.Fatalf("POST /navkit/navigate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var state stateView
	getJSON(t, ts.URL+"/navkit/state", &state)
	if state.URL != "/users/42" {
		t.Errorf("state URL = %q, want %q", state.URL, "/users/42")
	}
	if len(state.Chain) == 0 {
		t.Fatal("expected a non-empty activation chain")
	}
	leaf := state.Chain[len(state.Chain)-1]
	if leaf.Component != "UserDetail" || leaf.Params["id"] != "42" {
		t.Errorf("leaf = %+v, want UserDetail with id=42", leaf)
	}
}

func TestNavigateEndpointRejectsBadRequests(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/navkit/navigate", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty url: status = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/navkit/navigate", "application/json", strings.NewReader(`{"url": "/missing"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unmatched url: status = %d, want 422", resp.StatusCode)
	}
}

func TestEventFeedBroadcastsNavigations(t *testing.T) {
	srv, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/navkit/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing event feed: %v", err)
	}
	defer conn.Close()

	// Wait until the hub has registered the client so the navigation's
	// events are guaranteed to be broadcast to it.
	deadline := time.Now().Add(2 * time.Second)
	for srv.feed.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered with the event feed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	payload := bytes.NewBufferString(`{"url": "/"}`)
	if _, err := http.Post(ts.URL+"/navkit/navigate", "application/json", payload); err != nil {
		t.Fatalf("POST /navkit/navigate: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var kinds []string
	for len(kinds) < 3 {
		var msg EventMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("reading event (have %v): %v", kinds, err)
		}
		kinds = append(kinds, msg.Kind)
	}

	want := []string{"NavigationStart", "RoutesRecognized", "NavigationEnd"}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event kinds = %v, want %v", kinds, want)
		}
	}

	if srv.feed.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", srv.feed.ClientCount())
	}
}
