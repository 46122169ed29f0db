package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/navkit-dev/navkit"
	"github.com/navkit-dev/navkit/pkg/router"
)

// Config configures the dev shell server.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Server is the development shell around a provisioned navkit app. It
// serves a debug page, JSON views of the route table and router state, a
// navigation trigger, and a WebSocket feed of router events.
type Server struct {
	app    *navkit.App
	cfg    Config
	feed   *EventFeed
	logger *slog.Logger
	http   *http.Server
}

// New creates the dev shell for an already-provisioned app.
func New(app *navkit.App, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app:    app,
		cfg:    cfg,
		feed:   NewEventFeed(),
		logger: logger,
	}
	s.feed.Attach(app.Router)
	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the dev shell's route mux.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/navkit/routes", s.handleRoutes)
	r.Get("/navkit/state", s.handleState)
	r.Post("/navkit/navigate", s.handleNavigate)
	r.Get("/navkit/events", s.feed.HandleWebSocket)
	r.Get("/", s.handleShell)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.logger.Info("dev shell listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.feed.Close()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// routeView is the JSON shape of one route table entry.
type routeView struct {
	Path       string      `json:"path"`
	Component  string      `json:"component,omitempty"`
	RedirectTo string      `json:"redirectTo,omitempty"`
	Lazy       bool        `json:"lazy,omitempty"`
	Children   []routeView `json:"children,omitempty"`
}

func routeViews(table router.RouteTable) []routeView {
	views := make([]routeView, 0, len(table))
	for _, route := range table {
		views = append(views, routeView{
			Path:       route.Path,
			Component:  route.Component,
			RedirectTo: route.RedirectTo,
			Lazy:       route.LoadChildren != nil,
			Children:   routeViews(route.Children),
		})
	}
	return views
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"routes": routeViews(s.app.Router.Table()),
	})
}

// stateView is the JSON shape of the current router state.
type stateView struct {
	URL   string          `json:"url,omitempty"`
	Chain []activatedView `json:"chain,omitempty"`
}

type activatedView struct {
	Path      string            `json:"path"`
	Component string            `json:"component"`
	Params    map[string]string `json:"params,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Router.CurrentSnapshot()
	if snap == nil {
		writeJSON(w, http.StatusOK, stateView{})
		return
	}

	var view stateView
	view.URL = snap.URL()
	for node := snap.Root(); node != nil; {
		view.Chain = append(view.Chain, activatedView{
			Path:      node.Path(),
			Component: node.Component(),
			Params:    node.Params(),
		})
		children := node.Children()
		if len(children) == 0 {
			break
		}
		node = children[0]
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be {\"url\": \"/path\"}"})
		return
	}

	if err := s.app.Router.NavigateByURL(r.Context(), body.URL); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	s.handleState(w, r)
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(shellPage))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
