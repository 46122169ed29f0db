package navkit

import (
	"sync"

	"github.com/navkit-dev/navkit/internal/errors"
	"github.com/navkit-dev/navkit/pkg/router"
)

// Registry accumulates route-table contributions from the application's
// modules during composition. Exactly one module registers as root and
// supplies the Options; any number of child modules contribute route tables
// before or after it. Registration order is significant: Flatten preserves
// it, and the router matches earlier-registered routes first.
type Registry struct {
	mu          sync.Mutex
	tables      []router.RouteTable
	rootSet     bool
	opts        Options
	provisioned bool
}

// NewRegistry creates an empty registry for one composition pass.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterRoot registers the root module's route table and configuration.
// The root owns the singleton router; a second root registration fails
// composition immediately.
func (g *Registry) RegisterRoot(routes router.RouteTable, opts Options) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rootSet {
		return errors.New("N001")
	}
	g.rootSet = true
	g.opts = opts
	g.tables = append(g.tables, routes)
	return nil
}

// RegisterChild contributes a child module's route table. It never fails
// and may be called any number of times.
func (g *Registry) RegisterChild(routes router.RouteTable) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tables = append(g.tables, routes)
}

// Flatten returns the concatenation of every contributed route table in
// registration order.
func (g *Registry) Flatten() router.RouteTable {
	g.mu.Lock()
	defer g.mu.Unlock()
	var flat router.RouteTable
	for _, table := range g.tables {
		flat = append(flat, table...)
	}
	return flat
}

// Options returns the configuration supplied with the root registration.
// The zero Options is returned before a root registers.
func (g *Registry) Options() Options {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opts
}

// markProvisioned records that Provision consumed this registry. The second
// attempt fails: the router is a singleton per composition pass.
func (g *Registry) markProvisioned() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.rootSet {
		return errors.New("N002")
	}
	if g.provisioned {
		return errors.New("N003")
	}
	g.provisioned = true
	return nil
}
