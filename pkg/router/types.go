package router

import (
	"context"
	"strings"
)

// Params are the route parameters extracted from a matched URL.
type Params map[string]string

// ModuleFunc loads a lazily-loadable route module. It is invoked at most
// once per route; the result is cached by the router.
type ModuleFunc func(ctx context.Context) (RouteTable, error)

// Route is a single path-to-component mapping entry.
//
// Paths use the same segment syntax as static routes throughout navkit:
//
//	/users          static segments
//	/users/:id      parameter segment
//	/files/*rest    catch-all segment (consumes the remainder)
//
// Exactly one of Component, RedirectTo, or a non-empty Children/LoadChildren
// pair is expected on a terminal route; the router does not validate
// beyond what matching requires.
type Route struct {
	// Path is the route's path relative to its parent.
	Path string

	// Component names the component type activated for this route.
	// The bootstrap layer treats it opaquely.
	Component string

	// RedirectTo rewrites the navigation URL and restarts matching.
	RedirectTo string

	// Children are nested routes matched under this route's path.
	Children RouteTable

	// LoadChildren loads nested routes on demand. Loaded children are
	// registered under this route's path and cached.
	LoadChildren ModuleFunc
}

// RouteTable is an ordered sequence of routes. Order is significant:
// earlier entries take precedence in matching.
type RouteTable []Route

// joinPaths joins a parent and child route path.
func joinPaths(parent, child string) string {
	parent = strings.TrimSuffix(parent, "/")
	child = strings.TrimPrefix(child, "/")
	if child == "" {
		if parent == "" {
			return "/"
		}
		return parent
	}
	return parent + "/" + child
}

// splitPath splits a URL path into segments, dropping empty ones.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// stripQuery returns the path portion of a URL, without query or fragment.
func stripQuery(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}
