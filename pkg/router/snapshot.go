package router

// StateSnapshot is an immutable tree describing the currently activated
// route path. A new snapshot replaces the previous one on every completed
// navigation; snapshots are never mutated in place.
type StateSnapshot struct {
	url  string
	root *ActivatedRoute
}

// URL returns the URL this snapshot was built for.
func (s *StateSnapshot) URL() string {
	return s.url
}

// Root returns the root of the activated route tree. The root corresponds
// to the application's root component; matched routes hang below it.
func (s *StateSnapshot) Root() *ActivatedRoute {
	return s.root
}

// Leaf returns the deepest activated route.
func (s *StateSnapshot) Leaf() *ActivatedRoute {
	node := s.root
	for len(node.children) > 0 {
		node = node.children[0]
	}
	return node
}

// ActivatedRoute is one level of an activated route tree.
type ActivatedRoute struct {
	path      string
	component string
	params    Params
	parent    *ActivatedRoute
	children  []*ActivatedRoute
}

// Path returns the matched route pattern for this level.
func (a *ActivatedRoute) Path() string {
	return a.path
}

// Component returns the component type name activated at this level.
func (a *ActivatedRoute) Component() string {
	return a.component
}

// Params returns the route parameters visible at this level.
func (a *ActivatedRoute) Params() Params {
	return a.params
}

// Parent returns the parent activated route, or nil at the root.
func (a *ActivatedRoute) Parent() *ActivatedRoute {
	return a.parent
}

// Children returns the child activated routes.
func (a *ActivatedRoute) Children() []*ActivatedRoute {
	return a.children
}

// buildSnapshot constructs the snapshot for a matched route chain.
// The chain is outermost-first; params are shared by every level, matching
// the flat parameter namespace of the URL.
func buildSnapshot(url, rootComponent string, chain []*Route, params Params) *StateSnapshot {
	root := &ActivatedRoute{component: rootComponent, params: params}
	parent := root
	for _, route := range chain {
		node := &ActivatedRoute{
			path:      route.Path,
			component: route.Component,
			params:    params,
			parent:    parent,
		}
		parent.children = []*ActivatedRoute{node}
		parent = node
	}
	return &StateSnapshot{url: url, root: root}
}
