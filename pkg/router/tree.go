package router

import "strings"

// routeNode is a node in the radix tree.
type routeNode struct {
	// segment is the path segment this node matches
	segment string

	// isParam indicates this is a parameter segment (:id)
	isParam bool

	// isCatchAll indicates this is a catch-all segment (*rest)
	isCatchAll bool

	// paramName is the parameter name (without : or *)
	paramName string

	// entry is the route terminating at this node, if any
	entry *routeEntry

	// children are static segment children
	children []*routeNode

	// paramChild is the dynamic parameter child (:id)
	paramChild *routeNode

	// catchAllChild is the catch-all child (*rest)
	catchAllChild *routeNode
}

// routeEntry is a terminal route in the tree together with the chain of
// route definitions leading to it (outermost first).
type routeEntry struct {
	route *Route
	chain []*Route
}

func newRouteNode(segment string) *routeNode {
	return &routeNode{segment: segment}
}

// findChild finds a child node with an exact segment match.
func (n *routeNode) findChild(segment string) *routeNode {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves a child node for the given segment.
func (n *routeNode) addChild(segment string) *routeNode {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newRouteNode(segment)
	n.children = append(n.children, child)
	return child
}

// addParamChild sets the parameter child node.
func (n *routeNode) addParamChild(name string) *routeNode {
	if n.paramChild != nil {
		return n.paramChild
	}
	child := newRouteNode("")
	child.isParam = true
	child.paramName = name
	n.paramChild = child
	return child
}

// addCatchAllChild sets the catch-all child node.
func (n *routeNode) addCatchAllChild(name string) *routeNode {
	if n.catchAllChild != nil {
		return n.catchAllChild
	}
	child := newRouteNode("")
	child.isCatchAll = true
	child.paramName = name
	n.catchAllChild = child
	return child
}

// insert adds a route entry at path. The first entry registered for a node
// wins: later duplicates are ignored so that registration order decides
// precedence.
func (n *routeNode) insert(path string, entry *routeEntry) {
	current := n
	for _, seg := range splitPath(path) {
		if strings.HasPrefix(seg, "*") {
			current = current.addCatchAllChild(seg[1:])
			break // catch-all consumes the rest of the path
		} else if strings.HasPrefix(seg, ":") {
			current = current.addParamChild(seg[1:])
		} else {
			current = current.addChild(seg)
		}
	}
	if current.entry == nil {
		current.entry = entry
	}
}

// match walks the tree for the given segments. Static children win over
// parameter children, which win over catch-alls.
func (n *routeNode) match(segments []string, params Params) (*routeEntry, bool) {
	if len(segments) == 0 {
		if n.entry != nil {
			return n.entry, true
		}
		return nil, false
	}

	seg := segments[0]
	rest := segments[1:]

	if child := n.findChild(seg); child != nil {
		if entry, ok := child.match(rest, params); ok {
			return entry, true
		}
	}

	if n.paramChild != nil {
		if entry, ok := n.paramChild.match(rest, params); ok {
			params[n.paramChild.paramName] = seg
			return entry, true
		}
	}

	if n.catchAllChild != nil && n.catchAllChild.entry != nil {
		params[n.catchAllChild.paramName] = strings.Join(segments, "/")
		return n.catchAllChild.entry, true
	}

	return nil, false
}
