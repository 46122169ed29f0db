// Package router implements the client-side navigation service for navkit.
//
// The router owns a merged route table, matches URLs against it with a
// radix tree, and drives navigations through a fixed pipeline:
//
//	NavigationStart -> recognize -> RoutesRecognized
//	    -> after-preactivation hook -> commit -> NavigationEnd
//
// Every completed navigation replaces the current StateSnapshot, an
// immutable tree of activated routes. Lifecycle events fan out to
// subscribers in subscription order; observers are passive and never alter
// delivery to other subscribers.
//
// # Route Syntax
//
// Route paths use segment syntax:
//
//	/users          static segments
//	/users/:id      parameter segment
//	/files/*rest    catch-all segment
//
// Static segments win over parameters, which win over catch-alls; among
// equal patterns, the earlier-registered route takes precedence.
//
// # Lazy Modules
//
// A route with LoadChildren defers its subtree until a navigation needs it
// or a preloading strategy warms it. Loaded tables are cached and
// registered under the route's path.
//
// The router is constructed exactly once per application by the navkit
// provisioning layer; child modules contribute route tables but never
// create a second instance.
package router
