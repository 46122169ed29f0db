// Package observe provides observability hooks for the navkit router.
//
// This package includes:
//   - Prometheus metrics for navigation events and durations
//   - OpenTelemetry span-per-navigation tracing
//
// Both observers attach to a router's event stream and never interfere with
// navigation itself.
//
// # Prometheus Metrics
//
// The metrics observer collects:
//   - navkit_router_events_total: lifecycle events by kind
//   - navkit_router_navigations_total: finished navigations by outcome
//   - navkit_router_navigation_duration_seconds: start-to-terminal duration
//
//	cancel := observe.Metrics(app.Router)
//	defer cancel()
//
// Configure with options:
//
//	observe.Metrics(app.Router,
//	    observe.WithNamespace("myapp"),
//	    observe.WithRegistry(registry),
//	)
//
// # OpenTelemetry Tracing
//
// The tracing observer opens one span per navigation, from NavigationStart to
// the terminal event, with the URL, recognized component, and outcome:
//
//	cancel := observe.Tracing(app.Router,
//	    observe.WithTracerName("my-app"),
//	    observe.WithNavigationFilter(func(url string) bool {
//	        return url != "/healthz"
//	    }),
//	)
package observe
