package observe

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/navkit-dev/navkit/pkg/router"
)

// MetricsConfig configures the Prometheus router metrics observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus router metrics observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "navkit",
		Subsystem: "router",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the router.
type metrics struct {
	eventsTotal        *prometheus.CounterVec
	navigationsTotal   *prometheus.CounterVec
	navigationDuration prometheus.Histogram
}

func newMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of router lifecycle events by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of finished navigations by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		navigationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration from start to a terminal event",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// Metrics subscribes a Prometheus observer to the router's event stream.
// The observer is passive: it counts events and times navigations without
// touching delivery to other subscribers. The returned cancel function
// unsubscribes it.
func Metrics(r *router.Router, opts ...MetricsOption) (cancel func()) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newMetrics(config)

	var mu sync.Mutex
	starts := make(map[int64]time.Time)

	observe := func(id int64, outcome string) {
		mu.Lock()
		started, ok := starts[id]
		delete(starts, id)
		mu.Unlock()
		m.navigationsTotal.WithLabelValues(outcome).Inc()
		if ok {
			m.navigationDuration.Observe(time.Since(started).Seconds())
		}
	}

	return r.Subscribe(func(ev router.Event) {
		m.eventsTotal.WithLabelValues(ev.Kind()).Inc()

		switch e := ev.(type) {
		case router.NavigationStart:
			mu.Lock()
			starts[e.ID] = time.Now()
			mu.Unlock()
		case router.NavigationEnd:
			observe(e.ID, "success")
		case router.NavigationCancel:
			observe(e.ID, "cancel")
		case router.NavigationError:
			observe(e.ID, "error")
		}
	})
}
