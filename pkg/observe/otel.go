package observe

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/navkit-dev/navkit/pkg/router"
)

// Default tracer name for navkit applications.
const defaultTracerName = "navkit"

// TracingConfig configures the OpenTelemetry navigation observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "navkit").
	TracerName string

	// IncludeComponent includes the leaf component name of the recognized
	// route in spans. Enabled by default.
	IncludeComponent bool

	// Filter determines which navigations to trace. Called with the target
	// URL when the navigation starts; return true to trace it.
	// If nil, all navigations are traced.
	Filter func(url string) bool

	// AttributeExtractor extracts custom attributes from the recognized
	// snapshot. Called once per traced navigation.
	AttributeExtractor func(snapshot *router.StateSnapshot) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry navigation observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithIncludeComponent enables/disables including the leaf component in spans.
func WithIncludeComponent(include bool) TracingOption {
	return func(c *TracingConfig) {
		c.IncludeComponent = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(url string) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(snapshot *router.StateSnapshot) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName:       defaultTracerName,
		IncludeComponent: true,
	}
}

// Tracing subscribes an OpenTelemetry observer to the router's event stream.
//
// Each navigation becomes one span, opened on NavigationStart and closed on
// the terminal event. NavigationEnd sets status Ok; NavigationError records
// the error and sets status Error; NavigationCancel stays unset and carries
// the cancel reason as an attribute.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it in
// your main() before provisioning the router:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
//
// The returned cancel function unsubscribes the observer and ends any spans
// still open.
func Tracing(r *router.Router, opts ...TracingOption) (cancel func()) {
	config := defaultTracingConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	var mu sync.Mutex
	spans := make(map[int64]trace.Span)

	finish := func(id int64) (trace.Span, bool) {
		mu.Lock()
		span, ok := spans[id]
		delete(spans, id)
		mu.Unlock()
		return span, ok
	}

	unsubscribe := r.Subscribe(func(ev router.Event) {
		switch e := ev.(type) {
		case router.NavigationStart:
			if config.Filter != nil && !config.Filter(e.URL) {
				return
			}
			_, span := config.tracer.Start(
				context.Background(),
				fmt.Sprintf("navigate %s", e.URL),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.Int64("navkit.navigation_id", e.ID),
					attribute.String("navkit.url", e.URL),
				),
			)
			mu.Lock()
			spans[e.ID] = span
			mu.Unlock()

		case router.RoutesRecognized:
			mu.Lock()
			span, ok := spans[e.ID]
			mu.Unlock()
			if !ok {
				return
			}
			span.AddEvent("routes recognized")
			if e.Snapshot != nil {
				if config.IncludeComponent {
					if leaf := e.Snapshot.Leaf(); leaf != nil {
						span.SetAttributes(attribute.String("navkit.component", leaf.Component()))
					}
				}
				if config.AttributeExtractor != nil {
					span.SetAttributes(config.AttributeExtractor(e.Snapshot)...)
				}
			}

		case router.NavigationEnd:
			if span, ok := finish(e.ID); ok {
				span.SetStatus(codes.Ok, "")
				span.End()
			}

		case router.NavigationCancel:
			if span, ok := finish(e.ID); ok {
				span.SetAttributes(attribute.String("navkit.cancel_reason", e.Reason))
				span.End()
			}

		case router.NavigationError:
			if span, ok := finish(e.ID); ok {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
				span.End()
			}
		}
	})

	return func() {
		unsubscribe()
		mu.Lock()
		open := spans
		spans = make(map[int64]trace.Span)
		mu.Unlock()
		for _, span := range open {
			span.End()
		}
	}
}
