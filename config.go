package navkit

import (
	"log/slog"

	"github.com/navkit-dev/navkit/pkg/preload"
)

// Options is the configuration record supplied with a root registration.
// Exactly one effective Options value exists per application; it is read at
// provisioning time and not re-evaluated afterwards.
type Options struct {
	// EnableTracing logs every router lifecycle event as it is emitted.
	EnableTracing bool

	// UseHash selects the fragment-based location strategy instead of the
	// path-based one.
	UseHash bool

	// SkipInitialNavigation disables the automatic first navigation. The
	// router only listens for subsequent location changes; the application
	// triggers its first navigation itself when ready.
	SkipInitialNavigation bool

	// BaseHref overrides the base href reported by the platform location.
	BaseHref string

	// ErrorHandler overrides the router's default unhandled-navigation-error
	// behavior. If nil, the router logs the error.
	ErrorHandler func(error)

	// PreloadingStrategy selects how lazy route modules are warmed once the
	// first root view is attached. If nil, no preloading happens.
	PreloadingStrategy preload.Strategy

	// Logger is the structured logger used across the provisioned services.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns the default configuration: path-based location
// strategy, automatic initial navigation, no preloading, no tracing.
func DefaultOptions() Options {
	return Options{
		PreloadingStrategy: preload.NoPreloading(),
	}
}

// logger returns the configured logger, falling back to slog.Default().
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
