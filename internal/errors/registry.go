package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Composition Errors (N001-N019)
	// ============================================

	"N001": {
		Category: CategoryConfig,
		Message:  "Root router registered more than once",
		Detail:   "Exactly one module may register the root router. Child modules must use RegisterChild, which contributes route tables without provisioning a second router.",
		DocURL:   "https://navkit.dev/docs/errors/N001",
	},
	"N002": {
		Category: CategoryConfig,
		Message:  "No root router registered",
		Detail:   "Provision requires a prior RegisterRoot call. Child registrations alone cannot provision the router.",
		DocURL:   "https://navkit.dev/docs/errors/N002",
	},
	"N003": {
		Category: CategoryConfig,
		Message:  "Router already provisioned",
		Detail:   "Provision may be called once per composition pass. Reuse the provisioned App instead of provisioning again.",
		DocURL:   "https://navkit.dev/docs/errors/N003",
	},

	// ============================================
	// Bootstrap Errors (N020-N039)
	// ============================================

	"N020": {
		Category: CategoryBootstrap,
		Message:  "Location subsystem failed to become ready",
		Detail:   "The host's location-ready signal reported an error before the initial navigation could start. This is fatal to bootstrap.",
		DocURL:   "https://navkit.dev/docs/errors/N020",
	},
	"N021": {
		Category: CategoryBootstrap,
		Message:  "Startup hook invoked out of order",
		Detail:   "AppInitializer must run and settle before BootstrapListener can release the initial navigation.",
		DocURL:   "https://navkit.dev/docs/errors/N021",
	},

	// ============================================
	// Navigation Errors (N040-N059)
	// ============================================

	"N040": {
		Category: CategoryNavigation,
		Message:  "No route matches the requested URL",
		DocURL:   "https://navkit.dev/docs/errors/N040",
	},
	"N041": {
		Category: CategoryNavigation,
		Message:  "Redirect loop detected",
		Detail:   "A chain of RedirectTo routes never reached a terminal route.",
		DocURL:   "https://navkit.dev/docs/errors/N041",
	},

	// ============================================
	// Module Loading Errors (N060-N079)
	// ============================================

	"N060": {
		Category: CategoryModule,
		Message:  "Lazy route module failed to load",
		DocURL:   "https://navkit.dev/docs/errors/N060",
	},
	"N061": {
		Category: CategoryModule,
		Message:  "Route module manifest is invalid",
		Detail:   "The manifest could not be parsed, or it references components that are not registered.",
		DocURL:   "https://navkit.dev/docs/errors/N061",
	},
	"N062": {
		Category: CategoryModule,
		Message:  "Route module manifest not found",
		DocURL:   "https://navkit.dev/docs/errors/N062",
	},

	// ============================================
	// CLI Errors (N080-N099)
	// ============================================

	"N080": {
		Category: CategoryCLI,
		Message:  "Project configuration not found",
		Detail:   "No navkit.json was found in the current directory or any parent directory.",
		DocURL:   "https://navkit.dev/docs/errors/N080",
	},
	"N081": {
		Category: CategoryCLI,
		Message:  "Project configuration is invalid",
		DocURL:   "https://navkit.dev/docs/errors/N081",
	},
}

// Lookup returns the template for a code, if registered.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
