// Package loader builds lazy route modules from manifests.
//
// A route-module manifest is a JSON document describing the routes a
// module contributes:
//
//	{
//	  "module": "admin",
//	  "routes": [
//	    {"path": "", "redirectTo": "users"},
//	    {"path": "users", "component": "AdminUsers"},
//	    {"path": "reports", "module": "admin-reports"}
//	  ]
//	}
//
// An entry with "module" references another manifest by name, producing a
// nested lazy module. Manifests are fetched through a Source (local disk,
// S3) and compiled into router.RouteTable values; results are cached per
// module name.
package loader

import (
	"encoding/json"

	"github.com/navkit-dev/navkit/internal/errors"
)

// Manifest is the parsed form of a route-module manifest.
type Manifest struct {
	// Module is the module's name, used for diagnostics only; the source
	// name the manifest was fetched under is authoritative.
	Module string `json:"module"`

	// Routes are the module's route entries.
	Routes []ManifestRoute `json:"routes"`
}

// ManifestRoute is one route entry in a manifest.
type ManifestRoute struct {
	Path       string          `json:"path"`
	Component  string          `json:"component,omitempty"`
	RedirectTo string          `json:"redirectTo,omitempty"`
	Module     string          `json:"module,omitempty"`
	Children   []ManifestRoute `json:"children,omitempty"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("N061").Wrap(err)
	}
	return &m, nil
}

// validate checks every referenced component against the known set.
// A nil set disables validation.
func (m *Manifest) validate(components map[string]bool) error {
	if components == nil {
		return nil
	}
	return validateRoutes(m.Routes, components)
}

func validateRoutes(routes []ManifestRoute, components map[string]bool) error {
	for _, route := range routes {
		if route.Component != "" && !components[route.Component] {
			return errors.New("N061").
				WithMessagef("manifest references unknown component %q", route.Component).
				WithSuggestion("register the component name with loader.WithComponents")
		}
		if err := validateRoutes(route.Children, components); err != nil {
			return err
		}
	}
	return nil
}
