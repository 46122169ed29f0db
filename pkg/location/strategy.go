package location

import "strings"

// LocationStrategy is the policy for representing navigation state in the
// browsing context's addressable location. The router talks to exactly one
// strategy for its whole lifetime.
type LocationStrategy interface {
	// Path returns the current application path as the router sees it,
	// with the base href stripped.
	Path() string

	// BaseHref returns the base href the strategy was seeded with.
	BaseHref() string

	// PrepareExternalURL converts an application path into the form the
	// platform location expects (prefixing the base href, and "#" for the
	// hash strategy).
	PrepareExternalURL(internal string) string

	// PushState adds a history entry for the given application path.
	PushState(state any, title, path string)

	// ReplaceState replaces the current history entry with the given path.
	ReplaceState(state any, title, path string)

	// Forward moves forward in history.
	Forward()

	// Back moves back in history.
	Back()

	// OnPopState registers fn to receive the new application path whenever
	// the location changes by history traversal.
	OnPopState(fn func(path string)) (cancel func())
}

// Select chooses the strategy for the single router instance. With useHash
// the fragment-based strategy is returned, otherwise the path-based one.
// The base href override wins over the platform's own base href.
//
// Select is pure: it constructs a strategy and nothing else.
func Select(platform PlatformLocation, baseHrefOverride string, useHash bool) LocationStrategy {
	baseHref := baseHrefOverride
	if baseHref == "" {
		baseHref = platform.BaseHref()
	}
	if useHash {
		return NewHashStrategy(platform, baseHref)
	}
	return NewPathStrategy(platform, baseHref)
}

// =============================================================================
// Path Strategy
// =============================================================================

// PathStrategy keeps the application path in the location's pathname
// ("/base/users/42").
type PathStrategy struct {
	platform PlatformLocation
	baseHref string
}

// NewPathStrategy creates a path-based strategy seeded with baseHref.
func NewPathStrategy(platform PlatformLocation, baseHref string) *PathStrategy {
	return &PathStrategy{platform: platform, baseHref: normalizeBaseHref(baseHref)}
}

func (s *PathStrategy) Path() string {
	return stripBaseHref(s.platform.Path(), s.baseHref)
}

func (s *PathStrategy) BaseHref() string {
	return s.baseHref
}

func (s *PathStrategy) PrepareExternalURL(internal string) string {
	return joinPath(s.baseHref, internal)
}

func (s *PathStrategy) PushState(state any, title, path string) {
	s.platform.PushState(state, title, s.PrepareExternalURL(path))
}

func (s *PathStrategy) ReplaceState(state any, title, path string) {
	s.platform.ReplaceState(state, title, s.PrepareExternalURL(path))
}

func (s *PathStrategy) Forward() { s.platform.Forward() }
func (s *PathStrategy) Back()    { s.platform.Back() }

func (s *PathStrategy) OnPopState(fn func(path string)) (cancel func()) {
	return s.platform.OnPopState(func() {
		fn(s.Path())
	})
}

// =============================================================================
// Hash Strategy
// =============================================================================

// HashStrategy keeps the application path in the location's fragment
// ("/base#/users/42"). Useful when the server cannot rewrite deep links.
type HashStrategy struct {
	platform PlatformLocation
	baseHref string
}

// NewHashStrategy creates a fragment-based strategy seeded with baseHref.
func NewHashStrategy(platform PlatformLocation, baseHref string) *HashStrategy {
	return &HashStrategy{platform: platform, baseHref: normalizeBaseHref(baseHref)}
}

func (s *HashStrategy) Path() string {
	hash := strings.TrimPrefix(s.platform.Hash(), "#")
	if hash == "" {
		hash = "/"
	}
	return hash
}

func (s *HashStrategy) BaseHref() string {
	return s.baseHref
}

func (s *HashStrategy) PrepareExternalURL(internal string) string {
	if internal == "" {
		internal = "/"
	}
	return s.baseHref + "#" + internal
}

func (s *HashStrategy) PushState(state any, title, path string) {
	s.platform.PushState(state, title, s.PrepareExternalURL(path))
}

func (s *HashStrategy) ReplaceState(state any, title, path string) {
	s.platform.ReplaceState(state, title, s.PrepareExternalURL(path))
}

func (s *HashStrategy) Forward() { s.platform.Forward() }
func (s *HashStrategy) Back()    { s.platform.Back() }

func (s *HashStrategy) OnPopState(fn func(path string)) (cancel func()) {
	return s.platform.OnPopState(func() {
		fn(s.Path())
	})
}

// =============================================================================
// Path Helpers
// =============================================================================

// normalizeBaseHref trims a trailing slash so joining never doubles it.
// "/" and "" both normalize to "".
func normalizeBaseHref(baseHref string) string {
	return strings.TrimSuffix(baseHref, "/")
}

// joinPath joins the base href and an application path.
func joinPath(baseHref, path string) string {
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseHref + path
}

// stripBaseHref removes the base href prefix from a platform path. The
// prefix must end at a segment boundary: base "/app" covers "/app" and
// "/app/users" but not "/apple".
func stripBaseHref(path, baseHref string) string {
	if baseHref != "" && strings.HasPrefix(path, baseHref) {
		rest := path[len(baseHref):]
		if rest == "" || rest[0] == '/' {
			path = rest
		}
	}
	if path == "" {
		return "/"
	}
	return path
}
