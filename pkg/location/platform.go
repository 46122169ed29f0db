package location

import (
	"strings"
	"sync"
)

// PlatformLocation is the narrow interface to the browsing context's
// addressable location. Strategies read and mutate the location exclusively
// through it, so the rest of navkit never touches a real browser API.
type PlatformLocation interface {
	// Path returns the current pathname, including query if present.
	Path() string

	// Hash returns the current fragment, including the leading "#",
	// or "" when no fragment is set.
	Hash() string

	// BaseHref returns the document's base href ("" when unset).
	BaseHref() string

	// PushState adds a history entry and updates the location to url.
	PushState(state any, title, url string)

	// ReplaceState replaces the current history entry with url.
	ReplaceState(state any, title, url string)

	// Forward moves one entry forward in history, if possible.
	Forward()

	// Back moves one entry back in history, if possible.
	Back()

	// OnPopState registers fn to run whenever the location changes by
	// history traversal (back/forward). The returned function cancels
	// the registration.
	OnPopState(fn func()) (cancel func())
}

// =============================================================================
// In-Memory Platform
// =============================================================================

// MemoryPlatform is a PlatformLocation backed by an in-process history stack.
// It is used by tests and by the dev shell server, where no browser exists.
type MemoryPlatform struct {
	mu        sync.Mutex
	baseHref  string
	stack     []memoryEntry
	index     int
	listeners []popListener
	nextID    int
}

type memoryEntry struct {
	state any
	title string
	url   string
}

// popListener keeps listeners in registration order so notification order
// is deterministic.
type popListener struct {
	id int
	fn func()
}

// NewMemoryPlatform creates a MemoryPlatform positioned at startURL.
// The URL may carry a fragment ("/app#/users"), which is exposed via Hash.
func NewMemoryPlatform(baseHref, startURL string) *MemoryPlatform {
	return &MemoryPlatform{
		baseHref: baseHref,
		stack:    []memoryEntry{{url: startURL}},
	}
}

func (p *MemoryPlatform) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	url := p.stack[p.index].url
	if i := strings.IndexByte(url, '#'); i >= 0 {
		return url[:i]
	}
	return url
}

func (p *MemoryPlatform) Hash() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	url := p.stack[p.index].url
	if i := strings.IndexByte(url, '#'); i >= 0 {
		return url[i:]
	}
	return ""
}

func (p *MemoryPlatform) BaseHref() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.baseHref
}

func (p *MemoryPlatform) PushState(state any, title, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stack = append(p.stack[:p.index+1], memoryEntry{state: state, title: title, url: url})
	p.index = len(p.stack) - 1
}

func (p *MemoryPlatform) ReplaceState(state any, title, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stack[p.index] = memoryEntry{state: state, title: title, url: url}
}

func (p *MemoryPlatform) Forward() {
	p.mu.Lock()
	if p.index >= len(p.stack)-1 {
		p.mu.Unlock()
		return
	}
	p.index++
	fns := p.listenerSnapshot()
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (p *MemoryPlatform) Back() {
	p.mu.Lock()
	if p.index == 0 {
		p.mu.Unlock()
		return
	}
	p.index--
	fns := p.listenerSnapshot()
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (p *MemoryPlatform) OnPopState(fn func()) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners = append(p.listeners, popListener{id: id, fn: fn})
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, l := range p.listeners {
			if l.id == id {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetURL jumps the current entry to url and notifies popstate listeners,
// simulating an address-bar edit followed by history traversal.
func (p *MemoryPlatform) SetURL(url string) {
	p.mu.Lock()
	p.stack[p.index] = memoryEntry{url: url}
	fns := p.listenerSnapshot()
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// HistoryLength returns the number of entries on the history stack.
func (p *MemoryPlatform) HistoryLength() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stack)
}

// listenerSnapshot copies the listeners in registration order. Callers must
// hold p.mu.
func (p *MemoryPlatform) listenerSnapshot() []func() {
	fns := make([]func(), 0, len(p.listeners))
	for _, l := range p.listeners {
		fns = append(fns, l.fn)
	}
	return fns
}
