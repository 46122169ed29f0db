package router

import (
	"fmt"
	"sync"
)

// Event is a router lifecycle event. Events are emitted synchronously to
// subscribers in subscription order; observers must not assume they are the
// only subscriber and must not block.
type Event interface {
	// NavigationID identifies the navigation this event belongs to.
	// IDs are assigned sequentially starting at 1.
	NavigationID() int64

	// Kind is a stable name for the event type.
	Kind() string

	fmt.Stringer
}

// NavigationStart is emitted when a navigation begins.
type NavigationStart struct {
	ID  int64
	URL string
}

func (e NavigationStart) NavigationID() int64 { return e.ID }
func (e NavigationStart) Kind() string        { return "NavigationStart" }
func (e NavigationStart) String() string {
	return fmt.Sprintf("NavigationStart(id: %d, url: %q)", e.ID, e.URL)
}

// RoutesRecognized is emitted once the target route tree has been computed,
// before the after-preactivation hook runs.
type RoutesRecognized struct {
	ID       int64
	URL      string
	Snapshot *StateSnapshot
}

func (e RoutesRecognized) NavigationID() int64 { return e.ID }
func (e RoutesRecognized) Kind() string        { return "RoutesRecognized" }
func (e RoutesRecognized) String() string {
	return fmt.Sprintf("RoutesRecognized(id: %d, url: %q)", e.ID, e.URL)
}

// NavigationEnd is emitted when a navigation commits.
type NavigationEnd struct {
	ID  int64
	URL string
}

func (e NavigationEnd) NavigationID() int64 { return e.ID }
func (e NavigationEnd) Kind() string        { return "NavigationEnd" }
func (e NavigationEnd) String() string {
	return fmt.Sprintf("NavigationEnd(id: %d, url: %q)", e.ID, e.URL)
}

// NavigationCancel is emitted when a navigation is abandoned without error,
// e.g. cancelled by the after-preactivation hook.
type NavigationCancel struct {
	ID     int64
	URL    string
	Reason string
}

func (e NavigationCancel) NavigationID() int64 { return e.ID }
func (e NavigationCancel) Kind() string        { return "NavigationCancel" }
func (e NavigationCancel) String() string {
	return fmt.Sprintf("NavigationCancel(id: %d, url: %q, reason: %q)", e.ID, e.URL, e.Reason)
}

// NavigationError is emitted when a navigation fails.
type NavigationError struct {
	ID  int64
	URL string
	Err error
}

func (e NavigationError) NavigationID() int64 { return e.ID }
func (e NavigationError) Kind() string        { return "NavigationError" }
func (e NavigationError) String() string {
	return fmt.Sprintf("NavigationError(id: %d, url: %q, error: %v)", e.ID, e.URL, e.Err)
}

// =============================================================================
// Event Stream
// =============================================================================

// eventStream fans events out to subscribers in subscription order.
type eventStream struct {
	mu     sync.Mutex
	subs   []eventSub
	nextID int
}

type eventSub struct {
	id int
	fn func(Event)
}

// subscribe registers fn and returns a cancel function.
func (s *eventStream) subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, eventSub{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// emit delivers ev to every subscriber. Delivery order equals subscription
// order; the subscriber list is snapshotted so observers can unsubscribe
// from within a callback.
func (s *eventStream) emit(ev Event) {
	s.mu.Lock()
	subs := make([]eventSub, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}
