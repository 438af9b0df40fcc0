// Package clock defines the identity-typed entities a timed automaton is
// built from: clocks, actions, alphabets, and locations. All four are
// allocated through package-level factories and compare by stable id, the
// same arena-of-structs-with-int-ids shape the teacher uses for
// Vertex/Edge in core/types.go.
//
// Errors:
//
//	ErrEmptyName - a factory was asked to create an entity with an empty name.
package clock

import (
	"errors"
	"sync/atomic"
)

// ErrEmptyName indicates a factory call with an empty display name.
var ErrEmptyName = errors.New("clock: name must not be empty")

var nextID uint64 // process-wide monotonic id counter, mirrors core.Graph.nextEdgeID

func allocID() uint64 {
	return atomic.AddUint64(&nextID, 1)
}

// Clock is a stable-id, named timer with a saturation ceiling κ.
type Clock struct {
	id    uint64
	name  string
	kappa int
}

// ZeroClock is the process-wide singleton x0: id 0, κ=0. Every ClockValuation
// carries it implicitly at value 0. Two Clock values are equal iff their ids
// are equal, so comparing against ZeroClock is always `c.ID() == ZeroClock.ID()`.
var ZeroClock = Clock{id: 0, name: "x0", kappa: 0}

// NewClock allocates a fresh clock with the given name and ceiling κ>=0.
// Fails with ErrEmptyName if name is empty.
func NewClock(name string, kappa int) (Clock, error) {
	if name == "" {
		return Clock{}, ErrEmptyName
	}
	return Clock{id: allocID(), name: name, kappa: kappa}, nil
}

// ID returns the clock's stable id.
func (c Clock) ID() uint64 { return c.id }

// Name returns the clock's display name.
func (c Clock) Name() string { return c.name }

// Kappa returns the clock's saturation ceiling.
func (c Clock) Kappa() int { return c.kappa }

// Equal reports whether c and other are the same clock (by id).
func (c Clock) Equal(other Clock) bool { return c.id == other.id }

// IsZero reports whether c is the distinguished zero clock.
func (c Clock) IsZero() bool { return c.id == ZeroClock.id }

// Action is a stable-id, named alphabet symbol. Equality is by name, matching
// spec.md §3 ("Action ... equality by name") rather than by id, since actions
// created with the same name via Alphabet.CreateAction must compare equal.
type Action struct {
	id   uint64
	name string
}

// NewAction allocates a fresh action. Fails with ErrEmptyName if name is
// empty. Prefer Alphabet.CreateAction for deduplicated construction.
func NewAction(name string) (Action, error) {
	if name == "" {
		return Action{}, ErrEmptyName
	}
	return Action{id: allocID(), name: name}, nil
}

// ID returns the action's stable id.
func (a Action) ID() uint64 { return a.id }

// Name returns the action's display name.
func (a Action) Name() string { return a.name }

// Equal reports whether a and other denote the same action, by name.
func (a Action) Equal(other Action) bool { return a.name == other.name }

// Location is a stable-id, labelled automaton state, optionally marked as
// the completion sink.
type Location struct {
	id    uint64
	label string
	sink  bool
}

// NewLocation allocates a fresh, non-sink location.
func NewLocation(label string) (Location, error) {
	if label == "" {
		return Location{}, ErrEmptyName
	}
	return Location{id: allocID(), label: label}, nil
}

// NewSinkLocation allocates a fresh sink location. Sinks may only be created
// through this factory, matching spec.md §4.B ("sink marker created only via
// a factory").
func NewSinkLocation(label string) Location {
	return Location{id: allocID(), label: label, sink: true}
}

// ID returns the location's stable id.
func (l Location) ID() uint64 { return l.id }

// Label returns the location's display label.
func (l Location) Label() string { return l.label }

// IsSink reports whether l is a completion sink.
func (l Location) IsSink() bool { return l.sink }

// Equal reports whether l and other are the same location (by id).
func (l Location) Equal(other Location) bool { return l.id == other.id }
