// Package automaton implements the DTA model and operations of spec.md
// §4.G/§4.H: locations/transitions held in an arena indexed by integer ids
// (grounded on the teacher's core.Graph, which holds Vertex/Edge the same
// way), completeness/determinism analysis, completion to a complete DTA via
// a sink, synchronised product, complement, and DBM-based witness search.
//
// Errors:
//
//	ErrUnknownLocation - a transition referenced a location not in the DTA.
//	ErrUnknownAction   - a transition referenced an action not in the alphabet.
package automaton

import (
	"errors"
	"strings"
	"sync"

	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
)

// ErrUnknownLocation indicates a reference to a location id the DTA does
// not hold.
var ErrUnknownLocation = errors.New("automaton: unknown location")

// ErrUnknownAction indicates a reference to an action not in the DTA's
// alphabet.
var ErrUnknownAction = errors.New("automaton: unknown action")

// Transition is the 5-tuple (source, action, guard, resets, target) of
// spec.md §3. Equality is by ID.
type Transition struct {
	ID      uint64
	Source  clock.Location
	Action  clock.Action
	Guard   guard.Constraint
	Resets  []clock.Clock
	Target  clock.Location
}

// DTA is the deterministic timed automaton model of spec.md §4.G: clocks,
// alphabet, locations, accepting set, transitions, and bidirectional
// indices. Mutations invalidate the lazily computed max-constant cache.
// muLoc/muTrans mirror the teacher's muVert/muEdgeAdj per-concern locking
// (core/types.go): one lock per independently-mutated catalog.
type DTA struct {
	muLoc   sync.RWMutex
	muTrans sync.RWMutex

	Clocks   []clock.Clock
	Alphabet *clock.Alphabet

	locations  []clock.Location
	locByID    map[uint64]int
	accepting  map[uint64]bool
	init       clock.Location
	hasInit    bool
	sink       *clock.Location

	transitions []Transition
	nextTransID uint64

	outgoing map[uint64][]int // location id -> transition indices
	incoming map[uint64][]int
	byAction map[string][]int // action name -> transition indices

	maxConstCache    int
	maxConstComputed bool
}

// New returns an empty DTA over clocks and alphabet.
func New(clocks []clock.Clock, alphabet *clock.Alphabet) *DTA {
	return &DTA{
		Clocks:    clocks,
		Alphabet:  alphabet,
		locByID:   make(map[uint64]int),
		accepting: make(map[uint64]bool),
		outgoing:  make(map[uint64][]int),
		incoming:  make(map[uint64][]int),
		byAction:  make(map[string][]int),
	}
}

// AddLocation registers loc in the DTA.
func (d *DTA) AddLocation(loc clock.Location) {
	d.muLoc.Lock()
	defer d.muLoc.Unlock()
	if _, ok := d.locByID[loc.ID()]; ok {
		return
	}
	d.locByID[loc.ID()] = len(d.locations)
	d.locations = append(d.locations, loc)
	if loc.IsSink() {
		l := loc
		d.sink = &l
	}
}

// SetInit marks loc as the initial location. loc must already have been
// added via AddLocation.
func (d *DTA) SetInit(loc clock.Location) error {
	d.muLoc.Lock()
	defer d.muLoc.Unlock()
	if _, ok := d.locByID[loc.ID()]; !ok {
		return ErrUnknownLocation
	}
	d.init = loc
	d.hasInit = true
	return nil
}

// Init returns the DTA's initial location.
func (d *DTA) Init() clock.Location { return d.init }

// Locations returns all registered locations.
func (d *DTA) Locations() []clock.Location {
	d.muLoc.RLock()
	defer d.muLoc.RUnlock()
	out := make([]clock.Location, len(d.locations))
	copy(out, d.locations)
	return out
}

// HasLocation reports whether loc is registered.
func (d *DTA) HasLocation(loc clock.Location) bool {
	d.muLoc.RLock()
	defer d.muLoc.RUnlock()
	_, ok := d.locByID[loc.ID()]
	return ok
}

// MarkAccepting marks loc as accepting.
func (d *DTA) MarkAccepting(loc clock.Location) {
	d.muLoc.Lock()
	defer d.muLoc.Unlock()
	d.accepting[loc.ID()] = true
}

// IsAccepting reports whether loc is accepting.
func (d *DTA) IsAccepting(loc clock.Location) bool {
	d.muLoc.RLock()
	defer d.muLoc.RUnlock()
	return d.accepting[loc.ID()]
}

// Sink returns the DTA's sink location, if one has been created.
func (d *DTA) Sink() (clock.Location, bool) {
	d.muLoc.RLock()
	defer d.muLoc.RUnlock()
	if d.sink == nil {
		return clock.Location{}, false
	}
	return *d.sink, true
}

// EnsureSink returns the DTA's sink location, creating one (non-accepting)
// if absent.
func (d *DTA) EnsureSink() clock.Location {
	if s, ok := d.Sink(); ok {
		return s
	}
	s := clock.NewSinkLocation("sink")
	d.AddLocation(s)
	return s
}

// AddTransition registers a new transition, failing with ErrUnknownLocation
// or ErrUnknownAction if source/target/action are not registered.
func (d *DTA) AddTransition(source clock.Location, action clock.Action, g guard.Constraint, resets []clock.Clock, target clock.Location) (Transition, error) {
	if !d.HasLocation(source) || !d.HasLocation(target) {
		return Transition{}, ErrUnknownLocation
	}
	if _, ok := d.Alphabet.Lookup(action.Name()); !ok {
		return Transition{}, ErrUnknownAction
	}

	d.muTrans.Lock()
	defer d.muTrans.Unlock()
	d.nextTransID++
	t := Transition{ID: d.nextTransID, Source: source, Action: action, Guard: g, Resets: append([]clock.Clock{}, resets...), Target: target}
	idx := len(d.transitions)
	d.transitions = append(d.transitions, t)
	d.outgoing[source.ID()] = append(d.outgoing[source.ID()], idx)
	d.incoming[target.ID()] = append(d.incoming[target.ID()], idx)
	d.byAction[action.Name()] = append(d.byAction[action.Name()], idx)
	d.maxConstComputed = false
	return t, nil
}

// Transitions returns all transitions.
func (d *DTA) Transitions() []Transition {
	d.muTrans.RLock()
	defer d.muTrans.RUnlock()
	out := make([]Transition, len(d.transitions))
	copy(out, d.transitions)
	return out
}

// Outgoing returns the transitions with source loc.
func (d *DTA) Outgoing(loc clock.Location) []Transition {
	d.muTrans.RLock()
	defer d.muTrans.RUnlock()
	idxs := d.outgoing[loc.ID()]
	out := make([]Transition, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, d.transitions[i])
	}
	return out
}

// OutgoingByAction returns the transitions with source loc and action a.
func (d *DTA) OutgoingByAction(loc clock.Location, a clock.Action) []Transition {
	all := d.Outgoing(loc)
	out := make([]Transition, 0, len(all))
	for _, t := range all {
		if t.Action.Equal(a) {
			out = append(out, t)
		}
	}
	return out
}

// Incoming returns the transitions with target loc.
func (d *DTA) Incoming(loc clock.Location) []Transition {
	d.muTrans.RLock()
	defer d.muTrans.RUnlock()
	idxs := d.incoming[loc.ID()]
	out := make([]Transition, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, d.transitions[i])
	}
	return out
}

// MaxConstant returns the largest clock ceiling κ across the DTA's clocks,
// cached lazily and invalidated by AddTransition/clock-set mutation.
func (d *DTA) MaxConstant() int {
	d.muTrans.Lock()
	defer d.muTrans.Unlock()
	if d.maxConstComputed {
		return d.maxConstCache
	}
	max := 0
	for _, c := range d.Clocks {
		if c.Kappa() > max {
			max = c.Kappa()
		}
	}
	d.maxConstCache = max
	d.maxConstComputed = true
	return max
}

// String renders d's locations and transitions, one per line.
func (d *DTA) String() string {
	var b strings.Builder
	for _, loc := range d.Locations() {
		b.WriteString(loc.Label())
		if d.IsAccepting(loc) {
			b.WriteString(" (accepting)")
		}
		if d.hasInit && loc.ID() == d.init.ID() {
			b.WriteString(" (init)")
		}
		b.WriteByte('\n')
	}
	for _, t := range d.Transitions() {
		b.WriteString(t.Source.Label())
		b.WriteString(" --")
		b.WriteString(t.Action.Name())
		for _, a := range t.Guard.Atoms() {
			b.WriteString(" [")
			b.WriteString(a.String())
			b.WriteByte(']')
		}
		for _, c := range t.Resets {
			b.WriteString(" reset(")
			b.WriteString(c.Name())
			b.WriteByte(')')
		}
		b.WriteString("--> ")
		b.WriteString(t.Target.Label())
		b.WriteByte('\n')
	}
	return b.String()
}
