// Package dtafile implements the DTA persistence format of spec.md §6: a
// JSON document with clocks/actions/locations/transitions, guard intervals
// written in "[lo, hi)"-style syntax (parsed via a small participle/v2
// grammar, grammar.go), and per-clock κ inferred on import from the
// integer bounds actually present.
//
// Errors:
//
//	ErrUnknownClock        - a guard or reset names a clock not in the header.
//	ErrUnknownAction       - a transition names an action not in the header.
//	ErrUnknownLocation     - a transition or init_location names an unknown location.
//	ErrBadInterval         - a guard interval failed to parse.
package dtafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
)

var ErrUnknownClock = errors.New("dtafile: unknown clock")
var ErrUnknownAction = errors.New("dtafile: unknown action")
var ErrUnknownLocation = errors.New("dtafile: unknown location")
var ErrBadInterval = errors.New("dtafile: malformed guard interval")

// LocationSpec is one entry of File.Locations.
type LocationSpec struct {
	Name      string            `json:"name"`
	Accepting bool              `json:"accepting"`
	Invariant map[string]string `json:"invariant,omitempty"`
}

// TransitionSpec is one entry of File.Transitions.
type TransitionSpec struct {
	Source string            `json:"source"`
	Action string            `json:"action"`
	Guard  map[string]string `json:"guard,omitempty"`
	Reset  []string          `json:"reset,omitempty"`
	Target string            `json:"target"`
}

// File is the on-disk JSON shape of spec.md §6.
type File struct {
	Name         string           `json:"name"`
	Clocks       []string         `json:"clocks"`
	Actions      []string         `json:"actions"`
	Locations    []LocationSpec   `json:"locations"`
	InitLocation string           `json:"init_location"`
	Transitions  []TransitionSpec `json:"transitions"`
}

// Load reads and decodes a File from path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dtafile: reading %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("dtafile: decoding %s: %w", path, err)
	}
	return &f, nil
}

// Save encodes f as indented JSON to path.
func Save(path string, f *File) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("dtafile: encoding: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("dtafile: writing %s: %w", path, err)
	}
	return nil
}

// Import builds a *automaton.DTA from f, per spec.md §6: each clock's κ is
// set to the maximum integer bound seen across every guard/invariant
// interval naming it; non-integer bounds never raise κ.
func Import(f *File) (*automaton.DTA, error) {
	kappas := make(map[string]int, len(f.Clocks))
	for _, name := range f.Clocks {
		kappas[name] = 0
	}
	scan := func(intervals map[string]string) error {
		for name, raw := range intervals {
			if _, ok := kappas[name]; !ok {
				return fmt.Errorf("%w: %q", ErrUnknownClock, name)
			}
			lo, _, hi, _, err := parseInterval(raw)
			if err != nil {
				return err
			}
			for _, bound := range []string{lo, hi} {
				if bound == "-" || bound == "+" {
					continue
				}
				v, err := rational.Parse(bound)
				if err != nil {
					return fmt.Errorf("%w: %q: %v", ErrBadInterval, raw, err)
				}
				if isInt, _ := v.IsInteger(); !isInt {
					continue
				}
				n := intPartMagnitude(v)
				if n > kappas[name] {
					kappas[name] = n
				}
			}
		}
		return nil
	}
	for _, loc := range f.Locations {
		if err := scan(loc.Invariant); err != nil {
			return nil, err
		}
	}
	for _, tr := range f.Transitions {
		if err := scan(tr.Guard); err != nil {
			return nil, err
		}
	}

	clocksByName := make(map[string]clock.Clock, len(f.Clocks))
	clocks := make([]clock.Clock, 0, len(f.Clocks))
	for _, name := range f.Clocks {
		c, err := clock.NewClock(name, kappas[name])
		if err != nil {
			return nil, err
		}
		clocksByName[name] = c
		clocks = append(clocks, c)
	}

	alphabet := clock.NewAlphabet()
	actionsByName := make(map[string]clock.Action, len(f.Actions))
	for _, name := range f.Actions {
		a, err := alphabet.CreateAction(name)
		if err != nil {
			return nil, err
		}
		actionsByName[name] = a
	}

	d := automaton.New(clocks, alphabet)
	locsByName := make(map[string]clock.Location, len(f.Locations))
	for _, ls := range f.Locations {
		l, err := clock.NewLocation(ls.Name)
		if err != nil {
			return nil, err
		}
		d.AddLocation(l)
		locsByName[ls.Name] = l
		if ls.Accepting {
			d.MarkAccepting(l)
		}
	}

	initLoc, ok := locsByName[f.InitLocation]
	if !ok {
		return nil, fmt.Errorf("%w: init_location %q", ErrUnknownLocation, f.InitLocation)
	}
	if err := d.SetInit(initLoc); err != nil {
		return nil, err
	}

	for _, tr := range f.Transitions {
		src, ok := locsByName[tr.Source]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, tr.Source)
		}
		dst, ok := locsByName[tr.Target]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, tr.Target)
		}
		act, ok := actionsByName[tr.Action]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, tr.Action)
		}
		g, err := decodeGuard(tr.Guard, clocks, clocksByName)
		if err != nil {
			return nil, err
		}
		resets := make([]clock.Clock, 0, len(tr.Reset))
		for _, name := range tr.Reset {
			c, ok := clocksByName[name]
			if !ok {
				return nil, fmt.Errorf("%w: reset %q", ErrUnknownClock, name)
			}
			resets = append(resets, c)
		}
		if _, err := d.AddTransition(src, act, g, resets, dst); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// intPartMagnitude returns |⌊v⌋| for a finite integer-valued v (the
// sentinel bounds "-"/"+" never reach here).
func intPartMagnitude(v rational.Rational) int {
	fl, err := v.Floor()
	if err != nil {
		return 0
	}
	n := fl.BigRat().Num().Int64()
	if n < 0 {
		n = -n
	}
	return int(n)
}

// decodeGuard builds a guard.Constraint over clocks from a transition's
// per-clock interval map.
func decodeGuard(intervals map[string]string, clocks []clock.Clock, byName map[string]clock.Clock) (guard.Constraint, error) {
	var atoms []guard.AtomConstraint
	for name, raw := range intervals {
		c, ok := byName[name]
		if !ok {
			return guard.Constraint{}, fmt.Errorf("%w: %q", ErrUnknownClock, name)
		}
		lo, loClosed, hi, hiClosed, err := parseInterval(raw)
		if err != nil {
			return guard.Constraint{}, err
		}
		if lo != "-" {
			v, err := rational.Parse(lo)
			if err != nil {
				return guard.Constraint{}, fmt.Errorf("%w: %q: %v", ErrBadInterval, raw, err)
			}
			if v.Sign() != 0 || !loClosed {
				a, err := guard.NewLowerBoundAtom(c, v, loClosed)
				if err != nil {
					return guard.Constraint{}, err
				}
				atoms = append(atoms, a)
			}
		}
		if hi != "+" {
			v, err := rational.Parse(hi)
			if err != nil {
				return guard.Constraint{}, fmt.Errorf("%w: %q: %v", ErrBadInterval, raw, err)
			}
			a, err := guard.NewSingleClockAtom(c, v, hiClosed)
			if err != nil {
				return guard.Constraint{}, err
			}
			atoms = append(atoms, a)
		}
	}
	return guard.NewConjunction(clocks, atoms...), nil
}

// Export renders d as a File named name, per spec.md §6. A transition's
// guard atoms that constrain two distinct non-zero clocks against each
// other (difference atoms) are not expressible in the single-clock interval
// syntax; each is dropped with a logged warning rather than silently lost.
func Export(d *automaton.DTA, name string) (*File, error) {
	f := &File{Name: name, InitLocation: d.Init().Label()}
	for _, c := range d.Clocks {
		if c.IsZero() {
			continue
		}
		f.Clocks = append(f.Clocks, c.Name())
	}
	for _, a := range d.Alphabet.Actions() {
		f.Actions = append(f.Actions, a.Name())
	}
	for _, l := range d.Locations() {
		f.Locations = append(f.Locations, LocationSpec{Name: l.Label(), Accepting: d.IsAccepting(l)})
	}
	for _, t := range d.Transitions() {
		g := exportGuard(t, d.Clocks)
		ts := TransitionSpec{Source: t.Source.Label(), Action: t.Action.Name(), Guard: g, Target: t.Target.Label()}
		for _, c := range t.Resets {
			ts.Reset = append(ts.Reset, c.Name())
		}
		f.Transitions = append(f.Transitions, ts)
	}
	return f, nil
}

// exportGuard renders t.Guard's atoms into the single-clock interval map,
// logging and dropping any atom that constrains two distinct non-zero
// clocks against each other.
func exportGuard(t automaton.Transition, clocks []clock.Clock) map[string]string {
	lowers := make(map[uint64]guard.AtomConstraint)
	uppers := make(map[uint64]guard.AtomConstraint)
	for _, a := range t.Guard.Atoms() {
		switch {
		case a.C1.IsZero() && a.C2.IsZero():
			continue
		case a.C1.IsZero():
			c := a.C2
			if cur, ok := lowers[c.ID()]; !ok || tighterLower(a, cur) {
				lowers[c.ID()] = a
			}
		case a.C2.IsZero():
			c := a.C1
			if cur, ok := uppers[c.ID()]; !ok || tighterUpper(a, cur) {
				uppers[c.ID()] = a
			}
		default:
			slog.Warn("dtafile: dropping difference atom on export",
				"transition", t.ID, "atom", a.String())
		}
	}

	out := make(map[string]string)
	for _, c := range clocks {
		if c.IsZero() {
			continue
		}
		lowerAtom, hasLower := lowers[c.ID()]
		upperAtom, hasUpper := uppers[c.ID()]

		lo, loClosed := "0", true
		if hasLower {
			lo, loClosed = rational.Neg(lowerAtom.Bound).String(), lowerAtom.Closed
		}
		lowerTrivial := lo == "0" && loClosed
		if lowerTrivial && !hasUpper {
			// Every clock implicitly carries c >= 0; skip fully
			// unconstrained clocks rather than emitting "[0, +)" noise.
			continue
		}

		hi, hiClosed := "+", false
		if hasUpper {
			hi, hiClosed = upperAtom.Bound.String(), upperAtom.Closed
		}
		out[c.Name()] = formatInterval(lo, loClosed, hi, hiClosed)
	}
	return out
}

// tighterLower reports whether candidate is a strictly tighter lower bound
// than cur (larger bound value, or equal value but strict).
func tighterLower(candidate, cur guard.AtomConstraint) bool {
	cv, uv := rational.Neg(candidate.Bound), rational.Neg(cur.Bound)
	if !rational.Equal(cv, uv) {
		return rational.Less(uv, cv)
	}
	return !candidate.Closed && cur.Closed
}

// tighterUpper reports whether candidate is a strictly tighter upper bound
// than cur (smaller bound value, or equal value but strict).
func tighterUpper(candidate, cur guard.AtomConstraint) bool {
	if !rational.Equal(candidate.Bound, cur.Bound) {
		return rational.Less(candidate.Bound, cur.Bound)
	}
	return !candidate.Closed && cur.Closed
}
