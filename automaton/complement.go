package automaton

import "github.com/katalvlaran/dtalearn/guard"

// Complement returns a DTA accepting the complement language of d: d is
// first completed via ToCTA (a possibly-incomplete automaton has no
// well-defined complement), then every location's acceptance is flipped.
func (d *DTA) Complement(oracle guard.Oracle) (*DTA, error) {
	cta, err := d.ToCTA(oracle)
	if err != nil {
		return nil, err
	}
	out := New(cta.Clocks, cta.Alphabet)
	for _, loc := range cta.Locations() {
		out.AddLocation(loc)
		if !cta.IsAccepting(loc) {
			out.MarkAccepting(loc)
		}
	}
	if cta.hasInit {
		_ = out.SetInit(cta.init)
	}
	for _, t := range cta.Transitions() {
		if _, err := out.AddTransition(t.Source, t.Action, t.Guard, t.Resets, t.Target); err != nil {
			return nil, err
		}
	}
	return out, nil
}
