package clock

// Alphabet is an ordered id -> Action mapping with a name -> Action lookup,
// preserving insertion order on iteration (spec.md §3).
type Alphabet struct {
	order []Action
	byID  map[uint64]int
	byName map[string]int
}

// NewAlphabet returns an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{
		byID:   make(map[uint64]int),
		byName: make(map[string]int),
	}
}

// Contains reports whether name has already been registered.
func (a *Alphabet) Contains(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// CreateAction returns the Action for name, allocating a fresh one on first
// use and returning the existing one on any later call with the same name
// (idempotent on name collision, per spec.md §4.B).
func (a *Alphabet) CreateAction(name string) (Action, error) {
	if idx, ok := a.byName[name]; ok {
		return a.order[idx], nil
	}
	act, err := NewAction(name)
	if err != nil {
		return Action{}, err
	}
	idx := len(a.order)
	a.order = append(a.order, act)
	a.byID[act.ID()] = idx
	a.byName[name] = idx
	return act, nil
}

// Lookup returns the Action registered under name, if any.
func (a *Alphabet) Lookup(name string) (Action, bool) {
	idx, ok := a.byName[name]
	if !ok {
		return Action{}, false
	}
	return a.order[idx], true
}

// Actions returns the registered actions in insertion order. The returned
// slice must not be mutated by callers.
func (a *Alphabet) Actions() []Action {
	return a.order
}

// Len returns the number of distinct registered actions.
func (a *Alphabet) Len() int { return len(a.order) }
