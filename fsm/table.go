package fsm

import (
	"fmt"
	"slices"
)

// AnyState is the wildcard source state. A transition declared from
// AnyState applies in every declared state except the transition's own
// destination, unless a state declares an explicit entry for the same
// command (explicit entries win). The lathe's emergency stop is the prime
// example: declared once, valid everywhere except inside the stop state
// itself.
const AnyState = "*"

// Mutation is the data effect of one transition. It runs on the machine's
// worker goroutine with exclusive access to the business data, and must be
// total: it may not fail, only mutate.
type Mutation[D any] func(data *D, cmd Command)

// TransitionSpec is one declarative entry of a machine definition: in state
// From, command Command applies Mutate (which may be nil for transitions
// with no data effect) and moves the machine to state To.
type TransitionSpec[D any] struct {
	From    string
	Command string
	To      string
	Mutate  Mutation[D]
}

// transition is the compiled form of a TransitionSpec, keyed by state and
// command in the table's dispatch maps.
type transition[D any] struct {
	to     string
	mutate Mutation[D]
}

// Table is a compiled machine definition: for every declared state, the
// commands it accepts and their effects. A Table is immutable once built
// and safe to share between any number of machines.
type Table[D any] struct {
	name    string
	initial string
	states  map[string]map[string]transition[D]
}

// Name returns the machine definition's name.
func (t *Table[D]) Name() string {
	return t.name
}

// InitialState returns the distinguished state every new container starts in.
func (t *Table[D]) InitialState() string {
	return t.initial
}

// States returns the declared state set in sorted order.
func (t *Table[D]) States() []string {
	names := make([]string, 0, len(t.states))
	for name := range t.states {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Commands returns, in sorted order, the commands accepted in the given
// state. An undeclared state yields nil.
func (t *Table[D]) Commands(state string) []string {
	dispatch, ok := t.states[state]
	if !ok {
		return nil
	}

	names := make([]string, 0, len(dispatch))
	for name := range dispatch {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// lookup resolves the compiled transition for (state, command), if any.
func (t *Table[D]) lookup(state string, cmd Command) (transition[D], bool) {
	tr, ok := t.states[state][commandName(cmd)]

	return tr, ok
}

// Builder accumulates a declarative machine definition and compiles it into
// a Table. The zero value is not usable; start with NewBuilder.
type Builder[D any] struct {
	name         string
	initialState string
	stateNames   []string
	specs        []TransitionSpec[D]
}

// NewBuilder creates a builder for a machine definition with the given name.
func NewBuilder[D any](name string) *Builder[D] {
	return &Builder[D]{
		name: name,
	}
}

// WithInitialState sets the state new machines start in.
func (b *Builder[D]) WithInitialState(state string) *Builder[D] {
	b.initialState = state

	return b
}

// AddStates declares states. Every state a transition refers to must be
// declared, and the declared set is closed: no other state can ever be
// observed at runtime.
func (b *Builder[D]) AddStates(states ...string) *Builder[D] {
	b.stateNames = append(b.stateNames, states...)

	return b
}

// AddTransition declares one transition.
func (b *Builder[D]) AddTransition(spec TransitionSpec[D]) *Builder[D] {
	b.specs = append(b.specs, spec)

	return b
}

// Transition is shorthand for AddTransition.
func (b *Builder[D]) Transition(from, command, to string, mutate Mutation[D]) *Builder[D] {
	return b.AddTransition(TransitionSpec[D]{
		From:    from,
		Command: command,
		To:      to,
		Mutate:  mutate,
	})
}

// Build validates the accumulated definition and compiles it into a Table.
// It fails on a nameless table, a missing or undeclared initial state,
// undeclared states in transitions, and duplicate (state, command) entries;
// an ambiguous definition must never silently pick one interpretation.
func (b *Builder[D]) Build() (*Table[D], error) {
	if b.name == "" {
		return nil, ErrTableNameRequired
	}

	if b.initialState == "" {
		return nil, ErrInitialStateRequired
	}

	if len(b.stateNames) == 0 {
		return nil, ErrNoStates
	}

	states := make(map[string]map[string]transition[D], len(b.stateNames))

	for _, name := range b.stateNames {
		switch {
		case name == "":
			return nil, ErrStateNameRequired
		case name == AnyState:
			return nil, fmt.Errorf("%w: %q", ErrStateNameReserved, name)
		}

		if _, exists := states[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateState, name)
		}

		states[name] = make(map[string]transition[D])
	}

	if _, ok := states[b.initialState]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInitialStateNotDeclared, b.initialState)
	}

	wildcards := make(map[string]TransitionSpec[D])

	for _, spec := range b.specs {
		err := b.validateSpec(spec, states)
		if err != nil {
			return nil, err
		}

		if spec.From == AnyState {
			if _, dup := wildcards[spec.Command]; dup {
				return nil, fmt.Errorf("%w: %s on %s", ErrDuplicateTransition, spec.Command, AnyState)
			}

			wildcards[spec.Command] = spec

			continue
		}

		dispatch := states[spec.From]
		if _, dup := dispatch[spec.Command]; dup {
			return nil, fmt.Errorf("%w: %s on %s", ErrDuplicateTransition, spec.Command, spec.From)
		}

		dispatch[spec.Command] = transition[D]{to: spec.To, mutate: spec.Mutate}
	}

	// Expand wildcards last so explicit entries always win. A wildcard
	// never applies inside its own destination state.
	for command, spec := range wildcards {
		for name, dispatch := range states {
			if name == spec.To {
				continue
			}

			if _, exists := dispatch[command]; exists {
				continue
			}

			dispatch[command] = transition[D]{to: spec.To, mutate: spec.Mutate}
		}
	}

	return &Table[D]{
		name:    b.name,
		initial: b.initialState,
		states:  states,
	}, nil
}

// validateSpec checks one transition entry against the declared state set.
func (b *Builder[D]) validateSpec(spec TransitionSpec[D], states map[string]map[string]transition[D]) error {
	if spec.From == "" {
		return ErrTransitionFromRequired
	}

	if spec.Command == "" {
		return fmt.Errorf("%w: from %s", ErrTransitionCommandRequired, spec.From)
	}

	if spec.To == "" {
		return fmt.Errorf("%w: %s on %s", ErrTransitionToRequired, spec.Command, spec.From)
	}

	if spec.From != AnyState {
		if _, ok := states[spec.From]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownFromState, spec.From)
		}
	}

	if _, ok := states[spec.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownToState, spec.To)
	}

	return nil
}
