package machine

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// Transition is the declared result of receiving a particular input in a
// particular state: the outputs to emit, in order, and the state to assume.
// Outputs may be empty for a silent transition.
type Transition struct {
	Outputs g.Slice[Output]
	Next    State
}

// Eq reports whether two transitions are structurally equal: same next state
// and the same output symbols in the same order.
func (t Transition) Eq(other Transition) bool {
	return t.Next == other.Next && t.Outputs.Eq(other.Outputs)
}

// TransitionTable maps states to the transitions defined for each input in
// that state.
//
// Tables are immutable: no method mutates its receiver. Every Add* method
// returns a fresh table, so a table can be shared between any number of
// machine instances and extended without affecting machines already built
// from it. The zero value is an empty table ready for use.
//
// A table performs no validation of its own; Construct rejects tables that do
// not cover their alphabets.
type TransitionTable struct {
	table g.Map[State, g.Map[Input, Transition]]
}

// NewTransitionTable returns an empty table.
func NewTransitionTable() TransitionTable {
	return TransitionTable{table: g.NewMap[State, g.Map[Input, Transition]]()}
}

// clone deep-copies the two map levels so the returned table shares no
// mutable structure with the receiver. Transitions themselves are values.
func (t TransitionTable) clone() TransitionTable {
	table := g.NewMap[State, g.Map[Input, Transition]]()

	for state, transitions := range t.table.Iter() {
		row := g.NewMap[Input, Transition]()
		for input, transition := range transitions.Iter() {
			row.Set(input, transition)
		}

		table.Set(state, row)
	}

	return TransitionTable{table: table}
}

// AddTransition returns a new table containing every transition of the
// receiver plus one for (state, input). An existing transition for that pair
// is overwritten in the new table only.
func (t TransitionTable) AddTransition(state State, input Input, outputs g.Slice[Output], next State) TransitionTable {
	return t.AddTransitions(state, g.Map[Input, Transition]{
		input: {Outputs: outputs, Next: next},
	})
}

// AddTransitions is the batch form of AddTransition for a single state.
func (t TransitionTable) AddTransitions(state State, transitions g.Map[Input, Transition]) TransitionTable {
	next := t.clone()

	row := next.table.Get(state).UnwrapOr(nil)
	if row == nil {
		row = g.NewMap[Input, Transition]()
	}

	for input, transition := range transitions.Iter() {
		row.Set(input, Transition{Outputs: transition.Outputs.Clone(), Next: transition.Next})
	}

	next.table.Set(state, row)

	return next
}

// AddTerminalState returns a new table in which state is present with no
// outgoing transitions. This declares the state's existence for validation
// purposes when it is only ever reached as a sink.
func (t TransitionTable) AddTerminalState(state State) TransitionTable {
	next := t.clone()
	next.table.Set(state, g.NewMap[Input, Transition]())

	return next
}

// Get returns the transition defined for (state, input), if any. The
// returned transition's output slice is a copy; writing to it cannot reach
// the table's stored transitions.
func (t TransitionTable) Get(state State, input Input) g.Option[Transition] {
	row := t.table.Get(state)
	if row.IsNone() {
		return g.None[Transition]()
	}

	transition := row.Some().Get(input)
	if transition.IsNone() {
		return transition
	}

	found := transition.Some()

	return g.Some(Transition{Outputs: found.Outputs.Clone(), Next: found.Next})
}

// States returns the states present as table keys, sorted.
func (t TransitionTable) States() g.Slice[State] {
	states := t.stateKeys().ToSlice()
	states.SortBy(cmp.Cmp)

	return states
}

// isTerminal reports whether state is terminal: every transition defined for
// it (possibly none) emits no outputs and targets the state itself.
func (t TransitionTable) isTerminal(state State) bool {
	for _, transition := range t.table.Get(state).UnwrapOr(nil).Iter() {
		if transition.Outputs.NotEmpty() || transition.Next != state {
			return false
		}
	}

	return true
}

func (t TransitionTable) stateKeys() g.Set[State] {
	states := g.NewSet[State]()
	for state := range t.table.Iter() {
		states.Insert(state)
	}

	return states
}

func (t TransitionTable) inputUnion() g.Set[Input] {
	inputs := g.NewSet[Input]()
	for _, transitions := range t.table.Iter() {
		for input := range transitions.Iter() {
			inputs.Insert(input)
		}
	}

	return inputs
}

func (t TransitionTable) outputUnion() g.Set[Output] {
	outputs := g.NewSet[Output]()
	for _, transitions := range t.table.Iter() {
		for _, transition := range transitions.Iter() {
			for output := range transition.Outputs.Iter() {
				outputs.Insert(output)
			}
		}
	}

	return outputs
}

func (t TransitionTable) nextStateUnion() g.Set[State] {
	states := g.NewSet[State]()
	for _, transitions := range t.table.Iter() {
		for _, transition := range transitions.Iter() {
			states.Insert(transition.Next)
		}
	}

	return states
}
