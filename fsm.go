// Package machine provides table-driven finite state machines over closed,
// symbolic alphabets, built with types and utilities from the
// github.com/enetx/g library.
//
// States, inputs and outputs are opaque named symbols. A TransitionTable
// declares, for each state and input, the outputs to emit and the next state
// to assume. Construct validates the table exhaustively against the declared
// alphabets before returning a machine, so a constructed machine can never
// reach an output or state outside its alphabets. Outputs are delivered, in
// order, to an OutputExecutor supplied by the embedding application; an
// optional TraceSink records the machine's initialization and every
// transition.
package machine

import (
	"reflect"

	"github.com/enetx/g"
)

// Construct validates a machine definition and returns a ready-to-use
// machine starting in cfg.Initial.
//
// Validation runs unconditionally, in a fixed order, before any input can be
// processed: output-executor presence, state coverage, input coverage,
// output coverage, next-state
// reachability (with the initial state exempt from the missing half when it
// alone is unreachable), initial-state membership, input-context domain, and
// rich-input capability consistency. Each violation is reported as a
// distinct DefinitionError carrying the offending symbols.
//
// The returned machine is not safe for concurrent use; wrap it with
// Synchronized or serialize access externally.
func Construct(cfg Config) (StateMachine, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	richTypes := g.NewSet[reflect.Type]()
	for prototype := range cfg.RichInputs.Iter() {
		richTypes.Insert(reflect.TypeOf(prototype))
	}

	interp := &interpreter{
		richInputs:   richTypes,
		inputContext: cfg.InputContext,
		fsm: &fsm{
			inputs: cfg.Inputs,
			table:  cfg.Table,
			state:  cfg.Initial,
		},
		world: cfg.World,
	}

	if cfg.Sink == nil {
		return interp, nil
	}

	return newFiniteStateLogger(interp, cfg.Sink, cfg.World.Identifier()), nil
}

func validate(cfg Config) error {
	if cfg.World == nil {
		return &ErrMissingOutputExecutor{}
	}

	table := cfg.Table

	if extra, missing := symbolDiff(table.stateKeys(), cfg.States); extra.Len() != 0 {
		return &ErrExtraTransitionState{States: extra}
	} else if missing.Len() != 0 {
		return &ErrMissingTransitionState{States: missing}
	}

	if extra, missing := symbolDiff(table.inputUnion(), cfg.Inputs); extra.Len() != 0 {
		return &ErrExtraTransitionInput{Inputs: extra}
	} else if missing.Len() != 0 {
		return &ErrMissingTransitionInput{Inputs: missing}
	}

	if extra, missing := symbolDiff(table.outputUnion(), cfg.Outputs); extra.Len() != 0 {
		return &ErrExtraTransitionOutput{Outputs: extra}
	} else if missing.Len() != 0 {
		return &ErrMissingTransitionOutput{Outputs: missing}
	}

	if extra, missing := symbolDiff(table.nextStateUnion(), cfg.States); extra.Len() != 0 {
		return &ErrExtraTransitionNextState{States: extra}
	} else if missing.Len() != 0 && !missing.Eq(g.SetOf(cfg.Initial)) {
		// A state that is never a transition target is still valid when
		// it is the starting state, but only when it is the sole gap.
		return &ErrMissingTransitionNextState{States: missing}
	}

	if !cfg.States.Contains(cfg.Initial) {
		return &ErrInvalidInitialState{State: cfg.Initial}
	}

	extraContext := g.NewSet[Output]()
	for output := range cfg.InputContext.Iter() {
		if !cfg.Outputs.Contains(output) {
			extraContext.Insert(output)
		}
	}

	if extraContext.Len() != 0 {
		return &ErrExtraInputContext{Outputs: extraContext}
	}

	return checkConsistency(cfg)
}

// symbolDiff splits the symmetric difference of two symbol sets into the
// symbols only in given and the symbols only in required.
func symbolDiff[T comparable](given, required g.Set[T]) (extra, missing g.Set[T]) {
	extra, missing = g.NewSet[T](), g.NewSet[T]()

	for symbol := range given.Iter() {
		if !required.Contains(symbol) {
			extra.Insert(symbol)
		}
	}

	for symbol := range required.Iter() {
		if !given.Contains(symbol) {
			missing.Insert(symbol)
		}
	}

	return extra, missing
}

// checkConsistency verifies that every registered rich-input type implements
// the interfaces required by the context adapters of every output it can
// trigger.
func checkConsistency(cfg Config) error {
	for prototype := range cfg.RichInputs.Iter() {
		richType := reflect.TypeOf(prototype)
		symbol := prototype.Symbol()

		for state, transitions := range cfg.Table.table.Iter() {
			for input, transition := range transitions.Iter() {
				if input != symbol {
					continue
				}

				// This rich input can be supplied for this
				// transition; every output it produces must have
				// its context requirement satisfied.
				for output := range transition.Outputs.Iter() {
					adapter := cfg.InputContext.Get(output)
					if adapter.IsNone() {
						continue
					}

					required := adapter.Some().Requires
					if required == nil || richType.Implements(required) {
						continue
					}

					return &ErrDoesNotImplement{
						Required:  required,
						RichInput: richType,
						Input:     input,
						State:     state,
					}
				}
			}
		}
	}

	return nil
}

// fsm tracks the core logic of a finite state machine: the current state and
// the mapping from inputs to outputs and next states. It never performs I/O.
type fsm struct {
	inputs g.Set[Input]
	table  TransitionTable
	state  State
}

func (f *fsm) receive(input Input) (g.Slice[Output], error) {
	if !f.inputs.Contains(input) {
		return nil, &ErrIllegalInput{Input: input}
	}

	transition := f.table.Get(f.state, input)
	if transition.IsNone() {
		return nil, &ErrUnhandledInput{State: f.state, Input: input}
	}

	t := transition.Some()
	f.state = t.Next

	// Get already returns a copy of the stored outputs.
	return t.Outputs, nil
}

func (f *fsm) isTerminal(state State) bool {
	return f.table.isTerminal(state)
}

// interpreter translates between the real world, with its rich inputs and
// impure outputs, and the wrapped fsm, which accepts and produces only
// symbols. It is the single seam where symbolic transitions become side
// effects.
type interpreter struct {
	richInputs   g.Set[reflect.Type]
	inputContext g.Map[Output, ContextAdapter]
	fsm          *fsm
	world        OutputExecutor
}

func (i *interpreter) State() State { return i.fsm.state }

func (i *interpreter) Receive(input any) (g.Slice[Output], error) {
	var (
		outputs g.Slice[Output]
		err     error
	)

	switch in := input.(type) {
	case RichInput:
		symbol := in.Symbol()
		if !i.richInputs.Contains(reflect.TypeOf(input)) {
			return nil, &ErrIllegalInput{Input: symbol}
		}

		outputs, err = i.fsm.receive(symbol)
	case Input:
		outputs, err = i.fsm.receive(in)
	default:
		return nil, &ErrIllegalInput{Input: input}
	}

	if err != nil {
		return nil, err
	}

	for output := range outputs.Iter() {
		ctx := input
		if adapter := i.inputContext.Get(output); adapter.IsSome() && adapter.Some().Adapt != nil {
			ctx = adapter.Some().Adapt(input)
		}

		if err := i.world.Output(output, ctx); err != nil {
			return nil, err
		}
	}

	return outputs, nil
}

func (i *interpreter) isTerminal(state State) bool {
	return i.fsm.isTerminal(state)
}

var _ StateMachine = (*interpreter)(nil)
