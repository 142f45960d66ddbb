package machine

import (
	"fmt"
	"reflect"

	"github.com/enetx/g"
)

type (
	// State represents a symbol from a machine's state alphabet.
	State g.String
	// Input represents a symbol from a machine's input alphabet.
	Input g.String
	// Output represents a symbol from a machine's output alphabet.
	Output g.String
)

// StateMachine is the interface presented by every machine returned from
// Construct, whatever combination of interpreter and trace decorator backs it.
type StateMachine interface {
	// State returns the machine's current state.
	State() State

	// Receive delivers an input, advances the machine and returns the
	// outputs produced by the transition, in declaration order.
	//
	// The input may be an Input symbol or a RichInput whose type was
	// registered at construction. Receive fails with ErrIllegalInput for
	// anything else and with ErrUnhandledInput when the current state
	// defines no transition for the symbol; in both cases the state is
	// left unchanged.
	Receive(input any) (g.Slice[Output], error)
}

// RichInput is an input value that carries a payload in addition to
// corresponding to exactly one symbol of the input alphabet. The string form
// is recorded by the trace decorator.
type RichInput interface {
	fmt.Stringer

	// Symbol returns the input symbol this value corresponds to.
	Symbol() Input
}

// OutputExecutor turns output symbols into observable side effects. It is
// implemented by the embedding application; FuncOutputer is a ready-made
// implementation dispatching to registered handler functions.
type OutputExecutor interface {
	// Identifier returns a stable string identifying this executor. It is
	// used only to correlate trace events.
	Identifier() g.String

	// Output performs the real-world action for the given output symbol.
	// The context is the input that triggered the transition, or the value
	// produced by the ContextAdapter registered for the symbol. Errors are
	// not suppressed; they propagate to the caller of Receive.
	Output(output Output, ctx any) error
}

// ContextAdapter derives the context value handed to the OutputExecutor for
// one output symbol from the input that triggered the transition.
type ContextAdapter struct {
	// Requires optionally names an interface type that every registered
	// rich-input type able to trigger this output must implement. Checked
	// at construction; see ErrDoesNotImplement.
	Requires reflect.Type

	// Adapt maps the triggering input to the context value. A nil Adapt
	// passes the input through unchanged.
	Adapt func(input any) any
}

// Config collects everything Construct needs to build a machine.
type Config struct {
	// Inputs, Outputs and States are the machine's closed alphabets.
	Inputs  g.Set[Input]
	Outputs g.Set[Output]
	States  g.Set[State]

	// Table defines every transition. It is validated against the
	// alphabets before any machine is built from it.
	Table TransitionTable

	// Initial is the state the machine starts in.
	Initial State

	// RichInputs lists one value (typically a zero value) of every
	// rich-input type the machine will accept. Rich inputs of any other
	// type are rejected with ErrIllegalInput even when their symbol is
	// legal.
	RichInputs g.Slice[RichInput]

	// InputContext maps output symbols to adapters deriving the executor
	// context from the triggering input. Outputs without an adapter
	// receive the input unchanged.
	InputContext g.Map[Output, ContextAdapter]

	// World executes the machine's outputs. Required; Construct rejects a
	// nil World with ErrMissingOutputExecutor.
	World OutputExecutor

	// Sink receives initialize and transition trace events. A nil Sink
	// disables tracing without changing transition semantics.
	Sink TraceSink
}
