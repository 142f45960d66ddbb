package machine

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// DefinitionError is implemented by every construction-time error. A machine
// definition that produces one of these is malformed and must be corrected;
// retrying construction with the same definition cannot succeed.
type DefinitionError interface {
	error
	definitionError()
}

// symbols renders a symbol set sorted, for stable error messages.
func symbols[T ~string](set g.Set[T]) g.String {
	sorted := set.ToSlice()
	sorted.SortBy(cmp.Cmp)

	var names g.Slice[g.String]
	for symbol := range sorted.Iter() {
		names.Push(g.String(symbol))
	}

	return names.Join(", ")
}

// ErrExtraTransitionState is returned when the transition table has state
// keys that are not part of the declared state alphabet.
type ErrExtraTransitionState struct {
	States g.Set[State]
}

func (e *ErrExtraTransitionState) Error() string {
	return fmt.Sprintf("machine: transition table defines extra states: %s", symbols(e.States))
}

func (*ErrExtraTransitionState) definitionError() {}

// ErrMissingTransitionState is returned when states from the declared state
// alphabet do not appear as transition table keys.
type ErrMissingTransitionState struct {
	States g.Set[State]
}

func (e *ErrMissingTransitionState) Error() string {
	return fmt.Sprintf("machine: transition table is missing states: %s", symbols(e.States))
}

func (*ErrMissingTransitionState) definitionError() {}

// ErrExtraTransitionInput is returned when the transition table handles
// inputs that are not part of the declared input alphabet.
type ErrExtraTransitionInput struct {
	Inputs g.Set[Input]
}

func (e *ErrExtraTransitionInput) Error() string {
	return fmt.Sprintf("machine: transition table handles extra inputs: %s", symbols(e.Inputs))
}

func (*ErrExtraTransitionInput) definitionError() {}

// ErrMissingTransitionInput is returned when inputs from the declared input
// alphabet are handled by no state in the transition table.
type ErrMissingTransitionInput struct {
	Inputs g.Set[Input]
}

func (e *ErrMissingTransitionInput) Error() string {
	return fmt.Sprintf("machine: transition table handles no transitions for inputs: %s", symbols(e.Inputs))
}

func (*ErrMissingTransitionInput) definitionError() {}

// ErrExtraTransitionOutput is returned when transitions produce outputs that
// are not part of the declared output alphabet.
type ErrExtraTransitionOutput struct {
	Outputs g.Set[Output]
}

func (e *ErrExtraTransitionOutput) Error() string {
	return fmt.Sprintf("machine: transition table produces extra outputs: %s", symbols(e.Outputs))
}

func (*ErrExtraTransitionOutput) definitionError() {}

// ErrMissingTransitionOutput is returned when outputs from the declared
// output alphabet are produced by no transition in the table.
type ErrMissingTransitionOutput struct {
	Outputs g.Set[Output]
}

func (e *ErrMissingTransitionOutput) Error() string {
	return fmt.Sprintf("machine: no transition produces outputs: %s", symbols(e.Outputs))
}

func (*ErrMissingTransitionOutput) definitionError() {}

// ErrExtraTransitionNextState is returned when transitions target next
// states that are not part of the declared state alphabet.
type ErrExtraTransitionNextState struct {
	States g.Set[State]
}

func (e *ErrExtraTransitionNextState) Error() string {
	return fmt.Sprintf("machine: transitions target extra next states: %s", symbols(e.States))
}

func (*ErrExtraTransitionNextState) definitionError() {}

// ErrMissingTransitionNextState is returned when states from the declared
// state alphabet are reachable by no transition and the unreachable set is
// not exactly the initial state (which need not be re-enterable).
type ErrMissingTransitionNextState struct {
	States g.Set[State]
}

func (e *ErrMissingTransitionNextState) Error() string {
	return fmt.Sprintf("machine: no transition targets states: %s", symbols(e.States))
}

func (*ErrMissingTransitionNextState) definitionError() {}

// ErrInvalidInitialState is returned when the initial state is not part of
// the declared state alphabet.
type ErrInvalidInitialState struct {
	State State
}

func (e *ErrInvalidInitialState) Error() string {
	return fmt.Sprintf("machine: initial state %q is not in the state alphabet", string(e.State))
}

func (*ErrInvalidInitialState) definitionError() {}

// ErrExtraInputContext is returned when the input-context adapter mapping has
// keys that are not part of the declared output alphabet.
type ErrExtraInputContext struct {
	Outputs g.Set[Output]
}

func (e *ErrExtraInputContext) Error() string {
	return fmt.Sprintf("machine: input context defined for unknown outputs: %s", symbols(e.Outputs))
}

func (*ErrExtraInputContext) definitionError() {}

// ErrMissingOutputExecutor is returned when the Config names no
// OutputExecutor. Outputs have nowhere to go without one.
type ErrMissingOutputExecutor struct{}

func (*ErrMissingOutputExecutor) Error() string {
	return "machine: config names no output executor"
}

func (*ErrMissingOutputExecutor) definitionError() {}

// ErrDoesNotImplement is returned when a registered rich-input type can
// trigger an output whose context adapter requires an interface the type does
// not implement.
type ErrDoesNotImplement struct {
	// Required is the interface type named by the context adapter.
	Required reflect.Type
	// RichInput is the offending rich-input type.
	RichInput reflect.Type
	// Input and State locate the transition that connects them.
	Input Input
	State State
}

func (e *ErrDoesNotImplement) Error() string {
	return fmt.Sprintf("machine: %v does not implement %v, required by input %q in state %q",
		e.RichInput, e.Required, string(e.Input), string(e.State))
}

func (*ErrDoesNotImplement) definitionError() {}

// ErrIllegalInput is returned by Receive when the input is not a symbol of
// the machine's input alphabet, or is a rich input of an unregistered type
// (in which case Input carries the rich input's symbol). The machine's state
// is unchanged.
type ErrIllegalInput struct {
	Input any
}

func (e *ErrIllegalInput) Error() string {
	return fmt.Sprintf("machine: illegal input %v", e.Input)
}

// ErrUnhandledInput is returned by Receive when the input symbol is legal but
// the current state defines no transition for it. The machine's state is
// unchanged.
type ErrUnhandledInput struct {
	State State
	Input Input
}

func (e *ErrUnhandledInput) Error() string {
	return fmt.Sprintf("machine: input %q not handled in state %q", string(e.Input), string(e.State))
}

// ErrUnhandledOutput is returned by FuncOutputer when an output symbol is
// dispatched for which no handler was registered.
type ErrUnhandledOutput struct {
	Output Output
}

func (e *ErrUnhandledOutput) Error() string {
	return fmt.Sprintf("machine: no handler registered for output %q", string(e.Output))
}

// ErrWrongState is returned by Stateful accessors used while the owning
// machine is outside the attribute's permitted states.
type ErrWrongState struct {
	Allowed g.Set[State]
	Actual  State
}

func (e *ErrWrongState) Error() string {
	return fmt.Sprintf("machine: attribute illegal in state %q, only allowed in states: %s",
		string(e.Actual), symbols(e.Allowed))
}

// ErrValueNotSet is returned by Stateful.Get and Stateful.Clear when no value
// has been set.
var ErrValueNotSet = errors.New("machine: stateful attribute has no value set")
