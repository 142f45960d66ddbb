package machine

import (
	"fmt"

	"github.com/enetx/g"
)

// finiteStateLogger wraps an interpreter and records its lifecycle in a
// TraceSink without altering transition semantics. An initialize scope is
// opened when the machine is built and closed exactly once, the first time a
// successful Receive leaves the machine in a terminal state. Every Receive
// runs inside its own transition scope, which records the failure before the
// error propagates.
type finiteStateLogger struct {
	machine    *interpreter
	sink       TraceSink
	identifier g.String
	initialize TraceScope
}

func newFiniteStateLogger(machine *interpreter, sink TraceSink, identifier g.String) *finiteStateLogger {
	return &finiteStateLogger{
		machine:    machine,
		sink:       sink,
		identifier: identifier,
		initialize: sink.Begin(ActionInitialize, Fields{
			FieldIdentifier: identifier,
			FieldState:      g.String(machine.State()),
		}),
	}
}

func (l *finiteStateLogger) State() State { return l.machine.State() }

func (l *finiteStateLogger) Receive(input any) (g.Slice[Output], error) {
	var (
		richInput any
		symbol    g.String
	)

	switch in := input.(type) {
	case RichInput:
		richInput = g.String(in.String())
		symbol = g.String(in.Symbol())
	case Input:
		symbol = g.String(in)
	default:
		symbol = g.String(fmt.Sprint(input))
	}

	scope := l.sink.Begin(ActionTransition, Fields{
		FieldIdentifier: l.identifier,
		FieldState:      g.String(l.machine.State()),
		FieldRichInput:  richInput,
		FieldInput:      symbol,
	})

	outputs, err := l.machine.Receive(input)
	if err != nil {
		scope.Fail(err)
		return nil, err
	}

	var outputNames g.Slice[g.String]
	for output := range outputs.Iter() {
		outputNames.Push(g.String(output))
	}

	scope.Succeed(Fields{
		FieldNextState: g.String(l.machine.State()),
		FieldOutput:    outputNames,
	})

	if l.initialize != nil && l.machine.isTerminal(l.machine.State()) {
		l.initialize.Succeed(Fields{
			FieldTerminalState: g.String(l.machine.State()),
		})
		l.initialize = nil
	}

	return outputs, nil
}

var _ StateMachine = (*finiteStateLogger)(nil)
