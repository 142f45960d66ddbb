package machine

import "github.com/enetx/g"

// OutputHandler performs the side effect for one output symbol. The context
// is the value resolved by the interpreter for that output (the triggering
// input, or the registered adapter's result).
type OutputHandler func(ctx any) error

// FuncOutputer is an OutputExecutor dispatching each output symbol to a
// handler registered for it. Handlers are resolved at registration time, not
// looked up by name, so a machine's output wiring is inspectable before any
// transition runs. Dispatching an output with no handler fails with
// ErrUnhandledOutput.
type FuncOutputer struct {
	identifier g.String
	handlers   g.Map[Output, OutputHandler]
}

// NewFuncOutputer returns a FuncOutputer with the given stable identifier and
// handler registrations. The handler map is copied.
func NewFuncOutputer(identifier g.String, handlers g.Map[Output, OutputHandler]) *FuncOutputer {
	resolved := g.NewMap[Output, OutputHandler]()
	for output, handler := range handlers.Iter() {
		resolved.Set(output, handler)
	}

	return &FuncOutputer{identifier: identifier, handlers: resolved}
}

// Identifier returns the identifier given at registration.
func (o *FuncOutputer) Identifier() g.String { return o.identifier }

// Output invokes the handler registered for the given output symbol.
func (o *FuncOutputer) Output(output Output, ctx any) error {
	handler := o.handlers.Get(output)
	if handler.IsNone() {
		return &ErrUnhandledOutput{Output: output}
	}

	return handler.Some()(ctx)
}

var _ OutputExecutor = (*FuncOutputer)(nil)
