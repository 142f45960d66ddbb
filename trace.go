package machine

import (
	"log/slog"

	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// Trace actions emitted by the transition logger.
const (
	// ActionInitialize is opened when a machine is constructed and closed
	// when the machine first enters a terminal state.
	ActionInitialize g.String = "fsm:initialize"
	// ActionTransition is opened for every Receive call and closed when
	// the call returns.
	ActionTransition g.String = "fsm:transition"
)

// Field keys used in trace events.
const (
	// FieldIdentifier uniquely identifies the machine the event pertains
	// to; it is the output executor's identifier.
	FieldIdentifier g.String = "fsm_identifier"
	// FieldState is the machine's state prior to the transition.
	FieldState g.String = "fsm_state"
	// FieldRichInput is the string form of the rich input delivered to
	// the machine, or nil if the input was a plain symbol.
	FieldRichInput g.String = "fsm_rich_input"
	// FieldInput is the input symbol delivered to the machine.
	FieldInput g.String = "fsm_input"
	// FieldNextState is the machine's state after the transition.
	FieldNextState g.String = "fsm_next_state"
	// FieldOutput lists the output symbols produced by the transition.
	FieldOutput g.String = "fsm_output"
	// FieldTerminalState is the terminal state that closed the
	// initialize action.
	FieldTerminalState g.String = "fsm_terminal_state"
)

// Fields carries the structured data attached to a trace event.
type Fields = g.Map[g.String, any]

// TraceSink receives the structured initialize and transition events emitted
// by a machine's transition logger. Implementations are supplied by the
// embedding application; SlogSink and MemorySink are provided.
type TraceSink interface {
	// Begin opens a trace scope for the named action with its start
	// fields and returns the scope to complete it with.
	Begin(action g.String, fields Fields) TraceScope
}

// TraceScope is one open action in a TraceSink. Exactly one of Succeed or
// Fail is called to close it.
type TraceScope interface {
	// Succeed closes the scope successfully, attaching result fields.
	Succeed(fields Fields)
	// Fail closes the scope as failed.
	Fail(err error)
}

// SlogSink is a TraceSink writing every event through a log/slog logger.
// Scope starts are logged at debug level, completions at info and failures
// at error level.
type SlogSink struct {
	log *slog.Logger
}

// NewSlogSink returns a SlogSink over the given logger. A nil logger means
// slog.Default.
func NewSlogSink(log *slog.Logger) *SlogSink {
	if log == nil {
		log = slog.Default()
	}

	return &SlogSink{log: log}
}

func (s *SlogSink) Begin(action g.String, fields Fields) TraceScope {
	start := slogArgs(fields)
	s.log.Debug(string(action)+":started", start...)

	return &slogScope{log: s.log, action: action, start: start}
}

type slogScope struct {
	log    *slog.Logger
	action g.String
	start  []any
}

func (s *slogScope) Succeed(fields Fields) {
	s.log.Info(string(s.action)+":succeeded", append(s.start, slogArgs(fields)...)...)
}

func (s *slogScope) Fail(err error) {
	s.log.Error(string(s.action)+":failed", append(s.start, "error", err)...)
}

// slogArgs flattens fields into slog key-value arguments with a stable key
// order.
func slogArgs(fields Fields) []any {
	keys := fields.Keys()
	keys.SortBy(cmp.Cmp)

	args := make([]any, 0, keys.Len()*2)
	for key := range keys.Iter() {
		args = append(args, string(key), fields.Get(key).UnwrapOr(nil))
	}

	return args
}

// TraceEvent is one action recorded by a MemorySink.
type TraceEvent struct {
	Action    g.String
	Started   Fields
	Succeeded g.Option[Fields]
	Err       error
}

// Completed reports whether the event's scope has been closed.
func (e *TraceEvent) Completed() bool {
	return e.Succeeded.IsSome() || e.Err != nil
}

// MemorySink is a TraceSink recording every event in memory, primarily for
// tests and diagnostics. It is not safe for concurrent use.
type MemorySink struct {
	events g.Slice[*TraceEvent]
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

func (m *MemorySink) Begin(action g.String, fields Fields) TraceScope {
	event := &TraceEvent{Action: action, Started: fields}
	m.events.Push(event)

	return &memoryScope{event: event}
}

// Events returns the recorded events in the order their scopes were opened.
func (m *MemorySink) Events() g.Slice[*TraceEvent] {
	return m.events.Clone()
}

type memoryScope struct {
	event *TraceEvent
}

func (s *memoryScope) Succeed(fields Fields) {
	s.event.Succeeded = g.Some(fields)
}

func (s *memoryScope) Fail(err error) {
	s.event.Err = err
}
