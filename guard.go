package machine

import "github.com/enetx/g"

// Stateful guards a single attribute behind a machine's current state: the
// value can only be read, written or cleared while the supplied getter
// reports one of the permitted states. It is independent of the FSM engine
// and can gate arbitrary application fields on any state source.
//
// Stateful is not safe for concurrent use; it follows the same single-owner
// discipline as the machine whose state it observes.
type Stateful[T any] struct {
	getter  func() State
	allowed g.Set[State]
	value   g.Option[T]
}

// NewStateful returns a guard reading the current state from getter and
// permitting access only in the given states.
func NewStateful[T any](getter func() State, allowed ...State) *Stateful[T] {
	return &Stateful[T]{
		getter:  getter,
		allowed: g.SetOf(allowed...),
		value:   g.None[T](),
	}
}

func (s *Stateful[T]) check() error {
	if current := s.getter(); !s.allowed.Contains(current) {
		return &ErrWrongState{Allowed: s.allowed, Actual: current}
	}

	return nil
}

// Get returns the guarded value. It fails with ErrWrongState outside the
// permitted states and with ErrValueNotSet when nothing has been set.
func (s *Stateful[T]) Get() (T, error) {
	var zero T

	if err := s.check(); err != nil {
		return zero, err
	}

	if s.value.IsNone() {
		return zero, ErrValueNotSet
	}

	return s.value.Some(), nil
}

// Set stores the guarded value. It fails with ErrWrongState outside the
// permitted states.
func (s *Stateful[T]) Set(value T) error {
	if err := s.check(); err != nil {
		return err
	}

	s.value = g.Some(value)

	return nil
}

// Clear removes the guarded value. It fails with ErrWrongState outside the
// permitted states and with ErrValueNotSet when nothing has been set.
func (s *Stateful[T]) Clear() error {
	if err := s.check(); err != nil {
		return err
	}

	if s.value.IsNone() {
		return ErrValueNotSet
	}

	s.value = g.None[T]()

	return nil
}
