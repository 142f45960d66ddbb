package machine

import (
	"sync"

	"github.com/enetx/g"
)

// SyncMachine is a thread-safe wrapper around a StateMachine. Machines
// returned by Construct are single-owner by contract; SyncMachine packages
// the external locking required to share one across goroutines.
type SyncMachine struct {
	machine StateMachine
	mu      sync.RWMutex
}

// Synchronized wraps a machine for concurrent use. The wrapped machine must
// not be used directly afterwards.
func Synchronized(machine StateMachine) *SyncMachine {
	return &SyncMachine{machine: machine}
}

// Receive is the thread-safe version of StateMachine.Receive. Transitions
// execute atomically: the state change and all output dispatch complete
// before another Receive can begin.
func (s *SyncMachine) Receive(input any) (g.Slice[Output], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.Receive(input)
}

// State is the thread-safe version of StateMachine.State.
func (s *SyncMachine) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.State()
}

var _ StateMachine = (*SyncMachine)(nil)
