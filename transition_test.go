package machine_test

import (
	"testing"

	. "github.com/enetx/g"
	. "github.com/enetx/machine"
)

func TestTransition_Eq(t *testing.T) {
	a := Transition{Outputs: SliceOf(outputEngageLock), Next: stateLocked}
	b := Transition{Outputs: SliceOf(outputEngageLock), Next: stateLocked}

	assertTrue(t, a.Eq(b))
	assertFalse(t, a.Eq(Transition{Outputs: SliceOf(outputDisengageLock), Next: stateLocked}))
	assertFalse(t, a.Eq(Transition{Outputs: SliceOf(outputEngageLock), Next: stateActive}))
	assertFalse(t, a.Eq(Transition{Next: stateLocked}))
}

func TestTransitionTable_Empty(t *testing.T) {
	table := NewTransitionTable()

	assertTrue(t, table.Get(stateLocked, inputFarePaid).IsNone())
	assertEqual(t, table.States().Len(), 0)

	// The zero value is an empty table too.
	var zero TransitionTable
	assertTrue(t, zero.Get(stateLocked, inputFarePaid).IsNone())
}

func TestTransitionTable_AddTransition(t *testing.T) {
	table := NewTransitionTable().
		AddTransition(stateLocked, inputFarePaid, SliceOf(outputDisengageLock), stateActive)

	transition := table.Get(stateLocked, inputFarePaid)
	assertTrue(t, transition.IsSome())
	assertTrue(t, transition.Some().Eq(Transition{Outputs: SliceOf(outputDisengageLock), Next: stateActive}))
}

func TestTransitionTable_AddTransitionDoesNotMutate(t *testing.T) {
	table := NewTransitionTable().
		AddTransition(stateLocked, inputFarePaid, SliceOf(outputDisengageLock), stateActive)

	table.AddTransition(stateActive, inputArmTurned, SliceOf(outputEngageLock), stateLocked)
	table.AddTerminalState("EXTRA")

	assertTrue(t, table.Get(stateActive, inputArmTurned).IsNone())
	assertTrue(t, table.States().Eq(SliceOf(stateLocked)))
}

func TestTransitionTable_GetReturnsOutputCopy(t *testing.T) {
	table := turnstileTable()

	got := table.Get(stateLocked, inputFarePaid).Some()
	got.Outputs[0] = "CORRUPTED"

	stored := table.Get(stateLocked, inputFarePaid).Some()
	assertTrue(t, stored.Eq(Transition{Outputs: SliceOf(outputDisengageLock), Next: stateActive}))

	// Machines built from the table are unaffected as well.
	world := &recordingWorld{}
	cfg := turnstileConfig(world)
	cfg.Table = table
	m, err := Construct(cfg)
	assertNoError(t, err)

	outputs, err := m.Receive(inputFarePaid)
	assertNoError(t, err)
	assertTrue(t, outputs.Eq(SliceOf(outputDisengageLock)))
}

func TestTransitionTable_AddTransitions(t *testing.T) {
	table := NewTransitionTable().AddTransitions(stateLocked, Map[Input, Transition]{
		inputFarePaid:  {Outputs: SliceOf(outputDisengageLock), Next: stateActive},
		inputArmTurned: {Next: stateLocked},
	})

	assertTrue(t, table.Get(stateLocked, inputFarePaid).IsSome())

	silent := table.Get(stateLocked, inputArmTurned)
	assertTrue(t, silent.IsSome())
	assertTrue(t, silent.Some().Outputs.Empty())
	assertEqual(t, silent.Some().Next, stateLocked)
}

func TestTransitionTable_Overwrite(t *testing.T) {
	original := NewTransitionTable().
		AddTransition(stateLocked, inputFarePaid, SliceOf(outputDisengageLock), stateActive)

	replaced := original.
		AddTransition(stateLocked, inputFarePaid, SliceOf(outputEngageLock), stateLocked)

	// Only the new table sees the replacement.
	assertTrue(t, replaced.Get(stateLocked, inputFarePaid).Some().
		Eq(Transition{Outputs: SliceOf(outputEngageLock), Next: stateLocked}))
	assertTrue(t, original.Get(stateLocked, inputFarePaid).Some().
		Eq(Transition{Outputs: SliceOf(outputDisengageLock), Next: stateActive}))
}

func TestTransitionTable_AddTerminalState(t *testing.T) {
	table := turnstileTable().AddTerminalState("OUT_OF_SERVICE")

	assertTrue(t, table.States().Contains("OUT_OF_SERVICE"))
	assertTrue(t, table.Get("OUT_OF_SERVICE", inputFarePaid).IsNone())
}

func TestTransitionTable_StatesSorted(t *testing.T) {
	table := NewTransitionTable().
		AddTerminalState("ZULU").
		AddTerminalState("ALPHA").
		AddTerminalState("MIKE")

	assertTrue(t, table.States().Eq(SliceOf[State]("ALPHA", "MIKE", "ZULU")))
}

func TestTransitionTable_SharedAcrossMachines(t *testing.T) {
	table := turnstileTable()

	first, err := Construct(turnstileConfig(&recordingWorld{}))
	assertNoError(t, err)

	cfg := turnstileConfig(&recordingWorld{})
	cfg.Table = table
	second, err := Construct(cfg)
	assertNoError(t, err)

	_, err = first.Receive(inputFarePaid)
	assertNoError(t, err)

	// Instances built from the same definitions advance independently.
	assertEqual(t, first.State(), stateActive)
	assertEqual(t, second.State(), stateLocked)
}
