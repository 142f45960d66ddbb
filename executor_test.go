package machine_test

import (
	"errors"
	"testing"

	. "github.com/enetx/g"
	. "github.com/enetx/machine"
)

func TestFuncOutputer_Dispatch(t *testing.T) {
	var engaged, released Slice[any]

	world := NewFuncOutputer("turnstile-1", Map[Output, OutputHandler]{
		outputEngageLock: func(ctx any) error {
			engaged.Push(ctx)
			return nil
		},
		outputDisengageLock: func(ctx any) error {
			released.Push(ctx)
			return nil
		},
	})

	assertEqual(t, world.Identifier(), "turnstile-1")

	assertNoError(t, world.Output(outputDisengageLock, 5))
	assertNoError(t, world.Output(outputEngageLock, "lobby gate"))

	assertEqual(t, released.Len(), 1)
	assertEqual(t, released[0].(int), 5)
	assertEqual(t, engaged.Len(), 1)
	assertEqual(t, engaged[0].(string), "lobby gate")
}

func TestFuncOutputer_HandlerErrorPropagates(t *testing.T) {
	jammed := errors.New("solenoid jammed")
	world := NewFuncOutputer("turnstile-1", Map[Output, OutputHandler]{
		outputEngageLock: func(any) error { return jammed },
	})

	assertTrue(t, errors.Is(world.Output(outputEngageLock, nil), jammed))
}

func TestFuncOutputer_UnhandledOutput(t *testing.T) {
	world := NewFuncOutputer("turnstile-1", Map[Output, OutputHandler]{
		outputEngageLock: func(any) error { return nil },
	})

	err := world.Output(outputDisengageLock, nil)
	assertError(t, err)

	var unhandled *ErrUnhandledOutput
	assertTrue(t, errors.As(err, &unhandled))
	assertEqual(t, unhandled.Output, outputDisengageLock)
}

func TestFuncOutputer_UnhandledOutputSurfacesFromReceive(t *testing.T) {
	world := NewFuncOutputer("turnstile-1", Map[Output, OutputHandler]{
		outputEngageLock: func(any) error { return nil },
	})

	m, err := Construct(turnstileConfig(world))
	assertNoError(t, err)

	// FARE_PAID produces DISENGAGE_LOCK, which has no handler.
	_, err = m.Receive(inputFarePaid)
	assertError(t, err)

	var unhandled *ErrUnhandledOutput
	assertTrue(t, errors.As(err, &unhandled))
	assertEqual(t, unhandled.Output, outputDisengageLock)
}

func TestFuncOutputer_HandlersCopied(t *testing.T) {
	handlers := Map[Output, OutputHandler]{
		outputEngageLock: func(any) error { return nil },
	}

	world := NewFuncOutputer("turnstile-1", handlers)
	delete(handlers, outputEngageLock)

	assertNoError(t, world.Output(outputEngageLock, nil))
}
