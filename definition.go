package machine

import (
	"fmt"

	"github.com/enetx/g"
	"gopkg.in/yaml.v3"
)

// Definition is the declarative, data-borne form of a machine: alphabets,
// initial state and transitions as they would appear in a configuration
// file. YAML and JSON documents are both accepted (JSON is valid YAML).
//
// A Definition performs no validation of its own; Construct applies the full
// coverage checks to whatever the document declares. A minimal document looks
// like:
//
//	inputs: [FARE_PAID, ARM_TURNED]
//	outputs: [ENGAGE_LOCK, DISENGAGE_LOCK]
//	states: [LOCKED, ACTIVE]
//	initial: LOCKED
//	transitions:
//	  LOCKED:
//	    FARE_PAID: {outputs: [DISENGAGE_LOCK], next: ACTIVE}
//	  ACTIVE:
//	    ARM_TURNED: {outputs: [ENGAGE_LOCK], next: LOCKED}
type Definition struct {
	Inputs      []Input                           `yaml:"inputs"`
	Outputs     []Output                          `yaml:"outputs"`
	States      []State                           `yaml:"states"`
	Initial     State                             `yaml:"initial"`
	Transitions map[State]map[Input]TransitionDef `yaml:"transitions"`

	// Terminal lists states declared with no outgoing transitions, the
	// document form of TransitionTable.AddTerminalState.
	Terminal []State `yaml:"terminal"`
}

// TransitionDef is the document form of a single Transition.
type TransitionDef struct {
	Outputs []Output `yaml:"outputs"`
	Next    State    `yaml:"next"`
}

// ParseDefinition unmarshals a YAML or JSON machine definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("machine: parse definition: %w", err)
	}

	return &def, nil
}

// Table builds a TransitionTable from the definition's transitions and
// terminal states.
func (d *Definition) Table() TransitionTable {
	table := NewTransitionTable()

	for state, transitions := range d.Transitions {
		row := g.NewMap[Input, Transition]()
		for input, td := range transitions {
			row.Set(input, Transition{Outputs: g.SliceOf(td.Outputs...), Next: td.Next})
		}

		table = table.AddTransitions(state, row)
	}

	for _, state := range d.Terminal {
		table = table.AddTerminalState(state)
	}

	return table
}

// Config returns a Config pre-filled with the definition's alphabets, table
// and initial state. The caller supplies World and, as needed, RichInputs,
// InputContext and Sink before passing it to Construct.
func (d *Definition) Config() Config {
	return Config{
		Inputs:  g.SetOf(d.Inputs...),
		Outputs: g.SetOf(d.Outputs...),
		States:  g.SetOf(d.States...),
		Table:   d.Table(),
		Initial: d.Initial,
	}
}
