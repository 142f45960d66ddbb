package machine

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// ToDOT generates a DOT language representation of the table for
// visualization with Graphviz. Edges are labeled with the triggering input
// and the outputs it produces; terminal states are drawn as double circles
// and initial points at the given starting state.
func (t TransitionTable) ToDOT(initial State) g.String {
	b := g.NewBuilder()

	b.WriteString("digraph machine {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", initial))

	states := t.States()

	for state := range states.Iter() {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state))

		if t.isTerminal(state) {
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	grouped := g.NewMap[g.Pair[State, State], g.Slice[g.String]]()

	for state := range states.Iter() {
		inputs := t.table.Get(state).UnwrapOr(nil).Keys()
		inputs.SortBy(cmp.Cmp)

		for input := range inputs.Iter() {
			transition := t.Get(state, input).Some()
			key := g.Pair[State, State]{Key: state, Value: transition.Next}

			label := g.String(input)
			if transition.Outputs.NotEmpty() {
				var names g.Slice[g.String]
				for output := range transition.Outputs.Iter() {
					names.Push(g.String(output))
				}

				label += " / " + names.Join(", ")
			}

			grouped.Entry(key).
				AndModify(func(labels *g.Slice[g.String]) { labels.Push(label) }).
				OrInsert(g.SliceOf(label))
		}
	}

	for pair, labels := range grouped.Iter() {
		b.WriteString(g.Format("  \"{}\" -> \"{}\" [label=\" {} \"];\n", pair.Key, pair.Value, labels.Join("\\n")))
	}

	b.WriteString("}\n")

	return b.String()
}
