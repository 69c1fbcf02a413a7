package producer

import (
	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/gf2"
	"github.com/Simula-UiB/crhs/level"
)

// Lift builds a crhs.Equation representing r exactly: one level per input
// variable followed by one level per output variable, each labelled by the
// single variable it names (spec.md §6's "one label per output bit
// expressed as the linear form naming that output variable"). A row's
// accepted bit sequence is r's input bits followed by its output bits, in
// that order, so an accepting path of the resulting equation is precisely
// one permitted (input, output) combination of r's truth table. A row whose
// width differs from len(InputVars)+len(OutputVars) yields
// crhs.ErrMalformedInput.
//
// The output-only depth spec.md §6 describes only covers half of what a
// faithful S-box relation needs: without the input levels the equation
// would constrain the codomain but say nothing about which output goes
// with which input. Lift resolves this by prefixing the input levels, since
// omitting them would make every lifted relation useless once joined with
// the rest of a round's equations. See DESIGN.md's Open Question entry.
func Lift(nVars int, r Relation) (*crhs.Equation, error) {
	order := append(append([]int(nil), r.InputVars...), r.OutputVars...)
	depth := len(order)
	for _, row := range r.Rows {
		if len(row) != depth {
			return nil, crhs.ErrMalformedInput
		}
	}

	levels := make([]*level.Level, depth)
	for i, v := range order {
		levels[i] = level.New(gf2.FromVars(nVars, v))
	}

	var build func(rows [][]bool, pos int) int
	build = func(rows [][]bool, pos int) int {
		var zeros, ones [][]bool
		for _, row := range rows {
			if row[pos] {
				ones = append(ones, row)
			} else {
				zeros = append(zeros, row)
			}
		}
		last := pos == depth-1
		var e0, e1 int
		if last {
			e0, e1 = level.Dangling, level.Dangling
			if len(zeros) > 0 {
				e0 = level.Sink
			}
			if len(ones) > 0 {
				e1 = level.Sink
			}
		} else {
			e0, e1 = level.Dangling, level.Dangling
			if len(zeros) > 0 {
				e0 = build(zeros, pos+1)
			}
			if len(ones) > 0 {
				e1 = build(ones, pos+1)
			}
		}
		return levels[pos].InsertNode(e0, e1)
	}

	root := level.Dangling
	if len(r.Rows) > 0 {
		root = build(r.Rows, 0)
	}
	return crhs.NewEquation(levels, root)
}
