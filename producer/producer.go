// Package producer defines the boundary between the CRHS core and its
// external collaborators (spec.md §1, §6): cipher- and sponge-round
// implementations that emit truth-table relations over a shared variable
// universe, plus the known-value fixings a plaintext/ciphertext pair or a
// partial key guess supplies. Concrete producers (ciphers/) are not part of
// THE CORE; this package only fixes the contract and the lift from a
// relation to a crhs.Equation.
package producer

// Bit is a three-valued variable value: the X sentinel from the CLI syntax
// of spec.md §6 made concrete.
type Bit int

const (
	Zero Bit = iota
	One
	Unknown
)

// Fixings maps a variable index to its known value. Variables absent from
// the map, or mapped to Unknown, are not fixed.
type Fixings map[int]Bit

// Known reports the set of variable -> bit pairs that are actually known
// (i.e. not Unknown), as plain booleans ready for soc.FixVariable.
func (f Fixings) Known() map[int]bool {
	out := make(map[int]bool, len(f))
	for v, b := range f {
		if b != Unknown {
			out[v] = b == One
		}
	}
	return out
}

// Relation is one round's worth of a producer's truth table: a fixed set of
// input variables and output variables, and the table of (input,output) bit
// combinations the round function actually permits. Rows lists every
// accepted combination as a single bit-vector, input bits first (in the
// order of InputVars) followed by output bits (in the order of OutputVars).
type Relation struct {
	InputVars  []int
	OutputVars []int
	Rows       [][]bool
}

// Width reports the combined number of input and output bits.
func (r Relation) Width() int { return len(r.InputVars) + len(r.OutputVars) }

// Producer is the interface a cipher or sponge round implementation
// presents to the core (spec.md §6). VariableCount fixes the size of the
// shared variable universe; RoundRelations emits the per-round relations to
// lift into CRHS equations.
type Producer interface {
	VariableCount() int
	RoundRelations() []Relation
}
