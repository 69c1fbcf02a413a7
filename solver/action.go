package solver

import (
	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/gf2"
	"github.com/Simula-UiB/crhs/soc"
)

// Kind names which primitive transform an Action applies (spec.md §4.3-4.5,
// §7: Join, Absorb, Swap, Fix, Drop are the only moves a strategy may make).
type Kind int

const (
	None Kind = iota
	JoinPair
	Absorb
	Fix
	Drop
)

// Action is one primitive step a Strategy hands back to Solve. Only the
// fields relevant to Kind are populated.
type Action struct {
	Kind   Kind
	H1, H2 soc.Handle
	Shared gf2.Vector
	Dep    crhs.Dependency
	Var    int
	Bit    bool
}

// String names a Kind for CRHS_TRACE narration.
func (k Kind) String() string {
	switch k {
	case JoinPair:
		return "join"
	case Absorb:
		return "absorb"
	case Fix:
		return "fix"
	case Drop:
		return "drop"
	default:
		return "none"
	}
}
