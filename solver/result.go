package solver

// Assignment is a complete variable assignment over a SOC's universe: one
// entry per variable index.
type Assignment map[int]bool

// Status reports how a Solve call ended.
type Status int

const (
	// Unknown means Solve's deadline stopped the search, or decode hit its
	// path-enumeration cap: neither solved nor proven unsatisfiable.
	Unknown Status = iota
	Solved
	Unsat
)

// Result is what Solve hands back: the outcome, every satisfying
// assignment decode could reconstruct (more than one when the system is
// underdetermined, e.g. seed scenario S1's two-solution toy system), and
// bookkeeping for how the search went.
type Result struct {
	Status      Status
	Assignments []Assignment
	Steps       int
	// Truncated is true when decode hit its path-enumeration cap before
	// exhausting every accepting combination. Assignments is then a
	// (possibly empty) sample, not a complete solution set.
	Truncated bool
}
