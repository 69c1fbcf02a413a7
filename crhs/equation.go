// Package crhs implements the CRHS equation: a decision-diagram-like graph
// whose levels carry GF(2) linear forms and whose single sink denotes
// acceptance. See SPEC_FULL.md §3-4 for the data model and public contract
// this package realizes.
package crhs

import "github.com/Simula-UiB/crhs/level"

// Equation is a finite ordered sequence of levels between a single source
// and a single sink. Root is the index of the entry node within Levels[0];
// it may equal level.Dangling, meaning the equation has no source-to-sink
// path at all (a degenerate, always-unsatisfiable equation, the terminal
// state left behind once absorption prunes every path).
type Equation struct {
	Levels []*level.Level
	Root   int
}

// NewEquation builds an equation from an ordered slice of levels and an
// entry node index into levels[0].
func NewEquation(levels []*level.Level, root int) (*Equation, error) {
	if len(levels) == 0 {
		return nil, ErrEmptyEquation
	}
	return &Equation{Levels: levels, Root: root}, nil
}

// Depth reports the number of levels.
func (e *Equation) Depth() int { return len(e.Levels) }

// IsUnsat reports whether the equation represents no assignment at all.
// Only meaningful once every mutation that can strand the root (Fix,
// Absorb) has run its pruning pass. Both do, as their last step.
func (e *Equation) IsUnsat() bool {
	return e.Root == level.Dangling
}

// IsTrivial reports the base case from SPEC_FULL.md §3: a single level whose
// label is the zero form, whose one node has its 1-edge dangling and its
// 0-edge reaching the sink: the equation asserts nothing beyond "the zero
// form takes the value 0", which is always true.
func (e *Equation) IsTrivial() bool {
	if len(e.Levels) != 1 || e.Root == level.Dangling {
		return false
	}
	l := e.Levels[0]
	if !l.Label.IsZero() {
		return false
	}
	if !l.Live(e.Root) {
		return false
	}
	n := l.Nodes[e.Root]
	return n.Edge0 == level.Sink && n.Edge1 == level.Dangling
}

// Clone returns a deep, independent copy of the equation.
func (e *Equation) Clone() *Equation {
	levels := make([]*level.Level, len(e.Levels))
	for i, l := range e.Levels {
		levels[i] = l.Clone()
	}
	return &Equation{Levels: levels, Root: e.Root}
}

// redirectInto rewrites the single incoming reference to node old among the
// edges that target level idx (the previous level's node array if idx > 0,
// or the equation's Root if idx == 0) to point at newIdx instead.
func (e *Equation) redirectInto(idx, old, newIdx int) {
	if idx == 0 {
		if e.Root == old {
			e.Root = newIdx
		}
		return
	}
	level.Redirect(e.Levels[idx-1].Nodes, old, newIdx)
}

// redirectIntoByMap applies a full old->new index translation (built by
// swap, which can move many nodes with a single predecessor pass) to the
// edges that target level idx.
func (e *Equation) redirectIntoByMap(idx int, mapping []int) {
	apply := func(nodes []level.Node) {
		for i := range nodes {
			if nodes[i].Edge0 >= 0 {
				nodes[i].Edge0 = mapping[nodes[i].Edge0]
			}
			if nodes[i].Edge1 >= 0 {
				nodes[i].Edge1 = mapping[nodes[i].Edge1]
			}
		}
	}
	if idx == 0 {
		if e.Root >= 0 {
			e.Root = mapping[e.Root]
		}
		return
	}
	apply(e.Levels[idx-1].Nodes)
}

// mergeAndRedirect re-establishes maximal sharing on level idx: any two live
// nodes with identical edge pairs are merged into one, and every reference
// into level idx (from level idx-1, or Root) is redirected to the surviving
// index. It reports whether any merge happened, so callers can decide
// whether the level above might now need the same treatment.
func (e *Equation) mergeAndRedirect(idx int) bool {
	if idx < 0 || idx >= len(e.Levels) {
		return false
	}
	l := e.Levels[idx]
	seen := make(map[level.Node]int, len(l.Nodes))
	merged := false
	for i, n := range l.Nodes {
		if !l.Live(i) {
			continue
		}
		if canon, ok := seen[n]; ok {
			e.redirectInto(idx, i, canon)
			l.DropNode(i)
			merged = true
		} else {
			seen[n] = i
		}
	}
	return merged
}

// reduceUpward re-runs mergeAndRedirect from startIdx upward, stopping as
// soon as a level produces no merge (nothing above it can have changed).
func (e *Equation) reduceUpward(startIdx int) {
	for idx := startIdx; idx >= 0; idx-- {
		if !e.mergeAndRedirect(idx) {
			return
		}
	}
}

// prune performs the reachability pass required after absorption
// (SPEC_FULL.md / spec.md §4.5): first bottom-up, any node whose both edges
// are dangling is a dead end and is removed, propagating dangling edges to
// its predecessors; then top-down, nodes no predecessor reaches are dropped.
// Idempotent; safe to call defensively after any mutation.
func (e *Equation) prune() {
	e.pruneBottomUp()
	e.pruneTopDown()
}

func (e *Equation) pruneBottomUp() {
	for idx := len(e.Levels) - 1; idx >= 0; idx-- {
		l := e.Levels[idx]
		changed := true
		for changed {
			changed = false
			for i, n := range l.Nodes {
				if !l.Live(i) {
					continue
				}
				if n.Edge0 == level.Dangling && n.Edge1 == level.Dangling {
					e.redirectInto(idx, i, level.Dangling)
					l.DropNode(i)
					changed = true
				}
			}
		}
	}
}

func (e *Equation) pruneTopDown() {
	reachable := make([]map[int]bool, len(e.Levels))
	for i := range reachable {
		reachable[i] = make(map[int]bool)
	}
	if e.Root >= 0 && e.Levels[0].Live(e.Root) {
		reachable[0][e.Root] = true
	}
	for idx := 0; idx < len(e.Levels); idx++ {
		l := e.Levels[idx]
		for i := range reachable[idx] {
			n := l.Nodes[i]
			if idx+1 < len(e.Levels) {
				if n.Edge0 >= 0 {
					reachable[idx+1][n.Edge0] = true
				}
				if n.Edge1 >= 0 {
					reachable[idx+1][n.Edge1] = true
				}
			}
		}
	}
	for idx, l := range e.Levels {
		for i := range l.Nodes {
			if l.Live(i) && !reachable[idx][i] {
				l.DropNode(i)
			}
		}
	}
	if e.Root >= 0 && !e.Levels[0].Live(e.Root) {
		e.Root = level.Dangling
	}
}
