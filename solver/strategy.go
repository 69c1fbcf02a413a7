package solver

import (
	"github.com/Simula-UiB/crhs/gf2"
	"github.com/Simula-UiB/crhs/soc"
)

// findForcedVariable looks for a live equation that has already been
// reduced to a single level naming exactly one variable, with only one of
// its two edges reaching the sink: an equation that no longer
// restricts anything except that one variable's value (the shape a lifted
// relation collapses to, one XOR gate at a time, as its other operands get
// fixed). Reporting it as a Fix lets that value propagate into every other
// equation naming the same variable without waiting for an explicit Join.
func findForcedVariable(s *soc.SOC) (Action, bool) {
	for _, h := range s.Handles() {
		eq := s.Get(h)
		if eq.Depth() != 1 || eq.Levels[0].Label.Weight() != 1 {
			continue
		}
		paths, truncated := eq.EnumeratePaths(2)
		if truncated || len(paths) != 1 {
			continue
		}
		return Action{Kind: Fix, Var: eq.Levels[0].Label.LowestSet(), Bit: paths[0].Bits[0]}, true
	}
	return Action{}, false
}

// Strategy orders and schedules transforms to drive a SOC toward a solved
// form (spec.md §7). Next inspects the current state and either returns the
// next Action to apply and true, or an ignored Action and false to signal
// the strategy has nothing more productive to do. Solve then attempts to
// decode whatever the SOC has been reduced to.
type Strategy interface {
	Next(s *soc.SOC, fixed map[int]bool) (Action, bool)
}

// findJoinPair looks for two distinct live equations that carry a level
// with an identical label, the precondition crhs.Join requires (spec.md
// §4.4). It is the shared building block every strategy below uses to pick
// its next Join.
func findJoinPair(s *soc.SOC) (h1, h2 soc.Handle, shared gf2.Vector, ok bool) {
	handles := s.Handles()
	for i := 0; i < len(handles); i++ {
		e1 := s.Get(handles[i])
		for j := i + 1; j < len(handles); j++ {
			e2 := s.Get(handles[j])
			for _, l1 := range e1.Levels {
				for _, l2 := range e2.Levels {
					if gf2.Equal(l1.Label, l2.Label) {
						return handles[i], handles[j], l1.Label, true
					}
				}
			}
		}
	}
	return 0, 0, gf2.Vector{}, false
}

// findFixableDependency looks, across every live equation, for a dependency
// whose participating levels reduce to a single already-forced label: one
// that pins a variable's value outright rather than merely restricting an
// equation's shape. It reports that case as a Fix action instead of an
// Absorb. Absorb still fires the general case (spec.md §4.5).
func findFixableDependency(s *soc.SOC, fixed map[int]bool) (Action, bool) {
	for _, h := range s.Handles() {
		eq := s.Get(h)
		dep, ok := s.FindDependency(h, fixed)
		if !ok {
			continue
		}
		if len(dep.Levels) == 1 {
			label := eq.Levels[dep.Levels[0]].Label
			if label.Weight() == 1 {
				return Action{Kind: Fix, Var: label.LowestSet(), Bit: dep.Target}, true
			}
		}
		return Action{Kind: Absorb, H1: h, Dep: dep}, true
	}
	return Action{}, false
}

// NoDrop always makes progress by joining or absorbing, never discarding an
// equation. It is the exhaustive strategy of spec.md §7, complete but with
// no bound on intermediate size.
type NoDrop struct{}

func (NoDrop) Next(s *soc.SOC, fixed map[int]bool) (Action, bool) {
	if act, ok := findForcedVariable(s); ok {
		return act, true
	}
	if h1, h2, shared, ok := findJoinPair(s); ok {
		return Action{Kind: JoinPair, H1: h1, H2: h2, Shared: shared}, true
	}
	if act, ok := findFixableDependency(s, fixed); ok {
		return act, true
	}
	return Action{}, false
}

// DropLookahead behaves like NoDrop but refuses to work on any equation
// whose total live node count already exceeds Budget, dropping it instead
// (spec.md §7's incomplete-but-bounded strategy family). A dropped equation
// takes its constraints out of the system, so a DropLookahead solve can
// report Solved with assignments that violate a dropped equation;
// Result.Truncated does not flag this. Callers that need a
// certificate of unsatisfiability should use NoDrop instead.
type DropLookahead struct {
	Budget int
}

func (d DropLookahead) Next(s *soc.SOC, fixed map[int]bool) (Action, bool) {
	if act, ok := findForcedVariable(s); ok {
		return act, true
	}
	for _, h := range s.Handles() {
		if nodeCount(s, h) > d.Budget {
			return Action{Kind: Drop, H1: h}, true
		}
	}
	if h1, h2, shared, ok := findJoinPair(s); ok {
		if nodeCount(s, h1)+nodeCount(s, h2) > d.Budget {
			return Action{Kind: Drop, H1: h1}, true
		}
		return Action{Kind: JoinPair, H1: h1, H2: h2, Shared: shared}, true
	}
	if act, ok := findFixableDependency(s, fixed); ok {
		return act, true
	}
	return Action{}, false
}

func nodeCount(s *soc.SOC, h soc.Handle) int {
	eq := s.Get(h)
	if eq == nil {
		return 0
	}
	total := 0
	for _, l := range eq.Levels {
		total += l.NodeCount()
	}
	return total
}

// BestEffort wraps NoDrop's move selection but checks Deadline before every
// step, so a long-running solve can be interrupted and still hand back
// whatever partial progress it made (spec.md §7). Deadline may be nil,
// making BestEffort equivalent to NoDrop.
type BestEffort struct {
	Deadline func() bool
	inner    NoDrop
}

func (b BestEffort) Next(s *soc.SOC, fixed map[int]bool) (Action, bool) {
	if b.Deadline != nil && b.Deadline() {
		return Action{}, false
	}
	return b.inner.Next(s, fixed)
}
