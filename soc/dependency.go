package soc

import (
	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/gf2"
)

// FindDependency searches the labels of h for a linear dependency: a
// non-trivial XOR of labels equalling zero, or equalling a variable already
// fixed elsewhere in the solve (spec.md §4.4). fixed holds every variable
// value the solver has pinned down so far; it may be nil or empty.
//
// Internal dependencies (XOR of a subset of labels = 0) are tried first;
// failing that, each fixed variable is tried as an external target. The
// level indices returned name positions in h's current level order.
func (s *SOC) FindDependency(h Handle, fixed map[int]bool) (crhs.Dependency, bool) {
	eq := s.equations[h]
	if eq == nil {
		return crhs.Dependency{}, false
	}
	m := gf2.NewMatrix(s.Vars)
	for _, l := range eq.Levels {
		m.Append(l.Label)
	}

	if combo, ok := gf2.Dependency(m); ok {
		return crhs.Dependency{Levels: combo.Vars(), Target: false}, true
	}

	for v, bit := range fixed {
		target := gf2.FromVars(s.Vars, v)
		if combo, ok := gf2.Express(target, m); ok && combo.Weight() > 0 {
			return crhs.Dependency{Levels: combo.Vars(), Target: bit}, true
		}
	}
	return crhs.Dependency{}, false
}
