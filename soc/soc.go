// Package soc implements the System of CRHS equations: a collection of
// crhs.Equation values sharing one variable universe, indexed by which
// variables occur in which equation's labels, together with the operations
// (insert, join, fix, dependency search) spec.md §4.4 specifies.
package soc

import (
	"github.com/Simula-UiB/crhs/crhs"
)

// Handle identifies one equation within a SOC. Handles are stable for the
// lifetime of the equation they name; they are never reused after Drop.
type Handle int

// SOC owns a set of CRHS equations over a shared variable universe plus the
// inverted index variable -> {equation handles whose labels name it}.
type SOC struct {
	Vars      int
	equations map[Handle]*crhs.Equation
	index     map[int]map[Handle]bool
	next      Handle
}

// New returns an empty SOC over a universe of n variables.
func New(n int) *SOC {
	return &SOC{
		Vars:      n,
		equations: make(map[Handle]*crhs.Equation),
		index:     make(map[int]map[Handle]bool),
	}
}

// Get returns the equation named by h, or nil if it has been dropped or was
// never inserted.
func (s *SOC) Get(h Handle) *crhs.Equation { return s.equations[h] }

// Handles returns every live equation handle, in no particular order.
func (s *SOC) Handles() []Handle {
	out := make([]Handle, 0, len(s.equations))
	for h := range s.equations {
		out = append(out, h)
	}
	return out
}

// Len reports how many equations are currently live.
func (s *SOC) Len() int { return len(s.equations) }

// Insert assigns eq a fresh handle and updates the inverted index from its
// current labels.
func (s *SOC) Insert(eq *crhs.Equation) Handle {
	h := s.next
	s.next++
	s.equations[h] = eq
	s.reindex(h)
	return h
}

// Drop removes an equation (used once it is trivial, or once it has been
// consumed by a Join).
func (s *SOC) Drop(h Handle) {
	s.unindex(h)
	delete(s.equations, h)
}

// VariablesOf returns the set of variables named by any live label of h.
func (s *SOC) VariablesOf(h Handle) []int {
	eq := s.equations[h]
	if eq == nil {
		return nil
	}
	seen := map[int]bool{}
	var out []int
	for _, l := range eq.Levels {
		for _, v := range l.Label.Vars() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// EquationsOf returns every live handle whose labels currently name
// variable v.
func (s *SOC) EquationsOf(v int) []Handle {
	set := s.index[v]
	out := make([]Handle, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	return out
}

func (s *SOC) reindex(h Handle) {
	s.unindex(h)
	for _, v := range s.VariablesOf(h) {
		if s.index[v] == nil {
			s.index[v] = make(map[Handle]bool)
		}
		s.index[v][h] = true
	}
}

func (s *SOC) unindex(h Handle) {
	for v, set := range s.index {
		if set[h] {
			delete(set, h)
			if len(set) == 0 {
				delete(s.index, v)
			}
		}
	}
}

// FixVariable applies crhs.Equation.Fix to every equation currently naming
// var, updates the index, and discards any equation that becomes trivial
// (spec.md §4.4). It returns the handles dropped as trivial and reports
// whether any equation became unsatisfiable (which makes the whole SOC
// unsatisfiable, per spec.md §7's short-circuit rule).
func (s *SOC) FixVariable(v int, bit bool) (dropped []Handle, unsat bool) {
	for _, h := range s.EquationsOf(v) {
		eq := s.equations[h]
		eq.Fix(v, bit)
		if eq.IsUnsat() {
			unsat = true
		}
		if eq.IsTrivial() {
			s.Drop(h)
			dropped = append(dropped, h)
			continue
		}
		s.reindex(h)
	}
	return dropped, unsat
}
