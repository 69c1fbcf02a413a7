// Package solver drives a soc.SOC toward a solved form by repeatedly asking
// a Strategy for the next primitive transform to apply (spec.md §7). It
// owns no cryptanalytic knowledge of its own: everything it does is Join,
// Absorb, Fix or Drop, dispatched through the soc and crhs packages, plus
// the final decode step that turns whatever accepting paths remain into
// concrete variable assignments via gf2.Solve.
package solver

import (
	"log"

	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/gf2"
	"github.com/Simula-UiB/crhs/measure"
	"github.com/Simula-UiB/crhs/soc"
)

// pathLimit bounds how many accepting paths, per equation and in total
// across the final cartesian decode, Solve will enumerate before giving up
// and reporting Truncated instead of hanging on a combinatorial explosion.
const pathLimit = 4096

// Solve applies strategy's chosen actions to s until it reports it has
// nothing more to do, then decodes whatever equations remain into concrete
// assignments. fixed seeds already-known variable values (e.g. a
// plaintext/ciphertext pair, spec.md §6); deadline, if non-nil, is checked
// once per step and aborts the search early with an Unknown result.
func Solve(s *soc.SOC, strategy Strategy, fixed map[int]bool, deadline func() bool) (Result, error) {
	known := make(map[int]bool, len(fixed))
	for v, bit := range fixed {
		known[v] = bit
	}
	for v, bit := range known {
		_, unsat := s.FixVariable(v, bit)
		if unsat {
			return Result{Status: Unsat}, nil
		}
	}

	steps := 0
	for {
		if deadline != nil && deadline() {
			return Result{Status: Unknown, Steps: steps}, nil
		}
		act, ok := strategy.Next(s, known)
		if !ok {
			break
		}
		steps++
		if Trace {
			log.Printf("[crhs] step %d: %s h1=%d h2=%d var=%d", steps, act.Kind, act.H1, act.H2, act.Var)
		}
		switch act.Kind {
		case JoinPair:
			if _, err := s.Join(act.H1, act.H2, act.Shared); err != nil {
				return Result{}, err
			}
		case Absorb:
			eq := s.Get(act.H1)
			if eq == nil {
				continue
			}
			eq.Absorb(act.Dep)
			if eq.IsUnsat() {
				return Result{Status: Unsat, Steps: steps}, nil
			}
			if eq.IsTrivial() {
				s.Drop(act.H1)
			}
		case Fix:
			known[act.Var] = act.Bit
			_, unsat := s.FixVariable(act.Var, act.Bit)
			if unsat {
				return Result{Status: Unsat, Steps: steps}, nil
			}
		case Drop:
			s.Drop(act.H1)
		}
		if measure.Enabled {
			measure.Global.Add("solver/steps", 1)
			measure.Global.Peak("solver/nodes_peak", totalNodes(s)*measure.BytesPerNode)
		}
	}

	assignments, truncated := decode(s, known, pathLimit)
	status := Solved
	if truncated {
		status = Unknown
	} else if len(assignments) == 0 {
		status = Unsat
	}
	return Result{Status: status, Assignments: assignments, Steps: steps, Truncated: truncated}, nil
}

// decode reconstructs every satisfying assignment implied by s's remaining
// live equations together with the variables already known, by combining
// each equation's accepting paths (crhs.EnumeratePaths) into a linear
// system solved with gf2.Solve, spec.md §4.1's substitution step lifted to
// a whole SOC.
func decode(s *soc.SOC, known map[int]bool, limit int) (out []Assignment, truncated bool) {
	handles := s.Handles()
	eqs := make([]*crhs.Equation, 0, len(handles))
	perEq := make([][]crhs.Path, 0, len(handles))
	for _, h := range handles {
		eq := s.Get(h)
		if eq.IsUnsat() {
			return nil, false
		}
		paths, trunc := eq.EnumeratePaths(limit)
		if trunc {
			return nil, true
		}
		eqs = append(eqs, eq)
		perEq = append(perEq, paths)
	}

	base := gf2.NewMatrix(s.Vars)
	var baseRHS []bool
	for v, bit := range known {
		base.Append(gf2.FromVars(s.Vars, v))
		baseRHS = append(baseRHS, bit)
	}

	var walk func(i int, m gf2.Matrix, rhs []bool) bool
	walk = func(i int, m gf2.Matrix, rhs []bool) bool {
		if limit > 0 && len(out) >= limit {
			truncated = true
			return false
		}
		if i == len(eqs) {
			if x, ok := gf2.Solve(m, rhs); ok {
				out = append(out, assignmentFrom(x, s.Vars))
			}
			return true
		}
		for _, p := range perEq[i] {
			mm := gf2.NewMatrix(s.Vars)
			for _, r := range m.Rows {
				mm.Append(r)
			}
			for _, l := range eqs[i].Levels {
				mm.Append(l.Label)
			}
			rr := append(append([]bool{}, rhs...), p.Bits...)
			if !walk(i+1, mm, rr) {
				return false
			}
		}
		return true
	}
	walk(0, base, baseRHS)
	return out, truncated
}

// totalNodes sums the live node population across every equation still in
// s, the quantity spec.md §5 names as the solve's one constrained resource.
func totalNodes(s *soc.SOC) int64 {
	var total int64
	for _, h := range s.Handles() {
		total += measure.NodeCount(s.Get(h))
	}
	return total
}

func assignmentFrom(x gf2.Vector, n int) Assignment {
	a := make(Assignment, n)
	for i := 0; i < n; i++ {
		a[i] = x.Get(i)
	}
	return a
}
