package solver

import (
	"testing"

	"github.com/Simula-UiB/crhs/producer"
	"github.com/Simula-UiB/crhs/soc"
)

// TestSolveTwoSolutionSystem is seed scenario S1: a single relation
// asserting x1 == x0 has exactly two satisfying assignments, both of which
// Solve must report.
func TestSolveTwoSolutionSystem(t *testing.T) {
	rel := producer.Relation{
		InputVars:  []int{0},
		OutputVars: []int{1},
		Rows:       [][]bool{{false, false}, {true, true}},
	}
	eq, err := producer.Lift(2, rel)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	s := soc.New(2)
	s.Insert(eq)

	res, err := Solve(s, NoDrop{}, nil, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Status != Solved {
		t.Fatalf("status = %v, want Solved", res.Status)
	}
	if len(res.Assignments) != 2 {
		t.Fatalf("got %d assignments, want 2: %v", len(res.Assignments), res.Assignments)
	}
	for _, a := range res.Assignments {
		if a[0] != a[1] {
			t.Fatalf("assignment %v violates x1 == x0", a)
		}
	}
}

// TestSolvePropagatesFixAcrossTwoRelations chains two relations through a
// shared variable: with x0 fixed, its value must propagate through x1 to x2
// so that the system resolves to exactly one solution.
func TestSolvePropagatesFixAcrossTwoRelations(t *testing.T) {
	// x1 == x0, and x2 == x1: chained equality over three variables.
	relA := producer.Relation{
		InputVars:  []int{0},
		OutputVars: []int{1},
		Rows:       [][]bool{{false, false}, {true, true}},
	}
	relB := producer.Relation{
		InputVars:  []int{1},
		OutputVars: []int{2},
		Rows:       [][]bool{{false, false}, {true, true}},
	}
	eqA, err := producer.Lift(3, relA)
	if err != nil {
		t.Fatalf("Lift A: %v", err)
	}
	eqB, err := producer.Lift(3, relB)
	if err != nil {
		t.Fatalf("Lift B: %v", err)
	}
	s := soc.New(3)
	s.Insert(eqA)
	s.Insert(eqB)

	res, err := Solve(s, NoDrop{}, map[int]bool{0: true}, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Status != Solved {
		t.Fatalf("status = %v, want Solved", res.Status)
	}
	if len(res.Assignments) != 1 {
		t.Fatalf("got %d assignments, want 1: %v", len(res.Assignments), res.Assignments)
	}
	a := res.Assignments[0]
	if !a[0] || !a[1] || !a[2] {
		t.Fatalf("assignment %v, want all true", a)
	}
}

func TestSolveDetectsUnsat(t *testing.T) {
	rel := producer.Relation{
		InputVars:  []int{0},
		OutputVars: []int{1},
		Rows:       [][]bool{{false, false}, {true, true}},
	}
	eq, err := producer.Lift(2, rel)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	s := soc.New(2)
	s.Insert(eq)

	res, err := Solve(s, NoDrop{}, map[int]bool{0: false, 1: true}, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Status != Unsat {
		t.Fatalf("status = %v, want Unsat", res.Status)
	}
}
