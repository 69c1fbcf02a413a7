package bddfile

import (
	"bytes"
	"sort"
	"testing"

	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/producer"
)

// sortedPathKeys renders every accepting path of eq as a "01..." bit string
// and returns them sorted, so two equations with different internal node
// numbering but the same represented relation compare equal.
func sortedPathKeys(t *testing.T, eq *crhs.Equation) []string {
	t.Helper()
	paths, truncated := eq.EnumeratePaths(0)
	if truncated {
		t.Fatalf("unexpected truncation enumerating paths")
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		out := make([]byte, len(p.Bits))
		for j, b := range p.Bits {
			if b {
				out[j] = '1'
			} else {
				out[j] = '0'
			}
		}
		keys[i] = string(out)
	}
	sort.Strings(keys)
	return keys
}

// TestRoundTripIsomorphic is seed scenario S6: serializing a SOC's
// equations to the .bdd grammar and re-parsing them must yield a graph
// representing the same relation, checked here via accepting-path
// equivalence (the per-level labels together with the bit sequence every
// path takes over them is exactly what the relation means; the internal
// node indices the two graphs happen to use are not).
func TestRoundTripIsomorphic(t *testing.T) {
	rel := producer.Relation{
		InputVars:  []int{0, 1},
		OutputVars: []int{2},
		Rows: [][]bool{
			{false, false, false},
			{false, true, true},
			{true, false, true},
			{true, true, false},
		},
	}
	eq, err := producer.Lift(3, rel)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, 3, []*crhs.Equation{eq}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	vars, eqs, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if vars != 3 {
		t.Fatalf("vars = %d, want 3", vars)
	}
	if len(eqs) != 1 {
		t.Fatalf("got %d equations, want 1", len(eqs))
	}

	want := sortedPathKeys(t, eq)
	got := sortedPathKeys(t, eqs[0])
	if len(want) != len(got) {
		t.Fatalf("path count: got %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("path set mismatch: got %v, want %v", got, want)
		}
	}
}

// TestRoundTripMultipleEquations exercises the N > 1 header path and an
// equation with more than one level, matching the level counts a real
// lifted relation produces.
func TestRoundTripMultipleEquations(t *testing.T) {
	relA := producer.Relation{
		InputVars:  []int{0},
		OutputVars: []int{1},
		Rows:       [][]bool{{false, false}, {true, true}},
	}
	relB := producer.Relation{
		InputVars:  []int{1},
		OutputVars: []int{2},
		Rows:       [][]bool{{false, true}, {true, false}},
	}
	eqA, err := producer.Lift(3, relA)
	if err != nil {
		t.Fatalf("Lift A: %v", err)
	}
	eqB, err := producer.Lift(3, relB)
	if err != nil {
		t.Fatalf("Lift B: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, 3, []*crhs.Equation{eqA, eqB}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	_, eqs, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(eqs) != 2 {
		t.Fatalf("got %d equations, want 2", len(eqs))
	}
	for i, original := range []*crhs.Equation{eqA, eqB} {
		want := sortedPathKeys(t, original)
		got := sortedPathKeys(t, eqs[i])
		if len(want) != len(got) {
			t.Fatalf("equation %d: path count got %d want %d", i, len(got), len(want))
		}
		for j := range want {
			if want[j] != got[j] {
				t.Fatalf("equation %d: path mismatch got %v want %v", i, got, want)
			}
		}
	}
}

// TestReadRejectsMalformedHeader exercises the error path for a file whose
// equation count declaration does not match a parseable integer.
func TestReadRejectsMalformedHeader(t *testing.T) {
	_, _, err := Read(bytes.NewBufferString("3\nnot-a-number\n"))
	if err != ErrMalformedFile {
		t.Fatalf("err = %v, want ErrMalformedFile", err)
	}
}
