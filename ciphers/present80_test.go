package ciphers

import (
	"testing"

	"github.com/Simula-UiB/crhs/producer"
	"github.com/Simula-UiB/crhs/solver"
	"github.com/Simula-UiB/crhs/soc"
)

// TestPresent80SolvedSOCMatchesReference is seed scenario S3: two rounds,
// fully known key, fixing plaintext and key must resolve the SOC to the
// one ciphertext the reference encryption function computes.
func TestPresent80SolvedSOCMatchesReference(t *testing.T) {
	p := NewPresent80(2)

	var plaintext, key [80]bool
	for i := 3; i < len(plaintext); i += 7 {
		plaintext[i] = true
	}
	for i := 1; i < len(key); i += 5 {
		key[i] = true
	}

	s := soc.New(p.VariableCount())
	for _, rel := range p.RoundRelations() {
		eq, err := producer.Lift(p.VariableCount(), rel)
		if err != nil {
			t.Fatalf("Lift: %v", err)
		}
		s.Insert(eq)
	}

	fixed := map[int]bool{}
	for i, v := range p.PlaintextVars {
		fixed[v] = plaintext[i]
	}
	for i, v := range p.KeyVars {
		fixed[v] = key[i]
	}

	res, err := solver.Solve(s, solver.NoDrop{}, fixed, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Status != solver.Solved {
		t.Fatalf("status = %v, want Solved (steps=%d)", res.Status, res.Steps)
	}
	if len(res.Assignments) == 0 {
		t.Fatalf("no assignments returned")
	}

	want := ReferencePresent80(2, plaintext64(plaintext), key)
	for _, a := range res.Assignments {
		for i, v := range p.CiphertextVars {
			if a[v] != want[i] {
				t.Fatalf("ciphertext bit %d = %v, want %v", i, a[v], want[i])
			}
		}
	}
}

func plaintext64(p [80]bool) [64]bool {
	var out [64]bool
	copy(out[:], p[:64])
	return out
}
