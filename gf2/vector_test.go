package gf2

import "testing"

func TestAddIsXor(t *testing.T) {
	a := FromVars(8, 1, 3, 5)
	b := FromVars(8, 3, 5, 7)
	got := Add(a, b)
	want := FromVars(8, 1, 7)
	if !Equal(got, want) {
		t.Fatalf("Add(%v,%v) = %v, want %v", a, b, got, want)
	}
}

func TestIsZero(t *testing.T) {
	z := NewVector(10)
	if !z.IsZero() {
		t.Fatalf("fresh vector should be zero")
	}
	z.Set(4)
	if z.IsZero() {
		t.Fatalf("vector with a set bit should not be zero")
	}
	z.Clear(4)
	if !z.IsZero() {
		t.Fatalf("clearing the only set bit should restore zero")
	}
}

func TestWeightAndVars(t *testing.T) {
	v := FromVars(70, 0, 63, 64, 69)
	if w := v.Weight(); w != 4 {
		t.Fatalf("weight = %d, want 4", w)
	}
	got := v.Vars()
	want := []int{0, 63, 64, 69}
	if len(got) != len(want) {
		t.Fatalf("Vars() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Vars() = %v, want %v", got, want)
		}
	}
}

func TestStringMatchesBddGrammar(t *testing.T) {
	if s := NewVector(5).String(); s != "" {
		t.Fatalf("zero form should render empty, got %q", s)
	}
	if s := FromVars(5, 1, 2, 4).String(); s != "1+2+4" {
		t.Fatalf("got %q, want 1+2+4", s)
	}
}

func TestRREFAndDependency(t *testing.T) {
	m := NewMatrix(4)
	m.Append(FromVars(4, 0, 1))
	m.Append(FromVars(4, 1, 2))
	m.Append(FromVars(4, 0, 2)) // row0 + row1 = row2: dependency exists

	combo, ok := Dependency(m)
	if !ok {
		t.Fatalf("expected a dependency among the three rows")
	}
	// Reconstruct and check it XORs to zero.
	acc := NewVector(4)
	for i, r := range m.Rows {
		if combo.Get(i) {
			AddInto(acc, r)
		}
	}
	if !acc.IsZero() {
		t.Fatalf("combination %v does not XOR to zero: %v", combo, acc)
	}
	if combo.Weight() < 2 {
		t.Fatalf("dependency combination must be non-trivial, got weight %d", combo.Weight())
	}
}

func TestRREFIndependentRowsHaveNoDependency(t *testing.T) {
	m := NewMatrix(3)
	m.Append(FromVars(3, 0))
	m.Append(FromVars(3, 1))
	m.Append(FromVars(3, 2))
	if _, ok := Dependency(m); ok {
		t.Fatalf("independent rows should report no dependency")
	}
}

func TestReduce(t *testing.T) {
	basis := NewMatrix(4)
	basis.Append(FromVars(4, 0, 1))
	basis.Append(FromVars(4, 2, 3))
	echelon, pivots, _ := RREF(basis)

	a := FromVars(4, 0, 1, 2, 3)
	reduced, combo := Reduce(a, echelon, pivots)
	if !reduced.IsZero() {
		t.Fatalf("a should reduce to zero against the basis, got %v", reduced)
	}
	if combo.Weight() != 2 {
		t.Fatalf("expected both basis rows used, got combo %v", combo)
	}
}
