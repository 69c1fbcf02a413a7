package producer

import "testing"

// present80Sbox is the S-box of PRESENT (0xC,0x5,0x6,0xB,0x9,0x0,0xA,0xD,
// 0x3,0xE,0xF,0x8,0x4,0x7,0x1,0x2); present80Rows renders it as a
// 4-in/4-out truth table.
var present80Sbox = [16]int{0xC, 0x5, 0x6, 0xB, 0x9, 0x0, 0xA, 0xD, 0x3, 0xE, 0xF, 0x8, 0x4, 0x7, 0x1, 0x2}

func present80Rows() [][]bool {
	rows := make([][]bool, 0, 16)
	for x := 0; x < 16; x++ {
		y := present80Sbox[x]
		row := make([]bool, 0, 8)
		for b := 3; b >= 0; b-- {
			row = append(row, x&(1<<uint(b)) != 0)
		}
		for b := 3; b >= 0; b-- {
			row = append(row, y&(1<<uint(b)) != 0)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestLiftRoundTripsPresentSbox(t *testing.T) {
	r := Relation{
		InputVars:  []int{0, 1, 2, 3},
		OutputVars: []int{4, 5, 6, 7},
		Rows:       present80Rows(),
	}
	eq, err := Lift(8, r)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	paths, truncated := eq.EnumeratePaths(0)
	if truncated {
		t.Fatalf("unexpected truncation")
	}
	if len(paths) != 16 {
		t.Fatalf("got %d accepting paths, want 16", len(paths))
	}
	seen := map[[8]bool]bool{}
	for _, p := range paths {
		var key [8]bool
		copy(key[:], p.Bits)
		seen[key] = true
	}
	for _, row := range r.Rows {
		var key [8]bool
		copy(key[:], row)
		if !seen[key] {
			t.Fatalf("row %v not represented among accepting paths", row)
		}
	}
}

func TestFixingsKnownFiltersUnknown(t *testing.T) {
	f := Fixings{0: Zero, 1: One, 2: Unknown}
	got := f.Known()
	if len(got) != 2 {
		t.Fatalf("got %d known bits, want 2", len(got))
	}
	if got[0] != false || got[1] != true {
		t.Fatalf("wrong values: %v", got)
	}
}
