// Package ciphers holds the only cipher-specific code in this module: three
// small, from-scratch round-function implementations (PRESENT-80,
// SKINNY-64/128, a Keccak-f permutation) exposed as producer.Producer
// values purely as test fixtures for the seed scenarios of spec.md §8
// (S3-S5). None of them is part of THE CORE (SPEC_FULL.md §1) and none
// calls into crhs/soc/solver beyond the producer.Relation boundary.
package ciphers

import "github.com/Simula-UiB/crhs/producer"

// sboxRelation lifts an s-box lookup table into a Relation: row x's bits
// (MSB first) go to InputVars, sbox[x]'s bits (MSB first) go to OutputVars.
func sboxRelation(sbox []int, in, out []int) producer.Relation {
	n := len(in)
	rows := make([][]bool, len(sbox))
	for x, y := range sbox {
		row := make([]bool, 0, n+len(out))
		for b := n - 1; b >= 0; b-- {
			row = append(row, x&(1<<uint(b)) != 0)
		}
		for b := len(out) - 1; b >= 0; b-- {
			row = append(row, y&(1<<uint(b)) != 0)
		}
		rows[x] = row
	}
	return producer.Relation{InputVars: in, OutputVars: out, Rows: rows}
}

// xorRelation lifts out = a XOR b into a 3-variable Relation.
func xorRelation(a, b, out int) producer.Relation {
	return producer.Relation{
		InputVars:  []int{a, b},
		OutputVars: []int{out},
		Rows: [][]bool{
			{false, false, false},
			{false, true, true},
			{true, false, true},
			{true, true, false},
		},
	}
}

// xorConstRelation lifts out = in XOR c (c a known public constant bit)
// into a 2-variable Relation.
func xorConstRelation(in, out int, c bool) producer.Relation {
	return producer.Relation{
		InputVars:  []int{in},
		OutputVars: []int{out},
		Rows: [][]bool{
			{false, c},
			{true, !c},
		},
	}
}

// varPool hands out fresh, never-reused variable indices. Every producer
// in this package uses one to build its variable universe incrementally as
// it lifts each round.
type varPool struct{ next int }

func (p *varPool) alloc() int {
	v := p.next
	p.next++
	return v
}

func (p *varPool) allocN(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = p.alloc()
	}
	return out
}

// bitsMSB renders x's low n bits as a bool slice, most significant first.
func bitsMSB(x, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = x&(1<<uint(n-1-i)) != 0
	}
	return out
}
