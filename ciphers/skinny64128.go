package ciphers

import "github.com/Simula-UiB/crhs/producer"

// skinnySbox is SKINNY's 4-bit s-box (SubCells for the 64-bit-block
// variants).
var skinnySbox = []int{0xc, 0x6, 0x9, 0x0, 0x1, 0xa, 0x2, 0xb, 0x3, 0x8, 0x5, 0xd, 0x4, 0xe, 0x7, 0xf}

// skinnyPermuteCells is SKINNY's tweakey cell permutation PT, applied to a
// 16-cell array after every round.
var skinnyPermuteCells = []int{9, 15, 8, 13, 10, 14, 12, 11, 0, 1, 2, 3, 4, 5, 6, 7}

// skinnyRoundConstant is the 6-bit affine LFSR sequence AddConstants xors
// into cells 0, 4 and 8 of the state (the low 4, next 2 and top bit of the
// running constant, per round).
func skinnyRoundConstant(round int) (c0, c1, c2 int) {
	x := 1
	for i := 0; i < round; i++ {
		x = ((x << 1) | (((x >> 5) ^ (x >> 4)) & 1)) & 0x3f
	}
	return x & 0xf, (x >> 4) & 0x3, 0
}

// Skinny64128 lifts a fixed number of SKINNY-64/128 rounds (state and both
// tweakey words TK1, TK2 each 16 nibbles) into producer relations. SubCells
// is the only nonlinear step and costs one s-box relation per nibble per
// round; the constant, tweakey, MixColumns and TK2-LFSR XORs cost one
// relation per XORed bit; ShiftRows and the cell permutations are pure wire
// relabelling and cost none.
type Skinny64128 struct {
	rounds int
	nVars  int

	PlaintextVars  []int // 64 vars, 16 cells x 4 bits, MSB first per cell
	TK1Vars        []int
	TK2Vars        []int
	CiphertextVars []int

	relations []producer.Relation
}

func NewSkinny64128(rounds int) *Skinny64128 {
	pool := &varPool{}
	state := pool.allocN(64)
	tk1 := pool.allocN(64)
	tk2 := pool.allocN(64)
	plaintextVars := append([]int(nil), state...)
	tk1Vars := append([]int(nil), tk1...)
	tk2Vars := append([]int(nil), tk2...)

	var rels []producer.Relation

	for r := 0; r < rounds; r++ {
		afterSbox := pool.allocN(64)
		for cell := 0; cell < 16; cell++ {
			in := cellBits(state, cell)
			out := cellBits(afterSbox, cell)
			rels = append(rels, sboxRelation(skinnySbox, in, out))
		}
		state = afterSbox

		c0, c1, c2 := skinnyRoundConstant(r + 1)
		state = xorConstIntoCell(state, 0, c0, 4, pool, &rels)
		state = xorConstIntoCell(state, 4, c1, 2, pool, &rels)
		state = xorConstIntoCell(state, 8, c2, 1, pool, &rels)

		afterKey := pool.allocN(64) // AddRoundTweakey touches cells 0..7 (top two rows) only
		for cell := 0; cell < 8; cell++ {
			ti := cellBits(tk1, cell)
			tj := cellBits(tk2, cell)
			si := cellBits(state, cell)
			oi := cellBits(afterKey, cell)
			for b := 0; b < 4; b++ {
				tXt := pool.alloc()
				rels = append(rels, xorRelation(ti[b], tj[b], tXt))
				rels = append(rels, xorRelation(si[b], tXt, oi[b]))
			}
		}
		copy(afterKey[32:], state[32:])
		state = afterKey

		state = shiftRows(state)
		state = mixColumns(state, pool, &rels)

		tk1 = permuteCells(tk1)
		tk2 = lfsrCellsAndPermute(tk2, pool, &rels)
	}

	ciphertext := pool.allocN(64)
	for i := range state {
		rels = append(rels, xorConstRelation(state[i], ciphertext[i], false))
	}

	return &Skinny64128{
		rounds:         rounds,
		nVars:          pool.next,
		PlaintextVars:  plaintextVars,
		TK1Vars:        tk1Vars,
		TK2Vars:        tk2Vars,
		CiphertextVars: ciphertext,
		relations:      rels,
	}
}

func (s *Skinny64128) VariableCount() int                  { return s.nVars }
func (s *Skinny64128) RoundRelations() []producer.Relation { return s.relations }

func cellBits(state []int, cell int) []int {
	return []int{state[4*cell], state[4*cell+1], state[4*cell+2], state[4*cell+3]}
}

func setCellBits(state []int, cell int, bits []int) {
	copy(state[4*cell:4*cell+4], bits)
}

func xorConstIntoCell(state []int, cell, constant, width int, pool *varPool, rels *[]producer.Relation) []int {
	out := append([]int(nil), state...)
	bits := cellBits(state, cell)
	cbits := bitsMSB(constant, 4)
	newBits := pool.allocN(4)
	for b := 0; b < 4; b++ {
		if b < 4-width {
			newBits[b] = bits[b]
			continue
		}
		*rels = append(*rels, xorConstRelation(bits[b], newBits[b], cbits[b]))
	}
	setCellBits(out, cell, newBits)
	return out
}

// shiftRows shifts row r of the 4x4 cell grid right by r cells, SKINNY's
// permutation layer.
func shiftRows(state []int) []int {
	out := make([]int, 64)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			srcCol := ((c - r) % 4 + 4) % 4
			srcCell := r*4 + srcCol
			dstCell := r*4 + c
			copy(out[4*dstCell:4*dstCell+4], cellBits(state, srcCell))
		}
	}
	return out
}

// mixColumns applies SKINNY's binary mixing matrix
//
//	1 0 1 1
//	1 0 0 0
//	0 1 1 0
//	1 0 1 0
//
// to each column of 4 cells, bit by bit (the matrix entries are 0/1, so
// this is plain XOR of whole cells, and lifts to plain per-bit XOR).
func mixColumns(state []int, pool *varPool, rels *[]producer.Relation) []int {
	out := make([]int, 64)
	for c := 0; c < 4; c++ {
		cell := func(r int) []int { return cellBits(state, r*4+c) }
		c0, c1, c2, c3 := cell(0), cell(1), cell(2), cell(3)
		newRow := func(terms ...[]int) []int {
			acc := pool.allocN(4)
			for b := 0; b < 4; b++ {
				cur := terms[0][b]
				for _, t := range terms[1:] {
					next := pool.alloc()
					*rels = append(*rels, xorRelation(cur, t[b], next))
					cur = next
				}
				acc[b] = cur
			}
			return acc
		}
		setCellBits(out, 0*4+c, newRow(c0, c2, c3))
		setCellBits(out, 1*4+c, c0)
		setCellBits(out, 2*4+c, newRow(c1, c2))
		setCellBits(out, 3*4+c, newRow(c0, c2))
	}
	return out
}

func permuteCells(state []int) []int {
	out := make([]int, 64)
	for c := 0; c < 16; c++ {
		setCellBits(out, c, cellBits(state, skinnyPermuteCells[c]))
	}
	return out
}

// lfsrCellsAndPermute applies TK2's per-cell LFSR (x7..x0 -> x6..x0,x7^x5)
// then the same cell permutation as TK1.
func lfsrCellsAndPermute(state []int, pool *varPool, rels *[]producer.Relation) []int {
	updated := make([]int, 64)
	for c := 0; c < 16; c++ {
		bits := cellBits(state, c) // MSB..LSB: b3 b2 b1 b0
		fb := pool.alloc()
		*rels = append(*rels, xorRelation(bits[0], bits[2], fb)) // b3 xor b1, feedback bit
		setCellBits(updated, c, []int{bits[1], bits[2], bits[3], fb})
	}
	return permuteCells(updated)
}
