package ciphers

import "github.com/Simula-UiB/crhs/producer"

// keccakLaneWidth is w in the Keccak-f[b] family, b = 25w. Width 16 gives
// b = 400, the permutation backing a sponge with rate 240 + capacity 160
// (spec.md §8 seed scenario S5).
const keccakLaneWidth = 16

// keccakRounds is 12 + 2*log2(w) for w = 16 (nr = 12 + 2*4 = 20).
const keccakRounds = 20

var keccakRotationOffsets = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// keccakRC computes round ir's round constant word, truncated to w bits.
// It is the standard Keccak LFSR-based constant generator (FIPS 202
// Algorithm 5), restricted to the bit positions 2^j-1 that fall within a
// w-bit lane.
func keccakRC(ir int) int {
	lsbOf := func(t int) bool {
		if t%255 == 0 {
			return true
		}
		var reg uint16 = 0x01
		for i := 1; i <= t%255; i++ {
			msb := (reg >> 7) & 1
			reg <<= 1
			if msb == 1 {
				reg ^= 0x71 // x^8 + x^6 + x^5 + x^4 + 1 reduction, 8-bit register
			}
			reg &= 0xFF
		}
		return reg&1 == 1
	}
	word := 0
	for j := 0; j <= 4; j++ { // 2^j - 1 < 16 for j = 0..4
		if lsbOf(j + 7*ir) {
			word |= 1 << uint(1<<uint(j)-1)
		}
	}
	return word
}

// lane is a w-bit slice of variables, bit i at index i (LSB-first).
type lane = []int

func rotateLane(l lane, amount int) lane {
	w := len(l)
	out := make(lane, w)
	for i := 0; i < w; i++ {
		out[(i+amount)%w] = l[i]
	}
	return out
}

func xorLanes(pool *varPool, rels *[]producer.Relation, ls ...lane) lane {
	w := len(ls[0])
	out := make(lane, w)
	for b := 0; b < w; b++ {
		cur := ls[0][b]
		for _, l := range ls[1:] {
			next := pool.alloc()
			*rels = append(*rels, xorRelation(cur, l[b], next))
			cur = next
		}
		out[b] = cur
	}
	return out
}

// KeccakSponge lifts keccakRounds rounds of the Keccak-f[400] permutation
// (theta, rho, pi, chi, iota) into producer relations. Rho and pi are pure
// wire rotation/relabelling and cost no relation; theta and iota cost one
// XOR relation per XORed bit; chi, the only nonlinear step, costs one
// 3-input, 1-output relation per bit.
type KeccakSponge struct {
	nVars int

	StateVars  [5][5]lane // [x][y], w bits each, input
	OutputVars [5][5]lane
	relations  []producer.Relation
}

func NewKeccakSponge() *KeccakSponge {
	pool := &varPool{}
	var a [5][5]lane
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x][y] = pool.allocN(keccakLaneWidth)
		}
	}
	inputVars := a

	var rels []producer.Relation

	for round := 0; round < keccakRounds; round++ {
		// theta
		var c [5]lane
		for x := 0; x < 5; x++ {
			c[x] = xorLanes(pool, &rels, a[x][0], a[x][1], a[x][2], a[x][3], a[x][4])
		}
		var d [5]lane
		for x := 0; x < 5; x++ {
			d[x] = xorLanes(pool, &rels, c[(x+4)%5], rotateLane(c[(x+1)%5], 1))
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x][y] = xorLanes(pool, &rels, a[x][y], d[x])
			}
		}

		// rho + pi
		var b [5][5]lane
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				rotated := rotateLane(a[x][y], keccakRotationOffsets[x][y]%keccakLaneWidth)
				nx, ny := y, (2*x+3*y)%5
				b[nx][ny] = rotated
			}
		}

		// chi
		var next [5][5]lane
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				out := pool.allocN(keccakLaneWidth)
				for bi := 0; bi < keccakLaneWidth; bi++ {
					rels = append(rels, chiRelation(b[x][y][bi], b[(x+1)%5][y][bi], b[(x+2)%5][y][bi], out[bi]))
				}
				next[x][y] = out
			}
		}
		a = next

		// iota
		rc := keccakRC(round)
		newLane00 := pool.allocN(keccakLaneWidth)
		for bi := 0; bi < keccakLaneWidth; bi++ {
			rels = append(rels, xorConstRelation(a[0][0][bi], newLane00[bi], rc&(1<<uint(bi)) != 0))
		}
		a[0][0] = newLane00
	}

	return &KeccakSponge{
		nVars:      pool.next,
		StateVars:  inputVars,
		OutputVars: a,
		relations:  rels,
	}
}

// chiRelation lifts out = a XOR ((NOT b) AND c), chi's per-bit nonlinear
// gate, into a 4-variable Relation.
func chiRelation(a, b, c, out int) producer.Relation {
	rows := make([][]bool, 0, 8)
	for v := 0; v < 8; v++ {
		av, bv, cv := v&4 != 0, v&2 != 0, v&1 != 0
		ov := av != (!bv && cv)
		rows = append(rows, []bool{av, bv, cv, ov})
	}
	return producer.Relation{InputVars: []int{a, b, c}, OutputVars: []int{out}, Rows: rows}
}

func (k *KeccakSponge) VariableCount() int                  { return k.nVars }
func (k *KeccakSponge) RoundRelations() []producer.Relation { return k.relations }

// ReferenceKeccakF400 evaluates the Keccak-f[400] permutation directly over
// concrete 16-bit lanes, independent of the producer/crhs machinery, for
// cross-checking a solved SOC's recovered state against seed scenario S5.
func ReferenceKeccakF400(state [5][5]uint16) [5][5]uint16 {
	a := state
	rotl := func(x uint16, k int) uint16 {
		k = ((k % 16) + 16) % 16
		return (x << uint(k)) | (x >> uint(16-k))
	}
	for round := 0; round < keccakRounds; round++ {
		var c [5]uint16
		for x := 0; x < 5; x++ {
			c[x] = a[x][0] ^ a[x][1] ^ a[x][2] ^ a[x][3] ^ a[x][4]
		}
		var d [5]uint16
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x][y] ^= d[x]
			}
		}

		var b [5][5]uint16
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				rotated := rotl(a[x][y], keccakRotationOffsets[x][y])
				nx, ny := y, (2*x+3*y)%5
				b[nx][ny] = rotated
			}
		}

		var next [5][5]uint16
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				next[x][y] = b[x][y] ^ (^b[(x+1)%5][y] & b[(x+2)%5][y])
			}
		}
		a = next

		a[0][0] ^= uint16(keccakRC(round))
	}
	return a
}
