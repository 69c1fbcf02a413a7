package ciphers

import "github.com/Simula-UiB/crhs/producer"

// presentSbox is PRESENT's single 4-bit s-box.
var presentSbox = []int{0xC, 0x5, 0x6, 0xB, 0x9, 0x0, 0xA, 0xD, 0x3, 0xE, 0xF, 0x8, 0x4, 0x7, 0x1, 0x2}

// presentPermIndex is PRESENT's 64-bit wire permutation: bit i moves to
// position presentPermIndex(i).
func presentPermIndex(i int) int {
	if i == 63 {
		return 63
	}
	return (16 * i) % 63
}

// Present80 lifts a fixed number of PRESENT-80 rounds into producer
// relations: per round, one XOR relation per round-key bit, one s-box
// relation per state nibble, one key-schedule s-box and five round-counter
// relations, plus a final round-key XOR per bit; the bit permutation and
// register rotation are pure wire relabelling and cost no relation at all. Bit i of every 64/80-bit array, here and in
// ReferencePresent80, is the state/key register's bit-position i in the
// cipher's own k79...k0 / x63...x0 notation.
type Present80 struct {
	rounds int
	nVars  int

	PlaintextVars  []int
	KeyVars        []int
	CiphertextVars []int

	relations []producer.Relation
}

// NewPresent80 builds the producer for encrypting one block through rounds
// rounds of PRESENT-80.
func NewPresent80(rounds int) *Present80 {
	pool := &varPool{}
	state := pool.allocN(64)
	key := pool.allocN(80)
	plaintextVars := append([]int(nil), state...)
	keyVars := append([]int(nil), key...)

	var rels []producer.Relation

	for r := 0; r < rounds; r++ {
		roundKey := key[16:80] // leftmost 64 bits of the register
		afterXor := pool.allocN(64)
		for i := 0; i < 64; i++ {
			rels = append(rels, xorRelation(state[i], roundKey[i], afterXor[i]))
		}

		afterSbox := pool.allocN(64)
		for nib := 0; nib < 16; nib++ {
			in := []int{afterXor[4*nib+3], afterXor[4*nib+2], afterXor[4*nib+1], afterXor[4*nib]}
			out := []int{afterSbox[4*nib+3], afterSbox[4*nib+2], afterSbox[4*nib+1], afterSbox[4*nib]}
			rels = append(rels, sboxRelation(presentSbox, in, out))
		}

		permuted := make([]int, 64)
		for i := 0; i < 64; i++ {
			permuted[presentPermIndex(i)] = afterSbox[i]
		}
		state = permuted

		key = updatePresentKey(key, r+1, pool, &rels)
	}

	ciphertext := pool.allocN(64)
	roundKey := key[16:80]
	for i := 0; i < 64; i++ {
		rels = append(rels, xorRelation(state[i], roundKey[i], ciphertext[i]))
	}

	return &Present80{
		rounds:         rounds,
		nVars:          pool.next,
		PlaintextVars:  plaintextVars,
		KeyVars:        keyVars,
		CiphertextVars: ciphertext,
		relations:      rels,
	}
}

func updatePresentKey(key []int, round int, pool *varPool, rels *[]producer.Relation) []int {
	rotated := make([]int, 80)
	for j := 0; j < 80; j++ {
		rotated[j] = key[((j-61)%80+80)%80]
	}

	newTop := pool.allocN(4)
	in := []int{rotated[79], rotated[78], rotated[77], rotated[76]}
	out := []int{newTop[3], newTop[2], newTop[1], newTop[0]}
	*rels = append(*rels, sboxRelation(presentSbox, in, out))
	rotated[76], rotated[77], rotated[78], rotated[79] = newTop[0], newTop[1], newTop[2], newTop[3]

	rc := bitsMSB(round, 5) // rc[0] is the counter's MSB
	newCounterBits := pool.allocN(5)
	for i, bitIdx := range []int{19, 18, 17, 16, 15} {
		*rels = append(*rels, xorConstRelation(rotated[bitIdx], newCounterBits[i], rc[i]))
	}
	for i, bitIdx := range []int{19, 18, 17, 16, 15} {
		rotated[bitIdx] = newCounterBits[i]
	}
	return rotated
}

func (p *Present80) VariableCount() int                  { return p.nVars }
func (p *Present80) RoundRelations() []producer.Relation { return p.relations }

// ReferencePresent80 evaluates the same rounds directly over concrete bits,
// independent of the producer/crhs machinery, for cross-checking a solved
// SOC's recovered plaintext/ciphertext (spec.md §8, seed scenario S3).
func ReferencePresent80(rounds int, plaintext [64]bool, key [80]bool) [64]bool {
	var state [64]bool
	copy(state[:], plaintext[:])
	k := key

	for r := 0; r < rounds; r++ {
		for i := 0; i < 64; i++ {
			state[i] = state[i] != k[16+i]
		}
		var afterSbox [64]bool
		for nib := 0; nib < 16; nib++ {
			x := nibbleValue(state, nib)
			y := presentSbox[x]
			setNibble(&afterSbox, nib, y)
		}
		var permuted [64]bool
		for i := 0; i < 64; i++ {
			permuted[presentPermIndex(i)] = afterSbox[i]
		}
		state = permuted
		k = refUpdatePresentKey(k, r+1)
	}
	var ct [64]bool
	for i := 0; i < 64; i++ {
		ct[i] = state[i] != k[16+i]
	}
	return ct
}

func nibbleValue(state [64]bool, nib int) int {
	x := 0
	for b := 3; b >= 0; b-- {
		x <<= 1
		if state[4*nib+b] {
			x |= 1
		}
	}
	return x
}

func setNibble(state *[64]bool, nib, y int) {
	for b := 0; b < 4; b++ {
		state[4*nib+b] = y&(1<<uint(b)) != 0
	}
}

func refUpdatePresentKey(key [80]bool, round int) [80]bool {
	var rotated [80]bool
	for j := 0; j < 80; j++ {
		rotated[j] = key[((j-61)%80+80)%80]
	}
	nibble := 0
	for b := 3; b >= 0; b-- {
		nibble <<= 1
		if rotated[76+b] {
			nibble |= 1
		}
	}
	y := presentSbox[nibble]
	for b := 0; b < 4; b++ {
		rotated[76+b] = y&(1<<uint(b)) != 0
	}
	rc := bitsMSB(round, 5)
	for i, bitIdx := range []int{19, 18, 17, 16, 15} {
		rotated[bitIdx] = rotated[bitIdx] != rc[i]
	}
	return rotated
}
