package crhs

// Fix substitutes var := bit in every label of the equation (spec.md §4.3).
// A label naming var but naming other variables too simply has var cleared;
// if bit is 1 the two edges of every node on that level are exchanged,
// since the value the label must now hit shifts by one. A label consisting
// solely of var collapses: the whole level is removed and every node on it
// is replaced, in the eyes of its predecessor, by the target of its bit-edge
// (0-edge if bit is 0, 1-edge if bit is 1). Maximal sharing is then
// re-established on the level above, cascading upward as needed, and a
// final reachability pass drops anything the collapse stranded.
func (e *Equation) Fix(v int, bit bool) {
	idx := 0
	for idx < len(e.Levels) {
		l := e.Levels[idx]
		if !l.Label.Get(v) {
			idx++
			continue
		}
		if l.Label.Weight() > 1 {
			l.Label.Clear(v)
			if bit {
				for i := range l.Nodes {
					if !l.Live(i) {
						continue
					}
					l.Nodes[i].Edge0, l.Nodes[i].Edge1 = l.Nodes[i].Edge1, l.Nodes[i].Edge0
				}
			}
			idx++
			continue
		}
		e.collapseLevel(idx, bit)
		// Do not advance idx: the level that used to sit at idx+1 has
		// slid down into idx and may itself need fixing (fix is called
		// once per variable, but a producer's raw relations can still
		// hand back multiple labels naming the same already-fixed
		// variable before the caller gets a chance to fix each level).
	}
	e.prune()
}

// collapseLevel removes level idx, whose label is exactly {v}, given the
// value bit forced for v. Every node's surviving edge (Edge0 if !bit, Edge1
// if bit) becomes the target its predecessor should point at directly.
func (e *Equation) collapseLevel(idx int, bit bool) {
	l := e.Levels[idx]
	target := make([]int, len(l.Nodes))
	for i, n := range l.Nodes {
		if !l.Live(i) {
			continue
		}
		if bit {
			target[i] = n.Edge1
		} else {
			target[i] = n.Edge0
		}
	}

	for i := range l.Nodes {
		if !l.Live(i) {
			continue
		}
		e.redirectInto(idx, i, target[i])
	}

	e.Levels = append(e.Levels[:idx], e.Levels[idx+1:]...)
	e.reduceUpward(idx - 1)
}
