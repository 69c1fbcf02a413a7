package crhs

import "github.com/Simula-UiB/crhs/level"

// Swap exchanges levels i and i+1, preserving the represented relation
// (spec.md §4.3). For every node n on level i, its four grandchildren on
// level i+2, (n.0.0, n.0.1, n.1.0, n.1.1), are re-paired as (n.0.0, n.1.0)
// and (n.0.1, n.1.1) to build the new level i+1 (the bit tested second is
// now tested first), and n itself is replaced by a node testing the label
// that used to belong to level i+1. Maximal sharing is re-established on
// both new levels; identical grandchild targets collapse into one node.
// Cost is bounded by the product of the two levels' node counts.
func (e *Equation) Swap(i int) {
	if i < 0 || i+1 >= len(e.Levels) {
		panic("crhs: Swap index out of range")
	}
	cur := e.Levels[i]
	next := e.Levels[i+1]

	newNext := level.New(cur.Label.Clone())
	newCur := level.New(next.Label.Clone())

	mapping := make([]int, len(cur.Nodes))
	for i := range mapping {
		mapping[i] = level.Dangling
	}

	grandchildren := func(child int) (a, b int) {
		if child == level.Dangling {
			return level.Dangling, level.Dangling
		}
		n := next.Nodes[child]
		return n.Edge0, n.Edge1
	}

	for idx, n := range cur.Nodes {
		if !cur.Live(idx) {
			continue
		}
		gc00, gc01 := grandchildren(n.Edge0)
		gc10, gc11 := grandchildren(n.Edge1)

		newNode0 := newNext.InsertNode(gc00, gc10) // c=0 branch, then old b-test
		newNode1 := newNext.InsertNode(gc01, gc11) // c=1 branch, then old b-test
		mapping[idx] = newCur.InsertNode(newNode0, newNode1)
	}

	e.Levels[i] = newCur
	e.Levels[i+1] = newNext
	e.redirectIntoByMap(i, mapping)
}

// bringToFront moves the given level indices (assumed distinct, in the
// order the caller wants them to occupy positions 0..len-1) to the front of
// the equation via a sequence of adjacent Swaps. It returns nothing: the
// level the caller named as target[k] ends up at position k.
func (e *Equation) bringToFront(target []int) {
	pos := append([]int(nil), target...)
	for want := 0; want < len(pos); want++ {
		cur := pos[want]
		for cur > want {
			e.Swap(cur - 1)
			// everything that referenced level cur-1 or cur by position
			// needs its tracked position updated: the two levels traded
			// places.
			for j := range pos {
				if pos[j] == cur-1 {
					pos[j] = cur
				} else if pos[j] == cur {
					pos[j] = cur - 1
				}
			}
			cur--
		}
	}
}
