package crhs

import "github.com/Simula-UiB/crhs/level"

// Dependency is a linear dependency known to hold among a subset of an
// equation's current labels: the XOR of the bits taken at the named levels
// must equal Target for any assignment consistent with the rest of the SOC
// (Target is always a known constant by the time it reaches Absorb, either
// literally 0, because the labels XOR to the zero form, or the fixed value
// of a variable external to this equation that the labels happen to XOR
// to). Establishing that a Dependency is true is soc.FindDependency's job,
// not this package's; Absorb trusts its caller (spec.md §4.5).
type Dependency struct {
	Levels []int // level indices, in the order to bring them to the top
	Target bool
}

// tag names one node of the unfolded top-k-levels walk: an original node
// index together with the parity of participating bits taken to reach it.
type tag struct {
	orig   int
	parity bool
}

// Absorb eliminates every path inconsistent with dep, restricting the
// represented relation to its intersection with dep (spec.md §4.3-4.5).
// Procedure: bring the participating levels to the top via adjacent swaps;
// walk the top k levels tracking, per node, every parity of taken bits it
// is reachable under (a node reached with two different parities is
// unfolded into two, since the surviving edges downstream can differ; this
// is the source of the worst-case size doubling documented in spec.md
// §4.3); dangle any top-level edge whose completed parity disagrees with
// Target; finally prune unreachable and dead-end nodes in both directions.
func (e *Equation) Absorb(dep Dependency) {
	if len(dep.Levels) == 0 {
		return
	}
	e.bringToFront(dep.Levels)
	k := len(dep.Levels)

	frontier := []tag{{orig: e.Root, parity: false}}

	for j := 0; j < k; j++ {
		orig := e.Levels[j]
		last := j == k-1
		newLevel := level.New(orig.Label.Clone())

		newFrontier := map[tag]int{}
		var newOrder []tag

		resolve := func(origNode int, parity, bit bool) int {
			if origNode == level.Dangling {
				return level.Dangling
			}
			n := orig.Nodes[origNode]
			var childOrig int
			if bit {
				childOrig = n.Edge1
			} else {
				childOrig = n.Edge0
			}
			newParity := parity != bit
			if last {
				if newParity != dep.Target {
					return level.Dangling
				}
				return childOrig // hands off into the first untouched level unchanged
			}
			if childOrig == level.Dangling {
				return level.Dangling
			}
			key := tag{orig: childOrig, parity: newParity}
			if idx, ok := newFrontier[key]; ok {
				return idx
			}
			idx := len(newOrder)
			newFrontier[key] = idx
			newOrder = append(newOrder, key)
			return idx
		}

		newRoot := make([]int, len(frontier))
		for i, t := range frontier {
			e0 := resolve(t.orig, t.parity, false)
			e1 := resolve(t.orig, t.parity, true)
			newRoot[i] = newLevel.InsertNode(e0, e1)
		}

		e.Levels[j] = newLevel
		if j == 0 {
			e.Root = newRoot[0]
		} else {
			e.redirectIntoByMap(j, newRoot)
		}
		frontier = newOrder
	}

	e.prune()
}
