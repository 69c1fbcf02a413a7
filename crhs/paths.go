package crhs

import "github.com/Simula-UiB/crhs/level"

// Path is one accepting source-to-sink walk: the edge bit taken at each
// level, in level order.
type Path struct {
	Bits []bool
}

// EnumeratePaths walks every source-to-sink path, up to limit of them (0
// means unlimited), and reports whether it stopped early because of the
// limit. This is terminal inspection only (spec.md §4.3); it does not
// resolve paths into variable assignments. That requires the labels of
// every level, which callers with more context (solver.Solve) combine with
// gf2 machinery once the SOC's other equations are out of the way too.
func (e *Equation) EnumeratePaths(limit int) (paths []Path, truncated bool) {
	if e.Root == level.Dangling {
		return nil, false
	}
	var walk func(idx, node int, bits []bool) bool // returns false to stop
	walk = func(idx, node int, bits []bool) bool {
		if limit > 0 && len(paths) >= limit {
			truncated = true
			return false
		}
		l := e.Levels[idx]
		n := l.Nodes[node]
		last := idx == len(e.Levels)-1
		for bit, target := range [2]int{n.Edge0, n.Edge1} {
			b := bit == 1
			next := append(append([]bool(nil), bits...), b)
			if last {
				if target == level.Sink {
					if limit > 0 && len(paths) >= limit {
						truncated = true
						return false
					}
					paths = append(paths, Path{Bits: next})
				}
				continue
			}
			if target == level.Dangling {
				continue
			}
			if !walk(idx+1, target, next) {
				return false
			}
		}
		return true
	}
	walk(0, e.Root, nil)
	return paths, truncated
}
