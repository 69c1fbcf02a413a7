package crhs

import (
	"errors"

	"github.com/Simula-UiB/crhs/gf2"
	"github.com/Simula-UiB/crhs/level"
)

// ErrNoSharedLevel is returned by Join when neither equation carries a
// level labelled sharedLabel.
var ErrNoSharedLevel = errors.New("crhs: no level carries the shared label")

// Join glues a and b along a level they both carry the same label on
// (spec.md §4.4). a is first bubbled, via adjacent Swaps, so its shared
// level is last; b is bubbled so its shared level is first (b's first
// level always has exactly one live node, its Root). Each node on a's
// (now last) shared level has its surviving edges (the ones that reached
// the sink) grafted onto b's root node's corresponding edges instead; a
// dangling edge on a's side stays dangling, since that branch was already
// excluded and grafting nothing new onto it changes nothing. The result
// contains a's levels above the shared one, the glued level once, and b's
// levels below its old root. Net level count drops by one, and no
// solutions are lost: an assignment satisfies the join iff it satisfies
// both a and b (spec.md §4.4).
func Join(a, b *Equation, sharedLabel gf2.Vector) (*Equation, error) {
	idxA := findLabel(a, sharedLabel)
	idxB := findLabel(b, sharedLabel)
	if idxA < 0 || idxB < 0 {
		return nil, ErrNoSharedLevel
	}

	a = a.Clone()
	b = b.Clone()
	a.bringToBack(idxA)
	b.bringToFront([]int{idxB})

	lastIdx := len(a.Levels) - 1
	lastLevel := a.Levels[lastIdx]
	bRootLevel := b.Levels[0]
	bRootNode := bRootLevel.Nodes[b.Root]

	glued := level.New(sharedLabel.Clone())
	mapping := make([]int, len(lastLevel.Nodes))
	for i := range mapping {
		mapping[i] = level.Dangling
	}
	for i, n := range lastLevel.Nodes {
		if !lastLevel.Live(i) {
			continue
		}
		var e0, e1 int
		if n.Edge0 == level.Sink {
			e0 = bRootNode.Edge0
		} else {
			e0 = level.Dangling
		}
		if n.Edge1 == level.Sink {
			e1 = bRootNode.Edge1
		} else {
			e1 = level.Dangling
		}
		mapping[i] = glued.InsertNode(e0, e1)
	}

	joined := &Equation{
		Levels: append(append(append([]*level.Level{}, a.Levels[:lastIdx]...), glued), b.Levels[1:]...),
		Root:   a.Root,
	}
	joined.redirectIntoByMap(lastIdx, mapping)
	joined.reduceUpward(lastIdx - 1)
	joined.prune()
	return joined, nil
}

// bringToBack moves level idx to the last position via adjacent swaps.
func (e *Equation) bringToBack(idx int) {
	for idx < len(e.Levels)-1 {
		e.Swap(idx)
		idx++
	}
}

func findLabel(e *Equation, label gf2.Vector) int {
	for i, l := range e.Levels {
		if gf2.Equal(l.Label, label) {
			return i
		}
	}
	return -1
}
