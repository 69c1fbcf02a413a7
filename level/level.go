// Package level implements one depth of a CRHS equation: a linear form (the
// level's label) and the set of decision nodes that test it.
package level

import "github.com/Simula-UiB/crhs/gf2"

// Dangling marks an edge that reaches no node on the next level. The
// partial path it belongs to has no completion and is therefore false.
const Dangling = -1

// Sink marks an edge on an equation's last level that reaches the single
// accepting terminal. It is only ever a valid edge target on the last level
// of an equation; every other level uses only Dangling and real node
// indices.
const Sink = -2

// Node is a decision node with two outgoing edges. Edge targets are either
// Dangling, Sink (last level only), or the index of a node on the next
// level.
type Node struct {
	Edge0, Edge1 int
}

// Level owns an unordered collection of nodes sharing one label. Node
// indices are stable across edits except where InsertNode/DropNode
// documents otherwise; dropped slots are recycled via a free-list so an
// equation's arenas do not grow without bound across many transforms.
type Level struct {
	Label gf2.Vector
	Nodes []Node

	free  []int
	index map[Node]int
}

// New returns an empty level over the given label. The label must not be
// the zero form: a zero-form level cannot distinguish a 0-edge from a
// 1-edge and has no reason to exist.
func New(label gf2.Vector) *Level {
	return &Level{Label: label, index: make(map[Node]int)}
}

// NodeCount reports the number of live nodes (dropped slots are not
// counted).
func (l *Level) NodeCount() int {
	return len(l.Nodes) - len(l.free)
}

// InsertNode inserts a node with the given outgoing edges, returning its
// index. If an existing live node already has this exact edge pair,
// maximal sharing means no new node is created and the existing index is
// returned instead.
func (l *Level) InsertNode(edge0, edge1 int) int {
	key := Node{edge0, edge1}
	if i, ok := l.index[key]; ok {
		return i
	}
	var idx int
	if n := len(l.free); n > 0 {
		idx = l.free[n-1]
		l.free = l.free[:n-1]
		l.Nodes[idx] = key
	} else {
		idx = len(l.Nodes)
		l.Nodes = append(l.Nodes, key)
	}
	l.index[key] = idx
	return idx
}

// Live reports whether node i is a live (non-dropped) node.
func (l *Level) Live(i int) bool {
	if i < 0 || i >= len(l.Nodes) {
		return false
	}
	for _, f := range l.free {
		if f == i {
			return false
		}
	}
	return true
}

// DropNode removes node i from the level. Callers must first have
// redirected or dangling-ed every edge on the previous level that pointed
// at i (see redirect below); DropNode itself only frees the slot and its
// sharing-map entry so it can be reused by a future InsertNode.
func (l *Level) DropNode(i int) {
	key := l.Nodes[i]
	if cur, ok := l.index[key]; ok && cur == i {
		delete(l.index, key)
	}
	l.free = append(l.free, i)
}

// Rebuild resets the maximal-sharing index from the current live nodes.
// Clone uses it after copying the node array directly rather than through
// InsertNode.
func (l *Level) Rebuild() {
	l.index = make(map[Node]int, len(l.Nodes))
	for i, n := range l.Nodes {
		if l.Live(i) {
			l.index[n] = i
		}
	}
}

// Redirect rewrites every edge in nodes (typically the previous level's
// node array, or an equation's source edges) that points at old so that it
// points at newIdx instead. Precondition: after this call old must have no
// remaining in-edges in nodes; the caller is then responsible for dropping
// it from its owning level.
func Redirect(nodes []Node, old, newIdx int) {
	for i := range nodes {
		if nodes[i].Edge0 == old {
			nodes[i].Edge0 = newIdx
		}
		if nodes[i].Edge1 == old {
			nodes[i].Edge1 = newIdx
		}
	}
}

// Clone returns a deep, independent copy of the level.
func (l *Level) Clone() *Level {
	out := &Level{
		Label: l.Label.Clone(),
		Nodes: append([]Node(nil), l.Nodes...),
		free:  append([]int(nil), l.free...),
	}
	out.Rebuild()
	return out
}
