package level

import (
	"testing"

	"github.com/Simula-UiB/crhs/gf2"
)

func TestInsertNodeSharesIdenticalEdges(t *testing.T) {
	l := New(gf2.FromVars(4, 0))
	a := l.InsertNode(Sink, Dangling)
	b := l.InsertNode(Sink, Dangling)
	if a != b {
		t.Fatalf("two nodes with identical edges must share an index, got %d and %d", a, b)
	}
	if l.NodeCount() != 1 {
		t.Fatalf("expected exactly one live node, got %d", l.NodeCount())
	}
}

func TestDropAndReuseSlot(t *testing.T) {
	l := New(gf2.FromVars(4, 0))
	a := l.InsertNode(Sink, Dangling)
	_ = l.InsertNode(Dangling, Sink)
	l.DropNode(a)
	if l.Live(a) {
		t.Fatalf("node %d should not be live after DropNode", a)
	}
	reused := l.InsertNode(1, 2)
	if reused != a {
		t.Fatalf("expected dropped slot %d to be reused, got %d", a, reused)
	}
}

func TestRedirect(t *testing.T) {
	prev := []Node{{Edge0: 3, Edge1: 7}, {Edge0: 7, Edge1: 7}}
	Redirect(prev, 7, 9)
	want := []Node{{Edge0: 3, Edge1: 9}, {Edge0: 9, Edge1: 9}}
	for i := range want {
		if prev[i] != want[i] {
			t.Fatalf("Redirect: got %v, want %v", prev, want)
		}
	}
}
