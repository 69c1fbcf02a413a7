package measure

import (
	"testing"

	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/gf2"
	"github.com/Simula-UiB/crhs/level"
)

func TestNodeCount(t *testing.T) {
	l0 := level.New(gf2.FromVars(2, 0))
	n0 := l0.InsertNode(level.Sink, level.Dangling)

	eq, err := crhs.NewEquation([]*level.Level{l0}, n0)
	if err != nil {
		t.Fatalf("NewEquation: %v", err)
	}
	if got := NodeCount(eq); got != 1 {
		t.Fatalf("NodeCount = %d, want 1", got)
	}
}

func TestHuman(t *testing.T) {
	cases := map[int64]string{
		500:             "500 B",
		2048:            "2.0 KiB",
		5 * 1024 * 1024: "5.0 MiB",
	}
	for n, want := range cases {
		if got := Human(n); got != want {
			t.Fatalf("Human(%d) = %q, want %q", n, got, want)
		}
	}
}
