// Package measure implements the opt-in size instrumentation spec.md §5
// calls for: node count is the single resource a solve is constrained by,
// so this package tracks it the same way the teacher this project imitates
// tracks its own size-sensitive values, with a process-global counter gated
// by an environment variable so a normal run pays nothing for it.
package measure

import (
	"fmt"
	"os"
	"sync"

	"github.com/Simula-UiB/crhs/crhs"
)

var Enabled bool
var Global Counter

func init() {
	Enabled = os.Getenv("MEASURE_SIZES") == "1"
	Global = Counter{M: make(map[string]int64)}
}

// BytesPerNode estimates one decision node's storage in its level's node
// slice: two edge targets, each a Go int arena index (8 bytes on a 64-bit
// platform). The level's maximal-sharing index entry is not counted.
const BytesPerNode = 16

// NodeCount sums the live node population of eq across every level.
func NodeCount(eq *crhs.Equation) int64 {
	var total int64
	for _, l := range eq.Levels {
		total += int64(l.NodeCount())
	}
	return total
}

// Human renders a byte count the way an operator skimming [measure] log
// lines wants to read it.
func Human(n int64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
	)
	switch {
	case n >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Counter accumulates named size samples across a solve, a no-op when
// Enabled is false.
type Counter struct {
	mu sync.Mutex
	M  map[string]int64
}

func (c *Counter) Add(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	c.M[key] += n
	c.mu.Unlock()
}

// Peak records n against key only if it exceeds the value already stored
// there: the running high-water mark a node-budget strategy cares about,
// rather than a running total.
func (c *Counter) Peak(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	if n > c.M[key] {
		c.M[key] = n
	}
	c.mu.Unlock()
}

func (c *Counter) Dump() {
	if !Enabled {
		return
	}
	fmt.Println("[measure] Size report:")
	for k, v := range c.M {
		fmt.Printf("[measure] %s = %s\n", k, Human(v))
	}
}

func Section(name string, f func()) {
	if !Enabled {
		f()
		return
	}
	fmt.Printf("[measure] Begin %s\n", name)
	f()
	fmt.Printf("[measure] End %s\n", name)
}
