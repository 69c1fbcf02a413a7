//go:build analysis
// +build analysis

// This file mirrors the teacher's cmd/distribution_analysis.go: a
// build-tag-gated second entry point that runs the same computation
// repeatedly and renders the resulting distribution to a PNG via
// gonum.org/v1/plot. The teacher plots signature coefficient distributions;
// here there is no coefficient to sample, so it plots the shape spec.md §5
// names as the one resource a solve is constrained by: per-level node
// width and total SOC node count as the solve progresses.
package main

import (
	"fmt"
	"log"

	"github.com/Simula-UiB/crhs/ciphers"
	"github.com/Simula-UiB/crhs/producer"
	"github.com/Simula-UiB/crhs/soc"
	"github.com/Simula-UiB/crhs/solver"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// recordingStrategy wraps a real Strategy and, right before every step it
// hands back, snapshots the live node population of s: once per level (for
// the width histogram) and once as a running total (for the step-vs-size
// line plot).
type recordingStrategy struct {
	inner       solver.Strategy
	levelWidths []float64
	totals      []float64
}

func (r *recordingStrategy) Next(s *soc.SOC, fixed map[int]bool) (solver.Action, bool) {
	act, ok := r.inner.Next(s, fixed)
	if !ok {
		return act, ok
	}
	var total float64
	for _, h := range s.Handles() {
		eq := s.Get(h)
		if eq == nil {
			continue
		}
		for _, l := range eq.Levels {
			w := float64(l.NodeCount())
			r.levelWidths = append(r.levelWidths, w)
			total += w
		}
	}
	r.totals = append(r.totals, total)
	return act, ok
}

func plotHistogram(values []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Per-level node width during solve"
	p.X.Label.Text = "live nodes on a level"
	p.Y.Label.Text = "count"
	h, err := plotter.NewHist(plotter.Values(values), 30)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func plotGrowth(totals []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Total SOC node count by solver step"
	p.X.Label.Text = "step"
	p.Y.Label.Text = "live nodes"
	pts := make(plotter.XYs, len(totals))
	for i, v := range totals {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	if err := plotutil.AddLines(p, "nodes", pts); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func main() {
	const rounds = 3
	c := ciphers.NewPresent80(rounds)

	s := soc.New(c.VariableCount())
	for _, rel := range c.RoundRelations() {
		eq, err := producer.Lift(c.VariableCount(), rel)
		if err != nil {
			log.Fatalf("lift: %v", err)
		}
		s.Insert(eq)
	}

	fixed := map[int]bool{}
	for i, v := range c.KeyVars {
		fixed[v] = i%2 == 0
	}

	rec := &recordingStrategy{inner: solver.NoDrop{}}
	res, err := solver.Solve(s, rec, fixed, nil)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}
	fmt.Printf("solved status=%v steps=%d\n", res.Status, res.Steps)

	if err := plotHistogram(rec.levelWidths, "level_widths.png"); err != nil {
		log.Fatalf("plotHistogram: %v", err)
	}
	if err := plotGrowth(rec.totals, "node_growth.png"); err != nil {
		log.Fatalf("plotGrowth: %v", err)
	}
	fmt.Println("wrote level_widths.png and node_growth.png")
}
