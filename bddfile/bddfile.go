// Package bddfile reads and writes the `.bdd` textual format of spec.md
// §6. It is explicitly not part of THE CORE (SPEC_FULL.md §1): nothing in
// crhs/soc/solver imports it. It serves seed test S6 (round-trip a SOC's
// equations through the grammar and get back an equivalent graph) and
// cmd/crush's from-file subcommand and -o output.
package bddfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/gf2"
	"github.com/Simula-UiB/crhs/level"
)

// ErrMalformedFile is returned when the input does not match the grammar of
// spec.md §6: wrong field counts, a non-singleton or non-dangling terminal
// level, a node record naming an id the next level never assigned, or an
// edge target out of range.
var ErrMalformedFile = errors.New("bddfile: malformed .bdd input")

var nodeRecordPattern = regexp.MustCompile(`\((\d+);(\d+),(\d+)\)`)

// Write serializes vars (the shared variable count) and eqs to w, one block
// per equation, in the exact grammar of spec.md §6:
//
//	<V>
//	<N>
//	<eq_id> <level_count>
//	<LHS>:<RHS>|<LHS>:<RHS>|...|
//	---
//
// Every equation gets one extra, synthetic terminal level appended: empty
// LHS, one node with both edges 0, representing the sink, exactly as the
// grammar requires.
func Write(w io.Writer, vars int, eqs []*crhs.Equation) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", vars); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d\n", len(eqs)); err != nil {
		return err
	}
	for id, eq := range eqs {
		if err := writeEquation(bw, id, eq); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeEquation(bw *bufio.Writer, id int, eq *crhs.Equation) error {
	depth := eq.Depth()
	if _, err := fmt.Fprintf(bw, "%d %d\n", id, depth+1); err != nil {
		return err
	}

	// ids[idx] maps this level's internal live node index to its 1-based
	// file id. Built back-to-front since a level's RHS names file ids of
	// the *next* level.
	ids := make([]map[int]int, depth)
	for idx := depth - 1; idx >= 0; idx-- {
		l := eq.Levels[idx]
		m := make(map[int]int)
		nid := 1
		for i := range l.Nodes {
			if !l.Live(i) {
				continue
			}
			m[i] = nid
			nid++
		}
		ids[idx] = m
	}

	resolveTarget := func(idx, target int) int {
		switch target {
		case level.Dangling:
			return 0
		case level.Sink:
			return 1 // the sole node of the synthetic terminal level
		default:
			return ids[idx+1][target]
		}
	}

	var line strings.Builder
	for idx := 0; idx < depth; idx++ {
		l := eq.Levels[idx]
		var rhs strings.Builder
		for i, n := range l.Nodes {
			nid, ok := ids[idx][i]
			if !ok {
				continue
			}
			fmt.Fprintf(&rhs, "(%d;%d,%d)", nid, resolveTarget(idx, n.Edge0), resolveTarget(idx, n.Edge1))
		}
		fmt.Fprintf(&line, "%s:%s|", l.Label.String(), rhs.String())
	}
	// terminal level: empty LHS, one node, both edges dangling (0).
	fmt.Fprintf(&line, ":(1;0,0)|")

	if _, err := bw.WriteString(line.String()); err != nil {
		return err
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	_, err := bw.WriteString("---\n")
	return err
}

// Read parses the `.bdd` grammar of spec.md §6 from r, returning the shared
// variable count and the equations in file order.
func Read(r io.Reader) (vars int, eqs []*crhs.Equation, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	readLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	vLine, ok := readLine()
	if !ok {
		return 0, nil, ErrMalformedFile
	}
	vars, err = strconv.Atoi(strings.TrimSpace(vLine))
	if err != nil {
		return 0, nil, ErrMalformedFile
	}

	nLine, ok := readLine()
	if !ok {
		return 0, nil, ErrMalformedFile
	}
	n, err := strconv.Atoi(strings.TrimSpace(nLine))
	if err != nil {
		return 0, nil, ErrMalformedFile
	}

	for i := 0; i < n; i++ {
		header, ok := readLine()
		if !ok {
			return 0, nil, ErrMalformedFile
		}
		fields := strings.Fields(header)
		if len(fields) != 2 {
			return 0, nil, ErrMalformedFile
		}
		levelCount, err := strconv.Atoi(fields[1])
		if err != nil || levelCount < 1 {
			return 0, nil, ErrMalformedFile
		}

		body, ok := readLine()
		if !ok {
			return 0, nil, ErrMalformedFile
		}
		eq, err := parseEquation(body, levelCount, vars)
		if err != nil {
			return 0, nil, err
		}
		eqs = append(eqs, eq)

		term, ok := readLine()
		if !ok || strings.TrimSpace(term) != "---" {
			return 0, nil, ErrMalformedFile
		}
	}
	return vars, eqs, nil
}

type nodeRecord struct {
	nid, e0, e1 int
}

type parsedLevel struct {
	label   gf2.Vector
	records []nodeRecord
}

func parseEquation(line string, levelCount, vars int) (*crhs.Equation, error) {
	segments := strings.Split(line, "|")
	// A well-formed line ends in "|", leaving one trailing empty segment.
	if len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	if len(segments) != levelCount {
		return nil, ErrMalformedFile
	}

	levels := make([]parsedLevel, levelCount)
	for i, seg := range segments {
		pl, err := parseLevelSegment(seg, vars)
		if err != nil {
			return nil, err
		}
		levels[i] = pl
	}

	termIdx := levelCount - 1
	term := levels[termIdx]
	if !term.label.IsZero() || len(term.records) > 1 {
		return nil, ErrMalformedFile
	}
	if len(term.records) == 1 {
		rec := term.records[0]
		if rec.e0 != 0 || rec.e1 != 0 {
			return nil, ErrMalformedFile
		}
	}

	nLevels := termIdx
	if nLevels == 0 {
		return nil, crhs.ErrEmptyEquation
	}
	if len(levels[0].records) > 1 {
		return nil, ErrMalformedFile
	}

	fileToInternal := make([]map[int]int, nLevels)
	built := make([]*level.Level, nLevels)

	for idx := nLevels - 1; idx >= 0; idx-- {
		pl := levels[idx]
		lvl := level.New(pl.label)
		mapping := make(map[int]int, len(pl.records))

		resolve := func(fileTarget int) (int, error) {
			if fileTarget == 0 {
				return level.Dangling, nil
			}
			if idx == nLevels-1 {
				if fileTarget == 1 {
					return level.Sink, nil
				}
				return 0, ErrMalformedFile
			}
			internal, ok := fileToInternal[idx+1][fileTarget]
			if !ok {
				return 0, ErrMalformedFile
			}
			return internal, nil
		}

		for _, rec := range pl.records {
			e0, err := resolve(rec.e0)
			if err != nil {
				return nil, err
			}
			e1, err := resolve(rec.e1)
			if err != nil {
				return nil, err
			}
			mapping[rec.nid] = lvl.InsertNode(e0, e1)
		}

		built[idx] = lvl
		fileToInternal[idx] = mapping
	}

	root := level.Dangling
	if len(levels[0].records) == 1 {
		root = fileToInternal[0][levels[0].records[0].nid]
	}

	return crhs.NewEquation(built, root)
}

func parseLevelSegment(seg string, vars int) (parsedLevel, error) {
	parts := strings.SplitN(seg, ":", 2)
	if len(parts) != 2 {
		return parsedLevel{}, ErrMalformedFile
	}
	label, err := parseLHS(parts[0], vars)
	if err != nil {
		return parsedLevel{}, err
	}
	records, err := parseRHS(parts[1])
	if err != nil {
		return parsedLevel{}, err
	}
	return parsedLevel{label: label, records: records}, nil
}

func parseLHS(s string, vars int) (gf2.Vector, error) {
	v := gf2.NewVector(vars)
	if s == "" {
		return v, nil
	}
	for _, tok := range strings.Split(s, "+") {
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 0 || idx >= vars {
			return gf2.Vector{}, ErrMalformedFile
		}
		v.Set(idx)
	}
	return v, nil
}

func parseRHS(s string) ([]nodeRecord, error) {
	if s == "" {
		return nil, nil
	}
	matches := nodeRecordPattern.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return nil, ErrMalformedFile
	}
	out := make([]nodeRecord, len(matches))
	for i, m := range matches {
		nid, err1 := strconv.Atoi(m[1])
		e0, err2 := strconv.Atoi(m[2])
		e1, err3 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, ErrMalformedFile
		}
		out[i] = nodeRecord{nid: nid, e0: e0, e1: e1}
	}
	return out, nil
}
