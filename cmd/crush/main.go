//go:build !analysis

// Command crush wires the producer, soc and solver packages together into
// the CLI surface spec.md §6 describes (cipher/sponge/from-file) as a
// thin, hand-rolled main in the teacher's cmd/cmd.go style: a sequential,
// narrated stage-by-stage run with no flag-parsing framework. It is
// explicitly non-core (SPEC_FULL.md §1, §6).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Simula-UiB/crhs/bddfile"
	"github.com/Simula-UiB/crhs/ciphers"
	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/prof"
	"github.com/Simula-UiB/crhs/producer"
	"github.com/Simula-UiB/crhs/soc"
	"github.com/Simula-UiB/crhs/solver"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: crush <cipher|sponge|from-file> [flags]")
	}
	sub := os.Args[1]
	args := os.Args[2:]

	switch sub {
	case "cipher":
		runCipher(args)
	case "sponge":
		runSponge(args)
	case "from-file":
		runFromFile(args)
	default:
		log.Fatalf("unknown subcommand %q: want cipher, sponge or from-file", sub)
	}
}

// configFlags adds the -s/-budget/-config/-save-config quartet shared by
// every subcommand that eventually calls resolveConfig.
type configFlags struct {
	strategy   *string
	budget     *int
	configPath *string
	saveConfig *string
}

func addConfigFlags(fs *flag.FlagSet, defaultStrategy string) configFlags {
	return configFlags{
		strategy:   fs.String("s", defaultStrategy, "solver strategy: nodrop or drop"),
		budget:     fs.Int("budget", 1<<20, "node budget for the drop strategy"),
		configPath: fs.String("config", "", "load a solver.Config from this JSON file, overriding -s/-budget"),
		saveConfig: fs.String("save-config", "", "persist the resolved solver.Config to this JSON file before solving"),
	}
}

// resolveConfig builds the Config a run will solve under, either from -s/
// -budget or, if -config names a file, from that file (System.Generate's
// Parameters.json pattern, retargeted at solver tuning knobs), and persists
// it to -save-config if given.
func resolveConfig(cf configFlags, variables int) solver.Config {
	cfg := solver.Config{Variables: variables, Strategy: *cf.strategy, Budget: *cf.budget}
	if *cf.configPath != "" {
		loaded, err := solver.LoadConfig(*cf.configPath)
		if err != nil {
			log.Fatalf("load config %s: %v", *cf.configPath, err)
		}
		cfg = loaded
		cfg.Variables = variables
	}
	if *cf.saveConfig != "" {
		if err := cfg.Save(*cf.saveConfig); err != nil {
			log.Fatalf("save config %s: %v", *cf.saveConfig, err)
		}
	}
	return cfg
}

func runCipher(args []string) {
	fs := flag.NewFlagSet("cipher", flag.ExitOnError)
	name := fs.String("name", "present80", "present80 or skinny64128")
	rounds := fs.Int("rounds", 2, "number of rounds to build")
	cf := addConfigFlags(fs, "nodrop")
	out := fs.String("o", "", "write the remaining SOC to this .bdd file")
	knownKey := fs.Bool("known-key", true, "fix every key bit before solving (S3); false leaves the key unknown (S4)")
	fs.Parse(args)

	var p producer.Producer
	var keyVars []int
	switch *name {
	case "present80":
		c := ciphers.NewPresent80(*rounds)
		p, keyVars = c, c.KeyVars
	case "skinny64128":
		c := ciphers.NewSkinny64128(*rounds)
		p, keyVars = c, append(append([]int(nil), c.TK1Vars...), c.TK2Vars...)
	default:
		log.Fatalf("unknown cipher %q", *name)
	}

	fixings := producer.Fixings{}
	if *knownKey {
		for i, v := range keyVars {
			fixings[v] = bitOf(i % 2)
		}
	}

	fmt.Printf("🔧 built %s over %d rounds, %d variables, %d relations\n", *name, *rounds, p.VariableCount(), len(p.RoundRelations()))
	runSolve(p, fixings, cf, *out)
}

func runSponge(args []string) {
	fs := flag.NewFlagSet("sponge", flag.ExitOnError)
	cf := addConfigFlags(fs, "drop")
	out := fs.String("o", "", "write the remaining SOC to this .bdd file")
	fs.Parse(args)

	p := ciphers.NewKeccakSponge()
	fmt.Printf("🔧 built keccak sponge round, %d variables, %d relations\n", p.VariableCount(), len(p.RoundRelations()))
	runSolve(p, producer.Fixings{}, cf, *out)
}

func runFromFile(args []string) {
	fs := flag.NewFlagSet("from-file", flag.ExitOnError)
	path := fs.String("i", "", "path to a .bdd file to load")
	cf := addConfigFlags(fs, "nodrop")
	out := fs.String("o", "", "write the remaining SOC to this .bdd file")
	fs.Parse(args)

	if *path == "" {
		log.Fatal("from-file requires -i <path>")
	}
	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	vars, eqs, err := bddfile.Read(f)
	if err != nil {
		log.Fatalf("parse %s: %v", *path, err)
	}
	fmt.Printf("📥 loaded %d equations over %d variables from %s\n", len(eqs), vars, *path)

	s := soc.New(vars)
	for _, eq := range eqs {
		s.Insert(eq)
	}
	cfg := resolveConfig(cf, vars)
	strategy, err := cfg.Build()
	if err != nil {
		log.Fatalf("build strategy: %v", err)
	}
	solveAndReport(s, strategy, nil, *out)
}

func runSolve(p producer.Producer, fixings producer.Fixings, cf configFlags, out string) {
	s := soc.New(p.VariableCount())
	for _, rel := range p.RoundRelations() {
		eq, err := producer.Lift(p.VariableCount(), rel)
		if err != nil {
			log.Fatalf("lift relation: %v", err)
		}
		s.Insert(eq)
	}
	cfg := resolveConfig(cf, p.VariableCount())
	strategy, err := cfg.Build()
	if err != nil {
		log.Fatalf("build strategy: %v", err)
	}
	solveAndReport(s, strategy, fixings.Known(), out)
}

func solveAndReport(s *soc.SOC, strategy solver.Strategy, fixed map[int]bool, out string) {
	fmt.Println("🧮 solving...")
	start := time.Now()
	res, err := solver.Solve(s, strategy, fixed, nil)
	prof.Track(start, "solve")
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	switch res.Status {
	case solver.Unsat:
		fmt.Println("❌ unsatisfiable")
	case solver.Unknown:
		fmt.Printf("⚠️  did not converge after %d steps (truncated=%v)\n", res.Steps, res.Truncated)
	case solver.Solved:
		fmt.Printf("✅ solved in %d steps, %d assignment(s)\n", res.Steps, len(res.Assignments))
	}

	if out != "" {
		writeRemaining(s, out)
	}
}

func writeRemaining(s *soc.SOC, path string) {
	var eqs []*crhs.Equation
	for _, h := range s.Handles() {
		eqs = append(eqs, s.Get(h))
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := bddfile.Write(f, s.Vars, eqs); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	fmt.Printf("💾 wrote %d equations to %s\n", len(eqs), path)
}

func bitOf(i int) producer.Bit {
	if i == 0 {
		return producer.Zero
	}
	return producer.One
}
