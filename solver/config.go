package solver

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Trace is true when CRHS_TRACE=1 is set in the environment. Solve logs one
// line per step while it is set, exactly as measure.Enabled gates size
// instrumentation on MEASURE_SIZES=1.
var Trace bool

func init() {
	Trace = os.Getenv("CRHS_TRACE") == "1"
}

// Config bundles a solve's tunable knobs (spec.md §7: strategy choice and
// its node budget, plus the variable count the SOC was built over) so a
// caller can persist the exact setup that produced a given result and
// reload it later, the way System.Generate persists SystemParams to
// Parameters.json.
type Config struct {
	Variables int    `json:"variables"`
	Strategy  string `json:"strategy"` // "nodrop" or "drop"
	Budget    int    `json:"budget,omitempty"`
}

// Save writes cfg to path as indented JSON.
func (cfg Config) Save(path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Printf("solver: wrote config to %s", path)
	return nil
}

// LoadConfig reads a Config previously written by Save.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Build constructs the Strategy cfg names.
func (cfg Config) Build() (Strategy, error) {
	switch cfg.Strategy {
	case "", "nodrop":
		return NoDrop{}, nil
	case "drop":
		return DropLookahead{Budget: cfg.Budget}, nil
	default:
		return nil, fmt.Errorf("solver: unknown strategy %q", cfg.Strategy)
	}
}
