package solver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	cfg := Config{Variables: 42, Strategy: "drop", Budget: 4096}
	path := filepath.Join(t.TempDir(), "config.json")

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != cfg {
		t.Fatalf("LoadConfig = %+v, want %+v", got, cfg)
	}
}

func TestConfigBuild(t *testing.T) {
	cases := []struct {
		cfg     Config
		want    Strategy
		wantErr bool
	}{
		{Config{Strategy: "nodrop"}, NoDrop{}, false},
		{Config{Strategy: ""}, NoDrop{}, false},
		{Config{Strategy: "drop", Budget: 100}, DropLookahead{Budget: 100}, false},
		{Config{Strategy: "bogus"}, nil, true},
	}
	for _, c := range cases {
		got, err := c.cfg.Build()
		if c.wantErr {
			if err == nil {
				t.Fatalf("Build(%+v): want error, got nil", c.cfg)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Build(%+v): %v", c.cfg, err)
		}
		if got != c.want {
			t.Fatalf("Build(%+v) = %#v, want %#v", c.cfg, got, c.want)
		}
	}
}

func TestTraceGatedByEnvironment(t *testing.T) {
	old := Trace
	defer func() { Trace = old }()

	os.Setenv("CRHS_TRACE", "1")
	Trace = os.Getenv("CRHS_TRACE") == "1"
	if !Trace {
		t.Fatalf("Trace = false, want true with CRHS_TRACE=1")
	}
	os.Unsetenv("CRHS_TRACE")
}
