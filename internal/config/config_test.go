package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
server:
  addr: ":9090"
world:
  width: 32
  seed: 42
simulation:
  tickRate: 30
logging:
  enabledSinks: [console, jsonl]
  jsonlCompress: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr not overridden: %q", cfg.Server.Addr)
	}
	if cfg.World.Width != 32 || cfg.World.Seed != 42 {
		t.Fatalf("world not overridden: %+v", cfg.World)
	}
	// Height was omitted so the default backfills.
	if cfg.World.Height != 64 {
		t.Fatalf("height should backfill to 64, got %d", cfg.World.Height)
	}
	if cfg.Simulation.TickRate != 30 || cfg.Simulation.CatchUpMaxSteps != 5 {
		t.Fatalf("simulation mismatch: %+v", cfg.Simulation)
	}
	if len(cfg.Logging.EnabledSinks) != 2 || !cfg.Logging.JSONLCompress {
		t.Fatalf("logging mismatch: %+v", cfg.Logging)
	}
	if cfg.Logging.JSONLPath != "logs/events.jsonl" {
		t.Fatalf("jsonl path should backfill, got %q", cfg.Logging.JSONLPath)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not: a: map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed yaml accepted")
	}
}
