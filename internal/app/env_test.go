package app

import (
	"io"
	"log"
	"reflect"
	"testing"

	"agentstead/server/internal/config"
)

func TestEnvOverridesLayerOverConfig(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9191")
	t.Setenv("TICK_RATE", "30")
	t.Setenv("CATCHUP_MAX_STEPS", "8")
	t.Setenv("WORLD_WIDTH", "20")
	t.Setenv("WORLD_HEIGHT", "24")
	t.Setenv("WORLD_SEED", "-7")
	t.Setenv("LOG_SINKS", "console, jsonl")

	cfg := applyEnvOverrides(config.Default(), log.New(io.Discard, "", 0))
	if cfg.Server.Addr != ":9191" {
		t.Fatalf("addr not overridden: %q", cfg.Server.Addr)
	}
	if cfg.Simulation.TickRate != 30 || cfg.Simulation.CatchUpMaxSteps != 8 {
		t.Fatalf("simulation not overridden: %+v", cfg.Simulation)
	}
	if cfg.World.Width != 20 || cfg.World.Height != 24 || cfg.World.Seed != -7 {
		t.Fatalf("world not overridden: %+v", cfg.World)
	}
	if !reflect.DeepEqual(cfg.Logging.EnabledSinks, []string{"console", "jsonl"}) {
		t.Fatalf("sinks not overridden: %v", cfg.Logging.EnabledSinks)
	}
}

func TestEnvOverridesIgnoreInvalidValues(t *testing.T) {
	t.Setenv("TICK_RATE", "fast")
	t.Setenv("WORLD_WIDTH", "-3")
	t.Setenv("WORLD_SEED", "not-a-number")

	cfg := applyEnvOverrides(config.Default(), log.New(io.Discard, "", 0))
	if !reflect.DeepEqual(cfg, config.Default()) {
		t.Fatalf("invalid values should leave the config untouched, got %+v", cfg)
	}
}
