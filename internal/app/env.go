package app

import (
	"log"
	"os"
	"strconv"
	"strings"

	"agentstead/server/internal/config"
)

// Environment variables layered over the YAML config at startup. Invalid
// values are logged and ignored rather than aborting the boot.
const (
	envListenAddr      = "LISTEN_ADDR"
	envTickRate        = "TICK_RATE"
	envCatchUpMaxSteps = "CATCHUP_MAX_STEPS"
	envWorldWidth      = "WORLD_WIDTH"
	envWorldHeight     = "WORLD_HEIGHT"
	envWorldSeed       = "WORLD_SEED"
	envLogSinks        = "LOG_SINKS"
)

func applyEnvOverrides(cfg config.Config, logger *log.Logger) config.Config {
	if raw := os.Getenv(envListenAddr); raw != "" {
		cfg.Server.Addr = raw
	}
	if raw := os.Getenv(envTickRate); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Simulation.TickRate = value
		} else {
			logger.Printf("invalid %s=%q: %v", envTickRate, raw, err)
		}
	}
	if raw := os.Getenv(envCatchUpMaxSteps); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Simulation.CatchUpMaxSteps = value
		} else {
			logger.Printf("invalid %s=%q: %v", envCatchUpMaxSteps, raw, err)
		}
	}
	if raw := os.Getenv(envWorldWidth); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.World.Width = value
		} else {
			logger.Printf("invalid %s=%q: %v", envWorldWidth, raw, err)
		}
	}
	if raw := os.Getenv(envWorldHeight); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.World.Height = value
		} else {
			logger.Printf("invalid %s=%q: %v", envWorldHeight, raw, err)
		}
	}
	if raw := os.Getenv(envWorldSeed); raw != "" {
		if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.World.Seed = value
		} else {
			logger.Printf("invalid %s=%q: %v", envWorldSeed, raw, err)
		}
	}
	if raw := os.Getenv(envLogSinks); raw != "" {
		var sinks []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				sinks = append(sinks, name)
			}
		}
		if len(sinks) > 0 {
			cfg.Logging.EnabledSinks = sinks
		}
	}
	return cfg
}
