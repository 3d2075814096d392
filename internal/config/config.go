// Package config loads the server's YAML configuration. Every knob has a
// default; a missing file yields a fully usable config, and a present file
// only overrides what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     Server     `yaml:"server"`
	World      World      `yaml:"world"`
	Simulation Simulation `yaml:"simulation"`
	Logging    Logging    `yaml:"logging"`
	Schema     Schema     `yaml:"schema"`
}

type Server struct {
	Addr                string `yaml:"addr"`
	FrameIntervalMS     int    `yaml:"frameIntervalMs"`
	BroadcastIntervalMS int    `yaml:"broadcastIntervalMs"`
	SendBuffer          int    `yaml:"sendBuffer"`
}

type World struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
}

type Simulation struct {
	TickRate        int `yaml:"tickRate"`
	CatchUpMaxSteps int `yaml:"catchUpMaxSteps"`
}

type Logging struct {
	EnabledSinks    []string `yaml:"enabledSinks"`
	BufferSize      int      `yaml:"bufferSize"`
	MinimumSeverity string   `yaml:"minimumSeverity"`
	JSONLPath       string   `yaml:"jsonlPath"`
	JSONLCompress   bool     `yaml:"jsonlCompress"`
}

type Schema struct {
	CommandPath string `yaml:"commandPath"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:                ":8080",
			FrameIntervalMS:     16,
			BroadcastIntervalMS: 100,
			SendBuffer:          32,
		},
		World: World{
			Width:  64,
			Height: 64,
			Seed:   1,
		},
		Simulation: Simulation{
			TickRate:        60,
			CatchUpMaxSteps: 5,
		},
		Logging: Logging{
			EnabledSinks:    []string{"console"},
			BufferSize:      512,
			MinimumSeverity: "info",
			JSONLPath:       "logs/events.jsonl",
		},
		Schema: Schema{
			CommandPath: "schemas/command.schema.json",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

func (c Config) normalized() Config {
	defaults := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.FrameIntervalMS <= 0 {
		c.Server.FrameIntervalMS = defaults.Server.FrameIntervalMS
	}
	if c.Server.BroadcastIntervalMS <= 0 {
		c.Server.BroadcastIntervalMS = defaults.Server.BroadcastIntervalMS
	}
	if c.Server.SendBuffer <= 0 {
		c.Server.SendBuffer = defaults.Server.SendBuffer
	}
	if c.World.Width <= 0 {
		c.World.Width = defaults.World.Width
	}
	if c.World.Height <= 0 {
		c.World.Height = defaults.World.Height
	}
	if c.Simulation.TickRate <= 0 {
		c.Simulation.TickRate = defaults.Simulation.TickRate
	}
	if c.Simulation.CatchUpMaxSteps <= 0 {
		c.Simulation.CatchUpMaxSteps = defaults.Simulation.CatchUpMaxSteps
	}
	if len(c.Logging.EnabledSinks) == 0 {
		c.Logging.EnabledSinks = defaults.Logging.EnabledSinks
	}
	if c.Logging.BufferSize <= 0 {
		c.Logging.BufferSize = defaults.Logging.BufferSize
	}
	if c.Logging.MinimumSeverity == "" {
		c.Logging.MinimumSeverity = defaults.Logging.MinimumSeverity
	}
	if c.Logging.JSONLPath == "" {
		c.Logging.JSONLPath = defaults.Logging.JSONLPath
	}
	if c.Schema.CommandPath == "" {
		c.Schema.CommandPath = defaults.Schema.CommandPath
	}
	return c
}
