package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/ruraldispatch/core/agent"
	"github.com/kilianp07/ruraldispatch/core/sim"
	"github.com/kilianp07/ruraldispatch/core/trainer"
	"github.com/kilianp07/ruraldispatch/core/worldgen"
)

// Config aggregates the per-concern sections of the application.
type Config struct {
	Sim   sim.Config      `json:"sim"`
	World worldgen.Config `json:"world"`
	Agent agent.Config    `json:"agent"`
	Train trainer.Config  `json:"train"`
	// Seed makes runs reproducible. Zero selects a time-based seed.
	Seed int64 `json:"seed"`
}

// RandSeed resolves the effective seed of the run.
func (c Config) RandSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Load reads the configuration file at path, applies RD_ environment
// overrides, defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("RD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rd_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Sim.SetDefaults()
	cfg.World.SetDefaults()
	cfg.Agent.SetDefaults()
	cfg.Train.SetDefaults()
	if err := cfg.Sim.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.World.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Agent.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Train.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
