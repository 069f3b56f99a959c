// Package config provides configuration loading and access for the simulation.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/traits"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed schema.json
var schemaJSON []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Traits     traits.Ranges    `yaml:"traits"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Observer   ObserverConfig   `yaml:"observer"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds grid dimensions and food dynamics.
type WorldConfig struct {
	Width        int     `yaml:"width"`     // Cells across
	Height       int     `yaml:"height"`    // Cells down
	CellSize     int     `yaml:"cell_size"` // Pixels per cell edge
	FoodUnit     int     `yaml:"food_unit"`
	SeedMin      int     `yaml:"seed_min"`
	SeedMax      int     `yaml:"seed_max"`
	FoodCap      int     `yaml:"food_cap"`
	RegrowChance float64 `yaml:"regrow_chance"`
}

// PopulationConfig holds initial population settings.
type PopulationConfig struct {
	Agents int `yaml:"agents"`
}

// BehaviorConfig holds target scoring and vitality parameters.
type BehaviorConfig struct {
	Scoring         string  `yaml:"scoring"`
	SwitchThreshold int     `yaml:"switch_threshold"`
	FoodPortion     int     `yaml:"food_portion"`
	VitalityPerFood float64 `yaml:"vitality_per_food"`
	ArriveDistance  float64 `yaml:"arrive_distance"`
	RestCost        float64 `yaml:"rest_cost"`
	ActiveCost      float64 `yaml:"active_cost"`
	MaxVitality     float64 `yaml:"max_vitality"`
	FreezeBelow     float64 `yaml:"freeze_below"`
}

// SimulationConfig holds tick driver settings.
type SimulationConfig struct {
	TickInterval   Duration `yaml:"tick_interval"` // Integer values are milliseconds
	Parallel       bool     `yaml:"parallel"`
	Workers        int      `yaml:"workers"`
	StepsPerUpdate int      `yaml:"steps_per_update"`
}

// TelemetryConfig holds stats and trace settings.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // Ticks per perf sample
	TraceEvery  int `yaml:"trace_every"`
}

// ObserverConfig holds the websocket observer settings.
type ObserverConfig struct {
	Addr       string `yaml:"addr"`
	SendBuffer int    `yaml:"send_buffer"`
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	WorldPixelsW int
	WorldPixelsH int
	Workers      int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := apply(cfg, data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Parse is Load for an in-memory overlay.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := apply(cfg, data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// apply checks an overlay against the schema, then unmarshals it into cfg.
// Only fields present in the overlay are overwritten.
func apply(cfg *Config, data []byte) error {
	if err := validateOverlay(data); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

var overlaySchema = jsonschema.MustCompileString("schema.json", string(schemaJSON))

// validateOverlay round-trips the YAML document through JSON so the schema
// sees the same numbers and strings a JSON document would carry.
func validateOverlay(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting config to json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("converting config to json: %w", err)
	}
	if err := overlaySchema.Validate(v); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints the schema cannot express.
func (c *Config) Validate() error {
	if c.World.SeedMin > c.World.SeedMax {
		return fmt.Errorf("world: seed_min %d > seed_max %d", c.World.SeedMin, c.World.SeedMax)
	}
	switch systems.Scoring(c.Behavior.Scoring) {
	case systems.ScoringSocial, systems.ScoringThreshold:
	default:
		return fmt.Errorf("behavior: unknown scoring %q", c.Behavior.Scoring)
	}
	if err := c.Traits.Validate(); err != nil {
		return fmt.Errorf("traits: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldPixelsW = c.World.Width * c.World.CellSize
	c.Derived.WorldPixelsH = c.World.Height * c.World.CellSize
	c.Derived.Workers = c.Simulation.Workers
	if c.Derived.Workers <= 0 {
		c.Derived.Workers = runtime.NumCPU()
	}
	if c.Simulation.StepsPerUpdate < 1 {
		c.Simulation.StepsPerUpdate = 1
	}
}

// Params returns the engine parameters described by this config.
func (c *Config) Params() systems.Params {
	return systems.Params{
		CellSize:        c.World.CellSize,
		FoodUnit:        c.World.FoodUnit,
		SeedMin:         c.World.SeedMin,
		SeedMax:         c.World.SeedMax,
		FoodCap:         c.World.FoodCap,
		RegrowChance:    c.World.RegrowChance,
		Scoring:         systems.Scoring(c.Behavior.Scoring),
		SwitchThreshold: c.Behavior.SwitchThreshold,
		FoodPortion:     c.Behavior.FoodPortion,
		VitalityPerFood: c.Behavior.VitalityPerFood,
		ArriveDistance:  c.Behavior.ArriveDistance,
		RestCost:        c.Behavior.RestCost,
		ActiveCost:      c.Behavior.ActiveCost,
		MaxVitality:     c.Behavior.MaxVitality,
		FreezeBelow:     c.Behavior.FreezeBelow,
	}
}

// TraitRanges returns the trait sampling ranges.
func (c *Config) TraitRanges() traits.Ranges {
	return c.Traits
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
