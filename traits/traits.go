// Package traits defines the immutable per-agent trait vector.
package traits

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// Traits is the genetic makeup of an agent. Set once at creation, never mutated.
type Traits struct {
	Speed           float64 `json:"speed"`            // Distance step per tick along each axis
	Laziness        float64 `json:"laziness"`         // Distance penalty weight in target scoring
	Sociability     float64 `json:"sociability"`      // Food multiplier for cells occupied by another agent
	HungerThreshold float64 `json:"hunger_threshold"` // Vitality below which resting ends
}

// Range describes one trait: a default value, the half-width of the uniform
// jitter applied around it, and hard bounds for the result.
type Range struct {
	Default float64 `yaml:"default"`
	Jitter  float64 `yaml:"jitter"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

// Ranges holds the sampling range of every trait.
type Ranges struct {
	Speed           Range `yaml:"speed"`
	Laziness        Range `yaml:"laziness"`
	Sociability     Range `yaml:"sociability"`
	HungerThreshold Range `yaml:"hunger_threshold"`
}

// DefaultRanges returns the built-in trait ranges.
// Speed jitters ±20% around 1.
func DefaultRanges() Ranges {
	return Ranges{
		Speed:           Range{Default: 1.0, Jitter: 0.2, Min: 0.1, Max: 5},
		Laziness:        Range{Default: 0.25, Jitter: 0.05, Min: 0, Max: 10},
		Sociability:     Range{Default: 0.5, Jitter: 0.2, Min: 0, Max: 1},
		HungerThreshold: Range{Default: 60, Jitter: 10, Min: 0, Max: 100},
	}
}

// Defaults returns the trait vector with no jitter applied.
func (r Ranges) Defaults() Traits {
	return Traits{
		Speed:           r.Speed.clamp(r.Speed.Default),
		Laziness:        r.Laziness.clamp(r.Laziness.Default),
		Sociability:     r.Sociability.clamp(r.Sociability.Default),
		HungerThreshold: r.HungerThreshold.clamp(r.HungerThreshold.Default),
	}
}

// Sample draws a trait vector with bounded uniform jitter around the defaults.
func (r Ranges) Sample(rng *rand.Rand) Traits {
	return Traits{
		Speed:           r.Speed.sample(rng),
		Laziness:        r.Laziness.sample(rng),
		Sociability:     r.Sociability.sample(rng),
		HungerThreshold: r.HungerThreshold.sample(rng),
	}
}

// Validate reports the first range, in trait order, whose bounds are
// inconsistent.
func (r Ranges) Validate() error {
	for _, named := range []struct {
		name string
		rg   Range
	}{
		{"speed", r.Speed},
		{"laziness", r.Laziness},
		{"sociability", r.Sociability},
		{"hunger_threshold", r.HungerThreshold},
	} {
		name, rg := named.name, named.rg
		if rg.Min > rg.Max {
			return fmt.Errorf("trait %s: min %.3f > max %.3f", name, rg.Min, rg.Max)
		}
		if rg.Jitter < 0 {
			return fmt.Errorf("trait %s: negative jitter %.3f", name, rg.Jitter)
		}
	}
	if r.Speed.Max <= 0 {
		return fmt.Errorf("trait speed: max must be positive")
	}
	return nil
}

func (rg Range) sample(rng *rand.Rand) float64 {
	v := rg.Default
	if rg.Jitter > 0 {
		v += (rng.Float64()*2 - 1) * rg.Jitter
	}
	return rg.clamp(v)
}

func (rg Range) clamp(v float64) float64 {
	if v < rg.Min {
		return rg.Min
	}
	if v > rg.Max {
		return rg.Max
	}
	return v
}

// LogValue implements slog.LogValuer for structured logging.
func (t Traits) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("speed", t.Speed),
		slog.Float64("laziness", t.Laziness),
		slog.Float64("sociability", t.Sociability),
		slog.Float64("hunger_threshold", t.HungerThreshold),
	)
}
