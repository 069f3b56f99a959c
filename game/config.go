package game

import (
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/telemetry"
)

// Publisher receives a snapshot after every simulated tick.
type Publisher interface {
	Publish(Snapshot)
}

// Options holds configuration for game initialization.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	LogStats       bool
	StatsWindow    int // Ticks per stats window (0 = use config)
	OutputDir      string
	TraceDir       string
	StepsPerUpdate int // 0 = use config
	Parallel       *bool
	Publisher      Publisher
	StatsCallback  func(telemetry.WindowStats)
}

// MaxSpeed bounds steps per update.
const MaxSpeed = 50
