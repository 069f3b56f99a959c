// Package game drives the foraging simulation: it owns the world snapshot and
// the agent entities, advances them one tick at a time and feeds the telemetry,
// trace and observer sinks.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	params systems.Params
	engine *systems.Engine
	rng    *rand.Rand
	seed   int64

	// Agent storage
	ecs         *ecs.World
	agentMapper *ecs.Map5[
		components.Position,
		components.Target,
		components.Genome,
		components.Status,
		components.Identity,
	]
	agentFilter *ecs.Filter5[
		components.Position,
		components.Target,
		components.Genome,
		components.Status,
		components.Identity,
	]
	entities []ecs.Entity // Indexed by Identity.Index

	// Food grid; replaced wholesale every tick
	world systems.World

	// Per-tick roster scratch, rebuilt from the ECS each step
	roster []systems.Agent

	// State
	tick           int64
	paused         bool
	stepsPerUpdate int
	parallel       *parallelState

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	trace         *telemetry.TraceWriter
	publisher     Publisher
	statsCallback func(telemetry.WindowStats)
	logStats      bool
}

// NewGameWithOptions creates a seeded session: a fresh world and
// population.agents agents placed on random cells.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	params := cfg.Params()

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}
	steps := cfg.Simulation.StepsPerUpdate
	if opts.StepsPerUpdate > 0 {
		steps = opts.StepsPerUpdate
	}
	parallel := cfg.Simulation.Parallel
	if opts.Parallel != nil {
		parallel = *opts.Parallel
	}

	g := &Game{
		cfg:           cfg,
		params:        params,
		engine:        systems.NewEngine(params, cfg.TraitRanges(), rng),
		rng:           rng,
		seed:          opts.Seed,
		collector:     telemetry.NewCollector(statsWindow),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		publisher:     opts.Publisher,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}
	g.SetSpeed(steps)
	if parallel {
		g.parallel = newParallelState(cfg.Derived.Workers)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.output.Close()
		return nil, err
	}

	trace, err := telemetry.NewTraceWriter(opts.TraceDir, cfg.Telemetry.TraceEvery)
	if err != nil {
		g.output.Close()
		return nil, err
	}
	g.trace = trace

	if err := g.populate(); err != nil {
		g.Unload()
		return nil, err
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"grid_w", g.world.Width(),
		"grid_h", g.world.Height(),
		"cell_size", g.world.CellSize(),
		"agents", len(g.entities),
		"scoring", string(params.Scoring),
		"parallel", g.parallel != nil,
	)
	return g, nil
}

// Update runs one frame's worth of ticks in graphical mode.
// Tick errors are logged and pause the simulation.
func (g *Game) Update() {
	g.perf.RecordFrame()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.Step(); err != nil {
			slog.Error("tick failed, pausing", "tick", g.tick, "error", err)
			g.paused = true
			return
		}
	}
}

// UpdateHeadless runs steps-per-update ticks without any rendering.
func (g *Game) UpdateHeadless() error {
	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the simulation by exactly one tick, paused or not.
func (g *Game) Step() error {
	g.perf.StartTick()
	if err := g.simulationStep(); err != nil {
		g.perf.EndTick()
		return fmt.Errorf("tick %d: %w", g.tick, err)
	}
	g.tick++

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.publish()
	g.perf.EndTick()
	return nil
}

// Tick returns the number of completed ticks since the last reset.
func (g *Game) Tick() int64 { return g.tick }

// Seed returns the session seed.
func (g *Game) Seed() int64 { return g.seed }

// Paused reports whether Update is currently skipping ticks.
func (g *Game) Paused() bool { return g.paused }

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }

// TogglePause flips the paused state.
func (g *Game) TogglePause() { g.paused = !g.paused }

// Speed returns the number of ticks run per update.
func (g *Game) Speed() int { return g.stepsPerUpdate }

// SetSpeed sets the number of ticks per update, clamped to [1, 50].
func (g *Game) SetSpeed(n int) {
	g.stepsPerUpdate = max(1, min(n, MaxSpeed))
}

// World returns the current food grid.
func (g *Game) World() systems.World { return g.world }

// Agents returns a copy of the roster in tick order.
func (g *Game) Agents() []systems.Agent {
	return systems.CloneRoster(g.loadRoster())
}

// Config returns the configuration the session was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Perf returns the performance collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Unload flushes and closes output sinks.
func (g *Game) Unload() {
	if err := g.trace.Close(); err != nil {
		slog.Error("failed to close trace", "error", err)
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
