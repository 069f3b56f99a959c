package game

import (
	"log/slog"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/telemetry"
)

// flushTelemetry closes the stats window when it is due and writes the trace
// frame for this tick.
func (g *Game) flushTelemetry() {
	if g.trace.Wants(g.tick) {
		if err := g.trace.Write(g.Snapshot()); err != nil {
			slog.Error("failed to write trace", "error", err)
		}
	}

	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logWorldState()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sample collects the end-of-window state for the collector.
func (g *Game) sample() telemetry.Sample {
	roster := g.loadRoster()
	s := telemetry.Sample{
		Food:     g.world.Food(),
		Actions:  make([]components.Action, len(roster)),
		Vitality: make([]float64, len(roster)),
	}
	for i, a := range roster {
		s.Actions[i] = a.Action
		s.Vitality[i] = a.Vitality
		if a.Frozen(g.params) {
			s.Frozen++
		}
	}
	return s
}

// publish hands the current frame to the observer, if any.
func (g *Game) publish() {
	if g.publisher == nil {
		return
	}
	g.publisher.Publish(g.Snapshot())
}
