package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
)

// logTransition records an agent changing action at debug level.
func (g *Game) logTransition(index int, from components.Action, a systems.Agent) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{
		"tick", g.tick,
		"agent", index,
		"from", from.String(),
		"to", a.Action.String(),
		"vitality", a.Vitality,
		"cell", a.Cell(g.world),
	}
	if a.Target != nil {
		attrs = append(attrs, "target_cell", g.world.CellIndex(*a.Target))
	}
	slog.Debug("transition", attrs...)
}

// logWorldState logs a one-line summary of the food grid and roster.
func (g *Game) logWorldState() {
	var counts [3]int
	frozen := 0
	for _, a := range g.loadRoster() {
		if a.Action.Valid() {
			counts[a.Action]++
		}
		if a.Frozen(g.params) {
			frozen++
		}
	}
	slog.Info("world",
		"tick", g.tick,
		"food_total", g.world.TotalFood(),
		"resting", counts[components.ActionResting],
		"moving", counts[components.ActionMoving],
		"eating", counts[components.ActionEating],
		"frozen", frozen,
		"paused", g.paused,
	)
}
