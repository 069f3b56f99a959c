package game

import (
	"fmt"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// simulationStep runs one tick: regrowth, then every agent in index order,
// then the results are written back to the ECS. The tick works on a local
// world; a failed tick leaves the session's world and agents untouched.
func (g *Game) simulationStep() error {
	g.perf.StartPhase(telemetry.PhaseRegrow)
	world := g.engine.TickWorld(g.world)

	g.perf.StartPhase(telemetry.PhaseRoster)
	roster := g.loadRoster()
	prev := make([]components.Action, len(roster))
	for i, a := range roster {
		prev[i] = a.Action
	}
	foodBefore := world.TotalFood()

	var err error
	if g.parallel != nil {
		world, err = g.stepParallel(world, roster)
	} else {
		world, err = g.stepSequential(world, roster)
	}
	if err != nil {
		return err
	}

	g.perf.StartPhase(telemetry.PhaseWriteback)
	g.world = world
	g.collector.RecordEaten(foodBefore - world.TotalFood())
	for i, a := range roster {
		if a.Action != prev[i] {
			g.collector.RecordTransition(prev[i], a.Action)
			g.logTransition(i, prev[i], a)
		}
	}
	g.storeRoster(roster)
	return nil
}

// stepSequential advances agents one after another; each agent scores its
// targets against the roster with earlier agents already moved this tick.
// Target selection is timed as part of the advance phase.
func (g *Game) stepSequential(world systems.World, roster []systems.Agent) (systems.World, error) {
	g.perf.StartPhase(telemetry.PhaseAdvance)
	for i := range roster {
		next, a, err := g.engine.TickAgent(world, roster, i)
		if err != nil {
			return world, err
		}
		world = next
		roster[i] = a
	}
	return world, nil
}

// stepParallel scores every agent's target concurrently against the
// start-of-tick world and roster, then applies the state machine serially in
// index order so that food is consumed deterministically.
func (g *Game) stepParallel(world systems.World, roster []systems.Agent) (systems.World, error) {
	g.perf.StartPhase(telemetry.PhaseDecide)
	targets, err := g.decideParallel(world, roster)
	if err != nil {
		return world, err
	}

	g.perf.StartPhase(telemetry.PhaseAdvance)
	for i := range roster {
		next, a, err := g.engine.Advance(world, roster[i], targets[i])
		if err != nil {
			return world, fmt.Errorf("agent %d: %w", i, err)
		}
		world = next
		roster[i] = a
	}
	return world, nil
}
