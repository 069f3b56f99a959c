package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
)

// populate builds a fresh world and spawns the configured population.
// Any previous entities are discarded along with their ECS world.
func (g *Game) populate() error {
	world, err := g.engine.CreateWorld(g.cfg.World.Width, g.cfg.World.Height)
	if err != nil {
		return err
	}
	g.world = world

	g.ecs = ecs.NewWorld()
	g.agentMapper = ecs.NewMap5[
		components.Position,
		components.Target,
		components.Genome,
		components.Status,
		components.Identity,
	](g.ecs)
	g.agentFilter = ecs.NewFilter5[
		components.Position,
		components.Target,
		components.Genome,
		components.Status,
		components.Identity,
	](g.ecs)
	g.entities = g.entities[:0]

	for i := 0; i < g.cfg.Population.Agents; i++ {
		if _, err := g.spawnAgent(g.rng.Intn(g.world.Len())); err != nil {
			return err
		}
	}
	return nil
}

// spawnAgent creates an agent entity at the centre of cell.
func (g *Game) spawnAgent(cell int) (ecs.Entity, error) {
	a, err := g.engine.CreateAgent(g.world, cell)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("spawning agent %d: %w", len(g.entities), err)
	}

	pos := a.Pos
	target := components.TargetOf(a.Target)
	genome := components.Genome{Traits: a.Traits}
	status := components.Status{Action: a.Action, Vitality: a.Vitality}
	id := components.Identity{Index: len(g.entities)}

	entity := g.agentMapper.NewEntity(&pos, &target, &genome, &status, &id)
	g.entities = append(g.entities, entity)

	slog.Debug("agent spawned", "index", id.Index, "cell", cell, "traits", a.Traits)
	return entity, nil
}

// Reset restarts the session: a new world replaces the old one wholesale and
// a new population is drawn. The random stream continues, so successive
// resets produce different worlds.
func (g *Game) Reset() error {
	if err := g.populate(); err != nil {
		return err
	}
	g.tick = 0
	g.collector.Reset(0)
	slog.Info("game reset", "agents", len(g.entities))
	return nil
}

// loadRoster copies agent state out of the ECS into tick order.
func (g *Game) loadRoster() []systems.Agent {
	if cap(g.roster) < len(g.entities) {
		g.roster = make([]systems.Agent, len(g.entities))
	}
	g.roster = g.roster[:len(g.entities)]

	query := g.agentFilter.Query()
	for query.Next() {
		pos, target, genome, status, id := query.Get()
		g.roster[id.Index] = systems.Agent{
			Pos:      *pos,
			Target:   target.Ptr(),
			Traits:   genome.Traits,
			Action:   status.Action,
			Vitality: status.Vitality,
		}
	}
	return g.roster
}

// storeRoster writes advanced agents back to their entities.
func (g *Game) storeRoster(agents []systems.Agent) {
	for i, a := range agents {
		pos, target, _, status, _ := g.agentMapper.Get(g.entities[i])
		*pos = a.Pos
		*target = components.TargetOf(a.Target)
		status.Action = a.Action
		status.Vitality = a.Vitality
	}
}
