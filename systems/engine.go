package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

// Engine bundles the parameters, trait ranges and random source that the
// world and agent operations need. It holds no world or agent state itself;
// every call takes a snapshot in and hands a new one back.
type Engine struct {
	params Params
	ranges traits.Ranges
	rng    *rand.Rand
}

// NewEngine creates an engine. rng drives seeding, trait jitter, regrowth
// and tie-breaking; pass a seeded source for reproducible runs.
func NewEngine(p Params, ranges traits.Ranges, rng *rand.Rand) *Engine {
	return &Engine{params: p, ranges: ranges, rng: rng}
}

// Params returns the engine parameters.
func (e *Engine) Params() Params { return e.params }

// Ranges returns the trait sampling ranges.
func (e *Engine) Ranges() traits.Ranges { return e.ranges }

// Rand returns the engine's random source.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// CreateWorld allocates a seeded world.
func (e *Engine) CreateWorld(width, height int) (World, error) {
	return NewWorld(width, height, e.params, e.rng)
}

// CreateAgent places a new agent with jittered traits at the centre of cell.
func (e *Engine) CreateAgent(world World, cell int) (Agent, error) {
	if !world.InBounds(cell) {
		return Agent{}, fmt.Errorf("cell %d of %d: %w", cell, world.Len(), ErrIndexOutOfRange)
	}
	return NewAgent(world, cell, e.ranges.Sample(e.rng), e.params)
}

// TickWorld applies one tick of food regrowth.
func (e *Engine) TickWorld(world World) World {
	return world.Regrow(e.rng, e.params.RegrowChance, e.params.FoodCap)
}

// SelectTarget chooses agents[i]'s next target using the engine's rng.
func (e *Engine) SelectTarget(world World, agents []Agent, i int) components.Position {
	return SelectTarget(world, agents, i, e.params, e.rng)
}

// Advance applies the state machine to a with a precomputed next target.
func (e *Engine) Advance(world World, a Agent, next components.Position) (World, Agent, error) {
	return Advance(world, a, next, e.params)
}

// TickAgent advances agents[i] by one tick against world and the roster.
// The roster itself is not modified; callers store the returned agent.
func (e *Engine) TickAgent(world World, agents []Agent, i int) (World, Agent, error) {
	if i < 0 || i >= len(agents) {
		return world, Agent{}, fmt.Errorf("agent %d of %d: %w", i, len(agents), ErrIndexOutOfRange)
	}
	a := agents[i]
	if !a.Action.Valid() {
		return world, a, fmt.Errorf("agent %d action %d: %w", i, a.Action, ErrInvalidAgentState)
	}
	if a.Frozen(e.params) {
		return world, a, nil
	}
	if cell := a.Cell(world); !world.InBounds(cell) {
		return world, a, fmt.Errorf("agent %d at (%.1f,%.1f): cell %d: %w", i, a.Pos.X, a.Pos.Y, cell, ErrIndexOutOfRange)
	}
	return e.Advance(world, a, e.SelectTarget(world, agents, i))
}

// Tick runs one full simulation tick: regrowth, then every agent in index
// order, each seeing the roster with earlier agents already advanced.
// The input roster is left untouched.
func (e *Engine) Tick(world World, agents []Agent) (World, []Agent, error) {
	world = e.TickWorld(world)
	roster := CloneRoster(agents)
	for i := range roster {
		w, a, err := e.TickAgent(world, roster, i)
		if err != nil {
			return world, roster, err
		}
		world, roster[i] = w, a
	}
	return world, roster, nil
}
