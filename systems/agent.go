package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

// Agent is the value form of one forager. Target is nil whenever the agent is
// not travelling toward (or eating at) a chosen cell.
type Agent struct {
	Pos      components.Position
	Target   *components.Position
	Traits   traits.Traits
	Action   components.Action
	Vitality float64
}

// NewAgent places an agent at the centre of cell, resting at full vitality.
func NewAgent(world World, cell int, tr traits.Traits, p Params) (Agent, error) {
	if !world.InBounds(cell) {
		return Agent{}, fmt.Errorf("cell %d of %d: %w", cell, world.Len(), ErrIndexOutOfRange)
	}
	return Agent{
		Pos:      world.CellCenter(cell),
		Traits:   tr,
		Action:   components.ActionResting,
		Vitality: p.MaxVitality,
	}, nil
}

// RandomAgent places an agent with sampled traits on a uniformly random cell.
func RandomAgent(world World, ranges traits.Ranges, p Params, rng *rand.Rand) Agent {
	a, _ := NewAgent(world, rng.Intn(world.Len()), ranges.Sample(rng), p)
	return a
}

// Frozen reports whether the agent is too depleted to act.
func (a Agent) Frozen(p Params) bool {
	return a.Vitality < p.FreezeBelow
}

// Cell returns the index of the cell the agent stands in.
func (a Agent) Cell(world World) int {
	return world.CellIndex(a.Pos)
}

// HasTarget reports whether the agent currently has a target.
func (a Agent) HasTarget() bool {
	return a.Target != nil
}

// CloneRoster copies a roster, including target pointers, so that the copy can
// be advanced without aliasing the input.
func CloneRoster(agents []Agent) []Agent {
	out := make([]Agent, len(agents))
	for i, a := range agents {
		if a.Target != nil {
			t := *a.Target
			a.Target = &t
		}
		out[i] = a
	}
	return out
}
