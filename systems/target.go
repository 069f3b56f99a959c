package systems

import (
	"math/rand"

	"github.com/pthm-cable/forage/components"
)

// SelectTarget picks the most attractive cell for agents[i] among its current
// cell and that cell's neighbours, and returns the cell's centre.
//
// Candidates are shuffled with rng before the strict-max scan, so exact ties
// go to a random candidate; with a nil rng the scan runs in the fixed order
// home, NW, N, NE, W, E, SW, S, SE and the earliest candidate wins.
// Neither the world nor any agent is modified.
func SelectTarget(world World, agents []Agent, i int, p Params, rng *rand.Rand) components.Position {
	self := agents[i]
	home := world.CellIndex(self.Pos)

	cells := append([]int{home}, world.Neighbors(home)...)
	if rng != nil {
		rng.Shuffle(len(cells), func(a, b int) { cells[a], cells[b] = cells[b], cells[a] })
	}

	occupied := occupiedCells(world, agents, i, cells)

	best := cells[0]
	bestScore := scoreCell(world, self, home, best, occupied[best], p)
	for _, c := range cells[1:] {
		if s := scoreCell(world, self, home, c, occupied[c], p); s > bestScore {
			best, bestScore = c, s
		}
	}
	return world.CellCenter(best)
}

// occupiedCells marks which candidate cells hold at least one agent other than
// agents[self].
func occupiedCells(world World, agents []Agent, self int, cells []int) map[int]bool {
	occupied := make(map[int]bool, len(cells))
	for _, c := range cells {
		occupied[c] = false
	}
	for j, other := range agents {
		if j == self {
			continue
		}
		c := world.CellIndex(other.Pos)
		if _, ok := occupied[c]; ok {
			occupied[c] = true
		}
	}
	return occupied
}

// scoreCell rates candidate cell c for agent a standing in cell home.
// The home cell carries no distance cost.
func scoreCell(world World, a Agent, home, c int, occupied bool, p Params) float64 {
	food := float64(world.FoodAt(c))
	dist := 0.0
	if c != home {
		dist = components.Dist(a.Pos, world.CellCenter(c))
	}

	switch p.Scoring {
	case ScoringThreshold:
		if c == home {
			return food
		}
		if world.FoodAt(home) > 0 {
			food -= float64(p.SwitchThreshold)
		}
		return food - dist*a.Traits.Laziness
	default:
		if occupied {
			food *= a.Traits.Sociability
		}
		return food - dist*a.Traits.Laziness
	}
}
