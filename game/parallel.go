package game

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
)

// parallelState holds reusable buffers for the concurrent decision phase.
type parallelState struct {
	workers int
	targets []components.Position
	seeds   []int64
}

func newParallelState(workers int) *parallelState {
	if workers < 1 {
		workers = 1
	}
	return &parallelState{
		workers: workers,
		seeds:   make([]int64, workers),
	}
}

// decideParallel splits the roster into one chunk per worker and selects a
// target for every agent against world. Each chunk draws tie-breaks from its
// own rng, seeded serially from the game rng, so a run is reproducible for a
// given seed and worker count. Frozen agents get no target.
func (g *Game) decideParallel(world systems.World, roster []systems.Agent) ([]components.Position, error) {
	p := g.parallel
	n := len(roster)
	if cap(p.targets) < n {
		p.targets = make([]components.Position, n)
	}
	p.targets = p.targets[:n]
	for c := range p.seeds {
		p.seeds[c] = g.rng.Int63()
	}
	if n == 0 {
		return p.targets, nil
	}

	params := g.params
	chunkSize := (n + p.workers - 1) / p.workers

	var eg errgroup.Group
	for c := 0; c < p.workers; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		rng := rand.New(rand.NewSource(p.seeds[c]))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				a := roster[i]
				if !a.Action.Valid() {
					return fmt.Errorf("agent %d action %d: %w", i, a.Action, systems.ErrInvalidAgentState)
				}
				if a.Frozen(params) {
					continue
				}
				if cell := a.Cell(world); !world.InBounds(cell) {
					return fmt.Errorf("agent %d cell %d: %w", i, cell, systems.ErrIndexOutOfRange)
				}
				p.targets[i] = systems.SelectTarget(world, roster, i, params, rng)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return p.targets, nil
}
