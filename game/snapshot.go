package game

import (
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

// AgentView is the read-only presentation of one agent.
type AgentView struct {
	Index    int                  `json:"index"`
	Pos      components.Position  `json:"pos"`
	Cell     int                  `json:"cell"`
	Target   *components.Position `json:"target,omitempty"`
	Action   components.Action    `json:"action"`
	Vitality float64              `json:"vitality"`
	Frozen   bool                 `json:"frozen"`
	Traits   traits.Traits        `json:"traits"`
}

// Snapshot is a self-contained frame of the simulation, safe to hand to
// renderers, the trace writer and observers on other goroutines.
type Snapshot struct {
	Tick        int64       `json:"tick"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	CellSize    int         `json:"cell_size"`
	FoodCap     int         `json:"food_cap"`
	MaxVitality float64     `json:"max_vitality"`
	Food        []int       `json:"food"`
	Agents      []AgentView `json:"agents"`
	Paused      bool        `json:"paused"`
}

// Snapshot builds a frame of the current state.
func (g *Game) Snapshot() Snapshot {
	roster := g.loadRoster()
	s := Snapshot{
		Tick:        g.tick,
		Width:       g.world.Width(),
		Height:      g.world.Height(),
		CellSize:    g.world.CellSize(),
		FoodCap:     g.params.FoodCap,
		MaxVitality: g.params.MaxVitality,
		Food:        g.world.Food(),
		Agents:      make([]AgentView, len(roster)),
		Paused:      g.paused,
	}
	for i, a := range roster {
		var target *components.Position
		if a.Target != nil {
			t := *a.Target
			target = &t
		}
		s.Agents[i] = AgentView{
			Index:    i,
			Pos:      a.Pos,
			Cell:     a.Cell(g.world),
			Target:   target,
			Action:   a.Action,
			Vitality: a.Vitality,
			Frozen:   a.Frozen(g.params),
			Traits:   a.Traits,
		}
	}
	return s
}

// FoodAt returns the food in cell i of the frame, or 0 when out of range.
func (s Snapshot) FoodAt(i int) int {
	if i < 0 || i >= len(s.Food) {
		return 0
	}
	return s.Food[i]
}
