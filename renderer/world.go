package renderer

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/game"
)

// Layers selects the optional parts of a frame.
type Layers struct {
	Targets      bool
	Vitality     bool
	GridLines    bool
	FoodValues   bool
	ActionColors bool
}

// DefaultLayers shows what the classic viewer showed.
func DefaultLayers() Layers {
	return Layers{Targets: true, Vitality: true, ActionColors: true}
}

// WorldView draws the food grid and the agents of a snapshot, with the
// world's top-left corner at (X, Y) and world pixels multiplied by Scale.
type WorldView struct {
	X, Y  float32
	Scale float32
	Theme Theme
}

// NewWorldView creates a view anchored at (x, y).
func NewWorldView(x, y, scale float32) *WorldView {
	if scale <= 0 {
		scale = 1
	}
	return &WorldView{X: x, Y: y, Scale: scale, Theme: DefaultTheme()}
}

// Size returns the on-screen size of the frame's grid.
func (v *WorldView) Size(s game.Snapshot) (float32, float32) {
	return float32(s.Width*s.CellSize) * v.Scale, float32(s.Height*s.CellSize) * v.Scale
}

// ToScreen converts a world position to screen coordinates.
func (v *WorldView) ToScreen(p components.Position) rl.Vector2 {
	return rl.Vector2{X: v.X + float32(p.X)*v.Scale, Y: v.Y + float32(p.Y)*v.Scale}
}

// ToWorld converts screen coordinates to a world position.
func (v *WorldView) ToWorld(p rl.Vector2) components.Position {
	return components.Position{
		X: float64((p.X - v.X) / v.Scale),
		Y: float64((p.Y - v.Y) / v.Scale),
	}
}

// AgentAt returns the index of the agent whose marker covers the screen
// point, preferring the last drawn.
func (v *WorldView) AgentAt(s game.Snapshot, p rl.Vector2) (int, bool) {
	r := v.markerRadius(s)
	for i := len(s.Agents) - 1; i >= 0; i-- {
		if rl.CheckCollisionPointCircle(p, v.ToScreen(s.Agents[i].Pos), r) {
			return i, true
		}
	}
	return 0, false
}

// Draw renders the frame. highlight is the agent index to outline, or -1.
func (v *WorldView) Draw(s game.Snapshot, layers Layers, highlight int) {
	v.drawCells(s, layers)
	v.drawAgents(s, layers, highlight)
	if layers.Vitality {
		v.drawVitality(s)
	}
	if layers.Targets {
		v.drawTargets(s)
	}
}

func (v *WorldView) cellPx(s game.Snapshot) float32 {
	return float32(s.CellSize) * v.Scale
}

func (v *WorldView) markerRadius(s game.Snapshot) float32 {
	return max(3, v.cellPx(s)*0.22)
}

func (v *WorldView) drawCells(s game.Snapshot, layers Layers) {
	k := v.cellPx(s)
	fontSize := int32(max(8, k/4))
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			i := row*s.Width + col
			x := v.X + float32(col)*k
			y := v.Y + float32(row)*k
			rect := rl.Rectangle{X: x, Y: y, Width: k, Height: k}
			rl.DrawRectangleRec(rect, FoodColor(s.FoodAt(i)))
			if layers.GridLines {
				rl.DrawRectangleLinesEx(rect, 1, v.Theme.GridLine)
			}
			if layers.FoodValues && k >= 16 {
				rl.DrawText(strconv.Itoa(s.FoodAt(i)), int32(x)+2, int32(y)+2, fontSize, v.Theme.FoodText)
			}
		}
	}
}

func (v *WorldView) drawAgents(s game.Snapshot, layers Layers, highlight int) {
	r := v.markerRadius(s)
	for i, a := range s.Agents {
		c := v.ToScreen(a.Pos)
		fill := v.Theme.Resting
		if layers.ActionColors {
			fill = v.Theme.ActionColor(a.Action, a.Frozen)
		}
		rl.DrawCircleV(c, r, fill)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), r, v.Theme.AgentOutline)
		if i == highlight {
			rl.DrawCircleLines(int32(c.X), int32(c.Y), r+3, v.Theme.HighlightFrame)
		}
	}
}

// drawVitality draws a bar above each agent; the frame turns red once the
// agent has nothing left.
func (v *WorldView) drawVitality(s game.Snapshot) {
	w := max(12, v.cellPx(s)*0.75)
	h := max(3, v.cellPx(s)*0.1)
	lift := v.markerRadius(s) + h + 2
	for _, a := range s.Agents {
		c := v.ToScreen(a.Pos)
		frame := rl.Rectangle{X: c.X - w/2, Y: c.Y - lift, Width: w, Height: h}

		ratio := float32(0)
		if s.MaxVitality > 0 {
			ratio = float32(a.Vitality / s.MaxVitality)
		}
		ratio = min(max(ratio, 0), 1)
		rl.DrawRectangleRec(rl.Rectangle{X: frame.X, Y: frame.Y, Width: w * ratio, Height: h}, v.Theme.VitalityFill)

		border := v.Theme.VitalityFrame
		if a.Vitality <= 0 {
			border = v.Theme.DepletedFrame
		}
		rl.DrawRectangleLinesEx(frame, 1, border)
	}
}

func (v *WorldView) drawTargets(s game.Snapshot) {
	for _, a := range s.Agents {
		if a.Target == nil {
			continue
		}
		rl.DrawLineV(v.ToScreen(a.Pos), v.ToScreen(*a.Target), v.Theme.TargetLine)
	}
}
