package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/traits"
)

// InspectorData holds everything the agent inspector shows.
type InspectorData struct {
	Agent       game.AgentView
	MaxVitality float64
	Ranges      traits.Ranges
	FoodHere    int
}

// Inspector renders the details of one agent.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns the Y below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	a := data.Agent

	r.DrawPanel(ins.x, ins.y, ins.width, 250)
	x := ins.x + padding
	y := ins.y + padding
	content := ins.width - padding*2

	title := fmt.Sprintf("Agent #%d", a.Index)
	if a.Frozen {
		title += " (frozen)"
	}
	rl.DrawText(title, x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	y = r.DrawSectionHeader(x, y, "State")
	y = r.DrawLabelValue(x, y, "Action", a.Action.String())
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.1f, %.1f", a.Pos.X, a.Pos.Y))
	target := "none"
	if a.Target != nil {
		target = fmt.Sprintf("%.1f, %.1f", a.Target.X, a.Target.Y)
	}
	y = r.DrawLabelValue(x, y, "Target", target)
	y = r.DrawLabelValue(x, y, "Cell", fmt.Sprintf("%d (food %d)", a.Cell, data.FoodHere))
	y = r.DrawVitalityBar(x, y, "Vitality", a.Vitality, data.MaxVitality, content)
	y = r.DrawSpacer(y, 6)

	y = r.DrawSectionHeader(x, y, "Traits")
	y = r.DrawBar(x, y, "Speed", a.Traits.Speed, data.Ranges.Speed.Min, data.Ranges.Speed.Max, content)
	y = r.DrawBar(x, y, "Laziness", a.Traits.Laziness, data.Ranges.Laziness.Min, data.Ranges.Laziness.Max, content)
	y = r.DrawBar(x, y, "Sociability", a.Traits.Sociability, data.Ranges.Sociability.Min, data.Ranges.Sociability.Max, content)
	y = r.DrawBar(x, y, "Hunger", a.Traits.HungerThreshold, data.Ranges.HungerThreshold.Min, data.Ranges.HungerThreshold.Max, content)

	return y + padding
}
