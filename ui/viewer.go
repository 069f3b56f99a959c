package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/renderer"
	"github.com/pthm-cable/forage/telemetry"
	"github.com/pthm-cable/forage/traits"
)

const panelWidth = 260

// Viewer composes the world view and the panels into one frame.
type Viewer struct {
	world     *renderer.WorldView
	overlays  *OverlayRegistry
	hud       *HUD
	controls  *ControlsPanel
	inspector *Inspector
	perf      *PerfPanel

	ranges   traits.Ranges
	maxSpeed int
	selected int // Agent index, -1 when none
	showPerf bool
}

// NewViewer lays out a viewer for a world of the given pixel size.
func NewViewer(worldW, worldH int, ranges traits.Ranges, maxSpeed int) *Viewer {
	top := float32(110)
	scale := float32(1)
	if h := rl.GetScreenHeight(); h > 0 && worldH > 0 {
		scale = max(0.25, min(4, (float32(h)-top-40)/float32(worldH)))
	}
	right := int32(10 + float32(worldW)*scale + 20)

	return &Viewer{
		world:     renderer.NewWorldView(10, top, scale),
		overlays:  NewOverlayRegistry(),
		hud:       NewHUD(10, 10),
		controls:  NewControlsPanel(right, 10, panelWidth),
		inspector: NewInspector(right, 300, panelWidth),
		perf:      NewPerfPanel(right, 300),
		ranges:    ranges,
		maxSpeed:  maxSpeed,
		selected:  -1,
	}
}

// HandleInput processes keyboard and mouse input for one frame.
func (v *Viewer) HandleInput(c Controls, snap game.Snapshot) {
	HandleKeys(c)
	v.overlays.HandleKeys()
	if rl.IsKeyPressed(rl.KeyC) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		w, h := v.world.Size(snap)
		if rl.CheckCollisionPointRec(mouse, rl.Rectangle{X: v.world.X, Y: v.world.Y, Width: w, Height: h}) {
			if i, ok := v.world.AgentAt(snap, mouse); ok {
				v.selected = i
			} else {
				v.selected = -1
			}
		}
	}
	if v.selected >= len(snap.Agents) {
		v.selected = -1
	}
}

// Draw renders one frame. Panel clicks are applied to c.
func (v *Viewer) Draw(c Controls, snap game.Snapshot, seed int64, perf telemetry.PerfStats) {
	rl.ClearBackground(v.world.Theme.Background)

	v.world.Draw(snap, v.overlays.Layers(), v.selected)

	data := HUDData{
		Title:  "Forage",
		Seed:   seed,
		Tick:   snap.Tick,
		Speed:  c.Speed(),
		FPS:    rl.GetFPS(),
		Paused: snap.Paused,
		Agents: len(snap.Agents),
	}
	for _, a := range snap.Agents {
		switch {
		case a.Frozen:
			data.Frozen++
		case a.Action == components.ActionMoving:
			data.Moving++
		case a.Action == components.ActionEating:
			data.Eating++
		default:
			data.Resting++
		}
	}
	for _, f := range snap.Food {
		data.FoodTotal += f
	}
	v.hud.Draw(data)
	v.hud.DrawControls(int32(rl.GetScreenHeight()), ControlsLegend)

	res := v.controls.Draw(ControlsState{Paused: c.Paused(), Speed: c.Speed(), MaxSpeed: v.maxSpeed}, v.overlays)
	res.Apply(c)

	switch {
	case v.selected >= 0 && v.selected < len(snap.Agents):
		a := snap.Agents[v.selected]
		v.inspector.Draw(InspectorData{
			Agent:       a,
			MaxVitality: snap.MaxVitality,
			Ranges:      v.ranges,
			FoodHere:    snap.FoodAt(a.Cell),
		})
	case v.showPerf:
		v.perf.Draw(perf)
	}
}
