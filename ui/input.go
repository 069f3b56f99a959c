package ui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Controls is the subset of the session the viewer may drive.
type Controls interface {
	TogglePause()
	Paused() bool
	Speed() int
	SetSpeed(n int)
	Step() error
	Reset() error
}

// ControlsLegend lists the keyboard bindings for the HUD footer.
const ControlsLegend = "SPACE pause | N step | R reset | +/- speed | C controls | P perf | T V A G F overlays | click agent to inspect"

// HandleKeys applies keyboard shortcuts to the session.
func HandleKeys(c Controls) {
	if rl.IsKeyPressed(rl.KeySpace) {
		c.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) && c.Paused() {
		if err := c.Step(); err != nil {
			slog.Error("step failed", "error", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := c.Reset(); err != nil {
			slog.Error("reset failed", "error", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		c.SetSpeed(c.Speed() + 1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		c.SetSpeed(c.Speed() - 1)
	}
}

// Apply carries out the requests made through the controls panel.
func (res ControlsResult) Apply(c Controls) {
	if res.TogglePause {
		c.TogglePause()
	}
	if res.Step {
		if err := c.Step(); err != nil {
			slog.Error("step failed", "error", err)
		}
	}
	if res.Reset {
		if err := c.Reset(); err != nil {
			slog.Error("reset failed", "error", err)
		}
	}
	if res.Speed != c.Speed() {
		c.SetSpeed(res.Speed)
	}
}
