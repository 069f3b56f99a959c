// Package renderer draws simulation frames with raylib. It only reads
// game.Snapshot values and never touches live simulation state.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/components"
)

// Greens is the food ramp, from bare soil to a full cell.
var Greens = [...]rl.Color{
	{R: 204, G: 204, B: 194, A: 255},
	{R: 199, G: 204, B: 153, A: 255},
	{R: 191, G: 204, B: 71, A: 255},
	{R: 184, G: 204, B: 0, A: 255},
	{R: 82, G: 204, B: 0, A: 255},
	{R: 0, G: 204, B: 20, A: 255},
}

// FoodShade maps a food amount to an index into Greens: one shade per ten
// units, saturating at the last.
func FoodShade(food int) int {
	if food <= 0 {
		return 0
	}
	return min(food/10, len(Greens)-1)
}

// FoodColor returns the ramp colour for a food amount.
func FoodColor(food int) rl.Color {
	return Greens[FoodShade(food)]
}

// Theme holds world drawing colours.
type Theme struct {
	Background     rl.Color
	GridLine       rl.Color
	FoodText       rl.Color
	Resting        rl.Color
	Moving         rl.Color
	Eating         rl.Color
	Frozen         rl.Color
	AgentOutline   rl.Color
	TargetLine     rl.Color
	VitalityFill   rl.Color
	VitalityFrame  rl.Color
	DepletedFrame  rl.Color
	HighlightFrame rl.Color
}

// DefaultTheme returns the default world colours.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 24, G: 26, B: 28, A: 255},
		GridLine:       rl.Color{R: 0, G: 0, B: 0, A: 40},
		FoodText:       rl.Color{R: 40, G: 60, B: 30, A: 200},
		Resting:        rl.Color{R: 70, G: 110, B: 200, A: 255},
		Moving:         rl.Color{R: 230, G: 160, B: 40, A: 255},
		Eating:         rl.Color{R: 200, G: 60, B: 60, A: 255},
		Frozen:         rl.Color{R: 110, G: 110, B: 110, A: 255},
		AgentOutline:   rl.Black,
		TargetLine:     rl.Magenta,
		VitalityFill:   rl.Color{R: 0, G: 255, B: 0, A: 255},
		VitalityFrame:  rl.Black,
		DepletedFrame:  rl.Red,
		HighlightFrame: rl.White,
	}
}

// ActionColor returns the marker colour for an agent.
func (t Theme) ActionColor(a components.Action, frozen bool) rl.Color {
	if frozen {
		return t.Frozen
	}
	switch a {
	case components.ActionMoving:
		return t.Moving
	case components.ActionEating:
		return t.Eating
	default:
		return t.Resting
	}
}
