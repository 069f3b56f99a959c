package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel shows.
type ControlsState struct {
	Paused   bool
	Speed    int
	MaxSpeed int
}

// ControlsResult reports what the user clicked this frame.
type ControlsResult struct {
	TogglePause bool
	Step        bool
	Reset       bool
	Speed       int
}

// ControlsPanel renders the session controls and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the user's requests.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsResult {
	res := ControlsResult{Speed: state.Speed}
	if !c.visible {
		return res
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)

	categories := overlays.Categories()
	rows := 0
	for _, cat := range categories {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := padding*2 + lineHeight + 30 + 8 + lineHeight + 20 + 12 + int32(rows)*(lineHeight+4)
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += float32(lineHeight) + 4

	btn := (inner - 10) / 3
	pauseLabel := "Pause"
	if state.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: btn, Height: 26}, pauseLabel) {
		res.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + btn + 5, Y: y, Width: btn, Height: 26}, "Step") {
		res.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(btn+5), Y: y, Width: btn, Height: 26}, "Reset") {
		res.Reset = true
	}
	y += 34

	rl.DrawText(fmt.Sprintf("Ticks per frame: %d", state.Speed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(lineHeight)
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: y, Width: inner - 40, Height: 16},
		"1", fmt.Sprintf("%d", state.MaxSpeed),
		float32(state.Speed), 1, float32(state.MaxSpeed),
	)
	if s := int(speed + 0.5); s != state.Speed {
		res.Speed = s
	}
	y += 28

	for _, cat := range categories {
		rl.DrawText(categoryLabel(cat), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(lineHeight) + 4
		for _, desc := range overlays.ByCategory(cat) {
			enabled := overlays.IsEnabled(desc.ID)
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			if gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 12, Height: 12}, label, enabled) != enabled {
				overlays.Toggle(desc.ID)
			}
			y += float32(lineHeight) + 4
		}
	}
	return res
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	if cat == "" {
		return cat
	}
	return strings.ToUpper(cat[:1]) + cat[1:]
}
