package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/renderer"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayTargets      OverlayID = "targets"
	OverlayVitality     OverlayID = "vitality"
	OverlayActionColors OverlayID = "action_colors"
	OverlayGridLines    OverlayID = "grid_lines"
	OverlayFoodValues   OverlayID = "food_values"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32 // 0 = no key
	KeyLabel string
	Category string
	Default  bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{ID: OverlayTargets, Name: "Target Lines", Key: rl.KeyT, KeyLabel: "T", Category: "agents", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayVitality, Name: "Vitality Bars", Key: rl.KeyV, KeyLabel: "V", Category: "agents", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayActionColors, Name: "Action Colors", Key: rl.KeyA, KeyLabel: "A", Category: "agents", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayGridLines, Name: "Grid Lines", Key: rl.KeyG, KeyLabel: "G", Category: "world"})
	reg.Register(OverlayDescriptor{ID: OverlayFoodValues, Name: "Food Values", Key: rl.KeyF, KeyLabel: "F", Category: "world"})
	return reg
}

// Register adds an overlay in its default state.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in registration order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}

// Layers converts the overlay state into renderer layers.
func (r *OverlayRegistry) Layers() renderer.Layers {
	return renderer.Layers{
		Targets:      r.enabled[OverlayTargets],
		Vitality:     r.enabled[OverlayVitality],
		GridLines:    r.enabled[OverlayGridLines],
		FoodValues:   r.enabled[OverlayFoodValues],
		ActionColors: r.enabled[OverlayActionColors],
	}
}
