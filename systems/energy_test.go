package systems

import (
	"testing"

	"github.com/pthm-cable/forage/components"
)

func TestTirednessCost(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		action components.Action
		want   float64
	}{
		{components.ActionResting, p.RestCost},
		{components.ActionMoving, p.ActiveCost},
		{components.ActionEating, p.ActiveCost},
	}
	for _, tt := range tests {
		if got := TirednessCost(tt.action, p); got != tt.want {
			t.Errorf("TirednessCost(%v) = %v, want %v", tt.action, got, tt.want)
		}
	}
}

func TestDrainVitality(t *testing.T) {
	tests := []struct {
		v, cost, want float64
	}{
		{50, 1, 49},
		{0.5, 1, 0},
		{0, 0.3, 0},
	}
	for _, tt := range tests {
		if got := DrainVitality(tt.v, tt.cost); got != tt.want {
			t.Errorf("DrainVitality(%v, %v) = %v, want %v", tt.v, tt.cost, got, tt.want)
		}
	}
}

func TestFeedVitality(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		v     float64
		eaten int
		want  float64
	}{
		{50, 1, 54},
		{50, 0, 50},
		{98, 1, 100},
		{100, 3, 100},
	}
	for _, tt := range tests {
		if got := FeedVitality(tt.v, tt.eaten, p); got != tt.want {
			t.Errorf("FeedVitality(%v, %d) = %v, want %v", tt.v, tt.eaten, got, tt.want)
		}
	}
}
