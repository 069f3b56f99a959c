package telemetry

import (
	"testing"

	"github.com/pthm-cable/forage/components"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	c.RecordEaten(1)
	c.RecordEaten(2)
	c.RecordTransition(components.ActionResting, components.ActionMoving)
	c.RecordTransition(components.ActionMoving, components.ActionEating)
	c.RecordTransition(components.ActionEating, components.ActionEating)

	if c.ShouldFlush(9) {
		t.Error("flushed before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("window of 10 ticks should flush at tick 10")
	}

	stats := c.Flush(10, Sample{
		Food:     []int{0, 10, 20, 10},
		Actions:  []components.Action{components.ActionResting, components.ActionMoving, components.ActionEating, components.ActionResting},
		Vitality: []float64{0.5, 40, 60, 100},
		Frozen:   1,
	})

	want := WindowStats{
		WindowStartTick: 0,
		WindowEndTick:   10,
		Agents:          4,
		Resting:         2,
		Moving:          1,
		Eating:          1,
		Frozen:          1,
		FoodEaten:       3,
		Transitions:     2,
		Arrivals:        1,
		FoodTotal:       40,
		FoodMean:        10,
		EmptyPct:        25,
	}
	got := stats
	got.VitalityMean, got.VitalityStd, got.VitalityP10, got.VitalityP50, got.VitalityP90 = 0, 0, 0, 0, 0
	if got != want {
		t.Errorf("Flush =\n%+v\nwant\n%+v", got, want)
	}
	if stats.VitalityMean != 50.125 {
		t.Errorf("vitality mean = %v, want 50.125", stats.VitalityMean)
	}

	next := c.Flush(20, Sample{})
	if next.WindowStartTick != 10 || next.FoodEaten != 0 || next.Transitions != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(0)
	c.RecordEaten(5)
	c.Reset(100)

	if c.ShouldFlush(100) {
		t.Error("should not flush at the reset tick")
	}
	if !c.ShouldFlush(101) {
		t.Error("window clamps to one tick")
	}
	if s := c.Flush(101, Sample{}); s.FoodEaten != 0 || s.WindowStartTick != 100 {
		t.Errorf("after reset: %+v", s)
	}
}
