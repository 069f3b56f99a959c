package telemetry

import "github.com/pthm-cable/forage/components"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	// Event counters for current window
	foodEaten   int
	transitions int
	arrivals    int
}

// NewCollector creates a new stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordEaten records food units consumed.
func (c *Collector) RecordEaten(units int) {
	c.foodEaten += units
}

// RecordTransition records an agent changing action.
func (c *Collector) RecordTransition(from, to components.Action) {
	if from == to {
		return
	}
	c.transitions++
	if from == components.ActionMoving && to == components.ActionEating {
		c.arrivals++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Sample is the end-of-window state handed to Flush.
type Sample struct {
	Food     []int
	Actions  []components.Action
	Vitality []float64
	Frozen   int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, s Sample) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Agents:          len(s.Actions),
		Frozen:          s.Frozen,
		FoodEaten:       c.foodEaten,
		Transitions:     c.transitions,
		Arrivals:        c.arrivals,
	}
	for _, a := range s.Actions {
		switch a {
		case components.ActionResting:
			stats.Resting++
		case components.ActionMoving:
			stats.Moving++
		case components.ActionEating:
			stats.Eating++
		}
	}
	stats.FoodTotal, stats.FoodMean, stats.EmptyPct = FoodSummary(s.Food)

	d := Summarize(s.Vitality)
	stats.VitalityMean = d.Mean
	stats.VitalityStd = d.Std
	stats.VitalityP10 = d.P10
	stats.VitalityP50 = d.P50
	stats.VitalityP90 = d.P90

	c.windowStartTick = currentTick
	c.foodEaten = 0
	c.transitions = 0
	c.arrivals = 0
	return stats
}

// Reset clears counters and restarts the window at tick.
func (c *Collector) Reset(tick int64) {
	c.windowStartTick = tick
	c.foodEaten = 0
	c.transitions = 0
	c.arrivals = 0
}
