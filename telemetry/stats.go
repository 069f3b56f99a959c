package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Roster at window end
	Agents  int `csv:"agents"`
	Resting int `csv:"resting"`
	Moving  int `csv:"moving"`
	Eating  int `csv:"eating"`
	Frozen  int `csv:"frozen"`

	// Events during window
	FoodEaten   int `csv:"food_eaten"`
	Transitions int `csv:"transitions"`
	Arrivals    int `csv:"arrivals"` // Moving -> Eating

	// Food field at window end
	FoodTotal float64 `csv:"food_total"`
	FoodMean  float64 `csv:"food_mean"`
	EmptyPct  float64 `csv:"empty_pct"`

	// Vitality distribution at window end
	VitalityMean float64 `csv:"vitality_mean"`
	VitalityStd  float64 `csv:"vitality_std"`
	VitalityP10  float64 `csv:"vitality_p10"`
	VitalityP50  float64 `csv:"vitality_p50"`
	VitalityP90  float64 `csv:"vitality_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample: population mean and standard deviation
// plus the 10th, 50th and 90th percentiles.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes the distribution of values without modifying them.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// FoodSummary returns the total and mean food over cells and the percentage
// of cells that are empty.
func FoodSummary(food []int) (total, mean, emptyPct float64) {
	if len(food) == 0 {
		return 0, 0, 0
	}
	vals := make([]float64, len(food))
	empty := 0
	for i, f := range food {
		vals[i] = float64(f)
		if f == 0 {
			empty++
		}
	}
	total = floats.Sum(vals)
	return total, total / float64(len(food)), 100 * float64(empty) / float64(len(food))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("agents", s.Agents),
		slog.Int("resting", s.Resting),
		slog.Int("moving", s.Moving),
		slog.Int("eating", s.Eating),
		slog.Int("frozen", s.Frozen),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("transitions", s.Transitions),
		slog.Int("arrivals", s.Arrivals),
		slog.Float64("food_total", s.FoodTotal),
		slog.Float64("food_mean", s.FoodMean),
		slog.Float64("empty_pct", s.EmptyPct),
		slog.Float64("vitality_mean", s.VitalityMean),
		slog.Float64("vitality_std", s.VitalityStd),
		slog.Float64("vitality_p10", s.VitalityP10),
		slog.Float64("vitality_p50", s.VitalityP50),
		slog.Float64("vitality_p90", s.VitalityP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"agents", s.Agents,
		"resting", s.Resting,
		"moving", s.Moving,
		"eating", s.Eating,
		"frozen", s.Frozen,
		"food_total", int(s.FoodTotal),
		"food_eaten", s.FoodEaten,
		"vitality_mean", s.VitalityMean,
		"vitality_p10", s.VitalityP10,
	)
}
