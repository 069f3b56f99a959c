package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{100, 10, 90, 20, 80, 30, 70, 40, 60, 50}
	d := Summarize(values)

	if math.Abs(d.Mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", d.Mean)
	}
	// Population standard deviation of 10..100 step 10
	if math.Abs(d.Std-28.7228) > 0.001 {
		t.Errorf("std = %v, want ~28.72", d.Std)
	}
	if math.Abs(d.P10-19) > 0.01 || math.Abs(d.P50-55) > 0.01 || math.Abs(d.P90-91) > 0.01 {
		t.Errorf("percentiles = %v/%v/%v, want 19/55/91", d.P10, d.P50, d.P90)
	}
	if values[0] != 100 {
		t.Error("Summarize sorted its input in place")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if d := Summarize(nil); d != (Distribution{}) {
		t.Errorf("empty summary = %+v, want zeros", d)
	}
}

func TestFoodSummary(t *testing.T) {
	total, mean, empty := FoodSummary([]int{0, 10, 20, 0, 50})
	if total != 80 || mean != 16 || empty != 40 {
		t.Errorf("FoodSummary = %v, %v, %v; want 80, 16, 40", total, mean, empty)
	}
	if total, mean, empty := FoodSummary(nil); total != 0 || mean != 0 || empty != 0 {
		t.Error("empty field should summarize to zeros")
	}
}
