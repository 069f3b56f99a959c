package traits

import (
	"math/rand"
	"strings"
	"testing"
)

func TestSampleWithinBounds(t *testing.T) {
	r := DefaultRanges()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		tr := r.Sample(rng)
		checks := []struct {
			name  string
			value float64
			rg    Range
		}{
			{"speed", tr.Speed, r.Speed},
			{"laziness", tr.Laziness, r.Laziness},
			{"sociability", tr.Sociability, r.Sociability},
			{"hunger_threshold", tr.HungerThreshold, r.HungerThreshold},
		}
		for _, c := range checks {
			lo := c.rg.Default - c.rg.Jitter
			hi := c.rg.Default + c.rg.Jitter
			if c.value < lo || c.value > hi {
				t.Fatalf("%s = %v outside jitter band [%v, %v]", c.name, c.value, lo, hi)
			}
			if c.value < c.rg.Min || c.value > c.rg.Max {
				t.Fatalf("%s = %v outside bounds [%v, %v]", c.name, c.value, c.rg.Min, c.rg.Max)
			}
		}
	}
}

func TestSampleClampsToBounds(t *testing.T) {
	r := DefaultRanges()
	r.Sociability = Range{Default: 0.95, Jitter: 0.5, Min: 0, Max: 1}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		if s := r.Sample(rng).Sociability; s < 0 || s > 1 {
			t.Fatalf("sociability %v escaped [0,1]", s)
		}
	}
}

func TestZeroJitterIsDeterministic(t *testing.T) {
	r := Ranges{
		Speed:           Range{Default: 1.5, Min: 0, Max: 5},
		Laziness:        Range{Default: 0.1, Min: 0, Max: 1},
		Sociability:     Range{Default: 1, Min: 0, Max: 1},
		HungerThreshold: Range{Default: 40, Min: 0, Max: 100},
	}
	got := r.Sample(rand.New(rand.NewSource(99)))
	if got != r.Defaults() {
		t.Errorf("Sample with zero jitter = %+v, want %+v", got, r.Defaults())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Ranges)
		wantErr bool
	}{
		{"defaults", func(*Ranges) {}, false},
		{"inverted bounds", func(r *Ranges) { r.Laziness.Min, r.Laziness.Max = 1, 0 }, true},
		{"negative jitter", func(r *Ranges) { r.HungerThreshold.Jitter = -1 }, true},
		{"zero speed", func(r *Ranges) { r.Speed.Min, r.Speed.Max = 0, 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRanges()
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsFirstTraitInOrder(t *testing.T) {
	r := DefaultRanges()
	r.HungerThreshold.Jitter = -1
	r.Sociability.Min, r.Sociability.Max = 1, 0
	r.Laziness.Min, r.Laziness.Max = 3, 1

	for i := 0; i < 20; i++ {
		err := r.Validate()
		if err == nil {
			t.Fatal("Validate accepted inverted ranges")
		}
		if !strings.Contains(err.Error(), "trait laziness:") {
			t.Fatalf("run %d: error = %v, want laziness reported first", i, err)
		}
	}
}
