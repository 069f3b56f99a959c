package main

import (
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/telemetry"
)

// frozenPenalty weighs the share of frozen agents against mean vitality.
const frozenPenalty = 2.0

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality runQuality // averaged over the seeds of the latest Evaluate
}

// runQuality summarizes one run, averaged over its stats windows.
type runQuality struct {
	Vitality float64 // Mean vitality as a fraction of the maximum
	Frozen   float64 // Mean share of frozen agents
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality of the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() runQuality {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run concurrently; a failing run counts as the worst possible score.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	results := make([]runQuality, len(fe.seeds))
	var eg errgroup.Group
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			q, err := fe.runSimulation(&cfg, seed)
			if err != nil {
				return err
			}
			results[i] = q
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return math.Inf(1)
	}

	var avg runQuality
	for _, r := range results {
		avg.Vitality += r.Vitality
		avg.Frozen += r.Frozen
	}
	n := float64(len(results))
	avg.Vitality /= n
	avg.Frozen /= n

	fe.mu.Lock()
	fe.lastQuality = avg
	fe.mu.Unlock()

	return fitness(avg)
}

func fitness(q runQuality) float64 {
	return -q.Vitality + frozenPenalty*q.Frozen
}

// runSimulation executes one headless run and averages its stats windows.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (runQuality, error) {
	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Config:        cfg,
		Seed:          seed,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		return runQuality{}, err
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		if err := g.Step(); err != nil {
			return runQuality{}, err
		}
	}
	return summarizeWindows(windows, cfg.Behavior.MaxVitality), nil
}

func summarizeWindows(windows []telemetry.WindowStats, maxVitality float64) runQuality {
	var q runQuality
	if len(windows) == 0 || maxVitality <= 0 {
		return q
	}
	for _, w := range windows {
		q.Vitality += w.VitalityMean / maxVitality
		if w.Agents > 0 {
			q.Frozen += float64(w.Frozen) / float64(w.Agents)
		}
	}
	n := float64(len(windows))
	q.Vitality /= n
	q.Frozen /= n
	return q
}
