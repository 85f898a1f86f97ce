package main

import (
	"fmt"
	"sync"

	"github.com/oleksiy-korniychuk/guns-germs-steel/config"
	"github.com/oleksiy-korniychuk/guns-germs-steel/sim"
)

// FitnessEvaluator runs headless simulations to score parameter sets.
type FitnessEvaluator struct {
	baseConfig *config.Config
	params     *ParamVector
	seeds      []int64
	maxTicks   int64
	verbose    bool
}

// NewFitnessEvaluator creates an evaluator with fixed seeds so every
// candidate is scored on the same worlds.
func NewFitnessEvaluator(baseCfg *config.Config, params *ParamVector, numSeeds int, maxTicks int64, verbose bool) *FitnessEvaluator {
	seeds := make([]int64, numSeeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}

	return &FitnessEvaluator{
		baseConfig: baseCfg,
		params:     params,
		seeds:      seeds,
		maxTicks:   maxTicks,
		verbose:    verbose,
	}
}

// Evaluate runs simulations with the given parameters and returns a
// fitness score. Lower is better, so the score is the negated mean
// survival across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r
	}
	mean := total / float64(len(fe.seeds))

	if fe.verbose {
		fmt.Printf("  fitness: %.2f (params: %v)\n", mean, fe.params.Clamp(x))
	}

	return -mean
}

// runSimulation runs one headless simulation and returns the raw score:
// ticks survived, with a small bonus for closing population when the
// run goes the distance.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	s, err := sim.New(sim.Options{
		Seed:   seed,
		Config: cfg,
	})
	if err != nil {
		return 0
	}
	defer s.Close()

	for s.Tick() < fe.maxTicks && s.Population() > 0 {
		s.Step()
	}

	score := float64(s.Tick())
	if pop := s.Population(); pop > 0 {
		bonus := float64(pop) / 100.0
		if bonus > 0.2 {
			bonus = 0.2
		}
		score *= 1.0 + bonus
	}
	return score
}

// copyConfig makes a private copy of the base config. The config is all
// value fields, so a struct copy is a full copy.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}
