package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/oleksiy-korniychuk/guns-germs-steel/config"
)

// overrideDoc is the minimal config override produced by a tuning run.
type overrideDoc struct {
	Vitals struct {
		LiveCost int `yaml:"live_cost"`
		MoveCost int `yaml:"move_cost"`
	} `yaml:"vitals"`
	Flora struct {
		SeedChance float64 `yaml:"seed_chance"`
	} `yaml:"flora"`
}

func main() {
	configPath := flag.String("config", "", "Path to base configuration file")
	maxEvals := flag.Int("evals", 60, "Maximum fitness evaluations")
	numSeeds := flag.Int("seeds", 4, "Simulations per evaluation")
	maxTicks := flag.Int64("ticks", 3000, "Max ticks per simulation")
	outputDir := flag.String("output", "", "Directory for eval log and best config (optional)")
	verbose := flag.Bool("verbose", false, "Print per-evaluation fitness")
	flag.Parse()

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(baseCfg, params, *numSeeds, *maxTicks, *verbose)

	var logWriter *csv.Writer
	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output dir: %v\n", err)
			os.Exit(1)
		}
		logFile, err := os.Create(filepath.Join(*outputDir, "eval_log.csv"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create eval log: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		logWriter = csv.NewWriter(logFile)
		logWriter.Write([]string{"eval", "fitness", "live_cost", "move_cost", "seed_chance"})
		logWriter.Flush()
	}

	evalCount := 0
	objective := func(x []float64) float64 {
		evalCount++
		raw := params.Clamp(params.Denormalize(x))
		fitness := evaluator.Evaluate(raw)

		if logWriter != nil {
			logWriter.Write([]string{
				fmt.Sprintf("%d", evalCount),
				fmt.Sprintf("%.4f", fitness),
				fmt.Sprintf("%.0f", raw[0]),
				fmt.Sprintf("%.0f", raw[1]),
				fmt.Sprintf("%.5f", raw[2]),
			})
			logWriter.Flush()
		}
		if evalCount%10 == 0 {
			fmt.Printf("eval %d/%d: fitness %.2f\n", evalCount, *maxEvals, fitness)
		}
		return fitness
	}

	problem := optimize.Problem{Func: objective}
	initX := params.Normalize(params.DefaultVector())
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.NelderMead{}

	fmt.Printf("Tuning %d parameters: %d evals, %d seeds x %d ticks each\n",
		params.Dim(), *maxEvals, *numSeeds, *maxTicks)
	start := time.Now()

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "optimization stopped: %v\n", err)
	}
	if result == nil {
		os.Exit(1)
	}

	best := params.Clamp(params.Denormalize(result.X))
	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, best)

	fmt.Printf("\nDone in %s after %d evaluations. Best mean survival: %.2f ticks\n",
		time.Since(start).Round(time.Second), evalCount, -result.F)

	var doc overrideDoc
	doc.Vitals.LiveCost = bestCfg.Vitals.LiveCost
	doc.Vitals.MoveCost = bestCfg.Vitals.MoveCost
	doc.Flora.SeedChance = bestCfg.Flora.SeedChance
	out, err := yaml.Marshal(&doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal best params: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nBest parameters (save as a config override file):\n%s", out)

	if *outputDir != "" {
		path := filepath.Join(*outputDir, "best_config.yaml")
		if err := bestCfg.WriteYAML(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write best config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Full best config written to %s\n", path)
	}
}
