// Command optimize searches the evolution parameters (mutation rate,
// mutation step, crossover rate) with Nelder-Mead over headless runs.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/smoothlife/config"
)

// evalRow is one line of optimize_log.csv.
type evalRow struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	MutationRate  float64 `csv:"mutation_rate"`
	MutationStep  float64 `csv:"mutation_step"`
	CrossoverRate float64 `csv:"crossover_rate"`
	ElapsedSec    float64 `csv:"elapsed_sec"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 20000, "Simulation ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	baseCfg := config.Cfg()
	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *ticks, evalSeeds, baseCfg)

	var (
		rows        []evalRow
		bestFitness = 1e18
		bestParams  = params.DefaultVector()
		evalErr     error
		startTime   = time.Now()
	)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness, err := evaluator.Evaluate(raw)
			if err != nil {
				// Nelder-Mead cannot take errors; a huge value steers away.
				evalErr = err
				slog.Error("evaluation failed", "params", raw, "error", err)
				return 1e18
			}

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			elapsed := time.Since(startTime)
			rows = append(rows, evalRow{
				Eval:          len(rows) + 1,
				Fitness:       fitness,
				MutationRate:  raw[0],
				MutationStep:  raw[1],
				CrossoverRate: raw[2],
				ElapsedSec:    elapsed.Seconds(),
			})

			remaining := time.Duration(*maxEvals-len(rows)) * (elapsed / time.Duration(len(rows)))
			slog.Info("evaluation",
				"eval", len(rows),
				"max_evals", *maxEvals,
				"fitness", fitness,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}
	method := &optimize.NelderMead{}

	slog.Info("starting optimization",
		"method", "nelder-mead",
		"params", params.Dim(),
		"max_evals", *maxEvals,
		"seeds", *seeds,
		"ticks", *ticks,
	)

	if _, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method); err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if evalErr != nil && len(rows) == 0 {
		slog.Error("no evaluation succeeded", "error", evalErr)
		os.Exit(1)
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	if err := writeLog(logPath, rows); err != nil {
		slog.Error("failed to write optimize log", "error", err)
	}

	for i, spec := range params.Specs {
		slog.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		slog.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	slog.Info("optimization complete",
		"evaluations", len(rows),
		"best_fitness", bestFitness,
		"duration", formatDuration(time.Since(startTime)),
		"config", configOutPath,
	)
}

func writeLog(path string, rows []evalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}
