package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Counts at window end
	Population int `csv:"population"`
	Plants     int `csv:"plants"`

	// Events during window
	Births       int `csv:"births"`
	Starvations  int `csv:"starvations"`
	Meals        int `csv:"meals"`
	NavFailures  int `csv:"nav_failures"`
	Contentions  int `csv:"contentions"`
	PlantsSeeded int `csv:"plants_seeded"`

	// Calorie distribution (sampled at window end)
	CalorieMean float64 `csv:"calorie_mean"`
	CalorieP10  float64 `csv:"calorie_p10"`
	CalorieP50  float64 `csv:"calorie_p50"`
	CalorieP90  float64 `csv:"calorie_p90"`
}

// ComputeCalorieStats calculates mean and percentiles from calorie
// values. An empty sample yields zeros.
func ComputeCalorieStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("population", s.Population),
		slog.Int("plants", s.Plants),
		slog.Int("births", s.Births),
		slog.Int("starvations", s.Starvations),
		slog.Int("meals", s.Meals),
		slog.Int("nav_failures", s.NavFailures),
		slog.Int("contentions", s.Contentions),
		slog.Int("plants_seeded", s.PlantsSeeded),
		slog.Float64("calorie_mean", s.CalorieMean),
		slog.Float64("calorie_p10", s.CalorieP10),
		slog.Float64("calorie_p50", s.CalorieP50),
		slog.Float64("calorie_p90", s.CalorieP90),
	)
}

// LogStats logs the window stats at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
