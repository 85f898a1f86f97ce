package sim

import (
	"log/slog"

	"github.com/oleksiy-korniychuk/guns-germs-steel/telemetry"
)

// flushTelemetry emits the stats window when it is due.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.ctx.Tick) {
		return
	}

	calories, population := s.sampleCalories()
	stats := s.collector.Flush(s.ctx.Tick, population, s.PlantCount(), calories)
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.output != nil {
		if err := s.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleCalories collects every living creature's current pool for the
// distribution columns, counting the population along the way.
func (s *Simulation) sampleCalories() ([]float64, int) {
	var values []float64
	query := s.creatureFilter.Query()
	for query.Next() {
		cal, _ := query.Get()
		values = append(values, float64(cal.Current))
	}
	return values, len(values)
}

// Totals returns the running event tallies since the start of the run.
func (s *Simulation) Totals() telemetry.Counts {
	return s.collector.Totals()
}

// PerfStats returns timing statistics over the recent tick window.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}
