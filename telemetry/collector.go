// Package telemetry accumulates simulation events and produces
// windowed statistics for logging and CSV output.
package telemetry

// Collector counts events within stats windows. All Record methods
// are nil-safe so systems never need to care whether telemetry is
// wired up.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	window Counts
	totals Counts
}

// Counts holds event tallies.
type Counts struct {
	Births       int
	Starvations  int
	Meals        int
	NavFailures  int
	Contentions  int
	PlantsSeeded int
}

// NewCollector creates a collector that flushes every windowTicks.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth counts a creature birth.
func (c *Collector) RecordBirth() {
	if c == nil {
		return
	}
	c.window.Births++
	c.totals.Births++
}

// RecordStarvation counts a creature death from calorie exhaustion.
func (c *Collector) RecordStarvation() {
	if c == nil {
		return
	}
	c.window.Starvations++
	c.totals.Starvations++
}

// RecordMeal counts a finished plant meal.
func (c *Collector) RecordMeal() {
	if c == nil {
		return
	}
	c.window.Meals++
	c.totals.Meals++
}

// RecordNavFailure counts an unreachable travel destination.
func (c *Collector) RecordNavFailure() {
	if c == nil {
		return
	}
	c.window.NavFailures++
	c.totals.NavFailures++
}

// RecordContention counts a lost same-tick eat claim.
func (c *Collector) RecordContention() {
	if c == nil {
		return
	}
	c.window.Contentions++
	c.totals.Contentions++
}

// RecordSeeded counts a plant spawned by propagation.
func (c *Collector) RecordSeeded() {
	if c == nil {
		return
	}
	c.window.PlantsSeeded++
	c.totals.PlantsSeeded++
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces the window's stats and starts the next window.
// calories carries the living creatures' current pools for the
// distribution columns.
func (c *Collector) Flush(currentTick int64, population, plants int, calories []float64) WindowStats {
	mean, p10, p50, p90 := ComputeCalorieStats(calories)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population: population,
		Plants:     plants,

		Births:       c.window.Births,
		Starvations:  c.window.Starvations,
		Meals:        c.window.Meals,
		NavFailures:  c.window.NavFailures,
		Contentions:  c.window.Contentions,
		PlantsSeeded: c.window.PlantsSeeded,

		CalorieMean: mean,
		CalorieP10:  p10,
		CalorieP50:  p50,
		CalorieP90:  p90,
	}

	c.windowStartTick = currentTick
	c.window = Counts{}

	return stats
}

// Totals returns the running tallies since the start of the run.
func (c *Collector) Totals() Counts {
	if c == nil {
		return Counts{}
	}
	return c.totals
}

// WindowTicks returns the configured window length.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
