package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Garsondee/Soft-Creatures/internal/softbody"
)

type runStats struct {
	runIndex int
	seed     int64

	buildErr error
	stepErr  error
	ticksRun int

	points   int
	springs  int
	chambers int
	external int

	relaxIterations int
	relaxConverged  bool

	areaRatioLo float64
	areaRatioHi float64
	energyFinal float64
	energyPeak  float64
	drift       float64
	maxSpeed    float64
	finite      bool

	windowSummary *softbody.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var count int
	var dt float64
	var geometricDrag bool

	def := softbody.DefaultParams()
	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&count, "count", def.Count, "point masses per creature")
	flag.Float64Var(&dt, "dt", def.DT, "step size in seconds")
	flag.BoolVar(&geometricDrag, "geometric-drag", def.GeometricDragNormal, "use the geometric drag normal")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	fmt.Printf("=== Headless Creature Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d count=%d dt=%.4f geometric_drag=%t\n\n",
		runs, ticks, seedBase, seedStep, count, dt, geometricDrag)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runCreature(i+1, seed, ticks, func(p *softbody.Params) {
			p.Count = count
			p.DT = dt
			p.GeometricDragNormal = geometricDrag
		})
		all = append(all, stats)
		printRun(stats)
	}

	fmt.Println("=== Aggregate ===")
	printAggregate(all)
}

func runCreature(runIndex int, seed int64, ticks int, edit func(*softbody.Params)) runStats {
	rs := runStats{runIndex: runIndex, seed: seed}

	ts, err := softbody.NewTestSim(
		softbody.WithSeed(seed),
		softbody.WithParams(edit),
		softbody.WithReportEvery(softbody.TicksPerSecond),
	)
	if err != nil {
		rs.buildErr = err
		return rs
	}
	c := ts.Creature
	rs.points = c.PointCount()
	rs.springs = c.SpringCount()
	rs.chambers = c.ChamberCount()
	rs.external = len(c.ExternalEdges())
	relax := c.Relaxation()
	rs.relaxIterations = relax.Iterations
	rs.relaxConverged = relax.Converged

	rs.stepErr = ts.RunTicks(ticks)
	rs.ticksRun = c.Tick()
	if rs.stepErr == nil {
		// Capture the final state even when ticks is not a multiple of the report interval.
		if last := ts.Reporter.Latest(); last == nil || last.Tick != c.Tick() {
			ts.Reporter.Collect(c)
		}
	}
	summarizeHistory(&rs, ts.Reporter.History())
	rs.finite = c.Finite()
	rs.windowSummary = ts.Reporter.WindowSummary()
	return rs
}

// summarizeHistory folds every collected sample into rs.
func summarizeHistory(rs *runStats, hist []softbody.SimReport) {
	if len(hist) == 0 {
		return
	}
	rs.areaRatioLo = math.Inf(1)
	rs.areaRatioHi = math.Inf(-1)
	for _, h := range hist {
		rs.areaRatioLo = math.Min(rs.areaRatioLo, h.AreaRatioMin)
		rs.areaRatioHi = math.Max(rs.areaRatioHi, h.AreaRatioMax)
		rs.energyPeak = math.Max(rs.energyPeak, h.KineticEnergy)
		rs.maxSpeed = math.Max(rs.maxSpeed, h.MaxSpeed)
	}
	first, last := hist[0], hist[len(hist)-1]
	rs.energyFinal = last.KineticEnergy
	rs.drift = math.Hypot(last.Centroid.X-first.Centroid.X, last.Centroid.Y-first.Centroid.Y)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.buildErr != nil {
		fmt.Printf("build_failed: %s (%s)\n\n", rs.buildErr, failureKind(rs.buildErr))
		return
	}
	fmt.Printf("topology: points=%d springs=%d chambers=%d external=%d\n",
		rs.points, rs.springs, rs.chambers, rs.external)
	fmt.Printf("relaxation: iterations=%d converged=%t\n", rs.relaxIterations, rs.relaxConverged)
	fmt.Printf("area_ratio: lo=%.3f hi=%.3f\n", rs.areaRatioLo, rs.areaRatioHi)
	fmt.Printf("energy: final=%.2f peak=%.2f max_speed=%.2f centroid_drift=%.1f\n",
		rs.energyFinal, rs.energyPeak, rs.maxSpeed, rs.drift)
	fmt.Printf("ticks_run=%d finite=%t\n", rs.ticksRun, rs.finite)
	if rs.stepErr != nil {
		fmt.Printf("step_failed: %s (%s)\n", rs.stepErr, failureKind(rs.stepErr))
	}
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	var built, converged, finite int
	var driftSum, energySum float64
	failures := map[string]int{}
	for _, rs := range all {
		if rs.buildErr != nil {
			failures[failureKind(rs.buildErr)]++
			continue
		}
		built++
		if rs.relaxConverged {
			converged++
		}
		if rs.finite && rs.stepErr == nil {
			finite++
		}
		if rs.stepErr != nil {
			failures[failureKind(rs.stepErr)]++
		}
		driftSum += rs.drift
		energySum += rs.energyFinal
	}

	fmt.Printf("runs=%d built=%d relax_converged=%d stayed_finite=%d\n", len(all), built, converged, finite)
	fmt.Printf("avg_per_built_run: centroid_drift=%.1f final_energy=%.2f\n", avg(driftSum, built), avg(energySum, built))
	lo, hi := areaEnvelope(all)
	fmt.Printf("area_ratio_envelope: lo=%.3f hi=%.3f\n", lo, hi)
	fmt.Printf("failures: %s\n", joinCounts(failures))
}

// failureKind buckets an error by its sentinel cause.
func failureKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, softbody.ErrZeroLengthSpring):
		return "zero_length_spring"
	case errors.Is(err, softbody.ErrStateCorrupt):
		return "state_corrupt"
	case errors.Is(err, softbody.ErrOrphanSpring):
		return "orphan_spring"
	case errors.Is(err, softbody.ErrDegenerateChamber):
		return "degenerate_chamber"
	case errors.Is(err, softbody.ErrDegenerateInput):
		return "degenerate_input"
	default:
		return "other"
	}
}

// areaEnvelope returns the widest area-ratio range over built runs.
func areaEnvelope(all []runStats) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, rs := range all {
		if rs.buildErr != nil {
			continue
		}
		lo = math.Min(lo, rs.areaRatioLo)
		hi = math.Max(hi, rs.areaRatioHi)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

func avg(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}
