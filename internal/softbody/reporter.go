package softbody

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 30TPS).
const reportWindowTicks = 300

// --- Snapshot types ---

// SimReport is a full snapshot of one creature at one tick.
type SimReport struct {
	Tick int
	Time float64

	KineticEnergy float64
	MaxSpeed      float64

	// |signed volume| / initial volume across chambers.
	AreaRatioMin  float64
	AreaRatioMean float64
	AreaRatioMax  float64

	Centroid Vec2
	BoundsLo Vec2
	BoundsHi Vec2
}

// WindowReport aggregates the reports in one sliding window.
type WindowReport struct {
	FromTick    int
	ToTick      int
	SampleCount int

	AreaRatioLo   float64 // lowest per-sample minimum
	AreaRatioHi   float64 // highest per-sample maximum
	AreaRatioMean float64 // mean of per-sample means

	EnergyMin float64
	EnergyMax float64
	EnergyAvg float64

	CentroidDrift float64 // distance between first and last sample centroids
	MaxSpeed      float64
}

// --- Reporter ---

// SimReporter collects periodic reports from a creature and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect gathers a snapshot from the creature's current state.
func (r *SimReporter) Collect(c *Creature) {
	lo, mean, hi := c.AreaRatios()
	blo, bhi := c.Bounds()
	r.history = append(r.history, SimReport{
		Tick:          c.Tick(),
		Time:          c.Time(),
		KineticEnergy: c.KineticEnergy(),
		MaxSpeed:      c.MaxSpeed(),
		AreaRatioMin:  lo,
		AreaRatioMean: mean,
		AreaRatioMax:  hi,
		Centroid:      c.Centroid(),
		BoundsLo:      blo,
		BoundsHi:      bhi,
	})
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowSummary aggregates every report within windowTicks of the latest.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	start := len(r.history) - 1
	for start > 0 && r.history[start-1].Tick >= cutoff {
		start--
	}
	window := r.history[start:]

	wr := &WindowReport{
		FromTick:    window[0].Tick,
		ToTick:      latestTick,
		SampleCount: len(window),
		AreaRatioLo: math.Inf(1),
		AreaRatioHi: math.Inf(-1),
		EnergyMin:   math.Inf(1),
		EnergyMax:   math.Inf(-1),
	}
	for _, s := range window {
		wr.AreaRatioLo = math.Min(wr.AreaRatioLo, s.AreaRatioMin)
		wr.AreaRatioHi = math.Max(wr.AreaRatioHi, s.AreaRatioMax)
		wr.AreaRatioMean += s.AreaRatioMean
		wr.EnergyMin = math.Min(wr.EnergyMin, s.KineticEnergy)
		wr.EnergyMax = math.Max(wr.EnergyMax, s.KineticEnergy)
		wr.EnergyAvg += s.KineticEnergy
		wr.MaxSpeed = math.Max(wr.MaxSpeed, s.MaxSpeed)
	}
	n := float64(len(window))
	wr.AreaRatioMean /= n
	wr.EnergyAvg /= n
	first, last := window[0].Centroid, window[len(window)-1].Centroid
	wr.CentroidDrift = math.Hypot(last.X-first.X, last.Y-first.Y)
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Creature Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Chamber Area (|signed| / initial) ---\n")
	fmt.Fprintf(&sb, "  lo=%.3f  mean=%.3f  hi=%.3f  (%s)\n",
		wr.AreaRatioLo, wr.AreaRatioMean, wr.AreaRatioHi, pressureLabel(wr.AreaRatioMean))

	sb.WriteString("\n--- Motion ---\n")
	fmt.Fprintf(&sb, "  kinetic energy min=%.2f avg=%.2f max=%.2f\n", wr.EnergyMin, wr.EnergyAvg, wr.EnergyMax)
	fmt.Fprintf(&sb, "  centroid drift=%.1fpx  max speed=%.1fpx/s\n", wr.CentroidDrift, wr.MaxSpeed)
	return sb.String()
}

func pressureLabel(ratio float64) string {
	switch {
	case ratio < 0.5:
		return "collapsed"
	case ratio < 0.9:
		return "compressed"
	case ratio <= 1.1:
		return "holding"
	case ratio <= 2:
		return "inflated"
	default:
		return "blown out"
	}
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d (t=%.2fs) ---\n", rpt.Tick, rpt.Time)
	fmt.Fprintf(&sb, "area ratio min=%.3f mean=%.3f max=%.3f\n", rpt.AreaRatioMin, rpt.AreaRatioMean, rpt.AreaRatioMax)
	fmt.Fprintf(&sb, "energy=%.2f  max speed=%.1f\n", rpt.KineticEnergy, rpt.MaxSpeed)
	fmt.Fprintf(&sb, "centroid=(%.1f,%.1f)  bounds=(%.0f,%.0f)-(%.0f,%.0f)\n",
		rpt.Centroid.X, rpt.Centroid.Y, rpt.BoundsLo.X, rpt.BoundsLo.Y, rpt.BoundsHi.X, rpt.BoundsHi.Y)
	return sb.String()
}
