package softbody

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimReporter_Empty(t *testing.T) {
	r := NewSimReporter(0)
	assert.Nil(t, r.Latest())
	assert.Nil(t, r.WindowSummary())
	assert.Equal(t, "No data.\n", r.FormatLatest())
	assert.Equal(t, "No data collected yet.\n", r.WindowSummary().Format())
}

func TestSimReporter_CollectsEveryN(t *testing.T) {
	ts, err := NewTestSim(WithSeed(12), WithReportEvery(10))
	require.NoError(t, err)
	require.NoError(t, ts.RunTicks(100))

	hist := ts.Reporter.History()
	require.Len(t, hist, 11)
	assert.Equal(t, 0, hist[0].Tick)
	assert.Equal(t, 100, hist[10].Tick)

	first := hist[0]
	assert.Equal(t, 1.0, first.AreaRatioMin)
	assert.Equal(t, 1.0, first.AreaRatioMax)
	assert.Zero(t, first.KineticEnergy)

	wr := ts.Reporter.WindowSummary()
	require.NotNil(t, wr)
	assert.Equal(t, 11, wr.SampleCount)
	assert.Equal(t, 0, wr.FromTick)
	assert.LessOrEqual(t, wr.AreaRatioLo, wr.AreaRatioMean)
	assert.LessOrEqual(t, wr.AreaRatioMean, wr.AreaRatioHi)
	assert.LessOrEqual(t, wr.EnergyMin, wr.EnergyAvg)
	assert.Contains(t, wr.Format(), "Creature Report (T=0..100, 11 samples)")
	assert.Contains(t, ts.Reporter.FormatLatest(), "Snapshot T=100")
}

func TestSimReporter_WindowDropsOldSamples(t *testing.T) {
	ts, err := NewTestSim(WithSeed(12), WithReportEvery(50))
	require.NoError(t, err)
	ts.Reporter = NewSimReporter(100)
	ts.Reporter.Collect(ts.Creature)
	require.NoError(t, ts.RunTicks(300))

	wr := ts.Reporter.WindowSummary()
	require.NotNil(t, wr)
	assert.Equal(t, 200, wr.FromTick)
	assert.Equal(t, 300, wr.ToTick)
	assert.Equal(t, 3, wr.SampleCount)
}

func TestPressureLabel(t *testing.T) {
	assert.Equal(t, "collapsed", pressureLabel(0.2))
	assert.Equal(t, "compressed", pressureLabel(0.8))
	assert.Equal(t, "holding", pressureLabel(1.0))
	assert.Equal(t, "inflated", pressureLabel(1.5))
	assert.Equal(t, "blown out", pressureLabel(3))
}
