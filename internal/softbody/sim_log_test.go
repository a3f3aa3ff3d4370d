package softbody

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimLog_NilDiscards(t *testing.T) {
	var sl *SimLog
	sl.Add(1, "--", "relax", "timeout", "x", 0)
	sl.AddVerbose(1, "--", "step", "energy", "x", 0)
	assert.Equal(t, 0, sl.Len())
	assert.Empty(t, sl.Filter("", ""))
	assert.Equal(t, "", sl.Format())
}

func TestSimLog_FilterAndQuery(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(0, "--", "topology", "points", "15", 15)
	sl.Add(0, "C2", "chamber", "edge_mismatch", "4 cells, 3 springs", -1)
	sl.Add(7, "P3", "state", "corrupt", "position (NaN, 1)", 0)
	sl.AddVerbose(8, "--", "step", "energy", "1.0", 1)

	assert.Equal(t, 3, sl.Len())
	assert.Equal(t, 1, sl.CountCategory("state", "corrupt"))
	assert.Len(t, sl.FilterSubject("C2"), 1)
	assert.Len(t, sl.FilterTickRange(1, 10), 1)
	assert.True(t, sl.HasEntry("state", "", "NaN"))
	assert.False(t, sl.HasEntry("step", "energy", ""))

	last, ok := sl.LastOf("topology", "points")
	require.True(t, ok)
	assert.Equal(t, 15.0, last.NumVal)

	_, ok = sl.LastOf("relax", "timeout")
	assert.False(t, ok)

	assert.Equal(t, 3, strings.Count(sl.Format(), "\n"))
	assert.Contains(t, sl.FormatRange(7, 7), "corrupt")
}

func TestSimLog_VerboseRecordsEnergy(t *testing.T) {
	ts, err := NewTestSim(WithSeed(4), WithVerbose(true))
	require.NoError(t, err)
	require.NoError(t, ts.RunTicks(5))
	assert.Equal(t, 5, ts.SimLog.CountCategory("step", "energy"))
}

func TestSimLog_ConstructionEvents(t *testing.T) {
	ts, err := NewTestSim(WithSeed(21))
	require.NoError(t, err)

	pts, ok := ts.SimLog.LastOf("topology", "points")
	require.True(t, ok)
	assert.Equal(t, 15.0, pts.NumVal)
	chambers, ok := ts.SimLog.LastOf("topology", "chambers")
	require.True(t, ok)
	assert.Equal(t, float64(ts.Creature.ChamberCount()), chambers.NumVal)
	assert.True(t, ts.SimLog.HasEntry("relax", "", ""))

	summary := ts.SimLog.Summary(ts.Creature)
	assert.Contains(t, summary, "Points=15")
	assert.Contains(t, summary, "State errors: none")
}
