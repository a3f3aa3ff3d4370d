package softbody

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCreature_Defaults(t *testing.T) {
	c, err := CreateCreature(15, 500, 300, 200, 42)
	require.NoError(t, err)

	assert.Equal(t, 15, c.PointCount())
	assert.Positive(t, c.ChamberCount())
	assert.Equal(t, 3*c.ChamberCount(), c.SpringCount())
	assert.NotEmpty(t, c.ExternalEdges())
	checkExternalEdges(t, c)
}

func TestPlacePoints_WithinBoxOnIntegerOffsets(t *testing.T) {
	p := DefaultParams()
	p.Count = 40
	rng := rand.New(rand.NewSource(3))
	pts := placePoints(p, rng)
	require.Len(t, pts, 40)
	for i, pm := range pts {
		dx, dy := pm.X-p.CenterX, pm.Y-p.CenterY
		assert.LessOrEqualf(t, math.Abs(dx), float64(p.BoxRadius), "P%d", i)
		assert.LessOrEqualf(t, math.Abs(dy), float64(p.BoxRadius), "P%d", i)
		assert.Equalf(t, float64(int(dx)), dx, "P%d x offset not integral", i)

		assert.GreaterOrEqual(t, pm.Amplitude, 0.5)
		assert.LessOrEqual(t, pm.Amplitude, 2.0)
		assert.GreaterOrEqual(t, pm.Frequency, 1.0)
		assert.LessOrEqual(t, pm.Frequency, 10.0)
		assert.GreaterOrEqual(t, pm.Phase, 0.0)
	}
}

func TestRelax_ConvergedSetHasMinimumSeparation(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(17))
	pts := placePoints(p, rng)
	r := relax(pts, p, rng)
	require.True(t, r.Converged, "relaxation capped after %d sweeps", r.Iterations)

	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			assert.Greaterf(t, distance(&pts[i], &pts[j]), p.MinSeparation, "P%d-P%d", i, j)
		}
	}
}

func TestRelax_SeparatedInputNeedsOneSweep(t *testing.T) {
	pts := pointsAt(Vec2{0, 0}, Vec2{100, 0}, Vec2{0, 100})
	r := relax(pts, DefaultParams(), rand.New(rand.NewSource(1)))
	assert.Equal(t, Relaxation{Iterations: 1, Converged: true}, r)
}

func TestRelax_CapFailsOpen(t *testing.T) {
	p := DefaultParams()
	p.RelaxJitter = 0
	p.RelaxMaxIterations = 5
	pts := pointsAt(Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 100})

	r := relax(pts, p, rand.New(rand.NewSource(1)))
	assert.Equal(t, Relaxation{Iterations: 5, Converged: false}, r)
}

func TestAssemble_ProceedsAfterRelaxTimeout(t *testing.T) {
	p := DefaultParams()
	p.Count = 4
	p.RelaxJitter = 0
	p.RelaxMaxIterations = 3
	positions := []Vec2{{0, 0}, {10, 0}, {200, 20}, {100, 150}}

	pts := make([]PointMass, len(positions))
	for i, v := range positions {
		pts[i] = newPointMass(v.X, v.Y, p, rand.New(rand.NewSource(int64(i))))
	}
	r := relax(pts, p, rand.New(rand.NewSource(1)))
	require.False(t, r.Converged)

	c, err := assemble(pts, r, p, NewSimLog(false))
	require.NoError(t, err)
	assert.False(t, c.Relaxation().Converged)
	assert.Equal(t, 3, c.Relaxation().Iterations)
}

func TestNewCreature_CoincidentCloudFails(t *testing.T) {
	p := DefaultParams()
	p.BoxRadius = 0
	p.RelaxJitter = 0
	p.RelaxMaxIterations = 3
	log := NewSimLog(false)

	_, err := NewCreature(p, rand.New(rand.NewSource(1)), log)
	require.Error(t, err)
	var te *TopologyError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "triangulate", te.Op)
	assert.ErrorIs(t, err, ErrDegenerateInput)
	assert.True(t, log.HasEntry("relax", "timeout", ""))
}

func TestNewCreatureFromPositions_Degenerate(t *testing.T) {
	for _, tc := range []struct {
		name string
		pos  []Vec2
	}{
		{"two points", []Vec2{{0, 0}, {10, 0}}},
		{"collinear", []Vec2{{0, 0}, {10, 10}, {20, 20}}},
		{"collinear four", []Vec2{{0, 5}, {10, 5}, {20, 5}, {40, 5}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCreatureFromPositions(tc.pos, DefaultParams(), rand.New(rand.NewSource(1)), nil)
			require.Error(t, err)
			var te *TopologyError
			assert.ErrorAs(t, err, &te)
			assert.ErrorIs(t, err, ErrDegenerateInput)
		})
	}
}

func TestBuildTopology_SquareHasOneInteriorPair(t *testing.T) {
	c := buildFromPositions(t, DefaultParams(), Vec2{0, 0}, Vec2{100, 0}, Vec2{100, 90}, Vec2{0, 110})
	require.Equal(t, 2, c.ChamberCount())
	require.Equal(t, 6, c.SpringCount())

	interior := 0
	for i := range c.springs {
		if !c.IsExternal(i) {
			interior++
		}
	}
	// The shared diagonal appears once per triangle.
	assert.Equal(t, 2, interior)
	assert.Len(t, c.ExternalEdges(), 4)
	checkExternalEdges(t, c)
}

func TestClassify_OrphanSpringIsTopologyError(t *testing.T) {
	pts := pointsAt(Vec2{0, 0}, Vec2{60, 0}, Vec2{0, 60}, Vec2{300, 300})
	ch, err := newChamber(pts, []int{0, 1, 2}, []int{0, 1, 2})
	require.NoError(t, err)
	topo := &Topology{
		Springs: []Spring{
			newSpring(pts, 0, 1), newSpring(pts, 2, 1), newSpring(pts, 0, 2),
			newSpring(pts, 2, 3),
		},
		Chambers: []Chamber{ch},
	}

	err = topo.classify()
	assert.ErrorIs(t, err, ErrOrphanSpring)
	var te *TopologyError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "classify", te.Op)
}

func TestCreature_Accessors(t *testing.T) {
	c := buildFromPositions(t, DefaultParams(), Vec2{0, 0}, Vec2{60, 0}, Vec2{0, 60})

	poly := c.ChamberPolygon(0, nil)
	assert.Len(t, poly, 3)
	assert.ElementsMatch(t, []Vec2{{0, 0}, {60, 0}, {0, 60}}, poly)
	assert.Equal(t, Vec2{20, 20}, c.ChamberCentroid(0))

	a, b, ext := c.SpringEndpoints(0)
	assert.True(t, ext)
	assert.NotEqual(t, a, b)

	springs, chambers := c.Degree(0)
	assert.Equal(t, 2, springs)
	assert.Equal(t, 1, chambers)

	assert.Equal(t, -1, c.Nearest(500, 500, 10))
	lo, hi := c.Bounds()
	assert.Equal(t, Vec2{0, 0}, lo)
	assert.Equal(t, Vec2{60, 60}, hi)
}
