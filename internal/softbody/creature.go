package softbody

import (
	"fmt"
	"math"
	"math/rand"
)

// Creature owns every point mass and spring of one soft body. Chambers and
// the external edge list refer to them by index.
type Creature struct {
	points   []PointMass
	springs  []Spring
	chambers []Chamber
	external []int
	borders  []int

	relaxation Relaxation
	params     Params
	log        *SimLog

	time float64
	tick int
}

// CreateCreature builds a creature of count points scattered inside a box of
// half-width boxRadius around (cx, cy), seeded for reproducibility.
func CreateCreature(count int, cx, cy float64, boxRadius int, seed int64) (*Creature, error) {
	p := DefaultParams()
	p.Count = count
	p.CenterX, p.CenterY = cx, cy
	p.BoxRadius = boxRadius
	return NewCreature(p, rand.New(rand.NewSource(seed)), nil) // #nosec G404 -- simulation only
}

// NewCreature places, relaxes and triangulates p.Count points drawn from rng.
func NewCreature(p Params, rng *rand.Rand, log *SimLog) (*Creature, error) {
	if err := p.Validate(); err != nil {
		return nil, &TopologyError{Op: "placement", Err: err}
	}
	points := placePoints(p, rng)
	r := relax(points, p, rng)
	if r.Converged {
		log.Add(0, "--", "relax", "converged", fmt.Sprintf("%d sweeps", r.Iterations), float64(r.Iterations))
	} else {
		log.Add(0, "--", "relax", "timeout",
			fmt.Sprintf("min separation %.0f not reached after %d sweeps", p.MinSeparation, r.Iterations), float64(r.Iterations))
	}
	return assemble(points, r, p, log)
}

// NewCreatureFromPositions skips placement and relaxation and builds the
// topology over the given positions. Oscillation parameters still come
// from rng, one point at a time.
func NewCreatureFromPositions(positions []Vec2, p Params, rng *rand.Rand, log *SimLog) (*Creature, error) {
	p.Count = len(positions)
	if err := p.Validate(); err != nil {
		return nil, &TopologyError{Op: "placement", Err: err}
	}
	points := make([]PointMass, len(positions))
	for i, pos := range positions {
		points[i] = newPointMass(pos.X, pos.Y, p, rng)
	}
	return assemble(points, Relaxation{Converged: true}, p, log)
}

func assemble(points []PointMass, r Relaxation, p Params, log *SimLog) (*Creature, error) {
	triangles, err := triangulate(points)
	if err != nil {
		return nil, err
	}
	topo, err := buildTopology(points, triangles, log)
	if err != nil {
		return nil, err
	}
	log.Add(0, "--", "topology", "points", fmt.Sprintf("%d", len(points)), float64(len(points)))
	log.Add(0, "--", "topology", "springs", fmt.Sprintf("%d", len(topo.Springs)), float64(len(topo.Springs)))
	log.Add(0, "--", "topology", "chambers", fmt.Sprintf("%d", len(topo.Chambers)), float64(len(topo.Chambers)))
	log.Add(0, "--", "topology", "external", fmt.Sprintf("%d", len(topo.External)), float64(len(topo.External)))

	return &Creature{
		points:     points,
		springs:    topo.Springs,
		chambers:   topo.Chambers,
		external:   topo.External,
		borders:    topo.Borders,
		relaxation: r,
		params:     p,
		log:        log,
	}, nil
}

// Params returns the constants the creature was built with.
func (c *Creature) Params() Params { return c.params }

// Relaxation reports how the overlap pass ended.
func (c *Creature) Relaxation() Relaxation { return c.relaxation }

// Time is the cumulative simulated time in seconds.
func (c *Creature) Time() float64 { return c.time }

// Tick is the number of completed steps.
func (c *Creature) Tick() int { return c.tick }

// Log returns the creature's event log, possibly nil.
func (c *Creature) Log() *SimLog { return c.log }

func (c *Creature) PointCount() int   { return len(c.points) }
func (c *Creature) SpringCount() int  { return len(c.springs) }
func (c *Creature) ChamberCount() int { return len(c.chambers) }

// Point returns a copy of point mass i.
func (c *Creature) Point(i int) PointMass { return c.points[i] }

// Position returns the current position of point mass i.
func (c *Creature) Position(i int) Vec2 {
	return Vec2{X: c.points[i].X, Y: c.points[i].Y}
}

// Spring returns a copy of spring i.
func (c *Creature) Spring(i int) Spring { return c.springs[i] }

// SpringEndpoints returns the current endpoint positions of spring i and
// whether it lies on the body boundary.
func (c *Creature) SpringEndpoints(i int) (a, b Vec2, external bool) {
	s := &c.springs[i]
	return c.Position(s.A), c.Position(s.B), c.borders[i] == 1
}

// IsExternal reports whether spring i borders exactly one chamber.
func (c *Creature) IsExternal(i int) bool { return c.borders[i] == 1 }

// ExternalEdges returns the indices of the boundary springs.
func (c *Creature) ExternalEdges() []int {
	out := make([]int, len(c.external))
	copy(out, c.external)
	return out
}

// ChamberPolygon appends the ordered vertex positions of chamber i to dst.
func (c *Creature) ChamberPolygon(i int, dst []Vec2) []Vec2 {
	for _, cell := range c.chambers[i].Cells {
		dst = append(dst, c.Position(cell))
	}
	return dst
}

// ChamberCentroid returns the centroid computed during the last step
// (or at construction).
func (c *Creature) ChamberCentroid(i int) Vec2 {
	return Vec2{X: c.chambers[i].CX, Y: c.chambers[i].CY}
}

// ChamberVolumes returns the current signed and initial volume of chamber i.
func (c *Creature) ChamberVolumes(i int) (signed, initial float64) {
	return c.chambers[i].SignedVolume, c.chambers[i].InitialVolume
}

// Degree returns how many springs and chambers reference point i.
func (c *Creature) Degree(i int) (springs, chambers int) {
	for s := range c.springs {
		if c.springs[s].A == i || c.springs[s].B == i {
			springs++
		}
	}
	for ch := range c.chambers {
		if c.chambers[ch].contains(i) {
			chambers++
		}
	}
	return springs, chambers
}

// Nearest returns the point closest to (x, y) within radius, or -1.
func (c *Creature) Nearest(x, y, radius float64) int {
	best, bestD2 := -1, radius*radius
	for i := range c.points {
		dx, dy := c.points[i].X-x, c.points[i].Y-y
		if d2 := dx*dx + dy*dy; d2 <= bestD2 {
			best, bestD2 = i, d2
		}
	}
	return best
}

// KineticEnergy sums ½v² over all (unit) masses.
func (c *Creature) KineticEnergy() float64 {
	var e float64
	for i := range c.points {
		e += c.points[i].kineticEnergy()
	}
	return e
}

// Centroid is the mean point position.
func (c *Creature) Centroid() Vec2 {
	var x, y float64
	for i := range c.points {
		x += c.points[i].X
		y += c.points[i].Y
	}
	n := float64(len(c.points))
	return Vec2{X: x / n, Y: y / n}
}

// Bounds returns the axis-aligned bounding box of all points.
func (c *Creature) Bounds() (lo, hi Vec2) {
	lo = Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi = Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := range c.points {
		p := &c.points[i]
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// MaxSpeed is the largest point speed.
func (c *Creature) MaxSpeed() float64 {
	var m float64
	for i := range c.points {
		m = math.Max(m, math.Hypot(c.points[i].VX, c.points[i].VY))
	}
	return m
}

// AreaRatios returns min, mean and max of |signed|/initial over chambers.
func (c *Creature) AreaRatios() (lo, mean, hi float64) {
	if len(c.chambers) == 0 {
		return 0, 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := range c.chambers {
		ch := &c.chambers[i]
		r := math.Abs(ch.SignedVolume) / ch.InitialVolume
		lo, hi = math.Min(lo, r), math.Max(hi, r)
		mean += r
	}
	return lo, mean / float64(len(c.chambers)), hi
}

// Finite reports whether every position, velocity and force is finite.
func (c *Creature) Finite() bool {
	for i := range c.points {
		if !c.points[i].finite() {
			return false
		}
	}
	return true
}
