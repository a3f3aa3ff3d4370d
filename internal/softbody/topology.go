package softbody

import (
	"fmt"

	"github.com/fogleman/delaunay"
)

// Relaxation records how the overlap pass ended.
type Relaxation struct {
	Iterations int
	Converged  bool // false when the iteration cap was hit first
}

// Topology is the connectivity derived from a relaxed point set.
type Topology struct {
	Springs  []Spring
	Chambers []Chamber
	External []int // indices into Springs bordering exactly one chamber
	Borders  []int // per spring, number of chambers containing both endpoints
}

// placePoints scatters p.Count masses around the centre with integer offsets.
func placePoints(p Params, rng randSource) []PointMass {
	points := make([]PointMass, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		x := p.CenterX + randInt(rng, p.BoxRadius)
		y := p.CenterY + randInt(rng, p.BoxRadius)
		points = append(points, newPointMass(x, y, p, rng))
	}
	return points
}

// relax nudges every point that sits within MinSeparation of another,
// sweeping all ordered pairs until a sweep finds no violation or the cap is
// reached. Points move as soon as a violation is seen, so later pairs in the
// same sweep see the nudged position.
func relax(points []PointMass, p Params, rng randSource) Relaxation {
	var r Relaxation
	for {
		r.Iterations++
		found := false
		for i := range points {
			for j := range points {
				if i == j || distance(&points[i], &points[j]) > p.MinSeparation {
					continue
				}
				points[i].X += randInt(rng, p.RelaxJitter)
				points[i].Y += randInt(rng, p.RelaxJitter)
				found = true
			}
		}
		if !found {
			r.Converged = true
			return r
		}
		if r.Iterations >= p.RelaxMaxIterations {
			return r
		}
	}
}

// triangulate returns vertex index triples, three per triangle.
func triangulate(points []PointMass) ([]int, error) {
	if len(points) < 3 {
		return nil, &TopologyError{Op: "triangulate", Err: fmt.Errorf("%d points: %w", len(points), ErrDegenerateInput)}
	}
	if !spansPlane(points) {
		return nil, &TopologyError{Op: "triangulate", Err: fmt.Errorf("all %d points collinear: %w", len(points), ErrDegenerateInput)}
	}
	pts := make([]delaunay.Point, len(points))
	for i := range points {
		pts[i] = delaunay.Point{X: points[i].X, Y: points[i].Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, &TopologyError{Op: "triangulate", Err: fmt.Errorf("%v: %w", err, ErrDegenerateInput)}
	}
	if len(tri.Triangles) == 0 {
		return nil, &TopologyError{Op: "triangulate", Err: ErrDegenerateInput}
	}
	return tri.Triangles, nil
}

// spansPlane reports whether at least three of the points are not collinear.
func spansPlane(points []PointMass) bool {
	p0 := &points[0]
	var p1 *PointMass
	for i := 1; i < len(points); i++ {
		if points[i].X != p0.X || points[i].Y != p0.Y {
			p1 = &points[i]
			break
		}
	}
	if p1 == nil {
		return false
	}
	for i := range points {
		q := &points[i]
		if (p1.X-p0.X)*(q.Y-p0.Y)-(p1.Y-p0.Y)*(q.X-p0.X) != 0 {
			return true
		}
	}
	return false
}

// buildTopology turns triangles into springs and chambers. Every triangle
// gets its own three springs; shared edges are not deduplicated.
func buildTopology(points []PointMass, triangles []int, log *SimLog) (*Topology, error) {
	topo := &Topology{
		Springs:  make([]Spring, 0, len(triangles)),
		Chambers: make([]Chamber, 0, len(triangles)/3),
	}
	for t := 0; t+2 < len(triangles); t += 3 {
		v0, v1, v2 := triangles[t], triangles[t+1], triangles[t+2]
		first := len(topo.Springs)
		topo.Springs = append(topo.Springs,
			newSpring(points, v0, v1),
			newSpring(points, v2, v1),
			newSpring(points, v0, v2),
		)
		cells := []int{v0, v1, v2}
		springs := []int{first, first + 1, first + 2}
		ch, err := newChamber(points, cells, springs)
		if err != nil {
			return nil, &TopologyError{Op: "chamber", Err: fmt.Errorf("C%d: %w", len(topo.Chambers), err)}
		}
		if len(ch.Cells) != len(ch.Springs) {
			log.Add(0, chamberLabel(len(topo.Chambers)), "chamber", "edge_mismatch",
				fmt.Sprintf("%d cells, %d springs", len(ch.Cells), len(ch.Springs)), float64(len(ch.Springs)-len(ch.Cells)))
		}
		topo.Chambers = append(topo.Chambers, ch)
	}

	if err := topo.classify(); err != nil {
		return nil, err
	}
	return topo, nil
}

// classify counts, for every spring, the chambers holding both endpoints as
// cells. One means boundary, two means interior, zero is a broken topology.
func (topo *Topology) classify() error {
	topo.Borders = make([]int, len(topo.Springs))
	topo.External = topo.External[:0]
	for i := range topo.Springs {
		s := &topo.Springs[i]
		for c := range topo.Chambers {
			if topo.Chambers[c].contains(s.A) && topo.Chambers[c].contains(s.B) {
				topo.Borders[i]++
			}
		}
		switch topo.Borders[i] {
		case 0:
			return &TopologyError{Op: "classify", Err: fmt.Errorf("%s: %w", springLabel(i), ErrOrphanSpring)}
		case 1:
			topo.External = append(topo.External, i)
		}
	}
	return nil
}
