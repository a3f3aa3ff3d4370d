package softbody

import (
	"fmt"
	"math"
	"sort"
)

// Chamber is a closed polygon of point masses whose enclosed area is held
// near InitialVolume by a pressure force on its boundary springs.
type Chamber struct {
	Cells   []int // polygon vertices, ordered to trace the boundary
	Springs []int // boundary springs

	SignedVolume  float64 // refreshed every step
	InitialVolume float64 // |SignedVolume| at construction
	CX, CY        float64 // centroid, refreshed every step
}

func newChamber(points []PointMass, cells, springs []int) (Chamber, error) {
	ordered, err := orderCells(points, cells)
	if err != nil {
		return Chamber{}, err
	}
	c := Chamber{Cells: ordered, Springs: springs}
	c.SignedVolume = c.SignedArea(points)
	c.InitialVolume = math.Abs(c.SignedVolume)
	if c.InitialVolume == 0 {
		return Chamber{}, ErrDegenerateChamber
	}
	if c.CX, c.CY, err = c.Centroid(points); err != nil {
		return Chamber{}, err
	}
	return c, nil
}

// SignedArea is the shoelace sum over the ordered cells, wrapping around.
func (c *Chamber) SignedArea(points []PointMass) float64 {
	n := len(c.Cells)
	var sum float64
	for i := 0; i < n; i++ {
		p, q := &points[c.Cells[i]], &points[c.Cells[(i+1)%n]]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Centroid is the area-weighted polygon centroid using the cached
// SignedVolume as denominator.
func (c *Chamber) Centroid(points []PointMass) (float64, float64, error) {
	if c.SignedVolume == 0 {
		return 0, 0, ErrDegenerateChamber
	}
	n := len(c.Cells)
	var x, y float64
	for i := 0; i < n; i++ {
		p, q := &points[c.Cells[i]], &points[c.Cells[(i+1)%n]]
		cross := p.X*q.Y - q.X*p.Y
		x += (p.X + q.X) * cross
		y += (p.Y + q.Y) * cross
	}
	return x / (6 * c.SignedVolume), y / (6 * c.SignedVolume), nil
}

// refresh recomputes SignedVolume and the centroid from current positions.
func (c *Chamber) refresh(points []PointMass) error {
	c.SignedVolume = c.SignedArea(points)
	cx, cy, err := c.Centroid(points)
	if err != nil {
		return err
	}
	c.CX, c.CY = cx, cy
	return nil
}

// PressureMagnitude is positive when the chamber has shrunk below its
// initial area and negative when it has grown past it.
func PressureMagnitude(coefficient, signedVolume, initialVolume float64) float64 {
	return coefficient * (1 - math.Abs(signedVolume)/initialVolume)
}

// contains reports whether point i is one of the chamber's cells.
func (c *Chamber) contains(i int) bool {
	for _, cell := range c.Cells {
		if cell == i {
			return true
		}
	}
	return false
}

// orderCells splits the cells by the line through the leftmost and rightmost
// points and returns the points on or above it by ascending x followed by the
// points below it by descending x. Above means smaller y (screen space).
// The result traces a simple polygon for convex sets only.
func orderCells(points []PointMass, cells []int) ([]int, error) {
	if len(cells) < 3 {
		return nil, fmt.Errorf("%d cells: %w", len(cells), ErrDegenerateChamber)
	}
	lm, rm := cells[0], cells[0]
	for _, i := range cells[1:] {
		if points[i].X < points[lm].X {
			lm = i
		}
		if points[i].X > points[rm].X {
			rm = i
		}
	}
	l, r := &points[lm], &points[rm]
	if l.X == r.X {
		return nil, fmt.Errorf("vertical splitting line at x=%v: %w", l.X, ErrDegenerateChamber)
	}
	slope := (r.Y - l.Y) / (r.X - l.X)

	var above, below []int
	for _, i := range cells {
		// The line's own endpoints sit on it exactly; rounding must not move them.
		if i == lm || i == rm {
			above = append(above, i)
			continue
		}
		p := &points[i]
		offset := p.Y - (l.Y + slope*(p.X-l.X))
		if offset > 0 {
			below = append(below, i)
		} else {
			above = append(above, i)
		}
	}
	sort.SliceStable(above, func(a, b int) bool { return points[above[a]].X < points[above[b]].X })
	sort.SliceStable(below, func(a, b int) bool { return points[below[a]].X > points[below[b]].X })
	return append(above, below...), nil
}
