package softbody

import (
	"errors"
	"fmt"
)

// Simulator advances a Creature one step at a time. Stages run in a fixed
// order over index-ordered collections, so a seeded creature stepped with
// the same dt sequence reproduces bit for bit.
type Simulator struct {
	Params Params
	Log    *SimLog
}

// NewSimulator returns a simulator using the creature's own parameters and log.
func NewSimulator(c *Creature) *Simulator {
	return &Simulator{Params: c.params, Log: c.log}
}

// Step advances c by dt using the creature's own parameters.
func Step(c *Creature, dt float64) error {
	return NewSimulator(c).Step(c, dt)
}

// Step runs one pass: reset, springs, pressure, drag, integration. The clock
// is read before the pass and advanced by dt only when the pass succeeds.
func (s *Simulator) Step(c *Creature, dt float64) error {
	t := c.time
	pts := c.points

	for i := range pts {
		pts[i].FX, pts[i].FY = 0, 0
	}
	if err := s.applySprings(c, t); err != nil {
		return s.fail(err)
	}
	if err := s.applyPressure(c); err != nil {
		return s.fail(err)
	}
	s.applyDrag(c)

	for i := range pts {
		if !pts[i].finite() {
			return s.fail(&StateError{Tick: c.tick, Subject: pointLabel(i), Err: fmt.Errorf("force (%v, %v)", pts[i].FX, pts[i].FY)})
		}
	}
	integrate(pts, dt)
	for i := range pts {
		if !pts[i].finite() {
			return s.fail(&StateError{Tick: c.tick, Subject: pointLabel(i), Err: fmt.Errorf("position (%v, %v) velocity (%v, %v)", pts[i].X, pts[i].Y, pts[i].VX, pts[i].VY)})
		}
	}

	c.tick++
	c.time += dt
	s.Log.AddVerbose(c.tick, "--", "step", "energy", fmt.Sprintf("%.3f", c.KineticEnergy()), c.KineticEnergy())
	return nil
}

func (s *Simulator) fail(err error) error {
	var se *StateError
	if errors.As(err, &se) {
		s.Log.Add(se.Tick, se.Subject, "state", "corrupt", se.Err.Error(), 0)
	}
	return err
}

// applySprings adds the Hookean force along each spring plus per-endpoint
// damping against that endpoint's own velocity.
func (s *Simulator) applySprings(c *Creature, t float64) error {
	pts := c.points
	for i := range c.springs {
		sp := &c.springs[i]
		a, b := &pts[sp.A], &pts[sp.B]
		length := distance(a, b)
		if length == 0 {
			return &StateError{Tick: c.tick, Subject: springLabel(i), Err: ErrZeroLengthSpring}
		}
		mag := s.Params.Hooke * (sp.TargetLength(pts, t) - length)
		dx, dy := (a.X-b.X)/length, (a.Y-b.Y)/length
		a.addForce(dx*mag-s.Params.Damping*a.VX, dy*mag-s.Params.Damping*a.VY)
		b.addForce(-dx*mag-s.Params.Damping*b.VX, -dy*mag-s.Params.Damping*b.VY)
	}
	return nil
}

// applyPressure pushes each chamber's boundary springs outward while it is
// smaller than its initial area and inward while it is larger.
func (s *Simulator) applyPressure(c *Creature) error {
	pts := c.points
	for ci := range c.chambers {
		ch := &c.chambers[ci]
		if err := ch.refresh(pts); err != nil {
			return &StateError{Tick: c.tick, Subject: chamberLabel(ci), Err: err}
		}
		mag := PressureMagnitude(s.Params.Pressure, ch.SignedVolume, ch.InitialVolume)
		for _, si := range ch.Springs {
			sp := &c.springs[si]
			a, b := &pts[sp.A], &pts[sp.B]
			nx, ny := inwardNormal(sp, a, b, ch.CX, ch.CY)
			a.addForce(-nx*mag*0.5, -ny*mag*0.5)
			b.addForce(-nx*mag*0.5, -ny*mag*0.5)
		}
	}
	return nil
}

// inwardNormal picks whichever perpendicular of the spring, added to its
// construction-time midpoint, lands closer to the chamber centroid. The
// result is not normalised; its length is the spring's current length.
func inwardNormal(sp *Spring, a, b *PointMass, cx, cy float64) (float64, float64) {
	x1, y1 := -(b.Y - a.Y), b.X-a.X
	x2, y2 := -x1, -y1
	d1 := sq(sp.MidX+x1-cx) + sq(sp.MidY+y1-cy)
	d2 := sq(sp.MidX+x2-cx) + sq(sp.MidY+y2-cy)
	if d1 < d2 {
		return x1, y1
	}
	return x2, y2
}

// applyDrag resists boundary motion quadratically along the drag normal and
// tangent of every external spring.
func (s *Simulator) applyDrag(c *Creature) {
	pts := c.points
	for _, si := range c.external {
		sp := &c.springs[si]
		a, b := &pts[sp.A], &pts[sp.B]
		dist := distance(a, b)

		var nx, ny, scale float64
		if s.Params.GeometricDragNormal {
			nx, ny = -(b.Y-a.Y)/dist, (b.X-a.X)/dist
			scale = 0.5
		} else {
			nx, ny = literalDragNormal(a, b)
			scale = 1 / (dist * 2)
		}
		tx, ty := ny, -nx

		vx, vy := (a.VX+b.VX)/2, (a.VY+b.VY)/2
		vn := vx*nx + vy*ny
		vt := vx*tx + vy*ty
		tMag := s.Params.DragTangential * sign(vt) * vt * vt
		nMag := s.Params.DragNormal * sign(vn) * vn * vn

		fx := -(tMag*tx + nMag*nx) * scale
		fy := -(tMag*ty + nMag*ny) * scale
		a.addForce(fx, fy)
		b.addForce(fx, fy)
	}
}

// literalDragNormal is the creature's historical drag normal. It reads only
// a.Y against itself and b.X against itself, so it is the zero vector for
// any finite endpoints and the default drag contributes no force.
func literalDragNormal(a, b *PointMass) (float64, float64) {
	ay, bx := a.Y, b.X
	return -(ay - a.Y), bx - b.X
}

// integrate applies v += F·dt and x += F·½dt². Position advances from the
// force alone, not from the updated velocity.
func integrate(pts []PointMass, dt float64) {
	half := 0.5 * dt * dt
	for i := range pts {
		p := &pts[i]
		p.VX += p.FX * dt
		p.VY += p.FY * dt
		p.X += p.FX * half
		p.Y += p.FY * half
	}
}

func sq(v float64) float64 { return v * v }
