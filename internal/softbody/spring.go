package softbody

// Spring connects two point masses by index. RestLength is fixed at
// construction; the oscillating target length is derived from it each step.
type Spring struct {
	A, B       int
	MidX, MidY float64 // midpoint at construction, never refreshed
	RestLength float64
}

func newSpring(points []PointMass, a, b int) Spring {
	pa, pb := &points[a], &points[b]
	return Spring{
		A:          a,
		B:          b,
		MidX:       (pa.X + pb.X) / 2,
		MidY:       (pa.Y + pb.Y) / 2,
		RestLength: distance(pa, pb),
	}
}

// TargetLength is the rest length scaled by both endpoints' oscillations at t.
func (s *Spring) TargetLength(points []PointMass, t float64) float64 {
	a, b := &points[s.A], &points[s.B]
	return s.RestLength * (1 + a.oscillation(t) + b.oscillation(t))
}

// Length is the current endpoint distance.
func (s *Spring) Length(points []PointMass) float64 {
	return distance(&points[s.A], &points[s.B])
}

// HookeMagnitude is hooke × (target − current). Positive pushes the
// endpoints apart.
func (s *Spring) HookeMagnitude(points []PointMass, hooke, t float64) float64 {
	return hooke * (s.TargetLength(points, t) - s.Length(points))
}
