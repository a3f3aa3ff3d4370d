package softbody

import "math"

// Vec2 is a plain 2D coordinate handed to drawing code.
type Vec2 struct {
	X, Y float64
}

// PointMass is a unit-mass node. Its oscillation parameters drive the
// target length of every spring it belongs to.
type PointMass struct {
	X, Y   float64
	VX, VY float64
	FX, FY float64 // accumulator, zeroed at the start of every step

	Amplitude float64
	Frequency float64
	Phase     float64
}

// randSource is the subset of *rand.Rand the builder draws from.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

func newPointMass(x, y float64, p Params, rng randSource) PointMass {
	return PointMass{
		X:         x,
		Y:         y,
		Amplitude: p.Amplitude.sample(rng),
		Frequency: p.Frequency.sample(rng),
		Phase:     p.Phase.sample(rng),
	}
}

// oscillation is the point's contribution to a spring's length factor at time t.
func (pm *PointMass) oscillation(t float64) float64 {
	return pm.Amplitude * math.Sin(pm.Frequency*t+pm.Phase)
}

func (pm *PointMass) addForce(fx, fy float64) {
	pm.FX += fx
	pm.FY += fy
}

func (pm *PointMass) kineticEnergy() float64 {
	return 0.5 * (pm.VX*pm.VX + pm.VY*pm.VY)
}

func (pm *PointMass) finite() bool {
	for _, v := range [...]float64{pm.X, pm.Y, pm.VX, pm.VY, pm.FX, pm.FY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func distance(a, b *PointMass) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// sign returns 1, -1 or 0.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// randInt returns an integer drawn uniformly from [-r, r].
func randInt(rng randSource, r int) float64 {
	return float64(rng.Intn(2*r+1) - r)
}
