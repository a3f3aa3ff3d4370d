package softbody

import (
	"errors"
	"fmt"
	"math"
)

// Tank size; the default centre sits in the middle.
const (
	ScreenWidth  = 1000
	ScreenHeight = 600
)

// TicksPerSecond is the frame rate the default step size is tuned for.
const TicksPerSecond = 30

// Range is a closed interval [Min, Max] sampled uniformly.
type Range struct {
	Min float64
	Max float64
}

func (r Range) sample(rng randSource) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Params holds the construction and force-model constants of a creature.
type Params struct {
	Count     int     // number of point masses
	CenterX   float64 // placement centre
	CenterY   float64
	BoxRadius int // placement offsets are integers in [-BoxRadius, BoxRadius]

	MinSeparation      float64 // pairs at or below this distance get nudged
	RelaxJitter        int     // nudge offsets are integers in [-RelaxJitter, RelaxJitter]
	RelaxMaxIterations int

	Hooke          float64
	Damping        float64
	Pressure       float64
	DragTangential float64
	DragNormal     float64

	Amplitude Range
	Frequency Range
	Phase     Range

	DT float64 // step size drivers use by default

	// GeometricDragNormal replaces the literal drag normal, which collapses to
	// the zero vector, with the true perpendicular of each external spring.
	GeometricDragNormal bool
}

// DefaultParams returns the tuning the creature was designed around.
func DefaultParams() Params {
	return Params{
		Count:              15,
		CenterX:            ScreenWidth / 2,
		CenterY:            ScreenHeight / 2,
		BoxRadius:          200,
		MinSeparation:      40,
		RelaxJitter:        10,
		RelaxMaxIterations: 100000,
		Hooke:              4,
		Damping:            2,
		Pressure:           3,
		DragTangential:     5,
		DragNormal:         5,
		Amplitude:          Range{Min: 0.5, Max: 2},
		Frequency:          Range{Min: 1, Max: 10},
		Phase:              Range{Min: 0, Max: 2 * math.Pi},
		DT:                 1.0 / TicksPerSecond,
	}
}

// Validate reports every non-physical setting, joined.
func (p Params) Validate() error {
	var errs []error
	if p.Count < 3 {
		errs = append(errs, fmt.Errorf("count %d: %w", p.Count, ErrDegenerateInput))
	}
	if p.BoxRadius < 0 {
		errs = append(errs, fmt.Errorf("box radius %d is negative", p.BoxRadius))
	}
	if p.RelaxJitter < 0 || p.RelaxMaxIterations < 0 || p.MinSeparation < 0 {
		errs = append(errs, errors.New("relaxation settings must be non-negative"))
	}
	coefficients := []struct {
		name string
		v    float64
	}{
		{"hooke", p.Hooke},
		{"damping", p.Damping},
		{"pressure", p.Pressure},
		{"drag tangential", p.DragTangential},
		{"drag normal", p.DragNormal},
	}
	for _, c := range coefficients {
		if c.v < 0 || math.IsNaN(c.v) {
			errs = append(errs, fmt.Errorf("%s coefficient %v must be >= 0", c.name, c.v))
		}
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"amplitude", p.Amplitude},
		{"frequency", p.Frequency},
		{"phase", p.Phase},
	}
	for _, c := range ranges {
		if c.r.Max < c.r.Min {
			errs = append(errs, fmt.Errorf("%s range [%v, %v] is inverted", c.name, c.r.Min, c.r.Max))
		}
	}
	if !(p.DT > 0) {
		errs = append(errs, fmt.Errorf("dt %v must be > 0", p.DT))
	}
	return errors.Join(errs...)
}
