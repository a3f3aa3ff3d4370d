package softbody

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput means the point set has no triangulation
	// (fewer than three points, or all of them collinear).
	ErrDegenerateInput = errors.New("degenerate point set")
	// ErrOrphanSpring means a spring borders no chamber at all.
	ErrOrphanSpring = errors.New("spring borders no chamber")
	// ErrDegenerateChamber means a chamber encloses zero area.
	ErrDegenerateChamber = errors.New("chamber has zero area")
	// ErrStateCorrupt means a force, velocity or position went NaN or Inf.
	ErrStateCorrupt = errors.New("simulation state corrupt")
	// ErrZeroLengthSpring means both endpoints of a spring coincide.
	ErrZeroLengthSpring = errors.New("spring has zero length")
)

// TopologyError aborts creature construction.
type TopologyError struct {
	Op  string // placement, triangulate, chamber, classify
	Err error
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology %s: %v", e.Op, e.Err)
}

func (e *TopologyError) Unwrap() error { return e.Err }

// StateError reports a step that could not be completed.
type StateError struct {
	Tick    int
	Subject string // P3, S12, C4
	Err     error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("step T=%d %s: %v", e.Tick, e.Subject, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// Is lets every StateError match ErrStateCorrupt.
func (e *StateError) Is(target error) bool {
	return target == ErrStateCorrupt
}
