package softbody

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams_Valid(t *testing.T) {
	p := DefaultParams()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 15, p.Count)
	assert.Equal(t, 500.0, p.CenterX)
	assert.Equal(t, 300.0, p.CenterY)
	assert.InDelta(t, 1.0/30, p.DT, 1e-15)
	assert.False(t, p.GeometricDragNormal)
}

func TestParams_Validate(t *testing.T) {
	for _, tc := range []struct {
		name  string
		edit  func(*Params)
		inErr string
	}{
		{"too few points", func(p *Params) { p.Count = 2 }, "count 2"},
		{"negative hooke", func(p *Params) { p.Hooke = -1 }, "hooke"},
		{"negative drag", func(p *Params) { p.DragNormal = -0.5 }, "drag normal"},
		{"inverted amplitude", func(p *Params) { p.Amplitude = Range{Min: 2, Max: 1} }, "amplitude"},
		{"zero dt", func(p *Params) { p.DT = 0 }, "dt"},
		{"negative box", func(p *Params) { p.BoxRadius = -1 }, "box radius"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.edit(&p)
			err := p.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.inErr)
			}
		})
	}
}

func TestParams_CountErrorIsDegenerateInput(t *testing.T) {
	p := DefaultParams()
	p.Count = 1
	assert.ErrorIs(t, p.Validate(), ErrDegenerateInput)
}
