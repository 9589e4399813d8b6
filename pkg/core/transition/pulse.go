package transition

import (
	"math"
	"time"
)

// PulseFrame is a sampled pulse: a scale factor and an opacity.
type PulseFrame struct {
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
}

// Neutral leaves the element untouched.
var Neutral = PulseFrame{Scale: 1, Opacity: 1}

// Pulse oscillates scale and opacity while a property rests. At phase zero
// it sits at MinScale and MaxOpacity.
type Pulse struct {
	Period     time.Duration
	MinScale   float64
	MaxScale   float64
	MinOpacity float64
	MaxOpacity float64
}

// DefaultPulse grows to 115% and dims to 60% every 1.5s.
func DefaultPulse() *Pulse {
	return &Pulse{Period: 1500 * time.Millisecond, MinScale: 1, MaxScale: 1.15, MinOpacity: 0.6, MaxOpacity: 1}
}

// At samples the pulse at time t since it started.
func (p *Pulse) At(t time.Duration) PulseFrame {
	if p.Period <= 0 {
		return Neutral
	}
	phase := 2 * math.Pi * float64(t%p.Period) / float64(p.Period)
	s := (1 - math.Cos(phase)) / 2
	return PulseFrame{
		Scale:   p.MinScale + (p.MaxScale-p.MinScale)*s,
		Opacity: p.MaxOpacity - (p.MaxOpacity-p.MinOpacity)*s,
	}
}
