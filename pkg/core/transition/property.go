package transition

import (
	"time"
)

// Interpolator blends a toward b by t. t may leave [0,1] for curves that
// overshoot.
type Interpolator[T any] func(a, b T, t float64) T

// State is the phase of a [Property].
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// AnimatedValue is the observable record of a property: the target it left,
// the target it moves to and the normalized time elapsed.
type AnimatedValue[T any] struct {
	PreviousTarget T       `json:"previous"`
	CurrentTarget  T       `json:"current"`
	Progress       float64 `json:"progress"`
}

// Property animates one value between successive targets.
//
// Setting a new target while animating restarts from the value sampled at
// that moment, so retargeting never jumps.
type Property[T comparable] struct {
	curve    Curve
	duration time.Duration
	disabled bool
	interp   Interpolator[T]

	value   AnimatedValue[T]
	elapsed time.Duration
	state   State

	pulse      *Pulse
	pulseClock time.Duration
}

// NewProperty returns an idle property resting at v. An invalid spec falls
// back to [DefaultTiming]; call [Spec.Validate] first to surface the error.
func NewProperty[T comparable](spec Spec, interp Interpolator[T], v T) *Property[T] {
	curve, d, err := spec.Resolve()
	if err != nil {
		curve, d, _ = DefaultTiming().Resolve()
	}
	return &Property[T]{
		curve:    curve,
		duration: d,
		disabled: spec.Disabled,
		interp:   interp,
		value:    AnimatedValue[T]{PreviousTarget: v, CurrentTarget: v, Progress: 1},
	}
}

// New returns a constructor for properties that start at previous and
// animate toward target.
func New[T comparable](spec Spec, interp Interpolator[T]) func(target, previous T) *Property[T] {
	return func(target, previous T) *Property[T] {
		p := NewProperty(spec, interp, previous)
		p.SetTarget(target)
		return p
	}
}

// SetTarget moves the property toward v. It is a no-op when v is already
// the target.
func (p *Property[T]) SetTarget(v T) {
	if v == p.value.CurrentTarget {
		return
	}
	from := p.Value()
	if p.disabled || p.duration <= 0 {
		p.value = AnimatedValue[T]{PreviousTarget: v, CurrentTarget: v, Progress: 1}
		p.state = Idle
		return
	}
	p.value = AnimatedValue[T]{PreviousTarget: from, CurrentTarget: v}
	p.elapsed = 0
	p.state = Animating
	p.pulseClock = 0
}

// Tick advances the property by dt and reports whether it is still
// animating.
func (p *Property[T]) Tick(dt time.Duration) bool {
	if dt < 0 {
		dt = 0
	}
	if p.state == Idle {
		p.pulseClock += dt
		return false
	}
	p.elapsed += dt
	if p.elapsed >= p.duration {
		p.value = AnimatedValue[T]{PreviousTarget: p.value.CurrentTarget, CurrentTarget: p.value.CurrentTarget, Progress: 1}
		p.state = Idle
		return false
	}
	p.value.Progress = float64(p.elapsed) / float64(p.duration)
	return true
}

// Value samples the property.
func (p *Property[T]) Value() T {
	if p.state == Idle {
		return p.value.CurrentTarget
	}
	return p.interp(p.value.PreviousTarget, p.value.CurrentTarget, p.curve(p.value.Progress))
}

// Target returns the value the property moves toward.
func (p *Property[T]) Target() T { return p.value.CurrentTarget }

// State returns the current phase.
func (p *Property[T]) State() State { return p.state }

// Animating reports whether the property is in flight.
func (p *Property[T]) Animating() bool { return p.state == Animating }

// Snapshot returns a copy of the animated value record.
func (p *Property[T]) Snapshot() AnimatedValue[T] { return p.value }

// Duration returns the length of a full transition.
func (p *Property[T]) Duration() time.Duration { return p.duration }

// SetPulse attaches an idle pulse. A nil pulse removes it.
func (p *Property[T]) SetPulse(pulse *Pulse) {
	p.pulse = pulse
	p.pulseClock = 0
}

// Pulse samples the idle pulse. While animating, and when no pulse is
// attached, it returns [Neutral].
func (p *Property[T]) Pulse() PulseFrame {
	if p.pulse == nil || p.state == Animating {
		return Neutral
	}
	return p.pulse.At(p.pulseClock)
}
