package transition

import (
	"time"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Type selects the driver of a transition.
type Type string

const (
	// Timing runs for a fixed duration along an easing curve.
	Timing Type = "timing"
	// Spring follows a damped harmonic oscillator; its duration is the time
	// the oscillator needs to settle.
	Spring Type = "spring"
)

// Duration is a time.Duration that reads and writes as "300ms" in config
// files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTransition, err, "invalid duration %q", b)
	}
	*d = Duration(v)
	return nil
}

// Spec configures how a property moves between targets.
type Spec struct {
	Type     Type     `json:"type,omitempty" toml:"type" yaml:"type,omitempty"`
	Duration Duration `json:"duration,omitempty" toml:"duration" yaml:"duration,omitempty"`
	Easing   string   `json:"easing,omitempty" toml:"easing" yaml:"easing,omitempty"`

	Stiffness float64 `json:"stiffness,omitempty" toml:"stiffness" yaml:"stiffness,omitempty"`
	Damping   float64 `json:"damping,omitempty" toml:"damping" yaml:"damping,omitempty"`
	Mass      float64 `json:"mass,omitempty" toml:"mass" yaml:"mass,omitempty"`

	// Disabled snaps every change to its target.
	Disabled bool `json:"disabled,omitempty" toml:"disabled" yaml:"disabled,omitempty"`
}

const (
	DefaultDuration  = 300 * time.Millisecond
	DefaultEasing    = "ease-in-out"
	DefaultStiffness = 170
	DefaultDamping   = 26
	DefaultMass      = 1
)

// DefaultTiming returns a 300ms ease-in-out timing transition.
func DefaultTiming() Spec {
	return Spec{Type: Timing, Duration: Duration(DefaultDuration), Easing: DefaultEasing}
}

// DefaultSpring returns a spring with stiffness 170, damping 26 and unit mass.
func DefaultSpring() Spec {
	return Spec{Type: Spring, Stiffness: DefaultStiffness, Damping: DefaultDamping, Mass: DefaultMass}
}

// withDefaults fills unset fields. An empty type means timing.
func (s Spec) withDefaults() Spec {
	if s.Type == "" {
		s.Type = Timing
	}
	switch s.Type {
	case Timing:
		if s.Easing == "" {
			s.Easing = DefaultEasing
		}
	case Spring:
		if s.Mass == 0 {
			s.Mass = DefaultMass
		}
	}
	return s
}

// Validate checks the spec. A zero timing duration is valid and snaps.
func (s Spec) Validate() error {
	s = s.withDefaults()
	switch s.Type {
	case Timing:
		if s.Duration < 0 {
			return errors.New(errors.ErrCodeInvalidTransition, "duration must be non-negative, got %s", time.Duration(s.Duration))
		}
		if _, err := ParseEasing(s.Easing); err != nil {
			return err
		}
	case Spring:
		if s.Stiffness <= 0 || s.Damping <= 0 || s.Mass <= 0 {
			return errors.New(errors.ErrCodeInvalidTransition,
				"spring needs positive stiffness, damping and mass, got %g/%g/%g", s.Stiffness, s.Damping, s.Mass)
		}
	default:
		return errors.New(errors.ErrCodeInvalidTransition, "unknown transition type %q (want timing or spring)", s.Type)
	}
	return nil
}

// Resolve validates the spec and returns its curve and total duration.
func (s Spec) Resolve() (Curve, time.Duration, error) {
	if err := s.Validate(); err != nil {
		return nil, 0, err
	}
	s = s.withDefaults()
	if s.Type == Spring {
		sp := spring{k: s.Stiffness, c: s.Damping, m: s.Mass}
		d := sp.settle()
		return sp.curve(d), d, nil
	}
	c, _ := ParseEasing(s.Easing)
	return c, time.Duration(s.Duration), nil
}
