package pipeline

import (
	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// TickRequest describes one standalone axis: a scale and its tick
// constraints. Domain and Range are [min, max] and [start, end] pairs; band
// scales take their domain from Categories.
type TickRequest struct {
	Scale      string     `json:"scale,omitempty"`
	Domain     [2]float64 `json:"domain"`
	Range      [2]float64 `json:"range"`
	Base       float64    `json:"base,omitempty"`
	Categories []string   `json:"categories,omitempty"`

	PaddingInner float64 `json:"padding_inner,omitempty"`
	PaddingOuter float64 `json:"padding_outer,omitempty"`

	Ticks    []float64 `json:"ticks,omitempty"`
	Count    int       `json:"count,omitempty"`
	Interval float64   `json:"interval,omitempty"`
	MinStep  float64   `json:"min_step,omitempty"`
	MaxStep  float64   `json:"max_step,omitempty"`
	Nice     bool      `json:"nice,omitempty"`
}

// NewScale builds the scale the request describes.
func (r TickRequest) NewScale() (scale.Scale, error) {
	kind, ok := scale.ParseKind(r.Scale)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScale, "unknown scale %q (want linear, log or band)", r.Scale)
	}
	rng := scale.Range{Start: r.Range[0], End: r.Range[1]}
	d := scale.Domain{Min: r.Domain[0], Max: r.Domain[1]}
	switch kind {
	case scale.KindBand:
		return scale.NewBand(r.Categories, rng,
			scale.WithPaddingInner(r.PaddingInner), scale.WithPaddingOuter(r.PaddingOuter))
	case scale.KindLog:
		return scale.NewLog(d, rng, r.Base)
	default:
		if r.Nice {
			d = axis.NiceDomain(d, r.constraints().Count)
		}
		return scale.NewLinear(d, rng)
	}
}

func (r TickRequest) constraints() axis.Constraints {
	count := r.Count
	if count <= 0 {
		count = axis.DefaultCount
	}
	return axis.Constraints{
		Ticks:    r.Ticks,
		Count:    count,
		Interval: r.Interval,
		MinStep:  r.MinStep,
		MaxStep:  r.MaxStep,
		Nice:     r.Nice,
	}
}

// PlanTicks builds the requested scale and plans its ticks.
func PlanTicks(r TickRequest) ([]axis.Tick, error) {
	s, err := r.NewScale()
	if err != nil {
		return nil, err
	}
	ticks := axis.Plan(s, r.constraints())
	if ticks == nil {
		ticks = []axis.Tick{}
	}
	return ticks, nil
}
