package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
)

func TestPlanTicks(t *testing.T) {
	tests := []struct {
		name   string
		req    TickRequest
		values []float64
		labels []string
	}{
		{
			name:   "linear",
			req:    TickRequest{Domain: [2]float64{0, 100}, Range: [2]float64{0, 500}, Count: 5},
			values: []float64{0, 20, 40, 60, 80, 100},
		},
		{
			name:   "nice extends",
			req:    TickRequest{Domain: [2]float64{0, 97}, Range: [2]float64{0, 500}, Count: 5, Nice: true},
			values: []float64{0, 20, 40, 60, 80, 100},
		},
		{
			name:   "explicit",
			req:    TickRequest{Domain: [2]float64{0, 100}, Range: [2]float64{0, 500}, Ticks: []float64{25, 75}},
			values: []float64{25, 75},
		},
		{
			name:   "log decades",
			req:    TickRequest{Scale: "log", Domain: [2]float64{1, 1000}, Range: [2]float64{300, 0}},
			values: []float64{1, 10, 100, 1000},
		},
		{
			name:   "band",
			req:    TickRequest{Scale: "band", Categories: []string{"Mon", "Tue", "Wed"}, Range: [2]float64{0, 300}},
			values: []float64{0, 1, 2},
			labels: []string{"Mon", "Tue", "Wed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, err := PlanTicks(tt.req)
			if err != nil {
				t.Fatalf("PlanTicks() error: %v", err)
			}
			if len(ticks) != len(tt.values) {
				t.Fatalf("PlanTicks() = %d ticks %+v, want %d", len(ticks), ticks, len(tt.values))
			}
			for i, want := range tt.values {
				if math.Abs(ticks[i].Value-want) > 1e-9 {
					t.Errorf("tick %d value = %g, want %g", i, ticks[i].Value, want)
				}
			}
			for i, want := range tt.labels {
				if ticks[i].Label != want {
					t.Errorf("tick %d label = %q, want %q", i, ticks[i].Label, want)
				}
			}
		})
	}
}

func TestPlanTicksBandCenters(t *testing.T) {
	ticks, err := PlanTicks(TickRequest{Scale: "band", Categories: []string{"a", "b", "c"}, Range: [2]float64{0, 300}})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{50, 150, 250} {
		if math.Abs(ticks[i].Position-want) > 1e-9 {
			t.Errorf("tick %d position = %g, want %g", i, ticks[i].Position, want)
		}
	}
}

func TestPlanTicksErrors(t *testing.T) {
	tests := []struct {
		name string
		req  TickRequest
	}{
		{"unknown scale", TickRequest{Scale: "radial", Domain: [2]float64{0, 1}, Range: [2]float64{0, 100}}},
		{"zero range", TickRequest{Domain: [2]float64{0, 1}}},
		{"log through zero", TickRequest{Scale: "log", Domain: [2]float64{0, 10}, Range: [2]float64{0, 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanTicks(tt.req)
			if !errors.Is(err, errors.ErrCodeInvalidScale) {
				t.Errorf("PlanTicks() error = %v, want INVALID_SCALE", err)
			}
		})
	}
}
