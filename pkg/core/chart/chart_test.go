package chart

import (
	"testing"

	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/core/transition"
	"github.com/matzehuels/stackchart/pkg/errors"
)

func ptr(v float64) *float64 { return &v }

func TestBuildBar(t *testing.T) {
	cfg := Config{
		Width:      300,
		Height:     200,
		Padding:    &Padding{Top: 10, Right: 10, Bottom: 10, Left: 10},
		Categories: []string{"Mon", "Tue"},
		Series: []series.Raw{
			{ID: "a", StackID: "s", Data: []any{10, 20}},
			{ID: "b", StackID: "s", Data: []any{5, nil, -4}},
		},
	}
	ctx, warnings, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Build() warnings = %v", warnings)
	}
	if ctx.Area.X != 10 || ctx.Area.Width != 280 || ctx.Area.Height != 180 {
		t.Errorf("Area = %+v", ctx.Area)
	}
	if got := ctx.Categories; len(got) != 3 || got[0] != "Mon" || got[2] != "2" {
		t.Errorf("Categories = %v, want [Mon Tue 2]", got)
	}

	xs, ok := ctx.XScale("")
	if !ok || xs.Kind() != scale.KindBand {
		t.Fatalf("XScale() = %v, %v", xs, ok)
	}
	ys, ok := ctx.YScale("")
	if !ok {
		t.Fatal("YScale() missing")
	}
	if d := ys.Domain(); d != (scale.Domain{Min: -4, Max: 20}) {
		t.Errorf("y domain = %+v, want stacked [-4, 20]", d)
	}
	if r := ys.Range(); r.Start != 190 || r.End != 10 {
		t.Errorf("y range = %+v, want bottom to top", r)
	}
	if _, ok := ctx.SeriesByID("b"); !ok {
		t.Error("SeriesByID(b) missing")
	}
	if _, ok := ctx.YScale("nope"); ok {
		t.Error("YScale(nope) found")
	}
}

func TestBuildWarnings(t *testing.T) {
	cfg := Config{
		Series: []series.Raw{
			{ID: "ok", Data: []any{1, 2}},
			{ID: "mixed", Data: []any{1, []any{1, 2}}},
			{ID: "ok", Data: []any{3}},
			{ID: "lost", YAxisID: "right", Data: []any{1}},
			{ID: "bad id!", Data: []any{1}},
		},
	}
	ctx, warnings, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.Series) != 1 || ctx.Series[0].ID != "ok" {
		t.Errorf("Series = %+v, want only ok", ctx.Series)
	}
	wantCodes := []errors.Code{
		errors.ErrCodeInvalidSeries,
		errors.ErrCodeInvalidSeries,
		errors.ErrCodeNotFound,
		errors.ErrCodeInvalidSeries,
	}
	if len(warnings) != len(wantCodes) {
		t.Fatalf("warnings = %v, want %d", warnings, len(wantCodes))
	}
	for i, w := range warnings {
		if w.Code() != wantCodes[i] {
			t.Errorf("warning %d (%v) code = %s, want %s", i, w, w.Code(), wantCodes[i])
		}
	}
}

func TestBuildAxes(t *testing.T) {
	tests := []struct {
		name     string
		axis     AxisConfig
		kind     Kind
		data     []any
		want     scale.Domain
		wantKind scale.Kind
		warn     bool
	}{
		{"line keeps data extent", AxisConfig{}, KindLine, []any{3, 7}, scale.Domain{Min: 3, Max: 7}, scale.KindLinear, false},
		{"bar includes zero", AxisConfig{}, KindBar, []any{3, 7}, scale.Domain{Min: 0, Max: 7}, scale.KindLinear, false},
		{"configured bounds", AxisConfig{Min: ptr(-10), Max: ptr(10)}, KindBar, []any{3}, scale.Domain{Min: -10, Max: 10}, scale.KindLinear, false},
		{"nice", AxisConfig{Nice: true}, KindLine, []any{1.3, 9.2}, scale.Domain{Min: 0, Max: 10}, scale.KindLinear, false},
		{"log", AxisConfig{Scale: "log"}, KindBar, []any{1, 1000}, scale.Domain{Min: 1, Max: 1000}, scale.KindLog, false},
		{"log over zero falls back", AxisConfig{Scale: "log"}, KindLine, []any{-1, 10}, scale.Domain{Min: -1, Max: 10}, scale.KindLinear, true},
		{"single value widens", AxisConfig{}, KindLine, []any{5}, scale.Domain{Min: 0, Max: 10}, scale.KindLinear, false},
		{"swapped bounds", AxisConfig{Min: ptr(5), Max: ptr(1)}, KindLine, []any{2}, scale.Domain{Min: 1, Max: 5}, scale.KindLinear, true},
		{"band y rejected", AxisConfig{Scale: "band"}, KindLine, []any{2, 4}, scale.Domain{Min: 2, Max: 4}, scale.KindLinear, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Kind:   tt.kind,
				YAxes:  []AxisConfig{tt.axis},
				Series: []series.Raw{{ID: "s", Data: tt.data}},
			}
			ctx, warnings, err := Build(cfg)
			if err != nil {
				t.Fatal(err)
			}
			if (len(warnings) > 0) != tt.warn {
				t.Errorf("warnings = %v, want warning %v", warnings, tt.warn)
			}
			ys, _ := ctx.YScale("")
			if ys.Kind() != tt.wantKind {
				t.Errorf("kind = %v, want %v", ys.Kind(), tt.wantKind)
			}
			if d := ys.Domain(); d != tt.want {
				t.Errorf("domain = %+v, want %+v", d, tt.want)
			}
		})
	}
}

func TestBuildLinearX(t *testing.T) {
	cfg := Config{
		Kind:   KindLine,
		XAxes:  []AxisConfig{{Scale: "linear"}},
		Series: []series.Raw{{ID: "s", Data: []any{1, 2, 3, 4}}},
	}
	ctx, _, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	xs, _ := ctx.XScale("")
	if xs.Kind() != scale.KindLinear || xs.Domain() != (scale.Domain{Min: 0, Max: 3}) {
		t.Errorf("x scale = %v %+v", xs.Kind(), xs.Domain())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"kind", Config{Kind: "pie"}},
		{"size", Config{Width: -1}},
		{"padding", Config{Width: 50, Padding: &Padding{Left: 30, Right: 30}}},
		{"duplicate axis", Config{YAxes: []AxisConfig{{ID: "a"}, {ID: "a"}}}},
		{"style", Config{Style: stack.Style{StackGap: -1}}},
		{"transition", Config{Transition: transition.Spec{Type: "bounce"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build(tt.cfg)
			if err == nil {
				t.Fatal("Build() error = nil")
			}
		})
	}
}
