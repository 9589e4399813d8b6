package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stackchart/pkg/core/chart"
	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/core/transition"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/frame"
)

const tomlConfig = `
title = "Sales"
kind = "bar"
categories = ["Mon", "Tue", "Wed"]

[[y_axes]]
label = "Units"
nice = true
min = 0

[[series]]
id = "north"
stack_id = "region"
data = [4, 6.5, "null"]

[[series]]
id = "band"
data = [[1, 3], [2, 5], [0, 4]]

[transition]
type = "timing"
duration = "500ms"
easing = "linear"
`

const yamlConfig = `
title: Sales
kind: bar
categories: [Mon, Tue, Wed]
y_axes:
  - label: Units
    nice: true
    min: 0
series:
  - id: north
    stack_id: region
    data: [4, 6.5, null]
  - id: band
    data: [[1, 3], [2, 5], [0, 4]]
transition:
  type: timing
  duration: 500ms
  easing: linear
`

const jsonConfig = `{
  "title": "Sales",
  "kind": "bar",
  "categories": ["Mon", "Tue", "Wed"],
  "y_axes": [{"label": "Units", "nice": true, "min": 0}],
  "series": [
    {"id": "north", "stack_id": "region", "data": [4, 6.5, null]},
    {"id": "band", "data": [[1, 3], [2, 5], [0, 4]]}
  ],
  "transition": {"type": "timing", "duration": "500ms", "easing": "linear"}
}`

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatTOML, tomlConfig},
		{FormatYAML, yamlConfig},
		{FormatJSON, jsonConfig},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			cfg, err := DecodeConfig(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("DecodeConfig() error: %v", err)
			}
			checkConfig(t, cfg)
		})
	}
}

// checkConfig asserts that every format decodes to the same chart.
func checkConfig(t *testing.T, cfg chart.Config) {
	t.Helper()
	if cfg.Title != "Sales" || cfg.Kind != chart.KindBar || len(cfg.Categories) != 3 {
		t.Errorf("header = %q %q %v", cfg.Title, cfg.Kind, cfg.Categories)
	}
	if len(cfg.YAxes) != 1 || !cfg.YAxes[0].Nice || cfg.YAxes[0].Min == nil || *cfg.YAxes[0].Min != 0 {
		t.Errorf("y axes = %+v", cfg.YAxes)
	}
	if len(cfg.Series) != 2 {
		t.Fatalf("series = %d, want 2", len(cfg.Series))
	}
	north, err := series.Ingest(cfg.Series[0])
	if err != nil {
		t.Fatalf("Ingest(north) error: %v", err)
	}
	if north.StackID != "region" {
		t.Errorf("stack id = %q", north.StackID)
	}
	if v, ok := north.At(1).Scalar(); !ok || v != 6.5 {
		t.Errorf("north[1] = %v, want 6.5", north.At(1))
	}
	if !north.At(2).IsGap() {
		t.Errorf("north[2] = %v, want gap", north.At(2))
	}
	band, err := series.Ingest(cfg.Series[1])
	if err != nil {
		t.Fatalf("Ingest(band) error: %v", err)
	}
	if lo, hi, ok := band.At(1).Range(); !ok || lo != 2 || hi != 5 {
		t.Errorf("band[1] = %v, want [2, 5]", band.At(1))
	}
	want := transition.Spec{Type: transition.Timing, Duration: transition.Duration(500 * time.Millisecond), Easing: "linear"}
	if cfg.Transition != want {
		t.Errorf("transition = %+v, want %+v", cfg.Transition, want)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"toml syntax", FormatTOML, "title = ", errors.ErrCodeInvalidConfig},
		{"toml unknown key", FormatTOML, "colour = \"red\"", errors.ErrCodeInvalidConfig},
		{"yaml unknown key", FormatYAML, "colour: red", errors.ErrCodeInvalidConfig},
		{"json unknown key", FormatJSON, `{"colour": "red"}`, errors.ErrCodeInvalidConfig},
		{"json syntax", FormatJSON, `{`, errors.ErrCodeInvalidConfig},
		{"format", Format("ini"), "", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("DecodeConfig() error = nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestEmptyYAML(t *testing.T) {
	cfg, err := ParseConfig(nil, FormatYAML)
	if err != nil {
		t.Fatalf("ParseConfig(empty) error: %v", err)
	}
	if len(cfg.Series) != 0 {
		t.Errorf("series = %v", cfg.Series)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"chart.toml", FormatTOML, false},
		{"dir/chart.YAML", FormatYAML, false},
		{"chart.yml", FormatYAML, false},
		{"chart.json", FormatJSON, false},
		{"chart.ini", "", true},
		{"chart", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sales.toml")
	if err := os.WriteFile(p, []byte(tomlConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := ReadConfig(p)
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}
	checkConfig(t, cfg)

	_, err = ReadConfig(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadConfig(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportFrame(t *testing.T) {
	f := &frame.Frame{ID: "f", Kind: "bar", Width: 10, Height: 20}

	var buf bytes.Buffer
	if err := WriteFrameJSON(f, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Errorf("output does not end with a newline: %q", buf.String())
	}

	p := filepath.Join(t.TempDir(), "frame.json")
	if err := ExportFrame(f, p); err != nil {
		t.Fatal(err)
	}
	got, err := frame.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "f" || got.Height != 20 {
		t.Errorf("round trip = %+v", got)
	}
}
