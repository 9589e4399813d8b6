package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range append(Names, "") {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error: %v", name, err)
		}
	}
	if _, err := Lookup("handdrawn"); err == nil {
		t.Error("Lookup(handdrawn) error = nil")
	}
}

func TestSimpleRenderBar(t *testing.T) {
	s := Simple{Palette: Light}
	var buf bytes.Buffer
	s.RenderBar(&buf, Bar{SeriesID: "a<b", Path: "M0,0L1,0Z", Fill: "url(#grad-a)"})
	out := buf.String()
	for _, want := range []string{`<path class="bar"`, `data-series="a&lt;b"`, `d="M0,0L1,0Z"`, `fill="url(#grad-a)"`} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderBar() output missing %q\nGot: %s", want, out)
		}
	}
}

func TestSimpleRenderMark(t *testing.T) {
	s := Simple{Palette: Light}
	tests := []struct {
		name     string
		mark     Mark
		contains []string
	}{
		{"line", Mark{SeriesID: "a", D: "M0,0L5,5", Stroke: "red"}, []string{`class="line"`, `fill="none"`, `stroke="red"`}},
		{"area", Mark{SeriesID: "a", Area: true, D: "M0,0L5,5Z", Stroke: "red", Fill: "blue"}, []string{`class="area"`, `fill="blue"`, `stroke="red"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s.RenderMark(&buf, tt.mark)
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("RenderMark() output missing %q\nGot: %s", want, buf.String())
				}
			}
		})
	}
}

func TestSimpleRenderAxis(t *testing.T) {
	s := Simple{Palette: Dark}
	tests := []struct {
		side     Side
		contains []string
	}{
		{SideBottom, []string{`axis-bottom`, `x2="10.00" y2="106.00"`, `text-anchor="middle"`, `dominant-baseline="hanging"`}},
		{SideLeft, []string{`axis-left`, `x2="4.00" y2="100.00"`, `text-anchor="end"`}},
		{SideRight, []string{`axis-right`, `x2="16.00" y2="100.00"`, `text-anchor="start"`}},
		{SideTop, []string{`axis-top`, `x2="10.00" y2="94.00"`}},
	}
	for _, tt := range tests {
		t.Run(string(tt.side), func(t *testing.T) {
			var buf bytes.Buffer
			s.RenderAxis(&buf, Axis{Side: tt.side, Ticks: []Tick{{X: 10, Y: 100, Label: "1k"}}})
			out := buf.String()
			if !strings.Contains(out, ">1k</text>") {
				t.Errorf("RenderAxis() missing label\nGot: %s", out)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("RenderAxis() output missing %q\nGot: %s", want, out)
				}
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width float64
		want  string
	}{
		{"short", 100, "short"},
		{"a long category name", 44, "a long.."},
		{"abcdef", 1, "a.."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.width, 10); got != tt.want {
			t.Errorf("Truncate(%q, %g) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<a & "b">`); got != "&lt;a &amp; &#34;b&#34;&gt;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}
