package frame

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/core/transition"
)

func TestMarshalRoundTrip(t *testing.T) {
	f := &Frame{
		ID:     "f1",
		Kind:   "bar",
		Width:  100,
		Height: 50,
		Stacks: []Stack{{
			Index: 1, StackID: "s",
			Bars: []Bar{
				{SeriesID: "a", Rect: stack.Rect{X: 1, Y: 2, Width: 3, Height: 4}, Side: "above", Value: series.Scalar(7)},
				{SeriesID: "b", Side: "below", Value: series.Range(-3, -1)},
			},
		}},
		Transition: transition.DefaultSpring(),
	}
	data, err := Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.BarCount() != 2 {
		t.Fatalf("BarCount() = %d, want 2", got.BarCount())
	}
	if v, ok := got.Stacks[0].Bars[0].Value.Scalar(); !ok || v != 7 {
		t.Errorf("bar value = %v, want 7", got.Stacks[0].Bars[0].Value)
	}
	if lo, hi, ok := got.Stacks[0].Bars[1].Value.Range(); !ok || lo != -3 || hi != -1 {
		t.Errorf("range value = %v, want [-3, -1]", got.Stacks[0].Bars[1].Value)
	}
	if got.Transition != f.Transition {
		t.Errorf("Transition = %+v, want %+v", got.Transition, f.Transition)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"no size", `{"id":"x"}`},
		{"negative width", `{"width":-1,"height":10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); err == nil {
				t.Error("Unmarshal() error = nil")
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "frame.json")
	if err := WriteFile(&Frame{Width: 10, Height: 10, Title: "t"}, p); err != nil {
		t.Fatal(err)
	}
	f, err := ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if f.Title != "t" {
		t.Errorf("Title = %q, want t", f.Title)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadFile(missing) error = nil")
	}
}

func TestStackKey(t *testing.T) {
	a := Stack{Index: 2, StackID: "s", YAxisID: "y"}
	b := Stack{Index: 2, StackID: "s"}
	if a.Key() == b.Key() {
		t.Errorf("Key() collides: %q", a.Key())
	}
}
