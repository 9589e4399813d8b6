package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/core/path"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/core/transition"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/frame"
)

type trackedBar struct {
	tmpl frame.Bar
	rect *transition.Property[stack.Rect]
	fill *transition.Property[string]
}

type trackedStack struct {
	meta frame.Stack
	bars []*trackedBar
}

type trackedPath struct {
	tmpl   frame.Path
	d      *transition.Property[string]
	stroke *transition.Property[string]
	fill   *transition.Property[string]
}

// scene is the animated state between two frames. The engine advances
// every property; the tracked slices fix the output order.
type scene struct {
	engine *transition.Engine
	stacks []*trackedStack
	paths  []*trackedPath
}

// AnimateFrames drives a transition engine from one frame to another with a
// fixed step of one second / fps. The first frame shows from, the last is
// to with Progress 1. Bars missing from either side grow from or shrink
// to their baseline. A nil from animates everything in.
func AnimateFrames(ctx context.Context, from, to *frame.Frame, spec transition.Spec, fps int) ([]*frame.Frame, error) {
	if to == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "target frame is required")
	}
	if fps <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fps must be positive, got %d", fps)
	}
	_, duration, err := spec.Resolve()
	if err != nil {
		return nil, err
	}
	if from == nil {
		from = &frame.Frame{}
	}

	sc := newScene(from, to, spec)
	if !sc.engine.Animating() || duration <= 0 {
		return []*frame.Frame{final(to)}, nil
	}

	dt := time.Second / time.Duration(fps)
	frames := []*frame.Frame{sc.snapshot(to, 0)}
	var elapsed time.Duration
	for sc.engine.Animating() && len(frames) < MaxFrames-1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sc.engine.Tick(dt)
		elapsed += dt
		if !sc.engine.Animating() {
			break
		}
		frames = append(frames, sc.snapshot(to, min(1, float64(elapsed)/float64(duration))))
	}
	return append(frames, final(to)), nil
}

func newScene(from, to *frame.Frame, spec transition.Spec) *scene {
	sc := &scene{engine: transition.NewEngine()}

	prevStacks := make(map[string]frame.Stack, len(from.Stacks))
	for _, s := range from.Stacks {
		prevStacks[s.Key()] = s
	}
	seen := make(map[string]bool, len(to.Stacks))
	for _, s := range to.Stacks {
		key := s.Key()
		seen[key] = true
		prev, hadPrev := prevStacks[key]
		prevBars := make(map[string]frame.Bar, len(prev.Bars))
		for _, b := range prev.Bars {
			prevBars[b.SeriesID] = b
		}

		ts := &trackedStack{meta: s}
		for _, b := range s.Bars {
			start, ok := prevBars[b.SeriesID]
			if !ok {
				start = b
				start.Rect = collapse(b.Rect, s.Baseline)
			}
			delete(prevBars, b.SeriesID)
			ts.bars = append(ts.bars, sc.trackBar(key, b, start.Rect, b.Rect, start.Fill, b.Fill, spec))
		}
		if hadPrev {
			for _, b := range prev.Bars {
				if _, exiting := prevBars[b.SeriesID]; exiting {
					ts.bars = append(ts.bars, sc.trackBar(key, b, b.Rect, collapse(b.Rect, s.Baseline), b.Fill, b.Fill, spec))
				}
			}
		}
		sc.stacks = append(sc.stacks, ts)
	}
	for _, s := range from.Stacks {
		key := s.Key()
		if seen[key] {
			continue
		}
		ts := &trackedStack{meta: s}
		for _, b := range s.Bars {
			ts.bars = append(ts.bars, sc.trackBar(key, b, b.Rect, collapse(b.Rect, s.Baseline), b.Fill, b.Fill, spec))
		}
		sc.stacks = append(sc.stacks, ts)
	}

	prevPaths := make(map[string]frame.Path, len(from.Paths))
	for _, p := range from.Paths {
		prevPaths[p.SeriesID] = p
	}
	for _, p := range to.Paths {
		prev, ok := prevPaths[p.SeriesID]
		if !ok {
			prev = frame.Path{Stroke: p.Stroke, Fill: p.Fill}
		}
		delete(prevPaths, p.SeriesID)
		sc.paths = append(sc.paths, sc.trackPath(p, prev, p, spec))
	}
	for _, p := range from.Paths {
		if _, exiting := prevPaths[p.SeriesID]; exiting {
			sc.paths = append(sc.paths, sc.trackPath(p, p, frame.Path{Stroke: p.Stroke, Fill: p.Fill}, spec))
		}
	}
	return sc
}

func (sc *scene) trackBar(stackKey string, tmpl frame.Bar, r0, r1 stack.Rect, f0, f1 string, spec transition.Spec) *trackedBar {
	id := stackKey + "/" + tmpl.SeriesID
	return &trackedBar{
		tmpl: tmpl,
		rect: transition.Retarget(sc.engine, "rect/"+id, spec, transition.Rect, r1, r0),
		fill: transition.Retarget(sc.engine, "fill/"+id, spec, transition.Color, f1, f0),
	}
}

func (sc *scene) trackPath(tmpl, from, to frame.Path, spec transition.Spec) *trackedPath {
	id := tmpl.SeriesID
	return &trackedPath{
		tmpl:   tmpl,
		d:      transition.Retarget(sc.engine, "d/"+id, spec, transition.Path, to.D, from.D),
		stroke: transition.Retarget(sc.engine, "stroke/"+id, spec, transition.Color, to.Stroke, from.Stroke),
		fill:   transition.Retarget(sc.engine, "fill/"+id, spec, transition.Color, to.Fill, from.Fill),
	}
}

// snapshot samples every property into a frame. Axes, gradients and legend
// come from the target.
func (sc *scene) snapshot(to *frame.Frame, progress float64) *frame.Frame {
	f := *to
	f.ID = uuid.NewString()
	f.Progress = progress
	f.Stacks = nil
	f.Paths = nil
	for _, ts := range sc.stacks {
		st := ts.meta
		st.Bars = nil
		for _, tb := range ts.bars {
			b := tb.tmpl
			b.Rect = tb.rect.Value()
			if b.Rect.Height <= 0 {
				continue
			}
			b.Fill = tb.fill.Value()
			b.Path = path.RoundedRect(b.Rect, b.Radius, b.RoundTop, b.RoundBottom)
			if len(st.Bars) == 0 {
				st.Bounds = b.Rect
			} else {
				st.Bounds = st.Bounds.Union(b.Rect)
			}
			st.Bars = append(st.Bars, b)
		}
		if len(st.Bars) > 0 {
			f.Stacks = append(f.Stacks, st)
		}
	}
	for _, tp := range sc.paths {
		p := tp.tmpl
		p.D = tp.d.Value()
		if p.D == "" {
			continue
		}
		p.Stroke = tp.stroke.Value()
		p.Fill = tp.fill.Value()
		f.Paths = append(f.Paths, p)
	}
	return &f
}

// final returns a copy of the target marked as the last animation frame.
func final(to *frame.Frame) *frame.Frame {
	f := *to
	f.ID = uuid.NewString()
	f.Progress = 1
	return &f
}

// collapse returns r squashed onto the baseline pixel.
func collapse(r stack.Rect, baseline float64) stack.Rect {
	return stack.Rect{X: r.X, Y: baseline, Width: r.Width}
}
