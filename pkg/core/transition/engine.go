package transition

import (
	"slices"
	"time"
)

// Animator is the type-erased view of a [Property] the engine drives.
type Animator interface {
	Tick(dt time.Duration) bool
	Animating() bool
}

// Engine owns a set of animated properties keyed by id and advances them
// together. It is not safe for concurrent use; a single frame loop drives it.
type Engine struct {
	props map[string]Animator
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{props: make(map[string]Animator)}
}

// Track registers a under id, replacing any property with the same id.
func (e *Engine) Track(id string, a Animator) {
	e.props[id] = a
}

// Get returns the property registered under id.
func (e *Engine) Get(id string) (Animator, bool) {
	a, ok := e.props[id]
	return a, ok
}

// Dispose removes the property registered under id.
func (e *Engine) Dispose(id string) {
	delete(e.props, id)
}

// Len returns the number of tracked properties.
func (e *Engine) Len() int { return len(e.props) }

// IDs returns the tracked ids in sorted order.
func (e *Engine) IDs() []string {
	ids := make([]string, 0, len(e.props))
	for id := range e.props {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Tick advances every property by dt and returns how many are still
// animating.
func (e *Engine) Tick(dt time.Duration) int {
	n := 0
	for _, a := range e.props {
		if a.Tick(dt) {
			n++
		}
	}
	return n
}

// Animating reports whether any property is in flight.
func (e *Engine) Animating() bool {
	for _, a := range e.props {
		if a.Animating() {
			return true
		}
	}
	return false
}

// Lookup returns the property under id if it animates values of type T.
func Lookup[T comparable](e *Engine, id string) (*Property[T], bool) {
	a, ok := e.props[id]
	if !ok {
		return nil, false
	}
	p, ok := a.(*Property[T])
	return p, ok
}

// Retarget sets the target of the property under id, creating it at
// previous when it does not exist yet.
func Retarget[T comparable](e *Engine, id string, spec Spec, interp Interpolator[T], target, previous T) *Property[T] {
	if p, ok := Lookup[T](e, id); ok {
		p.SetTarget(target)
		return p
	}
	p := New(spec, interp)(target, previous)
	e.Track(id, p)
	return p
}
