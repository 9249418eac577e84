package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit describes the nearest object struck by a probe.
type Hit struct {
	Object   *Object
	Point    mgl64.Vec3
	Distance float64
}

// Prober casts a single directed probe against the world. It is the world
// probe service consumed by FocusResolver and GestureClassifier.
type Prober interface {
	Cast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
}

// World owns the object list and the world clock.
type World struct {
	objects []*Object
	clock   float64
	debug   bool
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Add appends an object to the world. Panics if o is nil.
func (w *World) Add(o *Object) {
	if o == nil {
		panic("orrery: cannot add nil object")
	}
	if globalDebug {
		debugCheckDisposed(o, "Add")
	}
	if o.world == w {
		return
	}
	if o.world != nil {
		o.world.Remove(o)
	}
	o.world = w
	w.objects = append(w.objects, o)
	if w.debug {
		debugCheckObjectCount(w)
	}
}

// Remove detaches an object from the world. No-op if it is not a member.
func (w *World) Remove(o *Object) {
	for i, c := range w.objects {
		if c == o {
			copy(w.objects[i:], w.objects[i+1:])
			w.objects[len(w.objects)-1] = nil
			w.objects = w.objects[:len(w.objects)-1]
			o.world = nil
			return
		}
	}
}

// Objects returns the object list. The returned slice MUST NOT be mutated.
func (w *World) Objects() []*Object {
	return w.objects
}

// Find returns the first object with the given name, or nil.
func (w *World) Find(name string) *Object {
	for _, o := range w.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Now returns the world clock in seconds.
func (w *World) Now() float64 {
	return w.clock
}

// Update advances the world clock and per-object interaction state (highlight
// fades).
func (w *World) Update(dt float64) {
	w.clock += dt
	for _, o := range w.objects {
		if it := o.interactable; it != nil {
			it.update(dt)
		}
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-object
// access panics, probes are traced at debug level and oversized worlds warn.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
	setDebug(enabled)
}

// Cast finds the nearest visible object whose layer matches mask along the
// ray origin+t*dir, 0 <= t <= maxDistance. dir need not be normalized.
func (w *World) Cast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool) {
	if maxDistance <= 0 || dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, o := range w.objects {
		if !o.Visible || o.disposed || o.Collider == nil || o.Layer&mask == 0 {
			continue
		}
		lo := o.PointToLocal(origin)
		ld := o.DirToLocal(dir)
		t, ok := o.Collider.Intersect(lo, ld)
		if !ok || t > maxDistance || t >= best.Distance {
			continue
		}
		best = Hit{Object: o, Point: origin.Add(dir.Mul(t)), Distance: t}
		found = true
	}
	if w.debug {
		if found {
			logFor("world").Debug("probe hit", "object", best.Object.Name, "distance", best.Distance)
		} else {
			logFor("world").Debug("probe miss", "origin", origin, "dir", dir)
		}
	}
	return best, found
}
