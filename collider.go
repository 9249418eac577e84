package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Collider is a probe-able volume in an object's local space. Intersect
// returns the ray parameter t of the first intersection along origin+t*dir
// with t >= 0. A ray starting inside the volume hits at t = 0.
type Collider interface {
	Intersect(origin, dir mgl64.Vec3) (t float64, ok bool)
}

// ColliderSphere is a spherical volume in local coordinates.
type ColliderSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Intersect solves |origin + t*dir - Center|^2 = Radius^2 for the smallest t >= 0.
func (s ColliderSphere) Intersect(origin, dir mgl64.Vec3) (float64, bool) {
	oc := origin.Sub(s.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c <= 0 {
		return 0, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// ColliderBox is an axis-aligned box in local coordinates. Because it is
// tested in local space it rotates with the owning object.
type ColliderBox struct {
	Min, Max mgl64.Vec3
}

// BoxFromSize returns a box of the given size centred on the local origin.
func BoxFromSize(w, h, d float64) ColliderBox {
	half := mgl64.Vec3{w / 2, h / 2, d / 2}
	return ColliderBox{Min: half.Mul(-1), Max: half}
}

// Intersect uses the slab method.
func (b ColliderBox) Intersect(origin, dir mgl64.Vec3) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[i] - origin[i]) / dir[i]
		t2 := (b.Max[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}
