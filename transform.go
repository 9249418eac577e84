package orrery

import "github.com/go-gl/mathgl/mgl64"

// Transform is an object's placement in the world.
//
// Composition order:
//
//	Scale -> Rotate(Orientation) -> Translate(Position)
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

// identityTransform places an object at the origin with no rotation or scale.
var identityTransform = Transform{
	Orientation: mgl64.QuatIdent(),
	Scale:       mgl64.Vec3{1, 1, 1},
}

// Matrix returns the local-to-world matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Orientation.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// PointToLocal converts a world-space point into this transform's local space.
func (t Transform) PointToLocal(p mgl64.Vec3) mgl64.Vec3 {
	rel := t.Orientation.Normalize().Inverse().Rotate(p.Sub(t.Position))
	return divScale(rel, t.Scale)
}

// DirToLocal converts a world-space direction into local space. The result is
// not renormalized, so a ray parameter t means the same point in both spaces.
func (t Transform) DirToLocal(d mgl64.Vec3) mgl64.Vec3 {
	return divScale(t.Orientation.Normalize().Inverse().Rotate(d), t.Scale)
}

// PointToWorld converts a local-space point to world space.
func (t Transform) PointToWorld(p mgl64.Vec3) mgl64.Vec3 {
	scaled := mgl64.Vec3{p.X() * t.Scale.X(), p.Y() * t.Scale.Y(), p.Z() * t.Scale.Z()}
	return t.Orientation.Normalize().Rotate(scaled).Add(t.Position)
}

func divScale(v, s mgl64.Vec3) mgl64.Vec3 {
	out := v
	for i := 0; i < 3; i++ {
		if s[i] != 0 {
			out[i] = v[i] / s[i]
		}
	}
	return out
}
