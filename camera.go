package orrery

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// moveAnim holds active move-to tweens for the camera position.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera deprojects screen coordinates into world-space probe rays.
type Camera struct {
	// Position is the eye position; Target is the look-at point.
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// FovY is the vertical field of view in degrees (perspective only).
	FovY float64
	// Orthographic switches to a parallel projection OrthoHeight world units tall.
	Orthographic bool
	OrthoHeight  float64
	Near, Far    float64

	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	view, proj mgl64.Mat4
	dirty      bool
	lastKey    cameraKey

	move *moveAnim
}

// cameraKey captures every field the matrices depend on so that direct field
// writes are picked up without an explicit MarkDirty.
type cameraKey struct {
	pos, target, up    mgl64.Vec3
	fov, oh, near, far float64
	ortho              bool
	vw, vh             float64
}

// NewCamera creates a perspective camera looking down -Z from (0, 0, 10).
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Position:    mgl64.Vec3{0, 0, 10},
		Up:          mgl64.Vec3{0, 1, 0},
		FovY:        60,
		OrthoHeight: 10,
		Near:        0.1,
		Far:         10000,
		Viewport:    viewport,
		dirty:       true,
	}
}

// MarkDirty forces the matrices to be recomputed on next use.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

func (c *Camera) key() cameraKey {
	return cameraKey{
		pos: c.Position, target: c.Target, up: c.Up,
		fov: c.FovY, oh: c.OrthoHeight, near: c.Near, far: c.Far,
		ortho: c.Orthographic, vw: c.Viewport.Width, vh: c.Viewport.Height,
	}
}

// computeMatrices rebuilds view and projection when anything changed.
func (c *Camera) computeMatrices() {
	k := c.key()
	if !c.dirty && k == c.lastKey {
		return
	}
	c.lastKey = k
	c.dirty = false

	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	if c.Orthographic {
		hh := c.OrthoHeight / 2
		hw := hh * aspect
		c.proj = mgl64.Ortho(-hw, hw, -hh, hh, c.Near, c.Far)
	} else {
		c.proj = mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
	}
}

// ScreenRay returns the world-space ray through screen point (sx, sy).
// ok is false when the viewport is empty or the matrices are degenerate.
func (c *Camera) ScreenRay(sx, sy float64) (origin, dir mgl64.Vec3, ok bool) {
	vw, vh := int(c.Viewport.Width), int(c.Viewport.Height)
	if vw <= 0 || vh <= 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	c.computeMatrices()

	// Window coordinates have Y up.
	wx := sx - c.Viewport.X
	wy := c.Viewport.Height - (sy - c.Viewport.Y)

	near, err := mgl64.UnProject(mgl64.Vec3{wx, wy, 0}, c.view, c.proj, 0, 0, vw, vh)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{wx, wy, 1}, c.view, c.proj, 0, 0, vw, vh)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	d := far.Sub(near)
	if d.Len() == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return near, d.Normalize(), true
}

// WorldToScreen projects a world point to screen coordinates (Y down).
func (c *Camera) WorldToScreen(p mgl64.Vec3) Vec2 {
	vw, vh := int(c.Viewport.Width), int(c.Viewport.Height)
	if vw <= 0 || vh <= 0 {
		return Vec2{}
	}
	c.computeMatrices()
	win := mgl64.Project(p, c.view, c.proj, 0, 0, vw, vh)
	return Vec2{c.Viewport.X + win.X(), c.Viewport.Y + c.Viewport.Height - win.Y()}
}

// ViewportCenter returns the screen-space centre of the viewport.
func (c *Camera) ViewportCenter() Vec2 {
	return c.Viewport.Center()
}

// MoveTo animates the camera position to pos over duration seconds. The
// look-at target moves by the same offset.
func (c *Camera) MoveTo(pos mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	m := &moveAnim{}
	for i := 0; i < 3; i++ {
		m.tweens[i] = gween.New(float32(c.Position[i]), float32(pos[i]), duration, easeFn)
	}
	c.move = m
}

// Moving reports whether a MoveTo animation is in progress.
func (c *Camera) Moving() bool {
	return c.move != nil
}

// Update advances a MoveTo animation.
func (c *Camera) Update(dt float64) {
	if c.move == nil {
		return
	}
	prev := c.Position
	next := c.Position
	for i := 0; i < 3; i++ {
		if c.move.done[i] {
			continue
		}
		v, finished := c.move.tweens[i].Update(float32(dt))
		next[i] = float64(v)
		c.move.done[i] = finished
	}
	c.Position = next
	c.Target = c.Target.Add(next.Sub(prev))
	if c.move.done[0] && c.move.done[1] && c.move.done[2] {
		c.move = nil
	}
	c.dirty = true
}
