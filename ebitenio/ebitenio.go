// Package ebitenio feeds ebiten mouse and touch input to orrery.
//
// Input implements orrery.PointerSource and orrery.FrameAdvancer, so a
// Controller samples it once at the start of every Update:
//
//	in := ebitenio.New()
//	ctrl, _ := orrery.NewController(cfg, world, camera, in, table)
//
//	func (g *Game) Update() error {
//		ctrl.Update(ebitenio.TickDelta())
//		return nil
//	}
package ebitenio

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/orrery"
)

// Input samples the cursor and the primary touch once per frame. The primary
// touch is the oldest active touch; additional fingers are ignored until it
// lifts. When MouseAsTouch is set, the left mouse button acts as a touch at
// the cursor whenever no finger is down.
type Input struct {
	MouseAsTouch bool

	cursor   orrery.Vec2
	pos      orrery.Vec2
	touching bool
	mouse    bool

	primary  ebiten.TouchID
	hasTouch bool
	ids      []ebiten.TouchID
}

// New creates an Input with MouseAsTouch enabled.
func New() *Input {
	return &Input{MouseAsTouch: true}
}

// Advance samples ebiten's input state for this frame.
func (in *Input) Advance() {
	mx, my := ebiten.CursorPosition()
	in.cursor = orrery.Vec2{X: float64(mx), Y: float64(my)}

	in.ids = ebiten.AppendTouchIDs(in.ids[:0])
	in.primary, in.hasTouch = primaryTouch(in.ids, in.primary, in.hasTouch)

	switch {
	case in.hasTouch:
		tx, ty := ebiten.TouchPosition(in.primary)
		in.pos = orrery.Vec2{X: float64(tx), Y: float64(ty)}
		in.touching, in.mouse = true, false
	case in.MouseAsTouch && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		in.pos = in.cursor
		in.touching, in.mouse = true, true
	default:
		// A lifted finger reports its last position; a released button
		// reports the cursor.
		if in.mouse {
			in.pos = in.cursor
		}
		in.touching = false
	}
}

// Pointer returns the cursor position.
func (in *Input) Pointer() (orrery.Vec2, bool) { return in.cursor, true }

// Touch returns the primary touch position and whether it is down.
func (in *Input) Touch() (orrery.Vec2, bool) { return in.pos, in.touching }

// primaryTouch keeps cur while it is still active, otherwise promotes the
// first active id.
func primaryTouch(ids []ebiten.TouchID, cur ebiten.TouchID, has bool) (ebiten.TouchID, bool) {
	if has && slices.Contains(ids, cur) {
		return cur, true
	}
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// TickDelta returns the fixed update step in seconds.
func TickDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		return 1.0 / ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}
