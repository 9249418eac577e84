package orrery

// PointerSource is the screen/touch/pointer collaborator. Positions are in
// screen pixels with the origin at the top-left and Y increasing downward.
type PointerSource interface {
	// Pointer returns the cursor position. ok is false when the device has
	// no cursor.
	Pointer() (pos Vec2, ok bool)
	// Touch returns the primary touch position and whether it is held. A
	// held primary mouse button counts as a touch.
	Touch() (pos Vec2, touching bool)
}

// FrameAdvancer is implemented by sources that sample once per tick. The
// Controller calls Advance before any component reads the source.
type FrameAdvancer interface {
	Advance()
}

// StaticSource is a PointerSource whose state is set directly.
type StaticSource struct {
	Pos        Vec2
	HasPointer bool
	Touching   bool
}

// Pointer returns Pos when HasPointer is set.
func (s *StaticSource) Pointer() (Vec2, bool) { return s.Pos, s.HasPointer }

// Touch returns Pos and Touching.
func (s *StaticSource) Touch() (Vec2, bool) { return s.Pos, s.Touching }

// MoveTo updates the position.
func (s *StaticSource) MoveTo(x, y float64) { s.Pos = Vec2{x, y} }
