package orrery

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// Injector is a PointerSource fed from a queue of synthetic events, one
// consumed per Advance. Between events the last state is held, so a pressed
// pointer stays down until a release is consumed.
type Injector struct {
	queue      []syntheticPointerEvent
	pos        Vec2
	hasPointer bool
	pressed    bool
	runner     *TestRunner
}

// NewInjector creates an idle injector with no cursor.
func NewInjector() *Injector {
	return &Injector{}
}

// InjectPress queues a press at the given screen coordinates.
func (in *Injector) InjectPress(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a move with the pointer held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (in *Injector) InjectMove(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectHover queues a move with the pointer up.
func (in *Injector) InjectHover(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{screenX: x, screenY: y, pressed: false})
}

// InjectRelease queues a release at the given screen coordinates.
func (in *Injector) InjectRelease(x, y float64) {
	in.queue = append(in.queue, syntheticPointerEvent{screenX: x, screenY: y, pressed: false})
}

// InjectTap queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (in *Injector) InjectTap(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectHold queues a press held in place for frames frames in total,
// release included. Minimum frames is 2.
func (in *Injector) InjectHold(x, y float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(x, y)
	for i := 0; i < frames-2; i++ {
		in.InjectMove(x, y)
	}
	in.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The sequence consumes frames frames; minimum is 2. Swipes and
// rotate gestures are both drags.
func (in *Injector) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		in.InjectMove(x, y)
	}
	in.InjectRelease(toX, toY)
}

// Pending returns the number of queued events.
func (in *Injector) Pending() int {
	return len(in.queue)
}

// SetTestRunner attaches a script runner. Its step runs at the start of every
// Advance.
func (in *Injector) SetTestRunner(r *TestRunner) {
	in.runner = r
}

// Advance steps the attached runner, then pops one event and applies it.
func (in *Injector) Advance() {
	if in.runner != nil {
		in.runner.step(in)
	}
	if len(in.queue) == 0 {
		return
	}
	evt := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	in.pos = Vec2{evt.screenX, evt.screenY}
	in.hasPointer = true
	in.pressed = evt.pressed
}

// Pointer returns the last injected position once any event was consumed.
func (in *Injector) Pointer() (Vec2, bool) { return in.pos, in.hasPointer }

// Touch returns the last injected position and whether it is pressed.
func (in *Injector) Touch() (Vec2, bool) { return in.pos, in.pressed }
