package orrery

// GestureConfig tunes a GestureClassifier.
type GestureConfig struct {
	Enabled           bool
	MovementThreshold float64 // pixels
	MaxTapDuration    float64 // seconds
	MaxDistance       float64
	Layers            LayerMask
}

// DefaultGestureConfig returns a 20 pixel threshold and 0.3 second taps.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		Enabled:           true,
		MovementThreshold: 20,
		MaxTapDuration:    0.3,
		MaxDistance:       5000,
		Layers:            LayerInteraction,
	}
}

// TouchPhase is the lifecycle of the primary touch.
type TouchPhase uint8

const (
	PhaseNone TouchPhase = iota
	PhaseBegan
	PhaseMoved
	PhaseEnded
)

var touchPhaseNames = [...]string{"none", "began", "moved", "ended"}

func (p TouchPhase) String() string {
	if int(p) < len(touchPhaseNames) {
		return touchPhaseNames[p]
	}
	return "unknown"
}

// GestureKind identifies a recognized gesture.
type GestureKind uint8

const (
	GestureTap GestureKind = iota
	GestureSwipe
	GestureRotateBegin
	GestureRotate
	GestureRotateEnd
	GestureLongPress
)

var gestureKindNames = [...]string{"tap", "swipe", "rotate_begin", "rotate", "rotate_end", "long_press"}

func (k GestureKind) String() string {
	if int(k) < len(gestureKindNames) {
		return gestureKindNames[k]
	}
	return "unknown"
}

// GestureEvent is delivered to OnGesture subscribers.
type GestureEvent struct {
	Kind   GestureKind
	Target *Object

	Start, End Vec2 // screen pixels
	// Vector is End-Start in a Y-up frame (GestureSwipe only).
	Vector   Vec2
	Angle    float64 // swipe direction, or rotation angle for rotate kinds
	Delta    float64 // degrees applied by a GestureRotate sample
	Duration float64
	Movement float64
	Valid    bool
}

// touchState is the per-touch record. The target is captured once at touch
// begin and only ever cleared afterwards, never replaced.
type touchState struct {
	phase     TouchPhase
	start     Vec2
	current   Vec2
	startTime float64
	duration  float64
	movement  float64
	rotating  bool
	target    *Object
}

// GestureClassifier turns the primary touch stream into tap, swipe, rotate
// and long-press gestures on the object captured at touch begin.
type GestureClassifier struct {
	cfg    GestureConfig
	world  Prober
	camera *Camera
	source PointerSource

	interactor *Interactor
	store      EventStore

	clock float64
	touch touchState

	onGesture    callbackList[GestureEvent]
	onTouchBegan callbackList[*Object]
	onTouchEnded callbackList[*Object]
}

// NewGestureClassifier creates a classifier. A nil source leaves it inert; a
// nil world or camera makes every touch capture nothing.
func NewGestureClassifier(world Prober, camera *Camera, source PointerSource, cfg GestureConfig) *GestureClassifier {
	return &GestureClassifier{cfg: cfg, world: world, camera: camera, source: source}
}

// Config returns the classifier settings.
func (g *GestureClassifier) Config() GestureConfig { return g.cfg }

// SetEnabled toggles recognition. Disabling mid-touch cancels the touch.
func (g *GestureClassifier) SetEnabled(enabled bool) {
	if !enabled && g.touch.phase != PhaseNone {
		g.Cancel()
	}
	g.cfg.Enabled = enabled
}

// SetInteractor sets the party passed to executed interactions.
func (g *GestureClassifier) SetInteractor(i *Interactor) { g.interactor = i }

// SetCamera replaces the camera used to build capture rays.
func (g *GestureClassifier) SetCamera(c *Camera) { g.camera = c }

// SetSource replaces the pointer source.
func (g *GestureClassifier) SetSource(s PointerSource) { g.source = s }

// SetEventStore forwards gesture events to store. May be nil.
func (g *GestureClassifier) SetEventStore(store EventStore) { g.store = store }

// Phase returns the current touch phase.
func (g *GestureClassifier) Phase() TouchPhase { return g.touch.phase }

// Target returns the object captured by the current touch, or nil.
func (g *GestureClassifier) Target() *Object { return g.touch.target }

// Movement returns the path length travelled by the current touch.
func (g *GestureClassifier) Movement() float64 { return g.touch.movement }

// Rotating reports whether the current touch is rotating its target.
func (g *GestureClassifier) Rotating() bool { return g.touch.rotating }

// OnGesture registers a callback fired for every recognized gesture.
func (g *GestureClassifier) OnGesture(fn func(GestureEvent)) CallbackHandle {
	return g.onGesture.add(fn)
}

// OnTouchBegan registers a callback fired at touch begin with the captured
// target, which may be nil.
func (g *GestureClassifier) OnTouchBegan(fn func(*Object)) CallbackHandle {
	return g.onTouchBegan.add(fn)
}

// OnTouchEnded registers a callback fired after a touch ends and its state is
// reset.
func (g *GestureClassifier) OnTouchEnded(fn func(*Object)) CallbackHandle {
	return g.onTouchEnded.add(fn)
}

// Update samples the source once and advances the touch state machine.
func (g *GestureClassifier) Update(dt float64) {
	g.clock += dt
	if !g.cfg.Enabled || g.source == nil {
		return
	}
	pos, touching := g.source.Touch()
	switch {
	case touching && g.touch.phase == PhaseNone:
		g.begin(pos)
	case touching:
		g.move(pos, dt)
	case g.touch.phase != PhaseNone:
		g.end(pos)
	}
}

func (g *GestureClassifier) begin(pos Vec2) {
	g.touch = touchState{
		phase:     PhaseBegan,
		start:     pos,
		current:   pos,
		startTime: g.clock,
	}
	if g.world != nil && g.camera != nil {
		g.touch.target = probeTarget(g.world, g.camera, pos, g.cfg.MaxDistance, g.cfg.Layers)
	}
	target := g.touch.target
	if it := target.Interactable(); it != nil && it.Mode() == ModeLongPress {
		it.StartLongPress()
	}
	logFor("gesture").Debug("touch began", "target", target.String(), "x", pos.X, "y", pos.Y)
	g.onTouchBegan.emit(target)
	g.emitStore(EventTouchBegan, target, false)
}

// liveTarget returns the captured target's capability, clearing the capture
// if the object was disposed or lost its capability.
func (g *GestureClassifier) liveTarget() *Interactable {
	if g.touch.target == nil {
		return nil
	}
	it := g.touch.target.Interactable()
	if it == nil {
		g.touch.target = nil
		g.touch.rotating = false
	}
	return it
}

func (g *GestureClassifier) move(pos Vec2, dt float64) {
	t := &g.touch
	t.phase = PhaseMoved
	inc := pos.Sub(t.current)
	t.current = pos
	t.movement += inc.Len()
	t.duration = g.clock - t.startTime

	it := g.liveTarget()
	if it == nil || !it.CanInteract() {
		return
	}
	switch it.Mode() {
	case ModeTap:
		if t.movement > g.cfg.MovementThreshold {
			logFor("gesture").Debug("tap cancelled by movement", "target", t.target.String(), "movement", t.movement)
			t.target = nil
		}
	case ModeRotate:
		if !t.rotating && t.movement > g.cfg.MovementThreshold {
			t.rotating = true
			it.BeginRotation()
			g.emit(GestureEvent{Kind: GestureRotateBegin, Angle: it.CurrentRotationAngle(), Valid: true})
			g.emitStore(EventRotateBegin, t.target, true)
		}
		if t.rotating && inc.X != 0 {
			delta := inc.X * it.Config().RotationSensitivity
			it.UpdateRotation(delta)
			g.emit(GestureEvent{Kind: GestureRotate, Angle: it.CurrentRotationAngle(), Delta: delta, Valid: true})
			g.emitStore(EventRotate, t.target, true)
		}
	case ModeLongPress:
		if it.UpdateLongPress(dt) {
			target := t.target
			logFor("gesture").Debug("long press completed", "target", target.String())
			it.Execute(g.interactor)
			g.emit(GestureEvent{Kind: GestureLongPress, Valid: true})
			g.emitStore(EventLongPress, target, true)
			t.target = nil
		}
	}
}

func (g *GestureClassifier) end(pos Vec2) {
	t := &g.touch
	t.phase = PhaseEnded
	t.movement += pos.Sub(t.current).Len()
	t.current = pos
	t.duration = g.clock - t.startTime

	target := t.target
	it := g.liveTarget()
	if it != nil {
		switch it.Mode() {
		case ModeTap:
			valid := t.movement <= g.cfg.MovementThreshold && t.duration <= g.cfg.MaxTapDuration
			if valid && it.CanInteract() {
				it.Execute(g.interactor)
			} else {
				valid = false
			}
			g.emit(GestureEvent{Kind: GestureTap, Valid: valid})
			g.emitStore(EventTap, target, valid)
		case ModeSwipe:
			v := screenToYUp(t.current.Sub(t.start))
			valid := it.HandleSwipe(v, g.interactor)
			logFor("gesture").Debug("swipe", "target", target.String(), "angle", VectorAngle(v), "distance", v.Len(), "valid", valid)
			g.emit(GestureEvent{Kind: GestureSwipe, Vector: v, Angle: VectorAngle(v), Valid: valid})
			g.emitStore(EventSwipe, target, valid)
		case ModeRotate:
			if t.rotating {
				it.EndRotation()
				g.emit(GestureEvent{Kind: GestureRotateEnd, Angle: it.CurrentRotationAngle(), Valid: true})
				g.emitStore(EventRotateEnd, target, true)
			}
		}
		it.CancelLongPress()
	}
	logFor("gesture").Debug("touch ended", "target", target.String(), "movement", t.movement, "duration", t.duration)
	g.emitStore(EventTouchEnded, target, false)
	g.touch = touchState{}
	g.onTouchEnded.emit(target)
}

// Cancel abandons the current touch without recognizing a gesture. Any
// rotation is ended and any long press is cancelled.
func (g *GestureClassifier) Cancel() {
	if g.touch.phase == PhaseNone {
		return
	}
	target := g.touch.target
	if it := g.liveTarget(); it != nil {
		if g.touch.rotating {
			it.EndRotation()
		}
		it.CancelLongPress()
	}
	g.touch = touchState{}
	g.onTouchEnded.emit(target)
}

// emit fills the touch fields common to every gesture event.
func (g *GestureClassifier) emit(e GestureEvent) {
	t := &g.touch
	e.Target = t.target
	e.Start = t.start
	e.End = t.current
	e.Duration = t.duration
	e.Movement = t.movement
	g.onGesture.emit(e)
}

func (g *GestureClassifier) emitStore(typ EventType, target *Object, valid bool) {
	if g.store == nil {
		return
	}
	t := &g.touch
	evt := InteractionEvent{
		Type:     typ,
		EntityID: entityOf(target),
		ScreenX:  t.current.X,
		ScreenY:  t.current.Y,
		StartX:   t.start.X,
		StartY:   t.start.Y,
		DeltaX:   t.current.X - t.start.X,
		DeltaY:   t.current.Y - t.start.Y,
		Duration: t.duration,
		Valid:    valid,
	}
	if it := target.Interactable(); it != nil && it.Mode() == ModeRotate {
		evt.Angle = it.CurrentRotationAngle()
	} else if typ == EventSwipe {
		evt.Angle = VectorAngle(screenToYUp(t.current.Sub(t.start)))
	}
	g.store.EmitEvent(evt)
}
