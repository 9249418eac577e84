package orrery

// FocusConfig tunes a FocusResolver.
type FocusConfig struct {
	TraceMode   TraceMode
	MaxDistance float64
	Layers      LayerMask
}

// DefaultFocusConfig probes from the viewport centre up to 5000 units on the
// interaction layer.
func DefaultFocusConfig() FocusConfig {
	return FocusConfig{
		TraceMode:   TraceScreenCenter,
		MaxDistance: 5000,
		Layers:      LayerInteraction,
	}
}

// FocusChange is delivered to OnFocusChanged subscribers. Either side may be
// nil.
type FocusChange struct {
	New, Old *Object
}

// FocusResolver probes the world once per tick and keeps track of the single
// interactable object under the probe point. Transitions call EndFocus on the
// old object, BeginFocus on the new one and notify subscribers exactly once.
type FocusResolver struct {
	cfg    FocusConfig
	world  Prober
	camera *Camera
	source PointerSource

	ui    Presenter
	store EventStore

	current *Object
	lastPos Vec2

	onChanged    callbackList[FocusChange]
	onInteracted callbackList[*Object]
}

// NewFocusResolver creates a resolver. A nil world, camera or source leaves it
// inert until set.
func NewFocusResolver(world Prober, camera *Camera, source PointerSource, cfg FocusConfig) *FocusResolver {
	return &FocusResolver{cfg: cfg, world: world, camera: camera, source: source}
}

// Config returns the resolver settings.
func (f *FocusResolver) Config() FocusConfig { return f.cfg }

// SetTraceMode changes where probes originate.
func (f *FocusResolver) SetTraceMode(m TraceMode) { f.cfg.TraceMode = m }

// SetCamera replaces the camera used to build probe rays.
func (f *FocusResolver) SetCamera(c *Camera) { f.camera = c }

// SetSource replaces the pointer source.
func (f *FocusResolver) SetSource(s PointerSource) { f.source = s }

// SetPresenter sets where interaction prompts are shown. May be nil.
func (f *FocusResolver) SetPresenter(ui Presenter) { f.ui = ui }

// SetEventStore forwards focus and interaction events to store. May be nil.
func (f *FocusResolver) SetEventStore(store EventStore) { f.store = store }

// Current returns the focused object, or nil.
func (f *FocusResolver) Current() *Object { return f.current }

// HasFocus reports whether any object is focused.
func (f *FocusResolver) HasFocus() bool { return f.current != nil }

// ProbePoint returns the screen point used by the last Update.
func (f *FocusResolver) ProbePoint() Vec2 { return f.lastPos }

// OnFocusChanged registers a callback fired once per focus transition.
func (f *FocusResolver) OnFocusChanged(fn func(FocusChange)) CallbackHandle {
	return f.onChanged.add(fn)
}

// OnInteracted registers a callback fired after Interact executes the focused
// object.
func (f *FocusResolver) OnInteracted(fn func(*Object)) CallbackHandle {
	return f.onInteracted.add(fn)
}

// Update probes from the configured trace origin and applies the result. A
// probe that hits nothing, or hits an object without an interactable
// capability, clears focus.
func (f *FocusResolver) Update() {
	if f.current != nil && f.current.IsDisposed() {
		f.SetFocus(nil)
	}
	if f.world == nil || f.camera == nil || f.source == nil {
		return
	}
	pos, ok := f.probeOrigin()
	if !ok {
		return
	}
	f.lastPos = pos
	f.SetFocus(probeTarget(f.world, f.camera, pos, f.cfg.MaxDistance, f.cfg.Layers))
}

func (f *FocusResolver) probeOrigin() (Vec2, bool) {
	switch f.cfg.TraceMode {
	case TracePointer:
		return f.source.Pointer()
	case TraceTouch:
		if pos, touching := f.source.Touch(); touching {
			return pos, true
		}
		return f.camera.ViewportCenter(), true
	default:
		return f.camera.ViewportCenter(), true
	}
}

// SetFocus moves focus to o. Objects that cannot currently interact are
// treated as nil. No-op when o is already focused.
func (f *FocusResolver) SetFocus(o *Object) {
	if o != nil && !o.CanInteract() {
		o = nil
	}
	if o == f.current {
		return
	}
	old := f.current
	if it := old.Interactable(); it != nil {
		it.EndFocus()
	}
	var prompt string
	if it := o.Interactable(); it != nil {
		it.BeginFocus()
		prompt = it.Prompt()
	}
	f.current = o

	if f.ui != nil {
		if prompt != "" {
			f.ui.ShowPrompt(prompt)
		} else {
			f.ui.HidePrompt()
		}
	}
	logFor("focus").Debug("focus changed", "new", o.String(), "old", old.String())
	f.onChanged.emit(FocusChange{New: o, Old: old})
	if f.store != nil {
		f.store.EmitEvent(InteractionEvent{
			Type:         EventFocusChanged,
			EntityID:     entityOf(o),
			PrevEntityID: entityOf(old),
			ScreenX:      f.lastPos.X,
			ScreenY:      f.lastPos.Y,
		})
	}
}

// ClearFocus is SetFocus(nil).
func (f *FocusResolver) ClearFocus() { f.SetFocus(nil) }

// Interact executes the focused object's interaction. Returns false when
// nothing interactable is focused.
func (f *FocusResolver) Interact(interactor *Interactor) bool {
	o := f.current
	if o == nil || !o.CanInteract() {
		return false
	}
	o.Interactable().Execute(interactor)
	f.interacted(o)
	return true
}

// UseItemOnFocus offers item to the focused object. Returns true when it was
// accepted.
func (f *FocusResolver) UseItemOnFocus(item Item, interactor *Interactor) bool {
	o := f.current
	if o == nil || !o.CanInteract() {
		return false
	}
	if !o.Interactable().UseItem(item, interactor) {
		return false
	}
	f.interacted(o)
	return true
}

func (f *FocusResolver) interacted(o *Object) {
	f.onInteracted.emit(o)
	if f.store != nil {
		f.store.EmitEvent(InteractionEvent{Type: EventInteracted, EntityID: entityOf(o)})
	}
}

// probeTarget casts through screen point pos and returns the struck object
// when it can currently interact. Objects without the capability still block
// the probe.
func probeTarget(world Prober, camera *Camera, pos Vec2, maxDistance float64, layers LayerMask) *Object {
	origin, dir, ok := camera.ScreenRay(pos.X, pos.Y)
	if !ok {
		return nil
	}
	hit, found := world.Cast(origin, dir, maxDistance, layers)
	if !found || !hit.Object.CanInteract() {
		return nil
	}
	return hit.Object
}

// ProbeScreen casts through screen point pos and returns the raw hit, with no
// capability gate. Useful for tools and debug overlays.
func ProbeScreen(world Prober, camera *Camera, pos Vec2, maxDistance float64, layers LayerMask) (Hit, bool) {
	origin, dir, ok := camera.ScreenRay(pos.X, pos.Y)
	if !ok {
		return Hit{}, false
	}
	return world.Cast(origin, dir, maxDistance, layers)
}

