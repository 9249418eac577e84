package orrery

// objectIDCounter is a plain counter; orrery runs on a single goroutine.
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// Object is a world object that probes can strike. It becomes an interaction
// target when an Interactable is attached; objects without one still block
// probes but are never focused or captured.
type Object struct {
	// Identity
	ID   uint32
	Name string

	Transform

	// Probing
	Layer    LayerMask
	Collider Collider
	Visible  bool

	// Metadata
	UserData any
	EntityID uint32

	// Highlighted is the visual focus marker. HighlightLevel is its tweened
	// intensity, driven by the attached Interactable.
	Highlighted    bool
	HighlightLevel float64
	HighlightColor Color

	interactable *Interactable
	world        *World
	disposed     bool
}

// NewObject creates a visible object on the interaction layer.
func NewObject(name string, collider Collider) *Object {
	return &Object{
		ID:        nextObjectID(),
		Name:      name,
		Transform: identityTransform,
		Layer:     LayerInteraction,
		Collider:  collider,
		Visible:   true,
	}
}

// Interactable returns the attached interaction capability, or nil.
func (o *Object) Interactable() *Interactable {
	if o == nil || o.disposed {
		return nil
	}
	return o.interactable
}

// SetInteractable attaches it to this object, detaching it from any previous
// owner. The object's current orientation becomes the rotation baseline.
// Passing nil removes the capability.
func (o *Object) SetInteractable(it *Interactable) {
	if globalDebug {
		debugCheckDisposed(o, "SetInteractable")
	}
	if o.interactable != nil {
		o.interactable.owner = nil
	}
	o.interactable = it
	if it == nil {
		return
	}
	if it.owner != nil && it.owner != o {
		it.owner.interactable = nil
	}
	it.attach(o)
}

// CanInteract reports whether the object exposes the interaction capability
// and that capability currently allows interaction.
func (o *Object) CanInteract() bool {
	it := o.Interactable()
	return it != nil && it.CanInteract()
}

// World returns the world the object belongs to, or nil.
func (o *Object) World() *World {
	return o.world
}

// Dispose removes the object from its world and marks it disposed. Focus and
// gesture components drop references to disposed objects on their next tick.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	if o.world != nil {
		o.world.Remove(o)
	}
	o.disposed = true
	o.ID = 0
	if o.interactable != nil {
		o.interactable.owner = nil
		o.interactable = nil
	}
	o.Collider = nil
	o.UserData = nil
}

// IsDisposed returns true if this object has been disposed.
func (o *Object) IsDisposed() bool {
	return o.disposed
}

// String returns the object name for logging.
func (o *Object) String() string {
	if o == nil {
		return "<none>"
	}
	return o.Name
}
