package orrery

import "github.com/go-gl/mathgl/mgl64"

// callbackEntry is a registered subscriber.
type callbackEntry[T any] struct {
	id uint32
	fn func(T)
}

// callbackList is an ordered subscriber list for one notification. Emission
// walks a snapshot, so handlers may remove themselves (or others) while
// running without skipping entries.
type callbackList[T any] struct {
	entries []callbackEntry[T]
	nextID  uint32
}

// handlerRemover is implemented by every callbackList instantiation.
type handlerRemover interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	list handlerRemover
}

// Remove unregisters this callback so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.list == nil {
		return
	}
	h.list.remove(h.id)
}

func (l *callbackList[T]) add(fn func(T)) CallbackHandle {
	if fn == nil {
		return CallbackHandle{}
	}
	l.nextID++
	l.entries = append(l.entries, callbackEntry[T]{id: l.nextID, fn: fn})
	return CallbackHandle{id: l.nextID, list: l}
}

func (l *callbackList[T]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			// Capped append forces a copy so in-flight emits keep their snapshot.
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *callbackList[T]) emit(v T) {
	for _, e := range l.entries {
		e.fn(v)
	}
}

func (l *callbackList[T]) len() int {
	return len(l.entries)
}

// EventStore is the interface for optional ECS integration. When set on a
// FocusResolver or GestureClassifier, interaction events are forwarded to it.
type EventStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	// PrevEntityID is the previous focus (EventFocusChanged only).
	PrevEntityID uint32

	ScreenX, ScreenY float64
	Point            mgl64.Vec3

	// Gesture fields.
	StartX, StartY float64
	DeltaX, DeltaY float64
	Duration       float64
	Angle          float64
	Valid          bool
}

func entityOf(o *Object) uint32 {
	if o == nil {
		return 0
	}
	return o.EntityID
}
