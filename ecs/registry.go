package ecs

import (
	"github.com/phanxgames/orrery"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// ObjectData is the component linking an entity to its world object.
type ObjectData struct {
	ID     uint32
	Object *orrery.Object
}

// ObjectComponent holds the object reference of registered entities.
var ObjectComponent = donburi.NewComponentType[ObjectData]()

var objectQuery = donburi.NewQuery(filter.Contains(ObjectComponent))

// Registry maps stable entity ids to Donburi entities carrying an
// ObjectComponent. The id is written to Object.EntityID at registration, so
// events emitted for the object carry it.
type Registry struct {
	world  donburi.World
	byID   map[uint32]donburi.Entity
	nextID uint32
}

// NewRegistry creates an empty registry over world.
func NewRegistry(world donburi.World) *Registry {
	return &Registry{world: world, byID: make(map[uint32]donburi.Entity)}
}

// World returns the underlying Donburi world.
func (r *Registry) World() donburi.World { return r.world }

// Register creates an entity for o and returns its id. Registering the same
// object again returns the existing id. Returns 0 for nil or disposed
// objects.
func (r *Registry) Register(o *orrery.Object) uint32 {
	if o == nil || o.IsDisposed() {
		return 0
	}
	if o.EntityID != 0 {
		if _, ok := r.byID[o.EntityID]; ok {
			return o.EntityID
		}
	}
	r.nextID++
	id := r.nextID
	e := r.world.Create(ObjectComponent)
	ObjectComponent.SetValue(r.world.Entry(e), ObjectData{ID: id, Object: o})
	r.byID[id] = e
	o.EntityID = id
	orrery.Logger().Debug("entity registered", "component", "ecs", "object", o.String(), "entity", id)
	return id
}

// Unregister removes the entity for id. No-op for unknown ids.
func (r *Registry) Unregister(id uint32) {
	e, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	if r.world.Valid(e) {
		entry := r.world.Entry(e)
		if o := ObjectComponent.Get(entry).Object; o != nil && o.EntityID == id {
			o.EntityID = 0
		}
		r.world.Remove(e)
	}
}

// Entity returns the Donburi entity for id.
func (r *Registry) Entity(id uint32) (donburi.Entity, bool) {
	e, ok := r.byID[id]
	if !ok || !r.world.Valid(e) {
		return 0, false
	}
	return e, true
}

// Object returns the object for id, or nil when unknown or disposed.
func (r *Registry) Object(id uint32) *orrery.Object {
	e, ok := r.Entity(id)
	if !ok {
		return nil
	}
	o := ObjectComponent.Get(r.world.Entry(e)).Object
	if o == nil || o.IsDisposed() {
		return nil
	}
	return o
}

// Interactable returns the capability of the object for id, or nil.
func (r *Registry) Interactable(id uint32) *orrery.Interactable {
	return r.Object(id).Interactable()
}

// Len returns the number of registered entities.
func (r *Registry) Len() int { return len(r.byID) }

// Each calls fn for every registered object that is still alive.
func (r *Registry) Each(fn func(id uint32, o *orrery.Object)) {
	objectQuery.Each(r.world, func(entry *donburi.Entry) {
		d := ObjectComponent.Get(entry)
		if d.Object != nil && !d.Object.IsDisposed() {
			fn(d.ID, d.Object)
		}
	})
}

// Prune removes entities whose objects were disposed and returns how many
// were removed.
func (r *Registry) Prune() int {
	var dead []uint32
	for id, e := range r.byID {
		if !r.world.Valid(e) {
			dead = append(dead, id)
			continue
		}
		if o := ObjectComponent.Get(r.world.Entry(e)).Object; o == nil || o.IsDisposed() {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		r.Unregister(id)
	}
	if len(dead) > 0 {
		orrery.Logger().Debug("pruned disposed entities", "component", "ecs", "count", len(dead))
	}
	return len(dead)
}
