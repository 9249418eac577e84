// Package ecs provides ECS adapters for orrery's interaction event system.
//
// [NewDonburiStore] bridges orrery interaction events (focus, touch, tap,
// swipe, rotate, long press) into a [Donburi] world as typed events.
// Subscribe to [InteractionEventType] in your ECS systems to receive them.
//
// [Registry] mirrors world objects as Donburi entities keyed by a stable
// entity id, so systems resolve an event's EntityID back to its object
// and Interactable once instead of searching the world.
//
// Usage:
//
//	reg := ecs.NewRegistry(world)
//	reg.Register(door)
//	controller.SetEventStore(ecs.NewDonburiStore(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
