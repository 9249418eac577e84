package ecs

import (
	"github.com/phanxgames/orrery"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for orrery interaction events.
// Subscribe to this in your ECS systems to receive focus and gesture events.
var InteractionEventType = events.NewEventType[orrery.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) orrery.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event orrery.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
