package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for canopy interaction
// events.
var InteractionEventType = events.NewEventType[canopy.InteractionEvent]()

// DonburiSink publishes canopy events into a Donburi world.
type DonburiSink struct {
	world donburi.World
	kinds map[canopy.EventType]bool
}

// NewDonburiSink creates an EventSink backed by world. When types is
// non-empty only those event types are forwarded. Events are queued and
// delivered on the next ProcessEvents for the world.
func NewDonburiSink(world donburi.World, types ...canopy.EventType) *DonburiSink {
	s := &DonburiSink{world: world}
	if len(types) > 0 {
		s.kinds = make(map[canopy.EventType]bool, len(types))
		for _, t := range types {
			s.kinds[t] = true
		}
	}
	return s
}

// EmitEvent implements canopy.EventSink.
func (s *DonburiSink) EmitEvent(event canopy.InteractionEvent) {
	if s.kinds != nil && !s.kinds[event.Type] {
		return
	}
	InteractionEventType.Publish(s.world, event)
}

var _ canopy.EventSink = (*DonburiSink)(nil)
