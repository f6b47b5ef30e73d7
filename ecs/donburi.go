package ecs

import (
	"github.com/phanxgames/adaptview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ResizeEventType is the Donburi event type for applied surface resizes.
var ResizeEventType = events.NewEventType[adaptview.ResizeEvent]()

// ViewComponent stores the handle of the registry view an entity is drawn
// through.
var ViewComponent = donburi.NewComponentType[adaptview.ViewHandle]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Resize
// events are published to ResizeEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) adaptview.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitResize(event adaptview.ResizeEvent) {
	ResizeEventType.Publish(s.world, event)
}

// EntryView resolves the view an entry is drawn through. It returns false
// when the entry has no ViewComponent or the handle no longer resolves.
func EntryView(reg *adaptview.Registry, entry *donburi.Entry) (*adaptview.AdaptiveView, bool) {
	if !entry.HasComponent(ViewComponent) {
		return nil, false
	}
	return reg.View(*ViewComponent.Get(entry))
}
