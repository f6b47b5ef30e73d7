// Package ecs provides ECS adapters for adaptview.
//
// [NewDonburiSink] bridges registry resize notifications into a [Donburi]
// world as typed events. Subscribe to [ResizeEventType] in your ECS systems
// to react when the surface changes size. [ViewComponent] attaches a view
// handle to an entity so systems can look up the view it is drawn through.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	registry.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
