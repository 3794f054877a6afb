// Package ecs bridges canopy interaction events into a game-side [Donburi]
// world.
//
// The UI keeps its own registry. [NewDonburiSink] forwards click, focus,
// drag, hover, value-change and submit events into a separate world as
// typed events, so game systems react to UI input without touching UI
// entities. Subscribe to [InteractionEventType] to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(gameWorld)
//	ui.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
