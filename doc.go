// Package canopy is a retained-mode game UI layer built on a [donburi]
// entity registry.
//
// Canopy keeps a tree of widgets (panels, images, labels, buttons,
// checkboxes, sliders and input fields), tracks which ones changed, and
// rebuilds only their GPU data each frame. Rendering goes through the small
// [Renderer] and [CommandList] interfaces, so any backend can draw it. The
// ebitenui sub-package is a ready-made backend for [Ebitengine].
//
// # Quick start
//
//	ui := canopy.NewContext(renderer)
//	panel := ui.NewPanel("panel")
//	ui.SetSize(panel, canopy.Vec2{X: 200, Y: 200})
//	label := ui.NewLabel("title", "Hello")
//	ui.SetParent(label, panel)
//
// Each frame, feed input and run the pipeline:
//
//	ui.HandleMouseMove(x, y)
//	ui.Update()
//	ui.Render(commandList)
//
// # Frame pipeline
//
// [Context.Update] runs, in order: widget creation from the request queue
// ([Context.AddElement]), sort-key ordering ([Context.BuildSortKey]), bounds,
// viewport culling, GPU data rebuild for dirty widgets
// ([Context.UpdateElement]) and deferred destruction
// ([Context.DeleteElements]). Structural edits (parenting, geometry,
// visibility, text) mark widgets dirty and are picked up on the next frame.
//
// # Threading
//
// The registry belongs to the UI goroutine. Other goroutines may call
// [Context.RequestWidget] and [Context.RequestDestroy]; both go through
// lock-free queues drained by Update.
//
// # Scripting
//
// Callbacks are opaque [script.Callback] handles resolved by a
// [script.Host]. [Context.Widget] returns a [WidgetHandle] exposing the
// script-facing getters, setters and callback slots.
//
// [donburi]: https://github.com/yohamta/donburi
// [Ebitengine]: https://ebitengine.org
package canopy
