package canopy

import (
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	queryWidgets     = donburi.NewQuery(filter.Contains(WidgetComponent))
	querySorted      = donburi.NewQuery(filter.Contains(WidgetComponent, SortKeyComponent))
	queryCollision   = donburi.NewQuery(filter.Contains(WidgetComponent, CollisionComponent))
	queryRenderable  = donburi.NewQuery(filter.Contains(WidgetComponent, RenderableComponent))
	queryBoundsDirty = donburi.NewQuery(filter.Contains(TransformComponent, BoundsDirty))
	queryDirty       = donburi.NewQuery(filter.Contains(Dirty))
	queryDestroy     = donburi.NewQuery(filter.Contains(Destroy))
	queryInputDirty  = donburi.NewQuery(filter.Contains(TransformComponent, InputFieldComponent, TextComponent, Dirty))
	queryImageDirty  = donburi.NewQuery(filter.Contains(TransformComponent, ImageComponent, Dirty))
	queryTextDirty   = donburi.NewQuery(filter.Contains(TransformComponent, TextComponent, Dirty))
)

// Update runs one frame of the pipeline, in order: AddElement,
// BuildSortKey, bounds, UpdateCulling, UpdateElement, DeleteElements. Input
// handlers should be called before Update and Render after it.
func (c *Context) Update() {
	start := time.Now()
	prev := c.stats
	c.stats = Stats{Culled: prev.Culled, DrawCalls: prev.DrawCalls, PipelineChanges: prev.PipelineChanges}

	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjected()

	c.AddElement()
	c.BuildSortKey()
	c.updateBoundsSystem()
	c.UpdateCulling()
	c.UpdateElement()
	c.DeleteElements()
	c.rebuildDrawList()

	c.stats.Widgets = len(c.sorted)
	if c.debug {
		c.debugLog(time.Since(start))
	}
}

// UpdateElement rebuilds every dirty widget: input field scroll windows
// first, then image and text GPU data. All Dirty and BoundsDirty tags are
// cleared afterwards.
func (c *Context) UpdateElement() {
	for _, e := range c.collect(queryInputDirty) {
		c.updatePushback(e)
	}
	for _, e := range c.collect(queryImageDirty) {
		c.rebuildImage(e)
	}
	for _, e := range c.collect(queryTextDirty) {
		c.rebuildText(e)
	}
	c.clearTags()
}

// rebuildDrawList recomputes the paint-ordered list of drawable widgets
// after a sort, cull, visibility or destroy change.
func (c *Context) rebuildDrawList() {
	if !c.drawDirty && len(c.visToggled) == 0 {
		return
	}
	c.drawDirty = false
	c.visToggled = c.visToggled[:0]

	c.drawList = c.drawList[:0]
	for _, e := range c.sorted {
		if !c.world.Valid(e) {
			continue
		}
		en := c.world.Entry(e)
		if !VisibilityComponent.Get(en).Effective() || CollisionComponent.Get(en).Culled {
			continue
		}
		c.drawList = append(c.drawList, e)
	}
}

// DrawList returns the widgets the next Render draws, in paint order. The
// returned slice MUST NOT be mutated by the caller.
func (c *Context) DrawList() []Entity {
	return c.drawList
}
