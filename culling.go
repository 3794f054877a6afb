package canopy

import "github.com/yohamta/donburi"

// Viewport returns the screen rectangle widgets are culled against.
func (c *Context) Viewport() Rect {
	return c.viewport
}

// SetViewport sets the screen size in pixels. It is used for clip-space
// conversion and culling; all widgets are rebuilt.
func (c *Context) SetViewport(width, height int) {
	vp := Rect{Max: Vec2{float64(width), float64(height)}}
	if vp == c.viewport {
		return
	}
	c.viewport = vp
	c.cullDirty = true
	for _, e := range c.collect(queryRenderable) {
		c.MarkDirty(e)
	}
}

// UpdateCulling flags widgets whose box lies entirely outside the viewport.
// It only runs after a bounds or viewport change.
func (c *Context) UpdateCulling() {
	if !c.cullDirty {
		return
	}
	c.cullDirty = false
	culled := 0
	queryCollision.Each(c.world, func(en *donburi.Entry) {
		col := CollisionComponent.Get(en)
		out := !c.viewport.Intersects(col.Box())
		if out != col.Culled {
			col.Culled = out
			c.drawDirty = true
		}
		if out {
			culled++
		}
	})
	c.stats.Culled = culled
}

// IsCulled reports whether e was outside the viewport at the last
// UpdateCulling.
func (c *Context) IsCulled(e Entity) bool {
	return c.collision(e).Culled
}
