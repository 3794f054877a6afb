package canopy

// UpdateBounds recomputes e's box and the boxes of all its descendants. A
// widget with IncludeChildBounds grows to the union of its own box and
// every box below it. With updateParent, ancestors are refreshed shallowly
// from their children's stored extents, stopping at the first one whose
// extent is unchanged.
func (c *Context) UpdateBounds(e Entity, updateParent bool) {
	c.updateBoundsDown(e)
	if updateParent {
		c.refreshAncestorBounds(e)
	}
	c.cullDirty = true
}

// updateBoundsDown recomputes the boxes of e's subtree and returns the
// union of every box in it.
func (c *Context) updateBoundsDown(e Entity) Rect {
	en := c.entry(e)
	t := TransformComponent.Get(en)
	col := CollisionComponent.Get(en)

	all := ownBox(t)
	for _, child := range t.Children {
		all = all.Union(c.updateBoundsDown(child))
	}
	col.subtree = all
	box := ownBox(t)
	if col.IncludeChildBounds {
		box = all
	}
	col.Min, col.Max = box.Min, box.Max
	return all
}

// shallowBounds recomputes e's extent from its own geometry and its
// children's stored extents without recursing. It reports whether the
// extent changed.
func (c *Context) shallowBounds(e Entity) bool {
	en := c.entry(e)
	t := TransformComponent.Get(en)
	col := CollisionComponent.Get(en)

	box := ownBox(t)
	all := box
	for _, child := range t.Children {
		all = all.Union(c.collision(child).subtree)
	}
	if col.IncludeChildBounds {
		box = all
	}
	if all == col.subtree && box == col.Box() {
		return false
	}
	col.subtree = all
	col.Min, col.Max = box.Min, box.Max
	return true
}

// refreshAncestorBounds walks up from e. Ancestors without
// IncludeChildBounds keep their own box but still carry the extent up to
// the ones that include it.
func (c *Context) refreshAncestorBounds(e Entity) {
	for p := c.transform(e).Parent; p != Null; p = c.transform(p).Parent {
		if !c.shallowBounds(p) {
			return
		}
	}
}

// Bounds returns e's collision box.
func (c *Context) Bounds(e Entity) Rect {
	return c.collision(e).Box()
}

// SetIncludeChildBounds makes e's box cover its descendants.
func (c *Context) SetIncludeChildBounds(e Entity, include bool) {
	col := c.collision(e)
	if col.IncludeChildBounds == include {
		return
	}
	col.IncludeChildBounds = include
	c.MarkBoundsDirty(e)
}

// updateBoundsSystem runs UpdateBounds for every BoundsDirty widget that
// has no BoundsDirty ancestor; the ancestor's pass covers it.
func (c *Context) updateBoundsSystem() {
	for _, e := range c.collect(queryBoundsDirty) {
		if !c.world.Valid(e) || c.hasDirtyAncestor(e) {
			continue
		}
		c.UpdateBounds(e, true)
	}
}

func (c *Context) hasDirtyAncestor(e Entity) bool {
	for p := c.transform(e).Parent; p != Null; p = c.transform(p).Parent {
		if c.entry(p).HasComponent(BoundsDirty) {
			return true
		}
	}
	return false
}
