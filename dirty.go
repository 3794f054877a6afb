package canopy

// MarkDirty schedules e's layout and GPU data for rebuild.
func (c *Context) MarkDirty(e Entity) {
	addTag(c.entry(e), Dirty)
}

// MarkChildrenDirty marks every descendant of e dirty. The walk is not
// pruned: fill-parent children must be rebuilt even if their own box did
// not change numerically.
func (c *Context) MarkChildrenDirty(e Entity) {
	for _, child := range c.transform(e).Children {
		c.MarkDirty(child)
		c.MarkChildrenDirty(child)
	}
}

// MarkBoundsDirty schedules e's collision box (and its subtree's) for
// recompute.
func (c *Context) MarkBoundsDirty(e Entity) {
	addTag(c.entry(e), BoundsDirty)
}

// IsDirty reports whether e waits for a rebuild.
func (c *Context) IsDirty(e Entity) bool {
	return c.entry(e).HasComponent(Dirty)
}

// IsBoundsDirty reports whether e's box waits for a recompute.
func (c *Context) IsBoundsDirty(e Entity) bool {
	return c.entry(e).HasComponent(BoundsDirty)
}

// clearTags removes every Dirty and BoundsDirty tag.
func (c *Context) clearTags() {
	for _, e := range c.collect(queryDirty) {
		c.world.Entry(e).RemoveComponent(Dirty)
	}
	for _, e := range c.collect(queryBoundsDirty) {
		c.world.Entry(e).RemoveComponent(BoundsDirty)
	}
}
