package canopy

// --- Tree manipulation ---

// SetParent attaches e to parent, detaching it from any previous parent.
// The widget keeps its on-screen position: its current Position becomes an
// offset from the parent's anchor point. Depth becomes parent depth + 1 for
// e and its whole subtree, and e paints above its existing siblings.
// Panics if parent is e or a descendant of e.
func (c *Context) SetParent(e, parent Entity) {
	if e == parent {
		panic("canopy: widget cannot be its own parent")
	}
	if c.isAncestor(e, parent) {
		panic("canopy: reparenting would create a cycle")
	}
	t := c.transform(e)
	pt := c.transform(parent)

	if t.Parent != Null {
		c.detach(e, t)
	}
	t.Parent = parent
	pt.Children = append(pt.Children, e)

	t.LocalPosition = t.Position.Sub(c.anchorPoint(parent, t.Anchor))
	if t.FillParentSize {
		t.Size = pt.Size
	}

	pk := c.sortKey(parent)
	k := c.sortKey(e)
	delta := int(pk.Depth) + 1 - int(k.Depth)
	k.Depth = pk.Depth + 1
	k.Layer = pk.Layer
	k.Compound = c.nextCompound()
	c.UpdateChildDepths(e, pk.Layer, delta)
	c.sortDirty = true

	c.UpdateParentVisibility(e, c.visibility(parent).Effective())

	c.UpdateChildTransforms(e)
	c.MarkDirty(e)
	c.MarkChildrenDirty(e)
	c.MarkBoundsDirty(e)

	if c.debug {
		c.debugCheckTreeDepth(e)
		c.debugCheckChildCount(parent)
	}
}

// UnsetParent detaches e from its parent. The widget stays where it is on
// screen and its subtree moves back to depth 0. No-op for roots.
func (c *Context) UnsetParent(e Entity) {
	t := c.transform(e)
	if t.Parent == Null {
		return
	}
	c.detach(e, t)
	t.Parent = Null
	t.LocalPosition = Vec2{}

	k := c.sortKey(e)
	delta := -int(k.Depth)
	k.Depth = 0
	c.UpdateChildDepths(e, k.Layer, delta)
	c.sortDirty = true

	c.UpdateParentVisibility(e, true)
	c.MarkDirty(e)
	c.MarkBoundsDirty(e)
}

// Parent returns e's parent or Null.
func (c *Context) Parent(e Entity) Entity {
	return c.transform(e).Parent
}

// Children returns e's children in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (c *Context) Children(e Entity) []Entity {
	return c.transform(e).Children
}

// detach removes e from its parent's child list and leaves t.Parent alone.
// The old parent's box is refreshed next frame.
func (c *Context) detach(e Entity, t *Transform) {
	if !c.world.Valid(t.Parent) {
		return
	}
	pt := c.transform(t.Parent)
	pt.Children = removeEntity(pt.Children, e)
	c.MarkBoundsDirty(t.Parent)
}

// isAncestor reports whether candidate is node or one of its ancestors.
func (c *Context) isAncestor(candidate, node Entity) bool {
	for p := node; p != Null; p = c.transform(p).Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeEntity deletes the first occurrence of e, preserving order.
func removeEntity(list []Entity, e Entity) []Entity {
	for i, x := range list {
		if x == e {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = Null
			return list[:len(list)-1]
		}
	}
	return list
}
