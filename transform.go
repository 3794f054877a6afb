package canopy

// ownBox returns the geometric box of a transform, ignoring children.
func ownBox(t *Transform) Rect {
	lo := t.Position.Sub(t.Size.Mul(t.LocalAnchor))
	return Rect{Min: lo, Max: lo.Add(t.Size)}
}

// anchorPoint returns the screen point at the normalized anchor of
// parent's box.
func (c *Context) anchorPoint(parent Entity, anchor Vec2) Vec2 {
	box := ownBox(c.transform(parent))
	return box.Min.Add(box.Size().Mul(anchor))
}

// UpdateChildTransforms recomputes Position (and Size for fill-parent
// children) of every descendant of e, top-down.
func (c *Context) UpdateChildTransforms(e Entity) {
	t := c.transform(e)
	for _, child := range t.Children {
		ct := c.transform(child)
		if ct.FillParentSize {
			ct.Size = t.Size
		}
		ct.Position = c.anchorPoint(e, ct.Anchor).Add(ct.LocalPosition)
		c.UpdateChildTransforms(child)
	}
}

// ScreenPosition returns the resolved screen-space position of e.
func (c *Context) ScreenPosition(e Entity) Vec2 {
	return c.transform(e).Position
}

// Position returns the authored position: LocalPosition when parented,
// Position otherwise.
func (c *Context) Position(e Entity) Vec2 {
	t := c.transform(e)
	if t.Parent != Null {
		return t.LocalPosition
	}
	return t.Position
}

// SetPosition moves e. For a parented widget pos is the offset from the
// parent's anchor point.
func (c *Context) SetPosition(e Entity, pos Vec2) {
	t := c.transform(e)
	if t.Parent != Null {
		if t.LocalPosition == pos {
			return
		}
		t.LocalPosition = pos
		t.Position = c.anchorPoint(t.Parent, t.Anchor).Add(pos)
	} else {
		if t.Position == pos {
			return
		}
		t.Position = pos
	}
	c.geometryChanged(e)
}

// setScreenPosition places e at an absolute screen position whether or
// not it has a parent.
func (c *Context) setScreenPosition(e Entity, pos Vec2) {
	t := c.transform(e)
	if t.Parent != Null {
		t.LocalPosition = pos.Sub(c.anchorPoint(t.Parent, t.Anchor))
	}
	t.Position = pos
	c.geometryChanged(e)
}

// Size returns e's size.
func (c *Context) Size(e Entity) Vec2 {
	return c.transform(e).Size
}

// SetSize resizes e. Fill-parent descendants follow.
func (c *Context) SetSize(e Entity, size Vec2) {
	t := c.transform(e)
	if t.Size == size {
		return
	}
	t.Size = size
	if sl := c.slider(e); sl != nil && c.world.Valid(sl.Handle) {
		c.SetSize(sl.Handle, Vec2{size.Y, size.Y})
	}
	c.geometryChanged(e)
}

// Anchor returns e's anchor.
func (c *Context) Anchor(e Entity) Vec2 {
	return c.transform(e).Anchor
}

// SetAnchor sets the normalized point of the parent's box e hangs from. A
// parented widget snaps to the new anchor point.
func (c *Context) SetAnchor(e Entity, anchor Vec2) {
	t := c.transform(e)
	if t.Anchor == anchor {
		return
	}
	t.Anchor = anchor
	if t.Parent != Null {
		t.Position = c.anchorPoint(t.Parent, anchor)
		t.LocalPosition = Vec2{}
	}
	c.geometryChanged(e)
}

// LocalAnchor returns e's own pivot.
func (c *Context) LocalAnchor(e Entity) Vec2 {
	return c.transform(e).LocalAnchor
}

// SetLocalAnchor sets e's own pivot.
func (c *Context) SetLocalAnchor(e Entity, anchor Vec2) {
	t := c.transform(e)
	if t.LocalAnchor == anchor {
		return
	}
	t.LocalAnchor = anchor
	c.geometryChanged(e)
}

// SetFillParentSize makes e copy its parent's size whenever the parent's
// transform is propagated.
func (c *Context) SetFillParentSize(e Entity, fill bool) {
	t := c.transform(e)
	if t.FillParentSize == fill {
		return
	}
	t.FillParentSize = fill
	if fill && t.Parent != Null {
		t.Size = c.transform(t.Parent).Size
	}
	c.geometryChanged(e)
}

// geometryChanged propagates a transform edit: descendants are re-resolved
// and marked dirty, and the box is scheduled for recompute.
func (c *Context) geometryChanged(e Entity) {
	c.UpdateChildTransforms(e)
	c.MarkDirty(e)
	c.MarkChildrenDirty(e)
	c.MarkBoundsDirty(e)
}
