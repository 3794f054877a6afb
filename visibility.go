package canopy

// SetVisible shows or hides e and, when its effective visibility flips,
// propagates to its subtree.
func (c *Context) SetVisible(e Entity, visible bool) {
	if c.UpdateVisibility(e, visible) {
		c.visToggled = append(c.visToggled, e)
		c.UpdateChildVisibility(e, c.visibility(e).Effective())
	}
}

// Visible reports e's self-authored visibility.
func (c *Context) Visible(e Entity) bool {
	return c.visibility(e).Visible
}

// EffectivelyVisible reports whether e is drawn: it and all its ancestors
// are visible.
func (c *Context) EffectivelyVisible(e Entity) bool {
	return c.visibility(e).Effective()
}

// UpdateVisibility sets e's own visibility and reports whether its
// effective visibility changed. It does not touch children.
func (c *Context) UpdateVisibility(e Entity, visible bool) bool {
	v := c.visibility(e)
	old := v.Effective()
	v.Visible = visible
	return old != v.Effective()
}

// UpdateParentVisibility sets e's inherited visibility and reports whether
// its effective visibility changed. When it did, the subtree is updated.
func (c *Context) UpdateParentVisibility(e Entity, parentVisible bool) bool {
	v := c.visibility(e)
	old := v.Effective()
	v.ParentVisible = parentVisible
	if old == v.Effective() {
		return false
	}
	c.visToggled = append(c.visToggled, e)
	c.UpdateChildVisibility(e, v.Effective())
	return true
}

// UpdateChildVisibility pushes effective down to e's children. Recursion
// stops at children whose own effective visibility does not flip. Every
// flipped child is queued for the draw list rebuild.
func (c *Context) UpdateChildVisibility(e Entity, effective bool) {
	for _, child := range c.transform(e).Children {
		v := c.visibility(child)
		old := v.Effective()
		v.ParentVisible = effective
		if old == v.Effective() {
			continue
		}
		c.visToggled = append(c.visToggled, child)
		c.UpdateChildVisibility(child, v.Effective())
	}
}

// VisibilityChanges returns the widgets whose effective visibility flipped
// since the last Update. The slice is reused; copy it to keep it.
func (c *Context) VisibilityChanges() []Entity {
	return c.visToggled
}
