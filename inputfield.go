package canopy

import "slices"

// WriteHead returns the caret index of an input field.
func (c *Context) WriteHead(e Entity) int {
	if in := c.inputField(e); in != nil {
		return in.WriteHead
	}
	return 0
}

// SetWriteHead moves the caret of an input field, clamped to the text.
func (c *Context) SetWriteHead(e Entity, i int) {
	in := c.inputField(e)
	if in == nil {
		return
	}
	i = clampIndex(i, c.text(e).Len())
	if in.WriteHead == i {
		return
	}
	in.WriteHead = i
	c.MarkDirty(e)
}

// SetCharLimit caps an input field's length. Zero removes the cap.
func (c *Context) SetCharLimit(e Entity, limit int) {
	if in := c.inputField(e); in != nil {
		in.CharLimit = max(limit, 0)
	}
}

// Pushback returns the first visible character of a text widget.
func (c *Context) Pushback(e Entity) int {
	return c.text(e).Pushback
}

// insertRune inserts r at the write head of a focused input field.
func (c *Context) insertRune(e Entity, r rune) bool {
	in := c.inputField(e)
	txt := c.text(e)
	if in.CharLimit > 0 && len(txt.runes) >= in.CharLimit {
		return false
	}
	in.WriteHead = clampIndex(in.WriteHead, len(txt.runes))
	txt.runes = slices.Insert(txt.runes, in.WriteHead, r)
	in.WriteHead++
	c.MarkDirty(e)
	return true
}

// editKey applies an editing key to an input field. It reports whether the
// key was consumed.
func (c *Context) editKey(e Entity, key Key) bool {
	in := c.inputField(e)
	txt := c.text(e)
	n := len(txt.runes)
	in.WriteHead = clampIndex(in.WriteHead, n)

	switch key {
	case KeyLeft:
		c.SetWriteHead(e, in.WriteHead-1)
	case KeyRight:
		c.SetWriteHead(e, in.WriteHead+1)
	case KeyHome:
		c.SetWriteHead(e, 0)
	case KeyEnd:
		c.SetWriteHead(e, n)
	case KeyBackspace:
		if in.WriteHead == 0 {
			return true
		}
		txt.runes = slices.Delete(txt.runes, in.WriteHead-1, in.WriteHead)
		in.WriteHead--
		c.textEdited(e)
	case KeyDelete:
		if in.WriteHead == n {
			return true
		}
		txt.runes = slices.Delete(txt.runes, in.WriteHead, in.WriteHead+1)
		c.textEdited(e)
	case KeyEnter:
		if txt.Multiline {
			if c.insertRune(e, '\n') {
				c.textEdited(e)
			}
			return true
		}
		c.fire(e, EventSubmit, in.OnSubmit, Vec2{})
	default:
		return false
	}
	return true
}

// textEdited clamps indices after a content change, marks the field dirty
// and fires EventValueChanged.
func (c *Context) textEdited(e Entity) {
	txt := c.text(e)
	txt.Pushback = clampIndex(txt.Pushback, len(txt.runes))
	c.MarkDirty(e)
	c.fire(e, EventValueChanged, c.events(e).OnValueChanged, Vec2{})
}

// updatePushback re-anchors an input field's scroll window on its write
// head.
func (c *Context) updatePushback(e Entity) {
	en := c.entry(e)
	txt := TextComponent.Get(en)
	in := InputFieldComponent.Get(en)
	f, err := c.loadTextFont(txt)
	if err != nil {
		Logger().Warn("canopy: input field pushback", "entity", e, "err", err)
		return
	}
	p := c.layoutParams(txt, TransformComponent.Get(en), f)
	txt.Pushback = CalculatePushback(txt.runes, txt.Pushback, in.WriteHead, txt.Multiline, p)
}
