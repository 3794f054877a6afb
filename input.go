package canopy

import (
	"fmt"

	"github.com/phanxgames/canopy/script"
)

// --- Hit testing ---

// hitTest returns the front-most widget under (x, y) that takes part in
// input: it has Events, is Collidable, is effectively visible and is not
// culled. skip is never returned and never blocks. Returns Null on a miss.
func (c *Context) hitTest(x, y float64, skip Entity) Entity {
	// Iterate backward (reverse paint order): topmost widget first.
	for i := len(c.sorted) - 1; i >= 0; i-- {
		e := c.sorted[i]
		if e == skip || !c.world.Valid(e) {
			continue
		}
		en := c.world.Entry(e)
		if !en.HasComponent(EventsComponent) || !en.HasComponent(Collidable) {
			continue
		}
		if !VisibilityComponent.Get(en).Effective() {
			continue
		}
		col := CollisionComponent.Get(en)
		if col.Culled || !col.Box().Contains(x, y) {
			continue
		}
		return e
	}
	return Null
}

// HitTest returns the widget a pointer event at (x, y) would reach.
func (c *Context) HitTest(x, y float64) Entity {
	return c.hitTest(x, y, Null)
}

func (c *Context) events(e Entity) *Events {
	return EventsComponent.Get(c.entry(e))
}

// --- Firing ---

// fire invokes cb with e's script object and forwards the event to the
// sink. Callbacks run to completion before fire returns.
func (c *Context) fire(e Entity, typ EventType, cb script.Callback, pointer Vec2) {
	w := WidgetComponent.Get(c.entry(e))
	if cb != 0 {
		c.host.Invoke(cb, w.Object)
	}
	if c.sink == nil || !c.world.Valid(e) {
		return
	}
	ev := InteractionEvent{Type: typ, Entity: e, Kind: w.Kind, X: pointer.X, Y: pointer.Y}
	switch w.Kind {
	case KindCheckbox:
		if c.Checked(e) {
			ev.Value = 1
		}
	case KindSlider:
		ev.Value = c.SliderValue(e)
	case KindInputField:
		ev.Text = c.Text(e)
	}
	c.sink.EmitEvent(ev)
}

// unfocus clears focus and fires EventFocusLost on the old target.
func (c *Context) unfocus() {
	f := c.focused
	if f == Null {
		return
	}
	c.focused = Null
	if c.world.Valid(f) {
		c.fire(f, EventFocusLost, c.events(f).OnFocusLost, Vec2{})
	}
}

// Focus moves focus to e, firing EventFocusLost and EventFocused. e must
// be focusable.
func (c *Context) Focus(e Entity) {
	if c.focused == e {
		return
	}
	en := c.entry(e)
	if !en.HasComponent(EventsComponent) || EventsComponent.Get(en).Flags&Focusable == 0 {
		return
	}
	c.unfocus()
	c.focused = e
	c.fire(e, EventFocused, c.events(e).OnFocused, Vec2{})
}

// Unfocus clears focus.
func (c *Context) Unfocus() { c.unfocus() }

// --- Pointer ---

// HandleMouseButton routes a primary button event. It reports whether a
// widget consumed it.
//
// A press first drops focus (firing EventFocusLost), then the front-most
// widget under the pointer takes the event. The widget that was focused
// blocks the press without reacting to it. A press on a draggable widget
// starts a drag. A release ends a drag, or focuses and clicks the widget
// under the pointer.
func (c *Context) HandleMouseButton(x, y float64, action Action, mods KeyModifiers) bool {
	pointer := Vec2{x, y}
	if action == Release && c.dragged != Null {
		d := c.dragged
		c.dragged = Null
		if c.world.Valid(d) {
			c.fire(d, EventDragEnded, c.events(d).OnDragEnded, pointer)
		}
		return true
	}
	if action != Press && action != Release {
		return false
	}

	prev := Null
	if action == Press && c.focused != Null {
		prev = c.focused
		c.unfocus()
	}

	hit := c.hitTest(x, y, Null)
	if hit == Null {
		return false
	}
	if hit == prev || !c.world.Valid(hit) {
		return true
	}
	ev := c.events(hit)
	if ev.Flags == 0 {
		return true
	}

	if action == Press {
		if ev.Flags&Draggable != 0 {
			t := c.transform(hit)
			c.dragged = hit
			c.dragOffset = pointer.Sub(t.Position)
			c.dragStart = t.Position
			c.fire(hit, EventDragStarted, ev.OnDragStarted, pointer)
		}
		return true
	}

	if ev.Flags&Focusable != 0 {
		c.focused = hit
		c.fire(hit, EventFocused, ev.OnFocused, pointer)
	}
	if c.world.Valid(hit) && ev.Flags&Clickable != 0 {
		c.defaultAction(hit, pointer)
		c.fire(hit, EventClick, c.events(hit).OnClick, pointer)
	}
	return true
}

// defaultAction runs the click behavior of e's kind.
func (c *Context) defaultAction(e Entity, pointer Vec2) {
	switch k := c.kind(e); k {
	case KindCheckbox:
		c.toggle(e)
	case KindSlider:
		c.slideTo(e, pointer)
	case KindPanel, KindImage, KindLabel, KindButton, KindInputField:
	default:
		panic(fmt.Sprintf("canopy: no click behavior for widget kind %v", k))
	}
}

// HandleMouseMove drags the captured widget, if any, and updates the
// hovered widget. The dragged widget's subtree is re-resolved immediately
// so hit-testing later in the same frame sees it.
func (c *Context) HandleMouseMove(x, y float64) bool {
	pointer := Vec2{x, y}
	handled := false
	if d := c.dragged; d != Null && c.world.Valid(d) {
		ev := c.events(d)
		pos := pointer.Sub(c.dragOffset)
		if ev.LockX {
			pos.X = c.dragStart.X
		}
		if ev.LockY {
			pos.Y = c.dragStart.Y
		}
		c.setScreenPosition(d, pos)
		handled = true
	}

	hover := c.hitTest(x, y, c.dragged)
	if hover == c.hovered {
		return handled || hover != Null
	}
	old := c.hovered
	c.hovered = hover
	if old != Null && c.world.Valid(old) {
		if ev := c.events(old); ev.Flags&Hoverable != 0 {
			c.fire(old, EventHoverLeave, ev.OnHoverLeave, pointer)
		}
	}
	if hover != Null && c.world.Valid(hover) {
		if ev := c.events(hover); ev.Flags&Hoverable != 0 {
			c.fire(hover, EventHoverEnter, ev.OnHoverEnter, pointer)
		}
	}
	return handled || hover != Null
}

// --- Keyboard ---

// HandleKey routes a key event to the focused widget. Releases are
// swallowed. Escape always drops focus.
func (c *Context) HandleKey(key Key, action Action, mods KeyModifiers) bool {
	f := c.focused
	if f == Null || !c.world.Valid(f) {
		return false
	}
	if action == Release {
		return true
	}
	if key == KeyEscape {
		c.unfocus()
		return true
	}

	switch k := c.kind(f); k {
	case KindInputField:
		return c.editKey(f, key)
	case KindCheckbox:
		if key == KeyEnter {
			c.toggle(f)
			return true
		}
		return false
	case KindPanel, KindImage, KindLabel, KindButton, KindSlider:
		ev := c.events(f)
		if key == KeyEnter && ev.Flags&Clickable != 0 {
			c.fire(f, EventClick, ev.OnClick, Vec2{})
			return true
		}
		return false
	default:
		panic(fmt.Sprintf("canopy: no key behavior for widget kind %v", k))
	}
}

// HandleChar inserts r into the focused input field.
func (c *Context) HandleChar(r rune) bool {
	f := c.focused
	if f == Null || !c.world.Valid(f) || c.kind(f) != KindInputField {
		return false
	}
	if r < ' ' && r != '\t' {
		return false
	}
	if c.insertRune(f, r) {
		c.textEdited(f)
	}
	return true
}
