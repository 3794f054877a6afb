package canopy

import "github.com/phanxgames/canopy/script"

// WidgetHandle is the script-facing view of one widget. It is a value type
// holding the context and entity; every call forwards to the Context and
// panics like it would if the widget has been destroyed.
type WidgetHandle struct {
	ctx *Context
	e   Entity
}

// Widget returns the binding handle for e.
func (c *Context) Widget(e Entity) WidgetHandle {
	c.entry(e)
	return WidgetHandle{ctx: c, e: e}
}

func (h WidgetHandle) Entity() Entity     { return h.e }
func (h WidgetHandle) Valid() bool        { return h.ctx.Valid(h.e) }
func (h WidgetHandle) Kind() WidgetKind   { return h.ctx.Kind(h.e) }
func (h WidgetHandle) Name() string       { return h.ctx.Name(h.e) }
func (h WidgetHandle) Position() Vec2     { return h.ctx.Position(h.e) }
func (h WidgetHandle) SetPosition(p Vec2) { h.ctx.SetPosition(h.e, p) }
func (h WidgetHandle) Size() Vec2         { return h.ctx.Size(h.e) }
func (h WidgetHandle) SetSize(s Vec2)     { h.ctx.SetSize(h.e, s) }
func (h WidgetHandle) Anchor() Vec2       { return h.ctx.Anchor(h.e) }
func (h WidgetHandle) SetAnchor(a Vec2)   { h.ctx.SetAnchor(h.e, a) }
func (h WidgetHandle) Visible() bool      { return h.ctx.Visible(h.e) }
func (h WidgetHandle) SetVisible(v bool)  { h.ctx.SetVisible(h.e, v) }
func (h WidgetHandle) Text() string       { return h.ctx.Text(h.e) }
func (h WidgetHandle) SetText(s string)   { h.ctx.SetText(h.e, s) }
func (h WidgetHandle) Color() Color       { return h.ctx.Color(h.e) }
func (h WidgetHandle) SetColor(col Color) { h.ctx.SetColor(h.e, col) }
func (h WidgetHandle) Checked() bool      { return h.ctx.Checked(h.e) }
func (h WidgetHandle) SetChecked(v bool)  { h.ctx.SetChecked(h.e, v) }
func (h WidgetHandle) Value() float64     { return h.ctx.SliderValue(h.e) }
func (h WidgetHandle) SetValue(v float64) { h.ctx.SetSliderValue(h.e, v) }
func (h WidgetHandle) Destroy()           { h.ctx.RequestDestroy(h.e) }

// PercentValue returns a slider's value as 0..1 of its range.
func (h WidgetHandle) PercentValue() float64 { return h.ctx.SliderPercent(h.e) }

// SetPercentValue sets a slider's value from 0..1 of its range.
func (h WidgetHandle) SetPercentValue(pct float64) { h.ctx.SetSliderPercent(h.e, pct) }

// SetParent reparents the widget under parent, or detaches it when parent
// is Null.
func (h WidgetHandle) SetParent(parent Entity) {
	if parent == Null {
		h.ctx.UnsetParent(h.e)
		return
	}
	h.ctx.SetParent(h.e, parent)
}

// Bind attaches the script object that receives this widget's callbacks.
func (h WidgetHandle) Bind(obj script.Object) { h.ctx.BindObject(h.e, obj) }

// events returns the Events component, adding an empty one on first use.
func (h WidgetHandle) events() *Events {
	en := h.ctx.entry(h.e)
	if !en.HasComponent(EventsComponent) {
		en.AddComponent(EventsComponent)
		if !en.HasComponent(Collidable) {
			en.AddComponent(Collidable)
		}
	}
	return EventsComponent.Get(en)
}

// SetFlags replaces the widget's interaction flags.
func (h WidgetHandle) SetFlags(flags EventFlags) { h.events().Flags = flags }

// Flags returns the widget's interaction flags.
func (h WidgetHandle) Flags() EventFlags {
	en := h.ctx.entry(h.e)
	if !en.HasComponent(EventsComponent) {
		return 0
	}
	return EventsComponent.Get(en).Flags
}

// SetDraggable toggles Draggable.
func (h WidgetHandle) SetDraggable(on bool) {
	ev := h.events()
	if on {
		ev.Flags |= Draggable
	} else {
		ev.Flags &^= Draggable
	}
}

// SetLocks pins an axis while the widget is dragged.
func (h WidgetHandle) SetLocks(lockX, lockY bool) {
	ev := h.events()
	ev.LockX, ev.LockY = lockX, lockY
}

func (h WidgetHandle) OnClick(cb script.Callback)       { h.events().OnClick = cb }
func (h WidgetHandle) OnFocused(cb script.Callback)     { h.events().OnFocused = cb }
func (h WidgetHandle) OnFocusLost(cb script.Callback)   { h.events().OnFocusLost = cb }
func (h WidgetHandle) OnDragStarted(cb script.Callback) { h.events().OnDragStarted = cb }
func (h WidgetHandle) OnDragEnded(cb script.Callback)   { h.events().OnDragEnded = cb }
func (h WidgetHandle) OnHoverEnter(cb script.Callback)  { h.events().OnHoverEnter = cb }
func (h WidgetHandle) OnHoverLeave(cb script.Callback)  { h.events().OnHoverLeave = cb }

// OnValueChanged sets the callback fired when a checkbox toggles, a slider
// moves or an input field's text is edited.
func (h WidgetHandle) OnValueChanged(cb script.Callback) { h.events().OnValueChanged = cb }

// OnSubmit sets the callback fired when Enter is pressed in a single-line
// input field. No-op for other kinds.
func (h WidgetHandle) OnSubmit(cb script.Callback) {
	if in := h.ctx.inputField(h.e); in != nil {
		in.OnSubmit = cb
	}
}
