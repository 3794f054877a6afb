package canopy

import (
	"fmt"

	"github.com/phanxgames/canopy/script"

	"github.com/yohamta/donburi"
)

// build attaches the component bundle of kind to a pooled entity. Buttons
// and sliders also get their child widget.
func (c *Context) build(e Entity, kind WidgetKind, name string) {
	en := c.world.Entry(e)
	donburi.Add(en, WidgetComponent, &Widget{Kind: kind, Name: name})
	// pooled may be the only component; drop it once another exists.
	if en.HasComponent(pooled) {
		en.RemoveComponent(pooled)
	}
	donburi.Add(en, TransformComponent, &Transform{})
	donburi.Add(en, CollisionComponent, &Collision{})
	donburi.Add(en, VisibilityComponent, &Visibility{Visible: true, ParentVisible: true})
	donburi.Add(en, SortKeyComponent, &SortKey{Layer: LayerDefault, Compound: c.nextCompound()})

	switch kind {
	case KindPanel, KindImage:
		c.addImage(en)
	case KindLabel:
		c.addText(en)
	case KindButton:
		c.addImage(en)
		c.addEvents(en, Clickable|Hoverable)
	case KindCheckbox:
		c.addImage(en)
		donburi.Add(en, CheckboxComponent, &Checkbox{})
		c.addEvents(en, Clickable|Hoverable)
	case KindSlider:
		c.addImage(en)
		donburi.Add(en, SliderComponent, &Slider{Max: 1})
		c.addEvents(en, Clickable|Hoverable)
	case KindInputField:
		c.addText(en)
		donburi.Add(en, InputFieldComponent, &InputField{})
		c.addEvents(en, Focusable|Clickable|Hoverable)
	default:
		panic(fmt.Sprintf("canopy: cannot build widget of kind %v", kind))
	}
	en.AddComponent(Dirty)
	en.AddComponent(BoundsDirty)
	c.sortDirty = true

	switch kind {
	case KindButton:
		label := c.AcquireEntity()
		c.build(label, KindLabel, name+".label")
		c.SetParent(label, e)
		c.SetFillParentSize(label, true)
		c.SetLocalAnchor(label, Vec2{0.5, 0.5})
		c.SetAnchor(label, Vec2{0.5, 0.5})
		c.SetTextStyle(label, TextStyle{Align: TextAlignCenter, LineHeight: 1.2})
	case KindSlider:
		handle := c.AcquireEntity()
		c.build(handle, KindImage, name+".handle")
		c.SetParent(handle, e)
		c.SetLocalAnchor(handle, Vec2{0.5, 0.5})
		c.SetAnchor(handle, Vec2{0, 0.5})
		SliderComponent.Get(c.world.Entry(e)).Handle = handle
	}
}

func (c *Context) addImage(en *donburi.Entry) {
	donburi.Add(en, RenderableComponent, &Renderable{Type: RenderImage})
	donburi.Add(en, ImageComponent, &Image{Color: ColorWhite})
}

func (c *Context) addText(en *donburi.Entry) {
	donburi.Add(en, RenderableComponent, &Renderable{Type: RenderText})
	donburi.Add(en, TextComponent, &Text{
		FontSize:   c.cfg.FontSize,
		LineHeight: 1.2,
		Color:      ColorWhite,
	})
}

func (c *Context) addEvents(en *donburi.Entry, flags EventFlags) {
	en.AddComponent(Collidable)
	donburi.Add(en, EventsComponent, &Events{Flags: flags})
}

// NewWidget creates a widget of kind immediately. UI goroutine only.
func (c *Context) NewWidget(kind WidgetKind, name string) Entity {
	e := c.AcquireEntity()
	c.build(e, kind, name)
	return e
}

// NewPanel creates an image-backed container.
func (c *Context) NewPanel(name string) Entity {
	return c.NewWidget(KindPanel, name)
}

// NewImage creates a textured quad.
func (c *Context) NewImage(name, path string) Entity {
	e := c.NewWidget(KindImage, name)
	c.SetTexture(e, path)
	return e
}

// NewLabel creates static text.
func (c *Context) NewLabel(name, text string) Entity {
	e := c.NewWidget(KindLabel, name)
	c.SetText(e, text)
	return e
}

// NewButton creates a clickable image with a centered label child.
func (c *Context) NewButton(name, text string) Entity {
	e := c.NewWidget(KindButton, name)
	c.SetText(e, text)
	return e
}

// NewCheckbox creates a toggle.
func (c *Context) NewCheckbox(name string, checked bool) Entity {
	e := c.NewWidget(KindCheckbox, name)
	c.SetChecked(e, checked)
	return e
}

// NewSlider creates a slider over [lo, hi] set to value.
func (c *Context) NewSlider(name string, lo, hi, value float64) Entity {
	e := c.NewWidget(KindSlider, name)
	c.SetSliderRange(e, lo, hi)
	c.SetSliderValue(e, value)
	return e
}

// NewInputField creates editable text with the write head at the end.
func (c *Context) NewInputField(name, text string) Entity {
	e := c.NewWidget(KindInputField, name)
	c.SetText(e, text)
	c.SetWriteHead(e, len([]rune(text)))
	return e
}

// Kind returns e's widget kind.
func (c *Context) Kind(e Entity) WidgetKind {
	return c.kind(e)
}

// Name returns e's name.
func (c *Context) Name(e Entity) string {
	return WidgetComponent.Get(c.entry(e)).Name
}

// BindObject sets the script object passed to e's callbacks. It is
// released through the host when e is destroyed.
func (c *Context) BindObject(e Entity, obj script.Object) {
	WidgetComponent.Get(c.entry(e)).Object = obj
}

func (c *Context) checkbox(e Entity) *Checkbox {
	en := c.entry(e)
	if !en.HasComponent(CheckboxComponent) {
		return nil
	}
	return CheckboxComponent.Get(en)
}

func (c *Context) slider(e Entity) *Slider {
	en := c.entry(e)
	if !en.HasComponent(SliderComponent) {
		return nil
	}
	return SliderComponent.Get(en)
}

func (c *Context) inputField(e Entity) *InputField {
	en := c.entry(e)
	if !en.HasComponent(InputFieldComponent) {
		return nil
	}
	return InputFieldComponent.Get(en)
}

// Checked reports whether a checkbox is checked.
func (c *Context) Checked(e Entity) bool {
	cb := c.checkbox(e)
	return cb != nil && cb.Checked
}

// SetChecked sets a checkbox's state.
func (c *Context) SetChecked(e Entity, checked bool) {
	cb := c.checkbox(e)
	if cb == nil || cb.Checked == checked {
		return
	}
	cb.Checked = checked
	c.MarkDirty(e)
}

// toggle flips a checkbox and fires EventValueChanged.
func (c *Context) toggle(e Entity) {
	c.SetChecked(e, !c.Checked(e))
	c.fire(e, EventValueChanged, c.events(e).OnValueChanged, Vec2{})
}

// SliderValue returns a slider's current value.
func (c *Context) SliderValue(e Entity) float64 {
	if sl := c.slider(e); sl != nil {
		return sl.Value
	}
	return 0
}

// SetSliderRange sets a slider's bounds and clamps its value.
func (c *Context) SetSliderRange(e Entity, lo, hi float64) {
	sl := c.slider(e)
	if sl == nil {
		return
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	sl.Min, sl.Max = lo, hi
	c.SetSliderValue(e, sl.Value)
}

// SetSliderValue sets a slider's value, clamped to its range, and moves the
// handle to match.
func (c *Context) SetSliderValue(e Entity, v float64) {
	sl := c.slider(e)
	if sl == nil {
		return
	}
	sl.Value = min(max(v, sl.Min), sl.Max)
	if c.world.Valid(sl.Handle) {
		c.SetAnchor(sl.Handle, Vec2{sl.Percent(), 0.5})
	}
	c.MarkDirty(e)
}

// SliderPercent returns a slider's value as 0..1 of its range.
func (c *Context) SliderPercent(e Entity) float64 {
	if sl := c.slider(e); sl != nil {
		return sl.Percent()
	}
	return 0
}

// SetSliderPercent sets a slider's value from 0..1 of its range.
func (c *Context) SetSliderPercent(e Entity, pct float64) {
	sl := c.slider(e)
	if sl == nil {
		return
	}
	pct = min(max(pct, 0), 1)
	c.SetSliderValue(e, sl.Min+(sl.Max-sl.Min)*pct)
}

// slideTo sets a slider's value from a pointer x and fires
// EventValueChanged.
func (c *Context) slideTo(e Entity, pointer Vec2) {
	box := ownBox(c.transform(e))
	pct := 0.0
	if w := box.Size().X; w > 0 {
		pct = (pointer.X - box.Min.X) / w
	}
	c.SetSliderPercent(e, pct)
	c.fire(e, EventValueChanged, c.events(e).OnValueChanged, pointer)
}
