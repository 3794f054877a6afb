package canopy

import (
	"github.com/phanxgames/canopy/script"

	"github.com/yohamta/donburi"
)

// Widget identifies an entity as a UI widget.
type Widget struct {
	Kind   WidgetKind
	Name   string
	Object script.Object // script-side wrapper, released on destroy
}

// Transform places a widget. If Parent is not Null, Position is derived:
// it is the parent's anchor point plus LocalPosition.
type Transform struct {
	Position      Vec2
	LocalPosition Vec2
	// Anchor is the normalized point of the parent's box the widget hangs
	// from.
	Anchor Vec2
	// LocalAnchor is the widget's own normalized pivot; the box is
	// [Position - Size*LocalAnchor, +Size].
	LocalAnchor    Vec2
	Size           Vec2
	FillParentSize bool
	Parent         Entity
	Children       []Entity
}

// Collision is a widget's screen-space box.
type Collision struct {
	Min, Max           Vec2
	IncludeChildBounds bool
	// Culled is set when the box is entirely outside the viewport.
	Culled bool

	// subtree is the union of this widget's own box and every descendant's.
	subtree Rect
}

// Box returns the collision box as a Rect.
func (c *Collision) Box() Rect { return Rect{Min: c.Min, Max: c.Max} }

// Visibility holds self-authored and inherited visibility.
type Visibility struct {
	Visible       bool
	ParentVisible bool
}

// Effective reports whether the widget is drawn and hit-testable.
func (v *Visibility) Effective() bool { return v.Visible && v.ParentVisible }

// SortKey orders widgets for painting (ascending) and hit-testing
// (descending).
type SortKey struct {
	Layer    DepthLayer
	Depth    uint16
	Compound uint32
}

// Key packs the sort key as layer<<48 | depth<<32 | compound.
func (k SortKey) Key() uint64 {
	return uint64(k.Layer)<<48 | uint64(k.Depth)<<32 | uint64(k.Compound)
}

// Renderable holds the GPU bundle bound when drawing a widget.
type Renderable struct {
	Type           RenderType
	Vertices       BufferID
	Constants      BufferID
	TextureIndices BufferID
	Texture        TextureID
	IndexCount     int
	// QuadCapacity is how many quads Vertices can hold. Text buffers only
	// grow.
	QuadCapacity int
}

// Image is a textured quad with an optional border.
type Image struct {
	Path        string
	Color       Color
	BorderColor Color
	BorderWidth float64

	loadedPath string
}

// Text is a run of characters laid out with a font. Indices (Pushback, the
// input field write head) count characters, not bytes.
type Text struct {
	runes    []rune
	Pushback int

	FontPath string
	FontSize float64

	Align        TextAlign
	Multiline    bool
	MaxLines     int     // 0 means unlimited when Multiline
	LineHeight   float64 // multiple of FontSize
	Color        Color
	OutlineColor Color
	OutlineWidth float64

	// GlyphCount is the number of quads emitted by the last rebuild.
	GlyphCount int

	font       Font
	loadedFont string
	loadedSize float64
}

// String returns the text content.
func (t *Text) String() string { return string(t.runes) }

// Len returns the number of characters.
func (t *Text) Len() int { return len(t.runes) }

// InputField is editable text.
type InputField struct {
	WriteHead int
	// CharLimit caps the content length. Zero means unlimited.
	CharLimit int
	OnSubmit  script.Callback
}

// Checkbox is a toggle.
type Checkbox struct {
	Checked bool
}

// Slider picks a value in [Min, Max] from the click position.
type Slider struct {
	Min, Max, Value float64
	Handle          Entity
}

// Percent returns the value's position in [Min, Max] as 0..1.
func (s *Slider) Percent() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Events holds interaction flags and script callbacks. Widgets without it
// never take part in hit-testing.
type Events struct {
	Flags EventFlags
	// LockX and LockY keep the axis at its pre-drag value while dragging.
	LockX, LockY bool

	OnClick        script.Callback
	OnFocused      script.Callback
	OnFocusLost    script.Callback
	OnDragStarted  script.Callback
	OnDragEnded    script.Callback
	OnHoverEnter   script.Callback
	OnHoverLeave   script.Callback
	OnValueChanged script.Callback
}

// Component types. These are the only package-level registrations; all
// widget state lives in a Context's world.
var (
	WidgetComponent     = donburi.NewComponentType[Widget]()
	TransformComponent  = donburi.NewComponentType[Transform]()
	CollisionComponent  = donburi.NewComponentType[Collision]()
	VisibilityComponent = donburi.NewComponentType[Visibility]()
	SortKeyComponent    = donburi.NewComponentType[SortKey]()
	RenderableComponent = donburi.NewComponentType[Renderable]()
	ImageComponent      = donburi.NewComponentType[Image]()
	TextComponent       = donburi.NewComponentType[Text]()
	InputFieldComponent = donburi.NewComponentType[InputField]()
	CheckboxComponent   = donburi.NewComponentType[Checkbox]()
	SliderComponent     = donburi.NewComponentType[Slider]()
	EventsComponent     = donburi.NewComponentType[Events]()

	// Dirty marks layout and GPU data stale.
	Dirty = donburi.NewTag()
	// BoundsDirty marks the collision box stale.
	BoundsDirty = donburi.NewTag()
	// Destroy marks a widget for teardown in the next DeleteElements pass.
	Destroy = donburi.NewTag()
	// Collidable opts a widget into hit-testing.
	Collidable = donburi.NewTag()

	pooled = donburi.NewTag()
)
