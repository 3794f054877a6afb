package canopy

import "github.com/yohamta/donburi"

// Entity is the opaque, generation-checked handle of a widget. It is owned by
// the Context's entity store; parent/child links are plain Entity values.
type Entity = donburi.Entity

// Null is the zero Entity. It never refers to a live widget.
var Null = donburi.Null

// Vec2 is a 2D vector used for positions, offsets, sizes and anchors.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Rect is an axis-aligned box described by its min and max corners. The
// coordinate system has its origin at the top-left, Y increasing downward.
type Rect struct {
	Min, Max Vec2
}

// Size returns the width and height of the box.
func (r Rect) Size() Vec2 {
	return Vec2{r.Max.X - r.Min.X, r.Max.Y - r.Min.Y}
}

// Contains reports whether the point (x, y) lies inside the box.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Min.X && x <= r.Max.X &&
		y >= r.Min.Y && y <= r.Max.Y
}

// Intersects reports whether r and other overlap.
// Boxes sharing only an edge are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X &&
		r.Max.X >= other.Min.X &&
		r.Min.Y <= other.Max.Y &&
		r.Max.Y >= other.Min.Y
}

// Union returns the smallest box containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Vec2{min(r.Min.X, other.Min.X), min(r.Min.Y, other.Min.Y)},
		Max: Vec2{max(r.Max.X, other.Max.X), max(r.Max.Y, other.Max.Y)},
	}
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Min.X >= r.Min.X && other.Min.Y >= r.Min.Y &&
		other.Max.X <= r.Max.X && other.Max.Y <= r.Max.Y
}

// WidgetKind is the tagged variant selecting a widget's bundle and its
// type-specific behavior.
type WidgetKind uint8

const (
	KindPanel      WidgetKind = iota // image-backed container
	KindImage                        // plain textured quad
	KindLabel                        // static text
	KindButton                       // clickable image with a child label
	KindCheckbox                     // toggles on click or Enter
	KindSlider                       // value picked by click position
	KindInputField                   // editable text
	kindCount
)

var kindNames = [kindCount]string{
	"Panel", "Image", "Label", "Button", "Checkbox", "Slider", "InputField",
}

// String returns the kind's name.
func (k WidgetKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// RenderType selects which GPU resource bundle a render pass binds.
type RenderType uint8

const (
	RenderNone RenderType = iota
	RenderImage
	RenderText
	renderTypeCount
)

// DepthLayer is the coarse bucket of a sort key.
type DepthLayer uint8

const (
	LayerBackground DepthLayer = iota
	LayerDefault
	LayerOverlay
	LayerPopup
	LayerTooltip
	LayerDebug
)

// TextAlign controls horizontal text alignment.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// EventFlags selects which interactions a widget participates in.
type EventFlags uint8

const (
	Focusable EventFlags = 1 << iota
	Clickable
	Draggable
	Hoverable
)

// Action is the state transition carried by a mouse button or key event.
type Action uint8

const (
	Release Action = iota
	Press
	Repeat
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies a keyboard key. Only the keys the router interprets are
// named; everything else arrives as KeyUnknown and is ignored by widgets.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyTab
	KeySpace
)

// EventType identifies an interaction reported to callbacks and the EventSink.
type EventType uint8

const (
	EventClick EventType = iota
	EventFocused
	EventFocusLost
	EventDragStarted
	EventDragEnded
	EventHoverEnter
	EventHoverLeave
	EventValueChanged
	EventSubmit
)
