package canopy

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/phanxgames/canopy/script"
	"github.com/phanxgames/canopy/values"

	"github.com/yohamta/donburi"
)

// EventSink receives every interaction the router fires. It is the bridge to
// a game-side world (see package ecs).
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent describes one fired interaction.
type InteractionEvent struct {
	Type   EventType
	Entity Entity
	Kind   WidgetKind
	// X and Y are the pointer position in screen pixels when the event was
	// caused by the pointer.
	X, Y float64
	// Value is the slider value, 1/0 for a checkbox, unused otherwise.
	Value float64
	// Text is the input field content for EventSubmit and EventValueChanged.
	Text string
}

// Stats are counters for the last Update and Render.
type Stats struct {
	Widgets         int
	Rebuilt         int // widgets whose GPU data was rewritten
	Glyphs          int
	Reallocations   int
	DrawCalls       int
	PipelineChanges int
	Culled          int
}

// Context is one independent UI world. Everything that reads or changes
// widget state takes the Context explicitly.
//
// A Context is owned by a single UI goroutine. RequestWidget,
// RequestDestroy and the Begin/End transaction methods may be called from
// any goroutine.
type Context struct {
	cfg      Config
	world    donburi.World
	renderer Renderer
	host     script.Host
	sink     EventSink
	values   *values.Store

	pool         chan Entity
	refillWanted atomic.Bool
	createQ      mpscQueue[createRequest]
	destroyQ     mpscQueue[Entity]

	txn sync.RWMutex

	focused    Entity
	hovered    Entity
	dragged    Entity
	dragOffset Vec2
	dragStart  Vec2

	compoundSeq uint32
	sorted      []Entity
	sortDirty   bool
	visToggled  []Entity
	drawList    []Entity
	drawDirty   bool

	viewport  Rect
	cullDirty bool

	fonts     map[fontKey]Font
	textures  map[string]TextureID
	pipelines [renderTypeCount]PipelineID
	quadIdx   BufferID
	quadCap   int

	stats Stats
	debug bool

	injectQueue []syntheticEvent
	testRunner  *TestRunner
}

type fontKey struct {
	path string
	size float64
}

// NewContext creates a UI world rendering through r.
func NewContext(r Renderer, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		panic(err)
	}

	c := &Context{
		cfg:       o.cfg,
		world:     donburi.NewWorld(),
		renderer:  r,
		host:      o.host,
		sink:      o.sink,
		values:    o.values,
		pool:      make(chan Entity, 2*o.cfg.PoolBatch),
		fonts:     make(map[fontKey]Font),
		textures:  make(map[string]TextureID),
		debug:     o.cfg.Debug,
		sortDirty: true,
	}
	if c.host == nil {
		c.host = script.Nop{}
	}
	if c.values == nil {
		c.values = values.NewStore()
	}
	c.createQ.init()
	c.destroyQ.init()
	c.viewport = Rect{Max: Vec2{float64(o.cfg.ViewportWidth), float64(o.cfg.ViewportHeight)}}
	c.refillPool()
	return c
}

// Config returns the configuration the Context was created with.
func (c *Context) Config() Config { return c.cfg }

// World returns the underlying entity store. Callers must not add or remove
// canopy components directly.
func (c *Context) World() donburi.World { return c.world }

// Values returns the session's named-value store.
func (c *Context) Values() *values.Store { return c.values }

// Host returns the script host callbacks are resolved through.
func (c *Context) Host() script.Host { return c.host }

// SetEventSink sets the sink that receives every fired interaction.
func (c *Context) SetEventSink(s EventSink) { c.sink = s }

// SetDebugMode enables tree-shape warnings and frame timing logs.
func (c *Context) SetDebugMode(on bool) { c.debug = on }

// Stats returns the counters of the last frame.
func (c *Context) Stats() Stats { return c.stats }

// Focused returns the focused widget or Null.
func (c *Context) Focused() Entity { return c.focused }

// Hovered returns the hovered widget or Null.
func (c *Context) Hovered() Entity { return c.hovered }

// Dragged returns the widget being dragged or Null.
func (c *Context) Dragged() Entity { return c.dragged }

// Valid reports whether e refers to a live widget.
func (c *Context) Valid(e Entity) bool {
	if e == Null || !c.world.Valid(e) {
		return false
	}
	return c.world.Entry(e).HasComponent(WidgetComponent)
}

// BeginRead acquires the advisory transaction lock for a read-only
// traversal. It does not guard the world itself.
func (c *Context) BeginRead() { c.txn.RLock() }

// EndRead releases a BeginRead.
func (c *Context) EndRead() { c.txn.RUnlock() }

// BeginWrite acquires the advisory transaction lock for a batch of
// mutations.
func (c *Context) BeginWrite() { c.txn.Lock() }

// EndWrite releases a BeginWrite.
func (c *Context) EndWrite() { c.txn.Unlock() }

// entry returns the entry of a live widget and panics otherwise.
func (c *Context) entry(e Entity) *donburi.Entry {
	if e == Null || !c.world.Valid(e) {
		panic(fmt.Sprintf("canopy: use of invalid entity %v", e))
	}
	return c.world.Entry(e)
}

func (c *Context) transform(e Entity) *Transform {
	return TransformComponent.Get(c.entry(e))
}

func (c *Context) collision(e Entity) *Collision {
	return CollisionComponent.Get(c.entry(e))
}

func (c *Context) sortKey(e Entity) *SortKey {
	return SortKeyComponent.Get(c.entry(e))
}

func (c *Context) visibility(e Entity) *Visibility {
	return VisibilityComponent.Get(c.entry(e))
}

func (c *Context) kind(e Entity) WidgetKind {
	return WidgetComponent.Get(c.entry(e)).Kind
}

// addTag sets a tag if missing. Component pointers taken earlier for the
// same entity are stale afterwards.
func addTag(en *donburi.Entry, tag donburi.IComponentType) {
	if !en.HasComponent(tag) {
		en.AddComponent(tag)
	}
}

// collect returns the entities a query matches. Systems that add or remove
// components iterate the returned slice rather than the query itself.
func (c *Context) collect(q *donburi.Query) []Entity {
	var out []Entity
	q.Each(c.world, func(en *donburi.Entry) {
		out = append(out, en.Entity())
	})
	return out
}
