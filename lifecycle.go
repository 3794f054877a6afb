package canopy

import "slices"

// createRequest asks AddElement to attach the bundle of kind to a pooled
// entity.
type createRequest struct {
	e    Entity
	kind WidgetKind
	name string
}

// refillPool allocates one batch of bare entities and hands them to the
// pool. It runs on the UI goroutine.
func (c *Context) refillPool() {
	n := min(c.cfg.PoolBatch, cap(c.pool)-len(c.pool))
	if n <= 0 {
		return
	}
	batch := c.world.CreateMany(n, pooled)
	slices.Sort(batch)
	for _, e := range batch {
		c.pool <- e
	}
	c.refillWanted.Store(false)
	Logger().Debug("canopy: entity pool refilled", "count", n, "stock", len(c.pool))
}

// AcquireEntity pops a pooled entity, refilling the pool synchronously when
// it is empty. UI goroutine only.
func (c *Context) AcquireEntity() Entity {
	select {
	case e := <-c.pool:
		return e
	default:
	}
	c.refillPool()
	return <-c.pool
}

// RequestWidget reserves an entity for a widget of kind and queues its
// construction for the next AddElement. It may be called from any
// goroutine. When the pool is empty the caller blocks until the UI
// goroutine's next refill, so the UI goroutine itself must use the New*
// constructors instead.
func (c *Context) RequestWidget(kind WidgetKind, name string) Entity {
	var e Entity
	select {
	case e = <-c.pool:
	default:
		c.refillWanted.Store(true)
		e = <-c.pool
	}
	if n := c.createQ.push(createRequest{e: e, kind: kind, name: name}); n > c.cfg.CreateQueueCap {
		Logger().Error("canopy: create queue over capacity", "len", n, "cap", c.cfg.CreateQueueCap)
	}
	return e
}

// AddElement attaches the bundles of all queued creation requests and
// tops up the entity pool.
func (c *Context) AddElement() {
	for {
		req, ok := c.createQ.pop()
		if !ok {
			break
		}
		if !c.world.Valid(req.e) {
			continue
		}
		c.build(req.e, req.kind, req.name)
	}
	if c.refillWanted.Load() || len(c.pool) < c.cfg.PoolBatch {
		c.refillPool()
	}
}

// Destroy marks e and its whole subtree for teardown at the end of the
// next Update. UI goroutine only.
func (c *Context) Destroy(e Entity) {
	en := c.entry(e)
	addTag(en, Destroy)
	for _, child := range TransformComponent.Get(en).Children {
		c.Destroy(child)
	}
}

// RequestDestroy queues e for destruction from any goroutine.
func (c *Context) RequestDestroy(e Entity) {
	if n := c.destroyQ.push(e); n > c.cfg.DestroyQueueCap {
		Logger().Error("canopy: destroy queue over capacity", "len", n, "cap", c.cfg.DestroyQueueCap)
	}
}

// DeleteElements tears down every widget marked for destruction: its
// script object is released, its GPU buffers freed and its entity removed.
func (c *Context) DeleteElements() {
	for {
		e, ok := c.destroyQ.pop()
		if !ok {
			break
		}
		if c.Valid(e) {
			c.Destroy(e)
		}
	}

	doomed := c.collect(queryDestroy)
	if len(doomed) == 0 {
		return
	}
	for _, e := range doomed {
		c.teardown(e)
	}
	c.sorted = slices.DeleteFunc(c.sorted, func(e Entity) bool { return !c.world.Valid(e) })
	c.drawDirty = true
	Logger().Debug("canopy: widgets destroyed", "count", len(doomed))
}

func (c *Context) teardown(e Entity) {
	en := c.world.Entry(e)
	t := TransformComponent.Get(en)
	if t.Parent != Null && c.world.Valid(t.Parent) && !c.world.Entry(t.Parent).HasComponent(Destroy) {
		c.detach(e, t)
	}
	c.releaseBuffers(RenderableComponent.Get(en))
	if obj := WidgetComponent.Get(en).Object; obj != 0 {
		c.host.Release(obj)
	}
	if c.focused == e {
		c.focused = Null
	}
	if c.hovered == e {
		c.hovered = Null
	}
	if c.dragged == e {
		c.dragged = Null
	}
	c.world.Remove(e)
}

// WidgetCount returns the number of live widgets.
func (c *Context) WidgetCount() int {
	return queryWidgets.Count(c.world)
}
