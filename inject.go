package canopy

type syntheticKind uint8

const (
	synthButton syntheticKind = iota
	synthMove
	synthKey
	synthChar
)

// syntheticEvent is one injected input event. Screen coordinates are used,
// identical to real mouse input.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	action Action
	key    Key
	mods   KeyModifiers
	char   rune
}

// InjectPress queues a primary button press at (x, y). Injected events are
// consumed one per Update, before the pipeline runs.
func (c *Context) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthButton, x: x, y: y, action: Press})
}

// InjectMove queues a pointer move to (x, y).
func (c *Context) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a primary button release at (x, y).
func (c *Context) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthButton, x: x, y: y, action: Release})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (c *Context) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// linearly interpolated moves, a final move and release at (toX, toY).
// Minimum frames is 2.
func (c *Context) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectMove(toX, toY)
	c.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by its release.
func (c *Context) InjectKey(key Key, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue,
		syntheticEvent{kind: synthKey, key: key, action: Press, mods: mods},
		syntheticEvent{kind: synthKey, key: key, action: Release, mods: mods},
	)
}

// InjectText queues one character event per rune of s.
func (c *Context) InjectText(s string) {
	for _, r := range s {
		c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthChar, char: r})
	}
}

// PendingInjections returns the number of injected events not yet
// consumed.
func (c *Context) PendingInjections() int {
	return len(c.injectQueue)
}

// processInjected pops one injected event and routes it. It reports
// whether an event was consumed.
func (c *Context) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	ev := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch ev.kind {
	case synthButton:
		c.HandleMouseButton(ev.x, ev.y, ev.action, ev.mods)
	case synthMove:
		c.HandleMouseMove(ev.x, ev.y)
	case synthKey:
		c.HandleKey(ev.key, ev.action, ev.mods)
	case synthChar:
		c.HandleChar(ev.char)
	}
	return true
}
