package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of a widget simultaneously. Create one
// via the convenience constructors (TweenPosition, TweenSize, TweenColor,
// TweenSliderValue) and call Update(dt) each frame from the UI goroutine.
// Values are applied through the regular setters, so the widget is marked
// dirty the same way a direct call would. If the widget is destroyed, the
// group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	vals   [4]float64
	apply  func(c *Context, e Entity, v [4]float64)
	ctx    *Context
	target Entity
	Done   bool
}

func newTweenGroup(c *Context, e Entity, from, to []float64, duration float32, fn ease.TweenFunc,
	apply func(*Context, Entity, [4]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), ctx: c, target: e, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.vals[i] = from[i]
	}
	return g
}

// Update advances all tweens by dt seconds and applies the new values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.ctx.Valid(g.target) {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.ctx, g.target, g.vals)
}

// TweenPosition animates the widget's position (local when parented) to
// (toX, toY).
func (c *Context) TweenPosition(e Entity, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := c.Position(e)
	return newTweenGroup(c, e, []float64{p.X, p.Y}, []float64{toX, toY}, duration, fn,
		func(c *Context, e Entity, v [4]float64) { c.SetPosition(e, Vec2{v[0], v[1]}) })
}

// TweenSize animates the widget's size to (toW, toH).
func (c *Context) TweenSize(e Entity, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := c.Size(e)
	return newTweenGroup(c, e, []float64{s.X, s.Y}, []float64{toW, toH}, duration, fn,
		func(c *Context, e Entity, v [4]float64) { c.SetSize(e, Vec2{v[0], v[1]}) })
}

// TweenColor animates all four components of the widget's color.
func (c *Context) TweenColor(e Entity, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := c.Color(e)
	return newTweenGroup(c, e,
		[]float64{from.R, from.G, from.B, from.A},
		[]float64{to.R, to.G, to.B, to.A}, duration, fn,
		func(c *Context, e Entity, v [4]float64) { c.SetColor(e, Color{v[0], v[1], v[2], v[3]}) })
}

// TweenSliderValue animates a slider's value and handle. No value-changed
// event is fired.
func (c *Context) TweenSliderValue(e Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(c, e, []float64{c.SliderValue(e)}, []float64{to}, duration, fn,
		func(c *Context, e Entity, v [4]float64) { c.SetSliderValue(e, v[0]) })
}
