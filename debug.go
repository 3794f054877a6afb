package canopy

import "time"

// debugLog reports frame timing and counters at debug level.
func (c *Context) debugLog(frame time.Duration) {
	s := c.stats
	Logger().Debug("canopy: frame",
		"update", frame,
		"widgets", s.Widgets,
		"rebuilt", s.Rebuilt,
		"glyphs", s.Glyphs,
		"reallocations", s.Reallocations,
		"culled", s.Culled,
		"draw_calls", s.DrawCalls,
		"pipeline_changes", s.PipelineChanges,
	)
}

// debugCheckTreeDepth warns if e sits deeper than debugMaxTreeDepth.
const debugMaxTreeDepth = 32

func (c *Context) debugCheckTreeDepth(e Entity) {
	depth := 0
	for p := e; p != Null; p = c.transform(p).Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("canopy: tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "widget", c.Name(e))
	}
}

// debugCheckChildCount warns if e has more than debugMaxChildCount
// children.
const debugMaxChildCount = 1000

func (c *Context) debugCheckChildCount(e Entity) {
	if n := len(c.transform(e).Children); n > debugMaxChildCount {
		Logger().Warn("canopy: child count exceeds threshold",
			"children", n, "threshold", debugMaxChildCount, "widget", c.Name(e))
	}
}
