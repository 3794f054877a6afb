package canopy

import (
	"encoding/binary"
	"fmt"
)

// textAdvance returns the advance function used for layout: whitespace
// has a fixed advance proportional to the font size, everything else uses
// the font's metrics.
func (c *Context) textAdvance(f Font, size float64) func(rune) float64 {
	ws := size * c.cfg.WhitespaceAdvance
	return func(r rune) float64 {
		if isSpace(r) {
			return ws
		}
		g, ok := f.GetChar(r)
		if !ok {
			return 0
		}
		return g.Advance
	}
}

func (c *Context) layoutParams(txt *Text, t *Transform, f Font) LayoutParams {
	p := LayoutParams{
		MaxWidth:       t.Size.X,
		Advance:        c.textAdvance(f, txt.FontSize),
		ScrollForward:  c.cfg.ScrollForward,
		ScrollBackward: c.cfg.ScrollBackward,
	}
	if txt.Multiline {
		p.MaxLines = txt.MaxLines
	} else {
		p.MaxLines = 1
	}
	return p
}

// loadTextFont resolves the font of txt, loading it when the path or size
// changed.
func (c *Context) loadTextFont(txt *Text) (Font, error) {
	path := txt.FontPath
	if path == "" {
		path = c.cfg.FontPath
	}
	if txt.font != nil && txt.loadedFont == path && txt.loadedSize == txt.FontSize {
		return txt.font, nil
	}
	f, err := c.font(path, txt.FontSize)
	if err != nil {
		return nil, fmt.Errorf("load font %q size %v: %w", path, txt.FontSize, err)
	}
	txt.font, txt.loadedFont, txt.loadedSize = f, path, txt.FontSize
	return f, nil
}

// rebuildText lays out the visible window of a text widget and rewrites its
// per-glyph buffers. Vertex and texture-index buffers only grow.
func (c *Context) rebuildText(e Entity) {
	en := c.entry(e)
	txt := TextComponent.Get(en)
	r := RenderableComponent.Get(en)
	t := TransformComponent.Get(en)

	f, err := c.loadTextFont(txt)
	if err != nil {
		Logger().Warn("canopy: text rebuild", "entity", e, "err", err)
		return
	}
	txt.Pushback = clampIndex(txt.Pushback, len(txt.runes))
	p := c.layoutParams(txt, t, f)
	lines, _ := CalculateLineWidthsAndBreaks(txt.runes, txt.Pushback, p)

	glyphs := 0
	for _, ln := range lines {
		for _, ch := range txt.runes[ln.Start:ln.End] {
			if !isSpace(ch) {
				glyphs++
			}
		}
	}
	glyphs = min(glyphs, maxQuads)

	if glyphs > r.QuadCapacity {
		if err := c.growTextBuffers(r, glyphs); err != nil {
			Logger().Warn("canopy: text rebuild", "entity", e, "err", err)
			return
		}
	}
	if r.Constants == 0 {
		if r.Constants, err = c.createBuffer("text-constants", BufferConstant, constantBytes); err != nil {
			Logger().Warn("canopy: text rebuild", "entity", e, "err", err)
			return
		}
	}
	err = c.writeBuffer(r.Constants, func(b []byte) {
		off := putFloats(b, 0, txt.Color.R, txt.Color.G, txt.Color.B, txt.Color.A)
		off = putFloats(b, off, txt.OutlineColor.R, txt.OutlineColor.G, txt.OutlineColor.B, txt.OutlineColor.A)
		putFloats(b, off, txt.OutlineWidth, txt.FontSize, 0, 0)
	})
	if err != nil {
		Logger().Warn("canopy: text rebuild", "entity", e, "err", err)
		return
	}

	if glyphs > 0 {
		box := ownBox(t)
		step := txt.FontSize * txt.LineHeight
		var verts, indices []byte
		emitted := 0
		emit := func() {
			for li, ln := range lines {
				x := box.Min.X + alignOffset(txt.Align, t.Size.X, ln.Width)
				top := box.Min.Y + float64(li)*step
				for _, ch := range txt.runes[ln.Start:ln.End] {
					if isSpace(ch) {
						x += p.Advance(ch)
						continue
					}
					if emitted == glyphs {
						return
					}
					g, _ := f.GetChar(ch)
					tl := Vec2{x + g.XOffset, top + g.YOffset}
					c.putQuad(verts, emitted*quadVertices*vertexStride, Rect{Min: tl, Max: tl.Add(Vec2{g.Width, g.Height})})
					binary.LittleEndian.PutUint32(indices[emitted*4:], g.TextureIndex)
					emitted++
					x += g.Advance
				}
			}
		}
		var indexErr error
		err = c.writeBuffer(r.Vertices, func(vb []byte) {
			verts = vb
			indexErr = c.writeBuffer(r.TextureIndices, func(ib []byte) {
				indices = ib
				emit()
			})
		})
		if err == nil {
			err = indexErr
		}
		if err != nil {
			Logger().Warn("canopy: text rebuild", "entity", e, "err", err)
			return
		}
		if err = c.ensureQuadIndices(glyphs); err != nil {
			Logger().Warn("canopy: text rebuild", "entity", e, "err", err)
			return
		}
	}
	txt.GlyphCount = glyphs
	r.IndexCount = glyphs * quadIndices
	c.stats.Rebuilt++
	c.stats.Glyphs += glyphs
}

// growTextBuffers replaces the glyph buffers with ones holding at least
// quads glyphs.
func (c *Context) growTextBuffers(r *Renderable, quads int) error {
	newCap := min(max(quads, 2*r.QuadCapacity, 16), maxQuads)
	vb, err := c.createBuffer("text-vertices", BufferVertex, newCap*quadVertices*vertexStride)
	if err != nil {
		return err
	}
	ib, err := c.createBuffer("text-texture-indices", BufferStorage, newCap*4)
	if err != nil {
		c.renderer.QueueDestroyBuffer(vb)
		return err
	}
	if r.Vertices != 0 {
		c.renderer.QueueDestroyBuffer(r.Vertices)
	}
	if r.TextureIndices != 0 {
		c.renderer.QueueDestroyBuffer(r.TextureIndices)
	}
	Logger().Debug("canopy: text buffers grown", "from", r.QuadCapacity, "to", newCap)
	r.Vertices, r.TextureIndices, r.QuadCapacity = vb, ib, newCap
	c.stats.Reallocations++
	return nil
}

func alignOffset(align TextAlign, boxWidth, lineWidth float64) float64 {
	switch align {
	case TextAlignCenter:
		return (boxWidth - lineWidth) / 2
	case TextAlignRight:
		return boxWidth - lineWidth
	}
	return 0
}

func (c *Context) text(e Entity) *Text {
	en := c.entry(e)
	if !en.HasComponent(TextComponent) {
		panic(fmt.Sprintf("canopy: widget %v (%v) has no text", e, c.kind(e)))
	}
	return TextComponent.Get(en)
}

// Text returns the content of a text widget. For a button it is the
// content of its label.
func (c *Context) Text(e Entity) string {
	return c.text(c.textTarget(e)).String()
}

// SetText replaces the content of a text widget. For a button it sets the
// label. Indices are clamped to the new length.
func (c *Context) SetText(e Entity, s string) {
	e = c.textTarget(e)
	txt := c.text(e)
	if txt.String() == s {
		return
	}
	txt.runes = []rune(s)
	in := c.inputField(e)
	if in != nil && in.CharLimit > 0 && len(txt.runes) > in.CharLimit {
		txt.runes = txt.runes[:in.CharLimit]
	}
	txt.Pushback = clampIndex(txt.Pushback, len(txt.runes))
	if in != nil {
		in.WriteHead = clampIndex(in.WriteHead, len(txt.runes))
	}
	c.MarkDirty(e)
}

// textTarget maps a button to its label.
func (c *Context) textTarget(e Entity) Entity {
	if c.kind(e) == KindButton {
		if ch := c.transform(e).Children; len(ch) > 0 {
			return ch[0]
		}
	}
	return e
}

// SetFont sets the font of a text widget. An empty path selects the
// configured default.
func (c *Context) SetFont(e Entity, path string, size float64) {
	e = c.textTarget(e)
	txt := c.text(e)
	if txt.FontPath == path && txt.FontSize == size {
		return
	}
	txt.FontPath, txt.FontSize = path, size
	c.MarkDirty(e)
}

// TextStyle is the layout style of a text widget.
type TextStyle struct {
	Align      TextAlign
	Multiline  bool
	MaxLines   int
	LineHeight float64
}

// SetTextStyle sets alignment and line settings of a text widget.
func (c *Context) SetTextStyle(e Entity, s TextStyle) {
	e = c.textTarget(e)
	txt := c.text(e)
	if s.LineHeight <= 0 {
		s.LineHeight = 1
	}
	cur := TextStyle{txt.Align, txt.Multiline, txt.MaxLines, txt.LineHeight}
	if cur == s {
		return
	}
	txt.Align, txt.Multiline, txt.MaxLines, txt.LineHeight = s.Align, s.Multiline, s.MaxLines, s.LineHeight
	c.MarkDirty(e)
}

// SetOutline sets the text outline.
func (c *Context) SetOutline(e Entity, col Color, width float64) {
	e = c.textTarget(e)
	txt := c.text(e)
	if txt.OutlineColor == col && txt.OutlineWidth == width {
		return
	}
	txt.OutlineColor, txt.OutlineWidth = col, width
	c.MarkDirty(e)
}

// SetPushback scrolls a text widget so that character i is the first one
// shown.
func (c *Context) SetPushback(e Entity, i int) {
	txt := c.text(e)
	i = clampIndex(i, len(txt.runes))
	if txt.Pushback == i {
		return
	}
	txt.Pushback = i
	c.MarkDirty(e)
}
