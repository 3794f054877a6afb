package canopy

// rebuildImage rewrites the constant and vertex buffers of an image widget.
// Buffers are allocated on first use and reused after.
func (c *Context) rebuildImage(e Entity) {
	en := c.entry(e)
	img := ImageComponent.Get(en)
	r := RenderableComponent.Get(en)
	t := TransformComponent.Get(en)

	if img.Path != img.loadedPath {
		if img.Path == "" {
			r.Texture = 0
			img.loadedPath = ""
		} else if tex, err := c.texture(img.Path); err != nil {
			Logger().Warn("canopy: texture load failed", "path", img.Path, "err", err)
		} else {
			r.Texture = tex
			img.loadedPath = img.Path
		}
	}

	var err error
	if r.Constants == 0 {
		if r.Constants, err = c.createBuffer("image-constants", BufferConstant, constantBytes); err != nil {
			Logger().Warn("canopy: image rebuild", "entity", e, "err", err)
			return
		}
	}
	hasTex := 0.0
	if r.Texture != 0 {
		hasTex = 1
	}
	err = c.writeBuffer(r.Constants, func(b []byte) {
		off := putFloats(b, 0, img.Color.R, img.Color.G, img.Color.B, img.Color.A)
		off = putFloats(b, off, img.BorderColor.R, img.BorderColor.G, img.BorderColor.B, img.BorderColor.A)
		putFloats(b, off, img.BorderWidth, t.Size.X, t.Size.Y, hasTex)
	})
	if err != nil {
		Logger().Warn("canopy: image rebuild", "entity", e, "err", err)
		return
	}

	if r.Vertices == 0 {
		if r.Vertices, err = c.createBuffer("image-vertices", BufferVertex, quadVertices*vertexStride); err != nil {
			Logger().Warn("canopy: image rebuild", "entity", e, "err", err)
			return
		}
		r.QuadCapacity = 1
	}
	box := ownBox(t)
	if err = c.writeBuffer(r.Vertices, func(b []byte) { c.putQuad(b, 0, box) }); err != nil {
		Logger().Warn("canopy: image rebuild", "entity", e, "err", err)
		return
	}
	if err = c.ensureQuadIndices(1); err != nil {
		Logger().Warn("canopy: image rebuild", "entity", e, "err", err)
		return
	}
	r.IndexCount = quadIndices
	c.stats.Rebuilt++
}

// SetTexture sets the image path of an image-backed widget.
func (c *Context) SetTexture(e Entity, path string) {
	img := ImageComponent.Get(c.entry(e))
	if img.Path == path {
		return
	}
	img.Path = path
	c.MarkDirty(e)
}

// Texture returns the image path of an image-backed widget.
func (c *Context) Texture(e Entity) string {
	return ImageComponent.Get(c.entry(e)).Path
}

// SetColor sets the tint of an image or the color of a text widget.
func (c *Context) SetColor(e Entity, col Color) {
	en := c.entry(e)
	switch {
	case en.HasComponent(ImageComponent):
		img := ImageComponent.Get(en)
		if img.Color == col {
			return
		}
		img.Color = col
	case en.HasComponent(TextComponent):
		txt := TextComponent.Get(en)
		if txt.Color == col {
			return
		}
		txt.Color = col
	default:
		return
	}
	c.MarkDirty(e)
}

// Color returns the tint of an image or the color of a text widget.
func (c *Context) Color(e Entity) Color {
	en := c.entry(e)
	switch {
	case en.HasComponent(ImageComponent):
		return ImageComponent.Get(en).Color
	case en.HasComponent(TextComponent):
		return TextComponent.Get(en).Color
	}
	return ColorWhite
}

// SetBorder sets the border of an image-backed widget.
func (c *Context) SetBorder(e Entity, col Color, width float64) {
	img := ImageComponent.Get(c.entry(e))
	if img.BorderColor == col && img.BorderWidth == width {
		return
	}
	img.BorderColor, img.BorderWidth = col, width
	c.MarkDirty(e)
}
