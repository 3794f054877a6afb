package canopy

import (
	"encoding/binary"
	"fmt"
	"math"
)

// putFloats writes vals as little-endian float32 starting at byte off.
func putFloats(b []byte, off int, vals ...float64) int {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(b[off:], math.Float32bits(float32(v)))
		off += 4
	}
	return off
}

// writeBuffer maps id, lets fill write into it and unmaps it.
func (c *Context) writeBuffer(id BufferID, fill func(b []byte)) error {
	b, err := c.renderer.MapBuffer(id)
	if err != nil {
		return fmt.Errorf("map buffer %d: %w", id, err)
	}
	fill(b)
	c.renderer.UnmapBuffer(id)
	return nil
}

func (c *Context) createBuffer(label string, usage BufferUsage, size int) (BufferID, error) {
	id, err := c.renderer.CreateBuffer(BufferDesc{Label: label, Usage: usage, Size: size})
	if err != nil {
		return 0, fmt.Errorf("create %s buffer: %w", label, err)
	}
	return id, nil
}

// toClip converts a screen point to clip space with Y up.
func (c *Context) toClip(p Vec2) (x, y float64) {
	w, h := c.viewport.Max.X, c.viewport.Max.Y
	return 2*p.X/w - 1, 1 - 2*p.Y/h
}

// putQuad writes the 4 vertices of box (top-left, top-right, bottom-right,
// bottom-left) with full-texture UVs and returns the next offset.
func (c *Context) putQuad(b []byte, off int, box Rect) int {
	x0, y0 := c.toClip(box.Min)
	x1, y1 := c.toClip(box.Max)
	off = putFloats(b, off, x0, y0, 0, 0)
	off = putFloats(b, off, x1, y0, 1, 0)
	off = putFloats(b, off, x1, y1, 1, 1)
	return putFloats(b, off, x0, y1, 0, 1)
}

// ensureQuadIndices grows the shared index buffer to address quads quads.
// It only grows.
func (c *Context) ensureQuadIndices(quads int) error {
	if quads <= c.quadCap {
		return nil
	}
	newCap := min(max(quads, 2*c.quadCap, 64), maxQuads)
	id, err := c.createBuffer("quad-indices", BufferIndex, newCap*quadIndices*2)
	if err != nil {
		return err
	}
	err = c.writeBuffer(id, func(b []byte) {
		for q := 0; q < newCap; q++ {
			base := uint16(q * quadVertices)
			off := q * quadIndices * 2
			for i, v := range [quadIndices]uint16{0, 1, 2, 2, 3, 0} {
				binary.LittleEndian.PutUint16(b[off+2*i:], base+v)
			}
		}
	})
	if err != nil {
		c.renderer.QueueDestroyBuffer(id)
		return err
	}
	if c.quadIdx != 0 {
		c.renderer.QueueDestroyBuffer(c.quadIdx)
	}
	c.quadIdx, c.quadCap = id, newCap
	c.stats.Reallocations++
	return nil
}

// texture loads path once per Context.
func (c *Context) texture(path string) (TextureID, error) {
	if id, ok := c.textures[path]; ok {
		return id, nil
	}
	id, err := c.renderer.LoadTexture(path)
	if err != nil {
		return 0, err
	}
	c.textures[path] = id
	return id, nil
}

// font loads a font once per (path, size).
func (c *Context) font(path string, size float64) (Font, error) {
	k := fontKey{path, size}
	if f, ok := c.fonts[k]; ok {
		return f, nil
	}
	f, err := c.renderer.LoadFont(path, size)
	if err != nil {
		return nil, err
	}
	c.fonts[k] = f
	return f, nil
}

// releaseBuffers queues every GPU buffer of r for destruction.
func (c *Context) releaseBuffers(r *Renderable) {
	for _, id := range [...]BufferID{r.Vertices, r.Constants, r.TextureIndices} {
		if id != 0 {
			c.renderer.QueueDestroyBuffer(id)
		}
	}
	r.Vertices, r.Constants, r.TextureIndices = 0, 0, 0
	r.QuadCapacity, r.IndexCount = 0, 0
}
