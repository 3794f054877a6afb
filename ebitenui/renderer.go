// Package ebitenui is an Ebitengine backend for canopy.
//
// Buffers live in CPU memory and are decoded at draw time into
// DrawTriangles calls. Textures are ebiten images; fonts are rasterized by
// the font package and uploaded one image per glyph.
package ebitenui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/font"
)

// whitePixel backs untextured image widgets.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(image.White)
	return img
}()

// Renderer implements canopy.Renderer on top of ebiten. All methods run
// on the game goroutine.
type Renderer struct {
	buffers   map[canopy.BufferID][]byte
	nextBuf   canopy.BufferID
	doomed    []canopy.BufferID
	textures  map[canopy.TextureID]*ebiten.Image
	nextTex   canopy.TextureID
	pipelines []canopy.PipelineDesc
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		buffers:  make(map[canopy.BufferID][]byte),
		textures: make(map[canopy.TextureID]*ebiten.Image),
	}
}

// CreateBuffer allocates a zeroed buffer of desc.Size bytes.
func (r *Renderer) CreateBuffer(desc canopy.BufferDesc) (canopy.BufferID, error) {
	if desc.Size <= 0 {
		return 0, fmt.Errorf("ebitenui: buffer %q: invalid size %d", desc.Label, desc.Size)
	}
	r.nextBuf++
	r.buffers[r.nextBuf] = make([]byte, desc.Size)
	return r.nextBuf, nil
}

// MapBuffer returns the backing bytes of id.
func (r *Renderer) MapBuffer(id canopy.BufferID) ([]byte, error) {
	b, ok := r.buffers[id]
	if !ok {
		return nil, fmt.Errorf("ebitenui: unknown buffer %d", id)
	}
	return b, nil
}

// UnmapBuffer is a no-op; buffers are always CPU-visible.
func (r *Renderer) UnmapBuffer(canopy.BufferID) {}

// QueueDestroyBuffer frees id at the end of the current frame.
func (r *Renderer) QueueDestroyBuffer(id canopy.BufferID) {
	r.doomed = append(r.doomed, id)
}

// CopyBuffer copies size bytes from src to dst.
func (r *Renderer) CopyBuffer(dst, src canopy.BufferID, size int) error {
	d, ok := r.buffers[dst]
	if !ok {
		return fmt.Errorf("ebitenui: unknown buffer %d", dst)
	}
	s, ok := r.buffers[src]
	if !ok {
		return fmt.Errorf("ebitenui: unknown buffer %d", src)
	}
	if size > len(d) || size > len(s) {
		return fmt.Errorf("ebitenui: copy of %d bytes overflows buffer", size)
	}
	copy(d[:size], s[:size])
	return nil
}

// LoadTexture reads an image file into a texture.
func (r *Renderer) LoadTexture(path string) (canopy.TextureID, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return 0, fmt.Errorf("ebitenui: load texture %s: %w", path, err)
	}
	return r.addTexture(img), nil
}

// AddTexture registers an existing ebiten image as a texture.
func (r *Renderer) AddTexture(img *ebiten.Image) canopy.TextureID {
	return r.addTexture(img)
}

func (r *Renderer) addTexture(img *ebiten.Image) canopy.TextureID {
	r.nextTex++
	r.textures[r.nextTex] = img
	return r.nextTex
}

// LoadFont rasterizes a font and uploads its glyphs. An empty path uses
// the built-in face.
func (r *Renderer) LoadFont(path string, size float64) (canopy.Font, error) {
	f, err := font.Load(path, size)
	if err != nil {
		return nil, err
	}
	masks := f.Glyphs()
	ids := make([]canopy.TextureID, len(masks))
	for i, m := range masks {
		ids[i] = r.addTexture(ebiten.NewImageFromImage(m))
	}
	f.SetTextures(ids)
	return f, nil
}

// CreatePipeline records desc. Only the blend mode affects drawing.
func (r *Renderer) CreatePipeline(desc canopy.PipelineDesc) (canopy.PipelineID, error) {
	r.pipelines = append(r.pipelines, desc)
	return canopy.PipelineID(len(r.pipelines)), nil
}

// Flush frees buffers queued for destruction. Call once per frame after
// drawing.
func (r *Renderer) Flush() {
	for _, id := range r.doomed {
		delete(r.buffers, id)
	}
	r.doomed = r.doomed[:0]
}

// BufferCount returns the number of live buffers.
func (r *Renderer) BufferCount() int { return len(r.buffers) }

func (r *Renderer) pipeline(id canopy.PipelineID) (canopy.PipelineDesc, bool) {
	if id == 0 || int(id) > len(r.pipelines) {
		return canopy.PipelineDesc{}, false
	}
	return r.pipelines[id-1], true
}

var _ canopy.Renderer = (*Renderer)(nil)
