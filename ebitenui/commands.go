package ebitenui

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/canopy"
)

const (
	vertexStride = 16
	quadIndices  = 6
)

// Frame is a canopy.CommandList that draws straight onto an ebiten image.
// Vertex positions arrive in clip space and are mapped back to the
// viewport size given to NewFrame.
type Frame struct {
	r       *Renderer
	target  *ebiten.Image
	w, h    float64
	blend   ebiten.Blend
	active  bool
	set     canopy.DescriptorSet
	indices canopy.BufferID
	verts   []ebiten.Vertex

	// Draws and Triangles count submitted DrawTriangles calls.
	Draws     int
	Triangles int
}

// NewFrame returns a command list drawing onto target with a viewport of
// width x height.
func NewFrame(r *Renderer, target *ebiten.Image, width, height int) *Frame {
	return &Frame{
		r:      r,
		target: target,
		w:      float64(width),
		h:      float64(height),
		verts:  make([]ebiten.Vertex, 0, 4),
	}
}

// BeginPipeline selects the blend state of p.
func (f *Frame) BeginPipeline(p canopy.PipelineID) {
	desc, ok := f.r.pipeline(p)
	if !ok {
		f.active = false
		return
	}
	f.active = true
	f.blend = ebiten.BlendSourceOver
	if desc.Blend == canopy.BlendOpaque {
		f.blend = ebiten.BlendCopy
	}
}

func (f *Frame) BindDescriptorSet(set canopy.DescriptorSet) { f.set = set }

func (f *Frame) SetIndexBuffer(id canopy.BufferID) { f.indices = id }

func (f *Frame) EndPipeline() { f.active = false }

// DrawIndexed draws indexCount/6 quads of the bound widget starting at
// firstIndex. Text widgets carry one glyph texture per quad; image widgets
// one texture and an optional border.
func (f *Frame) DrawIndexed(indexCount, firstIndex int) {
	if !f.active {
		return
	}
	consts, ok := f.r.buffers[f.set.Constants]
	if !ok || len(consts) < 36 {
		return
	}
	verts, ok := f.r.buffers[f.set.Vertices]
	if !ok {
		return
	}
	idx, ok := f.r.buffers[f.indices]
	if !ok {
		return
	}
	c := readFloats(consts, 9)
	fill := color.NRGBA64{R: unit(c[0]), G: unit(c[1]), B: unit(c[2]), A: unit(c[3])}
	edge := color.NRGBA64{R: unit(c[4]), G: unit(c[5]), B: unit(c[6]), A: unit(c[7])}
	width := float32(c[8])

	quads := indexCount / quadIndices
	if f.set.Font != nil {
		glyphIdx := f.r.buffers[f.set.TextureIndices]
		tex := f.set.Font.Textures()
		for q := 0; q < quads; q++ {
			if len(glyphIdx) < (q+1)*4 {
				return
			}
			ti := binary.LittleEndian.Uint32(glyphIdx[q*4:])
			if int(ti) >= len(tex) {
				continue
			}
			img := f.r.textures[tex[ti]]
			if img == nil {
				continue
			}
			if !f.quad(verts, idx, firstIndex+q*quadIndices, img) {
				return
			}
			if width > 0 {
				for _, d := range [...][2]float32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					f.draw(img, edge, d[0]*width, d[1]*width)
				}
			}
			f.draw(img, fill, 0, 0)
		}
		return
	}

	img := whitePixel
	if t, ok := f.r.textures[f.set.Texture]; ok {
		img = t
	}
	for q := 0; q < quads; q++ {
		if !f.quad(verts, idx, firstIndex+q*quadIndices, img) {
			return
		}
		f.draw(img, fill, 0, 0)
		if width > 0 && edge.A > 0 {
			x0, y0 := f.verts[0].DstX, f.verts[0].DstY
			x1, y1 := f.verts[2].DstX, f.verts[2].DstY
			vector.StrokeRect(f.target, x0, y0, x1-x0, y1-y0, width, edge, true)
		}
	}
}

// quad decodes the 4 vertices referenced by the 6 indices at first into
// f.verts, mapping UVs onto img. It reports false when a buffer is short.
func (f *Frame) quad(verts, idx []byte, first int, img *ebiten.Image) bool {
	if len(idx) < (first+quadIndices)*2 {
		return false
	}
	base := binary.LittleEndian.Uint16(idx[first*2:])
	for i := 1; i < quadIndices; i++ {
		base = min(base, binary.LittleEndian.Uint16(idx[(first+i)*2:]))
	}
	off := int(base) * vertexStride
	if len(verts) < off+4*vertexStride {
		return false
	}
	b := img.Bounds()
	tw, th := float64(b.Dx()), float64(b.Dy())
	f.verts = f.verts[:0]
	for v := 0; v < 4; v++ {
		p := readFloats(verts[off+v*vertexStride:], 4)
		f.verts = append(f.verts, ebiten.Vertex{
			DstX: float32((p[0] + 1) / 2 * f.w),
			DstY: float32((1 - p[1]) / 2 * f.h),
			SrcX: float32(p[2] * tw),
			SrcY: float32(p[3] * th),
		})
	}
	return true
}

// draw submits f.verts tinted by col and shifted by (dx, dy).
func (f *Frame) draw(img *ebiten.Image, col color.NRGBA64, dx, dy float32) {
	a := float32(col.A) / 0xffff
	var vs [4]ebiten.Vertex
	for i, v := range f.verts {
		v.DstX += dx
		v.DstY += dy
		v.ColorR = float32(col.R) / 0xffff * a
		v.ColorG = float32(col.G) / 0xffff * a
		v.ColorB = float32(col.B) / 0xffff * a
		v.ColorA = a
		vs[i] = v
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = f.blend
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	f.target.DrawTriangles(vs[:], []uint16{0, 1, 2, 2, 3, 0}, img, &op)
	f.Draws++
	f.Triangles += 2
}

func readFloats(b []byte, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return out
}

func unit(v float64) uint16 {
	return uint16(min(max(v, 0), 1) * 0xffff)
}

var _ canopy.CommandList = (*Frame)(nil)
