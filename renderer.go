package canopy

// BufferID is a renderer-owned GPU buffer handle. Zero is never a valid
// buffer.
type BufferID uint32

// TextureID is a renderer-owned texture handle. Zero means "no texture".
type TextureID uint32

// PipelineID is a renderer-owned pipeline handle.
type PipelineID uint32

// BufferUsage says how a buffer is bound.
type BufferUsage uint8

const (
	BufferVertex BufferUsage = iota
	BufferIndex
	BufferConstant
	// BufferStorage holds per-glyph texture indices.
	BufferStorage
)

// BufferDesc describes a buffer to allocate.
type BufferDesc struct {
	Label string
	Usage BufferUsage
	Size  int // bytes
}

// BlendMode selects the color blend state of a pipeline.
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota
	BlendOpaque
)

// PipelineDesc is a declarative pipeline description.
type PipelineDesc struct {
	Label  string
	Shader string
	Blend  BlendMode
	// CullBackFaces enables back-face culling. UI quads are emitted
	// clockwise in clip space, so UI pipelines leave it off.
	CullBackFaces bool
	// VertexStride is the byte size of one vertex.
	VertexStride int
}

// Glyph holds the metrics of one character at the font's size, in pixels.
type Glyph struct {
	Advance      float64
	Width        float64
	Height       float64
	XOffset      float64 // from the pen position to the left edge
	YOffset      float64 // from the line top to the top edge
	TextureIndex uint32  // index into Font.Textures
}

// Font is a sized font face loaded by the renderer.
type Font interface {
	// Size returns the pixel size the font was loaded at.
	Size() float64
	// GetChar returns the metrics of r. ok is false when the font has no
	// glyph for r.
	GetChar(r rune) (g Glyph, ok bool)
	// Textures returns the glyph textures; Glyph.TextureIndex indexes it.
	Textures() []TextureID
}

// Renderer is the GPU boundary canopy consumes. Every method is called from
// the UI goroutine.
type Renderer interface {
	CreateBuffer(desc BufferDesc) (BufferID, error)
	// MapBuffer returns the CPU-visible bytes of a buffer until UnmapBuffer.
	MapBuffer(id BufferID) ([]byte, error)
	UnmapBuffer(id BufferID)
	// QueueDestroyBuffer releases a buffer once the GPU no longer uses it.
	QueueDestroyBuffer(id BufferID)
	CopyBuffer(dst, src BufferID, size int) error
	LoadTexture(path string) (TextureID, error)
	LoadFont(path string, size float64) (Font, error)
	CreatePipeline(desc PipelineDesc) (PipelineID, error)
}

// DescriptorSet is the per-widget resource binding used by one draw.
type DescriptorSet struct {
	Constants      BufferID
	Vertices       BufferID
	TextureIndices BufferID // text only
	Texture        TextureID
	Font           Font // text only
}

// CommandList records draw commands for one frame.
type CommandList interface {
	BeginPipeline(p PipelineID)
	BindDescriptorSet(set DescriptorSet)
	SetIndexBuffer(id BufferID)
	DrawIndexed(indexCount, firstIndex int)
	EndPipeline()
}

// Vertex layout: x, y in clip space and u, v, all float32.
const (
	vertexFloats  = 4
	vertexStride  = vertexFloats * 4
	quadVertices  = 4
	quadIndices   = 6
	constFloats   = 12
	constantBytes = constFloats * 4
	// maxQuads is the most quads one 16-bit index buffer can address.
	maxQuads = 65536 / quadVertices
)
