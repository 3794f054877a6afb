package canopy

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/phanxgames/canopy/script"
)

// --- Fakes ---

// fakeRenderer keeps buffers in memory and counts allocations.
type fakeRenderer struct {
	buffers   map[BufferID][]byte
	nextBuf   BufferID
	created   int
	destroyed int
	textures  map[string]TextureID
	pipelines []PipelineDesc
	fonts     int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		buffers:  make(map[BufferID][]byte),
		textures: make(map[string]TextureID),
	}
}

func (r *fakeRenderer) CreateBuffer(desc BufferDesc) (BufferID, error) {
	r.nextBuf++
	r.buffers[r.nextBuf] = make([]byte, desc.Size)
	r.created++
	return r.nextBuf, nil
}

func (r *fakeRenderer) MapBuffer(id BufferID) ([]byte, error) {
	b, ok := r.buffers[id]
	if !ok {
		return nil, fmt.Errorf("unknown buffer %d", id)
	}
	return b, nil
}

func (r *fakeRenderer) UnmapBuffer(BufferID) {}

func (r *fakeRenderer) QueueDestroyBuffer(id BufferID) {
	delete(r.buffers, id)
	r.destroyed++
}

func (r *fakeRenderer) CopyBuffer(dst, src BufferID, size int) error {
	copy(r.buffers[dst][:size], r.buffers[src][:size])
	return nil
}

var errMissingTexture = errors.New("missing texture")

func (r *fakeRenderer) LoadTexture(path string) (TextureID, error) {
	if path == "missing.png" {
		return 0, errMissingTexture
	}
	if id, ok := r.textures[path]; ok {
		return id, nil
	}
	id := TextureID(len(r.textures) + 1)
	r.textures[path] = id
	return id, nil
}

func (r *fakeRenderer) LoadFont(path string, size float64) (Font, error) {
	r.fonts++
	return fixedFont{size: size}, nil
}

func (r *fakeRenderer) CreatePipeline(desc PipelineDesc) (PipelineID, error) {
	r.pipelines = append(r.pipelines, desc)
	return PipelineID(len(r.pipelines)), nil
}

// fixedFont gives every printable character an advance of 10.
type fixedFont struct{ size float64 }

const glyphAdvance = 10

func (f fixedFont) Size() float64 { return f.size }

func (f fixedFont) GetChar(r rune) (Glyph, bool) {
	if r < ' ' {
		return Glyph{}, false
	}
	return Glyph{Advance: glyphAdvance, Width: 8, Height: 12, TextureIndex: 0}, true
}

func (f fixedFont) Textures() []TextureID { return []TextureID{1} }

// recordingList records every command as a string.
type recordingList struct {
	ops  []string
	sets []DescriptorSet
}

func (l *recordingList) BeginPipeline(p PipelineID) { l.ops = append(l.ops, fmt.Sprintf("begin %d", p)) }
func (l *recordingList) BindDescriptorSet(s DescriptorSet) {
	l.sets = append(l.sets, s)
	l.ops = append(l.ops, "bind")
}
func (l *recordingList) SetIndexBuffer(BufferID) { l.ops = append(l.ops, "index") }
func (l *recordingList) DrawIndexed(n, first int) {
	l.ops = append(l.ops, fmt.Sprintf("draw %d", n))
}
func (l *recordingList) EndPipeline() { l.ops = append(l.ops, "end") }

func (l *recordingList) count(op string) int {
	n := 0
	for _, o := range l.ops {
		if o == op {
			n++
		}
	}
	return n
}

// recordingSink collects emitted events.
type recordingSink struct {
	mu     sync.Mutex
	events []InteractionEvent
}

func (s *recordingSink) EmitEvent(ev InteractionEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) types() []EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func (s *recordingSink) has(typ EventType, e Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.Type == typ && ev.Entity == e {
			return true
		}
	}
	return false
}

func (s *recordingSink) reset() {
	s.mu.Lock()
	s.events = nil
	s.mu.Unlock()
}

// --- Setup ---

type fixture struct {
	ui   *Context
	r    *fakeRenderer
	sink *recordingSink
	host *script.Table
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{r: newFakeRenderer(), sink: &recordingSink{}, host: script.NewTable()}
	f.ui = NewContext(f.r, WithEventSink(f.sink), WithScriptHost(f.host))
	return f
}

// box creates a root panel at pos with size.
func (f *fixture) box(name string, pos, size Vec2) Entity {
	e := f.ui.NewPanel(name)
	f.ui.SetPosition(e, pos)
	f.ui.SetSize(e, size)
	return e
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func approxVec(a, b Vec2) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
