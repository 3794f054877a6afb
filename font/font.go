// Package font loads TrueType/OpenType faces for canopy text widgets.
//
// A Face rasterizes its glyph set eagerly into one alpha mask per glyph.
// Renderers upload the masks returned by Glyphs and register the resulting
// texture handles with SetTextures; canopy then addresses them through
// Glyph.TextureIndex.
package font

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/phanxgames/canopy"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("font: empty font data")

// DefaultRunes is the glyph set rasterized when none is given: printable
// ASCII and Latin-1.
var DefaultRunes = func() []rune {
	rs := make([]rune, 0, 95+96)
	for r := rune(0x20); r <= 0x7e; r++ {
		rs = append(rs, r)
	}
	for r := rune(0xa0); r <= 0xff; r++ {
		rs = append(rs, r)
	}
	return rs
}()

// Face is a sized, pre-rasterized font. It implements canopy.Font.
type Face struct {
	size     float64
	ascent   float64
	descent  float64
	glyphs   map[rune]canopy.Glyph
	masks    []*image.Alpha
	textures []canopy.TextureID
}

// Load reads a font file and rasterizes it at size pixels. An empty path
// loads the built-in Go Regular face.
func Load(path string, size float64) (*Face, error) {
	if path == "" {
		return New(goregular.TTF, size, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	f, err := New(data, size, nil)
	if err != nil {
		return nil, fmt.Errorf("font: %s: %w", path, err)
	}
	return f, nil
}

// New parses TTF or OTF data and rasterizes runes at size pixels. A nil
// runes slice uses DefaultRunes.
func New(data []byte, size float64, runes []rune) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if size <= 0 {
		return nil, fmt.Errorf("font: invalid size %v", size)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: new face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	if runes == nil {
		runes = DefaultRunes
	}
	m := face.Metrics()
	f := &Face{
		size:    size,
		ascent:  fixedToFloat64(m.Ascent),
		descent: fixedToFloat64(m.Descent),
		glyphs:  make(map[rune]canopy.Glyph, len(runes)),
		// Index 0 is a blank mask shared by glyphs with no ink.
		masks: []*image.Alpha{image.NewAlpha(image.Rect(0, 0, 1, 1))},
	}
	dot := fixed.Point26_6{Y: m.Ascent}
	for _, r := range runes {
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		g := canopy.Glyph{Advance: fixedToFloat64(advance)}
		if !dr.Empty() {
			dst := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
			draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)
			g.Width, g.Height = float64(dr.Dx()), float64(dr.Dy())
			g.XOffset, g.YOffset = float64(dr.Min.X), float64(dr.Min.Y)
			g.TextureIndex = uint32(len(f.masks))
			f.masks = append(f.masks, dst)
		}
		f.glyphs[r] = g
	}
	return f, nil
}

// Size returns the pixel size the face was rasterized at.
func (f *Face) Size() float64 { return f.size }

// Ascent returns the distance from the line top to the baseline.
func (f *Face) Ascent() float64 { return f.ascent }

// LineHeight returns ascent plus descent.
func (f *Face) LineHeight() float64 { return f.ascent + f.descent }

// GetChar returns the metrics of r.
func (f *Face) GetChar(r rune) (canopy.Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// Glyphs returns the glyph masks in texture-index order.
func (f *Face) Glyphs() []*image.Alpha { return f.masks }

// SetTextures records the texture handles uploaded for Glyphs, in the same
// order.
func (f *Face) SetTextures(ids []canopy.TextureID) {
	f.textures = append(f.textures[:0], ids...)
}

// Textures returns the handles registered with SetTextures.
func (f *Face) Textures() []canopy.TextureID { return f.textures }

func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

var _ canopy.Font = (*Face)(nil)
