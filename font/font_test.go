package font

import (
	"testing"

	"github.com/phanxgames/canopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/image/font/gofont/goregular"
)

func loadTestFace(t *testing.T, size float64) *Face {
	t.Helper()
	f, err := New(goregular.TTF, size, nil)
	require.NoError(t, err)
	return f
}

func TestNewMetrics(t *testing.T) {
	for _, size := range []float64{12, 16, 24, 48} {
		f := loadTestFace(t, size)
		assert.Equal(t, size, f.Size())
		assert.Greater(t, f.Ascent(), 0.0)
		assert.Greater(t, f.LineHeight(), f.Ascent())
	}
}

func TestGetChar(t *testing.T) {
	f := loadTestFace(t, 16)

	a, ok := f.GetChar('A')
	require.True(t, ok)
	assert.Greater(t, a.Advance, 0.0)
	assert.Greater(t, a.Width, 0.0)
	assert.Greater(t, a.Height, 0.0)
	assert.NotZero(t, a.TextureIndex)
	assert.GreaterOrEqual(t, a.YOffset, 0.0, "glyph top is below the line top")

	sp, ok := f.GetChar(' ')
	require.True(t, ok)
	assert.Greater(t, sp.Advance, 0.0)
	assert.Zero(t, sp.Width)
	assert.Zero(t, sp.TextureIndex, "blank glyphs share mask 0")

	_, ok = f.GetChar('漢')
	assert.False(t, ok)
}

func TestGlyphsMatchTextureIndex(t *testing.T) {
	f := loadTestFace(t, 16)
	masks := f.Glyphs()
	for _, r := range DefaultRunes {
		g, ok := f.GetChar(r)
		if !ok || g.Width == 0 {
			continue
		}
		require.Less(t, int(g.TextureIndex), len(masks))
		b := masks[g.TextureIndex].Bounds()
		assert.Equal(t, int(g.Width), b.Dx(), "rune %q", r)
		assert.Equal(t, int(g.Height), b.Dy(), "rune %q", r)
	}
}

func TestLargerSizeWiderGlyphs(t *testing.T) {
	small, _ := loadTestFace(t, 12).GetChar('M')
	large, _ := loadTestFace(t, 48).GetChar('M')
	assert.Greater(t, large.Advance, small.Advance)
}

func TestCustomRunes(t *testing.T) {
	f, err := New(goregular.TTF, 16, []rune("ab"))
	require.NoError(t, err)
	_, ok := f.GetChar('a')
	assert.True(t, ok)
	_, ok = f.GetChar('c')
	assert.False(t, ok)
	assert.Len(t, f.Glyphs(), 3)
}

func TestSetTextures(t *testing.T) {
	f := loadTestFace(t, 16)
	assert.Empty(t, f.Textures())
	ids := []canopy.TextureID{4, 5, 6}
	f.SetTextures(ids)
	ids[0] = 99
	assert.Equal(t, []canopy.TextureID{4, 5, 6}, f.Textures())
}

func TestErrors(t *testing.T) {
	_, err := New(nil, 16, nil)
	assert.ErrorIs(t, err, ErrEmptyFontData)

	_, err = New([]byte("not a font"), 16, nil)
	assert.Error(t, err)

	_, err = New(goregular.TTF, 0, nil)
	assert.Error(t, err)

	_, err = Load("/nonexistent/font.ttf", 16)
	assert.Error(t, err)
}

func TestLoadDefault(t *testing.T) {
	f, err := Load("", 20)
	require.NoError(t, err)
	assert.Equal(t, 20.0, f.Size())
}
