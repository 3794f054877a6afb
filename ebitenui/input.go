package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/canopy"
)

// Key repeat timing, in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

var keyMap = map[ebiten.Key]canopy.Key{
	ebiten.KeyEscape:      canopy.KeyEscape,
	ebiten.KeyEnter:       canopy.KeyEnter,
	ebiten.KeyNumpadEnter: canopy.KeyEnter,
	ebiten.KeyBackspace:   canopy.KeyBackspace,
	ebiten.KeyDelete:      canopy.KeyDelete,
	ebiten.KeyArrowLeft:   canopy.KeyLeft,
	ebiten.KeyArrowRight:  canopy.KeyRight,
	ebiten.KeyArrowUp:     canopy.KeyUp,
	ebiten.KeyArrowDown:   canopy.KeyDown,
	ebiten.KeyHome:        canopy.KeyHome,
	ebiten.KeyEnd:         canopy.KeyEnd,
	ebiten.KeyTab:         canopy.KeyTab,
	ebiten.KeySpace:       canopy.KeySpace,
}

// Input polls ebiten input once per tick and feeds it to a canopy
// Context.
type Input struct {
	lastX, lastY int
	moved        bool
	keys         []ebiten.Key
	chars        []rune
}

func modifiers() canopy.KeyModifiers {
	var m canopy.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= canopy.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= canopy.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= canopy.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= canopy.ModMeta
	}
	return m
}

// Poll routes this tick's pointer, key and character input to ui.
func (in *Input) Poll(ui *canopy.Context) {
	mods := modifiers()

	x, y := ebiten.CursorPosition()
	if !in.moved || x != in.lastX || y != in.lastY {
		in.lastX, in.lastY, in.moved = x, y, true
		ui.HandleMouseMove(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ui.HandleMouseButton(float64(x), float64(y), canopy.Press, mods)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		ui.HandleMouseButton(float64(x), float64(y), canopy.Release, mods)
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if ck, ok := keyMap[k]; ok {
			ui.HandleKey(ck, canopy.Press, mods)
		}
	}
	for k, ck := range keyMap {
		d := inpututil.KeyPressDuration(k)
		if d > repeatDelay && (d-repeatDelay)%repeatInterval == 0 {
			ui.HandleKey(ck, canopy.Repeat, mods)
		}
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		if ck, ok := keyMap[k]; ok {
			ui.HandleKey(ck, canopy.Release, mods)
		}
	}

	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		ui.HandleChar(r)
	}
}
