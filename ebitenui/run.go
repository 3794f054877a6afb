package ebitenui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/canopy"
)

// RunConfig holds optional window settings for Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background color.Color
	// ShowFPS draws FPS, TPS and draw counts in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs queued with Game.Screenshot. Defaults to
	// "screenshots".
	ScreenshotDir string
	// OnUpdate runs once per tick before the UI pipeline.
	OnUpdate func(ui *canopy.Context) error
}

// Game drives a canopy Context from ebiten's game loop. It implements
// ebiten.Game.
type Game struct {
	UI       *canopy.Context
	Renderer *Renderer
	cfg      RunConfig
	input    Input

	width, height int
	fps           *ebiten.Image
	fpsTick       int
	lastDraws     int
	screenshots   []string
}

// NewGame wires ui and r into an ebiten.Game.
func NewGame(ui *canopy.Context, r *Renderer, cfg RunConfig) *Game {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	return &Game{UI: ui, Renderer: r, cfg: cfg}
}

// Update polls input and runs one UI frame.
func (g *Game) Update() error {
	g.input.Poll(g.UI)
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(g.UI); err != nil {
			return err
		}
	}
	g.UI.Update()
	return nil
}

// Draw renders the draw list onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	vp := g.UI.Viewport().Size()
	frame := NewFrame(g.Renderer, screen, int(vp.X), int(vp.Y))
	g.UI.Render(frame)
	g.Renderer.Flush()
	g.lastDraws = frame.Draws

	if g.cfg.ShowFPS {
		g.drawFPS(screen)
	}
	g.flushScreenshots(screen)
}

// Layout keeps the canopy viewport in sync with the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.UI.SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// drawFPS refreshes the overlay about twice a second.
func (g *Game) drawFPS(screen *ebiten.Image) {
	if g.fps == nil {
		g.fps = ebiten.NewImage(140, 48)
	}
	if g.fpsTick%30 == 0 {
		g.fps.Clear()
		g.fps.Fill(color.RGBA{0, 0, 0, 128})
		s := g.UI.Stats()
		ebitenutil.DebugPrint(g.fps, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nDraws: %d (%d)",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.lastDraws, s.DrawCalls))
	}
	g.fpsTick++
	screen.DrawImage(g.fps, nil)
}

// Run opens a window and runs ui until the window closes or OnUpdate
// returns an error. The window size defaults to the context's configured
// viewport.
func Run(ui *canopy.Context, r *Renderer, cfg RunConfig) error {
	c := ui.Config()
	if cfg.Width <= 0 {
		cfg.Width = c.ViewportWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = c.ViewportHeight
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(ui, r, cfg))
}
