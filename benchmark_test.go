package canopy

import "testing"

// setupBenchGrid creates n panels laid out in rows of 100, each with a
// label child.
func setupBenchGrid(n int) (*Context, []Entity) {
	ui := NewContext(newFakeRenderer())
	panels := make([]Entity, n)
	for i := range panels {
		p := ui.NewPanel("p")
		ui.SetPosition(p, Vec2{float64(i%100) * 12, float64(i/100) * 12})
		ui.SetSize(p, Vec2{10, 10})
		l := ui.NewLabel("l", "ok")
		ui.SetParent(l, p)
		panels[i] = p
	}
	ui.Update()
	return ui, panels
}

// --- Update ---

func BenchmarkUpdate_1000Panels_Static(b *testing.B) {
	ui, _ := setupBenchGrid(1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ui.Update()
	}
}

func BenchmarkUpdate_1000Panels_Moving(b *testing.B) {
	ui, panels := setupBenchGrid(1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, p := range panels {
			pos := ui.Position(p)
			ui.SetPosition(p, Vec2{pos.X, pos.Y + 1})
		}
		ui.Update()
	}
}

// --- Input and layout ---

func BenchmarkHitTest_1000Panels(b *testing.B) {
	ui, panels := setupBenchGrid(1000)
	for _, p := range panels {
		ui.Widget(p).SetFlags(Clickable)
	}
	ui.Update()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ui.HitTest(float64(i%1200), float64(i%120))
	}
}

func BenchmarkLineBreaks_Paragraph(b *testing.B) {
	text := []rune("the quick brown fox jumps over the lazy dog while the UI keeps laying out every glyph of it")
	p := LayoutParams{MaxWidth: 20, Advance: unitAdvance}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		CalculateLineWidthsAndBreaks(text, 0, p)
	}
}
