package canopy

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	e := f.box("e", Vec2{}, Vec2{10, 10})
	ui.Update()

	g := ui.TweenPosition(e, 100, 50, 1, ease.Linear)
	g.Update(0.5)
	if got := ui.Position(e); !approxVec(got, Vec2{50, 25}) {
		t.Errorf("Position at half = %v, want (50,25)", got)
	}
	if !ui.IsDirty(e) {
		t.Error("tween did not mark the widget dirty")
	}
	if g.Done {
		t.Error("tween done at half time")
	}

	g.Update(0.5)
	if got := ui.Position(e); !approxVec(got, Vec2{100, 50}) {
		t.Errorf("Position at end = %v, want (100,50)", got)
	}
	if !g.Done {
		t.Error("tween not done at full time")
	}

	g.Update(1)
	if got := ui.Position(e); !approxVec(got, Vec2{100, 50}) {
		t.Errorf("finished tween moved the widget to %v", got)
	}
}

func TestTweenSizeMovesFillChildren(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	parent := f.box("parent", Vec2{}, Vec2{10, 10})
	child := ui.NewPanel("child")
	ui.SetParent(child, parent)
	ui.SetFillParentSize(child, true)

	g := ui.TweenSize(parent, 30, 20, 1, ease.Linear)
	g.Update(1)

	if got := ui.Size(child); !approxVec(got, Vec2{30, 20}) {
		t.Errorf("child Size = %v, want (30,20)", got)
	}
}

func TestTweenColor(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	e := f.box("e", Vec2{}, Vec2{10, 10})
	ui.SetColor(e, Color{0, 0, 0, 1})

	g := ui.TweenColor(e, Color{1, 0.5, 0, 0}, 2, ease.Linear)
	g.Update(1)

	got := ui.Color(e)
	want := Color{0.5, 0.25, 0, 0.5}
	if !approx(got.R, want.R) || !approx(got.G, want.G) || !approx(got.B, want.B) || !approx(got.A, want.A) {
		t.Errorf("Color = %v, want %v", got, want)
	}
}

func TestTweenSliderValueFiresNoEvent(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	s := ui.NewSlider("s", 0, 10, 0)

	g := ui.TweenSliderValue(s, 10, 1, ease.Linear)
	g.Update(1)

	if got := ui.SliderValue(s); !approx(got, 10) {
		t.Errorf("SliderValue = %v, want 10", got)
	}
	if f.sink.has(EventValueChanged, s) {
		t.Error("tween fired value-changed")
	}
}

func TestTweenStopsOnDestroyedWidget(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	e := f.box("e", Vec2{}, Vec2{10, 10})
	g := ui.TweenPosition(e, 100, 0, 1, ease.Linear)

	ui.Destroy(e)
	ui.Update()

	g.Update(0.5)
	if !g.Done {
		t.Error("tween on a destroyed widget is not done")
	}
}
