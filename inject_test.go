package canopy

import "testing"

func TestInjectClickTakesTwoFrames(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	btn := f.button("btn", Vec2{}, Vec2{100, 40})
	ui.Update()

	ui.InjectClick(50, 20)
	if got := ui.PendingInjections(); got != 2 {
		t.Fatalf("PendingInjections = %d, want 2", got)
	}
	ui.Update()
	if f.sink.has(EventClick, btn) {
		t.Fatal("click fired after the press frame")
	}
	ui.Update()
	if !f.sink.has(EventClick, btn) {
		t.Error("click not fired after the release frame")
	}
	if ui.PendingInjections() != 0 {
		t.Error("injections left over")
	}
}

func TestInjectDragMovesWidget(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	e := f.button("e", Vec2{0, 0}, Vec2{20, 20})
	ui.Widget(e).SetDraggable(true)
	ui.Update()

	ui.InjectDrag(10, 10, 110, 60, 5)
	if got := ui.PendingInjections(); got != 6 {
		t.Fatalf("PendingInjections = %d, want 6", got)
	}
	for ui.PendingInjections() > 0 {
		ui.Update()
	}

	if got := ui.ScreenPosition(e); got != (Vec2{100, 50}) {
		t.Errorf("ScreenPosition = %v, want (100,50)", got)
	}
	if !f.sink.has(EventDragStarted, e) || !f.sink.has(EventDragEnded, e) {
		t.Errorf("events = %v, want drag start and end", f.sink.types())
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	f := newFixture(t)
	f.ui.InjectDrag(0, 0, 1, 1, 0)
	if got := f.ui.PendingInjections(); got != 3 {
		t.Errorf("PendingInjections = %d, want 3", got)
	}
}

func TestInjectKeyAndText(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	in := ui.NewInputField("in", "")
	ui.Focus(in)

	ui.InjectText("abc")
	ui.InjectKey(KeyBackspace, 0)
	for ui.PendingInjections() > 0 {
		ui.Update()
	}

	if got := ui.Text(in); got != "ab" {
		t.Errorf("Text = %q, want ab", got)
	}
}
