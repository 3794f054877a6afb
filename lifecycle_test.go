package canopy

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestRequestWidgetConcurrent(t *testing.T) {
	f := newFixture(t)
	ui := f.ui

	const producers, perProducer = 8, 50
	got := make(chan Entity, producers*perProducer)
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				got <- ui.RequestWidget(KindPanel, "queued")
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		ui.Update()
	}
	ui.Update()
	close(got)

	seen := make(map[Entity]bool)
	for e := range got {
		if seen[e] {
			t.Fatalf("entity %v handed out twice", e)
		}
		seen[e] = true
		if !ui.Valid(e) {
			t.Fatalf("entity %v not valid", e)
		}
		if ui.Kind(e) != KindPanel {
			t.Fatalf("entity %v kind = %v, want Panel", e, ui.Kind(e))
		}
	}
	if len(seen) != producers*perProducer {
		t.Errorf("got %d entities, want %d", len(seen), producers*perProducer)
	}
	if got := ui.WidgetCount(); got != producers*perProducer {
		t.Errorf("WidgetCount = %d, want %d", got, producers*perProducer)
	}
}

func TestBuildReplacesPoolTag(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	e := ui.AcquireEntity()
	if !ui.world.Entry(e).HasComponent(pooled) {
		t.Fatal("acquired entity is not pooled")
	}

	ui.build(e, KindPanel, "p")
	en := ui.world.Entry(e)
	if en.HasComponent(pooled) {
		t.Error("built widget still carries the pool tag")
	}
	if !en.HasComponent(WidgetComponent) || !en.HasComponent(TransformComponent) {
		t.Error("built widget is missing its bundle")
	}
	if got := ui.Name(e); got != "p" {
		t.Errorf("Name = %q, want p", got)
	}
}

func TestRequestedWidgetBuiltOnNextUpdate(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	e := ui.RequestWidget(KindLabel, "late")
	if ui.WidgetCount() != 0 {
		t.Fatal("widget built before Update")
	}
	ui.Update()
	if ui.Name(e) != "late" || ui.Kind(e) != KindLabel {
		t.Errorf("built %q %v, want late Label", ui.Name(e), ui.Kind(e))
	}
}

func TestAcquireEntityRefillsPool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PoolBatch = 2
	ui := NewContext(newFakeRenderer(), WithConfig(cfg))

	var es []Entity
	for i := 0; i < 9; i++ {
		es = append(es, ui.NewPanel("p"))
	}
	if ui.WidgetCount() != 9 {
		t.Errorf("WidgetCount = %d, want 9", ui.WidgetCount())
	}
	for i, e := range es {
		if !ui.Valid(e) {
			t.Errorf("panel %d invalid", i)
		}
	}
}

func TestDestroyCascades(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	panel := f.box("panel", Vec2{}, Vec2{100, 100})
	btn := ui.NewButton("btn", "ok")
	ui.SetParent(btn, panel)
	label := ui.Children(btn)[0]
	ui.BindObject(panel, f.host.Bind("panel"))
	ui.BindObject(btn, f.host.Bind("btn"))
	ui.Update()
	buffers := len(f.r.buffers)

	ui.Destroy(panel)
	if !ui.Valid(label) {
		t.Fatal("Destroy removed entities before Update")
	}
	ui.Update()

	for name, e := range map[string]Entity{"panel": panel, "btn": btn, "label": label} {
		if ui.Valid(e) {
			t.Errorf("%s still valid", name)
		}
	}
	if n := f.host.Len(); n != 0 {
		t.Errorf("host holds %d objects, want 0", n)
	}
	if ui.WidgetCount() != 0 {
		t.Errorf("WidgetCount = %d, want 0", ui.WidgetCount())
	}
	if len(f.r.buffers) >= buffers {
		t.Errorf("buffers = %d, want fewer than %d", len(f.r.buffers), buffers)
	}
	if len(ui.Sorted()) != 0 || len(ui.DrawList()) != 0 {
		t.Error("destroyed widgets still listed")
	}
}

func TestDestroyChildDetachesFromParent(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	parent := ui.NewPanel("parent")
	keep := ui.NewPanel("keep")
	gone := ui.NewPanel("gone")
	ui.SetParent(keep, parent)
	ui.SetParent(gone, parent)

	ui.Destroy(gone)
	ui.Update()

	if got := ui.Children(parent); len(got) != 1 || got[0] != keep {
		t.Errorf("Children = %v, want [%v]", got, keep)
	}
}

func TestRequestDestroyFromGoroutine(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	e := ui.NewPanel("e")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ui.RequestDestroy(e)
		ui.RequestDestroy(e)
	}()
	wg.Wait()
	ui.Update()

	if ui.Valid(e) {
		t.Error("widget survived RequestDestroy")
	}
	// A second Update with nothing queued is harmless.
	ui.Update()
}

func TestDestroyClearsFocusAndHover(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	in := ui.NewInputField("in", "")
	ui.SetSize(in, Vec2{100, 30})
	ui.Update()
	ui.HandleMouseMove(10, 10)
	ui.Focus(in)

	ui.Destroy(in)
	ui.Update()

	if ui.Focused() != Null || ui.Hovered() != Null {
		t.Errorf("Focused = %v, Hovered = %v, want Null", ui.Focused(), ui.Hovered())
	}
	if ui.HandleChar('x') {
		t.Error("destroyed widget still takes input")
	}
}

func TestQueueOverCapacityLogsError(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})))
	defer SetLogger(nil)

	cfg := DefaultConfig()
	cfg.CreateQueueCap = 1
	ui := NewContext(newFakeRenderer(), WithConfig(cfg))
	ui.RequestWidget(KindPanel, "a")
	ui.RequestWidget(KindPanel, "b")

	if !strings.Contains(buf.String(), "create queue over capacity") {
		t.Errorf("log = %q, want an over-capacity error", buf.String())
	}
	ui.Update()
	if ui.WidgetCount() != 2 {
		t.Errorf("WidgetCount = %d, want 2", ui.WidgetCount())
	}
}

func TestQueueFIFO(t *testing.T) {
	var q mpscQueue[int]
	q.init()
	for i := 1; i <= 3; i++ {
		if n := q.push(i); n != i {
			t.Errorf("push(%d) len = %d, want %d", i, n, i)
		}
	}
	for want := 1; want <= 3; want++ {
		v, ok := q.pop()
		if !ok || v != want {
			t.Errorf("pop = %d, %v, want %d, true", v, ok, want)
		}
	}
	if _, ok := q.pop(); ok {
		t.Error("pop on empty queue succeeded")
	}
	if q.size() != 0 {
		t.Errorf("size = %d, want 0", q.size())
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	var q mpscQueue[int]
	q.init()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.push(base + i)
			}
		}(p * 1000)
	}
	wg.Wait()

	last := map[int]int{0: -1, 1000: -1, 2000: -1, 3000: -1}
	n := 0
	for {
		v, ok := q.pop()
		if !ok {
			break
		}
		base := v / 1000 * 1000
		if v <= last[base] {
			t.Fatalf("producer %d out of order: %d after %d", base, v, last[base])
		}
		last[base] = v
		n++
	}
	if n != 400 {
		t.Errorf("popped %d, want 400", n)
	}
}
