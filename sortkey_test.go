package canopy

import (
	"slices"
	"testing"
)

func TestSortKeyPacking(t *testing.T) {
	k := SortKey{Layer: LayerPopup, Depth: 2, Compound: 7}
	want := uint64(LayerPopup)<<48 | 2<<32 | 7
	if got := k.Key(); got != want {
		t.Errorf("Key() = %#x, want %#x", got, want)
	}

	lower := SortKey{Layer: LayerDefault, Depth: 0xFFFF, Compound: 0xFFFFFFFF}
	if lower.Key() >= k.Key() {
		t.Error("layer must dominate depth and compound")
	}
}

func TestChildDepthIsParentPlusOne(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	a := ui.NewPanel("a")
	b := ui.NewPanel("b")
	c := ui.NewPanel("c")
	ui.SetParent(c, b)
	ui.SetParent(b, a)

	if d := ui.SortKey(b).Depth; d != 1 {
		t.Errorf("b depth = %d, want 1", d)
	}
	if d := ui.SortKey(c).Depth; d != 2 {
		t.Errorf("c depth = %d, want 2", d)
	}

	ui.UnsetParent(b)
	if d := ui.SortKey(b).Depth; d != 0 {
		t.Errorf("b depth after unset = %d, want 0", d)
	}
	if d := ui.SortKey(c).Depth; d != 1 {
		t.Errorf("c depth after unset = %d, want 1", d)
	}
}

func TestLaterSiblingPaintsAbove(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	parent := ui.NewPanel("parent")
	first := ui.NewPanel("first")
	second := ui.NewPanel("second")
	ui.SetParent(first, parent)
	ui.SetParent(second, parent)
	ui.Update()

	if ui.SortKey(second).Key() <= ui.SortKey(first).Key() {
		t.Error("second sibling should sort after the first")
	}
	sorted := ui.Sorted()
	if slices.Index(sorted, parent) > slices.Index(sorted, first) ||
		slices.Index(sorted, first) > slices.Index(sorted, second) {
		t.Errorf("Sorted = %v, want parent, first, second in order", sorted)
	}
}

func TestBringToFront(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	a := ui.NewPanel("a")
	b := ui.NewPanel("b")
	ui.Update()

	ui.BringToFront(a)
	ui.Update()

	sorted := ui.Sorted()
	if slices.Index(sorted, a) < slices.Index(sorted, b) {
		t.Error("BringToFront should move a after b")
	}
}

func TestSetDepthLayerMovesSubtree(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	popup := ui.NewPanel("popup")
	item := ui.NewPanel("item")
	ui.SetParent(item, popup)
	other := ui.NewPanel("other")
	ui.SetDepth(other, 100)

	ui.SetDepthLayer(popup, LayerPopup)
	ui.Update()

	if l := ui.SortKey(item).Layer; l != LayerPopup {
		t.Errorf("child layer = %v, want LayerPopup", l)
	}
	sorted := ui.Sorted()
	if slices.Index(sorted, item) < slices.Index(sorted, other) {
		t.Error("popup layer should paint above a deeper default-layer widget")
	}
}

func TestSetDepthKeepsRelativeDepths(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	a := ui.NewPanel("a")
	b := ui.NewPanel("b")
	ui.SetParent(b, a)

	ui.SetDepth(a, 10)
	if d := ui.SortKey(b).Depth; d != 11 {
		t.Errorf("child depth = %d, want 11", d)
	}
}

func TestClampDepth(t *testing.T) {
	tests := []struct {
		in   int
		want uint16
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{0x10000, 0xFFFF},
	}
	for _, tt := range tests {
		if got := clampDepth(tt.in); got != tt.want {
			t.Errorf("clampDepth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
