package canopy

import (
	"slices"
	"testing"
)

func unitAdvance(rune) float64 { return 1 }

func layout(text string, p LayoutParams) ([]Line, int) {
	if p.Advance == nil {
		p.Advance = unitAdvance
	}
	return CalculateLineWidthsAndBreaks([]rune(text), 0, p)
}

func TestLineBreaks(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		p       LayoutParams
		want    []Line
		wantEnd int
	}{
		{
			name:    "word wrap",
			text:    "hello world",
			p:       LayoutParams{MaxWidth: 7},
			want:    []Line{{0, 6, 5}, {6, 11, 5}},
			wantEnd: 11,
		},
		{
			name:    "newline",
			text:    "ab\ncd",
			want:    []Line{{0, 2, 2}, {3, 5, 2}},
			wantEnd: 5,
		},
		{
			name:    "long word breaks at the character",
			text:    "abcdefghij",
			p:       LayoutParams{MaxWidth: 4},
			want:    []Line{{0, 4, 4}, {4, 8, 4}, {8, 10, 2}},
			wantEnd: 10,
		},
		{
			name:    "max lines stops early",
			text:    "hello world",
			p:       LayoutParams{MaxWidth: 7, MaxLines: 1},
			want:    []Line{{0, 6, 5}},
			wantEnd: 6,
		},
		{
			name:    "space at overflow is swallowed",
			text:    "abcd efgh",
			p:       LayoutParams{MaxWidth: 4},
			want:    []Line{{0, 4, 4}, {5, 9, 4}},
			wantEnd: 9,
		},
		{
			name:    "no wrap",
			text:    "a long line of text",
			want:    []Line{{0, 19, 19}},
			wantEnd: 19,
		},
		{
			name:    "empty",
			text:    "",
			want:    []Line{{0, 0, 0}},
			wantEnd: 0,
		},
		{
			name:    "trailing newline",
			text:    "ab\n",
			want:    []Line{{0, 2, 2}, {3, 3, 0}},
			wantEnd: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, end := layout(tt.text, tt.p)
			if !slices.Equal(lines, tt.want) {
				t.Errorf("lines = %v, want %v", lines, tt.want)
			}
			if end != tt.wantEnd {
				t.Errorf("end = %d, want %d", end, tt.wantEnd)
			}
		})
	}
}

func TestLineBreaksFromStart(t *testing.T) {
	lines, end := CalculateLineWidthsAndBreaks([]rune("hello world"), 6, LayoutParams{Advance: unitAdvance})
	want := []Line{{6, 11, 5}}
	if !slices.Equal(lines, want) || end != 11 {
		t.Errorf("got %v end %d, want %v end 11", lines, end, want)
	}
}

func TestLineWidthsNeverExceedMaxWidth(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps running"
	for _, w := range []float64{3, 5, 8, 13} {
		lines, end := layout(text, LayoutParams{MaxWidth: w})
		if end != len([]rune(text)) {
			t.Errorf("width %v: end = %d, want %d", w, end, len(text))
		}
		for _, ln := range lines {
			if ln.Width > w {
				t.Errorf("width %v: line %v exceeds max", w, ln)
			}
		}
		for i := 1; i < len(lines); i++ {
			if lines[i].Start < lines[i-1].End {
				t.Errorf("width %v: lines overlap: %v then %v", w, lines[i-1], lines[i])
			}
		}
	}
}

func scrollParams(width float64) LayoutParams {
	return LayoutParams{
		MaxWidth:       width,
		MaxLines:       1,
		Advance:        unitAdvance,
		ScrollForward:  0.75,
		ScrollBackward: 0.25,
	}
}

func TestPushbackSingleLine(t *testing.T) {
	text := []rune("abcdefghijklmnopqrst")
	p := scrollParams(10)
	tests := []struct {
		name           string
		pushback, head int
		want           int
	}{
		{"caret past right edge", 0, 20, 13},
		{"caret inside window", 13, 15, 13},
		{"caret at start", 13, 0, 0},
		{"caret before left edge", 13, 5, 3},
		{"caret at window end", 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePushback(text, tt.pushback, tt.head, false, p); got != tt.want {
				t.Errorf("CalculatePushback(%d, %d) = %d, want %d", tt.pushback, tt.head, got, tt.want)
			}
		})
	}
}

func TestPushbackKeepsHeadVisible(t *testing.T) {
	text := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	p := scrollParams(10)
	pushback := 0
	for head := 0; head <= len(text); head++ {
		pushback = CalculatePushback(text, pushback, head, false, p)
		lines, _ := CalculateLineWidthsAndBreaks(text, pushback, p)
		if head < pushback || head > lines[0].End {
			t.Fatalf("head %d outside window [%d, %d]", head, pushback, lines[0].End)
		}
	}
	for head := len(text); head >= 0; head-- {
		pushback = CalculatePushback(text, pushback, head, false, p)
		if head < pushback {
			t.Fatalf("head %d before window start %d", head, pushback)
		}
	}
}

func TestPushbackNoWidth(t *testing.T) {
	if got := CalculatePushback([]rune("abc"), 2, 3, false, scrollParams(0)); got != 0 {
		t.Errorf("CalculatePushback = %d, want 0", got)
	}
}

func TestPushbackMultiline(t *testing.T) {
	text := []rune("aaaa\nbbbb\ncccc\ndddd")
	p := LayoutParams{MaxWidth: 100, MaxLines: 2, Advance: unitAdvance}

	pb := CalculatePushback(text, 0, 15, true, p)
	if pb != 10 {
		t.Errorf("head on last line: pushback = %d, want 10", pb)
	}
	if got := CalculatePushback(text, pb, 12, true, p); got != 10 {
		t.Errorf("head in window: pushback = %d, want 10", got)
	}
	if got := CalculatePushback(text, pb, 0, true, p); got != 0 {
		t.Errorf("head on first line: pushback = %d, want 0", got)
	}
	if got := CalculatePushback(text, pb, 7, true, p); got != 5 {
		t.Errorf("head one line above: pushback = %d, want 5", got)
	}
}

func TestPushbackClampsIndices(t *testing.T) {
	text := []rune("abc")
	if got := CalculatePushback(text, 99, -4, false, scrollParams(10)); got != 0 {
		t.Errorf("CalculatePushback = %d, want 0", got)
	}
}
