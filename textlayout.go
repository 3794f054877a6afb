package canopy

import "unicode"

// Line is one laid-out line: characters [Start, End) and their width
// without trailing whitespace.
type Line struct {
	Start, End int
	Width      float64
}

// LayoutParams controls line breaking.
type LayoutParams struct {
	// MaxWidth is the wrap width. Zero or negative disables wrapping.
	MaxWidth float64
	// MaxLines stops layout after this many lines. Zero means unlimited.
	MaxLines int
	// Advance returns the horizontal advance of a character.
	Advance func(r rune) float64
	// ScrollForward and ScrollBackward are the fractions of MaxWidth kept
	// behind the write head when a single-line window scrolls right or
	// left.
	ScrollForward  float64
	ScrollBackward float64
}

func isSpace(r rune) bool { return r != '\n' && unicode.IsSpace(r) }

// CalculateLineWidthsAndBreaks lays out text from start with greedy word
// wrap. '\n' always breaks. A character that would overflow MaxWidth breaks
// the line at the start of the current word, or exactly at the character
// when the word alone is wider than MaxWidth or began the line; a
// whitespace character at the overflow point is swallowed by the break.
//
// end is the index after the last character considered. It is len(text)
// unless MaxLines cut the layout short.
func CalculateLineWidthsAndBreaks(text []rune, start int, p LayoutParams) (lines []Line, end int) {
	n := len(text)
	start = clampIndex(start, n)

	lineStart, lineWidth := start, 0.0
	wordStart, wordWidth := start, 0.0

	// closeLine ends the current line at stop and reports whether layout
	// must halt there.
	closeLine := func(stop int, width float64) bool {
		for j := stop; j > lineStart && isSpace(text[j-1]); j-- {
			width -= p.Advance(text[j-1])
		}
		lines = append(lines, Line{Start: lineStart, End: stop, Width: width})
		return p.MaxLines > 0 && len(lines) >= p.MaxLines
	}

	for i := start; i < n; {
		r := text[i]
		if r == '\n' {
			if closeLine(i, lineWidth) {
				return lines, i
			}
			i++
			lineStart, lineWidth = i, 0
			wordStart, wordWidth = i, 0
			continue
		}

		adv := p.Advance(r)
		space := isSpace(r)
		if p.MaxWidth > 0 && i > lineStart && lineWidth+adv > p.MaxWidth {
			switch {
			case space:
				if closeLine(i, lineWidth) {
					return lines, i
				}
				i++
				lineStart, lineWidth = i, 0
				wordStart, wordWidth = i, 0
				continue
			case wordStart == lineStart || wordWidth+adv > p.MaxWidth:
				if closeLine(i, lineWidth) {
					return lines, i
				}
				lineStart, lineWidth = i, 0
				wordStart, wordWidth = i, 0
			default:
				if closeLine(wordStart, lineWidth-wordWidth) {
					return lines, wordStart
				}
				lineStart, lineWidth = wordStart, wordWidth
			}
		}

		lineWidth += adv
		if space {
			wordStart, wordWidth = i+1, 0
		} else {
			wordWidth += adv
		}
		i++
	}
	closeLine(n, lineWidth)
	return lines, n
}

// CalculatePushback returns the first visible character of an editable
// window so that writeHead stays visible.
//
// Single line: if writeHead lies inside the window starting at pushback it
// is returned unchanged. Otherwise the window is re-anchored by walking
// back from writeHead until ScrollForward (caret past the right edge) or
// ScrollBackward (caret before the left edge) of MaxWidth is filled.
//
// Multiline: the window is MaxLines lines of the full layout. It scrolls by
// the fewest lines that bring the write head's line into view, and the
// result is the first character of the top visible line.
func CalculatePushback(text []rune, pushback, writeHead int, multiline bool, p LayoutParams) int {
	n := len(text)
	pushback = clampIndex(pushback, n)
	writeHead = clampIndex(writeHead, n)
	if multiline {
		return multilinePushback(text, pushback, writeHead, p)
	}
	if p.MaxWidth <= 0 {
		return 0
	}

	end, width := pushback, 0.0
	for end < n {
		adv := p.Advance(text[end])
		if width+adv > p.MaxWidth {
			break
		}
		width += adv
		end++
	}
	if writeHead >= pushback && writeHead <= end {
		return pushback
	}

	fill := p.MaxWidth * p.ScrollBackward
	if writeHead > end {
		fill = p.MaxWidth * p.ScrollForward
	}
	start, width := writeHead, 0.0
	for start > 0 {
		adv := p.Advance(text[start-1])
		if width+adv > fill {
			break
		}
		width += adv
		start--
	}
	return start
}

func multilinePushback(text []rune, pushback, writeHead int, p LayoutParams) int {
	if p.MaxLines <= 0 {
		return 0
	}
	full := p
	full.MaxLines = 0
	lines, _ := CalculateLineWidthsAndBreaks(text, 0, full)

	lineOf := func(idx int) int {
		l := 0
		for i, ln := range lines {
			if ln.Start <= idx {
				l = i
			}
		}
		return l
	}
	top := lineOf(pushback)
	head := lineOf(writeHead)
	switch {
	case head < top:
		top = head
	case head >= top+p.MaxLines:
		top = head - p.MaxLines + 1
	}
	return lines[top].Start
}

func clampIndex(i, n int) int {
	return min(max(i, 0), n)
}
