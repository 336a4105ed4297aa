package page

// Rect is a viewport-relative box in pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

// Right returns the rect's right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the rect's bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Style is the subset of computed style the layout math needs. Text is
// measured with monospace metrics: every character advances CharWidth and
// every line occupies LineHeight.
type Style struct {
	CharWidth  float64
	LineHeight float64

	PaddingLeft, PaddingTop, PaddingRight, PaddingBottom float64
	BorderLeft, BorderTop, BorderRight, BorderBottom     float64
}

// Style returns the node's computed style.
func (n *Node) Style() Style { return n.style }

// SetStyle replaces the node's computed style.
func (n *Node) SetStyle(s Style) { n.style = s }

// Bounds returns the node's border box, viewport-relative.
func (n *Node) Bounds() Rect { return n.bounds }

// SetBounds positions the node's border box. Layout is the host's job; the
// engine only reads the result.
func (n *Node) SetBounds(r Rect) { n.bounds = r }

// Scroll returns the node's scroll offsets.
func (n *Node) Scroll() (x, y float64) { return n.scrollX, n.scrollY }

// SetScroll sets the node's scroll offsets.
func (n *Node) SetScroll(x, y float64) { n.scrollX, n.scrollY = x, y }

// ContentOrigin returns the viewport position of the node's content box
// before scrolling.
func (n *Node) ContentOrigin() (x, y float64) {
	x = n.bounds.Left + n.style.BorderLeft + n.style.PaddingLeft
	y = n.bounds.Top + n.style.BorderTop + n.style.PaddingTop
	return x, y
}

// ContentWidth returns the width of the node's content box.
func (n *Node) ContentWidth() float64 {
	w := n.bounds.Width -
		n.style.BorderLeft - n.style.BorderRight -
		n.style.PaddingLeft - n.style.PaddingRight
	if w < 0 {
		return 0
	}
	return w
}

// Columns returns how many characters fit on one content line.
func (n *Node) Columns() int {
	if n.style.CharWidth <= 0 {
		return 0
	}
	cols := int(n.ContentWidth() / n.style.CharWidth)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// Line is one laid-out line of text. Start is the rune offset of the line's
// first character in the source text.
type Line struct {
	Start int
	Text  []rune
}

// WrapText lays text out at the given column width. Hard newlines always
// break; soft wraps prefer the last space on the line and fall back to a
// hard character break for unbroken runs. The space a soft wrap breaks on
// is consumed, matching how text controls render.
func WrapText(text string, cols int) []Line {
	if cols < 1 {
		cols = 1
	}
	var lines []Line
	runes := []rune(text)
	lineStart := 0
	for i := 0; i <= len(runes); i++ {
		atEnd := i == len(runes)
		if !atEnd && runes[i] != '\n' && i-lineStart < cols {
			continue
		}
		if atEnd || runes[i] == '\n' {
			lines = append(lines, Line{Start: lineStart, Text: runes[lineStart:i]})
			lineStart = i + 1
			continue
		}
		// Soft wrap: break at the last space, or mid-word if there is none.
		breakAt := -1
		for j := i - 1; j > lineStart; j-- {
			if runes[j] == ' ' {
				breakAt = j
				break
			}
		}
		if breakAt == -1 {
			lines = append(lines, Line{Start: lineStart, Text: runes[lineStart:i]})
			lineStart = i
		} else {
			lines = append(lines, Line{Start: lineStart, Text: runes[lineStart:breakAt]})
			lineStart = breakAt + 1
		}
		i = lineStart - 1
	}
	if len(lines) == 0 {
		lines = []Line{{Start: 0, Text: nil}}
	}
	return lines
}

// LayoutLines wraps the node's text content at its own column width.
func (n *Node) LayoutLines() []Line {
	text := n.value
	if text == "" && (n.tag != "input" && n.tag != "textarea") {
		text = n.TextContent()
	}
	return WrapText(text, n.Columns())
}

// OffsetRects returns the viewport rects covering the rune span
// [start, end) of the node's laid-out text, one rect per line touched,
// corrected for the node's scroll offsets. Spans that fall outside the text
// produce no rects.
func (n *Node) OffsetRects(start, end int) []Rect {
	if end <= start {
		return nil
	}
	lines := n.LayoutLines()
	originX, originY := n.ContentOrigin()
	cw, lh := n.style.CharWidth, n.style.LineHeight
	var rects []Rect
	for li, line := range lines {
		lineEnd := line.Start + len(line.Text)
		s, e := start, end
		if s < line.Start {
			s = line.Start
		}
		if e > lineEnd {
			e = lineEnd
		}
		if e <= s {
			continue
		}
		rects = append(rects, Rect{
			Left:   originX + float64(s-line.Start)*cw - n.scrollX,
			Top:    originY + float64(li)*lh - n.scrollY,
			Width:  float64(e-s) * cw,
			Height: lh,
		})
	}
	return rects
}

// CaretPoint returns the viewport position of the caret when placed at the
// given rune offset, before scroll correction is applied by the caller.
func (n *Node) CaretPoint(offset int) (x, y float64) {
	lines := n.LayoutLines()
	originX, originY := n.ContentOrigin()
	for li, line := range lines {
		lineEnd := line.Start + len(line.Text)
		if offset >= line.Start && offset <= lineEnd {
			return originX + float64(offset-line.Start)*n.style.CharWidth,
				originY + float64(li)*n.style.LineHeight
		}
	}
	last := len(lines) - 1
	return originX + float64(len(lines[last].Text))*n.style.CharWidth,
		originY + float64(last)*n.style.LineHeight
}
