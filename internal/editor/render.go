package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/redlinehq/redline/internal/highlight"
	"github.com/redlinehq/redline/internal/tokenize"
)

// Renderer builds a full frame and hands it back as one write, so the
// terminal never shows a half-drawn screen.
type Renderer struct {
	buf strings.Builder
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// underline is one decorated span on one display line, in columns.
type underline struct {
	start   int
	width   int
	grammar bool
}

// Frame draws the text column, underlines, status bar, the correction menu
// when open, and places the cursor.
func (r *Renderer) Frame(e *Editor) string {
	r.buf.Reset()
	r.buf.WriteString("\x1b[?25l")
	r.buf.WriteString("\x1b[2J\x1b[H")

	lines := e.el.LayoutLines()
	caretIdx, caretCol := locateCaret(lines, e.buf.Caret)

	_, height := e.term.Size()
	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	if caretIdx < e.scroll {
		e.scroll = caretIdx
	}
	if caretIdx >= e.scroll+visible {
		e.scroll = caretIdx - visible + 1
	}

	marks := r.underlinesByLine(e)
	marginStr := strings.Repeat(" ", e.margin)

	for i := 0; i < visible; i++ {
		idx := e.scroll + i
		r.buf.WriteString(fmt.Sprintf("\x1b[%d;1H", i+1))
		if idx >= len(lines) {
			continue
		}
		r.buf.WriteString(marginStr)
		r.buf.WriteString(renderLine(lines[idx].Text, marks[idx]))
	}

	r.renderStatusBar(e, height)
	if menu := e.hl.Menu(); menu != nil {
		r.renderMenu(e, caretIdx, caretCol, visible)
	}

	row := caretIdx - e.scroll + 1
	col := e.margin + caretCol + 1
	r.buf.WriteString(fmt.Sprintf("\x1b[%d;%dH", row, col))
	r.buf.WriteString("\x1b[?25h")
	return r.buf.String()
}

// underlinesByLine reads the overlay decorations back into per-line column
// spans. The textarea's cell metrics make the mapping direct: one char is
// one column, one line is one row.
func (r *Renderer) underlinesByLine(e *Editor) map[int][]underline {
	overlay := e.hl.Overlay(e.el)
	if overlay == nil {
		return nil
	}
	marks := make(map[int][]underline)
	for _, mark := range overlay.Children() {
		b := mark.Bounds()
		line := int(b.Top)
		marks[line] = append(marks[line], underline{
			start:   int(b.Left) - e.margin,
			width:   int(b.Width),
			grammar: mark.Attr(highlight.AttrRule) != "",
		})
	}
	for _, segs := range marks {
		sort.Slice(segs, func(i, j int) bool { return segs[i].start < segs[j].start })
	}
	return marks
}

// renderLine splices underline escape codes into one display line.
func renderLine(text []rune, segs []underline) string {
	if len(segs) == 0 {
		return string(text)
	}
	var out strings.Builder
	pos := 0
	for _, seg := range segs {
		start, end := seg.start, seg.start+seg.width
		if start < pos {
			start = pos
		}
		if end > len(text) {
			end = len(text)
		}
		if start >= end {
			continue
		}
		out.WriteString(string(text[pos:start]))
		if seg.grammar {
			out.WriteString("\x1b[4;34m")
		} else {
			out.WriteString("\x1b[4;31m")
		}
		out.WriteString(string(text[start:end]))
		out.WriteString("\x1b[0m")
		pos = end
	}
	out.WriteString(string(text[pos:]))
	return out.String()
}

func (r *Renderer) renderStatusBar(e *Editor, height int) {
	r.buf.WriteString(fmt.Sprintf("\x1b[%d;1H", height))
	r.buf.WriteString("\x1b[7m")

	left := " " + statusName(e.buf)
	if msg := e.statusMessage(); msg != "" {
		left = " " + msg
	}

	issues := 0
	if st := e.coord.StateFor(e.el); st != nil {
		issues = len(st.Spans())
	}
	words := len(tokenize.ExtractWords(e.buf.Text))
	right := fmt.Sprintf("%d words  ", words)
	if issues > 0 {
		right = fmt.Sprintf("%d issue(s)  %s", issues, right)
	}

	// Cell widths, not rune counts: filenames and messages can carry
	// double-width characters.
	width, _ := e.term.Size()
	rightW := runewidth.StringWidth(right)
	if runewidth.StringWidth(left)+rightW >= width {
		maxLeft := width - rightW - 1
		if maxLeft < 0 {
			maxLeft = 0
		}
		left = runewidth.Truncate(left, maxLeft, "")
	}
	gap := width - runewidth.StringWidth(left) - rightW
	if gap < 0 {
		gap = 0
	}
	r.buf.WriteString(left)
	r.buf.WriteString(strings.Repeat(" ", gap))
	r.buf.WriteString(right)
	r.buf.WriteString("\x1b[0m")
}

func statusName(b *Buffer) string {
	name := b.Filename
	if name == "" {
		name = "[scratch]"
	}
	if b.Dirty {
		name += " •"
	}
	return name
}

// renderMenu draws the open correction menu as a boxed list under the
// caret, selection in reverse video.
func (r *Renderer) renderMenu(e *Editor, caretIdx, caretCol, visible int) {
	menu := e.hl.Menu()
	items := menu.Children()
	if len(items) == 0 {
		return
	}
	labels := make([]string, len(items))
	maxW := 0
	for i, item := range items {
		labels[i] = item.TextContent()
		if w := runewidth.StringWidth(labels[i]); w > maxW {
			maxW = w
		}
	}

	row := caretIdx - e.scroll + 2
	if row+len(items) > visible {
		row = caretIdx - e.scroll - len(items)
		if row < 1 {
			row = 1
		}
	}
	col := e.margin + caretCol + 1

	for i, label := range labels {
		r.buf.WriteString(fmt.Sprintf("\x1b[%d;%dH", row+i, col))
		pad := strings.Repeat(" ", maxW-runewidth.StringWidth(label))
		if i == e.menuSel {
			r.buf.WriteString("\x1b[7m " + label + pad + " \x1b[0m")
		} else {
			r.buf.WriteString("\x1b[48;5;236m " + label + pad + " \x1b[0m")
		}
	}
}
