// Package position turns a rune span inside an editable element into
// viewport rectangles. Rich regions measure through a live range over their
// text nodes; plain controls do not expose their laid-out text, so a styled
// mirror is measured instead.
package position

import (
	"github.com/redlinehq/redline/internal/log"
	"github.com/redlinehq/redline/internal/page"
)

// SpanRects resolves the rune span [start, end) of el's text into viewport
// rects, one per laid-out line. Rich elements that cannot be measured fall
// back to the element's own bounds so the span is still marked, just
// coarsely.
func SpanRects(el *page.Node, rich bool, start, end int) []page.Rect {
	if rich {
		return richRects(el, start, end)
	}
	return mirrorRects(el, start, end)
}

func richRects(el *page.Node, start, end int) []page.Rect {
	r, err := page.NewRange(el, start, end)
	if err != nil {
		log.Warn(log.CatRender, "range build failed, using element bounds",
			"start", start, "end", end)
		return []page.Rect{el.Bounds()}
	}
	rects, err := r.ClientRects(el)
	if err != nil || len(rects) == 0 {
		log.Warn(log.CatRender, "range measure failed, using element bounds",
			"start", start, "end", end)
		return []page.Rect{el.Bounds()}
	}
	return rects
}

// mirrorRects replicates the control's text metrics onto a short-lived
// off-screen element, measures the span there, then maps the result back to
// the control, correcting for its scroll offsets. The mirror is removed
// before returning, whatever happens.
func mirrorRects(el *page.Node, start, end int) []page.Rect {
	mirror := page.NewElement("div")
	mirror.SetStyle(el.Style())
	b := el.Bounds()
	mirror.SetBounds(page.Rect{Left: -9999, Top: -9999, Width: b.Width, Height: b.Height})
	mirror.AppendChild(page.NewText(el.Value()))
	if doc := el.Document(); doc != nil {
		doc.Root().AppendChild(mirror)
	}
	defer mirror.Remove()

	rects := mirror.OffsetRects(start, end)

	ox, oy := el.ContentOrigin()
	mx, my := mirror.ContentOrigin()
	sx, sy := el.Scroll()
	for i := range rects {
		rects[i].Left += ox - mx - sx
		rects[i].Top += oy - my - sy
	}
	return rects
}
