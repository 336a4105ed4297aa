package position

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/page"
)

func styled(tag string) *page.Node {
	el := page.NewElement(tag)
	el.SetStyle(page.Style{
		CharWidth:   10,
		LineHeight:  20,
		PaddingLeft: 5, PaddingTop: 5,
	})
	el.SetBounds(page.Rect{Left: 200, Top: 100, Width: 210, Height: 80})
	return el
}

func TestMirrorRectsMatchControlPosition(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := styled("textarea")
	el.SetValue("teh quick brown fox")
	doc.Root().AppendChild(el)

	rects := SpanRects(el, false, 4, 9)
	require.Len(t, rects, 1)
	require.Equal(t, page.Rect{Left: 245, Top: 105, Width: 50, Height: 20}, rects[0])

	// The mirror must not survive the measurement.
	require.Len(t, doc.Root().Children(), 1)
}

func TestMirrorRectsApplyScroll(t *testing.T) {
	el := styled("textarea")
	el.SetValue("teh quick brown fox")
	el.SetScroll(0, 20)

	rects := SpanRects(el, false, 0, 3)
	require.Len(t, rects, 1)
	require.Equal(t, float64(85), rects[0].Top)
}

func TestRichRects(t *testing.T) {
	el := styled("div")
	el.SetAttr("contenteditable", "true")
	el.AppendChild(page.NewText("one mistaek"))

	rects := SpanRects(el, true, 4, 11)
	require.Len(t, rects, 1)
	require.Equal(t, float64(205+4*10), rects[0].Left)
	require.Equal(t, float64(70), rects[0].Width)
}

func TestRichRectsFallBackToBounds(t *testing.T) {
	el := styled("div")
	el.SetAttr("contenteditable", "true")
	el.AppendChild(page.NewText("short"))

	rects := SpanRects(el, true, 0, 99)
	require.Equal(t, []page.Rect{el.Bounds()}, rects)
}

func TestMirrorRectsOnWrappedSpan(t *testing.T) {
	el := styled("textarea")
	// 20 columns; the final word wraps onto line two.
	el.SetValue("aaaa bbbb cccc dddd eeee")

	rects := SpanRects(el, false, 15, 24)
	require.Len(t, rects, 2)
	require.Equal(t, float64(105), rects[0].Top)
	require.Equal(t, float64(125), rects[1].Top)
}
