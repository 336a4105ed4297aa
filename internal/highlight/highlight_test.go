package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redlinehq/redline/internal/checker"
	"github.com/redlinehq/redline/internal/page"
)

type recordedAction struct {
	kind       string
	start, end int
	text       string
}

type fakeActions struct {
	calls []recordedAction
}

func (a *fakeActions) Apply(start, end int, suggestion string) {
	a.calls = append(a.calls, recordedAction{"apply", start, end, suggestion})
}

func (a *fakeActions) Ignore(word string) {
	a.calls = append(a.calls, recordedAction{kind: "ignore", text: word})
}

func (a *fakeActions) AddWord(word string) {
	a.calls = append(a.calls, recordedAction{kind: "add", text: word})
}

func newField(doc *page.Document) *page.Node {
	el := page.NewElement("textarea")
	el.SetStyle(page.Style{CharWidth: 8, LineHeight: 16})
	el.SetBounds(page.Rect{Left: 0, Top: 0, Width: 400, Height: 64})
	doc.Root().AppendChild(el)
	return el
}

func span() checker.Misspelling {
	return checker.Misspelling{
		Word:        "teh",
		StartIndex:  0,
		EndIndex:    3,
		Suggestions: []string{"the", "ten"},
	}
}

func TestRefreshDrawsDecorations(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := newField(doc)
	el.SetValue("teh fox")
	r := NewRenderer(doc)

	r.Refresh(el, false, []checker.Misspelling{span()}, &fakeActions{})

	overlay := r.Overlay(el)
	require.NotNil(t, overlay)
	require.Equal(t, "true", overlay.Attr(AttrOverlay))
	require.Len(t, overlay.Children(), 1)

	mark := overlay.Children()[0]
	require.Equal(t, "teh", mark.Attr(AttrWord))
	require.Equal(t, "0", mark.Attr(AttrStart))
	require.Equal(t, "3", mark.Attr(AttrEnd))
	require.Equal(t, "the,ten", mark.Attr(AttrSuggestions))
	require.Equal(t, "0", mark.Attr("tabindex"))
	require.Equal(t, float64(24), mark.Bounds().Width)
}

func TestRefreshIsIdempotent(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := newField(doc)
	el.SetValue("teh fox")
	r := NewRenderer(doc)

	spans := []checker.Misspelling{span()}
	r.Refresh(el, false, spans, &fakeActions{})
	r.Refresh(el, false, spans, &fakeActions{})

	require.Len(t, r.Overlay(el).Children(), 1)
}

func TestRemoveTearsDownOverlay(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := newField(doc)
	el.SetValue("teh fox")
	r := NewRenderer(doc)

	r.Refresh(el, false, []checker.Misspelling{span()}, &fakeActions{})
	overlay := r.Overlay(el)
	r.Remove(el)

	require.Nil(t, r.Overlay(el))
	require.False(t, overlay.IsConnected())
}

func TestMenuActions(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := newField(doc)
	el.SetValue("teh fox")
	r := NewRenderer(doc)
	acts := &fakeActions{}

	r.Refresh(el, false, []checker.Misspelling{span()}, acts)
	mark := r.Overlay(el).Children()[0]
	mark.Dispatch("click", 0)

	menu := r.Menu()
	require.NotNil(t, menu)
	// Two suggestions, ignore, add-to-dictionary.
	require.Len(t, menu.Children(), 4)

	menu.Children()[0].Dispatch("click", 0)
	require.Equal(t, []recordedAction{{"apply", 0, 3, "the"}}, acts.calls)
	require.Nil(t, r.Menu())
}

func TestMenuIgnoreAndAdd(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := newField(doc)
	el.SetValue("teh fox")
	r := NewRenderer(doc)
	acts := &fakeActions{}

	r.Refresh(el, false, []checker.Misspelling{span()}, acts)
	r.Overlay(el).Children()[0].Dispatch("keydown", '\r')

	menu := r.Menu()
	items := menu.Children()
	require.Equal(t, "ignore", items[2].Attr(AttrAction))
	require.Equal(t, "add-word", items[3].Attr(AttrAction))

	items[2].Dispatch("click", 0)
	require.Equal(t, "ignore", acts.calls[0].kind)
	require.Equal(t, "teh", acts.calls[0].text)
}

func TestRightClickOpensMenu(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := newField(doc)
	el.SetValue("teh fox")
	r := NewRenderer(doc)

	r.Refresh(el, false, []checker.Misspelling{span()}, &fakeActions{})
	r.Overlay(el).Children()[0].Dispatch("contextmenu", 0)

	menu := r.Menu()
	require.NotNil(t, menu)
	require.Equal(t, "teh", menu.Attr(AttrWord))
}

func TestGrammarMenuOmitsAddToDictionary(t *testing.T) {
	doc := page.NewDocument("example.com")
	el := newField(doc)
	el.SetValue("your welcome")
	r := NewRenderer(doc)

	gram := checker.Misspelling{
		Word: "your", StartIndex: 0, EndIndex: 4,
		Suggestions: []string{"you're"}, Rule: "your/you're",
	}
	r.Refresh(el, false, []checker.Misspelling{gram}, &fakeActions{})
	r.Overlay(el).Children()[0].Dispatch("click", 0)

	items := r.Menu().Children()
	// One rewrite plus ignore, no add-to-dictionary for grammar findings.
	require.Len(t, items, 2)
	require.Equal(t, "suggestion", items[0].Attr(AttrAction))
	require.Equal(t, "ignore", items[1].Attr(AttrAction))
}
