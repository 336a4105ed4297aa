// Package highlight draws check results over a page: an overlay container
// per field, one decoration per occupied rect, and the correction menu a
// decoration opens when activated.
package highlight

import (
	"strconv"
	"strings"

	"github.com/redlinehq/redline/internal/checker"
	"github.com/redlinehq/redline/internal/field"
	"github.com/redlinehq/redline/internal/log"
	"github.com/redlinehq/redline/internal/page"
	"github.com/redlinehq/redline/internal/position"
)

// Attribute names carried by overlay elements so hosts and tests can find
// and drive them.
const (
	AttrOverlay     = "data-redline-overlay"
	AttrWord        = "data-word"
	AttrStart       = "data-start"
	AttrEnd         = "data-end"
	AttrSuggestions = "data-suggestions"
	AttrRule        = "data-rule"
	AttrAction      = "data-action"
)

// Renderer keeps one overlay per decorated field and at most one open
// correction menu. It implements field.Decorator.
type Renderer struct {
	doc      *page.Document
	overlays map[*page.Node]*page.Node
	menu     *page.Node
}

// NewRenderer returns a renderer drawing into doc.
func NewRenderer(doc *page.Document) *Renderer {
	return &Renderer{doc: doc, overlays: make(map[*page.Node]*page.Node)}
}

// Refresh redraws the decorations for el from scratch. Stale decorations
// from the previous pass are discarded first, so repeated calls converge on
// the same tree.
func (r *Renderer) Refresh(el *page.Node, rich bool, spans []checker.Misspelling, acts field.Actions) {
	container := r.overlays[el]
	if container == nil {
		container = page.NewElement("div")
		container.SetAttr(AttrOverlay, "true")
		r.doc.Root().AppendChild(container)
		r.overlays[el] = container
	}
	for _, old := range append([]*page.Node(nil), container.Children()...) {
		container.RemoveChild(old)
	}

	for _, sp := range spans {
		rects := position.SpanRects(el, rich, sp.StartIndex, sp.EndIndex)
		for _, rect := range rects {
			container.AppendChild(r.decoration(sp, rect, acts))
		}
	}
	log.Debug(log.CatRender, "overlay refreshed",
		"spans", len(spans), "decorations", len(container.Children()))
}

func (r *Renderer) decoration(sp checker.Misspelling, rect page.Rect, acts field.Actions) *page.Node {
	mark := page.NewElement("mark")
	mark.SetAttr(AttrWord, sp.Word)
	mark.SetAttr(AttrStart, strconv.Itoa(sp.StartIndex))
	mark.SetAttr(AttrEnd, strconv.Itoa(sp.EndIndex))
	mark.SetAttr(AttrSuggestions, strings.Join(sp.Suggestions, ","))
	if sp.Rule != "" {
		mark.SetAttr(AttrRule, sp.Rule)
	}
	mark.SetAttr("tabindex", "0")
	mark.SetAttr("role", "button")
	mark.SetBounds(rect)

	open := func(page.Event) { r.OpenMenu(sp, rect, acts) }
	mark.AddEventListener("click", open)
	mark.AddEventListener("contextmenu", open)
	mark.AddEventListener("keydown", open)
	return mark
}

// Remove tears down el's overlay, if any, and any menu opened from it.
func (r *Renderer) Remove(el *page.Node) {
	if container, ok := r.overlays[el]; ok {
		container.Remove()
		delete(r.overlays, el)
	}
	r.CloseMenu()
}

// Overlay returns el's overlay container, nil when none is drawn.
func (r *Renderer) Overlay(el *page.Node) *page.Node {
	return r.overlays[el]
}

// OpenMenu shows the correction menu for one span, replacing any menu that
// is already open. Spelling spans offer every suggestion plus ignore and
// add-to-dictionary; grammar spans offer only their single rewrite and
// ignore.
func (r *Renderer) OpenMenu(sp checker.Misspelling, anchor page.Rect, acts field.Actions) {
	r.CloseMenu()

	menu := page.NewElement("menu")
	menu.SetAttr(AttrWord, sp.Word)
	menu.SetBounds(page.Rect{Left: anchor.Left, Top: anchor.Bottom()})

	for _, s := range sp.Suggestions {
		s := s
		item := menuItem("suggestion", s)
		item.AddEventListener("click", func(page.Event) {
			acts.Apply(sp.StartIndex, sp.EndIndex, s)
			r.CloseMenu()
		})
		menu.AppendChild(item)
	}
	ignore := menuItem("ignore", "Ignore")
	ignore.AddEventListener("click", func(page.Event) {
		acts.Ignore(sp.Word)
		r.CloseMenu()
	})
	menu.AppendChild(ignore)

	if sp.Rule == "" {
		add := menuItem("add-word", "Add to dictionary")
		add.AddEventListener("click", func(page.Event) {
			acts.AddWord(sp.Word)
			r.CloseMenu()
		})
		menu.AppendChild(add)
	}

	r.doc.Root().AppendChild(menu)
	r.menu = menu
}

// CloseMenu dismisses the open correction menu, if any.
func (r *Renderer) CloseMenu() {
	if r.menu != nil {
		r.menu.Remove()
		r.menu = nil
	}
}

// Menu returns the open correction menu, nil when closed.
func (r *Renderer) Menu() *page.Node { return r.menu }

func menuItem(action, label string) *page.Node {
	item := page.NewElement("button")
	item.SetAttr(AttrAction, action)
	item.SetAttr("tabindex", "0")
	item.AppendChild(page.NewText(label))
	return item
}
