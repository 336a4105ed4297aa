// Package field tracks editable surfaces on a page: which elements are
// worth checking, per-field check state, and the coordinator that debounces
// rechecks and applies corrections.
package field

import (
	"errors"
	"unicode/utf8"

	"github.com/redlinehq/redline/internal/page"
)

// Kind distinguishes the two editable surface families.
type Kind int

const (
	// Plain covers single-value controls: input and textarea.
	Plain Kind = iota
	// Rich covers contenteditable regions, where text is spread across
	// child text nodes.
	Rich
)

// Field is one editable surface. Offsets are rune offsets into Text().
type Field interface {
	Element() *page.Node
	Kind() Kind
	Text() string
	// ReplaceRange swaps the rune span [start, end) for replacement.
	ReplaceRange(start, end int, replacement string) error
}

// New wraps el in the Field implementation matching its kind.
func New(el *page.Node) Field {
	if isRich(el) {
		return &richField{el: el}
	}
	return &plainField{el: el}
}

type plainField struct {
	el *page.Node
}

func (f *plainField) Element() *page.Node { return f.el }
func (f *plainField) Kind() Kind          { return Plain }
func (f *plainField) Text() string        { return f.el.Value() }

func (f *plainField) ReplaceRange(start, end int, replacement string) error {
	runes := []rune(f.el.Value())
	if start < 0 || end < start || end > len(runes) {
		return errors.New("field: replace range out of bounds")
	}
	out := make([]rune, 0, len(runes)-(end-start)+len(replacement))
	out = append(out, runes[:start]...)
	out = append(out, []rune(replacement)...)
	out = append(out, runes[end:]...)
	f.el.SetValue(string(out))
	if caret := f.el.Caret(); caret >= end {
		f.el.SetCaret(caret - (end - start) + utf8.RuneCountInString(replacement))
	}
	return nil
}

type richField struct {
	el *page.Node
}

func (f *richField) Element() *page.Node { return f.el }
func (f *richField) Kind() Kind          { return Rich }
func (f *richField) Text() string        { return f.el.TextContent() }

// ReplaceRange edits through the text nodes the span touches instead of
// rewriting the whole subtree, so surrounding markup survives the
// correction. Formatting inside the span collapses into its first node.
func (f *richField) ReplaceRange(start, end int, replacement string) error {
	if start < 0 || end < start {
		return errors.New("field: replace range out of bounds")
	}
	inserted := false
	for _, ts := range f.el.TextSpans() {
		runes := []rune(ts.Node.Text())
		n := len(runes)
		nodeStart, nodeEnd := ts.Start, ts.Start+n
		if nodeEnd <= start || nodeStart >= end {
			continue
		}
		s, e := start-nodeStart, end-nodeStart
		if s < 0 {
			s = 0
		}
		if e > n {
			e = n
		}
		var text string
		if !inserted {
			text = string(runes[:s]) + replacement + string(runes[e:])
			inserted = true
		} else {
			text = string(runes[:s]) + string(runes[e:])
		}
		ts.Node.SetText(text)
	}
	if !inserted {
		return errors.New("field: replace range past end of text")
	}
	return nil
}
